// Copyright (C) 2020  Lukas Dietrich <lukas@lukasdietrich.com>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package recipients

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/lukasdietrich/mailpog/internal/log"
	"github.com/lukasdietrich/mailpog/internal/models"
)

const byteOrderMark = "\ufeff"

// Stream yields the recipients of all batches in order. Only one batch file is open at a
// time. A Stream is not safe for concurrent use.
type Stream struct {
	ctx     context.Context
	fs      afero.Fs
	batches []string

	file   afero.File
	reader *csv.Reader
	batch  string
}

// Next returns the next recipient, or io.EOF after the last row of the last batch. Rows
// without a valid address in their first column are skipped.
func (s *Stream) Next() (Recipient, error) {
	for {
		if err := s.ctx.Err(); err != nil {
			return Recipient{}, err
		}

		if s.reader == nil {
			if len(s.batches) == 0 {
				return Recipient{}, io.EOF
			}

			if err := s.openBatch(); err != nil {
				return Recipient{}, err
			}
		}

		row, err := s.reader.Read()
		if errors.Is(err, io.EOF) {
			if err := s.closeBatch(); err != nil {
				return Recipient{}, err
			}

			continue
		}

		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				s.skip(parseErr.StartLine, err)
				continue
			}

			return Recipient{}, fmt.Errorf("recipients: read %s: %w", s.batch, err)
		}

		line, _ := s.reader.FieldPos(0)

		if len(row) == 0 {
			continue
		}

		raw := strings.TrimSpace(strings.TrimPrefix(row[0], byteOrderMark))
		if raw == "" {
			s.skip(line, models.ErrInvalidAddressFormat)
			continue
		}

		address, err := models.Parse(raw)
		if err != nil {
			s.skip(line, err)
			continue
		}

		return Recipient{
			Address: address,
			Batch:   s.batch,
			Line:    line,
		}, nil
	}
}

// Close releases the currently open batch file.
func (s *Stream) Close() error {
	s.batches = nil
	return s.closeBatch()
}

func (s *Stream) openBatch() error {
	filename := s.batches[0]
	s.batches = s.batches[1:]

	file, err := s.fs.Open(filename)
	if err != nil {
		return fmt.Errorf("recipients: open %s: %w", filename, err)
	}

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	s.file = file
	s.reader = reader
	s.batch = filepath.Base(filename)

	log.InfoContext(log.WithBatch(s.ctx, s.batch)).Msg("reading recipient batch")
	return nil
}

func (s *Stream) closeBatch() error {
	if s.file == nil {
		return nil
	}

	err := s.file.Close()

	s.file = nil
	s.reader = nil
	s.batch = ""

	return err
}

func (s *Stream) skip(line int, err error) {
	log.WarnContext(log.WithBatch(s.ctx, s.batch)).
		Int("line", line).
		Err(err).
		Msg("skipping malformed recipient row")
}
