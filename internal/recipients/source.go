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
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/lukasdietrich/mailpog/internal/log"
	"github.com/lukasdietrich/mailpog/internal/models"
)

const batchExtension = ".csv"

func init() {
	viper.SetDefault("recipients.folder", "recipients")
}

// Recipient is a single address read from a batch file.
type Recipient struct {
	Address models.Address
	Batch   string
	Line    int
}

type Options struct {
	Folder string
}

// OptionsFromViper reads the recipient source options.
//
// `recipients.folder` is the folder containing the csv batch files.
func OptionsFromViper() Options {
	return Options{
		Folder: viper.GetString("recipients.folder"),
	}
}

// Source discovers batch files in a folder.
type Source struct {
	fs     afero.Fs
	folder string
}

func NewSource(fs afero.Fs, opts Options) *Source {
	return &Source{
		fs:     fs,
		folder: opts.Folder,
	}
}

// Open lists the batch files and returns a stream over all of their recipients. Batches
// are ordered by file name.
func (s *Source) Open(ctx context.Context) (*Stream, error) {
	batches, err := s.batches()
	if err != nil {
		return nil, err
	}

	log.InfoContext(ctx).
		Str("folder", s.folder).
		Int("batches", len(batches)).
		Msg("discovered recipient batches")

	return &Stream{
		ctx:     ctx,
		fs:      s.fs,
		batches: batches,
	}, nil
}

func (s *Source) batches() ([]string, error) {
	infos, err := afero.ReadDir(s.fs, s.folder)
	if err != nil {
		return nil, fmt.Errorf("recipients: %w", err)
	}

	var batches []string

	for _, info := range infos {
		if !info.Mode().IsRegular() {
			continue
		}

		if !strings.EqualFold(filepath.Ext(info.Name()), batchExtension) {
			continue
		}

		batches = append(batches, filepath.Join(s.folder, info.Name()))
	}

	sort.Strings(batches)
	return batches, nil
}
