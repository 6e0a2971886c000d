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

package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/lukasdietrich/mailpog/internal/log"
	"github.com/lukasdietrich/mailpog/internal/models"
)

func init() {
	viper.SetDefault("storage.deliveryLog.filename", "log_envios.csv")
}

var (
	deliveryLogHeader = []string{"Email", "DataHora"}

	// localTimestampLayout is ISO-8601 without a zone offset, as written by earlier tools
	// sharing the log file.
	localTimestampLayout = "2006-01-02T15:04:05.999999999"

	// ErrMalformedDeliveryLog is returned when reading a delivery log with rows, that do not
	// consist of an address and a timestamp.
	ErrMalformedDeliveryLog = errors.New("storage: malformed delivery log")
)

// DeliveryLogEntry is a single successful delivery.
type DeliveryLogEntry struct {
	Recipient   string
	DeliveredAt time.Time
}

type DeliveryLogOptions struct {
	Filename string
}

// DeliveryLogOptionsFromViper reads the delivery log options.
//
// `storage.deliveryLog.filename` is the csv file deliveries are appended to.
func DeliveryLogOptionsFromViper() DeliveryLogOptions {
	return DeliveryLogOptions{
		Filename: viper.GetString("storage.deliveryLog.filename"),
	}
}

// DeliveryLog is an append-only csv record of every accepted message.
type DeliveryLog struct {
	fs       afero.Fs
	filename string
}

func NewDeliveryLog(fs afero.Fs, opts DeliveryLogOptions) *DeliveryLog {
	return &DeliveryLog{
		fs:       fs,
		filename: opts.Filename,
	}
}

// EnsureInitialized creates the log file with its header row, unless a non-empty file
// exists already.
func (d *DeliveryLog) EnsureInitialized() error {
	info, err := d.fs.Stat(d.filename)
	if err == nil && info.Size() > 0 {
		return nil
	}

	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage: stat delivery log: %w", err)
	}

	if dir := filepath.Dir(d.filename); dir != "." {
		if err := d.fs.MkdirAll(dir, 0700); err != nil {
			return fmt.Errorf("storage: create delivery log folder: %w", err)
		}
	}

	log.Info().
		Str("filename", d.filename).
		Msg("creating delivery log")

	return d.writeRow(deliveryLogHeader)
}

// Append writes one row for a delivered recipient. The row is synced to disk before Append
// returns.
func (d *DeliveryLog) Append(recipient models.Address, timestamp time.Time) error {
	return d.writeRow([]string{recipient.String(), timestamp.Format(time.RFC3339)})
}

func (d *DeliveryLog) writeRow(row []string) error {
	file, err := d.fs.OpenFile(d.filename, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600)
	if err != nil {
		return fmt.Errorf("storage: open delivery log: %w", err)
	}

	w := csv.NewWriter(file)

	if err := w.Write(row); err != nil {
		file.Close()
		return fmt.Errorf("storage: write delivery log: %w", err)
	}

	w.Flush()

	if err := w.Error(); err != nil {
		file.Close()
		return fmt.Errorf("storage: write delivery log: %w", err)
	}

	if err := file.Sync(); err != nil {
		file.Close()
		return fmt.Errorf("storage: sync delivery log: %w", err)
	}

	return file.Close()
}

// Entries reads back every row of the log, skipping the header. A missing file has no
// entries.
func (d *DeliveryLog) Entries() ([]DeliveryLogEntry, error) {
	file, err := d.fs.Open(d.filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, fmt.Errorf("storage: open delivery log: %w", err)
	}

	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = len(deliveryLogHeader)

	var entries []DeliveryLogEntry

	for first := true; ; first = false {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return entries, nil
		}

		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedDeliveryLog, err)
		}

		if first && row[0] == deliveryLogHeader[0] && row[1] == deliveryLogHeader[1] {
			continue
		}

		deliveredAt, err := parseTimestamp(row[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedDeliveryLog, err)
		}

		entries = append(entries, DeliveryLogEntry{
			Recipient:   row[0],
			DeliveredAt: deliveredAt,
		})
	}
}

// parseTimestamp accepts RFC3339 and zone-less ISO-8601 timestamps. The latter are read in
// local time.
func parseTimestamp(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err == nil {
		return t, nil
	}

	if t, localErr := time.ParseInLocation(localTimestampLayout, value, time.Local); localErr == nil {
		return t, nil
	}

	return time.Time{}, err
}
