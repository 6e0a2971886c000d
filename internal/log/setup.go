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

package log

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	formatJSON    = "json"
	formatConsole = "console"
)

func init() {
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", formatJSON)
}

// Options configure the process wide logger.
type Options struct {
	Level  string
	Format string
}

// OptionsFromViper reads the logger options from viper.
//
// `log.level` is any level understood by zerolog.
// `log.format` is either "json" or "console".
func OptionsFromViper() Options {
	return Options{
		Level:  viper.GetString("log.level"),
		Format: viper.GetString("log.format"),
	}
}

// Setup replaces Logger with one writing to w according to the options.
func Setup(w io.Writer, opts Options) error {
	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil {
		return fmt.Errorf("unknown log level %q: %w", opts.Level, err)
	}

	switch opts.Format {
	case formatJSON:
	case formatConsole:
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	default:
		return fmt.Errorf("unknown log format %q", opts.Format)
	}

	Logger = zerolog.New(w).Level(level).With().Timestamp().Logger()
	return nil
}

// SetupFromViper configures Logger to write to stderr.
func SetupFromViper() error {
	return Setup(os.Stderr, OptionsFromViper())
}
