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

package database

import (
	"net/url"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"github.com/mattn/go-sqlite3"
	migrate "github.com/rubenv/sql-migrate"
	"github.com/spf13/viper"

	"github.com/lukasdietrich/mailpog/internal/log"
)

const (
	driverName     = "sqlite3"
	changelogTable = "database_changelog"
	memoryFilename = ":memory:"
)

func init() {
	migrate.SetTable(changelogTable)

	viper.SetDefault("storage.database.filename", "data/mailpog.sqlite")
	viper.SetDefault("storage.database.journalmode", "wal")
}

type Queryer interface {
	sqlx.ExtContext
}

type Conn interface {
	Queryer
	Close() error
}

type conn struct {
	*sqlx.DB
}

// OpenConnection opens the sqlite database and applies pending migrations.
//
// `storage.database.filename` is the filename for the sqlite database.
// `storage.database.journalmode` will be used for the journalmode pragma.
func OpenConnection() (Conn, error) {
	if err := ensureFolder(viper.GetString("storage.database.filename")); err != nil {
		return nil, err
	}

	sqliteVersion, _, _ := sqlite3.Version()

	dsn := createDataSourceName()
	log.Info().
		Str("driver", driverName).
		Str("version", sqliteVersion).
		Str("dataSourceName", dsn).
		Msg("connecting to database")

	db, err := sqlx.Open(driverName, dsn)
	if err != nil {
		return nil, err
	}

	// sqlite allows a single writer and every ":memory:" connection is a database of its own.
	db.SetMaxOpenConns(1)

	n, err := migrate.Exec(db.DB, driverName, changesets, migrate.Up)
	if err != nil {
		db.Close()
		return nil, err
	}

	if n > 0 {
		log.Info().
			Int("migrations", n).
			Msg("database migrations applied")
	}

	return conn{db}, nil
}

func ensureFolder(filename string) error {
	if filename == memoryFilename {
		return nil
	}

	return os.MkdirAll(filepath.Dir(filename), 0700)
}

func createDataSourceName() string {
	opts := make(url.Values)
	opts.Add("_foreign_keys", "true")
	opts.Add("_journal_mode", viper.GetString("storage.database.journalmode"))

	dsn := url.URL{
		Scheme:   "file",
		Opaque:   viper.GetString("storage.database.filename"),
		RawQuery: opts.Encode(),
	}

	return dsn.String()
}
