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
	migrate "github.com/rubenv/sql-migrate"
)

var changesets = &migrate.MemoryMigrationSource{
	Migrations: []*migrate.Migration{
		{
			Id: "0001-attempts",
			Up: []string{
				`
					create table "attempts" (
						"id"           integer primary key autoincrement ,
						"recipient"    text    not null ,
						"account"      text    not null ,
						"attempted_at" integer not null ,
						"outcome"      integer not null ,
						"reason"       text
					) ;
				`,
				`
					create index "attempts_recipient_outcome"
					on "attempts" ( "recipient", "outcome" ) ;
				`,
				`
					create index "attempts_account_attempted_at"
					on "attempts" ( "account", "attempted_at" ) ;
				`,
			},
			Down: []string{
				`drop table "attempts" ;`,
			},
		},
	},
}
