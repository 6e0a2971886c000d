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

package models

import (
	"database/sql"
)

// Outcome is the terminal state of a dispatch attempt.
type Outcome int

const (
	_ Outcome = iota
	// OutcomeDelivered is an attempt accepted by the submission server.
	OutcomeDelivered
	// OutcomeFailed is an attempt that failed while signing or delivering.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDelivered:
		return "delivered"
	case OutcomeFailed:
		return "failed"
	}

	return "unknown"
}

// AttemptEntity is a single dispatch attempt of one recipient over one account.
type AttemptEntity struct {
	ID          int64          `db:"id"`
	Recipient   Address        `db:"recipient"`
	Account     Address        `db:"account"`
	AttemptedAt int64          `db:"attempted_at"`
	Outcome     Outcome        `db:"outcome"`
	Reason      sql.NullString `db:"reason"`
}
