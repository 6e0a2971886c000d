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

package dispatch

import (
	"github.com/lukasdietrich/mailpog/internal/log"
)

// Summary counts the terminal states of a run.
type Summary struct {
	Delivered int
	Skipped   int
	Failed    int
	// Waits is the number of times all accounts were exhausted.
	Waits int
}

func (s *Summary) count(state State) {
	switch state {
	case StateDelivered:
		s.Delivered++
	case StateSkipped:
		s.Skipped++
	case StateFailed:
		s.Failed++
	}
}

func (s Summary) log() {
	log.Info().
		Int("delivered", s.Delivered).
		Int("skipped", s.Skipped).
		Int("failed", s.Failed).
		Int("waits", s.Waits).
		Msg("dispatch finished")
}
