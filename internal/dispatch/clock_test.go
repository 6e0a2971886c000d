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
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUntilNextHour(t *testing.T) {
	zone := time.FixedZone("BRT", -3*60*60)

	for _, tc := range []struct {
		now      time.Time
		expected time.Duration
	}{
		{now: time.Date(2023, 1, 2, 10, 30, 0, 0, time.UTC), expected: 30 * time.Minute},
		{now: time.Date(2023, 1, 2, 10, 0, 0, 0, time.UTC), expected: time.Hour},
		{now: time.Date(2023, 1, 2, 23, 59, 59, 0, time.UTC), expected: time.Second},
		{now: time.Date(2023, 1, 2, 10, 15, 0, 0, zone), expected: 45 * time.Minute},
	} {
		assert.Equal(t, tc.expected, untilNextHour(tc.now), tc.now.String())
	}
}

func TestSameDay(t *testing.T) {
	assert.True(t, sameDay(
		time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 1, 2, 23, 59, 0, 0, time.UTC)))
	assert.False(t, sameDay(
		time.Date(2023, 1, 2, 23, 59, 0, 0, time.UTC),
		time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC)))
}

func TestSystemClockSleep(t *testing.T) {
	clock := NewSystemClock()

	assert.NoError(t, clock.Sleep(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, clock.Sleep(ctx, time.Hour), context.Canceled)
}
