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

package dkim

import (
	"context"
	"errors"
	"time"
)

type fakeResolver struct {
	keys  map[string]string
	err   error
	calls int
}

func (f *fakeResolver) Resolve(_ context.Context, selector, domain string) (string, error) {
	f.calls++

	if f.err != nil {
		return "", f.err
	}

	key, ok := f.keys[selector+"."+domain]
	if !ok {
		return "", errors.New("unknown key")
	}

	return key, nil
}

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.now
}
