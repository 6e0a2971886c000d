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

package accounts

import (
	"sync"
	"time"

	"github.com/lukasdietrich/mailpog/internal/models"
)

// Account is an outbound mail account together with its quota counters.
type Account struct {
	Address     models.Address
	Name        string
	Username    string
	Password    string
	Host        string
	Port        int
	ReplyTo     models.Address
	Unsubscribe string
	Selector    string
	DKIMKeyFile string

	mu           sync.Mutex
	sentToday    int
	sentThisHour int
	lastSentAt   time.Time
}

// Quota is a consistent copy of the counters of an account.
type Quota struct {
	SentToday    int
	SentThisHour int
	LastSentAt   time.Time
}

// Snapshot returns the current counters.
func (a *Account) Snapshot() Quota {
	a.mu.Lock()
	defer a.mu.Unlock()

	return Quota{
		SentToday:    a.sentToday,
		SentThisHour: a.sentThisHour,
		LastSentAt:   a.lastSentAt,
	}
}

func (a *Account) String() string {
	return a.Address.String()
}
