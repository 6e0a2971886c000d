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
	"fmt"
	"time"

	"github.com/lukasdietrich/mailpog/internal/log"
)

// Limits are the quota limits applied to every account.
type Limits struct {
	MaxPerDay  int
	MaxPerHour int
}

// Registry holds the configured accounts in their configuration order. Counters are only
// mutated through the registry.
type Registry struct {
	accounts []*Account
	limits   Limits
}

// NewRegistry validates the options and creates an account for every configured entry.
func NewRegistry(opts Options) (*Registry, error) {
	if len(opts.Accounts) == 0 {
		return nil, ErrNoAccounts
	}

	limits, err := opts.limits()
	if err != nil {
		return nil, err
	}

	var (
		accounts = make([]*Account, 0, len(opts.Accounts))
		seen     = make(map[string]bool)
	)

	for _, raw := range opts.Accounts {
		account, err := opts.newAccount(raw)
		if err != nil {
			return nil, err
		}

		if seen[account.Address.String()] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAccount, account.Address)
		}

		seen[account.Address.String()] = true
		accounts = append(accounts, account)

		log.Info().
			Stringer("account", account.Address).
			Str("host", account.Host).
			Int("port", account.Port).
			Str("selector", account.Selector).
			Msg("registered account")
	}

	return &Registry{
		accounts: accounts,
		limits:   limits,
	}, nil
}

// Accounts returns the accounts in configuration order.
func (r *Registry) Accounts() []*Account {
	return r.accounts
}

func (r *Registry) Limits() Limits {
	return r.limits
}

// IsEligible reports whether the account is below both of its limits.
func (r *Registry) IsEligible(account *Account, now time.Time) bool {
	account.mu.Lock()
	defer account.mu.Unlock()

	return account.sentToday < r.limits.MaxPerDay &&
		account.sentThisHour < r.limits.MaxPerHour
}

// AtHourlyCap reports whether the account has used up its hourly limit.
func (r *Registry) AtHourlyCap(account *Account) bool {
	account.mu.Lock()
	defer account.mu.Unlock()

	return account.sentThisHour >= r.limits.MaxPerHour
}

// AtDailyCap reports whether the account has used up its daily limit.
func (r *Registry) AtDailyCap(account *Account) bool {
	account.mu.Lock()
	defer account.mu.Unlock()

	return account.sentToday >= r.limits.MaxPerDay
}

// RecordSend counts one successful delivery.
func (r *Registry) RecordSend(account *Account, now time.Time) {
	account.mu.Lock()
	defer account.mu.Unlock()

	account.sentToday++
	account.sentThisHour++
	account.lastSentAt = now
}

// ResetHourly clears the hourly counter of every account.
func (r *Registry) ResetHourly() {
	for _, account := range r.accounts {
		account.mu.Lock()
		account.sentThisHour = 0
		account.mu.Unlock()
	}

	log.Debug().Msg("hourly quota reset")
}

// ResetDaily clears both counters of every account.
func (r *Registry) ResetDaily() {
	for _, account := range r.accounts {
		account.mu.Lock()
		account.sentToday = 0
		account.sentThisHour = 0
		account.mu.Unlock()
	}

	log.Debug().Msg("daily quota reset")
}

// Restore seeds the daily counter of an account from previous runs.
func (r *Registry) Restore(account *Account, sentToday int) {
	account.mu.Lock()
	defer account.mu.Unlock()

	if sentToday > account.sentToday {
		account.sentToday = sentToday
	}
}
