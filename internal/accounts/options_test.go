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
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptionsFromViper(t *testing.T) {
	viper.Reset()
	viper.SetConfigType("yaml")
	viper.SetDefault("quota.maxPerDay", 500)
	viper.SetDefault("quota.maxPerHour", 80)
	viper.SetDefault("dkim.defaultSelector", "cloudflare")

	require.NoError(t, viper.ReadConfig(strings.NewReader(`
accounts:
  - address: shopping@example.com
    name: Shopping
    host: mail.example.com
    port: 587
    replyTo: contact@example.com
    unsubscribe: https://example.com/unsubscribe
    passwordEnv: MAILPOG_TEST_PASSWORD
  - address: news@example.org
    host: mail.example.org
    selector: s1
    dkimKeyFile: keys/example.org.pem
quota:
  maxPerHour: 40
`)))

	opts, err := OptionsFromViper()
	require.NoError(t, err)

	assert.Equal(t, 500, opts.MaxPerDay)
	assert.Equal(t, 40, opts.MaxPerHour)
	assert.Equal(t, "cloudflare", opts.DefaultSelector)
	require.Len(t, opts.Accounts, 2)
	assert.Equal(t, AccountOptions{
		Address:     "shopping@example.com",
		Name:        "Shopping",
		PasswordEnv: "MAILPOG_TEST_PASSWORD",
		Host:        "mail.example.com",
		Port:        587,
		ReplyTo:     "contact@example.com",
		Unsubscribe: "https://example.com/unsubscribe",
	}, opts.Accounts[0])
	assert.Equal(t, "keys/example.org.pem", opts.Accounts[1].DKIMKeyFile)
}

func TestNewRegistryDefaults(t *testing.T) {
	t.Setenv("MAILPOG_TEST_PASSWORD", "secret")

	registry, err := NewRegistry(Options{
		Accounts: []AccountOptions{
			{
				Address:     "shopping@example.com",
				Host:        "mail.example.com",
				PasswordEnv: "MAILPOG_TEST_PASSWORD",
			},
			{
				Address:  "news@example.org",
				Username: "news",
				Password: "plain",
				Host:     "mail.example.org",
				Port:     587,
				ReplyTo:  "reply@example.org",
				Selector: "s1",
			},
		},
		MaxPerDay:       500,
		MaxPerHour:      80,
		DefaultSelector: "cloudflare",
	})
	require.NoError(t, err)
	require.Len(t, registry.Accounts(), 2)

	first := registry.Accounts()[0]
	assert.Equal(t, "shopping@example.com", first.Username)
	assert.Equal(t, "secret", first.Password)
	assert.Equal(t, 465, first.Port)
	assert.Equal(t, "shopping@example.com", first.ReplyTo.String())
	assert.Equal(t, "cloudflare", first.Selector)

	second := registry.Accounts()[1]
	assert.Equal(t, "news", second.Username)
	assert.Equal(t, "plain", second.Password)
	assert.Equal(t, 587, second.Port)
	assert.Equal(t, "reply@example.org", second.ReplyTo.String())
	assert.Equal(t, "s1", second.Selector)

	assert.Equal(t, Limits{MaxPerDay: 500, MaxPerHour: 80}, registry.Limits())
}

func TestNewRegistryErrors(t *testing.T) {
	valid := AccountOptions{Address: "a@example.com", Host: "mail.example.com"}

	for _, tc := range []struct {
		name     string
		opts     Options
		expected error
	}{
		{
			name:     "no accounts",
			opts:     Options{MaxPerDay: 1, MaxPerHour: 1},
			expected: ErrNoAccounts,
		},
		{
			name:     "zero quota",
			opts:     Options{Accounts: []AccountOptions{valid}, MaxPerDay: 0, MaxPerHour: 1},
			expected: ErrInvalidQuota,
		},
		{
			name: "missing host",
			opts: Options{
				Accounts:  []AccountOptions{{Address: "a@example.com"}},
				MaxPerDay: 1, MaxPerHour: 1,
			},
			expected: ErrMissingHost,
		},
		{
			name: "duplicate",
			opts: Options{
				Accounts:  []AccountOptions{valid, valid},
				MaxPerDay: 1, MaxPerHour: 1,
			},
			expected: ErrDuplicateAccount,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewRegistry(tc.opts)
			assert.ErrorIs(t, err, tc.expected)
		})
	}

	_, err := NewRegistry(Options{
		Accounts:  []AccountOptions{{Address: "not an address", Host: "mail.example.com"}},
		MaxPerDay: 1, MaxPerHour: 1,
	})
	assert.Error(t, err)
}
