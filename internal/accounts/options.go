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
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/lukasdietrich/mailpog/internal/models"
)

const defaultSubmissionPort = 465

func init() {
	viper.SetDefault("quota.maxPerDay", 500)
	viper.SetDefault("quota.maxPerHour", 80)
	viper.SetDefault("dkim.defaultSelector", "cloudflare")
}

var (
	// ErrNoAccounts is returned when no sending account is configured.
	ErrNoAccounts = errors.New("accounts: no accounts configured")
	// ErrInvalidQuota is returned for non-positive quota limits.
	ErrInvalidQuota = errors.New("accounts: quota limits must be positive")
	// ErrMissingHost is returned for accounts without a submission host.
	ErrMissingHost = errors.New("accounts: missing submission host")
	// ErrDuplicateAccount is returned when an address is configured twice.
	ErrDuplicateAccount = errors.New("accounts: duplicate account")
)

// AccountOptions is the configuration of a single sending account.
type AccountOptions struct {
	Address     string `mapstructure:"address"`
	Name        string `mapstructure:"name"`
	Username    string `mapstructure:"username"`
	Password    string `mapstructure:"password"`
	PasswordEnv string `mapstructure:"passwordEnv"`
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	ReplyTo     string `mapstructure:"replyTo"`
	Unsubscribe string `mapstructure:"unsubscribe"`
	Selector    string `mapstructure:"selector"`
	DKIMKeyFile string `mapstructure:"dkimKeyFile"`
}

type Options struct {
	Accounts        []AccountOptions
	MaxPerDay       int
	MaxPerHour      int
	DefaultSelector string
}

// OptionsFromViper reads the account list and the quota limits.
//
// `accounts` is the ordered list of sending accounts.
// `quota.maxPerDay` is the number of messages a single account may send per calendar day.
// `quota.maxPerHour` is the number of messages a single account may send per hour.
// `dkim.defaultSelector` is used for accounts without an explicit selector.
func OptionsFromViper() (Options, error) {
	var accounts []AccountOptions

	if err := viper.UnmarshalKey("accounts", &accounts); err != nil {
		return Options{}, fmt.Errorf("accounts: %w", err)
	}

	return Options{
		Accounts:        accounts,
		MaxPerDay:       viper.GetInt("quota.maxPerDay"),
		MaxPerHour:      viper.GetInt("quota.maxPerHour"),
		DefaultSelector: viper.GetString("dkim.defaultSelector"),
	}, nil
}

func (o Options) limits() (Limits, error) {
	if o.MaxPerDay < 1 || o.MaxPerHour < 1 {
		return Limits{}, fmt.Errorf("%w: maxPerDay=%d maxPerHour=%d",
			ErrInvalidQuota, o.MaxPerDay, o.MaxPerHour)
	}

	return Limits{MaxPerDay: o.MaxPerDay, MaxPerHour: o.MaxPerHour}, nil
}

func (o Options) newAccount(raw AccountOptions) (*Account, error) {
	address, err := models.Parse(raw.Address)
	if err != nil {
		return nil, fmt.Errorf("accounts: address %q: %w", raw.Address, err)
	}

	if raw.Host == "" {
		return nil, fmt.Errorf("%w: %s", ErrMissingHost, address)
	}

	account := Account{
		Address:     address,
		Name:        raw.Name,
		Username:    raw.Username,
		Password:    raw.Password,
		Host:        raw.Host,
		Port:        raw.Port,
		ReplyTo:     address,
		Unsubscribe: raw.Unsubscribe,
		Selector:    raw.Selector,
		DKIMKeyFile: raw.DKIMKeyFile,
	}

	if account.Username == "" {
		account.Username = address.String()
	}

	if account.Password == "" && raw.PasswordEnv != "" {
		account.Password = os.Getenv(raw.PasswordEnv)
	}

	if account.Port == 0 {
		account.Port = defaultSubmissionPort
	}

	if account.Selector == "" {
		account.Selector = o.DefaultSelector
	}

	if raw.ReplyTo != "" {
		if account.ReplyTo, err = models.Parse(raw.ReplyTo); err != nil {
			return nil, fmt.Errorf("accounts: reply-to %q: %w", raw.ReplyTo, err)
		}
	}

	return &account, nil
}
