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
	"database/sql/driver"
	"errors"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/text/unicode/norm"
)

var (
	// ErrInvalidAddressFormat is used for addresses of zero length, without an "@" sign or with
	// an empty local part or domain.
	ErrInvalidAddressFormat = errors.New("address: invalid format")

	// ErrPathTooLong is used for addresses, that are too long according to RFC#5321.
	ErrPathTooLong = errors.New("address: path too long")
)

// Address is a syntactically checked mail address. The raw input is kept as is, so that
// two addresses are equal exactly when their trimmed input was equal.
type Address struct {
	raw string
	at  int
}

// Parse trims surrounding whitespace and checks the basic address syntax.
func Parse(raw string) (Address, error) {
	raw = strings.TrimSpace(raw)

	at := strings.LastIndex(raw, "@")
	if at < 1 || at == len(raw)-1 {
		return Address{}, ErrInvalidAddressFormat
	}

	// see RFC#5321 4.5.3.1
	if at > 64 || len(raw)-at > 256 || len(raw) > 256 {
		return Address{}, ErrPathTooLong
	}

	return Address{raw, at}, nil
}

// MustParse is like Parse but panics on invalid input.
func MustParse(raw string) Address {
	addr, err := Parse(raw)
	if err != nil {
		panic(err)
	}

	return addr
}

func (a Address) String() string {
	return a.raw
}

func (a Address) IsZero() bool {
	return a.raw == ""
}

func (a Address) LocalPart() string {
	return a.raw[:a.at]
}

func (a Address) Domain() string {
	return a.raw[a.at+1:]
}

// ASCIIDomain returns the domain in its punycode form, as it is used in dns queries and
// DKIM signatures.
func (a Address) ASCIIDomain() (string, error) {
	return DomainToASCII(a.Domain())
}

func (a *Address) Scan(src interface{}) error {
	s, err := driver.String.ConvertValue(src)
	if err != nil {
		return err
	}

	v, err := Parse(s.(string))
	if err != nil {
		return err
	}

	*a = v
	return nil
}

func (a Address) Value() (driver.Value, error) {
	return a.raw, nil
}

func DomainToUnicode(domain string) (string, error) {
	mapped, err := idna.Lookup.ToUnicode(domain)
	if err != nil {
		return domain, err
	}

	return norm.NFC.String(mapped), nil
}

func DomainToASCII(domain string) (string, error) {
	mapped, err := DomainToUnicode(domain)
	if err != nil {
		return domain, err
	}

	return idna.Lookup.ToASCII(mapped)
}
