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
	"database/sql/driver"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseInvalid(t *testing.T) {
	for _, raw := range []string{
		"",
		"   ",
		"no-at-sign",
		"@example.com",
		"someone@",
	} {
		addr, err := Parse(raw)
		assert.Equal(t, ErrInvalidAddressFormat, err, raw)
		assert.Zero(t, addr)
	}
}

func TestParseTooLong(t *testing.T) {
	for _, raw := range []string{
		longString(200) + "@" + longString(200),
		longString(65) + "@a",
		longString(64) + "@" + longString(192),
	} {
		addr, err := Parse(raw)
		assert.Equal(t, ErrPathTooLong, err)
		assert.Zero(t, addr)
	}
}

func TestParseValid(t *testing.T) {
	for _, raw := range []string{
		longString(64) + "@" + longString(100),
		longString(10) + "@" + longString(245),
		"someone@example.com",
	} {
		addr, err := Parse(raw)
		assert.NoError(t, err)
		assert.False(t, addr.IsZero())
		assert.Equal(t, raw, addr.String())
	}
}

func TestParseTrims(t *testing.T) {
	addr, err := Parse("  someone@example.com\t")
	assert.NoError(t, err)
	assert.Equal(t, "someone@example.com", addr.String())
	assert.Equal(t, "someone", addr.LocalPart())
	assert.Equal(t, "example.com", addr.Domain())
}

func TestParseKeepsCase(t *testing.T) {
	upper, err := Parse("Someone@Example.com")
	assert.NoError(t, err)

	lower, err := Parse("someone@example.com")
	assert.NoError(t, err)

	assert.NotEqual(t, upper, lower)
}

func longString(n int) string {
	r := make([]rune, n)
	for i := 0; i < n; i++ {
		r[i] = 'a'
	}

	return string(r)
}

func TestDomainToASCII(t *testing.T) {
	for domain, expected := range map[string]string{
		"example.com":     "example.com",
		"dömäin.example":  "xn--dmin-moa0i.example",
		"DÖMÄIN.example":  "xn--dmin-moa0i.example",
		"déjà.vu.example": "xn--dj-kia8a.vu.example",
	} {
		actual, err := DomainToASCII(domain)
		assert.NoError(t, err)
		assert.Equal(t, expected, actual)
	}
}

func TestASCIIDomain(t *testing.T) {
	addr := MustParse("shop@dömäin.example")

	domain, err := addr.ASCIIDomain()
	assert.NoError(t, err)
	assert.Equal(t, "xn--dmin-moa0i.example", domain)
}

func TestMustParsePanics(t *testing.T) {
	assert.Panics(t, func() { MustParse("invalid") })
}

func TestImplementsScanner(t *testing.T) {
	addr := new(Address)
	var scanner sql.Scanner = addr

	assert.NoError(t, scanner.Scan("someone@example.com"))
	assert.Equal(t, "someone", addr.LocalPart())
	assert.Equal(t, "example.com", addr.Domain())
}

func TestImplementsValuer(t *testing.T) {
	addr := MustParse("someone@example.com")

	var valuer driver.Valuer = addr

	value, err := valuer.Value()
	assert.NoError(t, err)
	assert.Equal(t, "someone@example.com", value)
}
