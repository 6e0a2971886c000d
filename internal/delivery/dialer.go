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

package delivery

import (
	"crypto/tls"
	"errors"
	"fmt"
	"net/textproto"

	"gopkg.in/gomail.v2"

	"github.com/lukasdietrich/mailpog/internal/accounts"
)

// Dialer opens an authenticated submission session for an account.
type Dialer interface {
	Dial(*accounts.Account) (gomail.SendCloser, error)
}

// SubmissionDialer connects to the submission host of an account. Port 465 uses implicit
// tls, every other port is upgraded with STARTTLS.
type SubmissionDialer struct{}

func NewSubmissionDialer() SubmissionDialer {
	return SubmissionDialer{}
}

func (SubmissionDialer) Dial(account *accounts.Account) (gomail.SendCloser, error) {
	d := gomail.NewDialer(account.Host, account.Port, account.Username, account.Password)
	d.TLSConfig = &tls.Config{
		ServerName: account.Host,
		MinVersion: tls.VersionTLS12,
	}

	return d.Dial()
}

// Error is a failed delivery of a message from an account to a recipient.
type Error struct {
	Account   string
	Recipient string
	// Permanent is set for 5xx replies, which will fail again on retry.
	Permanent bool
	Err       error
}

func (e *Error) Error() string {
	kind := "transient"
	if e.Permanent {
		kind = "permanent"
	}

	return fmt.Sprintf("delivery: %s failure from %s to %s: %v", kind, e.Account, e.Recipient, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// isPermanentErr tests if an error is an smtp error and if it has a 5xx code.
func isPermanentErr(err error) bool {
	var protoError *textproto.Error
	if errors.As(err, &protoError) {
		return protoError.Code >= 500 && protoError.Code < 600
	}

	return false
}

// isTransientErr tests if an error is an smtp error and if it has a 4xx code.
func isTransientErr(err error) bool {
	var protoError *textproto.Error
	if errors.As(err, &protoError) {
		return protoError.Code >= 400 && protoError.Code < 500
	}

	return false
}
