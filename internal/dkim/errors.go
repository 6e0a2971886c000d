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
	"errors"
	"fmt"
)

// Reason classifies a signing failure.
type Reason int

const (
	// ReasonOther is any failure besides a missing record, like an unreachable name server,
	// an unparsable key or a failing signature transform.
	ReasonOther Reason = iota
	// ReasonNotFound is used, when the key record name does not exist.
	ReasonNotFound
	// ReasonNoAnswer is used, when the key record name exists, but carries no dkim key.
	ReasonNoAnswer
)

func (r Reason) String() string {
	switch r {
	case ReasonNotFound:
		return "not found"
	case ReasonNoAnswer:
		return "no answer"
	}

	return "other"
}

var (
	errNameNotFound = errors.New("dkim: name not found")
	errNoKeyRecord  = errors.New("dkim: no key record")
)

// SignError is returned for every failure to sign a message.
type SignError struct {
	Reason   Reason
	Selector string
	Domain   string
	Err      error
}

func (e *SignError) Error() string {
	return fmt.Sprintf("dkim: could not sign for %s._domainkey.%s (%s): %v",
		e.Selector, e.Domain, e.Reason, e.Err)
}

func (e *SignError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a SignError caused by a missing key record name.
func IsNotFound(err error) bool {
	var signErr *SignError
	return errors.As(err, &signErr) && signErr.Reason == ReasonNotFound
}

func newSignError(selector, domain string, err error) *SignError {
	reason := ReasonOther

	switch {
	case errors.Is(err, errNameNotFound):
		reason = ReasonNotFound
	case errors.Is(err, errNoKeyRecord):
		reason = ReasonNoAnswer
	}

	return &SignError{
		Reason:   reason,
		Selector: selector,
		Domain:   domain,
		Err:      err,
	}
}
