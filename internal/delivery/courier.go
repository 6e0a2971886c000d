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
	"bytes"
	"context"
	"io"

	"github.com/lukasdietrich/mailpog/internal/accounts"
	"github.com/lukasdietrich/mailpog/internal/log"
	"github.com/lukasdietrich/mailpog/internal/models"
)

type rawMessage []byte

func (m rawMessage) WriteTo(w io.Writer) (int64, error) {
	return bytes.NewReader(m).WriteTo(w)
}

// Courier submits signed messages. Failures are reported and never retried.
type Courier struct {
	dialer Dialer
}

func NewCourier(dialer Dialer) *Courier {
	return &Courier{dialer: dialer}
}

// Deliver opens a session as account and hands off the message for recipient. Every
// failure is returned as *Error.
func (c *Courier) Deliver(ctx context.Context, account *accounts.Account, recipient models.Address, message []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	log.DebugContext(ctx).
		Str("host", account.Host).
		Int("port", account.Port).
		Msg("connecting to submission host")

	session, err := c.dialer.Dial(account)
	if err != nil {
		return c.wrapErr(ctx, account, recipient, err)
	}

	sendErr := session.Send(account.Address.String(), []string{recipient.String()}, rawMessage(message))
	closeErr := session.Close()

	if sendErr != nil {
		return c.wrapErr(ctx, account, recipient, sendErr)
	}

	if closeErr != nil {
		log.DebugContext(ctx).
			Err(closeErr).
			Msg("could not close submission session")
	}

	return nil
}

func (c *Courier) wrapErr(ctx context.Context, account *accounts.Account, recipient models.Address, err error) error {
	deliveryErr := &Error{
		Account:   account.Address.String(),
		Recipient: recipient.String(),
		Permanent: isPermanentErr(err),
		Err:       err,
	}

	log.DebugContext(ctx).
		Bool("permanent", deliveryErr.Permanent).
		Bool("transient", isTransientErr(err)).
		Err(err).
		Msg("submission failed")

	return deliveryErr
}
