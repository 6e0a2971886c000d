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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/lukasdietrich/mailpog/internal/accounts"
	"github.com/lukasdietrich/mailpog/internal/dkim"
	"github.com/lukasdietrich/mailpog/internal/log"
	"github.com/lukasdietrich/mailpog/internal/message"
	"github.com/lukasdietrich/mailpog/internal/recipients"
)

// errCheckFailed is returned when at least one account cannot sign its messages.
var errCheckFailed = errors.New("check failed")

type checkCommand struct {
	Registry  *accounts.Registry
	Preflight *accounts.Preflight
	Keys      *dkim.FileResolver
	Composer  *message.Composer
	Signer    *dkim.Signer
	Source    *recipients.Source
}

func (c *checkCommand) run(ctx context.Context) error {
	if err := registerKeyFiles(c.Keys, c.Registry); err != nil {
		return err
	}

	warnings := c.Preflight.Check(ctx, c.Registry)

	if failed := checkSigning(ctx, c.Registry, c.Composer, c.Signer); failed > 0 {
		return fmt.Errorf("%w: %d accounts cannot sign", errCheckFailed, failed)
	}

	stream, err := c.Source.Open(ctx)
	if err != nil {
		return err
	}

	defer stream.Close()

	var (
		total    int
		distinct = make(map[string]bool)
	)

	for {
		recipient, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return err
		}

		total++
		distinct[recipient.Address.String()] = true
	}

	limits := c.Registry.Limits()

	log.Info().
		Int("accounts", len(c.Registry.Accounts())).
		Int("maxPerDay", limits.MaxPerDay).
		Int("maxPerHour", limits.MaxPerHour).
		Int("recipients", total).
		Int("distinct", len(distinct)).
		Int("warnings", warnings).
		Msg("configuration is valid")

	return nil
}

// checkSigning composes and signs a message from every account to itself, which resolves and
// parses the dkim key of each account. It returns the number of accounts that failed.
func checkSigning(ctx context.Context, registry *accounts.Registry, composer *message.Composer, signer *dkim.Signer) int {
	var failed int

	for _, account := range registry.Accounts() {
		ctx := log.WithAccount(ctx, account.Address.String())

		if err := signAsAccount(ctx, account, composer, signer); err != nil {
			log.ErrorContext(ctx).
				Str("selector", account.Selector).
				Bool("notFound", dkim.IsNotFound(err)).
				Err(err).
				Msg("account cannot sign messages")

			failed++
			continue
		}

		log.InfoContext(ctx).
			Str("selector", account.Selector).
			Msg("dkim key is usable")
	}

	return failed
}

func signAsAccount(ctx context.Context, account *accounts.Account, composer *message.Composer, signer *dkim.Signer) error {
	raw, err := composer.Compose(account, account.Address)
	if err != nil {
		return err
	}

	domain, err := account.Address.ASCIIDomain()
	if err != nil {
		return err
	}

	_, err = signer.Sign(ctx, raw, account.Selector, domain)
	return err
}
