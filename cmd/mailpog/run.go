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

	"github.com/lukasdietrich/mailpog/internal/accounts"
	"github.com/lukasdietrich/mailpog/internal/database"
	"github.com/lukasdietrich/mailpog/internal/dispatch"
	"github.com/lukasdietrich/mailpog/internal/dkim"
	"github.com/lukasdietrich/mailpog/internal/log"
	"github.com/lukasdietrich/mailpog/internal/recipients"
	"github.com/lukasdietrich/mailpog/internal/storage"
)

type dispatchCommand struct {
	Registry    *accounts.Registry
	Preflight   *accounts.Preflight
	Keys        *dkim.FileResolver
	Source      *recipients.Source
	DeliveryLog *storage.DeliveryLog
	Conn        database.Conn
	Scheduler   *dispatch.Scheduler
}

func (d *dispatchCommand) run(ctx context.Context) error {
	defer d.Conn.Close()

	if err := registerKeyFiles(d.Keys, d.Registry); err != nil {
		return err
	}

	d.Preflight.Check(ctx, d.Registry)

	if err := d.DeliveryLog.EnsureInitialized(); err != nil {
		return err
	}

	stream, err := d.Source.Open(ctx)
	if err != nil {
		return err
	}

	defer stream.Close()

	_, err = d.Scheduler.Run(ctx, stream)
	return err
}

// registerKeyFiles makes accounts with a local key file skip the dns lookup.
func registerKeyFiles(keys *dkim.FileResolver, registry *accounts.Registry) error {
	for _, account := range registry.Accounts() {
		if account.DKIMKeyFile == "" {
			continue
		}

		domain, err := account.Address.ASCIIDomain()
		if err != nil {
			return err
		}

		keys.Register(account.Selector, domain, account.DKIMKeyFile)

		log.Info().
			Stringer("account", account.Address).
			Str("filename", account.DKIMKeyFile).
			Msg("using local dkim key")
	}

	return nil
}
