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

package dispatch

import (
	"context"
	"io"
	"time"

	"github.com/lukasdietrich/mailpog/internal/accounts"
	"github.com/lukasdietrich/mailpog/internal/models"
	"github.com/lukasdietrich/mailpog/internal/recipients"
)

type fakeClock struct {
	now     time.Time
	sleeps  []time.Duration
	onSleep func(time.Duration)
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	c.sleeps = append(c.sleeps, d)

	if c.onSleep != nil {
		c.onSleep(d)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	c.now = c.now.Add(d)
	return nil
}

type sliceStream struct {
	recipients []recipients.Recipient
}

func newStream(addresses ...string) *sliceStream {
	stream := new(sliceStream)

	for i, address := range addresses {
		stream.recipients = append(stream.recipients, recipients.Recipient{
			Address: models.MustParse(address),
			Batch:   "batch.csv",
			Line:    i + 1,
		})
	}

	return stream
}

func (s *sliceStream) Next() (recipients.Recipient, error) {
	if len(s.recipients) == 0 {
		return recipients.Recipient{}, io.EOF
	}

	recipient := s.recipients[0]
	s.recipients = s.recipients[1:]

	return recipient, nil
}

func newTestRegistry(maxPerDay, maxPerHour int, addresses ...string) (*accounts.Registry, error) {
	opts := accounts.Options{
		MaxPerDay:       maxPerDay,
		MaxPerHour:      maxPerHour,
		DefaultSelector: "sel",
	}

	for _, address := range addresses {
		opts.Accounts = append(opts.Accounts, accounts.AccountOptions{
			Address: address,
			Host:    "mail.example.com",
		})
	}

	return accounts.NewRegistry(opts)
}
