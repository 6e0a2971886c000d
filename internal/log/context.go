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

package log

import (
	"context"

	"github.com/rs/zerolog"
)

type fieldRecipient struct{}
type fieldAccount struct{}
type fieldBatch struct{}

// WithRecipient attaches the recipient address to every event logged with the context.
func WithRecipient(ctx context.Context, recipient string) context.Context {
	return context.WithValue(ctx, fieldRecipient{}, recipient)
}

// WithAccount attaches the sending account address.
func WithAccount(ctx context.Context, account string) context.Context {
	return context.WithValue(ctx, fieldAccount{}, account)
}

// WithBatch attaches the name of the input batch a recipient was read from.
func WithBatch(ctx context.Context, batch string) context.Context {
	return context.WithValue(ctx, fieldBatch{}, batch)
}

func appendContextFields(ctx context.Context, event *zerolog.Event) *zerolog.Event {
	if batch, ok := ctx.Value(fieldBatch{}).(string); ok {
		event.Str("batch", batch)
	}

	if recipient, ok := ctx.Value(fieldRecipient{}).(string); ok {
		event.Str("recipient", recipient)
	}

	if account, ok := ctx.Value(fieldAccount{}).(string); ok {
		event.Str("account", account)
	}

	return event
}
