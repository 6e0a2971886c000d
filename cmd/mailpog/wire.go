//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/lukasdietrich/mailpog/internal/accounts"
	"github.com/lukasdietrich/mailpog/internal/database"
	"github.com/lukasdietrich/mailpog/internal/delivery"
	"github.com/lukasdietrich/mailpog/internal/dispatch"
	"github.com/lukasdietrich/mailpog/internal/dkim"
	"github.com/lukasdietrich/mailpog/internal/message"
	"github.com/lukasdietrich/mailpog/internal/recipients"
	"github.com/lukasdietrich/mailpog/internal/storage"
)

var wireSet = wire.NewSet(
	wire.Struct(new(dispatchCommand), "*"),
	wire.Struct(new(checkCommand), "*"),

	accounts.WireSet,
	database.WireSet,
	delivery.WireSet,
	dispatch.WireSet,
	dkim.WireSet,
	message.WireSet,
	recipients.WireSet,
	storage.WireSet,
)

func newDispatchCommand() (*dispatchCommand, error) {
	panic(wire.Build(wireSet))
}

func newCheckCommand() (*checkCommand, error) {
	panic(wire.Build(wireSet))
}
