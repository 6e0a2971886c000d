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
	"github.com/google/wire"

	"github.com/lukasdietrich/mailpog/internal/delivery"
	"github.com/lukasdietrich/mailpog/internal/dkim"
	"github.com/lukasdietrich/mailpog/internal/message"
	"github.com/lukasdietrich/mailpog/internal/storage"
)

// WireSet provides the scheduler.
var WireSet = wire.NewSet(
	OptionsFromViper,
	NewSystemClock,
	NewScheduler,
	wire.Bind(new(Composer), new(*message.Composer)),
	wire.Bind(new(Signer), new(*dkim.Signer)),
	wire.Bind(new(Courier), new(*delivery.Courier)),
	wire.Bind(new(DeliveryLog), new(*storage.DeliveryLog)),
)
