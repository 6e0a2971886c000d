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
	"time"

	"github.com/spf13/viper"
)

func init() {
	viper.SetDefault("dispatch.sendDelay", 50*time.Second)
	viper.SetDefault("dispatch.globalHourlyReset", true)
	viper.SetDefault("dispatch.resume", false)
	viper.SetDefault("dispatch.restoreQuota", false)
	viper.SetDefault("dispatch.failover", false)
}

type Options struct {
	// SendDelay is the pause after every delivered message.
	SendDelay time.Duration
	// GlobalHourlyReset clears the hourly counters of all accounts as soon as the account
	// used for a delivery reaches its hourly limit.
	GlobalHourlyReset bool
	// Resume skips recipients delivered in previous runs.
	Resume bool
	// RestoreQuota counts the deliveries of previous runs today against the daily limit.
	RestoreQuota bool
	// Failover tries the next eligible account after a failed attempt.
	Failover bool
}

// OptionsFromViper reads the scheduling options.
//
// `dispatch.sendDelay` is the pause after every delivered message.
// `dispatch.globalHourlyReset` enables resetting all hourly counters when one account is capped.
// `dispatch.resume` enables skipping recipients delivered in earlier runs.
// `dispatch.restoreQuota` enables restoring daily counters from earlier runs.
// `dispatch.failover` enables trying further accounts after a failed attempt.
func OptionsFromViper() Options {
	return Options{
		SendDelay:         viper.GetDuration("dispatch.sendDelay"),
		GlobalHourlyReset: viper.GetBool("dispatch.globalHourlyReset"),
		Resume:            viper.GetBool("dispatch.resume"),
		RestoreQuota:      viper.GetBool("dispatch.restoreQuota"),
		Failover:          viper.GetBool("dispatch.failover"),
	}
}
