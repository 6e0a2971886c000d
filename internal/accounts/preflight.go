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

package accounts

import (
	"context"
	"net"

	"github.com/spf13/viper"
	"github.com/zaccone/spf"

	"github.com/lukasdietrich/mailpog/internal/log"
)

func init() {
	viper.SetDefault("preflight.spf", false)
}

type PreflightOptions struct {
	SPF bool
}

// PreflightOptionsFromViper reads the startup checks.
//
// `preflight.spf` enables checking the submission hosts against the spf policy of the
// account domains.
func PreflightOptionsFromViper() PreflightOptions {
	return PreflightOptions{
		SPF: viper.GetBool("preflight.spf"),
	}
}

type hostLookup func(context.Context, string) ([]net.IPAddr, error)

type spfCheck func(net.IP, string, string) (spf.Result, string, error)

// Preflight checks the accounts before any message is sent. It only reports.
type Preflight struct {
	opts       PreflightOptions
	lookupHost hostLookup
	checkHost  spfCheck
}

func NewPreflight(opts PreflightOptions) *Preflight {
	return &Preflight{
		opts:       opts,
		lookupHost: net.DefaultResolver.LookupIPAddr,
		checkHost:  spf.CheckHost,
	}
}

// Check logs a warning for every account whose submission host fails the spf policy of
// its domain and returns the number of warnings.
func (p *Preflight) Check(ctx context.Context, registry *Registry) int {
	if !p.opts.SPF {
		return 0
	}

	var warnings int

	for _, account := range registry.Accounts() {
		ctx := log.WithAccount(ctx, account.Address.String())

		addrs, err := p.lookupHost(ctx, account.Host)
		if err != nil || len(addrs) == 0 {
			log.WarnContext(ctx).
				Str("host", account.Host).
				Err(err).
				Msg("could not resolve submission host")

			warnings++
			continue
		}

		ip := addrs[0].IP

		result, _, err := p.checkHost(ip, account.Address.Domain(), account.Address.String())
		if err != nil {
			log.InfoContext(ctx).
				Err(err).
				Msg("could not check spf")
		}

		if result == spf.Fail || result == spf.Softfail {
			log.WarnContext(ctx).
				Stringer("ip", ip).
				Stringer("result", result).
				Msg("submission host is not permitted by the spf policy")

			warnings++
			continue
		}

		log.InfoContext(ctx).
			Stringer("ip", ip).
			Stringer("result", result).
			Msg("spf result")
	}

	return warnings
}
