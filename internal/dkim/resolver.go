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
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/miekg/dns"
	"github.com/spf13/viper"

	"github.com/lukasdietrich/mailpog/internal/log"
)

const (
	resolvConf  = "/etc/resolv.conf"
	fallbackDNS = "1.1.1.1:53"
)

func init() {
	viper.SetDefault("dkim.resolver", "")
}

// KeyResolver looks up the key material published for a selector and domain.
type KeyResolver interface {
	Resolve(ctx context.Context, selector, domain string) (string, error)
}

type ResolverOptions struct {
	Addr string
}

// ResolverOptionsFromViper reads the name server used for key lookups.
//
// `dkim.resolver` is the name server address. When empty, the first name server of the
// system configuration is used.
func ResolverOptionsFromViper() ResolverOptions {
	return ResolverOptions{
		Addr: viper.GetString("dkim.resolver"),
	}
}

// DNSResolver fetches key material from TXT records.
type DNSResolver struct {
	addr     string
	exchange func(context.Context, *dns.Msg, string) (*dns.Msg, error)
}

func NewDNSResolver(opts ResolverOptions) *DNSResolver {
	addr := opts.Addr
	if addr == "" {
		addr = systemNameServer()
	}

	if _, _, err := net.SplitHostPort(addr); err != nil {
		addr = net.JoinHostPort(addr, "53")
	}

	log.Info().
		Str("resolver", addr).
		Msg("using name server for dkim keys")

	return &DNSResolver{
		addr:     addr,
		exchange: dns.ExchangeContext,
	}
}

func systemNameServer() string {
	config, err := dns.ClientConfigFromFile(resolvConf)
	if err != nil || len(config.Servers) == 0 {
		return fallbackDNS
	}

	return net.JoinHostPort(config.Servers[0], config.Port)
}

// Resolve queries `selector._domainkey.domain` and returns the value of the `p=` tag of
// the first record starting with `v=DKIM1;`.
func (r *DNSResolver) Resolve(ctx context.Context, selector, domain string) (string, error) {
	name := fmt.Sprintf("%s._domainkey.%s", selector, domain)

	m := new(dns.Msg)
	m.SetQuestion(dns.Fqdn(name), dns.TypeTXT)
	m.RecursionDesired = true

	log.DebugContext(ctx).
		Str("name", name).
		Msg("looking up dkim key")

	res, err := r.exchange(ctx, m, r.addr)
	if err != nil {
		return "", err
	}

	switch res.Rcode {
	case dns.RcodeSuccess:
	case dns.RcodeNameError:
		return "", fmt.Errorf("%w: %s", errNameNotFound, name)
	default:
		return "", fmt.Errorf("dkim: lookup %s: %s", name, dns.RcodeToString[res.Rcode])
	}

	for _, rr := range res.Answer {
		txt, ok := rr.(*dns.TXT)
		if !ok {
			continue
		}

		if key, ok := parseKeyRecord(strings.Join(txt.Txt, "")); ok {
			return key, nil
		}
	}

	return "", fmt.Errorf("%w: %s", errNoKeyRecord, name)
}

func parseKeyRecord(record string) (string, bool) {
	record = strings.ReplaceAll(record, `"`, "")

	if !strings.HasPrefix(record, "v=DKIM1;") {
		return "", false
	}

	for _, tag := range strings.Split(record, ";") {
		name, value, ok := strings.Cut(tag, "=")
		if !ok || strings.TrimSpace(name) != "p" {
			continue
		}

		value = strings.Join(strings.Fields(value), "")
		return value, value != ""
	}

	return "", false
}
