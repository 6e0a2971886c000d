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
	"sync"
	"time"

	"github.com/spf13/viper"

	"github.com/lukasdietrich/mailpog/internal/log"
)

func init() {
	viper.SetDefault("dkim.cacheTTL", 24*time.Hour)
}

type CacheOptions struct {
	TTL time.Duration
}

// CacheOptionsFromViper reads the key cache options.
//
// `dkim.cacheTTL` is the age after which cached key material is fetched again.
func CacheOptionsFromViper() CacheOptions {
	return CacheOptions{
		TTL: viper.GetDuration("dkim.cacheTTL"),
	}
}

type cacheKey struct {
	selector string
	domain   string
}

type cacheEntry struct {
	value     string
	fetchedAt time.Time
}

// CachingResolver keeps successfully resolved key material for a limited time. Failures
// are never cached.
type CachingResolver struct {
	next KeyResolver
	ttl  time.Duration
	now  func() time.Time

	mu      sync.Mutex
	entries map[cacheKey]cacheEntry
}

func NewCachingResolver(next KeyResolver, opts CacheOptions) *CachingResolver {
	return &CachingResolver{
		next:    next,
		ttl:     opts.TTL,
		now:     time.Now,
		entries: make(map[cacheKey]cacheEntry),
	}
}

func (c *CachingResolver) Resolve(ctx context.Context, selector, domain string) (string, error) {
	key := cacheKey{selector: selector, domain: domain}

	if value, ok := c.lookup(key); ok {
		return value, nil
	}

	value, err := c.next.Resolve(ctx, selector, domain)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.entries[key] = cacheEntry{value: value, fetchedAt: c.now()}
	c.mu.Unlock()

	log.DebugContext(ctx).
		Str("selector", selector).
		Str("domain", domain).
		Msg("cached dkim key")

	return value, nil
}

func (c *CachingResolver) lookup(key cacheKey) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return "", false
	}

	if c.now().Sub(entry.fetchedAt) >= c.ttl {
		delete(c.entries, key)
		return "", false
	}

	return entry.value, true
}
