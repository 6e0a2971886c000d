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
	"github.com/google/wire"
	"github.com/spf13/afero"
)

// NewKeyResolver chains local key files, the key cache and dns lookups.
func NewKeyResolver(fs afero.Fs, resolverOpts ResolverOptions, cacheOpts CacheOptions) *FileResolver {
	return NewFileResolver(fs, NewCachingResolver(NewDNSResolver(resolverOpts), cacheOpts))
}

// WireSet provides the message signer.
var WireSet = wire.NewSet(
	ResolverOptionsFromViper,
	CacheOptionsFromViper,
	NewKeyResolver,
	wire.Bind(new(KeyResolver), new(*FileResolver)),
	NewSigner,
)
