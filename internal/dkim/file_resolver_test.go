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
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileResolver(t *testing.T) {
	var (
		ctx  = context.Background()
		fs   = afero.NewMemMapFs()
		next = &fakeResolver{keys: map[string]string{"sel.example.org": "dns-key"}}
	)

	require.NoError(t, afero.WriteFile(fs, "keys/example.com.pem", []byte("file-key"), 0600))

	resolver := NewFileResolver(fs, next)
	resolver.Register("sel", "example.com", "keys/example.com.pem")
	resolver.Register("sel", "example.net", "keys/missing.pem")

	key, err := resolver.Resolve(ctx, "sel", "example.com")
	require.NoError(t, err)
	assert.Equal(t, "file-key", key)

	key, err = resolver.Resolve(ctx, "sel", "example.org")
	require.NoError(t, err)
	assert.Equal(t, "dns-key", key)

	_, err = resolver.Resolve(ctx, "sel", "example.net")
	assert.Error(t, err)

	assert.Equal(t, 1, next.calls)
}
