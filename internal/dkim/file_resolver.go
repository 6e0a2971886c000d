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
	"sync"

	"github.com/spf13/afero"
)

// FileResolver serves key material from local PEM files for registered selector and
// domain pairs and defers every other lookup.
type FileResolver struct {
	fs   afero.Fs
	next KeyResolver

	mu    sync.RWMutex
	files map[cacheKey]string
}

func NewFileResolver(fs afero.Fs, next KeyResolver) *FileResolver {
	return &FileResolver{
		fs:    fs,
		next:  next,
		files: make(map[cacheKey]string),
	}
}

// Register makes the resolver read the key for selector and domain from filename.
func (f *FileResolver) Register(selector, domain, filename string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.files[cacheKey{selector: selector, domain: domain}] = filename
}

func (f *FileResolver) Resolve(ctx context.Context, selector, domain string) (string, error) {
	f.mu.RLock()
	filename, ok := f.files[cacheKey{selector: selector, domain: domain}]
	f.mu.RUnlock()

	if !ok {
		return f.next.Resolve(ctx, selector, domain)
	}

	content, err := afero.ReadFile(f.fs, filename)
	if err != nil {
		return "", fmt.Errorf("dkim: read key file: %w", err)
	}

	return string(content), nil
}
