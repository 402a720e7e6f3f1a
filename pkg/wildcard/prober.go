// SPDX-License-Identifier: MPL-2.0

package wildcard

import (
	"fmt"
	"os"

	lru "github.com/hashicorp/golang-lru/v2"
)

// probeCacheSize bounds the number of directory listings an OSProber keeps.
// Toolchain roots share long prefixes, so a small cache covers a whole run.
const probeCacheSize = 64

type (
	// Prober lists the immediate child directories of a directory. It is the
	// only filesystem access Resolve performs.
	Prober interface {
		ListDirs(dir string) ([]string, error)
	}

	// OSProber probes the real filesystem via os.ReadDir, memoizing listings
	// in an LRU cache so repeated resolutions against the same tree (e.g. the
	// toolchain root and its assemblies directory) do not re-read directories.
	OSProber struct {
		cache *lru.Cache[string, []string]
	}
)

// NewOSProber returns an OSProber with listing memoization enabled.
func NewOSProber() *OSProber {
	// lru.New fails only for non-positive sizes; probeCacheSize is a positive constant.
	cache, err := lru.New[string, []string](probeCacheSize)
	if err != nil {
		return &OSProber{}
	}
	return &OSProber{cache: cache}
}

// ListDirs returns the names of the immediate child directories of dir.
func (p *OSProber) ListDirs(dir string) ([]string, error) {
	if p.cache != nil {
		if names, ok := p.cache.Get(dir); ok {
			return names, nil
		}
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing child directories of %q: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	if p.cache != nil {
		p.cache.Add(dir, names)
	}
	return names, nil
}
