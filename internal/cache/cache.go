// Package cache remembers what content was last evaluated for each path, so
// long-running modes such as watch can skip files that were saved without
// changes. Nothing is persisted.
package cache

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Digests maps a path to the xxhash of its last evaluated content.
type Digests struct {
	mu      sync.Mutex
	entries map[string]uint64
}

func New() *Digests {
	return &Digests{entries: map[string]uint64{}}
}

// Changed records content for path and reports whether it differs from the
// previously recorded content. The first sighting of a path is a change.
func (d *Digests) Changed(path string, content []byte) bool {
	sum := xxhash.Sum64(content)
	d.mu.Lock()
	defer d.mu.Unlock()
	prev, ok := d.entries[path]
	d.entries[path] = sum
	return !ok || prev != sum
}

// Forget drops path, so its next sighting counts as a change.
func (d *Digests) Forget(path string) {
	d.mu.Lock()
	delete(d.entries, path)
	d.mu.Unlock()
}

// Filter returns the subset of paths (relative to root) whose content changed.
// Unreadable paths are forgotten and kept so the caller can decide what a
// missing file means.
func (d *Digests) Filter(root string, paths []string) []string {
	var out []string
	for _, p := range paths {
		full := p
		if !filepath.IsAbs(p) {
			full = filepath.Join(root, p)
		}
		b, err := os.ReadFile(full)
		if err != nil {
			d.Forget(p)
			out = append(out, p)
			continue
		}
		if d.Changed(p, b) {
			out = append(out, p)
		}
	}
	return out
}

// Len reports how many paths are tracked.
func (d *Digests) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}
