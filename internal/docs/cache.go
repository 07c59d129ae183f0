package docs

import (
	"context"
	"fmt"
	"maps"

	"github.com/roach88/bindgen/internal/ir"
)

// CacheStore is the persistence the cache loads from and saves to.
// *store.Store satisfies it.
type CacheStore interface {
	LoadDocCache(ctx context.Context) (map[string]string, error)
	SaveDocCache(ctx context.Context, entries map[string]string) error
}

// Cache memoizes a Renderer by content hash. It is an explicit value owned
// by the driver: load it once before emission, save it once after.
type Cache struct {
	inner   Renderer
	entries map[string]string
	fresh   map[string]string // rendered this run, not yet saved
	hits    int
	misses  int
}

// NewCache wraps inner.
func NewCache(inner Renderer) *Cache {
	return &Cache{
		inner:   inner,
		entries: make(map[string]string),
		fresh:   make(map[string]string),
	}
}

// Render implements Renderer.
func (c *Cache) Render(name, markup string, width int) (string, error) {
	key, err := ir.DocKey(name, markup, width)
	if err != nil {
		return "", err
	}
	if text, ok := c.entries[key]; ok {
		c.hits++
		return text, nil
	}
	c.misses++
	text, err := c.inner.Render(name, markup, width)
	if err != nil {
		return "", err
	}
	c.entries[key] = text
	c.fresh[key] = text
	return text, nil
}

// Load merges persisted entries into the cache.
func (c *Cache) Load(ctx context.Context, s CacheStore) error {
	entries, err := s.LoadDocCache(ctx)
	if err != nil {
		return fmt.Errorf("load doc cache: %w", err)
	}
	maps.Copy(c.entries, entries)
	return nil
}

// Save persists entries rendered since the last Save.
func (c *Cache) Save(ctx context.Context, s CacheStore) error {
	if err := s.SaveDocCache(ctx, c.fresh); err != nil {
		return fmt.Errorf("save doc cache: %w", err)
	}
	c.fresh = make(map[string]string)
	return nil
}

// Stats reports cache hits and misses since creation.
func (c *Cache) Stats() (hits, misses int) {
	return c.hits, c.misses
}

// Len returns the number of cached renderings.
func (c *Cache) Len() int { return len(c.entries) }
