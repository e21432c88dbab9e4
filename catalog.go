package guidebook

import (
	"fmt"
	"io/fs"
	"sync"
	"time"

	"github.com/eringen/guidebook/guide"
)

// Catalog is the in-memory guide list served to every session. It is
// replaced wholesale on Reload; readers always see a complete list.
type Catalog struct {
	mu      sync.RWMutex
	guides  []guide.Guide
	fetched time.Time
	fsys    fs.FS
	pattern string
}

// NewCatalog creates a Catalog that loads pattern from fsys. Call Reload
// before serving.
func NewCatalog(fsys fs.FS, pattern string) *Catalog {
	return &Catalog{fsys: fsys, pattern: pattern}
}

// StaticCatalog serves a fixed guide list. Reload is a no-op.
func StaticCatalog(guides []guide.Guide) *Catalog {
	return &Catalog{guides: guides, fetched: time.Now()}
}

// Reload reads the catalog again. On error the previous list is kept.
func (c *Catalog) Reload() error {
	if c.fsys == nil {
		return nil
	}
	guides, err := guide.Load(c.fsys, c.pattern)
	if err != nil {
		return fmt.Errorf("guidebook: load catalog: %w", err)
	}
	c.mu.Lock()
	c.guides = guides
	c.fetched = time.Now()
	c.mu.Unlock()
	return nil
}

// Guides returns the current guide list in catalog order. The slice is
// shared; callers must not modify it.
func (c *Catalog) Guides() []guide.Guide {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.guides
}

// LoadedAt reports when the current list was loaded.
func (c *Catalog) LoadedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.fetched
}
