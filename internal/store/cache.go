package store

import (
	"sync"

	"hnterm/internal/hn"
)

// Cache maps a section to the last successfully fetched story list for
// that section. It is written only by the fetch orchestrator (which runs
// on a command goroutine) and read by the UI, hence the lock. There is no
// eviction; the section set is small and fixed, and entries live for the
// process lifetime.
//
// A failed fetch never touches the cache: a stale entry is preferred over
// an empty one.
type Cache struct {
	mu      sync.RWMutex
	entries map[hn.Section][]hn.Story
}

func NewCache() *Cache {
	return &Cache{entries: make(map[hn.Section][]hn.Story)}
}

// Get returns the cached stories for a section. It never triggers a
// fetch. Callers must not mutate the returned slice.
func (c *Cache) Get(section hn.Section) ([]hn.Story, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	stories, ok := c.entries[section]
	return stories, ok
}

// Has reports whether a section has a cached entry.
func (c *Cache) Has(section hn.Section) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[section]
	return ok
}

// Put replaces the section's entry wholesale. Only successful fetches may
// be stored.
func (c *Cache) Put(section hn.Section, stories []hn.Story) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[section] = stories
}

// Sections returns the sections currently cached, in canonical order.
func (c *Cache) Sections() []hn.Section {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var cached []hn.Section
	for _, s := range hn.Sections() {
		if _, ok := c.entries[s]; ok {
			cached = append(cached, s)
		}
	}
	return cached
}

// Len returns the number of cached sections.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
