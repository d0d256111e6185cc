package formula

import "sync"

// Cache is a parse-once AST cache keyed by literal formula text. Entries are
// immutable shared data, so one cache can back any number of evaluation
// sessions. Parse failures are cached too: a malformed formula stays
// malformed no matter how many cells carry it.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

type cacheEntry struct {
	node Node
	err  error
}

// NewCache creates an empty AST cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]cacheEntry)}
}

// Get returns the AST for the given formula text, parsing it on first use.
func (c *Cache) Get(text string) (Node, error) {
	c.mu.RLock()
	e, ok := c.entries[text]
	c.mu.RUnlock()
	if ok {
		return e.node, e.err
	}

	node, err := Parse(text)

	c.mu.Lock()
	c.entries[text] = cacheEntry{node: node, err: err}
	c.mu.Unlock()
	return node, err
}

// Len returns the number of cached formulas.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
