package rdb

import (
	"path/filepath"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache keeps recently loaded databases so that reloading content does
// not reparse the RDB file.
type Cache struct {
	mu      sync.Mutex
	entries *lru.Cache[string, *RDB]
}

// NewCache returns a cache holding up to size databases.
func NewCache(size int) *Cache {
	if size <= 0 {
		size = 1
	}
	entries, _ := lru.New[string, *RDB](size)
	return &Cache{entries: entries}
}

// Load returns the parsed database at path, reading it on first use.
func (c *Cache) Load(path string) (*RDB, error) {
	path = filepath.Clean(path)

	c.mu.Lock()
	defer c.mu.Unlock()

	if db, ok := c.entries.Get(path); ok {
		return db, nil
	}
	db, err := LoadRDB(path)
	if err != nil {
		return nil, err
	}
	c.entries.Add(path, db)
	return db, nil
}

// Len returns the number of cached databases.
func (c *Cache) Len() int {
	return c.entries.Len()
}
