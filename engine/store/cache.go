package store

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-assets/common"
)

// cache is a name-keyed map of materialized resources guarded by its own lock.
type cache[T any] struct {
	mu    sync.RWMutex
	items map[string]T
}

func newCache[T any]() *cache[T] {
	return &cache[T]{items: make(map[string]T)}
}

func (c *cache[T]) contains(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.items[name]
	return ok
}

func (c *cache[T]) get(name string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.items[name]
	return v, ok
}

// add stores v under name. A previous entry is replaced.
func (c *cache[T]) add(name string, v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[name] = v
}

func (c *cache[T]) len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *cache[T]) names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return common.SortedKeys(c.items)
}
