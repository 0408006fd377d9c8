package cache

import (
	"log/slog"
	"sync"
)

type InMem[V any] struct {
	data map[string]V
	mu   sync.RWMutex
}

func NewInMemoryCache[V any]() *InMem[V] {
	return &InMem[V]{
		data: make(map[string]V),
	}
}

func (c *InMem[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
}

// Nuke drops every entry, but only when the caller is sure.
func (c *InMem[V]) Nuke(sure bool) {
	if !sure {
		slog.Warn("refusing to nuke cache without confirmation")
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	slog.Debug("nuking cache", "entries", len(c.data))
	c.data = make(map[string]V)
}

func (c *InMem[V]) Put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
}

func (c *InMem[V]) Get(key string) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	val, ok := c.data[key]
	return val, ok
}

func (c *InMem[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}
