package cache

import (
	"sync"

	"github.com/example/commerce-service/internal/domain"
)

// MemoryOrderCache keeps copies of orders so callers can't mutate what is
// cached.
type MemoryOrderCache struct {
	mu    sync.RWMutex
	store map[string]*domain.Order
}

func NewMemoryOrderCache() *MemoryOrderCache {
	return &MemoryOrderCache{store: make(map[string]*domain.Order)}
}

func (c *MemoryOrderCache) Get(id string) (*domain.Order, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	o, ok := c.store[id]
	if !ok {
		return nil, false
	}
	return o.Clone(), true
}

func (c *MemoryOrderCache) Set(o *domain.Order) {
	cp := o.Clone()
	c.mu.Lock()
	c.store[cp.ID()] = cp
	c.mu.Unlock()
}

func (c *MemoryOrderCache) Delete(id string) {
	c.mu.Lock()
	delete(c.store, id)
	c.mu.Unlock()
}

func (c *MemoryOrderCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

var _ domain.OrderCache = (*MemoryOrderCache)(nil)
