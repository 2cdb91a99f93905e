package store

import (
	"context"
	"sync"
)

// memoryVisitCounter is used when no storage backend is enabled. Counts are
// lost on restart.
type memoryVisitCounter struct {
	mu     sync.Mutex
	visits map[string]int64
}

func NewMemoryVisitCounter() VisitCounter {
	return &memoryVisitCounter{visits: make(map[string]int64)}
}

func (c *memoryVisitCounter) Increment(_ context.Context, name string) (int64, error) {
	if name == "" {
		return 0, ErrEmptyName
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.visits[name]++
	return c.visits[name], nil
}

func (c *memoryVisitCounter) Count(_ context.Context, name string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.visits[name], nil
}
