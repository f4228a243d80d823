package store

import "sync"

// CounterStore holds the counter widget's value. It starts at zero.
type CounterStore struct {
	mu    sync.Mutex
	value int
}

// NewCounterStore creates a counter at zero.
func NewCounterStore() *CounterStore {
	return &CounterStore{}
}

// Increment adds one and returns the new value.
func (c *CounterStore) Increment() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value++
	return c.value
}

// Value returns the current value.
func (c *CounterStore) Value() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}
