// Package storage holds the in-memory collection behind every memory-mode repository.
package storage

import (
	"errors"
	"sync"

	"garagehub/internal/types"
)

// ErrNotFound is returned by Get and Delete for unknown ids.
var ErrNotFound = errors.New("not found")

// Collection is a goroutine-safe, insertion-ordered map of values keyed by id.
// Values are stored and returned by copy.
type Collection[T any] struct {
	mu    sync.RWMutex
	idOf  func(T) types.ID
	items map[types.ID]T
	order []types.ID
}

func NewCollection[T any](idOf func(T) types.ID) *Collection[T] {
	return &Collection[T]{idOf: idOf, items: make(map[types.ID]T)}
}

// List returns every value accepted by keep, in insertion order. A nil keep
// accepts everything.
func (c *Collection[T]) List(keep func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		v := c.items[id]
		if keep == nil || keep(v) {
			out = append(out, v)
		}
	}
	return out
}

func (c *Collection[T]) Get(id types.ID) (T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.items[id]
	if !ok {
		var zero T
		return zero, ErrNotFound
	}
	return v, nil
}

// Upsert replaces the value with the same id or appends a new one.
func (c *Collection[T]) Upsert(v T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.idOf(v)
	if _, ok := c.items[id]; !ok {
		c.order = append(c.order, id)
	}
	c.items[id] = v
}

func (c *Collection[T]) Delete(id types.ID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.items[id]; !ok {
		return ErrNotFound
	}
	delete(c.items, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
