package database

import (
	"errors"
	"sync"
)

var ErrRecordNotFound = errors.New("record not found")

// Record is anything stored in a Collection.
type Record interface {
	Key() uint64
}

// Collection is an insertion-ordered in-memory list. Every write replaces the
// backing slice, so a reader never observes a half-applied change.
type Collection[T Record] struct {
	mu    sync.RWMutex
	items []T
}

func NewCollection[T Record](items ...T) *Collection[T] {
	c := &Collection[T]{items: make([]T, len(items))}
	copy(c.items, items)

	return c
}

// NextID returns one more than the largest key in items, or 1 when empty.
func NextID[T Record](items []T) uint64 {
	var highest uint64
	for _, item := range items {
		if item.Key() > highest {
			highest = item.Key()
		}
	}

	return highest + 1
}

func (c *Collection[T]) Insert(build func(id uint64) T) T {
	return c.InsertBatch(1, func(_ int, id uint64) T { return build(id) })[0]
}

// InsertBatch appends n records built with consecutive ids in one replace.
func (c *Collection[T]) InsertBatch(n int, build func(i int, id uint64) T) []T {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]T, len(c.items), len(c.items)+n)
	copy(next, c.items)

	added := make([]T, 0, n)
	for i := 0; i < n; i++ {
		item := build(i, NextID(next))
		next = append(next, item)
		added = append(added, item)
	}

	c.items = next

	return added
}

// Update applies fn to the record with the given id. When fn fails the
// collection is left untouched.
func (c *Collection[T]) Update(id uint64, fn func(T) (T, error)) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	for i, item := range c.items {
		if item.Key() != id {
			continue
		}

		updated, err := fn(item)
		if err != nil {
			return zero, err
		}

		next := make([]T, len(c.items))
		copy(next, c.items)
		next[i] = updated
		c.items = next

		return updated, nil
	}

	return zero, ErrRecordNotFound
}

func (c *Collection[T]) Get(id uint64) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, item := range c.items {
		if item.Key() == id {
			return item, true
		}
	}

	var zero T
	return zero, false
}

// List returns the records accepted by match in insertion order. A nil match accepts all.
func (c *Collection[T]) List(match func(T) bool) []T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]T, 0, len(c.items))
	for _, item := range c.items {
		if match == nil || match(item) {
			out = append(out, item)
		}
	}

	return out
}

func (c *Collection[T]) Count(match func(T) bool) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if match == nil {
		return len(c.items)
	}

	n := 0
	for _, item := range c.items {
		if match(item) {
			n++
		}
	}

	return n
}
