// Package collection keeps a flat record collection serialized as one JSON
// array under a single key of the substrate.
//
// Every operation loads the whole collection, works on it in memory and
// flattens it back. Records stay in insertion order; replacing a record
// keeps its position and removing one keeps the order of the rest.
package collection

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/notekeeper/internal/common"
	"github.com/dmitrijs2005/notekeeper/internal/repositories/kv"
)

// Identified records expose their id.
type Identified interface {
	GetID() string
}

// Collection is an ordered id -> record arena.
type Collection[T Identified] struct {
	items []T
	index map[string]int
}

// New builds a collection from records, in the given order.
func New[T Identified](records []T) *Collection[T] {
	c := &Collection[T]{items: records}
	c.reindex()
	return c
}

// Load reads the collection stored under key. A missing key is an empty
// collection; a value that is not a JSON array of T is ErrCorruptData.
func Load[T Identified](ctx context.Context, store kv.Store, key string) (*Collection[T], error) {
	raw, ok, err := store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return New[T](nil), nil
	}

	var records []T
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		return nil, fmt.Errorf("decode %s: %w: %w", key, common.ErrCorruptData, err)
	}
	return New(records), nil
}

// Save overwrites the value under key with the whole collection.
func (c *Collection[T]) Save(ctx context.Context, store kv.Store, key string) error {
	items := c.items
	if items == nil {
		items = []T{}
	}

	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return store.Set(ctx, key, string(b))
}

func (c *Collection[T]) reindex() {
	c.index = make(map[string]int, len(c.items))
	for i, item := range c.items {
		if _, dup := c.index[item.GetID()]; !dup {
			c.index[item.GetID()] = i
		}
	}
}

// Len is the number of records.
func (c *Collection[T]) Len() int { return len(c.items) }

// All returns a copy of the records in storage order.
func (c *Collection[T]) All() []T {
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Get returns the record with id.
func (c *Collection[T]) Get(id string) (T, bool) {
	i, ok := c.index[id]
	if !ok {
		var zero T
		return zero, false
	}
	return c.items[i], true
}

// Find returns the first record matching pred.
func (c *Collection[T]) Find(pred func(T) bool) (T, bool) {
	for _, item := range c.items {
		if pred(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Filter returns the records matching pred, in storage order.
func (c *Collection[T]) Filter(pred func(T) bool) []T {
	out := make([]T, 0)
	for _, item := range c.items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

// Append adds rec at the end.
func (c *Collection[T]) Append(rec T) {
	c.items = append(c.items, rec)
	if _, dup := c.index[rec.GetID()]; !dup {
		c.index[rec.GetID()] = len(c.items) - 1
	}
}

// Replace swaps the record with id for rec in place. It reports whether
// the id was present.
func (c *Collection[T]) Replace(id string, rec T) bool {
	i, ok := c.index[id]
	if !ok {
		return false
	}
	c.items[i] = rec
	if rec.GetID() != id {
		c.reindex()
	}
	return true
}

// Remove drops every record with id and reports whether any was present.
func (c *Collection[T]) Remove(id string) bool {
	if _, ok := c.index[id]; !ok {
		return false
	}
	kept := c.items[:0:0]
	for _, item := range c.items {
		if item.GetID() != id {
			kept = append(kept, item)
		}
	}
	c.items = kept
	c.reindex()
	return true
}
