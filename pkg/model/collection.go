package model

import (
	"slices"

	"github.com/samber/lo"
)

// ChangeKind classifies a collection event.
type ChangeKind int

const (
	Inserted ChangeKind = iota
	Removed
	Updated
)

func (k ChangeKind) String() string {
	switch k {
	case Inserted:
		return "inserted"
	case Removed:
		return "removed"
	case Updated:
		return "updated"
	}
	return "unknown"
}

// Change describes one mutation of a [Collection]. Index is the position
// the item had (Removed) or has (Inserted, Updated).
type Change[T any] struct {
	Kind  ChangeKind
	Index int
	Item  T
}

// Collection is an ordered set with change notification. Items are compared
// by identity, so T is normally a pointer type.
type Collection[T comparable] struct {
	items []T
	subs  map[int]func(Change[T])
	next  int
}

// NewCollection returns an empty collection.
func NewCollection[T comparable]() *Collection[T] {
	return &Collection[T]{subs: make(map[int]func(Change[T]))}
}

func (c *Collection[T]) Len() int          { return len(c.items) }
func (c *Collection[T]) At(i int) T        { return c.items[i] }
func (c *Collection[T]) IndexOf(v T) int   { return lo.IndexOf(c.items, v) }
func (c *Collection[T]) Contains(v T) bool { return c.IndexOf(v) >= 0 }

// Items returns a copy of the items in order.
func (c *Collection[T]) Items() []T { return slices.Clone(c.items) }

// Append adds v at the end.
func (c *Collection[T]) Append(v T) {
	c.Insert(len(c.items), v)
}

// Insert places v at index i, clamped to [0, Len()]. Inserting an item
// that is already present is a no-op.
func (c *Collection[T]) Insert(i int, v T) {
	if c.Contains(v) {
		return
	}
	i = lo.Clamp(i, 0, len(c.items))
	c.items = slices.Insert(c.items, i, v)
	c.emit(Change[T]{Kind: Inserted, Index: i, Item: v})
}

// Remove deletes v and returns the index it had, or -1.
func (c *Collection[T]) Remove(v T) int {
	i := c.IndexOf(v)
	if i < 0 {
		return -1
	}
	c.RemoveAt(i)
	return i
}

// RemoveAt deletes and returns the item at i.
func (c *Collection[T]) RemoveAt(i int) T {
	v := c.items[i]
	c.items = slices.Delete(c.items, i, i+1)
	c.emit(Change[T]{Kind: Removed, Index: i, Item: v})
	return v
}

// Notify publishes an Updated event for v after an in-place edit.
func (c *Collection[T]) Notify(v T) {
	if i := c.IndexOf(v); i >= 0 {
		c.emit(Change[T]{Kind: Updated, Index: i, Item: v})
	}
}

// Clear removes every item, last to first.
func (c *Collection[T]) Clear() {
	for len(c.items) > 0 {
		c.RemoveAt(len(c.items) - 1)
	}
}

// Subscribe registers fn for change events and returns a function that
// unregisters it.
func (c *Collection[T]) Subscribe(fn func(Change[T])) (cancel func()) {
	if c.subs == nil {
		c.subs = make(map[int]func(Change[T]))
	}
	id := c.next
	c.next++
	c.subs[id] = fn
	return func() { delete(c.subs, id) }
}

func (c *Collection[T]) emit(ch Change[T]) {
	ids := make([]int, 0, len(c.subs))
	for id := range c.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		if fn, ok := c.subs[id]; ok {
			fn(ch)
		}
	}
}
