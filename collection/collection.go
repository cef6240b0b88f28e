// Package collection contains the ordered name/value store that backs every name-indexed surface
// of the fake HTTP objects: headers, form fields, query string, cookies, session items and
// application state.
//
// A Collection behaves like a list of (key, value) entries. Keys may repeat; lookups by key
// return the first matching entry, and positional access always refers to insertion order.
package collection

import (
	"errors"
	"fmt"
	"iter"
	"strings"
)

// ErrIndexOutOfRange is wrapped by every error returned for a position outside [0, Count).
var ErrIndexOutOfRange = errors.New("index out of range")

// Comparer decides whether two keys are equal.
type Comparer func(a, b string) bool

// Ordinal compares keys byte for byte.
func Ordinal(a, b string) bool { return a == b }

// IgnoreCase compares keys with Unicode case folding.
func IgnoreCase(a, b string) bool { return strings.EqualFold(a, b) }

type entry[T any] struct {
	key   string
	value T
}

// Collection is an ordered multi-map from string keys to values of type T.
//
// The zero value is not usable; call New. A Collection is not safe for concurrent mutation.
type Collection[T any] struct {
	entries  []entry[T]
	comparer Comparer
}

// New creates an empty collection that matches keys with the given comparer. A nil comparer
// means Ordinal.
func New[T any](comparer Comparer) *Collection[T] {
	if comparer == nil {
		comparer = Ordinal
	}
	return &Collection[T]{comparer: comparer}
}

// Comparer returns the key comparer the collection was created with.
func (c *Collection[T]) Comparer() Comparer {
	return c.comparer
}

// Count returns the number of entries.
func (c *Collection[T]) Count() int {
	return len(c.entries)
}

// Add appends an entry, even if an entry with the same key already exists.
func (c *Collection[T]) Add(key string, value T) {
	c.entries = append(c.entries, entry[T]{key: key, value: value})
}

// Get returns the value of the first entry whose key matches.
func (c *Collection[T]) Get(key string) (T, bool) {
	if i := c.indexOf(key); i >= 0 {
		return c.entries[i].value, true
	}
	var zero T
	return zero, false
}

// GetAll returns the values of every entry whose key matches, in insertion order.
func (c *Collection[T]) GetAll(key string) []T {
	var ret []T
	for _, e := range c.entries {
		if c.comparer(e.key, key) {
			ret = append(ret, e.value)
		}
	}
	return ret
}

// Has reports whether any entry has a matching key.
func (c *Collection[T]) Has(key string) bool {
	return c.indexOf(key) >= 0
}

// GetAt returns the value at the given position.
func (c *Collection[T]) GetAt(index int) (T, error) {
	if err := c.checkIndex(index); err != nil {
		var zero T
		return zero, err
	}
	return c.entries[index].value, nil
}

// GetKey returns the key at the given position.
func (c *Collection[T]) GetKey(index int) (string, error) {
	if err := c.checkIndex(index); err != nil {
		return "", err
	}
	return c.entries[index].key, nil
}

// AllKeys returns one key per entry, in insertion order, duplicates included.
func (c *Collection[T]) AllKeys() []string {
	keys := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		keys = append(keys, e.key)
	}
	return keys
}

// Set overwrites the value of the first entry whose key matches, or appends a new entry if
// there is none.
func (c *Collection[T]) Set(key string, value T) {
	if i := c.indexOf(key); i >= 0 {
		c.entries[i].value = value
		return
	}
	c.Add(key, value)
}

// SetAt overwrites the value at the given position without changing its key.
func (c *Collection[T]) SetAt(index int, value T) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}
	c.entries[index].value = value
	return nil
}

// Remove deletes every entry whose key matches. It does nothing if there are none.
func (c *Collection[T]) Remove(key string) {
	kept := c.entries[:0]
	for _, e := range c.entries {
		if !c.comparer(e.key, key) {
			kept = append(kept, e)
		}
	}
	clear(c.entries[len(kept):])
	c.entries = kept
}

// RemoveAt deletes the entry at the given position; later entries shift down by one.
func (c *Collection[T]) RemoveAt(index int) error {
	if err := c.checkIndex(index); err != nil {
		return err
	}
	copy(c.entries[index:], c.entries[index+1:])
	var zero entry[T]
	c.entries[len(c.entries)-1] = zero
	c.entries = c.entries[:len(c.entries)-1]
	return nil
}

// Clear removes all entries.
func (c *Collection[T]) Clear() {
	c.entries = nil
}

// All returns the values in insertion order. Each iteration works on the entries present when
// it starts.
func (c *Collection[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, e := range c.snapshot() {
			if !yield(e.value) {
				return
			}
		}
	}
}

// Entries returns the key/value pairs in insertion order, with the same snapshot behavior as All.
func (c *Collection[T]) Entries() iter.Seq2[string, T] {
	return func(yield func(string, T) bool) {
		for _, e := range c.snapshot() {
			if !yield(e.key, e.value) {
				return
			}
		}
	}
}

// Clone returns an independent copy with the same comparer.
func (c *Collection[T]) Clone() *Collection[T] {
	return &Collection[T]{
		entries:  c.snapshot(),
		comparer: c.comparer,
	}
}

func (c *Collection[T]) snapshot() []entry[T] {
	return append([]entry[T](nil), c.entries...)
}

func (c *Collection[T]) indexOf(key string) int {
	for i, e := range c.entries {
		if c.comparer(e.key, key) {
			return i
		}
	}
	return -1
}

func (c *Collection[T]) checkIndex(index int) error {
	if index < 0 || index >= len(c.entries) {
		return fmt.Errorf("%w: %d (count is %d)", ErrIndexOutOfRange, index, len(c.entries))
	}
	return nil
}
