// Package types provides shared data structures used across hbnb packages.
// Types in this package should be foundational with no dependencies on the
// rest of the module.
package types

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// OrderedMap is a string-keyed map that remembers insertion order.
// Overwriting an existing key keeps its original position; deleting a key
// forgets it, so re-inserting appends at the end.
//
// The zero value is not usable; construct with NewOrderedMap.
type OrderedMap[V any] struct {
	m *orderedmap.OrderedMap[string, V]
}

// NewOrderedMap returns an empty map.
func NewOrderedMap[V any]() *OrderedMap[V] {
	return &OrderedMap[V]{m: orderedmap.New[string, V]()}
}

// Len returns the number of entries.
func (m *OrderedMap[V]) Len() int {
	return m.m.Len()
}

// Get returns the value stored under key.
func (m *OrderedMap[V]) Get(key string) (V, bool) {
	return m.m.Get(key)
}

// Has reports whether key is present.
func (m *OrderedMap[V]) Has(key string) bool {
	_, ok := m.m.Get(key)
	return ok
}

// Set inserts or overwrites key.
func (m *OrderedMap[V]) Set(key string, value V) {
	m.m.Set(key, value)
}

// Delete removes key and reports whether it was present.
func (m *OrderedMap[V]) Delete(key string) bool {
	_, ok := m.m.Delete(key)
	return ok
}

// Keys returns the keys in insertion order.
func (m *OrderedMap[V]) Keys() []string {
	out := make([]string, 0, m.m.Len())
	for p := m.m.Oldest(); p != nil; p = p.Next() {
		out = append(out, p.Key)
	}
	return out
}

// Each calls fn for every entry in insertion order until fn returns false.
func (m *OrderedMap[V]) Each(fn func(key string, value V) bool) {
	for p := m.m.Oldest(); p != nil; p = p.Next() {
		if !fn(p.Key, p.Value) {
			return
		}
	}
}
