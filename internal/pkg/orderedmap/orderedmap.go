package orderedmap

import (
	"bytes"
	"fmt"

	wk8 "github.com/wk8/go-ordered-map/v2"
)

// Map is a string-keyed map that remembers insertion order, backed by
// wk8/go-ordered-map. Setting an existing key replaces its value in place; the
// key keeps its position. The zero value is ready to use and JSON null decodes
// to an empty map.
type Map[V any] struct {
	om *wk8.OrderedMap[string, V]
}

// New creates an empty Map.
func New[V any]() *Map[V] {
	return &Map[V]{om: wk8.New[string, V]()}
}

func (m *Map[V]) init() {
	if m.om == nil {
		m.om = wk8.New[string, V]()
	}
}

// Len returns the number of entries.
func (m *Map[V]) Len() int {
	if m.om == nil {
		return 0
	}
	return m.om.Len()
}

// Get returns the value stored under key.
func (m *Map[V]) Get(key string) (V, bool) {
	if m.om == nil {
		var zero V
		return zero, false
	}
	return m.om.Get(key)
}

// Has reports whether key is present.
func (m *Map[V]) Has(key string) bool {
	_, ok := m.Get(key)
	return ok
}

// Set stores value under key. New keys are appended at the end.
func (m *Map[V]) Set(key string, value V) {
	m.init()
	m.om.Set(key, value)
}

// Delete removes key and reports whether it was present.
func (m *Map[V]) Delete(key string) bool {
	if m.om == nil {
		return false
	}
	_, ok := m.om.Delete(key)
	return ok
}

// Keys returns the keys in insertion order.
func (m *Map[V]) Keys() []string {
	out := make([]string, 0, m.Len())
	m.Range(func(key string, _ V) bool {
		out = append(out, key)
		return true
	})
	return out
}

// Range calls fn for every entry in insertion order until fn returns false.
func (m *Map[V]) Range(fn func(key string, value V) bool) {
	if m.om == nil {
		return
	}
	for pair := m.om.Oldest(); pair != nil; pair = pair.Next() {
		if !fn(pair.Key, pair.Value) {
			return
		}
	}
}

// MarshalJSON encodes the map as a JSON object with keys in insertion order.
func (m Map[V]) MarshalJSON() ([]byte, error) {
	if m.om == nil || m.om.Len() == 0 {
		return []byte("{}"), nil
	}
	return m.om.MarshalJSON()
}

// UnmarshalJSON decodes a JSON object keeping the document's key order.
// A repeated key keeps its first position and its last value.
func (m *Map[V]) UnmarshalJSON(data []byte) error {
	m.om = wk8.New[string, V]()
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	if err := m.om.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("orderedmap: %w", err)
	}
	return nil
}
