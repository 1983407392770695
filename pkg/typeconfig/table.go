// Package typeconfig holds the per-type configuration tables that drive how
// entities and categories are presented: form schemas, orderings, section
// grouping, colours and header behaviour.
//
// Every table is keyed by a closed enum and carries a fallback that applies
// to any key without an explicit entry.
package typeconfig

import (
	"errors"
	"fmt"
	"sort"
)

// Table maps a type discriminant to a value, falling back to a default.
type Table[K ~string, V any] struct {
	entries  map[K]V
	fallback V
}

// NewTable builds a table from its explicit entries and the fallback.
func NewTable[K ~string, V any](fallback V, entries map[K]V) Table[K, V] {
	copied := make(map[K]V, len(entries))
	for k, v := range entries {
		copied[k] = v
	}
	return Table[K, V]{entries: copied, fallback: fallback}
}

// Lookup returns the entry for k or the fallback.
func (t Table[K, V]) Lookup(k K) V {
	if v, ok := t.entries[k]; ok {
		return v
	}
	return t.fallback
}

// Get returns the explicit entry for k without applying the fallback.
func (t Table[K, V]) Get(k K) (V, bool) {
	v, ok := t.entries[k]
	return v, ok
}

// Has reports whether k has an explicit entry.
func (t Table[K, V]) Has(k K) bool {
	_, ok := t.entries[k]
	return ok
}

// Fallback returns the default entry.
func (t Table[K, V]) Fallback() V { return t.fallback }

// Keys returns the explicit keys in sorted order.
func (t Table[K, V]) Keys() []K {
	keys := make([]K, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Validate rejects explicit keys that known does not recognise.
func (t Table[K, V]) Validate(known func(K) bool) error {
	var errs []error
	for _, k := range t.Keys() {
		if !known(k) {
			errs = append(errs, fmt.Errorf("unknown key %q", string(k)))
		}
	}
	return errors.Join(errs...)
}
