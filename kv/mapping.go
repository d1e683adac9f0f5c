package kv

import (
	"maps"
	"slices"
)

// Mapping maps member names to strongly typed values.
type Mapping map[string]any

// Keys returns the keys in ascending order.
func (m Mapping) Keys() []string {
	return slices.Sorted(maps.Keys(m))
}
