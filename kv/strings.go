package kv

import (
	"maps"
	"slices"
)

// Strings maps member names to string values. A nil entry is an absent value,
// which is not the same as an empty string.
type Strings map[string]*string

// FromMap builds a Strings mapping without absent values.
func FromMap(m map[string]string) Strings {
	res := make(Strings, len(m))
	for key, value := range m {
		res.Set(key, value)
	}

	return res
}

// Get returns the value of key; ok is false when the key is missing or its value is absent.
func (s Strings) Get(key string) (value string, ok bool) {
	ptr := s[key]
	if ptr == nil {
		return "", false
	}

	return *ptr, true
}

func (s Strings) Set(key, value string) {
	s[key] = &value
}

// SetNull stores an absent value under key.
func (s Strings) SetNull(key string) {
	s[key] = nil
}

// Keys returns the keys in ascending order.
func (s Strings) Keys() []string {
	return slices.Sorted(maps.Keys(s))
}
