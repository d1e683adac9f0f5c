// Package kv holds the key/value shapes objects are exported to and imported from:
// a typed Mapping, a Strings mapping that can carry absent values and an ordered
// name/value Collection that may repeat keys.
package kv
