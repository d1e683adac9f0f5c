package kv

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Collection is an ordered name/value collection where a name may carry several values.
// Names keep the order of their first insertion. The zero value is not usable, see NewCollection.
type Collection struct {
	entries *linkedhashmap.Map // key: string, value: []*string
	count   int
}

func NewCollection() *Collection {
	return &Collection{entries: linkedhashmap.New()}
}

// Add appends value to the values of key.
func (c *Collection) Add(key, value string) {
	c.add(key, &value)
}

// AddNull appends an absent value to the values of key.
func (c *Collection) AddNull(key string) {
	c.add(key, nil)
}

func (c *Collection) add(key string, value *string) {
	values, _ := c.entries.Get(key)
	list, _ := values.([]*string)
	c.entries.Put(key, append(list, value))
	c.count++
}

// Set replaces all values of key with value, the key keeps its position.
func (c *Collection) Set(key, value string) {
	if values, ok := c.entries.Get(key); ok {
		c.count -= len(values.([]*string))
	}

	c.entries.Put(key, []*string{&value})
	c.count++
}

func (c *Collection) Remove(key string) {
	if values, ok := c.entries.Get(key); ok {
		c.count -= len(values.([]*string))
		c.entries.Remove(key)
	}
}

// Values returns every value of key in insertion order, nil entries are absent values.
func (c *Collection) Values(key string) []*string {
	values, ok := c.entries.Get(key)
	if !ok {
		return nil
	}

	return append([]*string(nil), values.([]*string)...)
}

// Get returns the last value added under key.
func (c *Collection) Get(key string) (*string, bool) {
	values, ok := c.entries.Get(key)
	if !ok {
		return nil, false
	}

	list := values.([]*string)

	return list[len(list)-1], true
}

// Keys returns the distinct keys in the order they were first added.
func (c *Collection) Keys() []string {
	res := make([]string, 0, c.entries.Size())
	for it := c.entries.Iterator(); it.Next(); {
		res = append(res, it.Key().(string))
	}

	return res
}

// Len is the number of distinct keys.
func (c *Collection) Len() int {
	return c.entries.Size()
}

// Count is the number of values over all keys.
func (c *Collection) Count() int {
	return c.count
}

// Flatten folds the collection into a single valued mapping, the last value of each key wins.
func (c *Collection) Flatten() Strings {
	res := make(Strings, c.entries.Size())
	for it := c.entries.Iterator(); it.Next(); {
		list := it.Value().([]*string)
		res[it.Key().(string)] = list[len(list)-1]
	}

	return res
}
