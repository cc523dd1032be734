/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package itemmodel

import "fmt"

// Item is an insertion-ordered mapping from attribute name to Value.
// Attribute names are unique per item; Set on an existing name replaces the
// value in place without disturbing order.
type Item struct {
	names  []string
	values map[string]Value
}

// NewItem returns an empty Item.
func NewItem() Item {
	return Item{values: make(map[string]Value)}
}

// Set stores v under name, appending the name if it is new.
func (it *Item) Set(name string, v Value) {
	if it.values == nil {
		it.values = make(map[string]Value)
	}
	if _, exists := it.values[name]; !exists {
		it.names = append(it.names, name)
	}
	it.values[name] = v
}

// Get returns the Value for name and whether it is present.
func (it Item) Get(name string) (Value, bool) {
	v, ok := it.values[name]
	return v, ok
}

// Names returns the attribute names in insertion order.
func (it Item) Names() []string {
	out := make([]string, len(it.names))
	copy(out, it.names)
	return out
}

// Len returns the number of attributes.
func (it Item) Len() int {
	return len(it.names)
}

// Range calls fn for each attribute in insertion order, stopping early if
// fn returns false.
func (it Item) Range(fn func(name string, v Value) bool) {
	for _, name := range it.names {
		if !fn(name, it.values[name]) {
			return
		}
	}
}

// Equal reports whether two Items carry the same attributes regardless of
// attribute order.
func (it Item) Equal(other Item) bool {
	if len(it.values) != len(other.values) {
		return false
	}
	for name, v := range it.values {
		ov, ok := other.values[name]
		if !ok || !Equal(v, ov) {
			return false
		}
	}
	return true
}

// KeyProjection extracts the partition-key attribute and, when sortKey is
// non-empty, the sort-key attribute into a new Item. Key attributes must be
// present and resolve to String or Number Values.
func (it Item) KeyProjection(partitionKey, sortKey string) (Item, error) {
	key := NewItem()
	for _, name := range keyNames(partitionKey, sortKey) {
		v, ok := it.Get(name)
		if !ok {
			return Item{}, fmt.Errorf("item is missing key attribute %q", name)
		}
		switch v.(type) {
		case String, Number:
			key.Set(name, v)
		default:
			return Item{}, fmt.Errorf("key attribute %q must be a string or number, got %T", name, v)
		}
	}
	return key, nil
}

func keyNames(partitionKey, sortKey string) []string {
	if sortKey == "" {
		return []string{partitionKey}
	}
	return []string{partitionKey, sortKey}
}
