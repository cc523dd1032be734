/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package itemmodel

import "bytes"

// Value is the closed tagged union over every representable attribute shape.
// The only implementations are the types in this package; consumers switch
// exhaustively over them.
type Value interface {
	isValue()
}

// Null represents an explicitly stored null (absence-as-null, not a missing
// attribute).
type Null struct{}

// Bool represents a boolean attribute.
type Bool bool

// Number represents a number as canonical decimal text. DynamoDB numbers
// cover 38 significant digits; keeping the text form avoids binary-float
// precision loss.
type Number string

// String represents a string attribute.
type String string

// Binary represents raw bytes.
type Binary []byte

// StringSet is a non-empty, duplicate-free set of strings. Element order
// carries no meaning.
type StringSet []string

// NumberSet is a non-empty, duplicate-free set of decimal-text numbers.
type NumberSet []string

// BinarySet is a non-empty, duplicate-free set of byte slices.
type BinarySet [][]byte

// List is an ordered, possibly heterogeneous sequence of Values.
type List []Value

// Map is a string-keyed collection of Values. Key order is not semantically
// significant and need not be preserved.
type Map map[string]Value

func (Null) isValue()      {}
func (Bool) isValue()      {}
func (Number) isValue()    {}
func (String) isValue()    {}
func (Binary) isValue()    {}
func (StringSet) isValue() {}
func (NumberSet) isValue() {}
func (BinarySet) isValue() {}
func (List) isValue()      {}
func (Map) isValue()       {}

// Equal reports whether two Values are semantically equal. Set variants are
// compared by membership, not element order.
func Equal(a, b Value) bool {
	switch av := a.(type) {
	case Null:
		_, ok := b.(Null)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Number:
		bv, ok := b.(Number)
		return ok && av == bv
	case String:
		bv, ok := b.(String)
		return ok && av == bv
	case Binary:
		bv, ok := b.(Binary)
		return ok && bytes.Equal(av, bv)
	case StringSet:
		bv, ok := b.(StringSet)
		return ok && stringMembersEqual(av, bv)
	case NumberSet:
		bv, ok := b.(NumberSet)
		return ok && stringMembersEqual(bv, av)
	case BinarySet:
		bv, ok := b.(BinarySet)
		return ok && binaryMembersEqual(av, bv)
	case List:
		bv, ok := b.(List)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case Map:
		bv, ok := b.(Map)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, v := range av {
			other, present := bv[k]
			if !present || !Equal(v, other) {
				return false
			}
		}
		return true
	}
	return false
}

func stringMembersEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]struct{}, len(a))
	for _, s := range a {
		seen[s] = struct{}{}
	}
	for _, s := range b {
		if _, ok := seen[s]; !ok {
			return false
		}
	}
	return true
}

func binaryMembersEqual(a, b [][]byte) bool {
	if len(a) != len(b) {
		return false
	}
	for _, x := range a {
		found := false
		for _, y := range b {
			if bytes.Equal(x, y) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// ValidSet reports whether a set variant satisfies the set invariants:
// non-empty and duplicate-free. Non-set Values are trivially valid.
func ValidSet(v Value) bool {
	switch sv := v.(type) {
	case StringSet:
		return validStringMembers(sv)
	case NumberSet:
		return validStringMembers(sv)
	case BinarySet:
		if len(sv) == 0 {
			return false
		}
		for i, x := range sv {
			for _, y := range sv[i+1:] {
				if bytes.Equal(x, y) {
					return false
				}
			}
		}
		return true
	}
	return true
}

func validStringMembers(members []string) bool {
	if len(members) == 0 {
		return false
	}
	seen := make(map[string]struct{}, len(members))
	for _, s := range members {
		if _, dup := seen[s]; dup {
			return false
		}
		seen[s] = struct{}{}
	}
	return true
}
