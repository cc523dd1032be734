/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package itemmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqual(t *testing.T) {
	t.Run("Scalars", func(t *testing.T) {
		assert.True(t, Equal(Null{}, Null{}))
		assert.True(t, Equal(Bool(true), Bool(true)))
		assert.False(t, Equal(Bool(true), Bool(false)))
		assert.True(t, Equal(Number("3.50"), Number("3.50")))
		assert.False(t, Equal(Number("3.5"), Number("3.50")), "number equality is textual")
		assert.True(t, Equal(String("a"), String("a")))
		assert.True(t, Equal(Binary{0x01, 0x02}, Binary{0x01, 0x02}))
		assert.False(t, Equal(Binary{0x01}, Binary{0x02}))
	})

	t.Run("CrossTypeNeverEqual", func(t *testing.T) {
		assert.False(t, Equal(String("1"), Number("1")))
		assert.False(t, Equal(Null{}, Bool(false)))
		assert.False(t, Equal(StringSet{"a"}, List{String("a")}))
	})

	t.Run("SetsCompareByMembership", func(t *testing.T) {
		assert.True(t, Equal(StringSet{"a", "b"}, StringSet{"b", "a"}))
		assert.False(t, Equal(StringSet{"a", "b"}, StringSet{"a", "c"}))
		assert.True(t, Equal(NumberSet{"1", "2"}, NumberSet{"2", "1"}))
		assert.True(t, Equal(BinarySet{{0x01}, {0x02}}, BinarySet{{0x02}, {0x01}}))
		assert.False(t, Equal(BinarySet{{0x01}}, BinarySet{{0x02}}))
	})

	t.Run("ListsCompareInOrder", func(t *testing.T) {
		assert.True(t, Equal(List{String("a"), Number("1")}, List{String("a"), Number("1")}))
		assert.False(t, Equal(List{String("a"), String("b")}, List{String("b"), String("a")}))
	})

	t.Run("MapsCompareByKey", func(t *testing.T) {
		a := Map{"x": Number("1"), "y": List{Bool(true)}}
		b := Map{"y": List{Bool(true)}, "x": Number("1")}
		assert.True(t, Equal(a, b))
		assert.False(t, Equal(a, Map{"x": Number("1")}))
	})
}

func TestValidSet(t *testing.T) {
	assert.True(t, ValidSet(StringSet{"a", "b"}))
	assert.False(t, ValidSet(StringSet{}), "empty sets are invalid")
	assert.False(t, ValidSet(StringSet{"a", "a"}), "duplicates are invalid")
	assert.False(t, ValidSet(NumberSet{}))
	assert.False(t, ValidSet(NumberSet{"1", "1"}))
	assert.False(t, ValidSet(BinarySet{}))
	assert.False(t, ValidSet(BinarySet{{0x01}, {0x01}}))
	assert.True(t, ValidSet(BinarySet{{0x01}, {0x02}}))

	// Non-set values are trivially valid.
	assert.True(t, ValidSet(String("")))
	assert.True(t, ValidSet(List{}))
}
