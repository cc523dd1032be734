/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package itemmodel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemOrdering(t *testing.T) {
	item := NewItem()
	item.Set("pk", String("user#1"))
	item.Set("sk", String("profile"))
	item.Set("age", Number("41"))

	assert.Equal(t, []string{"pk", "sk", "age"}, item.Names())
	assert.Equal(t, 3, item.Len())

	// Replacing a value keeps the original position.
	item.Set("sk", String("settings"))
	assert.Equal(t, []string{"pk", "sk", "age"}, item.Names())
	v, ok := item.Get("sk")
	require.True(t, ok)
	assert.True(t, Equal(String("settings"), v))
}

func TestItemRange(t *testing.T) {
	item := NewItem()
	item.Set("a", Number("1"))
	item.Set("b", Number("2"))
	item.Set("c", Number("3"))

	var visited []string
	item.Range(func(name string, _ Value) bool {
		visited = append(visited, name)
		return name != "b"
	})
	assert.Equal(t, []string{"a", "b"}, visited, "Range stops when fn returns false")
}

func TestItemEqualIgnoresOrder(t *testing.T) {
	a := NewItem()
	a.Set("x", Number("1"))
	a.Set("y", String("two"))

	b := NewItem()
	b.Set("y", String("two"))
	b.Set("x", Number("1"))

	assert.True(t, a.Equal(b))

	b.Set("z", Null{})
	assert.False(t, a.Equal(b))
}

func TestKeyProjection(t *testing.T) {
	item := NewItem()
	item.Set("extra", Bool(true))
	item.Set("pk", String("user#1"))
	item.Set("sk", Number("7"))

	t.Run("PartitionAndSort", func(t *testing.T) {
		key, err := item.KeyProjection("pk", "sk")
		require.NoError(t, err)
		assert.Equal(t, []string{"pk", "sk"}, key.Names())
		assert.Equal(t, 2, key.Len())
	})

	t.Run("PartitionOnly", func(t *testing.T) {
		key, err := item.KeyProjection("pk", "")
		require.NoError(t, err)
		assert.Equal(t, []string{"pk"}, key.Names())
	})

	t.Run("MissingKeyAttribute", func(t *testing.T) {
		_, err := item.KeyProjection("absent", "")
		assert.Error(t, err)
	})

	t.Run("NonScalarKey", func(t *testing.T) {
		_, err := item.KeyProjection("extra", "")
		assert.Error(t, err)
	})
}
