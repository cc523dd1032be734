/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package formats

import (
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/tablectl/errors"
	"github.com/suparena/tablectl/itemmodel"
)

func TestParseItemArray(t *testing.T) {
	t.Run("PreservesAttributeOrder", func(t *testing.T) {
		items, _, err := Parse([]byte(`[{"zebra":"z","apple":"a","mango":"m"}]`), FormatItems)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, []string{"zebra", "apple", "mango"}, items[0].Names())
	})

	t.Run("PreservesNumberText", func(t *testing.T) {
		const big = "123456789012345678901234567890.000000001"
		items, _, err := Parse([]byte(`[{"n":`+big+`}]`), FormatItems)
		require.NoError(t, err)
		v, ok := items[0].Get("n")
		require.True(t, ok)
		assert.True(t, itemmodel.Equal(itemmodel.Number(big), v))
	})

	t.Run("NestedValues", func(t *testing.T) {
		items, _, err := Parse([]byte(`[{"m":{"list":[1,true,null,"s"]}}]`), FormatItems)
		require.NoError(t, err)
		v, _ := items[0].Get("m")
		want := itemmodel.Map{"list": itemmodel.List{
			itemmodel.Number("1"), itemmodel.Bool(true), itemmodel.Null{}, itemmodel.String("s"),
		}}
		assert.True(t, itemmodel.Equal(want, v))
	})

	t.Run("EmptyArray", func(t *testing.T) {
		items, _, err := Parse([]byte(`[]`), FormatItems)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("TrailingContent", func(t *testing.T) {
		_, _, err := Parse([]byte(`[] []`), FormatItems)
		require.Error(t, err)
		assert.True(t, errors.IsFormat(err))
	})

	t.Run("Truncated", func(t *testing.T) {
		_, _, err := Parse([]byte(`[{"a":`), FormatItems)
		require.Error(t, err)
		assert.ErrorIs(t, err, errors.ErrInvalidSyntax)
	})
}

func TestItemArrayRoundTrip(t *testing.T) {
	item := itemmodel.NewItem()
	item.Set("pk", itemmodel.String("user#1"))
	item.Set("active", itemmodel.Bool(true))
	item.Set("score", itemmodel.Number("12.75"))
	item.Set("note", itemmodel.Null{})
	item.Set("history", itemmodel.List{itemmodel.Number("1"), itemmodel.Number("2")})
	item.Set("profile", itemmodel.Map{"city": itemmodel.String("Oakville")})

	data, err := Serialize([]itemmodel.Item{item}, FormatItems, nil)
	require.NoError(t, err)

	back, _, err := Parse(data, FormatItems)
	require.NoError(t, err)
	require.Len(t, back, 1)
	assert.True(t, item.Equal(back[0]))
	assert.Equal(t, item.Names(), back[0].Names())
}

func TestSerializeErasesSetsAndBinary(t *testing.T) {
	item := itemmodel.NewItem()
	item.Set("tags", itemmodel.StringSet{"a", "b"})
	item.Set("blob", itemmodel.Binary{0x01, 0x02})

	data, err := Serialize([]itemmodel.Item{item}, FormatItems, nil)
	require.NoError(t, err)

	back, _, err := Parse(data, FormatItems)
	require.NoError(t, err)

	tags, _ := back[0].Get("tags")
	assert.True(t, itemmodel.Equal(itemmodel.List{itemmodel.String("a"), itemmodel.String("b")}, tags),
		"sets reparse as lists")

	blob, _ := back[0].Get("blob")
	assert.True(t, itemmodel.Equal(itemmodel.String("AQI="), blob), "binary reparses as base64 text")
}

func TestSerializeRejectsInvalidNumberText(t *testing.T) {
	item := itemmodel.NewItem()
	item.Set("n", itemmodel.Number("not-a-number"))

	_, err := Serialize([]itemmodel.Item{item}, FormatItems, nil)
	require.Error(t, err)
	assert.True(t, errors.IsConversion(err))
}

func TestSnapshotRoundTrip(t *testing.T) {
	item := itemmodel.NewItem()
	item.Set("pk", itemmodel.String("1"))

	meta := itemmodel.Metadata{
		TableName:      "orders",
		Timestamp:      strfmt.DateTime(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)),
		ItemCount:      1,
		ItemCountExact: true,
		Tool:           "tablectl",
		Version:        "1.0.0",
	}

	data, err := Serialize([]itemmodel.Item{item}, FormatSnapshot, &meta)
	require.NoError(t, err)

	// Artifact field names are a stable interface for external consumers.
	for _, field := range []string{`"metadata"`, `"data"`, `"table_name"`, `"timestamp"`, `"item_count"`, `"item_count_exact"`, `"tool"`, `"version"`} {
		assert.Contains(t, string(data), field)
	}

	items, got, err := Parse(data, FormatSnapshot)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, got)
	assert.Equal(t, "orders", got.TableName)
	assert.Equal(t, int64(1), got.ItemCount)
	assert.True(t, got.ItemCountExact)
	assert.Equal(t, "tablectl", got.Tool)
}

func TestParseSnapshot(t *testing.T) {
	t.Run("EmptyDataIsValid", func(t *testing.T) {
		items, meta, err := Parse([]byte(`{"metadata":{"table_name":"t"},"data":[]}`), FormatSnapshot)
		require.NoError(t, err)
		assert.NotNil(t, items)
		assert.Empty(t, items)
		require.NotNil(t, meta)
		assert.Equal(t, "t", meta.TableName)
	})

	t.Run("UnknownTopLevelKeysSkipped", func(t *testing.T) {
		items, _, err := Parse([]byte(`{"metadata":{},"future":{"x":1},"data":[{"pk":"1"}]}`), FormatSnapshot)
		require.NoError(t, err)
		assert.Len(t, items, 1)
	})

	t.Run("MissingData", func(t *testing.T) {
		_, _, err := Parse([]byte(`{"metadata":{}}`), FormatSnapshot)
		require.Error(t, err)
		assert.True(t, errors.IsFormat(err))
	})
}
