/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package codec

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/tablectl/errors"
	"github.com/suparena/tablectl/itemmodel"
)

func TestValueRoundTrip(t *testing.T) {
	cases := map[string]itemmodel.Value{
		"Null":      itemmodel.Null{},
		"Bool":      itemmodel.Bool(true),
		"Number":    itemmodel.Number("3.141592653589793238462643383279502884"),
		"String":    itemmodel.String("hello"),
		"Binary":    itemmodel.Binary{0xde, 0xad, 0xbe, 0xef},
		"StringSet": itemmodel.StringSet{"a", "b", "c"},
		"NumberSet": itemmodel.NumberSet{"1", "2.5", "-3"},
		"BinarySet": itemmodel.BinarySet{{0x01}, {0x02}},
		"List": itemmodel.List{
			itemmodel.String("x"),
			itemmodel.Number("1"),
			itemmodel.Null{},
			itemmodel.Map{"nested": itemmodel.Bool(false)},
		},
		"Map": itemmodel.Map{
			"s": itemmodel.String("v"),
			"l": itemmodel.List{itemmodel.Number("9")},
		},
	}

	for name, v := range cases {
		t.Run(name, func(t *testing.T) {
			av, err := ToAttribute(v)
			require.NoError(t, err)
			back, err := FromAttribute(av)
			require.NoError(t, err)
			assert.True(t, itemmodel.Equal(v, back), "round trip changed the value: %v vs %v", v, back)
		})
	}
}

func TestToAttributeNumberKeepsText(t *testing.T) {
	av, err := ToAttribute(itemmodel.Number("0.30000000000000000000000000000000000001"))
	require.NoError(t, err)
	n, ok := av.(*types.AttributeValueMemberN)
	require.True(t, ok)
	assert.Equal(t, "0.30000000000000000000000000000000000001", n.Value)
}

func TestToAttributeRejectsInvalidSets(t *testing.T) {
	for name, v := range map[string]itemmodel.Value{
		"EmptyStringSet":     itemmodel.StringSet{},
		"DuplicateStringSet": itemmodel.StringSet{"a", "a"},
		"EmptyNumberSet":     itemmodel.NumberSet{},
		"DuplicateBinarySet": itemmodel.BinarySet{{0x01}, {0x01}},
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ToAttribute(v)
			require.Error(t, err)
			assert.True(t, errors.IsConversion(err))
		})
	}
}

func TestToAttributeNestedSetFailure(t *testing.T) {
	// Invalid sets are rejected anywhere in the tree, not just at top level.
	_, err := ToAttribute(itemmodel.Map{"bad": itemmodel.StringSet{}})
	require.Error(t, err)
	assert.True(t, errors.IsConversion(err))
}

func TestFromAttributeUnknownTag(t *testing.T) {
	_, err := FromAttribute(nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnknownAttributeTag)
}

func TestAttributeMapRoundTrip(t *testing.T) {
	item := itemmodel.NewItem()
	item.Set("pk", itemmodel.String("order#42"))
	item.Set("total", itemmodel.Number("99.95"))
	item.Set("tags", itemmodel.StringSet{"new", "rush"})
	item.Set("lines", itemmodel.List{
		itemmodel.Map{"sku": itemmodel.String("A-1"), "qty": itemmodel.Number("2")},
	})

	raw, err := ToAttributeMap(item)
	require.NoError(t, err)
	require.Len(t, raw, 4)

	back, err := FromAttributeMap(raw)
	require.NoError(t, err)
	assert.True(t, item.Equal(back))

	// The wire map is unordered; conversion back sorts names.
	assert.Equal(t, []string{"lines", "pk", "tags", "total"}, back.Names())
}

func TestToAttributeMapNamesFailingAttribute(t *testing.T) {
	item := itemmodel.NewItem()
	item.Set("ok", itemmodel.String("fine"))
	item.Set("bad", itemmodel.NumberSet{})

	_, err := ToAttributeMap(item)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"bad"`)
}
