/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package codec

import (
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/tablectl/errors"
	"github.com/suparena/tablectl/itemmodel"
)

// ToAttribute converts a Value into its DynamoDB attribute encoding.
func ToAttribute(v itemmodel.Value) (types.AttributeValue, error) {
	switch tv := v.(type) {
	case itemmodel.Null:
		return &types.AttributeValueMemberNULL{Value: true}, nil

	case itemmodel.Bool:
		return &types.AttributeValueMemberBOOL{Value: bool(tv)}, nil

	case itemmodel.Number:
		return &types.AttributeValueMemberN{Value: string(tv)}, nil

	case itemmodel.String:
		return &types.AttributeValueMemberS{Value: string(tv)}, nil

	case itemmodel.Binary:
		return &types.AttributeValueMemberB{Value: tv}, nil

	case itemmodel.StringSet:
		if !itemmodel.ValidSet(tv) {
			return nil, errors.NewUnsupportedValueError("string set must be non-empty and duplicate-free")
		}
		return &types.AttributeValueMemberSS{Value: tv}, nil

	case itemmodel.NumberSet:
		if !itemmodel.ValidSet(tv) {
			return nil, errors.NewUnsupportedValueError("number set must be non-empty and duplicate-free")
		}
		return &types.AttributeValueMemberNS{Value: tv}, nil

	case itemmodel.BinarySet:
		if !itemmodel.ValidSet(tv) {
			return nil, errors.NewUnsupportedValueError("binary set must be non-empty and duplicate-free")
		}
		return &types.AttributeValueMemberBS{Value: tv}, nil

	case itemmodel.List:
		members := make([]types.AttributeValue, len(tv))
		for i, elem := range tv {
			av, err := ToAttribute(elem)
			if err != nil {
				return nil, err
			}
			members[i] = av
		}
		return &types.AttributeValueMemberL{Value: members}, nil

	case itemmodel.Map:
		members := make(map[string]types.AttributeValue, len(tv))
		for k, elem := range tv {
			av, err := ToAttribute(elem)
			if err != nil {
				return nil, err
			}
			members[k] = av
		}
		return &types.AttributeValueMemberM{Value: members}, nil
	}

	// Unreachable for the closed union; guards against a new variant being
	// added without a conversion rule.
	return nil, errors.NewUnsupportedValueError(fmt.Sprintf("value of type %T", v))
}

// FromAttribute converts a DynamoDB attribute encoding into a Value.
func FromAttribute(av types.AttributeValue) (itemmodel.Value, error) {
	switch tav := av.(type) {
	case *types.AttributeValueMemberNULL:
		return itemmodel.Null{}, nil

	case *types.AttributeValueMemberBOOL:
		return itemmodel.Bool(tav.Value), nil

	case *types.AttributeValueMemberN:
		return itemmodel.Number(tav.Value), nil

	case *types.AttributeValueMemberS:
		return itemmodel.String(tav.Value), nil

	case *types.AttributeValueMemberB:
		return itemmodel.Binary(tav.Value), nil

	case *types.AttributeValueMemberSS:
		return itemmodel.StringSet(tav.Value), nil

	case *types.AttributeValueMemberNS:
		return itemmodel.NumberSet(tav.Value), nil

	case *types.AttributeValueMemberBS:
		return itemmodel.BinarySet(tav.Value), nil

	case *types.AttributeValueMemberL:
		list := make(itemmodel.List, len(tav.Value))
		for i, member := range tav.Value {
			v, err := FromAttribute(member)
			if err != nil {
				return nil, err
			}
			list[i] = v
		}
		return list, nil

	case *types.AttributeValueMemberM:
		m := make(itemmodel.Map, len(tav.Value))
		for k, member := range tav.Value {
			v, err := FromAttribute(member)
			if err != nil {
				return nil, err
			}
			m[k] = v
		}
		return m, nil
	}

	return nil, errors.NewUnknownAttributeTagError(fmt.Sprintf("%T", av))
}

// ToAttributeMap converts an Item into a raw DynamoDB item.
func ToAttributeMap(item itemmodel.Item) (map[string]types.AttributeValue, error) {
	raw := make(map[string]types.AttributeValue, item.Len())
	var convErr error
	item.Range(func(name string, v itemmodel.Value) bool {
		av, err := ToAttribute(v)
		if err != nil {
			convErr = fmt.Errorf("attribute %q: %w", name, err)
			return false
		}
		raw[name] = av
		return true
	})
	if convErr != nil {
		return nil, convErr
	}
	return raw, nil
}

// FromAttributeMap converts a raw DynamoDB item into an Item. The wire map
// is unordered, so attribute names are sorted for a deterministic result.
func FromAttributeMap(raw map[string]types.AttributeValue) (itemmodel.Item, error) {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	item := itemmodel.NewItem()
	for _, name := range names {
		v, err := FromAttribute(raw[name])
		if err != nil {
			return itemmodel.Item{}, fmt.Errorf("attribute %q: %w", name, err)
		}
		item.Set(name, v)
	}
	return item, nil
}
