/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package bulk

import (
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/tablectl/datastore"
)

// estimateItemSize approximates an item's billed size: attribute name
// lengths plus value payloads, with a small per-value overhead for nested
// structures. The estimate errs high so chunking stays under the store's
// ceilings.
func estimateItemSize(item datastore.RawItem) int {
	size := 0
	for name, av := range item {
		size += len(name) + attributeSize(av)
	}
	return size
}

func attributeSize(av types.AttributeValue) int {
	switch tv := av.(type) {
	case *types.AttributeValueMemberS:
		return len(tv.Value)
	case *types.AttributeValueMemberN:
		return len(tv.Value)
	case *types.AttributeValueMemberB:
		return len(tv.Value)
	case *types.AttributeValueMemberBOOL:
		return 1
	case *types.AttributeValueMemberNULL:
		return 1
	case *types.AttributeValueMemberSS:
		size := 0
		for _, s := range tv.Value {
			size += len(s)
		}
		return size
	case *types.AttributeValueMemberNS:
		size := 0
		for _, n := range tv.Value {
			size += len(n)
		}
		return size
	case *types.AttributeValueMemberBS:
		size := 0
		for _, b := range tv.Value {
			size += len(b)
		}
		return size
	case *types.AttributeValueMemberL:
		size := 3
		for _, member := range tv.Value {
			size += 1 + attributeSize(member)
		}
		return size
	case *types.AttributeValueMemberM:
		size := 3
		for name, member := range tv.Value {
			size += len(name) + 1 + attributeSize(member)
		}
		return size
	}
	return 8
}
