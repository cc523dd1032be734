/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// RawItem is a store-encoded item: attribute name to tagged attribute value.
type RawItem = map[string]types.AttributeValue

// TableInfo describes a table at a point in time.
type TableInfo struct {
	Name   string
	Status string

	// ApproximateItemCount is the store's cached count, refreshed
	// periodically by the store and possibly stale.
	ApproximateItemCount int64

	SizeBytes int64
	CreatedAt time.Time

	// PartitionKey and SortKey name the key attributes. SortKey is empty for
	// simple-keyed tables.
	PartitionKey string
	SortKey      string
}

// ScanPageInput requests one page of a table scan.
type ScanPageInput struct {
	// StartToken is the continuation token from the previous page; nil for
	// the first page.
	StartToken RawItem

	// Limit caps the page size; zero lets the store choose.
	Limit int32

	// KeysOnly restricts the projection to the key attributes.
	KeysOnly bool

	// CountOnly asks for item counts without materializing items.
	CountOnly bool
}

// ScanPageOutput is one page of a table scan.
type ScanPageOutput struct {
	Items []RawItem

	// NextToken continues the scan; nil means the scan is exhausted.
	NextToken RawItem

	// ScannedCount is the number of items the store evaluated for this page.
	ScannedCount int32
}

// TableStore is the store-client collaborator. Implementations report
// partial failures as unprocessed items rather than errors so callers can
// retry precisely what did not commit.
type TableStore interface {
	// Describe returns table status, key schema, and cached size figures.
	Describe(ctx context.Context) (*TableInfo, error)

	// ScanPage reads one page of the table.
	ScanPage(ctx context.Context, in *ScanPageInput) (*ScanPageOutput, error)

	// BatchWrite puts the given items, returning any the store did not
	// durably commit.
	BatchWrite(ctx context.Context, items []RawItem) (unprocessed []RawItem, err error)

	// BatchDelete deletes the given keys, returning any the store did not
	// durably process.
	BatchDelete(ctx context.Context, keys []RawItem) (unprocessed []RawItem, err error)
}
