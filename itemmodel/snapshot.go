/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package itemmodel

import (
	"github.com/go-openapi/strfmt"
)

// Metadata describes the table read that produced a Snapshot.
type Metadata struct {
	TableName string `json:"table_name"`

	// Timestamp is the snapshot time, serialized ISO-8601.
	Timestamp strfmt.DateTime `json:"timestamp"`

	// ItemCount is the item count at snapshot time. ItemCountExact reports
	// whether it came from a full counting scan or from the table's cached
	// approximate count, which the store refreshes periodically and may be
	// stale.
	ItemCount      int64 `json:"item_count"`
	ItemCountExact bool  `json:"item_count_exact"`

	Tool    string `json:"tool"`
	Version string `json:"version"`
}

// Snapshot is a portable capture of a full table read. It is constructed at
// snapshot time, immutable once written, and consumed in full by the
// restore and seed workflows.
type Snapshot struct {
	Metadata Metadata
	Data     []Item
}
