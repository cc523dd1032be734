/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package formats

import (
	"bytes"
	stderrors "errors"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/suparena/tablectl/errors"
	"github.com/suparena/tablectl/itemmodel"
)

// Format identifies one of the supported on-disk shapes.
type Format int

const (
	FormatUnknown Format = iota

	// FormatItems is a bare JSON array of items.
	FormatItems

	// FormatSnapshot is a JSON object with "metadata" and "data" keys.
	FormatSnapshot

	// FormatTabular is CSV with a header row of attribute names.
	FormatTabular
)

func (f Format) String() string {
	switch f {
	case FormatItems:
		return "items"
	case FormatSnapshot:
		return "snapshot"
	case FormatTabular:
		return "tabular"
	}
	return "unknown"
}

// Detect infers the format of data from the path's extension and, within
// the JSON family, the top-level shape of the content.
func Detect(path string, data []byte) (Format, error) {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return FormatTabular, nil
	}

	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return FormatUnknown, errors.NewSyntaxError("json", stderrors.New("empty file"))
	}
	switch trimmed[0] {
	case '[':
		return FormatItems, nil
	case '{':
		var top map[string]json.RawMessage
		if err := json.Unmarshal(data, &top); err != nil {
			return FormatUnknown, errors.NewSyntaxError("json", err)
		}
		_, hasMeta := top["metadata"]
		_, hasData := top["data"]
		if hasMeta && hasData {
			return FormatSnapshot, nil
		}
		return FormatUnknown, errors.NewSyntaxError("json",
			stderrors.New(`top-level object is not a snapshot (missing "metadata" or "data")`))
	}
	return FormatUnknown, errors.NewSyntaxError("json",
		stderrors.New("top level must be an array of items or a snapshot object"))
}

// Parse decodes data in the given format into an ordered item sequence.
// For FormatSnapshot the snapshot metadata is returned as well; it is
// informational only and never re-validated against current table state.
func Parse(data []byte, format Format) ([]itemmodel.Item, *itemmodel.Metadata, error) {
	switch format {
	case FormatItems:
		items, err := parseItemArray(data)
		return items, nil, err
	case FormatSnapshot:
		return parseSnapshot(data)
	case FormatTabular:
		items, err := parseTabular(data)
		return items, nil, err
	}
	return nil, nil, errors.NewSyntaxError("input", stderrors.New("unknown format"))
}

// Serialize encodes items in the given format. meta is required for
// FormatSnapshot and ignored otherwise.
func Serialize(items []itemmodel.Item, format Format, meta *itemmodel.Metadata) ([]byte, error) {
	switch format {
	case FormatItems:
		return serializeItemArray(items)
	case FormatSnapshot:
		if meta == nil {
			return nil, errors.NewSyntaxError("snapshot", stderrors.New("snapshot serialization requires metadata"))
		}
		return serializeSnapshot(items, *meta)
	case FormatTabular:
		return serializeTabular(items)
	}
	return nil, errors.NewSyntaxError("output", stderrors.New("unknown format"))
}
