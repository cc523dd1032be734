/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package formats

import (
	"bytes"
	"encoding/base64"
	"encoding/csv"

	"github.com/suparena/tablectl/errors"
	"github.com/suparena/tablectl/itemmodel"
)

// parseTabular decodes CSV. The first row is the header of attribute names;
// every subsequent row becomes one Item with every cell a String value. CSV
// erases types, so no inference is attempted; an empty cell is the empty
// String, not Null.
func parseTabular(data []byte) ([]itemmodel.Item, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // field-count mismatches reported as MalformedRow below

	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.NewSyntaxError("csv", err)
	}
	if len(records) == 0 {
		return []itemmodel.Item{}, nil
	}

	header := records[0]
	items := make([]itemmodel.Item, 0, len(records)-1)
	for i, row := range records[1:] {
		if len(row) != len(header) {
			return nil, &errors.MalformedRowError{Row: i + 2, Expected: len(header), Got: len(row)}
		}
		item := itemmodel.NewItem()
		for col, name := range header {
			item.Set(name, itemmodel.String(row[col]))
		}
		items = append(items, item)
	}
	return items, nil
}

// serializeTabular encodes items as CSV. The column set is the union of all
// item attribute names in first-seen order. Nested values cannot be
// flattened losslessly, so any Map, List, or set value fails the whole
// serialization.
func serializeTabular(items []itemmodel.Item) ([]byte, error) {
	var header []string
	seen := map[string]struct{}{}
	for _, item := range items {
		item.Range(func(name string, _ itemmodel.Value) bool {
			if _, ok := seen[name]; !ok {
				seen[name] = struct{}{}
				header = append(header, name)
			}
			return true
		})
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if len(header) > 0 {
		if err := w.Write(header); err != nil {
			return nil, err
		}
	}

	for _, item := range items {
		row := make([]string, len(header))
		for col, name := range header {
			v, ok := item.Get(name)
			if !ok {
				continue // absent attribute leaves an empty cell
			}
			cell, err := flattenCell(name, v)
			if err != nil {
				return nil, err
			}
			row[col] = cell
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func flattenCell(name string, v itemmodel.Value) (string, error) {
	switch tv := v.(type) {
	case itemmodel.String:
		return string(tv), nil
	case itemmodel.Number:
		return string(tv), nil
	case itemmodel.Bool:
		if tv {
			return "true", nil
		}
		return "false", nil
	case itemmodel.Null:
		return "", nil
	case itemmodel.Binary:
		return base64.StdEncoding.EncodeToString(tv), nil
	}
	return "", &errors.HeterogeneousSchemaError{Attribute: name}
}
