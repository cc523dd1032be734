/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package formats

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"sort"

	"github.com/suparena/tablectl/errors"
	"github.com/suparena/tablectl/itemmodel"
)

// parseItemArray decodes a bare JSON array of items. Decoding works at the
// token level so attribute order survives into each Item and numbers stay
// decimal text.
func parseItemArray(data []byte) ([]itemmodel.Item, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := expectDelim(dec, '['); err != nil {
		return nil, errors.NewSyntaxError("json", err)
	}
	items, err := decodeItems(dec)
	if err != nil {
		return nil, errors.NewSyntaxError("json", err)
	}
	if err := expectDelim(dec, ']'); err != nil {
		return nil, errors.NewSyntaxError("json", err)
	}
	if err := expectEOF(dec); err != nil {
		return nil, errors.NewSyntaxError("json", err)
	}
	return items, nil
}

// parseSnapshot decodes a metadata-wrapped snapshot object.
func parseSnapshot(data []byte) ([]itemmodel.Item, *itemmodel.Metadata, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	if err := expectDelim(dec, '{'); err != nil {
		return nil, nil, errors.NewSyntaxError("snapshot", err)
	}

	var meta *itemmodel.Metadata
	var items []itemmodel.Item
	sawData := false

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, errors.NewSyntaxError("snapshot", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, errors.NewSyntaxError("snapshot", fmt.Errorf("unexpected token %v", tok))
		}
		switch key {
		case "metadata":
			var m itemmodel.Metadata
			if err := dec.Decode(&m); err != nil {
				return nil, nil, errors.NewSyntaxError("snapshot", fmt.Errorf("metadata: %w", err))
			}
			meta = &m
		case "data":
			if err := expectDelim(dec, '['); err != nil {
				return nil, nil, errors.NewSyntaxError("snapshot", fmt.Errorf("data: %w", err))
			}
			items, err = decodeItems(dec)
			if err != nil {
				return nil, nil, errors.NewSyntaxError("snapshot", err)
			}
			if err := expectDelim(dec, ']'); err != nil {
				return nil, nil, errors.NewSyntaxError("snapshot", err)
			}
			sawData = true
		default:
			// Unknown top-level keys are tolerated and skipped.
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, nil, errors.NewSyntaxError("snapshot", err)
			}
		}
	}

	if err := expectDelim(dec, '}'); err != nil {
		return nil, nil, errors.NewSyntaxError("snapshot", err)
	}
	if !sawData {
		return nil, nil, errors.NewSyntaxError("snapshot", stderrors.New(`missing "data" array`))
	}
	if items == nil {
		items = []itemmodel.Item{}
	}
	return items, meta, nil
}

func decodeItems(dec *json.Decoder) ([]itemmodel.Item, error) {
	items := []itemmodel.Item{}
	for dec.More() {
		item, err := decodeItem(dec)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", len(items), err)
		}
		items = append(items, item)
	}
	return items, nil
}

// decodeItem reads one JSON object as an Item, name order preserved.
func decodeItem(dec *json.Decoder) (itemmodel.Item, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return itemmodel.Item{}, err
	}
	item := itemmodel.NewItem()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return itemmodel.Item{}, err
		}
		name, ok := tok.(string)
		if !ok {
			return itemmodel.Item{}, fmt.Errorf("unexpected token %v", tok)
		}
		v, err := decodeValue(dec)
		if err != nil {
			return itemmodel.Item{}, fmt.Errorf("attribute %q: %w", name, err)
		}
		item.Set(name, v)
	}
	if err := expectDelim(dec, '}'); err != nil {
		return itemmodel.Item{}, err
	}
	return item, nil
}

// decodeValue reads one JSON value using the natural JSON-to-Value mapping.
// JSON has no native sets, so no set inference happens here.
func decodeValue(dec *json.Decoder) (itemmodel.Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	switch t := tok.(type) {
	case json.Delim:
		switch t {
		case '{':
			m := itemmodel.Map{}
			for dec.More() {
				keyTok, err := dec.Token()
				if err != nil {
					return nil, err
				}
				key, ok := keyTok.(string)
				if !ok {
					return nil, fmt.Errorf("unexpected token %v", keyTok)
				}
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				m[key] = v
			}
			return m, expectDelim(dec, '}')
		case '[':
			list := itemmodel.List{}
			for dec.More() {
				v, err := decodeValue(dec)
				if err != nil {
					return nil, err
				}
				list = append(list, v)
			}
			return list, expectDelim(dec, ']')
		}
		return nil, fmt.Errorf("unexpected delimiter %v", t)
	case string:
		return itemmodel.String(t), nil
	case json.Number:
		return itemmodel.Number(t.String()), nil
	case bool:
		return itemmodel.Bool(t), nil
	case nil:
		return itemmodel.Null{}, nil
	}
	return nil, fmt.Errorf("unexpected token %v", tok)
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	d, ok := tok.(json.Delim)
	if !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want.String(), tok)
	}
	return nil
}

func expectEOF(dec *json.Decoder) error {
	if _, err := dec.Token(); err != io.EOF {
		return stderrors.New("trailing content after document")
	}
	return nil
}

// serializeItemArray writes items as an indented JSON array.
func serializeItemArray(items []itemmodel.Item) ([]byte, error) {
	var buf bytes.Buffer
	if err := encodeItemArray(&buf, items); err != nil {
		return nil, err
	}
	return indent(buf.Bytes())
}

// serializeSnapshot writes the snapshot envelope, metadata first.
func serializeSnapshot(items []itemmodel.Item, meta itemmodel.Metadata) ([]byte, error) {
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("marshal metadata: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(`{"metadata":`)
	buf.Write(metaJSON)
	buf.WriteString(`,"data":`)
	if err := encodeItemArray(&buf, items); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return indent(buf.Bytes())
}

func encodeItemArray(buf *bytes.Buffer, items []itemmodel.Item) error {
	buf.WriteByte('[')
	for i, item := range items {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeItem(buf, item); err != nil {
			return fmt.Errorf("item %d: %w", i, err)
		}
	}
	buf.WriteByte(']')
	return nil
}

func encodeItem(buf *bytes.Buffer, item itemmodel.Item) error {
	buf.WriteByte('{')
	first := true
	var encErr error
	item.Range(func(name string, v itemmodel.Value) bool {
		if !first {
			buf.WriteByte(',')
		}
		first = false
		writeJSONString(buf, name)
		buf.WriteByte(':')
		if err := encodeValue(buf, v); err != nil {
			encErr = fmt.Errorf("attribute %q: %w", name, err)
			return false
		}
		return true
	})
	if encErr != nil {
		return encErr
	}
	buf.WriteByte('}')
	return nil
}

// encodeValue is the structural inverse of decodeValue. Sets serialize as
// arrays and binary as base64 text; JSON cannot express either natively, so
// a re-parse sees a List or String. The erasure is deterministic.
func encodeValue(buf *bytes.Buffer, v itemmodel.Value) error {
	switch tv := v.(type) {
	case itemmodel.Null:
		buf.WriteString("null")
	case itemmodel.Bool:
		if tv {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case itemmodel.Number:
		if !json.Valid([]byte(tv)) {
			return errors.NewUnsupportedValueError(fmt.Sprintf("number %q is not valid decimal text", string(tv)))
		}
		buf.WriteString(string(tv))
	case itemmodel.String:
		writeJSONString(buf, string(tv))
	case itemmodel.Binary:
		writeJSONString(buf, base64.StdEncoding.EncodeToString(tv))
	case itemmodel.StringSet:
		buf.WriteByte('[')
		for i, s := range tv {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSONString(buf, s)
		}
		buf.WriteByte(']')
	case itemmodel.NumberSet:
		buf.WriteByte('[')
		for i, n := range tv {
			if i > 0 {
				buf.WriteByte(',')
			}
			if !json.Valid([]byte(n)) {
				return errors.NewUnsupportedValueError(fmt.Sprintf("number %q is not valid decimal text", n))
			}
			buf.WriteString(n)
		}
		buf.WriteByte(']')
	case itemmodel.BinarySet:
		buf.WriteByte('[')
		for i, b := range tv {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSONString(buf, base64.StdEncoding.EncodeToString(b))
		}
		buf.WriteByte(']')
	case itemmodel.List:
		buf.WriteByte('[')
		for i, elem := range tv {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeValue(buf, elem); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case itemmodel.Map:
		keys := make([]string, 0, len(tv))
		for k := range tv {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeJSONString(buf, k)
			buf.WriteByte(':')
			if err := encodeValue(buf, tv[k]); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return errors.NewUnsupportedValueError(fmt.Sprintf("value of type %T", v))
	}
	return nil
}

func writeJSONString(buf *bytes.Buffer, s string) {
	escaped, _ := json.Marshal(s)
	buf.Write(escaped)
}

func indent(data []byte) ([]byte, error) {
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", "  "); err != nil {
		return nil, fmt.Errorf("indent: %w", err)
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}
