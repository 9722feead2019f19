package table

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// FromJSON decodes a JSON array of objects (or a single object) into a table,
// flattening nested objects into dotted columns. Column order follows first
// appearance in the document. Arrays are kept as []interface{} cells.
func FromJSON(data []byte) (*Table, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read json: %w", err)
	}

	b := &jsonBuilder{seen: map[string]bool{}}
	switch tok {
	case json.Delim('['):
		for dec.More() {
			rec := map[string]interface{}{}
			if err := b.readObject(dec, "", rec); err != nil {
				return nil, err
			}
			b.recs = append(b.recs, rec)
		}
		if _, err := dec.Token(); err != nil {
			return nil, fmt.Errorf("read json: %w", err)
		}
	case json.Delim('{'):
		rec := map[string]interface{}{}
		if err := b.readFields(dec, "", rec); err != nil {
			return nil, err
		}
		b.recs = append(b.recs, rec)
	default:
		return nil, fmt.Errorf("expected JSON array or object, got %v", tok)
	}

	t := New(b.cols...)
	for _, rec := range b.recs {
		t.AppendRecord(rec)
	}
	return t, nil
}

type jsonBuilder struct {
	cols []string
	seen map[string]bool
	recs []map[string]interface{}
}

func (b *jsonBuilder) addCol(name string) {
	if !b.seen[name] {
		b.seen[name] = true
		b.cols = append(b.cols, name)
	}
}

// readObject consumes one object value from dec
func (b *jsonBuilder) readObject(dec *json.Decoder, prefix string, rec map[string]interface{}) error {
	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("read json: %w", err)
	}
	if tok != json.Delim('{') {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}
	return b.readFields(dec, prefix, rec)
}

// readFields consumes fields up to and including the closing brace
func (b *jsonBuilder) readFields(dec *json.Decoder, prefix string, rec map[string]interface{}) error {
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("read json: %w", err)
		}
		key, _ := tok.(string)
		if prefix != "" {
			key = prefix + "." + key
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return fmt.Errorf("read json field %q: %w", key, err)
		}
		trimmed := bytes.TrimSpace(raw)
		if len(trimmed) > 0 && trimmed[0] == '{' {
			sub := json.NewDecoder(bytes.NewReader(trimmed))
			sub.UseNumber()
			if err := b.readObject(sub, key, rec); err != nil {
				return err
			}
			continue
		}

		var v interface{}
		sub := json.NewDecoder(bytes.NewReader(trimmed))
		sub.UseNumber()
		if err := sub.Decode(&v); err != nil && err != io.EOF {
			return fmt.Errorf("read json field %q: %w", key, err)
		}
		b.addCol(key)
		rec[key] = normalizeScalar(v)
	}
	if _, err := dec.Token(); err != nil { // closing '}'
		return fmt.Errorf("read json: %w", err)
	}
	return nil
}
