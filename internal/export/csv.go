// Package export persists processed tables to the configured sink.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path"
	"strings"

	"github.com/wonny/sensai/internal/table"
)

// EncodeCSV renders a header line plus one line per row.
// Floats use the shortest 'g' form; null cells are empty.
func EncodeCSV(t *table.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(t.Columns()); err != nil {
		return nil, err
	}

	cols := t.Columns()
	record := make([]string, len(cols))
	for i := 0; i < t.Len(); i++ {
		for c, name := range cols {
			record[c] = table.FormatCell(t.Get(i, name))
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// objectKey joins category and filename after rejecting anything that is not a
// single plain path element
func objectKey(category, filename string) (string, error) {
	for _, part := range []string{category, filename} {
		if part == "" || part == "." || part == ".." ||
			strings.ContainsAny(part, `/\`) {
			return "", fmt.Errorf("invalid export name %q", part)
		}
	}
	return path.Join(category, filename), nil
}
