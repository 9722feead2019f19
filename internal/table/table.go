// Package table is the in-memory tabular container passed between pipeline stages.
//
// A Table has ordered, uniquely named columns and row-major cells. Cells hold
// nil (null), float64, string or bool. Every transform returns a new Table;
// callers never observe a mutation of a table they already hold.
package table

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// Table is an ordered-column table of records
type Table struct {
	columns []string
	index   map[string]int
	rows    [][]interface{}
}

// New creates an empty table with the given columns.
// Duplicate names keep the first occurrence.
func New(columns ...string) *Table {
	t := &Table{index: make(map[string]int, len(columns))}
	for _, c := range columns {
		if _, ok := t.index[c]; ok {
			continue
		}
		t.index[c] = len(t.columns)
		t.columns = append(t.columns, c)
	}
	return t
}

// AppendRow adds a row whose cells follow Columns() order.
// Missing trailing cells are null. Only call while building a table you own.
func (t *Table) AppendRow(cells ...interface{}) {
	row := make([]interface{}, len(t.columns))
	copy(row, cells)
	t.rows = append(t.rows, row)
}

// AppendRecord adds a row from a column→value map; unknown keys are ignored
func (t *Table) AppendRecord(rec map[string]interface{}) {
	row := make([]interface{}, len(t.columns))
	for k, v := range rec {
		if i, ok := t.index[k]; ok {
			row[i] = v
		}
	}
	t.rows = append(t.rows, row)
}

// Columns returns a copy of the column names in order
func (t *Table) Columns() []string {
	out := make([]string, len(t.columns))
	copy(out, t.columns)
	return out
}

// Len returns the number of rows
func (t *Table) Len() int {
	return len(t.rows)
}

// Has reports whether column name exists
func (t *Table) Has(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Get returns the cell at row i, column name (nil if the column is absent)
func (t *Table) Get(i int, name string) interface{} {
	c, ok := t.index[name]
	if !ok {
		return nil
	}
	return t.rows[i][c]
}

// Float returns the cell coerced to float64; ok is false for null or non-numeric cells
func (t *Table) Float(i int, name string) (float64, bool) {
	return ToFloat(t.Get(i, name))
}

// Column returns a copy of one column's cells
func (t *Table) Column(name string) ([]interface{}, bool) {
	c, ok := t.index[name]
	if !ok {
		return nil, false
	}
	out := make([]interface{}, len(t.rows))
	for i, row := range t.rows {
		out[i] = row[c]
	}
	return out, true
}

// Record returns row i as a column→value map
func (t *Table) Record(i int) map[string]interface{} {
	rec := make(map[string]interface{}, len(t.columns))
	for c, name := range t.columns {
		rec[name] = t.rows[i][c]
	}
	return rec
}

// Records returns all rows as maps
func (t *Table) Records() []map[string]interface{} {
	out := make([]map[string]interface{}, len(t.rows))
	for i := range t.rows {
		out[i] = t.Record(i)
	}
	return out
}

// Clone returns a deep copy of the table structure (cell values are immutable scalars)
func (t *Table) Clone() *Table {
	out := New(t.columns...)
	out.rows = make([][]interface{}, len(t.rows))
	for i, row := range t.rows {
		cp := make([]interface{}, len(row))
		copy(cp, row)
		out.rows[i] = cp
	}
	return out
}

// Rename returns a copy with column from renamed to to, keeping its position.
// An existing column named to is dropped first. Renaming a missing column is a copy.
func (t *Table) Rename(from, to string) *Table {
	if !t.Has(from) || from == to {
		return t.Clone()
	}
	src := t
	if t.Has(to) {
		src = t.Drop(to)
	}
	out := src.Clone()
	i := out.index[from]
	delete(out.index, from)
	out.columns[i] = to
	out.index[to] = i
	return out
}

// WithColumn returns a copy with column name set to values.
// An existing column is replaced in place; a new one is appended.
// values must have Len() entries.
func (t *Table) WithColumn(name string, values []interface{}) (*Table, error) {
	if len(values) != len(t.rows) {
		return nil, fmt.Errorf("column %q has %d values, table has %d rows", name, len(values), len(t.rows))
	}
	out := t.Clone()
	c, ok := out.index[name]
	if !ok {
		c = len(out.columns)
		out.columns = append(out.columns, name)
		out.index[name] = c
		for i := range out.rows {
			out.rows[i] = append(out.rows[i], nil)
		}
	}
	for i := range out.rows {
		out.rows[i][c] = values[i]
	}
	return out, nil
}

// Drop returns a copy without the named columns
func (t *Table) Drop(names ...string) *Table {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	keep := make([]string, 0, len(t.columns))
	for _, c := range t.columns {
		if !drop[c] {
			keep = append(keep, c)
		}
	}
	return t.Project(keep...)
}

// DropPrefix returns a copy without columns whose name starts with prefix
func (t *Table) DropPrefix(prefix string) *Table {
	var names []string
	for _, c := range t.columns {
		if strings.HasPrefix(c, prefix) {
			names = append(names, c)
		}
	}
	return t.Drop(names...)
}

// Project returns a copy with only the named columns, in the given order.
// Unknown names become all-null columns.
func (t *Table) Project(names ...string) *Table {
	out := New(names...)
	out.rows = make([][]interface{}, len(t.rows))
	for i, row := range t.rows {
		cp := make([]interface{}, len(out.columns))
		for j, name := range out.columns {
			if c, ok := t.index[name]; ok {
				cp[j] = row[c]
			}
		}
		out.rows[i] = cp
	}
	return out
}

// Select returns a copy with the given rows in the given order
func (t *Table) Select(rows []int) *Table {
	out := New(t.columns...)
	out.rows = make([][]interface{}, len(rows))
	for i, r := range rows {
		cp := make([]interface{}, len(t.columns))
		copy(cp, t.rows[r])
		out.rows[i] = cp
	}
	return out
}

// Concat stacks tables vertically. Columns are the ordered union of all inputs;
// cells missing from a source table are null.
func Concat(tables ...*Table) *Table {
	var cols []string
	seen := map[string]bool{}
	for _, t := range tables {
		for _, c := range t.columns {
			if !seen[c] {
				seen[c] = true
				cols = append(cols, c)
			}
		}
	}
	out := New(cols...)
	for _, t := range tables {
		out.rows = append(out.rows, t.Project(cols...).rows...)
	}
	return out
}

// Equal reports whether two tables have the same columns and cells.
// NaN equals NaN; numbers compare by value regardless of source type.
func (t *Table) Equal(o *Table) bool {
	if len(t.columns) != len(o.columns) || len(t.rows) != len(o.rows) {
		return false
	}
	for i, c := range t.columns {
		if o.columns[i] != c {
			return false
		}
	}
	for i := range t.rows {
		for j := range t.columns {
			if !cellEqual(t.rows[i][j], o.rows[i][j]) {
				return false
			}
		}
	}
	return true
}

func cellEqual(a, b interface{}) bool {
	fa, aNum := numeric(a)
	fb, bNum := numeric(b)
	if aNum && bNum {
		if math.IsNaN(fa) && math.IsNaN(fb) {
			return true
		}
		return fa == fb
	}
	return reflect.DeepEqual(a, b)
}

// numeric accepts only genuinely numeric cells, not numeric-looking strings
func numeric(v interface{}) (float64, bool) {
	switch v.(type) {
	case string, nil, bool:
		return 0, false
	}
	return ToFloat(v)
}

// ToFloat coerces a cell to float64.
// Numeric strings parse; empty strings, nil, bools and garbage are not numbers.
func ToFloat(v interface{}) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case float32:
		return float64(x), true
	case int:
		return float64(x), true
	case int32:
		return float64(x), true
	case int64:
		return float64(x), true
	case interface{ Float64() (float64, error) }: // json.Number
		f, err := x.Float64()
		return f, err == nil
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		return f, err == nil
	default:
		return 0, false
	}
}

// Key returns a stable grouping key for an identifier cell.
// Integral numbers format without a decimal point, so 42, 42.0 and "42" share a key.
func Key(v interface{}) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return "", false
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) && !math.IsInf(f, 0) {
			return strconv.FormatFloat(f, 'f', -1, 64), true
		}
		return s, true
	}
	f, ok := ToFloat(v)
	if !ok {
		return fmt.Sprint(v), true
	}
	if math.IsNaN(f) {
		return "", false
	}
	return strconv.FormatFloat(f, 'f', -1, 64), true
}

// FormatCell renders a cell for text output (CSV, CLI). Null renders empty.
func FormatCell(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	}
	if f, ok := ToFloat(v); ok {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return fmt.Sprint(v)
}

// FromRecords builds a table from flat or nested maps.
// Nested maps flatten to dotted column names ("estatisticas.pontos").
// Columns are sorted because map iteration has no order; use FromJSON to keep document order.
func FromRecords(recs []map[string]interface{}) *Table {
	flat := make([]map[string]interface{}, len(recs))
	seen := map[string]bool{}
	var cols []string
	for i, rec := range recs {
		flat[i] = map[string]interface{}{}
		flatten("", rec, flat[i])
		for k := range flat[i] {
			if !seen[k] {
				seen[k] = true
				cols = append(cols, k)
			}
		}
	}
	sort.Strings(cols)
	t := New(cols...)
	for _, rec := range flat {
		t.AppendRecord(rec)
	}
	return t
}

func flatten(prefix string, in map[string]interface{}, out map[string]interface{}) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		if nested, ok := v.(map[string]interface{}); ok {
			flatten(key, nested, out)
			continue
		}
		out[key] = normalizeScalar(v)
	}
}

func normalizeScalar(v interface{}) interface{} {
	switch x := v.(type) {
	case nil, string, bool, float64:
		return x
	}
	if f, ok := ToFloat(v); ok {
		return f
	}
	return v
}
