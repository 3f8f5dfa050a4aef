// Package table implements the column-oriented table that all graph inputs
// are normalized into before serialization.
//
// A Table holds named columns in insertion order. Cells are loosely typed
// ([]any) and nil marks a missing value. Tables are the canonical intermediate
// form: the normalizer produces an (edge table, node table) pair, the
// sanitizer cleans it, and the serializers turn it into wire payloads.
//
// Mutating methods operate on the receiver; pipeline stages that must not
// alter caller data work on a Clone.
package table

import (
	"fmt"

	"github.com/graphport/graphport/pkg/errors"
)

// Column is a named, ordered list of cell values. A nil cell is a missing
// value.
type Column struct {
	Name   string
	Values []any
}

// Table is an ordered collection of equal-length columns.
type Table struct {
	names []string
	cols  map[string][]any
	rows  int
}

// New returns an empty table with no columns.
func New() *Table {
	return &Table{cols: map[string][]any{}}
}

// FromColumns builds a table from the given columns.
// All columns must have the same length; duplicate names are rejected.
func FromColumns(cols ...Column) (*Table, error) {
	t := New()
	for _, c := range cols {
		if err := t.AddColumn(c.Name, c.Values); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// FromRecords builds a table from row-oriented records using the given
// column order. Keys absent from a record become nil cells; record keys not
// listed in order are ignored.
func FromRecords(records []map[string]any, order []string) *Table {
	t := New()
	for _, name := range order {
		values := make([]any, len(records))
		for i, rec := range records {
			if v, ok := rec[name]; ok {
				values[i] = v
			}
		}
		// Column names come from the caller's own ordering, so length and
		// duplicate checks cannot fail here beyond duplicates, which keep
		// first occurrence.
		if !t.HasColumn(name) {
			t.names = append(t.names, name)
			t.cols[name] = values
			t.rows = len(records)
		}
	}
	return t
}

// Len returns the number of rows.
func (t *Table) Len() int { return t.rows }

// Columns returns column names in insertion order.
// The returned slice is a copy.
func (t *Table) Columns() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// HasColumn reports whether a column with the given name exists.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.cols[name]
	return ok
}

// Column returns the cell values of the named column.
// The returned slice aliases the table; callers must not modify it.
func (t *Table) Column(name string) ([]any, bool) {
	v, ok := t.cols[name]
	return v, ok
}

// Cell returns the value at (row, column name), or nil if absent.
func (t *Table) Cell(row int, name string) any {
	col, ok := t.cols[name]
	if !ok || row < 0 || row >= len(col) {
		return nil
	}
	return col[row]
}

// AddColumn appends a new column. Fails if the name already exists or the
// length disagrees with existing columns.
func (t *Table) AddColumn(name string, values []any) error {
	if _, ok := t.cols[name]; ok {
		return errors.New(errors.ErrCodeInvalidArgument, "duplicate column %q", name)
	}
	if len(t.names) > 0 && len(values) != t.rows {
		return errors.New(errors.ErrCodeInvalidArgument,
			"column %q has %d values, table has %d rows", name, len(values), t.rows)
	}
	t.names = append(t.names, name)
	t.cols[name] = values
	t.rows = len(values)
	return nil
}

// SetColumn adds or replaces a column, keeping its position when it already
// exists.
func (t *Table) SetColumn(name string, values []any) error {
	if _, ok := t.cols[name]; !ok {
		return t.AddColumn(name, values)
	}
	if len(values) != t.rows {
		return errors.New(errors.ErrCodeInvalidArgument,
			"column %q has %d values, table has %d rows", name, len(values), t.rows)
	}
	t.cols[name] = values
	return nil
}

// CopyColumn copies the values of column src under the new name dst.
// Used by the record-list serializer to inject wire-named feature columns.
func (t *Table) CopyColumn(dst, src string) error {
	values, ok := t.cols[src]
	if !ok {
		return errors.New(errors.ErrCodeSchemaMismatch, "column %q does not exist", src)
	}
	dup := make([]any, len(values))
	copy(dup, values)
	return t.SetColumn(dst, dup)
}

// DropColumns removes the named columns. Unknown names are ignored.
func (t *Table) DropColumns(names ...string) {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[n] = true
	}
	kept := t.names[:0]
	for _, n := range t.names {
		if drop[n] {
			delete(t.cols, n)
			continue
		}
		kept = append(kept, n)
	}
	t.names = kept
	if len(t.names) == 0 {
		t.rows = 0
	}
}

// Clone returns a deep copy of the table structure. Cell values themselves
// are shared; pipeline stages treat cells as immutable.
func (t *Table) Clone() *Table {
	out := New()
	for _, name := range t.names {
		src := t.cols[name]
		dup := make([]any, len(src))
		copy(dup, src)
		out.names = append(out.names, name)
		out.cols[name] = dup
	}
	out.rows = t.rows
	return out
}

// Filter returns a new table containing only the rows for which keep returns
// true. Column order is preserved.
func (t *Table) Filter(keep func(row int) bool) *Table {
	var idx []int
	for i := 0; i < t.rows; i++ {
		if keep(i) {
			idx = append(idx, i)
		}
	}
	out := New()
	for _, name := range t.names {
		src := t.cols[name]
		dup := make([]any, len(idx))
		for j, i := range idx {
			dup[j] = src[i]
		}
		out.names = append(out.names, name)
		out.cols[name] = dup
	}
	out.rows = len(idx)
	return out
}

// String returns a compact description for logs and errors.
func (t *Table) String() string {
	return fmt.Sprintf("table(%d rows, %d cols)", t.rows, len(t.names))
}
