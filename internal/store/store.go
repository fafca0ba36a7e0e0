// Package store implements the shared in-memory table store every pipeline
// stage reads and writes (spec.md §5: "a single in-memory table store ...
// is the only shared state"). Tables are column-major struct-of-vectors with
// a side UUID index and, for spatial layers, a parallel geometry vector —
// per the Design Notes ("avoid row objects as the primary representation").
package store

import (
	"fmt"

	"github.com/geobasenrn/nrn-go/internal/geomutil"
)

// Table is one canonical layer: a set of named columns of equal length,
// an aligned internal UUID per row, and (for spatial layers) an aligned
// geometry per row.
type Table struct {
	Name    string
	UUIDs   []string
	Columns map[string][]Value
	Geoms   []geomutil.Geometry // nil for attribute-only tables
	Spatial bool
}

// NewTable creates an empty table with the given columns pre-declared.
func NewTable(name string, columns []string, spatial bool) *Table {
	t := &Table{
		Name:    name,
		UUIDs:   nil,
		Columns: make(map[string][]Value, len(columns)),
		Spatial: spatial,
	}
	for _, c := range columns {
		t.Columns[c] = nil
	}
	return t
}

// RowCount returns the number of rows currently in the table.
func (t *Table) RowCount() int {
	return len(t.UUIDs)
}

// AddRow appends a new row, returning its index. uuid must already be
// minted by the caller (google/uuid is the source of fresh UUIDs in this
// pipeline). geom is ignored for
// non-spatial tables.
func (t *Table) AddRow(uuid string, values map[string]Value, geom geomutil.Geometry) int {
	idx := len(t.UUIDs)
	t.UUIDs = append(t.UUIDs, uuid)

	for col := range t.Columns {
		t.Columns[col] = append(t.Columns[col], values[col])
	}
	// Columns present in values but not yet declared are added lazily,
	// back-filling earlier rows with nil so every column stays row-aligned.
	for col, v := range values {
		if _, ok := t.Columns[col]; !ok {
			filled := make([]Value, idx+1)
			filled[idx] = v
			t.Columns[col] = filled
		}
	}

	if t.Spatial {
		t.Geoms = append(t.Geoms, geom)
	}
	return idx
}

// EnsureColumn declares col if absent, back-filling existing rows with nil.
func (t *Table) EnsureColumn(col string) {
	if _, ok := t.Columns[col]; ok {
		return
	}
	t.Columns[col] = make([]Value, t.RowCount())
}

// Get returns the value at (col, row). Returns nil, false if either is out
// of range or the column is undeclared.
func (t *Table) Get(col string, row int) (Value, bool) {
	vals, ok := t.Columns[col]
	if !ok || row < 0 || row >= len(vals) {
		return nil, false
	}
	return vals[row], true
}

// MustGet is like Get but panics on a missing column — used internally
// where the column is guaranteed by the schema registry to exist.
func (t *Table) MustGet(col string, row int) Value {
	v, ok := t.Get(col, row)
	if !ok {
		panic(fmt.Sprintf("store: table %q has no column %q", t.Name, col))
	}
	return v
}

// Set assigns the value at (col, row), declaring the column if necessary.
func (t *Table) Set(col string, row int, v Value) {
	t.EnsureColumn(col)
	vals := t.Columns[col]
	for len(vals) <= row {
		vals = append(vals, nil)
	}
	vals[row] = v
	t.Columns[col] = vals
}

// ColumnNames returns the table's declared column names.
func (t *Table) ColumnNames() []string {
	names := make([]string, 0, len(t.Columns))
	for c := range t.Columns {
		names = append(names, c)
	}
	return names
}

// Clone performs a deep copy of the table (used by S7 French materialization,
// which clones attribute data but shares the geometry slice per spec.md
// §4.7: "Geometries are not cloned, only referenced").
func (t *Table) Clone() *Table {
	out := &Table{
		Name:    t.Name,
		UUIDs:   append([]string(nil), t.UUIDs...),
		Columns: make(map[string][]Value, len(t.Columns)),
		Spatial: t.Spatial,
		Geoms:   t.Geoms, // shared, not copied
	}
	for col, vals := range t.Columns {
		out.Columns[col] = append([]Value(nil), vals...)
	}
	return out
}

// KeepRows rebuilds the table containing only the rows whose index is true
// in keep (len(keep) must equal RowCount()). Used by S3's strplaname
// de-duplication pass and by S7's per-placename KML partitioning.
func (t *Table) KeepRows(keep []bool) *Table {
	if len(keep) != t.RowCount() {
		panic("store: KeepRows mask length mismatch")
	}
	out := &Table{
		Name:    t.Name,
		Columns: make(map[string][]Value, len(t.Columns)),
		Spatial: t.Spatial,
	}
	for i, k := range keep {
		if !k {
			continue
		}
		out.UUIDs = append(out.UUIDs, t.UUIDs[i])
		if t.Spatial && i < len(t.Geoms) {
			out.Geoms = append(out.Geoms, t.Geoms[i])
		}
	}
	for col, vals := range t.Columns {
		kept := make([]Value, 0, len(out.UUIDs))
		for i, k := range keep {
			if k {
				kept = append(kept, vals[i])
			}
		}
		out.Columns[col] = kept
	}
	return out
}

// Append adds every row of o onto the end of t, declaring any column o has
// that t lacks (back-filled with nil for rows that precede it). Used by
// ingest to merge per-source conformed tables into one canonical layer
// when multiple provincial sources feed the same target table.
func (t *Table) Append(o *Table) {
	for col := range o.Columns {
		t.EnsureColumn(col)
	}
	for i, id := range o.UUIDs {
		t.UUIDs = append(t.UUIDs, id)
		for col, vals := range t.Columns {
			var v Value
			if ov, ok := o.Columns[col]; ok && i < len(ov) {
				v = ov[i]
			}
			t.Columns[col] = append(vals, v)
		}
		if t.Spatial && i < len(o.Geoms) {
			t.Geoms = append(t.Geoms, o.Geoms[i])
		}
	}
}

// Store is the full working dataset: every canonical layer keyed by name.
type Store struct {
	Tables map[string]*Table
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{Tables: make(map[string]*Table)}
}

// Table returns the named table, creating it empty (attribute-only) if
// absent. Callers that need a spatial table should use TableSpatial.
func (s *Store) Table(name string) *Table {
	if t, ok := s.Tables[name]; ok {
		return t
	}
	t := NewTable(name, nil, false)
	s.Tables[name] = t
	return t
}

// TableSpatial returns the named spatial table, creating it if absent.
func (s *Store) TableSpatial(name string) *Table {
	if t, ok := s.Tables[name]; ok {
		return t
	}
	t := NewTable(name, nil, true)
	s.Tables[name] = t
	return t
}

// Set installs (or replaces) a table in the store.
func (s *Store) Set(name string, t *Table) {
	s.Tables[name] = t
}

// Has reports whether the named table exists and has at least one row.
func (s *Store) Has(name string) bool {
	t, ok := s.Tables[name]
	return ok && t.RowCount() > 0
}
