package conform

import (
	"strings"

	"github.com/google/uuid"

	"github.com/geobasenrn/nrn-go/internal/source"
	"github.com/geobasenrn/nrn-go/internal/store"
)

// TableConformer runs one table's mapping document against a source layer,
// producing a conformed store.Table (spec.md §4.1 "Contract": "given a
// source layer and a mapping document for one target table, produce a
// fully-populated table").
type TableConformer struct {
	Engine *Engine
}

// NewTableConformer wraps an Engine for table-level conform runs.
func NewTableConformer(e *Engine) *TableConformer {
	return &TableConformer{Engine: e}
}

// ConformTable normalizes rawMappings once against layer's column set, then
// evaluates every field for every source record, assigning a fresh UUID per
// output row via google/uuid (spec.md §4.1: "every conformed row receives a
// newly minted internal row UUID, independent of any source identifier").
func (tc *TableConformer) ConformTable(table string, rawMappings map[string]any, layer source.Layer) (*store.Table, error) {
	sourceColumns := collectColumns(layer)

	mappings := make(map[string]FieldMapping, len(rawMappings))
	for field, raw := range rawMappings {
		fm, err := Normalize(table, field, raw, sourceColumns)
		if err != nil {
			return nil, err
		}
		mappings[field] = fm
	}

	fieldNames := make([]string, 0, len(mappings))
	for field := range mappings {
		fieldNames = append(fieldNames, field)
	}

	out := store.NewTable(table, fieldNames, layer.Spatial)

	for _, rec := range layer.Records {
		row := lowercaseRow(rec.Attributes)

		values := make(map[string]store.Value, len(mappings))
		for field, fm := range mappings {
			v, err := tc.evalField(table, field, fm, row)
			if err != nil {
				return nil, err
			}
			values[field] = v
		}

		out.AddRow(uuid.NewString(), values, rec.Geometry)
	}

	return out, nil
}

// evalField evaluates one field's mapping for one row. A chain mapping
// declaring exactly two source fields and process_separately: false is the
// strplaname packed left/right form (spec.md Design Notes: a tagged
// Scalar(v) | Pair(l, r) variant): each field is run independently through
// the same function list and the two results are packed into a store.Pair
// for S3 to split later, rather than collapsed into one scalar.
func (tc *TableConformer) evalField(table, field string, fm FieldMapping, row Row) (store.Value, error) {
	if fm.Kind == KindChain && len(fm.Fields) == 2 && !fm.ProcessSeparately {
		left, err := tc.Engine.Apply(table, field, withFields(fm, fm.Fields[:1]), row)
		if err != nil {
			return nil, err
		}
		right, err := tc.Engine.Apply(table, field, withFields(fm, fm.Fields[1:]), row)
		if err != nil {
			return nil, err
		}
		return store.Pair{left, right}, nil
	}
	return tc.Engine.Apply(table, field, fm, row)
}

func withFields(fm FieldMapping, fields []string) FieldMapping {
	out := fm
	out.Fields = fields
	return out
}

func collectColumns(layer source.Layer) map[string]bool {
	cols := make(map[string]bool)
	for _, rec := range layer.Records {
		for k := range rec.Attributes {
			cols[strings.ToLower(k)] = true
		}
	}
	return cols
}

func lowercaseRow(attrs map[string]any) Row {
	row := make(Row, len(attrs))
	for k, v := range attrs {
		row[strings.ToLower(k)] = v
	}
	return row
}
