// Package project implements S7 (spec.md §4.7 "Output Projection &
// Emission"): French materialization, per-format/per-language schema
// projection, KML placename partitioning, and version numbering.
package project

import (
	"go.uber.org/zap"

	"github.com/geobasenrn/nrn-go/internal/schema"
	"github.com/geobasenrn/nrn-go/internal/store"
)

// Materialize clones the English store into a French one, translating
// every domain-bearing (table, field) value from its English label to the
// French equivalent via the registered domain map. A value that no longer
// matches any domain entry (already out of domain, or equal to the
// English default) falls back to the French default. Geometries are
// shared, not cloned (spec.md §4.7: "Geometries are not cloned, only
// referenced" — store.Table.Clone already implements that sharing).
func Materialize(en *store.Store, sch *schema.Schema, log *zap.Logger) *store.Store {
	fr := store.NewStore()

	for _, name := range schema.AllTables {
		src, ok := en.Tables[string(name)]
		if !ok {
			continue
		}
		fr.Set(string(name), translateTable(src, name, sch))
	}

	log.Info("project: materialized French dataset", zap.Int("tables", len(fr.Tables)))
	return fr
}

func translateTable(src *store.Table, table schema.TableName, sch *schema.Schema) *store.Table {
	out := src.Clone()

	for field, spec := range sch.Registry.Fields(table) {
		if spec.Domain == "" {
			continue
		}
		// FieldInteger/FieldReal domain fields store the language-neutral
		// integer code (conform/clean.ApplyDomains); only FieldString
		// fields store the English label text that needs translating.
		if spec.Type != schema.FieldString {
			continue
		}
		dom, ok := sch.Domains.Domain(spec.Domain)
		if !ok {
			continue
		}
		col, ok := out.Columns[field]
		if !ok {
			continue
		}
		enDefault, _ := sch.Defaults.Default(table, field, schema.LangEN)
		frDefault, _ := sch.Defaults.Default(table, field, schema.LangFR)

		for i, v := range col {
			col[i] = translateValue(v, dom, enDefault, frDefault)
		}
	}
	return out
}

// translateValue maps one stored English label to its French equivalent;
// translateTable calls it for FieldString domain fields only. An int or
// int64 value is looked up as a domain code and replaced by its French
// label, or kept as is when the code is unknown. A value
// equal to the English default maps to the French default regardless of
// whether it is independently a domain member, since the default may not
// itself carry a matching domain entry for every type.
func translateValue(v store.Value, dom schema.Domain, enDefault, frDefault store.Value) store.Value {
	if v == enDefault {
		return frDefault
	}

	switch s := v.(type) {
	case string:
		code, ok := dom.Lookup(s)
		if !ok {
			return frDefault
		}
		label, ok := dom.Label(code, schema.LangFR)
		if !ok {
			return frDefault
		}
		return label
	case int64:
		label, ok := dom.Label(int(s), schema.LangFR)
		if !ok {
			return v
		}
		return label
	case int:
		label, ok := dom.Label(s, schema.LangFR)
		if !ok {
			return v
		}
		return label
	default:
		return v
	}
}
