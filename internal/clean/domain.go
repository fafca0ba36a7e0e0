// Package clean implements S4 (spec.md §4.2 "Domain & Default Layer", §4.3
// "Cleaning"): replacing domain-bearing values with their canonical code,
// substituting per-field defaults for out-of-domain values, and running
// the four deterministic string-cleaning sweeps.
package clean

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/geobasenrn/nrn-go/internal/schema"
	"github.com/geobasenrn/nrn-go/internal/store"
)

// ApplyDomains walks every (table, field) the schema registry marks as
// domain-bearing and replaces each value with its canonical form —
// the domain entry's integer code for FieldInteger/FieldReal attributes,
// its canonical English label for FieldString attributes — substituting
// the field's configured English-language default for anything the
// domain doesn't recognize (spec.md §4.2 "Algorithm"). English is the
// working language throughout S4-S6; S7 produces the French-labelled
// form at projection (see §4.7).
func ApplyDomains(st *store.Store, sch *schema.Schema, log *zap.Logger) {
	for _, tableName := range schema.AllTables {
		table := string(tableName)
		t, ok := st.Tables[table]
		if !ok {
			continue
		}
		for field, spec := range sch.Registry.Fields(tableName) {
			if spec.Domain == "" {
				continue
			}
			applyFieldDomain(t, tableName, field, sch, log)
		}
	}
}

func applyFieldDomain(t *store.Table, table schema.TableName, field string, sch *schema.Schema, log *zap.Logger) {
	if _, ok := t.Columns[field]; !ok {
		return
	}
	dom, ok := sch.HasDomain(table, field)
	if !ok {
		return
	}
	def, _ := sch.Defaults.Default(table, field, schema.LangEN)

	unknown := 0
	n := t.RowCount()
	for i := 0; i < n; i++ {
		v, _ := t.Get(field, i)
		raw := fmt.Sprintf("%v", v)
		if v == nil || raw == "" {
			t.Set(field, i, def)
			continue
		}

		code, ok := dom.Lookup(raw)
		if !ok {
			unknown++
			t.Set(field, i, def)
			continue
		}

		spec, _ := sch.Registry.Field(table, field)
		if spec.Type == schema.FieldInteger || spec.Type == schema.FieldReal {
			t.Set(field, i, code)
			continue
		}
		label, _ := dom.Label(code, schema.LangEN)
		t.Set(field, i, label)
	}

	if unknown > 0 {
		log.Warn("clean: values outside domain replaced with default",
			zap.String("table", string(table)),
			zap.String("field", field),
			zap.Int("count", unknown),
		)
	}
}
