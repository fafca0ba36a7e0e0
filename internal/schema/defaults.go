package schema

// Defaults holds the per-(table, field, lang) default value substituted for
// any value outside a field's domain, or for any unmapped/absent value
// (spec.md §4.2 "Defaults": "Declared once per (table, field), per
// language. Defaults for id/nid fields are the empty string or
// equivalent; numeric defaults are -1 or the spec-mandated sentinel; date
// defaults are '0'").
type Defaults struct {
	byTableField map[TableName]map[string]map[Lang]Value
}

// Value mirrors store.Value without importing the store package (schema
// must stay a leaf dependency); both are `any` and interchangeable.
type Value = any

// NewDefaults builds the default-value table. Date fields default to "0";
// numeric fields default to their domain's Unknown/None/Other code when
// they have one, else -1; string fields with such a domain entry default
// to its English/French labels; other identifier-shaped string fields
// default to ""; all remaining string fields default to "None"/"Aucun".
func NewDefaults(reg *Registry, domains *DomainSet) *Defaults {
	d := &Defaults{byTableField: make(map[TableName]map[string]map[Lang]Value)}

	for _, table := range AllTables {
		fields := reg.Fields(table)
		for name, spec := range fields {
			en, fr := defaultFor(spec, domains)
			d.set(table, name, LangEN, en)
			d.set(table, name, LangFR, fr)
		}
	}
	return d
}

func defaultFor(spec FieldSpec, domains *DomainSet) (en, fr Value) {
	switch spec.Type {
	case FieldDateString:
		return "0", "0"
	case FieldInteger, FieldReal:
		if spec.Domain != "" {
			if dom, ok := domains.Domain(spec.Domain); ok {
				// Domain-bearing numeric fields default to the domain's
				// "Unknown"/"None"/"Other" entry when one exists.
				for _, e := range dom.Entries {
					if e.EN == "Unknown" || e.EN == "None" || e.EN == "Other" {
						return e.Code, e.Code
					}
				}
			}
		}
		return -1, -1
	default: // FieldString
		if spec.Domain != "" {
			if dom, ok := domains.Domain(spec.Domain); ok {
				for _, e := range dom.Entries {
					if e.EN == "Unknown" || e.EN == "None" || e.EN == "Other" {
						return e.EN, e.FR
					}
				}
			}
		}
		if isNIDLike(spec.Name) {
			return DefaultSentinelNID, DefaultSentinelNID
		}
		return "None", "Aucun"
	}
}

func isNIDLike(name string) bool {
	if name == "nid" {
		return true
	}
	n := len(name)
	return n >= 3 && name[n-3:] == "nid"
}

func (d *Defaults) set(table TableName, field string, lang Lang, v Value) {
	m, ok := d.byTableField[table]
	if !ok {
		m = make(map[string]map[Lang]Value)
		d.byTableField[table] = m
	}
	lm, ok := m[field]
	if !ok {
		lm = make(map[Lang]Value)
		m[field] = lm
	}
	lm[lang] = v
}

// Default returns the default value for (table, field, lang).
func (d *Defaults) Default(table TableName, field string, lang Lang) (Value, bool) {
	m, ok := d.byTableField[table]
	if !ok {
		return nil, false
	}
	lm, ok := m[field]
	if !ok {
		return nil, false
	}
	v, ok := lm[lang]
	return v, ok
}
