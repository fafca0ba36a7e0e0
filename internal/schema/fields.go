package schema

// FieldType is the semantic type of a canonical attribute (spec.md §3:
// "semantic type (string, integer, real, date-as-string)").
type FieldType int

const (
	FieldString FieldType = iota
	FieldInteger
	FieldReal
	FieldDateString
)

// Format is an output container format.
type Format string

const (
	FormatGPKG Format = "gpkg"
	FormatSHP  Format = "shp"
	FormatGML  Format = "gml"
	FormatKML  Format = "kml"
)

// AllFormats lists every output format S7 projects into.
var AllFormats = []Format{FormatGPKG, FormatSHP, FormatGML, FormatKML}

// Lang is an output/domain language.
type Lang string

const (
	LangEN Lang = "en"
	LangFR Lang = "fr"
)

// AllLangs lists every output language S7 projects into.
var AllLangs = []Lang{LangEN, LangFR}

// FieldSpec is one registered attribute: its semantic type, declared
// width, and the external (output) name it takes in each (format, lang)
// projection. A missing entry in External[format][lang], or an explicit
// empty string, means "omit this column in that projection" (spec.md §3).
type FieldSpec struct {
	Name     string
	Type     FieldType
	Width    int
	Domain   string // domain name, or "" if this field has no domain
	External map[Format]map[Lang]string
}

// ExternalName looks up the output name for (format, lang). The second
// return value is false when the column should be omitted.
func (f FieldSpec) ExternalName(format Format, lang Lang) (string, bool) {
	byLang, ok := f.External[format]
	if !ok {
		return "", false
	}
	name, ok := byLang[lang]
	if !ok || name == "" {
		return "", false
	}
	return name, true
}

// Registry holds every table's field specs, keyed by table then field name.
type Registry struct {
	fields map[TableName]map[string]FieldSpec
}

// NewRegistry builds the canonical NRN schema registry.
func NewRegistry() *Registry {
	r := &Registry{fields: make(map[TableName]map[string]FieldSpec)}
	r.registerCommon()
	r.registerRoadseg()
	r.registerFerryseg()
	r.registerJunction()
	r.registerBlkpassage()
	r.registerTollpoint()
	r.registerAddrange()
	r.registerAltnamlink()
	r.registerStrplaname()
	return r
}

func ext(en string, variants ...map[Format]string) map[Format]map[Lang]string {
	// Helper kept intentionally tiny: most fields use the identical external
	// name in every format/lang (the canonical name), expressed as the
	// one-argument form `ext(name)`.
	out := map[Format]map[Lang]string{}
	for _, f := range AllFormats {
		out[f] = map[Lang]string{LangEN: en, LangFR: en}
	}
	return out
}

// register adds field specs for table. A spec without an External map
// gets the canonical name as its external name in every projection.
func (r *Registry) register(table TableName, fields ...FieldSpec) {
	m, ok := r.fields[table]
	if !ok {
		m = make(map[string]FieldSpec)
		r.fields[table] = m
	}
	for _, f := range fields {
		if f.External == nil {
			f.External = ext(f.Name)
		}
		m[f.Name] = f
	}
}

func field(name string, t FieldType) FieldSpec {
	return FieldSpec{Name: name, Type: t, Width: defaultWidth(t)}
}

func domainField(name string, t FieldType, domain string) FieldSpec {
	f := field(name, t)
	f.Domain = domain
	return f
}

func defaultWidth(t FieldType) int {
	switch t {
	case FieldString:
		return 80
	case FieldInteger:
		return 10
	case FieldReal:
		return 10
	case FieldDateString:
		return 8
	}
	return 0
}

func (r *Registry) registerCommon() {
	for _, t := range AllTables {
		r.register(t,
			field("nid", FieldString),
			field("credate", FieldDateString),
			field("revdate", FieldDateString),
			domainField("datasetnam", FieldString, "datasetnam"),
			domainField("acqtech", FieldString, "acqtech"),
			field("specvers", FieldReal),
		)
	}
}

// Fields returns the full set of field specs registered for a table
// (common fields plus that table's own).
func (r *Registry) Fields(table TableName) map[string]FieldSpec {
	return r.fields[table]
}

// Field looks up one field spec.
func (r *Registry) Field(table TableName, name string) (FieldSpec, bool) {
	m, ok := r.fields[table]
	if !ok {
		return FieldSpec{}, false
	}
	f, ok := m[name]
	return f, ok
}

// FieldNames returns every declared field name for a table.
func (r *Registry) FieldNames(table TableName) []string {
	names := make([]string, 0, len(r.fields[table]))
	for n := range r.fields[table] {
		names = append(names, n)
	}
	return names
}
