package project

import (
	"strings"

	"github.com/geobasenrn/nrn-go/internal/schema"
	"github.com/geobasenrn/nrn-go/internal/store"
)

// ProjectedTable is one (table, format, lang) rendering: the table's rows
// under their external column names, ready to hand to a writer.
type ProjectedTable struct {
	// Name is the per-format, per-language table/file basename, case
	// preserved per spec.md §4.7 step 3 ("preserving case of the first
	// letter of the basename").
	Name    string
	Columns []string // external column names, in a stable order
	Table   *store.Table
}

// ProjectTable renders one canonical table under (format, lang): columns
// with no external name in this projection are dropped (spec.md §4.7 step
// 1), the rest are renamed to their external name (step 2), and the table
// itself is renamed via NameTemplate (step 3).
func ProjectTable(t *store.Table, table schema.TableName, sch *schema.Schema, format schema.Format, lang schema.Lang, source string, major, minor int) ProjectedTable {
	fields := sch.Registry.Fields(table)

	renamed := &store.Table{
		Name:    string(table),
		UUIDs:   t.UUIDs,
		Columns: make(map[string][]store.Value, len(t.Columns)),
		Geoms:   t.Geoms,
		Spatial: t.Spatial,
	}

	var externalNames []string
	for col, vals := range t.Columns {
		spec, ok := fields[col]
		if !ok {
			continue
		}
		ext, ok := spec.ExternalName(format, lang)
		if !ok {
			continue
		}
		renamed.Columns[ext] = vals
		externalNames = append(externalNames, ext)
	}

	return ProjectedTable{
		Name:    NameTemplate(string(table), source, major, minor, format, lang),
		Columns: externalNames,
		Table:   renamed,
	}
}

// NameTemplate substitutes <source>, <major_version>, <minor_version> into
// the per-format file naming convention (spec.md §6 "Output naming"):
// NRN_<SOURCE>_<major>_<minor>_<FORMAT>[_<lang>] for GPKG/SHP, a bare
// table name for GML (one file per layer, under a per-language
// directory), and NRN/RRN for KML per spec.md ("nrn_rrn for KML
// naming"). NRN becomes RRN for French outputs.
func NameTemplate(table, source string, major, minor int, format schema.Format, lang schema.Lang) string {
	prefix := "NRN"
	if lang == schema.LangFR {
		prefix = "RRN"
	}

	switch format {
	case schema.FormatGML:
		return table
	case schema.FormatKML:
		return "nrn_rrn_" + table
	default:
		base := prefix + "_" + strings.ToUpper(source) + "_" +
			itoa(major) + "_" + itoa(minor) + "_" + strings.ToUpper(string(format))
		return preserveFirstLetterCase(table, base)
	}
}

// preserveFirstLetterCase carries the case of orig's first letter onto
// template's first letter, matching the original format_path's
// "preserve the case of the first letter of the basename" rule.
func preserveFirstLetterCase(orig, template string) string {
	if len(orig) == 0 || len(template) == 0 {
		return template
	}
	first := rune(orig[0])
	out := []rune(template)
	if first >= 'a' && first <= 'z' {
		if out[0] >= 'A' && out[0] <= 'Z' {
			out[0] = out[0] + ('a' - 'A')
		}
	} else if first >= 'A' && first <= 'Z' {
		if out[0] >= 'a' && out[0] <= 'z' {
			out[0] = out[0] - ('a' - 'A')
		}
	}
	return string(out)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var b []byte
	for n > 0 {
		b = append([]byte{byte('0' + n%10)}, b...)
		n /= 10
	}
	if neg {
		b = append([]byte{'-'}, b...)
	}
	return string(b)
}
