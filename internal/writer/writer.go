// Package writer implements the four output containers S7 projects into
// (spec.md §6 "Output naming": gpkg, shp, gml, kml), each behind the same
// LayerWriter interface so the pipeline's emission step is format-agnostic.
package writer

import "github.com/geobasenrn/nrn-go/internal/project"

// LayerWriter writes one or more projected tables to outDir. GPKGWriter
// puts every table in one file named after the first table; the other
// writers write one file per table.
type LayerWriter interface {
	Write(tables []project.ProjectedTable, outDir string) error
}

// ForFormat resolves the LayerWriter for one output format name.
func ForFormat(format string) (LayerWriter, bool) {
	switch format {
	case "gpkg":
		return &GPKGWriter{}, true
	case "shp":
		return &ShapefileWriter{}, true
	case "gml":
		return &GMLWriter{}, true
	case "kml":
		return &KMLWriter{}, true
	default:
		return nil, false
	}
}
