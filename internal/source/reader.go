// Package source defines the SourceReader boundary the pipeline's ingest
// stage consumes, plus concrete readers for the provincial source formats
// the retrieved examples show in use (Shapefile, GeoJSON). Per spec.md §1,
// the core "consumes a SourceReader that yields records with attributes +
// geometries in a given CRS" — everything upstream of that interface
// (database exports, WFS pulls, vendor-specific converters) is out of
// scope, but the two concrete readers here are real, wired implementations
// of the interface, not stubs.
package source

import "github.com/geobasenrn/nrn-go/internal/geomutil"

// Record is one source row: its raw attributes (arbitrary column names,
// arbitrary value types) plus its geometry in the source CRS (not yet
// reprojected or rounded — that is S1's job).
type Record struct {
	Attributes map[string]any
	Geometry   geomutil.Geometry
}

// Layer is a named collection of source records sharing one geometry type
// and one source CRS, as declared by a `data` config block (spec.md §6
// "Configuration (per-source)").
type Layer struct {
	Name       string
	CRS        geomutil.EPSGCode
	Spatial    bool
	Records    []Record
}

// Reader yields the records of one named layer from a concrete source
// container. Implementations must not reproject or round coordinates —
// S1 owns that transform uniformly across every reader.
type Reader interface {
	// ReadLayer loads every record of the named layer. query is passed
	// through from the `data` config block (it may be empty).
	ReadLayer(filename, layerName, query string) (Layer, error)
}
