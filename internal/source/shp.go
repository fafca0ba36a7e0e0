package source

import (
	"fmt"

	shp "github.com/jonas-p/go-shp"

	"github.com/geobasenrn/nrn-go/internal/geomutil"
)

// ShapefileReader reads provincial source layers delivered as Esri
// Shapefiles, grounded on the field-by-index attribute access pattern
// shown in the retrieved gursShp2geoJson.go example (jonas-p/go-shp).
type ShapefileReader struct {
	CRS geomutil.EPSGCode
}

// NewShapefileReader returns a reader that tags every record with the
// given source CRS (from the `data.crs` config field).
func NewShapefileReader(crs geomutil.EPSGCode) *ShapefileReader {
	return &ShapefileReader{CRS: crs}
}

// ReadLayer opens filename as a Shapefile and reads every record. query
// and layerName are unused for Shapefiles (one file == one layer); the
// parameters exist to satisfy the shared Reader interface used across
// format-specific readers.
func (r *ShapefileReader) ReadLayer(filename, layerName, query string) (Layer, error) {
	sr, err := shp.Open(filename)
	if err != nil {
		return Layer{}, fmt.Errorf("source: opening shapefile %q: %w", filename, err)
	}
	defer sr.Close()

	fields := sr.Fields()
	fieldNames := make([]string, len(fields))
	for i, f := range fields {
		fieldNames[i] = f.String()
	}

	layer := Layer{Name: layerName, CRS: r.CRS, Spatial: true}

	for sr.Next() {
		_, shape := sr.Shape()

		attrs := make(map[string]any, len(fieldNames))
		for i, name := range fieldNames {
			attrs[name] = sr.Attribute(i)
		}

		geom, err := convertShape(shape)
		if err != nil {
			// A single malformed geometry doesn't abort the whole layer;
			// the record is skipped without a log entry.
			continue
		}

		layer.Records = append(layer.Records, Record{Attributes: attrs, Geometry: geom})
	}

	return layer, nil
}

// convertShape converts a go-shp shape into the pipeline's internal
// Geometry representation. Point, polyline and polygon shapes are
// converted; other shape types return an error.
func convertShape(shape shp.Shape) (geomutil.Geometry, error) {
	switch s := shape.(type) {
	case *shp.Point:
		return geomutil.Geometry{
			Type:   geomutil.GeometryTypePoint,
			Points: []geomutil.Coord{{s.X, s.Y}},
		}, nil

	case *shp.PolyLine:
		pts := make([]geomutil.Coord, 0, len(s.Points))
		for _, p := range s.Points {
			pts = append(pts, geomutil.Coord{p.X, p.Y})
		}
		return geomutil.Geometry{Type: geomutil.GeometryTypeLineString, Points: pts}, nil

	case *shp.Polygon:
		pts := make([]geomutil.Coord, 0, len(s.Points))
		for _, p := range s.Points {
			pts = append(pts, geomutil.Coord{p.X, p.Y})
		}
		return geomutil.Geometry{Type: geomutil.GeometryTypePolygon, Points: pts}, nil

	default:
		return geomutil.Geometry{}, fmt.Errorf("source: unsupported shapefile geometry type %T", shape)
	}
}
