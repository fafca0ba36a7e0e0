package source

import (
	"fmt"
	"os"

	geojson "github.com/paulmach/go.geojson"

	"github.com/geobasenrn/nrn-go/internal/geomutil"
)

// GeoJSONReader reads provincial source layers delivered as a single
// GeoJSON FeatureCollection file (one file == one layer, as with
// Shapefile), grounded on paulmach/go.geojson's Feature/FeatureCollection
// types.
type GeoJSONReader struct {
	CRS geomutil.EPSGCode
}

// NewGeoJSONReader returns a reader tagging every record with the given
// source CRS. GeoJSON is conventionally WGS84 (EPSG:4326); the config's
// declared `data.crs` still governs, since some provincial exports embed
// coordinates in a different geographic CRS despite the GeoJSON spec.
func NewGeoJSONReader(crs geomutil.EPSGCode) *GeoJSONReader {
	return &GeoJSONReader{CRS: crs}
}

// ReadLayer reads filename as a GeoJSON FeatureCollection.
func (r *GeoJSONReader) ReadLayer(filename, layerName, query string) (Layer, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return Layer{}, fmt.Errorf("source: reading geojson %q: %w", filename, err)
	}

	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return Layer{}, fmt.Errorf("source: parsing geojson %q: %w", filename, err)
	}

	layer := Layer{Name: layerName, CRS: r.CRS, Spatial: true}

	for _, feat := range fc.Features {
		geom, err := convertGeoJSONGeometry(feat.Geometry)
		if err != nil {
			continue
		}
		layer.Records = append(layer.Records, Record{
			Attributes: feat.Properties,
			Geometry:   geom,
		})
	}

	return layer, nil
}

// LoadBoundaryGeometry reads a single-feature (or single-geometry)
// GeoJSON file and returns its geometry, for the CLI's `convert
// --boundary` flag (spec.md §6).
func LoadBoundaryGeometry(filename string) (geomutil.Geometry, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return geomutil.Geometry{}, fmt.Errorf("source: reading boundary %q: %w", filename, err)
	}

	if fc, err := geojson.UnmarshalFeatureCollection(data); err == nil {
		if len(fc.Features) == 0 {
			return geomutil.Geometry{}, fmt.Errorf("source: boundary %q has no features", filename)
		}
		return convertGeoJSONGeometry(fc.Features[0].Geometry)
	}

	feat, err := geojson.UnmarshalFeature(data)
	if err != nil {
		return geomutil.Geometry{}, fmt.Errorf("source: parsing boundary %q: %w", filename, err)
	}
	return convertGeoJSONGeometry(feat.Geometry)
}

func convertGeoJSONGeometry(g *geojson.Geometry) (geomutil.Geometry, error) {
	if g == nil {
		return geomutil.Geometry{}, fmt.Errorf("source: nil geometry")
	}
	switch {
	case g.IsPoint():
		return geomutil.Geometry{
			Type:   geomutil.GeometryTypePoint,
			Points: []geomutil.Coord{{g.Point[0], g.Point[1]}},
		}, nil

	case g.IsLineString():
		pts := make([]geomutil.Coord, 0, len(g.LineString))
		for _, c := range g.LineString {
			pts = append(pts, geomutil.Coord{c[0], c[1]})
		}
		return geomutil.Geometry{Type: geomutil.GeometryTypeLineString, Points: pts}, nil

	case g.IsPolygon():
		if len(g.Polygon) == 0 {
			return geomutil.Geometry{}, fmt.Errorf("source: empty polygon")
		}
		ring := g.Polygon[0] // only the outer ring — see geomutil.WithinPolygon
		pts := make([]geomutil.Coord, 0, len(ring))
		for _, c := range ring {
			pts = append(pts, geomutil.Coord{c[0], c[1]})
		}
		return geomutil.Geometry{Type: geomutil.GeometryTypePolygon, Points: pts}, nil

	default:
		return geomutil.Geometry{}, fmt.Errorf("source: unsupported geojson geometry type %q", g.Type)
	}
}
