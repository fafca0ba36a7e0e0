// Package geomutil provides the point/line/polygon primitives, reprojection,
// and coordinate rounding the transformation pipeline needs. It is not a
// general GIS engine: it implements exactly the geometric operations the
// pipeline's stages require (planar graph endpoints, polygon containment,
// bounding boxes for the R-tree prefilters) and nothing more.
package geomutil

import (
	"fmt"
	"math"
)

// GeometryType identifies the shape stored in a Geometry value.
type GeometryType int

const (
	// GeometryTypePoint is a single coordinate pair.
	GeometryTypePoint GeometryType = iota
	// GeometryTypeLineString is an ordered sequence of coordinate pairs.
	GeometryTypeLineString
	// GeometryTypePolygon is a closed ring of coordinate pairs (first == last).
	GeometryTypePolygon
)

func (t GeometryType) String() string {
	switch t {
	case GeometryTypePoint:
		return "Point"
	case GeometryTypeLineString:
		return "LineString"
	case GeometryTypePolygon:
		return "Polygon"
	default:
		return "Unknown"
	}
}

// Coord is a rounded (lon, lat) pair in EPSG:4617.
type Coord [2]float64

// Geometry is the spatial representation carried by a spatial-table row.
type Geometry struct {
	Type   GeometryType
	Points []Coord // for Point: len==1; LineString: >=2; Polygon: closed ring, >=4
}

// CoordPrecision is the number of decimal digits every stored coordinate is
// rounded to (spec.md invariant 6: "rounded to 7 decimals", ~1.1cm at the
// equator).
const CoordPrecision = 7

// RoundCoord rounds a single coordinate pair to CoordPrecision decimal
// digits. Rounding happens once, at ingest, and every later stage compares
// coordinates by exact equality on the rounded value (spec.md §4.5, §4.6).
func RoundCoord(c Coord) Coord {
	scale := math.Pow(10, CoordPrecision)
	return Coord{
		math.Round(c[0]*scale) / scale,
		math.Round(c[1]*scale) / scale,
	}
}

// RoundGeometry returns a copy of g with every coordinate rounded; g itself
// is not modified.
func RoundGeometry(g Geometry) Geometry {
	out := Geometry{Type: g.Type, Points: make([]Coord, len(g.Points))}
	for i, c := range g.Points {
		out.Points[i] = RoundCoord(c)
	}
	return out
}

// First returns the first coordinate of the geometry's point sequence.
func (g Geometry) First() (Coord, error) {
	if len(g.Points) == 0 {
		return Coord{}, fmt.Errorf("geomutil: empty geometry has no first coordinate")
	}
	return g.Points[0], nil
}

// Last returns the last coordinate of the geometry's point sequence.
func (g Geometry) Last() (Coord, error) {
	if len(g.Points) == 0 {
		return Coord{}, fmt.Errorf("geomutil: empty geometry has no last coordinate")
	}
	return g.Points[len(g.Points)-1], nil
}

// Equal reports whether two geometries are identical by literal
// vertex-sequence equality (spec.md §4.6: "not topological equality").
func (g Geometry) Equal(o Geometry) bool {
	if g.Type != o.Type || len(g.Points) != len(o.Points) {
		return false
	}
	for i := range g.Points {
		if g.Points[i] != o.Points[i] {
			return false
		}
	}
	return true
}

// Bounds is an axis-aligned bounding box with an inclusive overlap test.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float64
}

// BoundsOf computes the bounding box of a coordinate sequence. Panics are
// avoided by returning a degenerate (zero-area) box for empty input.
func BoundsOf(pts []Coord) Bounds {
	if len(pts) == 0 {
		return Bounds{}
	}
	b := Bounds{MinX: pts[0][0], MaxX: pts[0][0], MinY: pts[0][1], MaxY: pts[0][1]}
	for _, p := range pts[1:] {
		b.MinX = math.Min(b.MinX, p[0])
		b.MaxX = math.Max(b.MaxX, p[0])
		b.MinY = math.Min(b.MinY, p[1])
		b.MaxY = math.Max(b.MaxY, p[1])
	}
	return b
}

// Intersects reports whether two bounding boxes overlap (inclusive edges).
func (b Bounds) Intersects(o Bounds) bool {
	return b.MinX <= o.MaxX && b.MaxX >= o.MinX && b.MinY <= o.MaxY && b.MaxY >= o.MinY
}
