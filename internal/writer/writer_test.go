package writer

import (
	"testing"

	"github.com/geobasenrn/nrn-go/internal/geomutil"
)

func TestForFormatResolvesKnownFormats(t *testing.T) {
	for _, f := range []string{"gpkg", "shp", "gml", "kml"} {
		if _, ok := ForFormat(f); !ok {
			t.Errorf("expected format %q to resolve to a writer", f)
		}
	}
}

func TestForFormatRejectsUnknown(t *testing.T) {
	if _, ok := ForFormat("dxf"); ok {
		t.Error("expected unknown format to not resolve")
	}
}

func TestCoordinatesOfFormatsLineString(t *testing.T) {
	g := geomutil.Geometry{Type: geomutil.GeometryTypeLineString, Points: []geomutil.Coord{{-66, 45}, {-66.1, 45.2}}}
	got := coordinatesOf(g)
	want := "-66,45 -66.1,45.2"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestShapeTypeOfMapsGeometryTypes(t *testing.T) {
	cases := []geomutil.GeometryType{geomutil.GeometryTypePoint, geomutil.GeometryTypeLineString, geomutil.GeometryTypePolygon}
	for _, c := range cases {
		if _, err := shapeTypeOf(geomutil.Geometry{Type: c, Points: []geomutil.Coord{{0, 0}}}); err != nil {
			t.Errorf("expected geometry type %v to map to a shape type, got error %v", c, err)
		}
	}
}
