package writer

import (
	"fmt"
	"path/filepath"

	shp "github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"

	"github.com/geobasenrn/nrn-go/internal/geomutil"
	"github.com/geobasenrn/nrn-go/internal/project"
	"github.com/geobasenrn/nrn-go/internal/store"
)

// ShapefileWriter emits one .shp/.dbf pair per table via jonas-p/go-shp,
// the same library internal/source uses to read shapefiles on ingest —
// grounded on the teacher's convertShape geometry-type switch, mirrored
// here in reverse.
type ShapefileWriter struct{}

func (w *ShapefileWriter) Write(tables []project.ProjectedTable, outDir string) error {
	for _, t := range tables {
		if err := writeShapefileTable(t, outDir); err != nil {
			return eris.Wrapf(err, "writer: shapefile table %s", t.Name)
		}
	}
	return nil
}

func writeShapefileTable(t project.ProjectedTable, outDir string) error {
	if !t.Table.Spatial || t.Table.RowCount() == 0 {
		return nil
	}

	shapeType, err := shapeTypeOf(t.Table.Geoms[0])
	if err != nil {
		return err
	}

	path := filepath.Join(outDir, t.Name+".shp")
	sw, err := shp.Create(path, shapeType)
	if err != nil {
		return err
	}
	defer sw.Close()

	fields := make([]shp.Field, len(t.Columns))
	for i, c := range t.Columns {
		fields[i] = shp.StringField(c, 80)
	}
	sw.SetFields(fields)

	for i := 0; i < t.Table.RowCount(); i++ {
		shape, err := toShpShape(t.Table.Geoms[i])
		if err != nil {
			return err
		}
		recIdx := sw.Write(shape)
		for ci, c := range t.Columns {
			sw.WriteAttribute(int(recIdx), ci, toAttributeString(t.Table.Columns[c][i]))
		}
	}
	return nil
}

func shapeTypeOf(g geomutil.Geometry) (shp.ShapeType, error) {
	switch g.Type {
	case geomutil.GeometryTypePoint:
		return shp.POINT, nil
	case geomutil.GeometryTypeLineString:
		return shp.POLYLINE, nil
	case geomutil.GeometryTypePolygon:
		return shp.POLYGON, nil
	default:
		return 0, fmt.Errorf("writer: unsupported geometry type %v", g.Type)
	}
}

func toShpShape(g geomutil.Geometry) (shp.Shape, error) {
	pts := make([]shp.Point, len(g.Points))
	for i, p := range g.Points {
		pts[i] = shp.Point{X: p[0], Y: p[1]}
	}

	switch g.Type {
	case geomutil.GeometryTypePoint:
		return &shp.Point{X: g.Points[0][0], Y: g.Points[0][1]}, nil
	case geomutil.GeometryTypeLineString:
		return shp.NewPolyLine([][]shp.Point{pts}), nil
	case geomutil.GeometryTypePolygon:
		return shp.NewPolygon([][]shp.Point{pts}), nil
	default:
		return nil, fmt.Errorf("writer: unsupported geometry type %v", g.Type)
	}
}

func toAttributeString(v store.Value) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}
