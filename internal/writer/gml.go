package writer

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/geobasenrn/nrn-go/internal/geomutil"
	"github.com/geobasenrn/nrn-go/internal/project"
)

// GMLWriter emits one GML file per table, one <featureMember> per row.
// No retrieved example repo ships a GML encoder, and GML is plain XML, so
// this is built on encoding/xml rather than a third-party library — one
// of the two deliberately stdlib-only writers in the package, with
// KMLWriter (see DESIGN.md).
type GMLWriter struct{}

type gmlFeatureCollection struct {
	XMLName  xml.Name      `xml:"FeatureCollection"`
	Features []gmlFeature  `xml:"featureMember"`
}

type gmlFeature struct {
	Geometry gmlGeometry    `xml:"geometry"`
	Fields   []gmlFieldXML  `xml:",any"`
}

type gmlGeometry struct {
	Coordinates string `xml:",chardata"`
}

type gmlFieldXML struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

func (w *GMLWriter) Write(tables []project.ProjectedTable, outDir string) error {
	for _, t := range tables {
		if err := writeGMLTable(t, outDir); err != nil {
			return eris.Wrapf(err, "writer: gml table %s", t.Name)
		}
	}
	return nil
}

func writeGMLTable(t project.ProjectedTable, outDir string) error {
	fc := gmlFeatureCollection{}

	for i := 0; i < t.Table.RowCount(); i++ {
		feature := gmlFeature{}
		if t.Table.Spatial && i < len(t.Table.Geoms) {
			feature.Geometry = gmlGeometry{Coordinates: coordinatesOf(t.Table.Geoms[i])}
		}
		for _, c := range t.Columns {
			feature.Fields = append(feature.Fields, gmlFieldXML{
				XMLName: xml.Name{Local: c},
				Value:   toAttributeString(t.Table.Columns[c][i]),
			})
		}
		fc.Features = append(fc.Features, feature)
	}

	out, err := xml.MarshalIndent(fc, "", "  ")
	if err != nil {
		return err
	}

	path := filepath.Join(outDir, t.Name+".gml")
	return os.WriteFile(path, append([]byte(xml.Header), out...), 0o644)
}

func coordinatesOf(g geomutil.Geometry) string {
	s := ""
	for i, p := range g.Points {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%g,%g", p[0], p[1])
	}
	return s
}
