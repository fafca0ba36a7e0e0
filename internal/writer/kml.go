package writer

import (
	"encoding/xml"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/geobasenrn/nrn-go/internal/geomutil"
	"github.com/geobasenrn/nrn-go/internal/project"
)

// KMLWriter emits one KML file per project.KMLPartition (spec.md §4.7 "KML
// partitioning"). Like GMLWriter this is plain XML via encoding/xml; no
// retrieved example ships a KML encoder.
type KMLWriter struct{}

type kmlDocument struct {
	XMLName    xml.Name       `xml:"kml"`
	Xmlns      string         `xml:"xmlns,attr"`
	Placemarks []kmlPlacemark `xml:"Document>Placemark"`
}

type kmlPlacemark struct {
	Name        string            `xml:"name"`
	LineString  *kmlLineString    `xml:"LineString,omitempty"`
	Point       *kmlPoint         `xml:"Point,omitempty"`
	ExtendedData []kmlSimpleData  `xml:"ExtendedData>SchemaData>SimpleData"`
}

type kmlLineString struct {
	Coordinates string `xml:"coordinates"`
}

type kmlPoint struct {
	Coordinates string `xml:"coordinates"`
}

type kmlSimpleData struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

// WritePartitions writes each partition's roadseg subset to its own
// file under outDir, named per project.KMLPartition.Filename.
func (w *KMLWriter) WritePartitions(partitions []project.KMLPartition, outDir string) error {
	for _, p := range partitions {
		if err := writeKMLPartition(p, outDir); err != nil {
			return eris.Wrapf(err, "writer: kml partition %s", p.Filename)
		}
	}
	return nil
}

// Write satisfies LayerWriter for uniformity with the other formats: one
// KML file per projected table. For the kml format the package command
// calls both Write and WritePartitions.
func (w *KMLWriter) Write(tables []project.ProjectedTable, outDir string) error {
	for _, t := range tables {
		doc := kmlDocument{Xmlns: "http://www.opengis.net/kml/2.2"}
		for i := 0; i < t.Table.RowCount(); i++ {
			doc.Placemarks = append(doc.Placemarks, placemarkFor(t, i))
		}
		if err := writeKMLDoc(doc, filepath.Join(outDir, t.Name+".kml")); err != nil {
			return eris.Wrapf(err, "writer: kml table %s", t.Name)
		}
	}
	return nil
}

func writeKMLPartition(p project.KMLPartition, outDir string) error {
	doc := kmlDocument{Xmlns: "http://www.opengis.net/kml/2.2"}
	for i := 0; i < p.Table.RowCount(); i++ {
		pm := kmlPlacemark{Name: p.Placename}
		if p.Table.Spatial && i < len(p.Table.Geoms) {
			pm.LineString = &kmlLineString{Coordinates: coordinatesOf(p.Table.Geoms[i])}
		}
		doc.Placemarks = append(doc.Placemarks, pm)
	}
	return writeKMLDoc(doc, filepath.Join(outDir, p.Filename))
}

func placemarkFor(t project.ProjectedTable, row int) kmlPlacemark {
	pm := kmlPlacemark{}
	if t.Table.Spatial && row < len(t.Table.Geoms) {
		g := t.Table.Geoms[row]
		if g.Type == geomutil.GeometryTypePoint {
			pm.Point = &kmlPoint{Coordinates: coordinatesOf(g)}
		} else {
			pm.LineString = &kmlLineString{Coordinates: coordinatesOf(g)}
		}
	}
	for _, c := range t.Columns {
		pm.ExtendedData = append(pm.ExtendedData, kmlSimpleData{Name: c, Value: toAttributeString(t.Table.Columns[c][row])})
	}
	return pm
}

func writeKMLDoc(doc kmlDocument, path string) error {
	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append([]byte(xml.Header), out...), 0o644)
}
