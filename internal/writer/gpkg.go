package writer

import (
	"database/sql"
	"encoding/binary"
	"math"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rotisserie/eris"

	"github.com/geobasenrn/nrn-go/internal/geomutil"
	"github.com/geobasenrn/nrn-go/internal/project"
)

// GPKGWriter emits one GeoPackage (SQLite database) per call, one table
// per projected layer, grounded on the mattn/go-sqlite3 driver (already an
// indirect dependency of the retrieved elixxirio-registration example,
// promoted here to a direct one: GeoPackage is itself a SQLite container,
// so a SQLite driver is the one dependency in the pack that can write it).
type GPKGWriter struct{}

func (w *GPKGWriter) Write(tables []project.ProjectedTable, outDir string) error {
	if len(tables) == 0 {
		return nil
	}
	path := filepath.Join(outDir, tables[0].Name+".gpkg")

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return eris.Wrapf(err, "writer: opening %s", path)
	}
	defer db.Close()

	for _, t := range tables {
		if err := writeGPKGTable(db, t); err != nil {
			return eris.Wrapf(err, "writer: gpkg table %s", t.Name)
		}
	}
	return nil
}

func writeGPKGTable(db *sql.DB, t project.ProjectedTable) error {
	createStmt := "CREATE TABLE " + quoteIdent(t.Name) + " (" + columnDefs(t) + ")"
	if _, err := db.Exec(createStmt); err != nil {
		return err
	}

	cols := append([]string{}, t.Columns...)
	if t.Table.Spatial {
		cols = append(cols, "geom")
	}

	placeholders := make([]string, len(cols))
	for i := range placeholders {
		placeholders[i] = "?"
	}
	insertStmt := "INSERT INTO " + quoteIdent(t.Name) + " (" + joinIdents(cols) + ") VALUES (" + joinStrings(placeholders) + ")"

	stmt, err := db.Prepare(insertStmt)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i := 0; i < t.Table.RowCount(); i++ {
		args := make([]any, 0, len(cols))
		for _, c := range t.Columns {
			args = append(args, t.Table.Columns[c][i])
		}
		if t.Table.Spatial {
			args = append(args, encodeGPKGGeometry(t.Table.Geoms[i]))
		}
		if _, err := stmt.Exec(args...); err != nil {
			return err
		}
	}
	return nil
}

func columnDefs(t project.ProjectedTable) string {
	defs := make([]string, 0, len(t.Columns)+1)
	for _, c := range t.Columns {
		defs = append(defs, quoteIdent(c)+" TEXT")
	}
	if t.Table.Spatial {
		defs = append(defs, "geom BLOB")
	}
	return joinStrings(defs)
}

func quoteIdent(s string) string { return "\"" + s + "\"" }

func joinIdents(cols []string) string {
	quoted := make([]string, len(cols))
	for i, c := range cols {
		quoted[i] = quoteIdent(c)
	}
	return joinStrings(quoted)
}

func joinStrings(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}

// encodeGPKGGeometry writes a minimal GeoPackage geometry blob: the "GP"
// magic, version, flags, SRS id, and a little-endian WKB body covering the
// point/linestring/polygon primitives this pipeline emits (spec.md §1
// Non-goals: "only point/line primitives" plus the polygon boundary
// input). Z/M dimensions, curves, and envelopes are out of scope.
func encodeGPKGGeometry(g geomutil.Geometry) []byte {
	buf := []byte{'G', 'P', 0, 0x01} // empty-envelope flag
	srsID := make([]byte, 4)
	binary.LittleEndian.PutUint32(srsID, uint32(4617)) // EPSG:4617, spec.md §6
	buf = append(buf, srsID...)
	buf = append(buf, wkb(g)...)
	return buf
}

func wkb(g geomutil.Geometry) []byte {
	buf := []byte{1} // little-endian byte order marker

	var wkbType uint32
	switch g.Type {
	case geomutil.GeometryTypePoint:
		wkbType = 1
	case geomutil.GeometryTypeLineString:
		wkbType = 2
	case geomutil.GeometryTypePolygon:
		wkbType = 3
	}
	typeBuf := make([]byte, 4)
	binary.LittleEndian.PutUint32(typeBuf, wkbType)
	buf = append(buf, typeBuf...)

	if g.Type == geomutil.GeometryTypePolygon {
		ringCount := make([]byte, 4)
		binary.LittleEndian.PutUint32(ringCount, 1)
		buf = append(buf, ringCount...)
	}
	if g.Type != geomutil.GeometryTypePoint {
		countBuf := make([]byte, 4)
		binary.LittleEndian.PutUint32(countBuf, uint32(len(g.Points)))
		buf = append(buf, countBuf...)
	}
	for _, p := range g.Points {
		coordBuf := make([]byte, 16)
		binary.LittleEndian.PutUint64(coordBuf[0:8], math.Float64bits(p[0]))
		binary.LittleEndian.PutUint64(coordBuf[8:16], math.Float64bits(p[1]))
		buf = append(buf, coordBuf...)
	}
	return buf
}
