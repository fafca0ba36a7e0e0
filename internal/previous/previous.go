// Package previous loads a prior-vintage GeoPackage bundle back into a
// store.Store, for S3's missing-layer recovery and S6's NID reconciliation
// (spec.md §4.6, §4.2: both stages "reading the prior vintage"). Only the
// nid and geometry columns matter to either consumer, so this loader reads
// every column generically rather than reversing the full per-format
// schema projection.
package previous

import (
	"database/sql"
	"encoding/binary"
	"math"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rotisserie/eris"

	"github.com/geobasenrn/nrn-go/internal/geomutil"
	"github.com/geobasenrn/nrn-go/internal/schema"
	"github.com/geobasenrn/nrn-go/internal/store"
)

// Load opens a previous-vintage GeoPackage at path and reads every
// canonical table present in it (a bundle may be missing layers entirely,
// which is exactly the recoverable condition spec.md §7(e) describes).
// Tables are expected under their canonical (internal) names, the
// convention this pipeline's own prior runs use internally ahead of S7's
// external-name projection.
func Load(path string) (*store.Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, eris.Wrapf(err, "previous: opening %s", path)
	}
	defer db.Close()

	st := store.NewStore()
	for _, name := range schema.AllTables {
		t, err := loadTable(db, name)
		if err != nil {
			// A single missing table is not fatal here: S3's
			// RecoverMissingLayers and S6's Reconcile both treat an
			// absent previous table as "nothing to recover/match against".
			continue
		}
		st.Set(string(name), t)
	}
	return st, nil
}

func loadTable(db *sql.DB, name schema.TableName) (*store.Table, error) {
	rows, err := db.Query("SELECT * FROM " + `"` + string(name) + `"`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	spatial := schema.SpatialTables[name]
	t := store.NewTable(string(name), nil, spatial)

	for rows.Next() {
		raw := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}

		values := make(map[string]store.Value, len(cols))
		var geom geomutil.Geometry
		for i, c := range cols {
			if c == "geom" {
				if b, ok := raw[i].([]byte); ok {
					geom, _ = decodeGPKGGeometry(b)
				}
				continue
			}
			values[c] = raw[i]
		}

		uuid, _ := values["nid"].(string)
		t.AddRow(uuid, values, geom)
	}

	return t, nil
}

// decodeGPKGGeometry reverses writer.encodeGPKGGeometry's minimal binary
// layout: "GP" magic, version, flags, 4-byte SRS id, then a little-endian
// WKB body covering point/linestring/polygon.
func decodeGPKGGeometry(b []byte) (geomutil.Geometry, error) {
	if len(b) < 8 || b[0] != 'G' || b[1] != 'P' {
		return geomutil.Geometry{}, eris.New("previous: not a recognized geometry blob")
	}
	body := b[8:]
	if len(body) < 5 {
		return geomutil.Geometry{}, eris.New("previous: truncated geometry body")
	}

	wkbType := binary.LittleEndian.Uint32(body[1:5])
	offset := 5

	var gtype geomutil.GeometryType
	switch wkbType {
	case 1:
		gtype = geomutil.GeometryTypePoint
	case 2:
		gtype = geomutil.GeometryTypeLineString
	case 3:
		gtype = geomutil.GeometryTypePolygon
		offset += 4 // ring count, always 1 for this writer
	default:
		return geomutil.Geometry{}, eris.New("previous: unsupported wkb type")
	}

	var count uint32
	if gtype == geomutil.GeometryTypePoint {
		count = 1
	} else {
		count = binary.LittleEndian.Uint32(body[offset : offset+4])
		offset += 4
	}

	points := make([]geomutil.Coord, 0, count)
	for i := uint32(0); i < count; i++ {
		x := math.Float64frombits(binary.LittleEndian.Uint64(body[offset : offset+8]))
		y := math.Float64frombits(binary.LittleEndian.Uint64(body[offset+8 : offset+16]))
		points = append(points, geomutil.Coord{x, y})
		offset += 16
	}

	return geomutil.Geometry{Type: gtype, Points: points}, nil
}
