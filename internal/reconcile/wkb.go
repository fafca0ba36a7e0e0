// Package reconcile implements S6 (spec.md §4.6 "NID Reconciliation"):
// preserving stable external identifiers across vintages by matching
// current and previous geometries for exact equality.
package reconcile

import (
	"encoding/binary"
	"math"

	"github.com/geobasenrn/nrn-go/internal/geomutil"
)

// encodeGeometry produces a canonical byte-string key for a geometry:
// deliberately minimal — type byte, point count, then each coordinate as
// two big-endian float64s — not a full WKB implementation. It is the
// O(1) hash-map key priorIndex.byHash buckets previous-vintage rows
// under (spec.md §4.6 "Notes": "Implementers should index geometries by
// a canonical WKB byte-string for O(1) lookup"); the pipeline never
// writes or reads real WKB, so the documented subset is sufficient and
// avoids pulling in a geometry-encoding dependency no retrieved example
// ships.
func encodeGeometry(g geomutil.Geometry) string {
	buf := make([]byte, 0, 5+len(g.Points)*16)
	buf = append(buf, byte(g.Type))

	var countBuf [4]byte
	binary.BigEndian.PutUint32(countBuf[:], uint32(len(g.Points)))
	buf = append(buf, countBuf[:]...)

	for _, p := range g.Points {
		var coordBuf [16]byte
		binary.BigEndian.PutUint64(coordBuf[0:8], math.Float64bits(p[0]))
		binary.BigEndian.PutUint64(coordBuf[8:16], math.Float64bits(p[1]))
		buf = append(buf, coordBuf[:]...)
	}
	return string(buf)
}
