package reconcile

import (
	"github.com/dhconnelly/rtreego"

	"github.com/geobasenrn/nrn-go/internal/geomutil"
	"github.com/geobasenrn/nrn-go/internal/store"
)

// minExtent is the smallest rectangle side rtreego will accept; point
// geometries have a zero-size bounding box, so every query/index rect is
// padded to at least this width in each dimension.
const minExtent = 1e-9

// geomEntry is one previous-vintage row indexed in the R-tree: its
// geometry (for the exact-equality confirmation step), its stable nid, and
// its row index in the previous table (to track which previous rows went
// unmatched).
type geomEntry struct {
	geom       geomutil.Geometry
	nid        string
	priorIndex int
}

// Bounds implements rtreego.Spatial, grounded on the teacher's
// pkg/s57/index.go ChartEntry.Bounds pattern (a Point plus side lengths).
func (e *geomEntry) Bounds() rtreego.Rect {
	return rectFor(boundsOf(e.geom))
}

type bbox struct{ minX, minY, maxX, maxY float64 }

// boundsOf computes the bounding box of a geometry's vertex sequence.
func boundsOf(g geomutil.Geometry) bbox {
	if len(g.Points) == 0 {
		return bbox{}
	}
	b := bbox{g.Points[0][0], g.Points[0][1], g.Points[0][0], g.Points[0][1]}
	for _, p := range g.Points[1:] {
		if p[0] < b.minX {
			b.minX = p[0]
		}
		if p[0] > b.maxX {
			b.maxX = p[0]
		}
		if p[1] < b.minY {
			b.minY = p[1]
		}
		if p[1] > b.maxY {
			b.maxY = p[1]
		}
	}
	return b
}

// rectFor converts a bbox into an rtreego.Rect padded to minExtent, since
// rtreego rejects zero-size dimensions.
func rectFor(b bbox) rtreego.Rect {
	width := b.maxX - b.minX
	if width < minExtent {
		width = minExtent
	}
	height := b.maxY - b.minY
	if height < minExtent {
		height = minExtent
	}
	point := rtreego.Point{b.minX, b.minY}
	rect, _ := rtreego.NewRect(point, []float64{width, height})
	return rect
}

// priorIndex bundles the two prefilter structures built over a previous
// vintage spatial table. byHash is the O(1) exact-match path spec.md
// §4.6's Notes recommend ("index geometries by a canonical WKB
// byte-string for O(1) lookup"): encodeGeometry is a bijection over a
// rounded vertex sequence, so two geometries sharing a key are guaranteed
// Equal and need no further check. tree is the bbox fallback for the
// degenerate case of a previous row this process can't hash identically
// (e.g. a point-order-equal geometry fed through a different decode
// path); it is only consulted on a hash miss.
type priorIndex struct {
	tree   *rtreego.Rtree
	byHash map[string][]*geomEntry
}

// buildPriorIndex indexes every row of a previous-vintage spatial table,
// both by exact geometry hash and by bounding box. Grounded on the
// teacher's pkg/s57/index.go BuildIndex (rtreego.NewTree + per-entry
// Insert).
func buildPriorIndex(prior *store.Table) *priorIndex {
	idx := &priorIndex{tree: rtreego.NewTree(2, 25, 50), byHash: make(map[string][]*geomEntry)}
	for i := 0; i < prior.RowCount(); i++ {
		if i >= len(prior.Geoms) {
			continue
		}
		nid, _ := prior.Get("nid", i)
		entry := &geomEntry{geom: prior.Geoms[i], nid: toString(nid), priorIndex: i}
		idx.tree.Insert(entry)
		key := encodeGeometry(entry.geom)
		idx.byHash[key] = append(idx.byHash[key], entry)
	}
	return idx
}

func toString(v store.Value) string {
	s, _ := v.(string)
	return s
}
