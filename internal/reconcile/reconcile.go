package reconcile

import (
	"go.uber.org/zap"

	"github.com/geobasenrn/nrn-go/internal/geomutil"
	"github.com/geobasenrn/nrn-go/internal/schema"
	"github.com/geobasenrn/nrn-go/internal/store"
)

// Reconcile runs S6 (spec.md §4.6) over every spatial table that exists in
// both the current and previous store: current rows whose geometry exactly
// matches a previous row inherit that row's nid, rows without a match mint
// a fresh nid and count as ADDED, and previous rows nothing matched count
// as DELETED or CHANGED. Non-spatial tables and tables absent from the
// previous vintage are left untouched.
func Reconcile(current, prior *store.Store, log *zap.Logger) {
	for _, name := range schema.AllTables {
		reconcileTable(current.Tables[string(name)], prior.Tables[string(name)], string(name), log)
	}
}

func reconcileTable(cur, prev *store.Table, name string, log *zap.Logger) {
	if cur == nil || !cur.Spatial || prev == nil || prev.RowCount() == 0 {
		return
	}

	idx := buildPriorIndex(prev)
	matchedPrior := make(map[int]bool, prev.RowCount())
	added, reconciled := 0, 0

	for i := 0; i < cur.RowCount(); i++ {
		if i >= len(cur.Geoms) {
			continue
		}
		geom := cur.Geoms[i]
		match := findMatch(idx, geom, matchedPrior)
		if match != nil {
			cur.Set("nid", i, match.nid)
			matchedPrior[match.priorIndex] = true
			reconciled++
			continue
		}
		cur.Set("nid", i, freshNID())
		added++
	}

	deletedOrChanged := prev.RowCount() - len(matchedPrior)

	log.Info("reconcile: matched nids across vintages",
		zap.String("table", name),
		zap.Int("reconciled", reconciled),
		zap.Int("added", added),
		zap.Int("deleted_or_changed", deletedOrChanged),
	)
}

// findMatch first tries the O(1) exact-geometry-hash bucket, then falls
// back to the R-tree's bounding-box candidates confirmed by exact
// vertex-sequence equality, skipping any previous row already claimed by
// an earlier current row.
func findMatch(idx *priorIndex, geom geomutil.Geometry, claimed map[int]bool) *geomEntry {
	for _, entry := range idx.byHash[encodeGeometry(geom)] {
		if !claimed[entry.priorIndex] {
			return entry
		}
	}

	candidates := idx.tree.SearchIntersect(rectFor(boundsOf(geom)))
	for _, c := range candidates {
		entry := c.(*geomEntry)
		if claimed[entry.priorIndex] {
			continue
		}
		if entry.geom.Equal(geom) {
			return entry
		}
	}
	return nil
}
