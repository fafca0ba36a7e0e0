package splitrecover

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/geobasenrn/nrn-go/internal/store"
)

// DeduplicateStrplaname collapses strplaname rows that are identical
// across every non-identifier column to a single survivor — the first
// occurrence (spec.md §4.4 "De-duplicate"). Every addrange/altnamlink
// column referencing a removed row's nid is rewritten to the survivor's
// nid.
func DeduplicateStrplaname(st *store.Store, log *zap.Logger) {
	t, ok := st.Tables[strplanameTable]
	if !ok {
		return
	}

	seen := make(map[string]string) // signature -> survivor nid
	removedToSurvivor := make(map[string]string)
	keep := make([]bool, t.RowCount())

	cols := t.ColumnNames()
	sort.Strings(cols) // deterministic signature order

	for i := 0; i < t.RowCount(); i++ {
		sig := rowSignature(t, i, cols)
		nid, _ := t.Get("nid", i)
		nidStr, _ := nid.(string)

		if survivor, dup := seen[sig]; dup {
			keep[i] = false
			if nidStr != "" {
				removedToSurvivor[nidStr] = survivor
			}
			continue
		}

		seen[sig] = nidStr
		keep[i] = true
	}

	removed := 0
	for _, k := range keep {
		if !k {
			removed++
		}
	}
	if removed == 0 {
		return
	}

	st.Set(strplanameTable, t.KeepRows(keep))

	rewriteReferences(st, addrangeTable, "l_offnanid", removedToSurvivor)
	rewriteReferences(st, addrangeTable, "r_offnanid", removedToSurvivor)
	rewriteReferences(st, altnamlinkTable, "strnamenid", removedToSurvivor)

	log.Info("splitrecover: de-duplicated strplaname rows", zap.Int("removed", removed))
}

// rowSignature builds a comparison key from every column except the
// identity columns (nid, credate, revdate), in a fixed column order.
func rowSignature(t *store.Table, row int, sortedCols []string) string {
	sig := ""
	for _, col := range sortedCols {
		if identityColumns[col] {
			continue
		}
		v, _ := t.Get(col, row)
		sig += fmt.Sprintf("%v\x1f", v)
	}
	return sig
}
