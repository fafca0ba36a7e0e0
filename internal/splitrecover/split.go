// Package splitrecover implements S3 (spec.md §4.4 "strplaname Split &
// De-duplicate"): materializing S2's packed left/right Pair values into
// separate strplaname rows, collapsing duplicate strplaname rows produced
// by that split, and recovering any canonical layer a source run left
// empty from the previous vintage.
package splitrecover

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/geobasenrn/nrn-go/internal/geomutil"
	"github.com/geobasenrn/nrn-go/internal/schema"
	"github.com/geobasenrn/nrn-go/internal/store"
)

const (
	strplanameTable = string(schema.TableStrplaname)
	addrangeTable   = string(schema.TableAddrange)
	altnamlinkTable = string(schema.TableAltnamlink)
)

// identityColumns are the columns that every split/dedup pass must keep out of its row-equality
// comparison: identifiers and the two date stamps change per row without
// the row being semantically different.
var identityColumns = map[string]bool{
	"nid": true, "credate": true, "revdate": true,
}

func freshNID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

func today() string {
	return time.Now().Format("20060102")
}

// SplitStrplaname materializes every strplaname row holding a store.Pair in
// any column into a left row (the Pair's index-0 element) and a right row
// (index-1), per column, simultaneously (spec.md Design Notes: "S3's split
// routine is simply the materialization of Pair across all columns
// simultaneously"). Rows with no Pair-valued column pass through
// unchanged. Returns the original-nid -> new-nid maps for the left and
// right halves, for rewriteReferences to apply to other tables.
func SplitStrplaname(st *store.Store, log *zap.Logger) (leftMap, rightMap map[string]string) {
	leftMap = make(map[string]string)
	rightMap = make(map[string]string)

	src, ok := st.Tables[strplanameTable]
	if !ok {
		return leftMap, rightMap
	}

	out := store.NewTable(strplanameTable, src.ColumnNames(), src.Spatial)
	split := 0

	for i := range src.UUIDs {
		pairCols := make(map[string]store.Pair)
		for _, col := range src.ColumnNames() {
			v, _ := src.Get(col, i)
			if p, ok := store.IsPair(v); ok {
				pairCols[col] = p
			}
		}

		if len(pairCols) == 0 {
			values := rowValues(src, i)
			out.AddRow(src.UUIDs[i], values, geomAt(src, i))
			continue
		}

		originalNID, _ := src.Get("nid", i)
		leftValues := rowValues(src, i)
		rightValues := rowValues(src, i)
		for col, p := range pairCols {
			leftValues[col] = p[0]
			rightValues[col] = p[1]
		}

		leftNID, rightNID := freshNID(), freshNID()
		leftValues["nid"] = leftNID
		rightValues["nid"] = rightNID

		out.AddRow(uuid.NewString(), leftValues, geomAt(src, i))
		out.AddRow(uuid.NewString(), rightValues, geomAt(src, i))

		if s, ok := originalNID.(string); ok {
			leftMap[s] = leftNID
			rightMap[s] = rightNID
		}
		split++
	}

	st.Set(strplanameTable, out)

	if split > 0 {
		log.Info("splitrecover: split packed strplaname rows", zap.Int("rows_split", split))
		duplicateAltnamlink(st, leftMap, rightMap, log)
		rewriteReferences(st, addrangeTable, "l_offnanid", leftMap)
		rewriteReferences(st, addrangeTable, "r_offnanid", rightMap)
	}

	return leftMap, rightMap
}

// duplicateAltnamlink duplicates every altnamlink row referencing a split
// strplaname nid: the original row's reference is rewritten to the left
// half, and a fresh second copy is appended referencing the right half
// with a fresh nid/uuid, today's credate, and a reset revdate (spec.md
// §4.4 "altnamlink is likewise duplicated").
func duplicateAltnamlink(st *store.Store, leftMap, rightMap map[string]string, log *zap.Logger) {
	t, ok := st.Tables[altnamlinkTable]
	if !ok {
		return
	}

	n := t.RowCount()
	duplicated := 0
	for i := 0; i < n; i++ {
		ref, _ := t.Get("strnamenid", i)
		s, ok := ref.(string)
		if !ok {
			continue
		}
		rightNID, ok := rightMap[s]
		if !ok {
			continue
		}

		t.Set("strnamenid", i, leftMap[s])

		values := rowValues(t, i)
		values["strnamenid"] = rightNID
		values["nid"] = freshNID()
		values["credate"] = today()
		values["revdate"] = "0" // reset to the date default
		t.AddRow(uuid.NewString(), values, geomAt(t, i))
		duplicated++
	}

	if duplicated > 0 {
		log.Info("splitrecover: duplicated altnamlink rows for split strplaname references", zap.Int("count", duplicated))
	}
}

// rewriteReferences replaces every value of table[column] found as a key
// in nidMap with its mapped value, in place.
func rewriteReferences(st *store.Store, table, column string, nidMap map[string]string) {
	if len(nidMap) == 0 {
		return
	}
	t, ok := st.Tables[table]
	if !ok {
		return
	}
	n := t.RowCount()
	for i := 0; i < n; i++ {
		v, ok := t.Get(column, i)
		if !ok {
			continue
		}
		s, ok := v.(string)
		if !ok {
			continue
		}
		if mapped, ok := nidMap[s]; ok {
			t.Set(column, i, mapped)
		}
	}
}

func rowValues(t *store.Table, i int) map[string]store.Value {
	values := make(map[string]store.Value, len(t.Columns))
	for col := range t.Columns {
		v, _ := t.Get(col, i)
		values[col] = v
	}
	return values
}

func geomAt(t *store.Table, i int) (g geomutil.Geometry) {
	if t.Spatial && i < len(t.Geoms) {
		return t.Geoms[i]
	}
	return g
}
