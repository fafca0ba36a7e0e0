package splitrecover

import (
	"testing"

	"github.com/geobasenrn/nrn-go/internal/geomutil"
	"github.com/geobasenrn/nrn-go/internal/logging"
	"github.com/geobasenrn/nrn-go/internal/store"
)

func TestSplitStrplanamePassesThroughScalarRows(t *testing.T) {
	st := store.NewStore()
	t1 := st.Table(strplanameTable)
	t1.AddRow("u1", map[string]store.Value{"nid": "n1", "namebody": "Main"}, geomutil.Geometry{})

	leftMap, rightMap := SplitStrplaname(st, logging.Nop())
	if len(leftMap) != 0 || len(rightMap) != 0 {
		t.Fatalf("expected no splits for a scalar-only row")
	}
	if st.Tables[strplanameTable].RowCount() != 1 {
		t.Errorf("expected the row to pass through unchanged")
	}
}

func TestSplitStrplanameMaterializesPair(t *testing.T) {
	st := store.NewStore()
	t1 := st.Table(strplanameTable)
	t1.AddRow("u1", map[string]store.Value{
		"nid":      "original-nid",
		"namebody": store.Pair{"Main", "First"},
		"province": "Ontario",
	}, geomutil.Geometry{})

	addr := st.Table(addrangeTable)
	addr.AddRow("u2", map[string]store.Value{"r_offnanid": "original-nid", "l_offnanid": "original-nid"}, geomutil.Geometry{})

	leftMap, rightMap := SplitStrplaname(st, logging.Nop())
	if len(leftMap) != 1 || len(rightMap) != 1 {
		t.Fatalf("expected exactly one split, got left=%d right=%d", len(leftMap), len(rightMap))
	}

	out := st.Tables[strplanameTable]
	if out.RowCount() != 2 {
		t.Fatalf("expected 2 rows after split, got %d", out.RowCount())
	}

	left, _ := out.Get("namebody", 0)
	right, _ := out.Get("namebody", 1)
	if left != "Main" || right != "First" {
		t.Errorf("unexpected split values: left=%v right=%v", left, right)
	}

	rOffna, _ := addr.Get("r_offnanid", 0)
	lOffna, _ := addr.Get("l_offnanid", 0)
	if rOffna != rightMap["original-nid"] {
		t.Errorf("expected r_offnanid rewritten to the right-half nid")
	}
	if lOffna != leftMap["original-nid"] {
		t.Errorf("expected l_offnanid rewritten to the left-half nid")
	}
}

func TestSplitStrplanameDuplicatesAltnamlinkToLeftAndRight(t *testing.T) {
	st := store.NewStore()
	t1 := st.Table(strplanameTable)
	t1.AddRow("u1", map[string]store.Value{
		"nid":      "original-nid",
		"namebody": store.Pair{"Main", "First"},
	}, geomutil.Geometry{})

	alt := st.Table(altnamlinkTable)
	alt.AddRow("u2", map[string]store.Value{"nid": "alt-nid", "strnamenid": "original-nid"}, geomutil.Geometry{})

	leftMap, rightMap := SplitStrplaname(st, logging.Nop())

	if alt.RowCount() != 2 {
		t.Fatalf("expected altnamlink duplicated to 2 rows, got %d", alt.RowCount())
	}

	firstRef, _ := alt.Get("strnamenid", 0)
	secondRef, _ := alt.Get("strnamenid", 1)
	if firstRef != leftMap["original-nid"] {
		t.Errorf("expected original altnamlink row rewritten to the left-half nid, got %v", firstRef)
	}
	if secondRef != rightMap["original-nid"] {
		t.Errorf("expected duplicated altnamlink row to reference the right-half nid, got %v", secondRef)
	}
}

func TestDeduplicateStrplaname(t *testing.T) {
	st := store.NewStore()
	t1 := st.Table(strplanameTable)
	t1.AddRow("u1", map[string]store.Value{"nid": "n1", "namebody": "Main", "province": "Ontario"}, geomutil.Geometry{})
	t1.AddRow("u2", map[string]store.Value{"nid": "n2", "namebody": "Main", "province": "Ontario"}, geomutil.Geometry{})

	addr := st.Table(addrangeTable)
	addr.AddRow("u3", map[string]store.Value{"r_offnanid": "n2"}, geomutil.Geometry{})

	DeduplicateStrplaname(st, logging.Nop())

	if st.Tables[strplanameTable].RowCount() != 1 {
		t.Fatalf("expected duplicate row collapsed, got %d rows", st.Tables[strplanameTable].RowCount())
	}
	rOffna, _ := addr.Get("r_offnanid", 0)
	if rOffna != "n1" {
		t.Errorf("expected r_offnanid rewritten to survivor nid n1, got %v", rOffna)
	}
}
