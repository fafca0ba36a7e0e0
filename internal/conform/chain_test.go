package conform

import (
	"testing"

	"github.com/geobasenrn/nrn-go/internal/geomutil"
	"github.com/geobasenrn/nrn-go/internal/source"
	"github.com/geobasenrn/nrn-go/internal/store"
)

func TestConformTableDirectAndLiteral(t *testing.T) {
	layer := source.Layer{
		Name:    "roads",
		Spatial: true,
		Records: []source.Record{
			{
				Attributes: map[string]any{"RD_NAME": "Main St", "SPEED_LIM": "50"},
				Geometry:   geomutil.Geometry{Type: geomutil.GeometryTypeLineString, Points: []geomutil.Coord{{0, 0}, {1, 1}}},
			},
		},
	}

	rawMappings := map[string]any{
		"l_stname_c": "rd_name",
		"roadclass":  "Local / Street",
		"speed":      "speed_lim",
	}

	tc := NewTableConformer(newTestEngine())
	tbl, err := tc.ConformTable("roadseg", rawMappings, layer)
	if err != nil {
		t.Fatalf("ConformTable: %v", err)
	}

	if tbl.RowCount() != 1 {
		t.Fatalf("expected 1 row, got %d", tbl.RowCount())
	}
	if v, _ := tbl.Get("l_stname_c", 0); v != "Main St" {
		t.Errorf("l_stname_c = %v, want %q", v, "Main St")
	}
	if v, _ := tbl.Get("roadclass", 0); v != "Local / Street" {
		t.Errorf("roadclass = %v, want %q", v, "Local / Street")
	}
	if tbl.UUIDs[0] == "" {
		t.Errorf("expected a minted UUID for the row")
	}
}

func TestConformTablePackedPair(t *testing.T) {
	layer := source.Layer{
		Name: "strplaname_src",
		Records: []source.Record{
			{Attributes: map[string]any{"left_name": "Eastside", "right_name": "Westside"}},
		},
	}

	rawMappings := map[string]any{
		"placename": map[string]any{
			"fields":             []any{"left_name", "right_name"},
			"process_separately": false,
			"functions": []any{
				map[string]any{"function": "direct"},
			},
		},
	}

	tc := NewTableConformer(newTestEngine())
	tbl, err := tc.ConformTable("strplaname", rawMappings, layer)
	if err != nil {
		t.Fatalf("ConformTable: %v", err)
	}

	v, ok := tbl.Get("placename", 0)
	if !ok {
		t.Fatalf("expected placename column to be populated")
	}
	pair, ok := store.IsPair(v)
	if !ok {
		t.Fatalf("expected a Pair value, got %#v", v)
	}
	if pair[0] != "Eastside" || pair[1] != "Westside" {
		t.Errorf("unexpected pair contents: %#v", pair)
	}
}
