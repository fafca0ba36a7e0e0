package project

import (
	"testing"

	"github.com/geobasenrn/nrn-go/internal/geomutil"
	"github.com/geobasenrn/nrn-go/internal/logging"
	"github.com/geobasenrn/nrn-go/internal/store"
)

func roadsegRow(t *store.Table, l, r string) {
	t.AddRow("u", map[string]store.Value{"l_placenam": l, "r_placenam": r},
		geomutil.Geometry{Type: geomutil.GeometryTypeLineString, Points: []geomutil.Coord{{0, 0}, {1, 1}}})
}

func TestSanitizeKMLName(t *testing.T) {
	got := SanitizeKMLName("Saint-Jean's Landing")
	if got != "Saint_Jean''s_Landing" {
		t.Errorf("got %q", got)
	}
}

func TestPartitionRoadsegByPlacenameSmall(t *testing.T) {
	roadseg := store.NewTable("roadseg", nil, true)
	roadsegRow(roadseg, "Springfield", "Shelbyville")
	roadsegRow(roadseg, "Springfield", "")

	partitions := PartitionRoadsegByPlacename(roadseg, DefaultKMLCap, logging.Nop())

	names := map[string]int{}
	for _, p := range partitions {
		names[p.Placename] = p.Table.RowCount()
	}
	if names["Springfield"] != 2 {
		t.Errorf("expected 2 rows for Springfield, got %d", names["Springfield"])
	}
	if names["Shelbyville"] != 1 {
		t.Errorf("expected 1 row for Shelbyville, got %d", names["Shelbyville"])
	}
}

func TestPartitionRoadsegByPlacenameChunksLarge(t *testing.T) {
	roadseg := store.NewTable("roadseg", nil, true)
	for i := 0; i < 5; i++ {
		roadsegRow(roadseg, "Metropolis", "")
	}

	partitions := PartitionRoadsegByPlacename(roadseg, 2, logging.Nop())

	if len(partitions) != 3 {
		t.Fatalf("expected 3 chunks of cap 2 over 5 rows, got %d", len(partitions))
	}
	total := 0
	for _, p := range partitions {
		total += p.Table.RowCount()
	}
	if total != 5 {
		t.Errorf("expected chunks to cover all 5 rows, got %d", total)
	}
}
