package ingest

import (
	"testing"

	"github.com/geobasenrn/nrn-go/internal/conform"
	"github.com/geobasenrn/nrn-go/internal/config"
	"github.com/geobasenrn/nrn-go/internal/counter"
	"github.com/geobasenrn/nrn-go/internal/geomutil"
	"github.com/geobasenrn/nrn-go/internal/logging"
	"github.com/geobasenrn/nrn-go/internal/schema"
	"github.com/geobasenrn/nrn-go/internal/store"
)

func TestReaderForUnsupportedDriver(t *testing.T) {
	_, err := ReaderFor("fancy-new-format", geomutil.TargetCRS)
	if err == nil {
		t.Fatalf("expected an error for an unsupported driver")
	}
}

func TestIngestReadFailureLeavesExistingTableUntouched(t *testing.T) {
	st := store.NewStore()
	existing := st.TableSpatial(string(schema.TableRoadseg))
	existing.AddRow("uuid-0", map[string]store.Value{"roadclass": "Local / Street"},
		geomutil.Geometry{Type: geomutil.GeometryTypeLineString, Points: []geomutil.Coord{{0, 0}, {1, 1}}})

	sch := schema.New()
	eng := conform.NewEngine(counter.NewRegistry(), sch)

	cfg := &config.SourceConfig{
		Data: config.DataConfig{
			Filename: "testdata/does-not-exist.geojson",
			Driver:   "geojson",
			CRS:      4617,
			Spatial:  true,
		},
		Conform: map[string]map[string]any{
			"roadseg": {"roadclass": "Local / Street"},
		},
	}

	// Reading a nonexistent file should fail cleanly rather than panic.
	if err := Ingest(st, cfg, eng, logging.Nop()); err == nil {
		t.Fatalf("expected an error reading a nonexistent source file")
	}

	if existing.RowCount() != 1 {
		t.Errorf("expected the pre-existing row to be untouched, got %d rows", existing.RowCount())
	}
}
