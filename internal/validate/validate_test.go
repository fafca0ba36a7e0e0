package validate

import (
	"testing"

	"github.com/geobasenrn/nrn-go/internal/geomutil"
	"github.com/geobasenrn/nrn-go/internal/logging"
	"github.com/geobasenrn/nrn-go/internal/schema"
	"github.com/geobasenrn/nrn-go/internal/store"
)

func findingCodes(findings []Finding) map[string]int {
	out := map[string]int{}
	for _, f := range findings {
		out[f.Code]++
	}
	return out
}

func TestValidateDateYearOutOfRange(t *testing.T) {
	sch := schema.New()
	st := store.NewStore()
	roadseg := st.TableSpatial(string(schema.TableRoadseg))
	roadseg.AddRow("u1", map[string]store.Value{"credate": "19500101"},
		geomutil.Geometry{Type: geomutil.GeometryTypeLineString, Points: []geomutil.Coord{{0, 0}, {1, 1}}})

	report := Validate(st, sch, 2026, logging.Nop())
	codes := findingCodes(report.Findings())
	if codes["DATE_YEAR"] == 0 {
		t.Errorf("expected a DATE_YEAR finding, got %v", codes)
	}
}

func TestValidateDateValidPassesClean(t *testing.T) {
	sch := schema.New()
	st := store.NewStore()
	roadseg := st.TableSpatial(string(schema.TableRoadseg))
	roadseg.AddRow("u1", map[string]store.Value{"credate": "20240229"},
		geomutil.Geometry{Type: geomutil.GeometryTypeLineString, Points: []geomutil.Coord{{0, 0}, {1, 1}}})

	report := Validate(st, sch, 2026, logging.Nop())
	for _, f := range report.Findings() {
		if f.Field == "credate" {
			t.Errorf("expected valid leap-year date to pass, got finding %+v", f)
		}
	}
}

func TestValidateSpeedOutOfRange(t *testing.T) {
	sch := schema.New()
	st := store.NewStore()
	roadseg := st.TableSpatial(string(schema.TableRoadseg))
	roadseg.AddRow("u1", map[string]store.Value{"speed": int64(123)},
		geomutil.Geometry{Type: geomutil.GeometryTypeLineString, Points: []geomutil.Coord{{0, 0}, {1, 1}}})

	report := Validate(st, sch, 2026, logging.Nop())
	codes := findingCodes(report.Findings())
	if codes["SPEED_RANGE"] == 0 {
		t.Errorf("expected a SPEED_RANGE finding for speed=123, got %v", codes)
	}
}

func TestValidateDuplicatePointGeometry(t *testing.T) {
	sch := schema.New()
	st := store.NewStore()
	junction := st.TableSpatial(string(schema.TableJunction))
	pt := geomutil.Geometry{Type: geomutil.GeometryTypePoint, Points: []geomutil.Coord{{1, 1}}}
	junction.AddRow("u1", map[string]store.Value{}, pt)
	junction.AddRow("u2", map[string]store.Value{}, pt)

	report := Validate(st, sch, 2026, logging.Nop())
	codes := findingCodes(report.Findings())
	if codes["DUPLICATE_POINT"] == 0 {
		t.Errorf("expected a DUPLICATE_POINT finding, got %v", codes)
	}
}

func TestValidateCollapsesAboveThreshold(t *testing.T) {
	sch := schema.New()
	st := store.NewStore()
	roadseg := st.TableSpatial(string(schema.TableRoadseg))
	for i := 0; i < 30; i++ {
		roadseg.AddRow("u", map[string]store.Value{"speed": int64(7)},
			geomutil.Geometry{Type: geomutil.GeometryTypeLineString, Points: []geomutil.Coord{{float64(i), 0}, {float64(i) + 1, 1}}})
	}

	report := Validate(st, sch, 2026, logging.Nop())
	codes := findingCodes(report.Findings())
	if codes["SPEED_RANGE"] != DefaultCollapseThreshold {
		t.Errorf("expected findings to collapse at threshold %d, got %d entries", DefaultCollapseThreshold, codes["SPEED_RANGE"])
	}
}

func TestValidateEmptyLayerWarns(t *testing.T) {
	sch := schema.New()
	st := store.NewStore()
	st.Set(string(schema.TableTollpoint), store.NewTable(string(schema.TableTollpoint), nil, true))

	report := Validate(st, sch, 2026, logging.Nop())
	found := false
	for _, f := range report.Findings() {
		if f.Code == "EMPTY_LAYER" && f.Severity == SeverityWarning {
			found = true
		}
	}
	if !found {
		t.Error("expected an EMPTY_LAYER warning for the empty tollpoint table")
	}
}
