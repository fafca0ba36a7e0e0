package project

import (
	"testing"

	"github.com/geobasenrn/nrn-go/internal/geomutil"
	"github.com/geobasenrn/nrn-go/internal/logging"
	"github.com/geobasenrn/nrn-go/internal/schema"
	"github.com/geobasenrn/nrn-go/internal/store"
)

func geomutilLine() geomutil.Geometry {
	return geomutil.Geometry{Type: geomutil.GeometryTypeLineString, Points: []geomutil.Coord{{0, 0}, {1, 1}}}
}

func TestMaterializeTranslatesDomainLabel(t *testing.T) {
	sch := schema.New()
	st := store.NewStore()

	roadseg := st.TableSpatial(string(schema.TableRoadseg))
	roadseg.AddRow("u1", map[string]store.Value{"structtype": "Bridge"}, geomutilLine())

	fr := Materialize(st, sch, logging.Nop())

	got, _ := fr.Tables[string(schema.TableRoadseg)].Get("structtype", 0)
	if got != "Pont" {
		t.Errorf("expected French label 'Pont', got %v", got)
	}

	// Original store must be untouched.
	orig, _ := roadseg.Get("structtype", 0)
	if orig != "Bridge" {
		t.Errorf("expected English store unchanged, got %v", orig)
	}
}

func TestMaterializeFallsBackToFrenchDefault(t *testing.T) {
	sch := schema.New()
	st := store.NewStore()

	roadseg := st.TableSpatial(string(schema.TableRoadseg))
	roadseg.AddRow("u1", map[string]store.Value{"structtype": "None"}, geomutilLine())

	fr := Materialize(st, sch, logging.Nop())

	got, _ := fr.Tables[string(schema.TableRoadseg)].Get("structtype", 0)
	if got != "Aucune" {
		t.Errorf("expected French default 'Aucune', got %v", got)
	}
}
