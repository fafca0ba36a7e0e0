package clean

import (
	"testing"

	"github.com/geobasenrn/nrn-go/internal/geomutil"
	"github.com/geobasenrn/nrn-go/internal/logging"
	"github.com/geobasenrn/nrn-go/internal/schema"
	"github.com/geobasenrn/nrn-go/internal/store"
)

func TestLowercaseIDs(t *testing.T) {
	st := store.NewStore()
	tbl := st.Table(string(schema.TableAddrange))
	tbl.AddRow("U1", map[string]store.Value{"l_offnanid": "ABC123", "uuid": "KEEP-ME"}, geomutil.Geometry{})

	lowercaseIDs(st)

	v, _ := tbl.Get("l_offnanid", 0)
	if v != "abc123" {
		t.Errorf("expected lowercased id, got %v", v)
	}
}

func TestNormalizeWhitespace(t *testing.T) {
	st := store.NewStore()
	tbl := st.Table(string(schema.TableStrplaname))
	tbl.AddRow("u1", map[string]store.Value{"namebody": "  Main   Street  "}, geomutil.Geometry{})

	normalizeWhitespace(st)

	v, _ := tbl.Get("namebody", 0)
	if v != "Main Street" {
		t.Errorf("expected collapsed whitespace, got %q", v)
	}
}

func TestTitleCaseRouteNames(t *testing.T) {
	st := store.NewStore()
	tbl := st.Table(string(schema.TableRoadseg))
	tbl.AddRow("u1", map[string]store.Value{"rtename1en": "TRANS CANADA HIGHWAY"}, geomutil.Geometry{})

	titleCaseRouteNames(st)

	v, _ := tbl.Get("rtename1en", 0)
	if v != "Trans Canada Highway" {
		t.Errorf("expected title-cased route name, got %q", v)
	}
}

func TestRenumberRoadsegID(t *testing.T) {
	st := store.NewStore()
	tbl := st.TableSpatial(string(schema.TableRoadseg))
	tbl.AddRow("u1", map[string]store.Value{"roadsegid": int64(99)}, geomutil.Geometry{})
	tbl.AddRow("u2", map[string]store.Value{"roadsegid": int64(5)}, geomutil.Geometry{})

	renumberRoadsegID(st, logging.Nop())

	v0, _ := tbl.Get("roadsegid", 0)
	v1, _ := tbl.Get("roadsegid", 1)
	if v0 != int64(1) || v1 != int64(2) {
		t.Errorf("expected sequential renumbering 1, 2, got %v, %v", v0, v1)
	}
}

func TestApplyDomainsUnknownValueUsesDefault(t *testing.T) {
	sch := schema.New()
	st := store.NewStore()
	tbl := st.Table(string(schema.TableRoadseg))
	tbl.AddRow("u1", map[string]store.Value{"roadclass": "Local / Street"}, geomutil.Geometry{})
	tbl.AddRow("u2", map[string]store.Value{"roadclass": "Not A Real Class"}, geomutil.Geometry{})

	ApplyDomains(st, sch, logging.Nop())

	v0, _ := tbl.Get("roadclass", 0)
	if v0 != "Local / Street" {
		t.Errorf("expected known domain label preserved, got %v", v0)
	}

	v1, _ := tbl.Get("roadclass", 1)
	def, _ := sch.Defaults.Default(schema.TableRoadseg, "roadclass", schema.LangEN)
	if v1 != def {
		t.Errorf("expected unknown value replaced with default %v, got %v", def, v1)
	}
}
