package project

import (
	"testing"

	"github.com/geobasenrn/nrn-go/internal/schema"
	"github.com/geobasenrn/nrn-go/internal/store"
)

func TestProjectTableDropsUnmappedColumns(t *testing.T) {
	sch := schema.New()
	roadseg := store.NewTable(string(schema.TableRoadseg), nil, true)
	roadseg.AddRow("u1", map[string]store.Value{"roadsegid": int64(1), "bogus_column": "x"}, geomutilLine())

	projected := ProjectTable(roadseg, schema.TableRoadseg, sch, schema.FormatGPKG, schema.LangEN, "AB", 1, 0)

	if _, ok := projected.Table.Columns["bogus_column"]; ok {
		t.Errorf("expected unregistered column to be dropped")
	}
	if _, ok := projected.Table.Columns["roadsegid"]; !ok {
		t.Errorf("expected registered column to survive projection")
	}
}

func TestNameTemplateGPKGFollowsNamingConvention(t *testing.T) {
	got := NameTemplate("roadseg", "AB", 1, 0, schema.FormatGPKG, schema.LangEN)
	want := "NRN_AB_1_0_GPKG"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNameTemplateFrenchUsesRRN(t *testing.T) {
	got := NameTemplate("roadseg", "AB", 1, 0, schema.FormatGPKG, schema.LangFR)
	if got[:3] != "RRN" {
		t.Errorf("expected French output name to start with RRN, got %q", got)
	}
}

func TestPreserveFirstLetterCase(t *testing.T) {
	if got := preserveFirstLetterCase("roadseg", "NRN_X"); got != "nRN_X" {
		t.Errorf("expected lowercase first letter carried over, got %q", got)
	}
}
