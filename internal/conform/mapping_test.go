package conform

import "testing"

func TestNormalizeLiteralVsDirect(t *testing.T) {
	sourceColumns := map[string]bool{"rd_name": true, "speed_lim": true}

	fm, err := Normalize("roadseg", "l_stname_c", "rd_name", sourceColumns)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if fm.Kind != KindDirect {
		t.Errorf("expected a column name to normalize to Direct, got %v", fm.Kind)
	}

	fm, err = Normalize("roadseg", "roadclass", "Local / Street", sourceColumns)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if fm.Kind != KindLiteral || fm.Literal != "Local / Street" {
		t.Errorf("expected a non-column string to normalize to Literal, got %#v", fm)
	}
}

func TestNormalizeUnmapped(t *testing.T) {
	fm, err := Normalize("roadseg", "exitnbr", nil, nil)
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if fm.Kind != KindUnmapped {
		t.Errorf("expected nil to normalize to Unmapped, got %v", fm.Kind)
	}
}

func TestNormalizeChain(t *testing.T) {
	raw := map[string]any{
		"fields": "oneway",
		"functions": []any{
			map[string]any{
				"function":    "conditional_values",
				"expression":  "{field} == 'Y'",
				"true_value":  "Same direction",
				"false_value": "Both directions",
			},
		},
	}

	fm, err := Normalize("roadseg", "trafficdir", raw, map[string]bool{"oneway": true})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if fm.Kind != KindChain {
		t.Fatalf("expected Chain, got %v", fm.Kind)
	}
	if len(fm.Fields) != 1 || fm.Fields[0] != "oneway" {
		t.Errorf("unexpected fields: %v", fm.Fields)
	}
	if len(fm.Functions) != 1 || fm.Functions[0].Name != "conditional_values" {
		t.Fatalf("unexpected functions: %#v", fm.Functions)
	}
	if fm.Functions[0].Kwargs["expression"] != "{field} == 'Y'" {
		t.Errorf("unexpected kwargs: %#v", fm.Functions[0].Kwargs)
	}
}

func TestNormalizeChainMissingFunctions(t *testing.T) {
	raw := map[string]any{"fields": "oneway"}
	_, err := Normalize("roadseg", "trafficdir", raw, map[string]bool{"oneway": true})
	if err == nil {
		t.Fatalf("expected an error for a chain mapping with no functions list")
	}
	if _, ok := err.(*ErrMalformedMapping); !ok {
		t.Errorf("expected ErrMalformedMapping, got %T", err)
	}
}

func TestNormalizeFieldList(t *testing.T) {
	fm, err := Normalize("strplaname", "placename", []any{"name_en", "name_fr"}, map[string]bool{"name_en": true, "name_fr": true})
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	if fm.Kind != KindDirect || len(fm.Fields) != 2 {
		t.Errorf("expected Direct with two fields, got %#v", fm)
	}
}
