package conform

import (
	"testing"

	"github.com/geobasenrn/nrn-go/internal/counter"
)

type fakeSchema struct {
	labels map[string]map[string][]string
	codes  map[string]map[string]any
}

func (f *fakeSchema) DomainLabels(domain, lang string) []string {
	return f.labels[domain][lang]
}

func (f *fakeSchema) ApplyDomain(domain, raw string) (any, bool) {
	v, ok := f.codes[domain][raw]
	return v, ok
}

func newTestEngine() *Engine {
	sch := &fakeSchema{
		labels: map[string]map[string][]string{
			"structtype": {
				"en": {"Bridge", "Tunnel", "None"},
				"fr": {"Pont", "Tunnel", "Aucune"},
			},
		},
		codes: map[string]any{},
	}
	sch.codes = map[string]map[string]any{
		"structtype": {"Bridge": int64(2), "Tunnel": int64(7), "None": int64(1)},
	}
	return NewEngine(counter.NewRegistry(), sch)
}

func TestApplyDirect(t *testing.T) {
	fm := FieldMapping{Kind: KindDirect, Fields: []string{"rd_name"}}
	row := Row{"rd_name": "Main Street"}
	e := newTestEngine()

	v, err := e.Apply("roadseg", "l_stname_c", fm, row)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if v != "Main Street" {
		t.Errorf("got %v, want %q", v, "Main Street")
	}
}

func TestApplyLiteral(t *testing.T) {
	fm := FieldMapping{Kind: KindLiteral, Literal: "Unknown"}
	e := newTestEngine()

	v, err := e.Apply("roadseg", "roadclass", fm, Row{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if v != "Unknown" {
		t.Errorf("got %v, want %q", v, "Unknown")
	}
}

func TestApplyChainIncrementor(t *testing.T) {
	fm := FieldMapping{
		Kind:      KindChain,
		Functions: []FunctionCall{{Name: "incrementor", Kwargs: map[string]any{"name": "roadsegid", "start": int64(1), "step": int64(1)}}},
	}
	e := newTestEngine()

	first, err := e.Apply("roadseg", "roadsegid", fm, Row{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	second, err := e.Apply("roadseg", "roadsegid", fm, Row{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if first != int64(1) || second != int64(2) {
		t.Errorf("got %v, %v, want 1, 2", first, second)
	}
}

func TestApplyChainConditionalValues(t *testing.T) {
	fm := FieldMapping{
		Kind:   KindChain,
		Fields: []string{"oneway"},
		Functions: []FunctionCall{
			{Name: "conditional_values", Kwargs: map[string]any{
				"expression": "{field} == 'Y'",
				"true_value": "Same direction",
				"false_value": "Both directions",
			}},
		},
	}
	e := newTestEngine()

	v, err := e.Apply("roadseg", "trafficdir", fm, Row{"oneway": "Y"})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if v != "Same direction" {
		t.Errorf("got %v, want %q", v, "Same direction")
	}

	v, err = e.Apply("roadseg", "trafficdir", fm, Row{"oneway": "N"})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if v != "Both directions" {
		t.Errorf("got %v, want %q", v, "Both directions")
	}
}

func TestApplyChainExtractDomain(t *testing.T) {
	fm := FieldMapping{
		Kind:   KindChain,
		Fields: []string{"description"},
		Functions: []FunctionCall{
			{Name: "extract_domain", Kwargs: map[string]any{"domain": "structtype", "default": int64(1)}},
		},
	}
	e := newTestEngine()

	v, err := e.Apply("roadseg", "structtype", fm, Row{"description": "steel bridge over river"})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if v != int64(2) {
		t.Errorf("got %v, want 2 (Bridge)", v)
	}

	v, err = e.Apply("roadseg", "structtype", fm, Row{"description": "flat road"})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if v != int64(1) {
		t.Errorf("got %v, want default 1", v)
	}
}

func TestApplyChainConcat(t *testing.T) {
	fm := FieldMapping{
		Kind:      KindChain,
		Fields:    []string{"prefix", "name", "suffix"},
		Functions: []FunctionCall{{Name: "concat", Kwargs: map[string]any{"separator": " "}}},
	}
	e := newTestEngine()

	v, err := e.Apply("strplaname", "placename", fm, Row{"prefix": "", "name": "Main", "suffix": "Street"})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if v != "Main Street" {
		t.Errorf("got %q, want %q", v, "Main Street")
	}
}

func TestApplyChainRegexFind(t *testing.T) {
	fm := FieldMapping{
		Kind:   KindChain,
		Fields: []string{"raw"},
		Functions: []FunctionCall{
			{Name: "regex_find", Kwargs: map[string]any{"pattern": `(\d+)`, "group": int64(1)}},
		},
	}
	e := newTestEngine()

	v, err := e.Apply("roadseg", "exitnbr", fm, Row{"raw": "Exit 42B"})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if v != "42" {
		t.Errorf("got %q, want %q", v, "42")
	}
}

func TestApplyChainRegexFindStripResultDeStacksRemainder(t *testing.T) {
	fm := FieldMapping{
		Kind:   KindChain,
		Fields: []string{"raw"},
		Functions: []FunctionCall{
			{Name: "regex_find", Kwargs: map[string]any{"pattern": `\d+`, "strip_result": true}},
		},
	}
	e := newTestEngine()

	v, err := e.Apply("addrange", "placename", fm, Row{"raw": "123-MAIN ST"})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if v != "MAIN ST" {
		t.Errorf("got %q, want %q", v, "MAIN ST")
	}
}

func TestApplyChainRegexFindMatchIndexSelectsOccurrence(t *testing.T) {
	fm := FieldMapping{
		Kind:   KindChain,
		Fields: []string{"raw"},
		Functions: []FunctionCall{
			{Name: "regex_find", Kwargs: map[string]any{"pattern": `\d+`, "match_index": int64(1)}},
		},
	}
	e := newTestEngine()

	v, err := e.Apply("roadseg", "exitnbr", fm, Row{"raw": "Exit 7 of 42"})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if v != "42" {
		t.Errorf("got %q, want %q", v, "42")
	}
}

func TestApplyChainRegexSubAppliesDomain(t *testing.T) {
	fm := FieldMapping{
		Kind:   KindChain,
		Fields: []string{"raw"},
		Functions: []FunctionCall{
			{Name: "regex_sub", Kwargs: map[string]any{"pattern_from": `^BR$`, "pattern_to": "Bridge", "domain": "structtype"}},
		},
	}
	e := newTestEngine()

	v, err := e.Apply("roadseg", "structtype", fm, Row{"raw": "BR"})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if v != int64(2) {
		t.Errorf("got %v, want %v", v, int64(2))
	}
}

func TestUnknownFunction(t *testing.T) {
	fm := FieldMapping{
		Kind:      KindChain,
		Fields:    []string{"x"},
		Functions: []FunctionCall{{Name: "does_not_exist"}},
	}
	e := newTestEngine()

	_, err := e.Apply("roadseg", "speed", fm, Row{"x": "1"})
	if err == nil {
		t.Fatalf("expected an error for an unknown function")
	}
	if _, ok := err.(*ErrUnknownFunction); !ok {
		t.Errorf("expected ErrUnknownFunction, got %T", err)
	}
}
