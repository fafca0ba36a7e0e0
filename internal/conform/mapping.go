// Package conform implements the declarative field-mapping engine (S2,
// spec.md §4.1): it turns a source table with arbitrary columns into a
// canonical target table whose columns match the schema registry, driven
// entirely by a YAML mapping document rather than hand-written per-source
// code.
package conform

import (
	"fmt"
	"strings"

	"github.com/geobasenrn/nrn-go/internal/counter"
)

// Kind identifies which of the four mapping document forms a field's
// mapping entry normalizes to (spec.md §4.1 "Mapping document forms").
type Kind int

const (
	KindUnmapped Kind = iota
	KindLiteral
	KindDirect // single source field, functions=[direct] — the common case
	KindChain
)

// FunctionCall is one step of a function chain: its name and keyword
// arguments, exactly as named in a YAML `- function: name\n  kwarg: v` entry.
type FunctionCall struct {
	Name   string
	Kwargs map[string]any
}

// FieldMapping is the normalized form of one target field's mapping
// document entry.
type FieldMapping struct {
	Kind              Kind
	Literal           any
	Fields            []string // source column names (lowercased)
	ProcessSeparately bool
	Functions         []FunctionCall
}

// Normalize converts one raw YAML mapping-document entry (as decoded by
// gopkg.in/yaml.v3 into Go `any` values: nil, string, []any, or
// map[string]any) into a FieldMapping. sourceColumns is the set of column
// names the source layer actually has — required to disambiguate a bare
// string between "raw literal value" and "direct source column reference"
// (spec.md §4.1's Direct vs Literal forms; the original source resolves
// this the same way: a string that doesn't name a source column is a
// literal).
func Normalize(table, field string, raw any, sourceColumns map[string]bool) (FieldMapping, error) {
	switch v := raw.(type) {
	case nil:
		return FieldMapping{Kind: KindUnmapped}, nil

	case string:
		if sourceColumns[strings.ToLower(v)] {
			return FieldMapping{
				Kind:      KindDirect,
				Fields:    []string{strings.ToLower(v)},
				Functions: []FunctionCall{{Name: "direct"}},
			}, nil
		}
		return FieldMapping{Kind: KindLiteral, Literal: v}, nil

	case int, int64, float64, bool:
		return FieldMapping{Kind: KindLiteral, Literal: v}, nil

	case []any:
		fields := make([]string, 0, len(v))
		for _, f := range v {
			s, ok := f.(string)
			if !ok {
				return FieldMapping{}, &ErrMalformedMapping{table, field, "field list entries must be strings"}
			}
			fields = append(fields, strings.ToLower(s))
		}
		return FieldMapping{
			Kind:      KindDirect,
			Fields:    fields,
			Functions: []FunctionCall{{Name: "direct"}},
		}, nil

	case map[string]any:
		return normalizeChain(table, field, v)

	default:
		return FieldMapping{}, &ErrMalformedMapping{table, field, fmt.Sprintf("unsupported mapping value type %T", raw)}
	}
}

func normalizeChain(table, field string, m map[string]any) (FieldMapping, error) {
	var fm FieldMapping
	fm.Kind = KindChain

	switch fv := m["fields"].(type) {
	case string:
		fm.Fields = []string{strings.ToLower(fv)}
	case []any:
		for _, f := range fv {
			s, ok := f.(string)
			if !ok {
				return FieldMapping{}, &ErrMalformedMapping{table, field, "fields list entries must be strings"}
			}
			fm.Fields = append(fm.Fields, strings.ToLower(s))
		}
	case nil:
		// Some chain entries (e.g. gen_uuid, incrementor) need no source field.
	default:
		return FieldMapping{}, &ErrMalformedMapping{table, field, "fields must be a string or list of strings"}
	}

	if sep, ok := m["process_separately"].(bool); ok {
		fm.ProcessSeparately = sep
	}

	rawFuncs, ok := m["functions"].([]any)
	if !ok {
		return FieldMapping{}, &ErrMalformedMapping{table, field, "chain mapping requires a \"functions\" list"}
	}
	for _, rf := range rawFuncs {
		fmap, ok := rf.(map[string]any)
		if !ok {
			return FieldMapping{}, &ErrMalformedMapping{table, field, "each function entry must be a mapping"}
		}
		name, ok := fmap["function"].(string)
		if !ok {
			return FieldMapping{}, &ErrMalformedMapping{table, field, "function entry missing \"function\" name"}
		}
		kwargs := make(map[string]any, len(fmap)-1)
		for k, v := range fmap {
			if k != "function" {
				kwargs[k] = v
			}
		}
		fm.Functions = append(fm.Functions, FunctionCall{Name: name, Kwargs: kwargs})
	}

	return fm, nil
}

// Engine runs normalized FieldMappings against a source table's rows to
// populate a target table's columns (spec.md §4.1 "Contract").
type Engine struct {
	Counters *counter.Registry
	Schema   Schema
}

// Schema is the subset of internal/schema the conform engine needs:
// resolving domains by name for extract_domain/apply_domain/regex_find.
type Schema interface {
	DomainLabels(domainName string, lang string) []string
	ApplyDomain(domainName string, raw string) (any, bool)
}

// NewEngine builds a conform engine sharing one counter registry across
// every mapping applied in a pipeline run (spec.md §5: the counter
// registry is process-wide).
func NewEngine(counters *counter.Registry, schema Schema) *Engine {
	return &Engine{Counters: counters, Schema: schema}
}
