package conform

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Row is one source record's attributes, keyed by lowercased column name,
// as produced by internal/source readers.
type Row map[string]any

// Apply runs a normalized FieldMapping against one source row and returns
// the target field's value (spec.md §4.1 "Contract": "given one source row
// and a mapping document, produce the conformed value for one target
// field").
func (e *Engine) Apply(table, field string, fm FieldMapping, row Row) (any, error) {
	switch fm.Kind {
	case KindUnmapped:
		return nil, nil

	case KindLiteral:
		return fm.Literal, nil

	case KindDirect:
		if len(fm.Fields) == 0 {
			return nil, nil
		}
		return row[fm.Fields[0]], nil

	case KindChain:
		return e.runChain(table, field, fm, row)

	default:
		return nil, &ErrMalformedMapping{table, field, "unrecognized mapping kind"}
	}
}

// runChain threads a value through fm.Functions in order. The first
// function typically derives its input from fm.Fields against row; every
// later function receives the prior function's output.
func (e *Engine) runChain(table, field string, fm FieldMapping, row Row) (any, error) {
	var value any
	for i, call := range fm.Functions {
		var err error
		value, err = e.dispatch(table, field, call, fm.Fields, row, value, i == 0)
		if err != nil {
			return nil, err
		}
	}
	return value, nil
}

// dispatch implements the closed function library (spec.md §4.1 "Function
// library (closed set the engine must support)"). first is true for the
// chain's leading function, which reads from the mapping's declared source
// fields rather than the previous stage's output.
func (e *Engine) dispatch(table, field string, call FunctionCall, fields []string, row Row, value any, first bool) (any, error) {
	switch call.Name {
	case "direct":
		if ct, _ := call.Kwargs["cast_type"].(string); ct != "" && ct != "str" && ct != "int" && ct != "float" {
			return nil, &ErrInvalidCast{table, field, ct}
		}
		return e.fnDirect(fields, row, value, first, call.Kwargs)

	case "gen_uuid":
		return uuid.NewString(), nil

	case "incrementor":
		return e.fnIncrementor(call.Kwargs)

	case "regex_find":
		return e.fnRegexFind(table, field, fields, row, value, first, call.Kwargs)

	case "regex_sub":
		return e.fnRegexSub(table, field, fields, row, value, first, call.Kwargs)

	case "conditional_values":
		return e.fnConditionalValues(table, field, fields, row, value, first, call.Kwargs)

	case "concat":
		return e.fnConcat(fields, row, call.Kwargs)

	case "extract_domain":
		return e.fnExtractDomain(fields, row, value, first, call.Kwargs)

	case "split":
		return e.fnSplit(fields, row, value, first, call.Kwargs)

	case "apply_domain":
		return e.fnApplyDomain(fields, row, value, first, call.Kwargs)

	case "copy_attribute_functions":
		return e.fnCopyAttributeFunctions(row, call.Kwargs)

	default:
		return nil, &ErrUnknownFunction{table, field, call.Name}
	}
}

// sourceValue returns the input a chain stage should operate on: the
// previous stage's output, or — for the chain's first call — the value of
// fields[0] in row.
func sourceValue(fields []string, row Row, value any, first bool) any {
	if first {
		if len(fields) == 0 {
			return nil
		}
		return row[fields[0]]
	}
	return value
}

func (e *Engine) fnDirect(fields []string, row Row, value any, first bool, kwargs map[string]any) (any, error) {
	raw := sourceValue(fields, row, value, first)
	castType, _ := kwargs["cast_type"].(string)
	if castType == "" {
		return raw, nil
	}
	return castValue(raw, castType)
}

func castValue(raw any, castType string) (any, error) {
	s := toStringValue(raw)
	switch castType {
	case "str":
		return s, nil
	case "int":
		f, ok := toFloat(raw)
		if !ok {
			return nil, fmt.Errorf("conform: cannot cast %q to int", s)
		}
		return int64(f), nil
	case "float":
		f, ok := toFloat(raw)
		if !ok {
			return nil, fmt.Errorf("conform: cannot cast %q to float", s)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("conform: unknown cast_type %q", castType)
	}
}

func (e *Engine) fnIncrementor(kwargs map[string]any) (any, error) {
	name, _ := kwargs["name"].(string)
	if name == "" {
		return nil, fmt.Errorf("conform: incrementor requires \"name\"")
	}
	start := kwargInt(kwargs, "start", 1)
	step := kwargInt(kwargs, "step", 1)
	return e.Counters.Next(name, start, step), nil
}

func kwargInt(kwargs map[string]any, key string, def int64) int64 {
	v, ok := kwargs[key]
	if !ok {
		return def
	}
	f, ok := toFloat(v)
	if !ok {
		return def
	}
	return int64(f)
}

// fnRegexFind implements spec.md §4.1's `regex_find(pattern, match_index,
// group_index, domain?, strip_result, sub_inplace?)`. match_index selects
// which match occurrence to use when pattern matches more than once;
// group_index (aliased as "group" for the simple single-group case)
// selects a capture group within that match. With strip_result=true the
// matched occurrence is deleted from raw instead of extracted, and the
// remainder is returned "with adjacent spaces/hyphens de-stacked" (spec.md
// §4.1 "Semantics").
func (e *Engine) fnRegexFind(table, field string, fields []string, row Row, value any, first bool, kwargs map[string]any) (any, error) {
	raw := toStringValue(sourceValue(fields, row, value, first))
	pattern, _ := kwargs["pattern"].(string)
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &ErrInvalidRegex{table, field, pattern, err}
	}

	matchIndex := int(kwargInt(kwargs, "match_index", 0))

	stripResult, _ := kwargs["strip_result"].(bool)
	if stripResult {
		locs := re.FindAllStringIndex(raw, -1)
		if matchIndex < 0 || matchIndex >= len(locs) {
			return deStackRemainder(raw), nil
		}
		start, end := locs[matchIndex][0], locs[matchIndex][1]
		remainder := raw[:start] + raw[end:]
		return deStackRemainder(remainder), nil
	}

	matches := re.FindAllStringSubmatch(raw, -1)
	if matchIndex < 0 || matchIndex >= len(matches) {
		if def, ok := kwargs["default"]; ok {
			return def, nil
		}
		return "", nil
	}
	m := matches[matchIndex]

	group := int(kwargInt(kwargs, "group_index", kwargInt(kwargs, "group", 0)))
	if group < 0 || group >= len(m) {
		if def, ok := kwargs["default"]; ok {
			return def, nil
		}
		return "", nil
	}
	result := m[group]

	if domainName, _ := kwargs["domain"].(string); domainName != "" && e.Schema != nil {
		if code, ok := e.Schema.ApplyDomain(domainName, result); ok {
			return code, nil
		}
	}
	return result, nil
}

// deStackRemainder collapses the runs of spaces or hyphens that
// regex_find's strip_result leaves behind once the matched occurrence is
// cut out of the middle of raw, then trims any leftover separator at
// either end.
func deStackRemainder(s string) string {
	s = runSpaceRe.ReplaceAllString(s, " ")
	s = runHyphenRe.ReplaceAllString(s, "-")
	return strings.Trim(s, " -")
}

var (
	runSpaceRe  = regexp.MustCompile(`\s{2,}`)
	runHyphenRe = regexp.MustCompile(`-{2,}`)
)

// fnRegexSub implements spec.md §4.1's `regex_sub(pattern_from,
// pattern_to, domain?)`. When domain is set, the substituted string is
// looked up in that domain and the canonical code is returned instead of
// the raw text, matching apply_domain's behavior for fields whose target
// column is domain-coded.
func (e *Engine) fnRegexSub(table, field string, fields []string, row Row, value any, first bool, kwargs map[string]any) (any, error) {
	raw := toStringValue(sourceValue(fields, row, value, first))
	pattern, _ := kwargs["pattern_from"].(string)
	repl, _ := kwargs["pattern_to"].(string)
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, &ErrInvalidRegex{table, field, pattern, err}
	}
	result := re.ReplaceAllString(raw, repl)

	if domainName, _ := kwargs["domain"].(string); domainName != "" && e.Schema != nil {
		if code, ok := e.Schema.ApplyDomain(domainName, result); ok {
			return code, nil
		}
	}
	return result, nil
}

// fnConditionalValues implements spec.md §9's closed-operator-set
// conditional: "expression" names a template over {field} (equality,
// comparison, modulo, and/or/not of a literal operand); "true_value" and
// "false_value" are the branch results. A literal may itself reference
// "{field}" to pass the raw value through unchanged.
func (e *Engine) fnConditionalValues(table, field string, fields []string, row Row, value any, first bool, kwargs map[string]any) (any, error) {
	raw := sourceValue(fields, row, value, first)
	expr, _ := kwargs["expression"].(string)
	cond, err := parseCondition(table, field, expr)
	if err != nil {
		return nil, err
	}
	if cond.eval(raw) {
		return resolveBranch(kwargs["true_value"], raw), nil
	}
	return resolveBranch(kwargs["false_value"], raw), nil
}

func resolveBranch(branch any, raw any) any {
	if s, ok := branch.(string); ok && s == "{field}" {
		return raw
	}
	return branch
}

func (e *Engine) fnConcat(fields []string, row Row, kwargs map[string]any) (any, error) {
	sep, ok := kwargs["separator"].(string)
	if !ok {
		sep = " "
	}
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		s := toStringValue(row[f])
		if s == "" {
			continue
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, sep), nil
}

// fnExtractDomain scans raw for the first domain label it contains
// (case-insensitive substring match) and returns that label's canonical
// code — used for source fields that embed a domain term inside freer
// text (e.g. a structure description containing "bridge").
func (e *Engine) fnExtractDomain(fields []string, row Row, value any, first bool, kwargs map[string]any) (any, error) {
	raw := strings.ToLower(toStringValue(sourceValue(fields, row, value, first)))
	domainName, _ := kwargs["domain"].(string)
	if e.Schema == nil {
		return kwargs["default"], nil
	}
	for _, lang := range []string{"en", "fr"} {
		for _, label := range e.Schema.DomainLabels(domainName, lang) {
			if label == "" {
				continue
			}
			if strings.Contains(raw, strings.ToLower(label)) {
				if code, ok := e.Schema.ApplyDomain(domainName, label); ok {
					return code, nil
				}
			}
		}
	}
	if def, ok := kwargs["default"]; ok {
		return def, nil
	}
	return nil, nil
}

func (e *Engine) fnSplit(fields []string, row Row, value any, first bool, kwargs map[string]any) (any, error) {
	raw := toStringValue(sourceValue(fields, row, value, first))
	delim, ok := kwargs["delimiter"].(string)
	if !ok || delim == "" {
		delim = " "
	}
	index := int(kwargInt(kwargs, "index", 0))
	parts := strings.Split(raw, delim)
	if index < 0 || index >= len(parts) {
		return "", nil
	}
	return strings.TrimSpace(parts[index]), nil
}

func (e *Engine) fnApplyDomain(fields []string, row Row, value any, first bool, kwargs map[string]any) (any, error) {
	raw := toStringValue(sourceValue(fields, row, value, first))
	domainName, _ := kwargs["domain"].(string)
	if e.Schema == nil {
		return nil, fmt.Errorf("conform: apply_domain requires a schema")
	}
	code, ok := e.Schema.ApplyDomain(domainName, raw)
	if !ok {
		if def, ok := kwargs["default"]; ok {
			return def, nil
		}
		return nil, nil
	}
	return code, nil
}

// fnCopyAttributeFunctions returns row[field], where field is the "field"
// kwarg. The row holds the source record's attributes only (ConformTable
// does not add other target fields' conformed values to it), so this reads
// a source column; another field's function chain is not re-run and no
// parameter overrides are applied.
func (e *Engine) fnCopyAttributeFunctions(row Row, kwargs map[string]any) (any, error) {
	src, _ := kwargs["field"].(string)
	if src == "" {
		return nil, fmt.Errorf("conform: copy_attribute_functions requires \"field\"")
	}
	return row[src], nil
}
