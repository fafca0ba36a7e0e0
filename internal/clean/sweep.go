package clean

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/geobasenrn/nrn-go/internal/schema"
	"github.com/geobasenrn/nrn-go/internal/store"
)

// RunSweeps runs the four deterministic cleaning sweeps described in
// spec.md §4.3, in order. Each sweep is idempotent on its own; running the
// set twice in a row is a no-op the second time (spec.md §8: "Running S4
// twice yields a result equal to running it once").
func RunSweeps(st *store.Store, log *zap.Logger) {
	lowercaseIDs(st)
	normalizeWhitespace(st)
	titleCaseRouteNames(st)
	renumberRoadsegID(st, log)
}

// lowercaseIDs lowercases every string-typed column whose name ends in
// "id", isn't "uuid", and isn't already lowercase (spec.md §4.3 step 1).
func lowercaseIDs(st *store.Store) {
	for _, t := range st.Tables {
		for col, vals := range t.Columns {
			if col == "uuid" || !strings.HasSuffix(col, "id") {
				continue
			}
			for i, v := range vals {
				s, ok := v.(string)
				if !ok || s == "" {
					continue
				}
				if lower := strings.ToLower(s); lower != s {
					t.Set(col, i, lower)
				}
			}
		}
	}
}

// normalizeWhitespace trims and collapses internal whitespace runs in
// every string column of every table (spec.md §4.3 step 2).
func normalizeWhitespace(st *store.Store) {
	for _, t := range st.Tables {
		for col, vals := range t.Columns {
			for i, v := range vals {
				s, ok := v.(string)
				if !ok || s == "" {
					continue
				}
				if cleaned := collapseWhitespace(s); cleaned != s {
					t.Set(col, i, cleaned)
				}
			}
		}
	}
}

func collapseWhitespace(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}

// routeNameFields is every rtename{1..4}{en,fr} column on roadseg and
// ferryseg (spec.md §4.3 step 3).
var routeNameFields = func() []string {
	var names []string
	for i := 1; i <= 4; i++ {
		for _, lang := range []string{"en", "fr"} {
			names = append(names, "rtename"+strconv.Itoa(i)+lang)
		}
	}
	return names
}()

func titleCaseRouteNames(st *store.Store) {
	for _, tableName := range []schema.TableName{schema.TableRoadseg, schema.TableFerryseg} {
		t, ok := st.Tables[string(tableName)]
		if !ok {
			continue
		}
		for _, col := range routeNameFields {
			vals, ok := t.Columns[col]
			if !ok {
				continue
			}
			for i, v := range vals {
				s, ok := v.(string)
				if !ok || s == "" {
					continue
				}
				if titled := titleCase(s); titled != s {
					t.Set(col, i, titled)
				}
			}
		}
	}
}

// titleCase upper-cases the first letter of every space-separated word and
// lowercases the rest, without pulling in golang.org/x/text/cases for what
// route names need: simple ASCII/French-accented word capitalization
// ("DE LA COLLINE" -> "De La Colline").
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		r := []rune(w)
		if len(r) == 0 {
			continue
		}
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// renumberRoadsegID overwrites roadseg.roadsegid with 1..N in current row
// order (spec.md §4.3 step 4). This is the one sweep that depends on row
// enumeration order and cannot be parallelized across rows.
func renumberRoadsegID(st *store.Store, log *zap.Logger) {
	t, ok := st.Tables[string(schema.TableRoadseg)]
	if !ok {
		return
	}
	n := t.RowCount()
	for i := 0; i < n; i++ {
		t.Set("roadsegid", i, int64(i+1))
	}
	log.Info("clean: renumbered roadsegid", zap.Int("rows", n))
}
