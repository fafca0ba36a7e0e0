// Package validate implements S8 (spec.md §4.8 "Validation (advisory)"):
// per-field checks that never block emission, collected into a report.
package validate

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/geobasenrn/nrn-go/internal/geomutil"
	"github.com/geobasenrn/nrn-go/internal/schema"
	"github.com/geobasenrn/nrn-go/internal/store"
)

// Severity distinguishes a hard validation failure from a recoverable
// warning (spec.md §7(e); SPEC_FULL.md §4.8: "tagged Severity: Warning vs
// Severity: Failure").
type Severity string

const (
	SeverityFailure Severity = "Failure"
	SeverityWarning Severity = "Warning"
)

// Finding is one (layer, record, field, code, message) validation tuple.
type Finding struct {
	Layer    string
	Record   int
	Field    string
	Code     string
	Message  string
	Severity Severity
}

// DefaultCollapseThreshold is the per-check count at which findings
// collapse: a (layer, code) pair keeps its first threshold-1 findings,
// the threshold-th becomes a single summary row, and later ones are
// dropped.
const DefaultCollapseThreshold = 25

// Report accumulates findings per (layer, code) and collapses runs that
// exceed the threshold.
type Report struct {
	Threshold int
	counts    map[string]int
	findings  []Finding
	collapsed map[string]bool
}

// NewReport builds a Report with the default collapse threshold.
func NewReport() *Report {
	return &Report{Threshold: DefaultCollapseThreshold, counts: map[string]int{}, collapsed: map[string]bool{}}
}

func (r *Report) key(layer, code string) string { return layer + "\x1f" + code }

// Add records one finding. When a (layer, code) pair reaches the
// threshold, that finding is replaced by a summary row and later ones
// are dropped.
func (r *Report) Add(f Finding) {
	k := r.key(f.Layer, f.Code)
	r.counts[k]++
	if r.counts[k] > r.Threshold {
		return
	}
	if r.counts[k] == r.Threshold {
		r.collapsed[k] = true
		r.findings = append(r.findings, Finding{
			Layer: f.Layer, Record: -1, Field: f.Field, Code: f.Code,
			Message:  fmt.Sprintf("%d+ findings of this kind, further instances suppressed", r.Threshold),
			Severity: f.Severity,
		})
		return
	}
	r.findings = append(r.findings, f)
}

// Findings returns every recorded (possibly collapsed) finding.
func (r *Report) Findings() []Finding { return r.findings }

// Validate runs every per-field and geometry check over st and returns the
// accumulated report. Validation never mutates st or blocks emission
// (spec.md §4.8: "Validation never blocks emission in the core; it
// produces a report").
func Validate(st *store.Store, sch *schema.Schema, currentYear int, log *zap.Logger) *Report {
	report := NewReport()

	for _, name := range schema.AllTables {
		t, ok := st.Tables[string(name)]
		if !ok {
			continue
		}
		if t.RowCount() == 0 {
			report.Add(Finding{Layer: string(name), Record: -1, Code: "EMPTY_LAYER",
				Message: "layer has no rows", Severity: SeverityWarning})
			continue
		}
		validateTable(t, name, sch, currentYear, report)
	}

	log.Info("validate: report complete", zap.Int("findings", len(report.Findings())))
	return report
}

func validateTable(t *store.Table, table schema.TableName, sch *schema.Schema, currentYear int, report *Report) {
	fields := sch.Registry.Fields(table)

	for i := 0; i < t.RowCount(); i++ {
		for name, spec := range fields {
			v, ok := t.Get(name, i)
			if !ok {
				continue
			}
			switch {
			case spec.Type == schema.FieldDateString:
				validateDate(table, name, i, v, currentYear, report)
			case name == "speed":
				validateSpeed(table, i, v, report)
			}
		}
	}

	if t.Spatial {
		validateDuplicatePoints(t, table, report)
	}
}

func asString(v store.Value) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

func validateDate(table schema.TableName, field string, row int, v store.Value, currentYear int, report *Report) {
	s, ok := asString(v)
	if !ok {
		return
	}
	layer := string(table)

	if s == "" || s == schema.DefaultSentinelNID {
		report.Add(Finding{Layer: layer, Record: row, Field: field, Code: "DATE_EMPTY",
			Message: "date value is empty", Severity: SeverityFailure})
		return
	}

	switch len(s) {
	case 4, 6, 8:
	default:
		report.Add(Finding{Layer: layer, Record: row, Field: field, Code: "DATE_LENGTH",
			Message: fmt.Sprintf("date %q has invalid length %d, expected 4, 6, or 8", s, len(s)),
			Severity: SeverityFailure})
		return
	}

	year, ok := parseDigits(s[0:4])
	if !ok || year < 1960 || year > currentYear {
		report.Add(Finding{Layer: layer, Record: row, Field: field, Code: "DATE_YEAR",
			Message: fmt.Sprintf("date %q has year outside [1960, %d]", s, currentYear), Severity: SeverityFailure})
		return
	}

	if len(s) < 6 {
		return
	}
	month, ok := parseDigits(s[4:6])
	if !ok || month < 1 || month > 12 {
		report.Add(Finding{Layer: layer, Record: row, Field: field, Code: "DATE_MONTH",
			Message: fmt.Sprintf("date %q has invalid month", s), Severity: SeverityFailure})
		return
	}

	if len(s) < 8 {
		return
	}
	day, ok := parseDigits(s[6:8])
	if !ok || day < 1 || day > daysInMonth(year, month) {
		report.Add(Finding{Layer: layer, Record: row, Field: field, Code: "DATE_DAY",
			Message: fmt.Sprintf("date %q has invalid day for its month", s), Severity: SeverityFailure})
	}
}

func parseDigits(s string) (int, bool) {
	n := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

func daysInMonth(year, month int) int {
	days := [...]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	if month == 2 && isLeapYear(year) {
		return 29
	}
	return days[month-1]
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

func validateSpeed(table schema.TableName, row int, v store.Value, report *Report) {
	var speed int64
	switch n := v.(type) {
	case int64:
		speed = n
	case int:
		speed = int64(n)
	default:
		return
	}
	if speed < 5 || speed > 120 || speed%5 != 0 {
		report.Add(Finding{Layer: string(table), Record: row, Field: "speed", Code: "SPEED_RANGE",
			Message: fmt.Sprintf("speed %d outside [5,120] or not a multiple of 5", speed), Severity: SeverityFailure})
	}
}

func validateDuplicatePoints(t *store.Table, table schema.TableName, report *Report) {
	seen := make(map[geomutil.Coord]int)
	for i, g := range t.Geoms {
		if g.Type != geomutil.GeometryTypePoint || len(g.Points) != 1 {
			continue
		}
		p := g.Points[0]
		if first, ok := seen[p]; ok {
			report.Add(Finding{Layer: string(table), Record: i, Code: "DUPLICATE_POINT",
				Message: fmt.Sprintf("duplicate point geometry, first seen at record %d", first), Severity: SeverityFailure})
			continue
		}
		seen[p] = i
	}
}
