package nrn

import (
	"go.uber.org/zap"

	"github.com/geobasenrn/nrn-go/internal/previous"
	"github.com/geobasenrn/nrn-go/internal/project"
	"github.com/geobasenrn/nrn-go/internal/schema"
	"github.com/geobasenrn/nrn-go/internal/store"
	"github.com/geobasenrn/nrn-go/internal/validate"
)

// LoadPrevious loads a prior-vintage GeoPackage bundle from path, for use
// as ConvertOptions.Previous (spec.md §6 "convert accepts --previous").
func LoadPrevious(path string, sch *schema.Schema) (*Dataset, error) {
	st, err := previous.Load(path)
	if err != nil {
		return nil, err
	}
	return &Dataset{store: st, schema: sch}, nil
}

// Dataset is a completed working store: English-canonical data plus its
// advisory validation report, ready for S7 projection/emission or for use
// as the "previous vintage" input to a later Convert call.
type Dataset struct {
	store  *store.Store
	report *validate.Report
	schema *schema.Schema
}

// Report returns the advisory validation findings collected during
// Convert (spec.md §4.8: "Validation never blocks emission ... it
// produces a report"). It is nil until Convert or Validate has run.
func (d *Dataset) Report() *validate.Report {
	return d.report
}

// Validate runs the S8 advisory checks against this dataset's current
// contents and records the result as this dataset's Report. Used by the
// standalone `validate` subcommand against an already-converted bundle,
// where Convert never ran in this process.
func (d *Dataset) Validate(currentYear int, log *zap.Logger) *validate.Report {
	d.report = validate.Validate(d.store, d.schema, currentYear, log)
	return d.report
}

// French materializes the French-language rendering of this dataset
// (spec.md §4.7 "French materialization").
func (d *Dataset) French(log *zap.Logger) *Dataset {
	fr := project.Materialize(d.store, d.schema, log)
	return &Dataset{store: fr, report: d.report, schema: d.schema}
}

// Project renders every canonical table under one (format, lang)
// projection (spec.md §4.7 "Per-format schemas").
func (d *Dataset) Project(format schema.Format, lang schema.Lang, source string, major, minor int) []project.ProjectedTable {
	var out []project.ProjectedTable
	for _, name := range schema.AllTables {
		t, ok := d.store.Tables[string(name)]
		if !ok {
			continue
		}
		out = append(out, project.ProjectTable(t, name, d.schema, format, lang, source, major, minor))
	}
	return out
}

// KMLPartitions partitions the roadseg layer by placename for KML export
// (spec.md §4.7 "KML partitioning").
func (d *Dataset) KMLPartitions(cap int, log *zap.Logger) []project.KMLPartition {
	roadseg, ok := d.store.Tables[string(schema.TableRoadseg)]
	if !ok {
		return nil
	}
	return project.PartitionRoadsegByPlacename(roadseg, cap, log)
}
