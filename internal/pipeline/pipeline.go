// Package pipeline orchestrates S1 through S8 in strict sequence over one
// shared store.Store (spec.md §2 "System Overview", §5 "Scheduling model":
// "stages execute in strict sequence and never overlap").
package pipeline

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/geobasenrn/nrn-go/internal/clean"
	"github.com/geobasenrn/nrn-go/internal/config"
	"github.com/geobasenrn/nrn-go/internal/conform"
	"github.com/geobasenrn/nrn-go/internal/counter"
	"github.com/geobasenrn/nrn-go/internal/geomutil"
	"github.com/geobasenrn/nrn-go/internal/reconcile"
	"github.com/geobasenrn/nrn-go/internal/schema"
	"github.com/geobasenrn/nrn-go/internal/splitrecover"
	"github.com/geobasenrn/nrn-go/internal/store"
	"github.com/geobasenrn/nrn-go/internal/topology"
	"github.com/geobasenrn/nrn-go/internal/validate"
)

// ConvertOptions configures one end-to-end S1-S8 run (spec.md §6
// "convert accepts --previous, --config (repeatable), --boundary,
// --output").
type ConvertOptions struct {
	SourceConfigs []*config.SourceConfig
	Previous      *store.Store // nil if no prior vintage available
	Boundary      *geomutil.Geometry
	CurrentYear   int
}

// Result is everything a later stage (S7 project/emit, validation report)
// needs from a completed Run (S1-S6 plus S8 validation).
type Result struct {
	Store  *store.Store
	Report *validate.Report
}

// Run executes S1 (ingest) through S8 (validate) in order, checking ctx
// for cancellation at each stage boundary only (spec.md §5
// "Cancellation is checked at stage boundaries only").
func Run(ctx context.Context, opts ConvertOptions, sch *schema.Schema, log *zap.Logger) (*Result, error) {
	st := store.NewStore()
	counters := counter.NewRegistry()
	engine := conform.NewEngine(counters, sch)

	// S1 + S2: ingest and conform every configured source. Sources are
	// independent, so this runs data-parallel per spec.md §5.
	if err := checkCancel(ctx); err != nil {
		return nil, err
	}
	if errs := IngestAll(st, opts.SourceConfigs, engine, DefaultIngestOptions(), log); len(errs) > 0 {
		return nil, eris.Wrapf(errs[0], "pipeline: ingesting %d source(s), first error", len(errs))
	}

	// S3: split strplaname Pairs and de-duplicate, then recover any
	// layer missing entirely from this run using the previous vintage.
	if err := checkCancel(ctx); err != nil {
		return nil, err
	}
	splitrecover.SplitStrplaname(st, log)
	splitrecover.DeduplicateStrplaname(st, log)
	if opts.Previous != nil {
		splitrecover.RecoverMissingLayers(st, opts.Previous, log)
	}

	// S4: domain substitution and cleaning sweeps.
	if err := checkCancel(ctx); err != nil {
		return nil, err
	}
	clean.ApplyDomains(st, sch, log)
	clean.RunSweeps(st, log)

	// S5: topology and junctions.
	if err := checkCancel(ctx); err != nil {
		return nil, err
	}
	topology.BuildJunctions(st, opts.Boundary, log)

	// S6: NID reconciliation against the previous vintage.
	if err := checkCancel(ctx); err != nil {
		return nil, err
	}
	if opts.Previous != nil {
		reconcile.Reconcile(st, opts.Previous, log)
	}

	// S8: advisory validation. Never blocks emission (spec.md §4.8).
	if err := checkCancel(ctx); err != nil {
		return nil, err
	}
	currentYear := opts.CurrentYear
	if currentYear == 0 {
		currentYear = time.Now().Year()
	}
	report := validate.Validate(st, sch, currentYear, log)

	return &Result{Store: st, Report: report}, nil
}

func checkCancel(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return eris.Wrap(ctx.Err(), "pipeline: cancelled")
	default:
		return nil
	}
}
