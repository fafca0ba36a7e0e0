package pipeline

import (
	"runtime"
	"sync"

	"go.uber.org/zap"

	"github.com/geobasenrn/nrn-go/internal/config"
	"github.com/geobasenrn/nrn-go/internal/conform"
	"github.com/geobasenrn/nrn-go/internal/ingest"
	"github.com/geobasenrn/nrn-go/internal/store"
)

// IngestOptions controls S1's per-source concurrency, grounded on the
// teacher's pkg/v1/parallel.go LoadOptions/LoadCellsParallel pair: a
// worker pool over independent units of work (there, ENC cells; here,
// per-source conform passes), reassembled by input order before being
// merged into the shared store (spec.md §5: "results must be reassembled
// in input order if row order is observable downstream").
type IngestOptions struct {
	Parallel bool
	Workers  int
}

// DefaultIngestOptions mirrors the teacher's DefaultLoadOptions.
func DefaultIngestOptions() IngestOptions {
	return IngestOptions{Parallel: true, Workers: runtime.NumCPU()}
}

// IngestAll reads and conforms every source config, merging each into st
// via Table.Append. Each source config is read and conformed without
// reference to the others, so this is the one S1 step spec.md §5
// explicitly allows to run data-parallel; results are still applied to st
// in input order, so rows from an earlier source always precede rows from
// a later one in a table both feed.
func IngestAll(st *store.Store, cfgs []*config.SourceConfig, engine *conform.Engine, opts IngestOptions, log *zap.Logger) []error {
	if !opts.Parallel || len(cfgs) <= 1 {
		return ingestSerial(st, cfgs, engine, log)
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(cfgs) {
		workers = len(cfgs)
	}

	type perSourceResult struct {
		store *store.Store
		err   error
	}
	results := make([]perSourceResult, len(cfgs))

	jobs := make(chan int, len(cfgs))
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				scratch := store.NewStore()
				err := ingest.Ingest(scratch, cfgs[i], engine, log)
				results[i] = perSourceResult{store: scratch, err: err}
			}
		}()
	}
	for i := range cfgs {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	var errs []error
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		mergeInto(st, r.store)
	}
	return errs
}

func ingestSerial(st *store.Store, cfgs []*config.SourceConfig, engine *conform.Engine, log *zap.Logger) []error {
	var errs []error
	for _, cfg := range cfgs {
		if err := ingest.Ingest(st, cfg, engine, log); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// mergeInto appends every table of src onto the matching table in dst,
// creating it if absent (spec.md §3: "multiple provincial sources feed
// the same target table").
func mergeInto(dst, src *store.Store) {
	for name, t := range src.Tables {
		existing, ok := dst.Tables[name]
		if !ok {
			dst.Set(name, t)
			continue
		}
		existing.Append(t)
	}
}
