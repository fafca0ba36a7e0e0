// Package nrn provides a clean public API for converting provincial road
// network sources into the National Road Network canonical schema,
// grounded on the teacher's pkg/s57 Parser-wrapper pattern (a small
// interface plus a constructor, hiding the internal/ package tree).
package nrn

import (
	"context"

	"go.uber.org/zap"

	"github.com/geobasenrn/nrn-go/internal/config"
	"github.com/geobasenrn/nrn-go/internal/geomutil"
	"github.com/geobasenrn/nrn-go/internal/pipeline"
	"github.com/geobasenrn/nrn-go/internal/schema"
)

// Converter runs the S1-S8 transformation pipeline over a set of
// per-source configuration documents.
//
// Create one with NewConverter and call Convert.
type Converter interface {
	// Convert ingests, conforms, splits, cleans, builds topology,
	// reconciles NIDs, and validates, returning the resulting dataset and
	// its advisory validation report.
	Convert(ctx context.Context, opts ConvertOptions) (*Dataset, error)
}

// ConvertOptions mirrors spec.md §6's `convert` subcommand inputs.
type ConvertOptions struct {
	ConfigPaths []string
	Previous    *Dataset
	Boundary    *geomutil.Geometry
	CurrentYear int
}

// NewConverter creates a Converter backed by the full canonical schema
// registry (internal/schema.New).
func NewConverter(log *zap.Logger) Converter {
	return &converterWrapper{schema: schema.New(), log: log}
}

type converterWrapper struct {
	schema *schema.Schema
	log    *zap.Logger
}

func (c *converterWrapper) Convert(ctx context.Context, opts ConvertOptions) (*Dataset, error) {
	cfgs, err := config.LoadSourceConfigs(opts.ConfigPaths)
	if err != nil {
		return nil, err
	}

	var previous *Dataset
	if opts.Previous != nil {
		previous = opts.Previous
	}

	pipelineOpts := pipeline.ConvertOptions{
		SourceConfigs: cfgs,
		Boundary:      opts.Boundary,
		CurrentYear:   opts.CurrentYear,
	}
	if previous != nil {
		pipelineOpts.Previous = previous.store
	}

	result, err := pipeline.Run(ctx, pipelineOpts, c.schema, c.log)
	if err != nil {
		return nil, err
	}

	return &Dataset{store: result.Store, report: result.Report, schema: c.schema}, nil
}
