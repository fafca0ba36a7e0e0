package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/geobasenrn/nrn-go/internal/logging"
	"github.com/geobasenrn/nrn-go/internal/schema"
)

func TestRunWithNoSourcesProducesEmptyReport(t *testing.T) {
	sch := schema.New()
	result, err := Run(context.Background(), ConvertOptions{CurrentYear: 2026}, sch, logging.Nop())
	require.NoError(t, err)
	require.NotNil(t, result.Report, "expected a non-nil validation report")
}

func TestRunReturnsErrorOnCancelledContext(t *testing.T) {
	sch := schema.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, ConvertOptions{}, sch, logging.Nop())
	require.Error(t, err, "expected an error from a pre-cancelled context")
}
