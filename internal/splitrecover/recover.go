package splitrecover

import (
	"go.uber.org/zap"

	"github.com/geobasenrn/nrn-go/internal/schema"
	"github.com/geobasenrn/nrn-go/internal/store"
)

// RecoverMissingLayers populates any canonical layer current has no rows
// for by cloning it from prior, the previous vintage's store (spec.md
// §4.4 "Recovery: populating a missing current-vintage layer by copying
// the corresponding layer from the previous vintage"; taxonomy (e): a
// recoverable missing layer is a warning, not a fatal error).
func RecoverMissingLayers(current, prior *store.Store, log *zap.Logger) {
	if prior == nil {
		return
	}
	for _, name := range schema.AllTables {
		table := string(name)
		if current.Has(table) {
			continue
		}
		priorTable, ok := prior.Tables[table]
		if !ok || priorTable.RowCount() == 0 {
			continue
		}
		current.Set(table, priorTable.Clone())
		log.Warn("splitrecover: recovered layer from prior vintage",
			zap.String("table", table),
			zap.Int("rows", priorTable.RowCount()),
		)
	}
}
