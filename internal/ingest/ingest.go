// Package ingest implements S1 (spec.md §4.1 "Ingest"): reading one
// configured source, reprojecting and rounding its geometry into the
// canonical CRS, and conforming its attributes into the shared table
// store via internal/conform.
package ingest

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/geobasenrn/nrn-go/internal/conform"
	"github.com/geobasenrn/nrn-go/internal/config"
	"github.com/geobasenrn/nrn-go/internal/geomutil"
	"github.com/geobasenrn/nrn-go/internal/schema"
	"github.com/geobasenrn/nrn-go/internal/source"
	"github.com/geobasenrn/nrn-go/internal/store"
)

// ReaderFor returns the concrete source.Reader for a `data.driver` name.
// Unrecognized drivers are a fatal configuration error (spec.md §7(a)).
func ReaderFor(driver string, crs geomutil.EPSGCode) (source.Reader, error) {
	switch strings.ToLower(driver) {
	case "shp", "shapefile", "esri shapefile":
		return source.NewShapefileReader(crs), nil
	case "geojson":
		return source.NewGeoJSONReader(crs), nil
	default:
		return nil, fmt.Errorf("ingest: unsupported data.driver %q", driver)
	}
}

// Ingest reads one configured source, reprojects and rounds its geometry,
// conforms every declared target table's fields, and merges the result
// into st. Multiple sources contributing to the same target table append
// rather than overwrite, so provincial sources can be ingested one at a
// time in any order.
func Ingest(st *store.Store, cfg *config.SourceConfig, eng *conform.Engine, log *zap.Logger) error {
	reader, err := ReaderFor(cfg.Data.Driver, cfg.Data.EPSG())
	if err != nil {
		return err
	}

	layer, err := reader.ReadLayer(cfg.Data.Filename, cfg.Data.Layer, cfg.Data.Query)
	if err != nil {
		return fmt.Errorf("ingest: reading %q: %w", cfg.Data.Filename, err)
	}

	log.Info("ingest: read source layer",
		zap.String("filename", cfg.Data.Filename),
		zap.Int("records", len(layer.Records)),
	)

	if layer.Spatial {
		if err := reprojectAndRound(&layer, cfg.Data.EPSG(), log); err != nil {
			return err
		}
	}

	tc := conform.NewTableConformer(eng)
	for tableName, rawMappings := range cfg.Conform {
		conformed, err := tc.ConformTable(tableName, rawMappings, layer)
		if err != nil {
			return fmt.Errorf("ingest: conforming table %q: %w", tableName, err)
		}

		target := targetTable(st, tableName)
		target.Append(conformed)

		log.Info("ingest: conformed table",
			zap.String("table", tableName),
			zap.Int("rows", conformed.RowCount()),
		)
	}

	return nil
}

// targetTable fetches (creating if absent) the canonical store table for
// tableName, honoring the schema registry's spatial/attribute distinction.
func targetTable(st *store.Store, tableName string) *store.Table {
	if schema.SpatialTables[schema.TableName(tableName)] {
		return st.TableSpatial(tableName)
	}
	return st.Table(tableName)
}

// reprojectAndRound transforms every record's geometry from source into
// geomutil.TargetCRS and rounds it to the pipeline's coordinate precision.
// A record whose geometry can't be reprojected is dropped with a warning
// rather than aborting ingest of the rest of the layer.
func reprojectAndRound(layer *source.Layer, from geomutil.EPSGCode, log *zap.Logger) error {
	proj := geomutil.NewReprojector()
	kept := layer.Records[:0]
	dropped := 0

	for _, rec := range layer.Records {
		g, err := proj.Reproject(rec.Geometry, from)
		if err != nil {
			dropped++
			continue
		}
		rec.Geometry = geomutil.RoundGeometry(g)
		kept = append(kept, rec)
	}
	layer.Records = kept

	if dropped > 0 {
		log.Warn("ingest: dropped records that failed reprojection",
			zap.Int("dropped", dropped),
			zap.Int("source_crs", int(from)),
		)
	}
	return nil
}
