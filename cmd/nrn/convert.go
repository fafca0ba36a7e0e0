package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/geobasenrn/nrn-go/internal/geomutil"
	"github.com/geobasenrn/nrn-go/internal/schema"
	"github.com/geobasenrn/nrn-go/internal/source"
	"github.com/geobasenrn/nrn-go/pkg/nrn"
)

var (
	convertConfigs  []string
	convertPrevious string
	convertBoundary string
	convertOutput   string
)

var convertCmd = &cobra.Command{
	Use:   "convert <province>",
	Short: "Run S1-S8 over a set of per-source configs and write the validation report",
	Args:  cobra.ExactArgs(1),
	RunE:  runConvert,
}

func init() {
	convertCmd.Flags().StringArrayVar(&convertConfigs, "config", nil, "per-source YAML config (repeatable)")
	convertCmd.Flags().StringVar(&convertPrevious, "previous", "", "path to the previous vintage GeoPackage bundle")
	convertCmd.Flags().StringVar(&convertBoundary, "boundary", "", "path to a boundary polygon GeoJSON file")
	convertCmd.Flags().StringVar(&convertOutput, "output", "", "directory to write validation_report.json to; the converted dataset itself is not written")
}

func runConvert(cmd *cobra.Command, args []string) error {
	province, err := validateProvince(args[0])
	if err != nil {
		return err
	}

	log, err := currentLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	sch := schema.New()
	conv := nrn.NewConverter(log)

	var previous *nrn.Dataset
	if convertPrevious != "" {
		previous, err = nrn.LoadPrevious(convertPrevious, sch)
		if err != nil {
			log.Warn("convert: could not load previous vintage, continuing without it",
				zap.Error(err))
			previous = nil
		}
	}

	var boundary *geomutil.Geometry
	if convertBoundary != "" {
		g, err := source.LoadBoundaryGeometry(convertBoundary)
		if err != nil {
			return err
		}
		boundary = &g
	}

	dataset, err := conv.Convert(context.Background(), nrn.ConvertOptions{
		ConfigPaths: convertConfigs,
		Previous:    previous,
		Boundary:    boundary,
		CurrentYear: time.Now().Year(),
	})
	if err != nil {
		return err
	}

	log.Info("convert: complete", zap.String("province", province))

	if convertOutput != "" {
		return writeReport(dataset, convertOutput)
	}
	return nil
}

func writeReport(dataset *nrn.Dataset, outDir string) error {
	report := dataset.Report()
	out, err := json.MarshalIndent(report.Findings(), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outDir+"/validation_report.json", out, 0o644)
}
