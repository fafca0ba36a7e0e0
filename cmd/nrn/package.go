package main

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/geobasenrn/nrn-go/internal/httpfetch"
	"github.com/geobasenrn/nrn-go/internal/project"
	"github.com/geobasenrn/nrn-go/internal/schema"
	"github.com/geobasenrn/nrn-go/internal/writer"
	"github.com/geobasenrn/nrn-go/pkg/nrn"
)

var (
	packageMajor      int
	packageMinor      int
	packageVersionURL string
	packageFormat     string
	packageOutPath    string
	packageCompress   bool
	packageSource     string
)

var packageCmd = &cobra.Command{
	Use:   "package <province>",
	Short: "Project a converted dataset into a per-format, per-language output bundle",
	Args:  cobra.ExactArgs(1),
	RunE:  runPackage,
}

func init() {
	packageCmd.Flags().IntVar(&packageMajor, "major-version", 0, "release major version (used as-is when --version-url is not set)")
	packageCmd.Flags().IntVar(&packageMinor, "minor-version", 0, "release minor version (used as-is when --version-url is not set)")
	packageCmd.Flags().StringVar(&packageVersionURL, "version-url", "", "URL serving the previous vintage's version metadata JSON; when set, the next (major, minor) is computed per spec.md §4.7 instead of taking --major-version/--minor-version literally")
	packageCmd.Flags().StringVar(&packageFormat, "format", "gpkg", "output format: gpkg, shp, gml, kml")
	packageCmd.Flags().StringVar(&packageOutPath, "out-path", ".", "directory (or GeoPackage bundle, via --previous) to read the converted dataset from")
	packageCmd.Flags().BoolVar(&packageCompress, "compress", false, "zip the output directory after writing it")
	packageCmd.Flags().StringVar(&packageSource, "source", "nrn", "source abbreviation used in the output naming template")
}

func runPackage(cmd *cobra.Command, args []string) error {
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
	dataset, err := nrn.LoadPrevious(packageOutPath, sch)
	if err != nil {
		return fmt.Errorf("package: loading converted dataset from %q: %w", packageOutPath, err)
	}

	w, ok := writer.ForFormat(packageFormat)
	if !ok {
		return fmt.Errorf("package: unrecognized --format %q", packageFormat)
	}

	outDir := filepath.Join(packageOutPath, province)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	major, minor := packageMajor, packageMinor
	if packageVersionURL != "" {
		prev, err := project.FetchPreviousVersion(httpfetch.New(log), packageVersionURL)
		if err != nil {
			return fmt.Errorf("package: fetching previous version metadata: %w", err)
		}
		next := project.NextVersion(prev, time.Now().Year())
		major, minor = next.Major, next.Minor
		log.Info("package: computed next version from previous vintage",
			zap.Int("major", major), zap.Int("minor", minor))
	}

	enTables := dataset.Project(schema.Format(packageFormat), schema.LangEN, packageSource, major, minor)
	if err := w.Write(enTables, outDir); err != nil {
		return err
	}

	frDataset := dataset.French(log)
	frTables := frDataset.Project(schema.Format(packageFormat), schema.LangFR, packageSource, major, minor)
	if err := w.Write(frTables, outDir); err != nil {
		return err
	}

	if packageFormat == "kml" {
		partitions := dataset.KMLPartitions(project.DefaultKMLCap, log)
		if kw, ok := w.(*writer.KMLWriter); ok {
			if err := kw.WritePartitions(partitions, outDir); err != nil {
				return err
			}
		}
	}

	log.Info("package: wrote output bundle", zap.String("province", province), zap.String("format", packageFormat))

	if packageCompress {
		return zipDir(outDir, outDir+".zip")
	}
	return nil
}

func zipDir(srcDir, destZip string) error {
	out, err := os.Create(destZip)
	if err != nil {
		return err
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	defer zw.Close()

	return filepath.Walk(srcDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		w, err := zw.Create(rel)
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(w, f)
		return err
	})
}
