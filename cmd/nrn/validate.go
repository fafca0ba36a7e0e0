package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/geobasenrn/nrn-go/internal/schema"
	"github.com/geobasenrn/nrn-go/pkg/nrn"
)

var (
	validateInput  string
	validateOutput string
)

var validateCmd = &cobra.Command{
	Use:   "validate <province>",
	Short: "Run the advisory validation checks against an already-converted dataset",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&validateInput, "input", "", "path to a converted GeoPackage bundle")
	validateCmd.Flags().StringVar(&validateOutput, "output", "", "file to write the JSON findings report to (stdout if omitted)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	if _, err := validateProvince(args[0]); err != nil {
		return err
	}
	if validateInput == "" {
		return fmt.Errorf("nrn: validate requires --input")
	}

	log, err := currentLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	sch := schema.New()
	dataset, err := nrn.LoadPrevious(validateInput, sch)
	if err != nil {
		return fmt.Errorf("validate: loading %q: %w", validateInput, err)
	}

	findings := dataset.Validate(time.Now().Year(), log).Findings()
	out, err := json.MarshalIndent(findings, "", "  ")
	if err != nil {
		return err
	}

	if validateOutput == "" {
		_, err := os.Stdout.Write(append(out, '\n'))
		return err
	}
	return os.WriteFile(validateOutput, out, 0o644)
}
