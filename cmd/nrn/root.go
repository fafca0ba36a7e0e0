package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/geobasenrn/nrn-go/internal/logging"
)

// provinces lists the 13 ISO two-letter codes this tool accepts (spec.md
// §6: "province is one of the 13 ISO two-letter codes").
var provinces = map[string]bool{
	"AB": true, "BC": true, "MB": true, "NB": true, "NL": true, "NS": true,
	"NT": true, "NU": true, "ON": true, "PE": true, "QC": true, "SK": true, "YT": true,
}

func validateProvince(code string) (string, error) {
	upper := strings.ToUpper(code)
	if !provinces[upper] {
		return "", fmt.Errorf("nrn: %q is not a recognized province code", code)
	}
	return upper, nil
}

var (
	verbosity int
	quiet     int
	cfg       = viper.New()
)

var rootCmd = &cobra.Command{
	Use:   "nrn",
	Short: "Convert provincial road network sources into the NRN canonical schema",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg.AutomaticEnv()
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase logging verbosity")
	rootCmd.PersistentFlags().CountVarP(&quiet, "quiet", "q", "decrease logging verbosity")
	cfg.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	cfg.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))

	rootCmd.AddCommand(convertCmd, packageCmd, validateCmd, lsCmd)
}

// currentLogger builds the zap logger for this invocation's net
// verbosity (-v minus -q), per spec.md §6's counting verbosity flags.
func currentLogger() (*zap.Logger, error) {
	return logging.New(verbosity - quiet)
}
