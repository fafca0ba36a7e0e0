package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/geobasenrn/nrn-go/internal/config"
	"github.com/geobasenrn/nrn-go/internal/schema"
)

var lsConfigs []string

var lsCmd = &cobra.Command{
	Use:   "ls <province>",
	Short: "List the canonical tables and, given --config, the source layers they map from",
	Args:  cobra.ExactArgs(1),
	RunE:  runLs,
}

func init() {
	lsCmd.Flags().StringArrayVar(&lsConfigs, "config", nil, "per-source YAML config to report layer mappings for (repeatable)")
}

func runLs(cmd *cobra.Command, args []string) error {
	province, err := validateProvince(args[0])
	if err != nil {
		return err
	}

	names := make([]string, 0, len(schema.AllTables))
	for _, t := range schema.AllTables {
		names = append(names, string(t))
	}
	sort.Strings(names)

	fmt.Printf("canonical tables for %s:\n", province)
	for _, n := range names {
		fmt.Printf("  %s\n", n)
	}

	if len(lsConfigs) == 0 {
		return nil
	}

	cfgs, err := config.LoadSourceConfigs(lsConfigs)
	if err != nil {
		return err
	}

	fmt.Println("configured source layers:")
	for i, cfg := range cfgs {
		fmt.Printf("  %s (%s, layer=%s)\n", lsConfigs[i], cfg.Data.Driver, cfg.Data.Layer)
		targets := make([]string, 0, len(cfg.Conform))
		for table := range cfg.Conform {
			targets = append(targets, table)
		}
		sort.Strings(targets)
		for _, t := range targets {
			fmt.Printf("    -> %s\n", t)
		}
	}
	return nil
}
