// Package config decodes the per-source YAML configuration documents
// (spec.md §6 "Configuration (per-source)"): a `data` block describing how
// to read the source container, and a `conform` block holding the
// declarative field-mapping document consumed by internal/conform.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/geobasenrn/nrn-go/internal/geomutil"
)

// DataConfig describes how to read one source layer.
type DataConfig struct {
	Filename string `yaml:"filename"`
	Layer    string `yaml:"layer"`
	Driver   string `yaml:"driver"`
	CRS      int    `yaml:"crs"`
	Query    string `yaml:"query"`
	Spatial  bool   `yaml:"spatial"`
}

// EPSG returns the configured source CRS as a geomutil.EPSGCode.
func (d DataConfig) EPSG() geomutil.EPSGCode {
	return geomutil.EPSGCode(d.CRS)
}

// SourceConfig is one fully-decoded per-source YAML document: the `data`
// block plus the raw (not-yet-normalized) `conform` mapping document, one
// entry per canonical target table.
type SourceConfig struct {
	Data    DataConfig                `yaml:"data"`
	Conform map[string]map[string]any `yaml:"conform"`
}

// LoadSourceConfig reads and decodes one per-source YAML file.
//
// Missing `data` or `conform` top-level keys are a fatal configuration
// error per spec.md §7(a): "Configuration errors ... missing data or
// conform key ... fatal, abort before any side effect."
func LoadSourceConfig(path string) (*SourceConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %q: %w", path, err)
	}

	var cfg SourceConfig
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %q: %w", path, err)
	}

	if cfg.Data.Filename == "" {
		return nil, fmt.Errorf("config: %q: missing required \"data\" block", path)
	}
	if cfg.Conform == nil {
		return nil, fmt.Errorf("config: %q: missing required \"conform\" block", path)
	}

	return &cfg, nil
}

// LoadSourceConfigs loads every YAML file named by paths, in order. The
// CLI's repeatable `--config` flag (spec.md §6) feeds this directly.
func LoadSourceConfigs(paths []string) ([]*SourceConfig, error) {
	cfgs := make([]*SourceConfig, 0, len(paths))
	for _, p := range paths {
		cfg, err := LoadSourceConfig(p)
		if err != nil {
			return nil, err
		}
		cfgs = append(cfgs, cfg)
	}
	return cfgs, nil
}
