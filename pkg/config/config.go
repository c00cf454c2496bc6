// Package config loads run configuration for the path-metrics tools.
//
// Configuration comes from a YAML file, with every field overridable by
// command-line flags. Zero values mean "not set" so flag defaults and
// ApplyDefaults can fill them in.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-pathmetrics/pkg/stats"
	"github.com/dd0wney/cluso-pathmetrics/pkg/validation"
)

// RunConfig describes one statistics run: which edge list to load, which
// sources to analyze, and how to present the results.
type RunConfig struct {
	// File is the path to the edge-list file (tab or space separated pairs).
	File string `yaml:"file"`

	// SkipLines is the number of header lines to skip before edge records.
	// SNAP dumps carry four comment lines (default: 4).
	SkipLines int `yaml:"skip_lines"`

	// Source is the node statistics are computed from when Sources is empty.
	Source uint64 `yaml:"source"`

	// Sources lists multiple source nodes for a batch run. When set it
	// takes precedence over Source.
	Sources []uint64 `yaml:"sources"`

	// Denominator selects the node population that divides path-length
	// sums: edge-sources, reachable, or distinct (default: edge-sources).
	Denominator string `yaml:"denominator"`

	// Workers is the batch-run concurrency (default: 4).
	Workers int `yaml:"workers"`

	// Top limits the distance-distribution rows in text reports (default: 10).
	Top int `yaml:"top"`

	// Format is the report output format: text or json (default: text).
	Format string `yaml:"format"`

	// Cache is an optional snapshot path. When set, loads read the
	// snapshot if present and write one after parsing the edge list.
	Cache string `yaml:"cache"`

	// ListenAddr is the HTTP listen address for server mode (default: :8080).
	ListenAddr string `yaml:"listen_addr"`
}

// DefaultRunConfig returns a configuration with every default applied.
func DefaultRunConfig() *RunConfig {
	return &RunConfig{
		SkipLines:   4,
		Denominator: string(stats.DenomEdgeSources),
		Workers:     4,
		Top:         10,
		Format:      "text",
		ListenAddr:  ":8080",
	}
}

// Load reads a YAML config file. Unmarshalling starts from
// DefaultRunConfig so omitted fields keep their defaults while an
// explicit zero (skip_lines: 0) still takes effect.
func Load(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultRunConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}

// ApplyDefaults fills unset fields with their documented defaults.
// SkipLines is left alone because zero is a valid setting there.
func (c *RunConfig) ApplyDefaults() {
	c.Denominator = validation.DefaultOr(c.Denominator, string(stats.DenomEdgeSources))
	c.Workers = validation.DefaultOrInt(c.Workers, 4)
	c.Top = validation.DefaultOrInt(c.Top, 10)
	c.Format = validation.DefaultOr(c.Format, "text")
	c.ListenAddr = validation.DefaultOr(c.ListenAddr, ":8080")
}

// Validate checks the configuration is runnable.
func (c *RunConfig) Validate() error {
	return validation.NewConfigValidator("RunConfig").
		Required("File", c.File).
		NonNegative("SkipLines", c.SkipLines).
		Positive("Workers", c.Workers).
		MaxInt("Workers", c.Workers, validation.MaxWorkers).
		Positive("Top", c.Top).
		OneOf("Format", c.Format, []string{"text", "json"}).
		Custom("Denominator", func() error {
			if !stats.Denominator(c.Denominator).Valid() {
				return fmt.Errorf("unknown denominator %q", c.Denominator)
			}
			return nil
		}).
		When(len(c.Sources) > 0, func(cv *validation.ConfigValidator) {
			cv.Custom("Sources", func() error {
				return validation.ValidateBatchSources(len(c.Sources))
			})
		}).
		Validate()
}
