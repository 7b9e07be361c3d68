// Package config provides YAML-based benchmark configuration loading and
// named run presets.
//
// Grid size and iteration bound are fixed in package mandel and are not
// part of the configuration.
package config

import (
	"fmt"
	"strings"
)

// BenchConfig contains everything the run command can be configured with.
type BenchConfig struct {
	Strategy string `yaml:"strategy"`  // Registry ID of the evaluation strategy
	Runs     int    `yaml:"runs"`      // Timed passes per session; best-of is reported
	Workers  int    `yaml:"workers"`   // Goroutines for parallel strategies, 0 = GOMAXPROCS
	Seed     uint64 `yaml:"seed"`      // Permutation seed for shuffled order, 0 = default
	Save     bool   `yaml:"save"`      // Persist runs to the database
	DBPath   string `yaml:"db_path"`   // SQLite database path
	LogLevel string `yaml:"log_level"` // debug, info, warn or error
}

// validLogLevels lists the accepted log_level values.
var validLogLevels = []string{"debug", "info", "warn", "error"}

// Validate checks the config for values the harness cannot use.
func (c BenchConfig) Validate() error {
	if c.Strategy == "" {
		return fmt.Errorf("config: strategy must not be empty")
	}
	if c.Runs < 0 {
		return fmt.Errorf("config: runs must not be negative, got %d", c.Runs)
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: workers must not be negative, got %d", c.Workers)
	}
	if c.LogLevel != "" && !isValidLogLevel(c.LogLevel) {
		return fmt.Errorf("config: unknown log level %q (want one of %s)",
			c.LogLevel, strings.Join(validLogLevels, ", "))
	}
	return nil
}

func isValidLogLevel(level string) bool {
	for _, l := range validLogLevels {
		if strings.EqualFold(level, l) {
			return true
		}
	}
	return false
}

// Preset represents a named run profile.
type Preset string

const (
	PresetQuick    Preset = "quick"    // One serial pass
	PresetStandard Preset = "standard" // Best of 20 serial passes
	PresetParallel Preset = "parallel" // Best of 20 row-band passes
)

// Presets returns the known presets in display order.
func Presets() []Preset {
	return []Preset{PresetQuick, PresetStandard, PresetParallel}
}

// ApplyPreset modifies the config based on a preset.
// Unknown presets return an error and leave cfg untouched.
func ApplyPreset(cfg *BenchConfig, preset Preset) error {
	switch preset {
	case PresetQuick:
		cfg.Strategy = "serial"
		cfg.Runs = 1
	case PresetStandard:
		cfg.Strategy = "serial"
		cfg.Runs = 20
	case PresetParallel:
		cfg.Strategy = "rows"
		cfg.Runs = 20
	default:
		return fmt.Errorf("config: unknown preset %q", preset)
	}
	return nil
}
