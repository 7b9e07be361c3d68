package config

import (
	_ "embed"
)

//go:embed defaults/bench.yaml
var defaultBenchYAML []byte

// DefaultBenchConfig returns the default benchmark configuration.
func DefaultBenchConfig() BenchConfig {
	return BenchConfig{
		Strategy: "serial",
		Runs:     1,
		Workers:  0,
		Seed:     0,
		Save:     false,
		DBPath:   "~/.mandelbench/runs.db",
		LogLevel: "warn",
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultBenchYAML
}
