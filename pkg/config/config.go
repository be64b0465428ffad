// Package config loads optional analyzer settings from a heft.toml file.
// Command-line flags take precedence over anything configured here.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultPath is consulted when no --config flag is given.
const DefaultPath = "heft.toml"

// Config holds analyzer defaults.
type Config struct {
	Resolve Resolve `toml:"resolve"`
	Report  Report  `toml:"report"`
}

// Resolve configures dependency resolution.
type Resolve struct {
	// Workers bounds the git worker pool; zero selects the default of
	// half the host's CPUs.
	Workers int `toml:"workers"`
	// Cache is a default dependency-cache path.
	Cache string `toml:"cache"`
}

// Report configures report output.
type Report struct {
	// Top is the number of entries in top-N listings.
	Top int `toml:"top"`
}

// Load reads the config file at path. A missing file yields defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{Report: Report{Top: 10}}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if cfg.Report.Top <= 0 {
		cfg.Report.Top = 10
	}
	return cfg, nil
}
