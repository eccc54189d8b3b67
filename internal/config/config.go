// Package config binds the recognized configuration options (§6) from
// CLI flags, an optional YAML config file, and defaults, using
// github.com/spf13/viper the way AleutianLocal's cmd/aleutian CLI binds
// its stack config from config.yaml.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the options recognized by the pipeline.
type Config struct {
	IncludeMissing bool          `mapstructure:"include_missing"`
	TimeBudgetS    int           `mapstructure:"time_budget_s"`
	WeightAvail    int           `mapstructure:"w_avail"`
	WeightMeet     int           `mapstructure:"w_meet"`
	WeightSection  int           `mapstructure:"w_section"`
	Seed           int64         `mapstructure:"seed"`
	Workers        int           `mapstructure:"workers"`
}

// TimeBudget returns the configured solver wall-clock budget as a Duration.
func (c Config) TimeBudget() time.Duration {
	return time.Duration(c.TimeBudgetS) * time.Second
}

// Defaults returns the spec's default configuration.
func Defaults() Config {
	return Config{
		IncludeMissing: false,
		TimeBudgetS:    600,
		WeightAvail:    8,
		WeightMeet:     4,
		WeightSection:  1,
		Seed:           0,
		Workers:        0, // 0 means runtime.NumCPU() at call sites
	}
}

// Load reads defaults, then the YAML file at path when path is non-empty (a
// missing or unreadable file is an error), then lets viper's already-bound flags/env override both. v is
// expected to have had cobra flags bound into it by the caller (BindPFlag).
func Load(v *viper.Viper, path string) (Config, error) {
	def := Defaults()
	v.SetDefault("include_missing", def.IncludeMissing)
	v.SetDefault("time_budget_s", def.TimeBudgetS)
	v.SetDefault("w_avail", def.WeightAvail)
	v.SetDefault("w_meet", def.WeightMeet)
	v.SetDefault("w_section", def.WeightSection)
	v.SetDefault("seed", def.Seed)
	v.SetDefault("workers", def.Workers)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling configuration: %w", err)
	}
	if cfg.WeightAvail <= cfg.WeightMeet || cfg.WeightMeet <= cfg.WeightSection || cfg.WeightSection <= 0 {
		return Config{}, fmt.Errorf("soft weights must satisfy w_avail(%d) > w_meet(%d) > w_section(%d) > 0",
			cfg.WeightAvail, cfg.WeightMeet, cfg.WeightSection)
	}
	if cfg.TimeBudgetS <= 0 {
		return Config{}, fmt.Errorf("time_budget_s must be > 0, got %d", cfg.TimeBudgetS)
	}
	return cfg, nil
}
