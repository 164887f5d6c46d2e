// Package config loads the bankmerge configuration file.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config is the top-level bankmerge configuration.
type Config struct {
	// AccountMapping maps account numbers to display names. Unmapped
	// accounts render as "Unknown".
	AccountMapping map[string]string `mapstructure:"account_mapping"`
	// DefaultBank is used when --bank is not given.
	DefaultBank string `mapstructure:"default_bank"`
	Output      Output `mapstructure:"output"`
}

// Output controls where run artifacts are written.
type Output struct {
	Dir         string `mapstructure:"dir"`
	TableFile   string `mapstructure:"table_file"`
	SummaryFile string `mapstructure:"summary_file"`
}

// Load reads a configuration file (YAML or TOML, by extension) and applies
// defaults. An empty path returns the defaults alone.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("default_bank", "")
	v.SetDefault("output.dir", ".")
	v.SetDefault("output.table_file", "consolidated_statements.csv")
	v.SetDefault("output.summary_file", "consolidation_summary.txt")
}
