// Package config provides Viper-based hierarchical configuration management.
package config

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Data struct {
		ReferenceDir     string `mapstructure:"reference_dir" yaml:"reference_dir"`
		RawFile          string `mapstructure:"raw_file" yaml:"raw_file"`
		ConsolidatedFile string `mapstructure:"consolidated_file" yaml:"consolidated_file"`
	} `mapstructure:"data" yaml:"data"`

	Currency struct {
		LocalCode string `mapstructure:"local_code" yaml:"local_code"`
	} `mapstructure:"currency" yaml:"currency"`

	Report struct {
		TopMissing int    `mapstructure:"top_missing" yaml:"top_missing"`
		Format     string `mapstructure:"format" yaml:"format"`
		File       string `mapstructure:"file" yaml:"file"`
	} `mapstructure:"report" yaml:"report"`
}

// InitializeConfig initializes Viper configuration with hierarchical
// loading: defaults, then an optional config file, then ICEERP_-prefixed
// environment variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.ice-erp")
	v.AddConfigPath(".ice-erp")
	v.AddConfigPath(".")

	v.SetEnvPrefix("ICEERP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars; a broken config file
			// should not silently change behavior.
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("data.reference_dir", "reference")
	v.SetDefault("data.raw_file", "raw_transactions.csv")
	v.SetDefault("data.consolidated_file", "consolidated_transactions.csv")

	v.SetDefault("currency.local_code", "GEL")

	v.SetDefault("report.top_missing", 10)
	v.SetDefault("report.format", "yaml")
	v.SetDefault("report.file", "")
}

func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len(strings.TrimSpace(config.Currency.LocalCode)) != 3 {
		return fmt.Errorf("currency.local_code must be a 3-letter code, got: %s", config.Currency.LocalCode)
	}

	if config.Report.TopMissing < 1 {
		return fmt.Errorf("report.top_missing must be at least 1, got: %d", config.Report.TopMissing)
	}

	if config.Report.Format != "json" && config.Report.Format != "yaml" {
		return fmt.Errorf("invalid report format: %s (must be 'json' or 'yaml')", config.Report.Format)
	}

	return nil
}
