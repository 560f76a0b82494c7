// Package config provides configuration management for the journal application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Journal  JournalConfig  `mapstructure:"journal"`
	Database DatabaseConfig `mapstructure:"database"`
	UI       UIConfig       `mapstructure:"ui"`
}

// JournalConfig holds statistics and reporting configuration.
type JournalConfig struct {
	OutlierThreshold float64 `mapstructure:"outlier_threshold"`
	FilterOutliers   bool    `mapstructure:"filter_outliers"`
	RollingWindow    int     `mapstructure:"rolling_window"`
	VolatilityWindow int     `mapstructure:"volatility_window"`
}

// DatabaseConfig holds persistence configuration.
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// UIConfig holds output-related configuration.
type UIConfig struct {
	ColorEnabled bool   `mapstructure:"color_enabled"`
	DateFormat   string `mapstructure:"date_format"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/pnl-journal"
	}
	return filepath.Join(home, ".config", "pnl-journal")
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := &Config{}

	if err := loadConfigFile(configDir, "config", cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	applyEnvOverrides(cfg)

	if cfg.Database.Path == "" {
		cfg.Database.Path = filepath.Join(configDir, "journal.db")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func loadConfigFile(configDir, name string, target interface{}) error {
	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	v.SetDefault("journal.outlier_threshold", 10000.0)
	v.SetDefault("journal.filter_outliers", true)
	v.SetDefault("journal.rolling_window", 20)
	v.SetDefault("journal.volatility_window", 20)
	v.SetDefault("ui.color_enabled", true)
	v.SetDefault("ui.date_format", "02-Jan-2006")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// First run: write a template, then fall through to defaults
			if werr := createTemplateConfig(configDir, name); werr != nil {
				return werr
			}
			return v.Unmarshal(target)
		}
		return err
	}

	return v.Unmarshal(target)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PNLJ_DB_PATH"); v != "" {
		cfg.Database.Path = v
	}
	if v := os.Getenv("PNLJ_OUTLIER_THRESHOLD"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Journal.OutlierThreshold = f
		}
	}
	if v := os.Getenv("PNLJ_ROLLING_WINDOW"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Journal.RollingWindow = n
		}
	}
	if v := os.Getenv("NO_COLOR"); v != "" {
		cfg.UI.ColorEnabled = false
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Journal.OutlierThreshold <= 0 {
		return fmt.Errorf("outlier_threshold must be positive")
	}
	if c.Journal.RollingWindow <= 0 {
		return fmt.Errorf("rolling_window must be positive")
	}
	if c.Journal.VolatilityWindow <= 0 {
		return fmt.Errorf("volatility_window must be positive")
	}
	return nil
}
