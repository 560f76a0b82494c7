package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# P&L Journal Configuration

[journal]
# Records with total P&L at or above this value are dropped by the
# outlier filter
outlier_threshold = 10000.0
# Apply the outlier filter to reports by default (use --raw to bypass)
filter_outliers = true
# Trailing window size for rolling metrics
rolling_window = 20
# Trailing window size for the volatility series
volatility_window = 20

[database]
# SQLite database path; defaults to journal.db next to this file
path = ""

[ui]
# Enable colored output
color_enabled = true
# Date format for display
date_format = "02-Jan-2006"
`

func createTemplateConfig(configDir, name string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, name+".toml")
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("writing config template: %w", err)
	}

	return nil
}
