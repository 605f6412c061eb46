package config

import (
	"fmt"
	"net/url"
	"time"
)

// Config holds the complete application configuration
type Config struct {
	Version  string         `yaml:"version" json:"version"`
	Backend  BackendConfig  `yaml:"backend" json:"backend"`
	Analysis AnalysisConfig `yaml:"analysis" json:"analysis"`
	Export   ExportConfig   `yaml:"export" json:"export"`
	Output   OutputConfig   `yaml:"output" json:"output"`
	UI       UIConfig       `yaml:"ui" json:"ui"`
}

// BackendConfig configures the sentiment service connection
type BackendConfig struct {
	BaseURL   string        `yaml:"base_url" json:"base_url"`     // service root URL
	Timeout   time.Duration `yaml:"timeout" json:"timeout"`       // 0 keeps the transport default
	UserAgent string        `yaml:"user_agent" json:"user_agent"` // User-Agent header
}

// AnalysisConfig configures analysis behavior
type AnalysisConfig struct {
	MaxRows        int  `yaml:"max_rows" json:"max_rows"`               // 0 sends every row
	VaderBreakdown bool `yaml:"vader_breakdown" json:"vader_breakdown"` // fetch /vader-dashboard
}

// ExportConfig configures exported files
type ExportConfig struct {
	Directory   string `yaml:"directory" json:"directory"`
	ChartWidth  int    `yaml:"chart_width" json:"chart_width"`
	ChartHeight int    `yaml:"chart_height" json:"chart_height"`
}

// OutputConfig configures output formatting and display
type OutputConfig struct {
	DefaultFormat   string `yaml:"default_format" json:"default_format"`     // json|text|markdown|csv
	ColorMode       string `yaml:"color_mode" json:"color_mode"`             // auto|always|never
	Verbose         bool   `yaml:"verbose" json:"verbose"`                   // default verbosity
	TimestampFormat string `yaml:"timestamp_format" json:"timestamp_format"` // time format string
}

// UIConfig configures the interactive terminal UI
type UIConfig struct {
	Theme       string `yaml:"theme" json:"theme"`               // default|dark|light
	TableHeight int    `yaml:"table_height" json:"table_height"` // visible result rows
	LogFile     string `yaml:"log_file" json:"log_file"`         // log destination while the TUI runs
}

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Backend: BackendConfig{
			BaseURL:   "http://localhost:8000",
			Timeout:   0,
			UserAgent: "tweetsense",
		},
		Analysis: AnalysisConfig{
			MaxRows:        0,
			VaderBreakdown: false,
		},
		Export: ExportConfig{
			Directory:   ".",
			ChartWidth:  800,
			ChartHeight: 520,
		},
		Output: OutputConfig{
			DefaultFormat:   "text",
			ColorMode:       "auto",
			Verbose:         false,
			TimestampFormat: "2006-01-02 15:04:05",
		},
		UI: UIConfig{
			Theme:       "default",
			TableHeight: 12,
			LogFile:     "",
		},
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.validateBackendConfig(); err != nil {
		return err
	}
	if err := c.validateAnalysisConfig(); err != nil {
		return err
	}
	if err := c.validateExportConfig(); err != nil {
		return err
	}
	if err := c.validateOutputConfig(); err != nil {
		return err
	}
	if err := c.validateUIConfig(); err != nil {
		return err
	}
	return nil
}

// validateBackendConfig validates backend connection settings
func (c *Config) validateBackendConfig() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend base_url is required")
	}
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid backend base_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid backend base_url: %s (scheme must be http or https)", c.Backend.BaseURL)
	}
	if c.Backend.Timeout < 0 {
		return fmt.Errorf("backend timeout must be non-negative")
	}
	return nil
}

// validateAnalysisConfig validates analysis-related configuration
func (c *Config) validateAnalysisConfig() error {
	if c.Analysis.MaxRows < 0 {
		return fmt.Errorf("max_rows must be non-negative")
	}
	return nil
}

// validateExportConfig validates export-related configuration
func (c *Config) validateExportConfig() error {
	if c.Export.ChartWidth < 320 {
		return fmt.Errorf("chart_width must be at least 320")
	}
	if c.Export.ChartHeight < 240 {
		return fmt.Errorf("chart_height must be at least 240")
	}
	return nil
}

// validateOutputConfig validates output-related configuration
func (c *Config) validateOutputConfig() error {
	if c.Output.DefaultFormat != "" {
		validFormats := map[string]bool{
			"json":     true,
			"text":     true,
			"markdown": true,
			"csv":      true,
		}
		if !validFormats[c.Output.DefaultFormat] {
			return fmt.Errorf("invalid output format: %s (must be one of: json, text, markdown, csv)", c.Output.DefaultFormat)
		}
	}
	if c.Output.ColorMode != "" {
		validColorModes := map[string]bool{
			"auto":   true,
			"always": true,
			"never":  true,
		}
		if !validColorModes[c.Output.ColorMode] {
			return fmt.Errorf("invalid color mode: %s (must be one of: auto, always, never)", c.Output.ColorMode)
		}
	}
	return nil
}

// validateUIConfig validates terminal UI configuration
func (c *Config) validateUIConfig() error {
	if c.UI.Theme != "" {
		validThemes := map[string]bool{
			"default": true,
			"dark":    true,
			"light":   true,
		}
		if !validThemes[c.UI.Theme] {
			return fmt.Errorf("invalid theme: %s (must be one of: default, dark, light)", c.UI.Theme)
		}
	}
	if c.UI.TableHeight < 1 {
		return fmt.Errorf("table_height must be greater than 0")
	}
	return nil
}
