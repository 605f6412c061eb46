package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/subosito/gotenv"
	"gopkg.in/yaml.v3"
)

// ConfigPaths defines the config file search paths in priority order
var ConfigPaths = []string{
	"./.tweetsense.yaml",               // Project-specific config (highest priority)
	"~/.config/tweetsense/config.yaml", // User config
	"/etc/tweetsense/config.yaml",      // System config (lowest priority)
}

// EnvFiles are dotenv files loaded before environment overrides.
// Variables already present in the environment win.
var EnvFiles = []string{".env"}

// EnvPrefix prefixes every environment override
const EnvPrefix = "TWEETSENSE_"

// Loader handles configuration loading with priority merging
type Loader struct {
	configPaths []string
	envFiles    []string
}

// NewLoader creates a new config loader
func NewLoader() *Loader {
	return &Loader{
		configPaths: ConfigPaths,
		envFiles:    EnvFiles,
	}
}

// LoadConfig loads configuration from multiple sources with priority order:
// 1. Command line flags (handled by caller)
// 2. Environment variables, including those from .env
// 3. ./.tweetsense.yaml
// 4. ~/.config/tweetsense/config.yaml
// 5. /etc/tweetsense/config.yaml
// 6. Built-in defaults
func (l *Loader) LoadConfig(customPath string) (*Config, error) {
	config := DefaultConfig()

	if customPath != "" {
		if err := validateConfigPath(customPath); err != nil {
			return nil, fmt.Errorf("invalid config path: %w", err)
		}
		if err := l.loadFromFile(config, customPath); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", customPath, err)
		}
	} else {
		// Load lowest priority first so higher ones overwrite
		for i := len(l.configPaths) - 1; i >= 0; i-- {
			expandedPath := expandPath(l.configPaths[i])
			if fileExists(expandedPath) {
				if err := l.loadFromFile(config, expandedPath); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: Failed to load config from %s: %v\n", expandedPath, err)
				}
			}
		}
	}

	if err := l.loadEnvFiles(); err != nil {
		return nil, err
	}

	if err := l.applyEnvOverrides(config); err != nil {
		return nil, fmt.Errorf("failed to apply environment overrides: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// loadEnvFiles loads dotenv files that exist
func (l *Loader) loadEnvFiles() error {
	for _, path := range l.envFiles {
		if !fileExists(path) {
			continue
		}
		if err := gotenv.Load(path); err != nil {
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// loadFromFile loads configuration from a YAML file and merges it with existing config
func (l *Loader) loadFromFile(config *Config, path string) error {
	// #nosec G304 - path is validated by validateConfigPath() or comes from ConfigPaths
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	var fileConfig Config
	if err := yaml.Unmarshal(data, &fileConfig); err != nil {
		return fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Booleans have no zero sentinel, so record which keys were written
	var raw map[string]map[string]interface{}
	_ = yaml.Unmarshal(data, &raw)

	mergeConfigs(config, &fileConfig, keySet(raw))

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config
func (l *Loader) applyEnvOverrides(config *Config) error {
	for envVar, setter := range envSetters(config) {
		if value := os.Getenv(envVar); value != "" {
			if err := setter(value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar, err)
			}
		}
	}

	return nil
}

// EnvVars returns the name of every environment override, sorted
func EnvVars() []string {
	setters := envSetters(DefaultConfig())
	names := make([]string, 0, len(setters))
	for name := range setters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// envSetters maps each override variable to the field of config it sets
func envSetters(config *Config) map[string]func(string) error {
	return map[string]func(string) error{
		// Backend Config
		"TWEETSENSE_BACKEND_URL":        func(v string) error { config.Backend.BaseURL = v; return nil },
		"TWEETSENSE_BACKEND_TIMEOUT":    func(v string) error { return parseDuration(v, &config.Backend.Timeout) },
		"TWEETSENSE_BACKEND_USER_AGENT": func(v string) error { config.Backend.UserAgent = v; return nil },

		// Analysis Config
		"TWEETSENSE_ANALYSIS_MAX_ROWS":        func(v string) error { return parseInt(v, &config.Analysis.MaxRows) },
		"TWEETSENSE_ANALYSIS_VADER_BREAKDOWN": func(v string) error { return parseBool(v, &config.Analysis.VaderBreakdown) },

		// Export Config
		"TWEETSENSE_EXPORT_DIRECTORY":    func(v string) error { config.Export.Directory = v; return nil },
		"TWEETSENSE_EXPORT_CHART_WIDTH":  func(v string) error { return parseInt(v, &config.Export.ChartWidth) },
		"TWEETSENSE_EXPORT_CHART_HEIGHT": func(v string) error { return parseInt(v, &config.Export.ChartHeight) },

		// Output Config
		"TWEETSENSE_OUTPUT_DEFAULT_FORMAT":   func(v string) error { config.Output.DefaultFormat = v; return nil },
		"TWEETSENSE_OUTPUT_COLOR_MODE":       func(v string) error { config.Output.ColorMode = v; return nil },
		"TWEETSENSE_OUTPUT_VERBOSE":          func(v string) error { return parseBool(v, &config.Output.Verbose) },
		"TWEETSENSE_OUTPUT_TIMESTAMP_FORMAT": func(v string) error { config.Output.TimestampFormat = v; return nil },

		// UI Config
		"TWEETSENSE_UI_THEME":        func(v string) error { config.UI.Theme = v; return nil },
		"TWEETSENSE_UI_TABLE_HEIGHT": func(v string) error { return parseInt(v, &config.UI.TableHeight) },
		"TWEETSENSE_UI_LOG_FILE":     func(v string) error { config.UI.LogFile = v; return nil },
	}
}

// GetConfigPaths returns the list of configuration file paths that will be searched
func GetConfigPaths() []string {
	paths := make([]string, 0, len(ConfigPaths))
	for _, path := range ConfigPaths {
		paths = append(paths, expandPath(path))
	}
	return paths
}

// FindConfigFile finds the first existing config file in the search paths
func FindConfigFile() (string, bool) {
	for _, path := range ConfigPaths {
		expandedPath := expandPath(path)
		if fileExists(expandedPath) {
			return expandedPath, true
		}
	}
	return "", false
}

// Helper functions

// validateConfigPath validates that a config path is safe to read
func validateConfigPath(path string) error {
	cleanPath := filepath.Clean(path)

	if strings.Contains(cleanPath, "..") {
		return fmt.Errorf("path traversal not allowed")
	}

	ext := strings.ToLower(filepath.Ext(cleanPath))
	if ext != ".yaml" && ext != ".yml" {
		return fmt.Errorf("config file must have .yaml or .yml extension")
	}

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to resolve absolute path: %w", err)
	}

	if strings.HasPrefix(absPath, "/etc/passwd") ||
		strings.HasPrefix(absPath, "/etc/shadow") ||
		strings.HasPrefix(absPath, "/proc/") ||
		strings.HasPrefix(absPath, "/sys/") {
		return fmt.Errorf("access to system files not allowed")
	}

	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// keys records "section.key" entries present in a YAML document
type keys map[string]bool

func keySet(raw map[string]map[string]interface{}) keys {
	set := make(keys)
	for section, values := range raw {
		for key := range values {
			set[section+"."+key] = true
		}
	}
	return set
}

// mergeConfigs merges source config into destination config.
// Non-zero values from source overwrite destination; booleans are
// merged only when the key was present in the file.
func mergeConfigs(dst, src *Config, set keys) {
	if src.Version != "" {
		dst.Version = src.Version
	}

	mergeBackendConfig(&dst.Backend, &src.Backend)
	mergeAnalysisConfig(&dst.Analysis, &src.Analysis, set)
	mergeExportConfig(&dst.Export, &src.Export)
	mergeOutputConfig(&dst.Output, &src.Output, set)
	mergeUIConfig(&dst.UI, &src.UI)
}

// mergeBackendConfig merges backend configuration
func mergeBackendConfig(dst, src *BackendConfig) {
	if src.BaseURL != "" {
		dst.BaseURL = src.BaseURL
	}
	if src.Timeout != 0 {
		dst.Timeout = src.Timeout
	}
	if src.UserAgent != "" {
		dst.UserAgent = src.UserAgent
	}
}

// mergeAnalysisConfig merges analysis configuration
func mergeAnalysisConfig(dst, src *AnalysisConfig, set keys) {
	if src.MaxRows != 0 {
		dst.MaxRows = src.MaxRows
	}
	mergeIfSet(&dst.VaderBreakdown, src.VaderBreakdown, set["analysis.vader_breakdown"])
}

// mergeExportConfig merges export configuration
func mergeExportConfig(dst, src *ExportConfig) {
	if src.Directory != "" {
		dst.Directory = src.Directory
	}
	if src.ChartWidth != 0 {
		dst.ChartWidth = src.ChartWidth
	}
	if src.ChartHeight != 0 {
		dst.ChartHeight = src.ChartHeight
	}
}

// mergeOutputConfig merges output configuration
func mergeOutputConfig(dst, src *OutputConfig, set keys) {
	if src.DefaultFormat != "" {
		dst.DefaultFormat = src.DefaultFormat
	}
	if src.ColorMode != "" {
		dst.ColorMode = src.ColorMode
	}
	if src.TimestampFormat != "" {
		dst.TimestampFormat = src.TimestampFormat
	}
	mergeIfSet(&dst.Verbose, src.Verbose, set["output.verbose"])
}

// mergeUIConfig merges terminal UI configuration
func mergeUIConfig(dst, src *UIConfig) {
	if src.Theme != "" {
		dst.Theme = src.Theme
	}
	if src.TableHeight != 0 {
		dst.TableHeight = src.TableHeight
	}
	if src.LogFile != "" {
		dst.LogFile = src.LogFile
	}
}

func mergeIfSet(dst *bool, src, present bool) {
	if present {
		*dst = src
	}
}

// Type conversion helpers

func parseInt(s string, dst *int) error {
	val, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseBool(s string, dst *bool) error {
	val, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}

func parseDuration(s string, dst *time.Duration) error {
	val, err := time.ParseDuration(s)
	if err != nil {
		return err
	}
	*dst = val
	return nil
}
