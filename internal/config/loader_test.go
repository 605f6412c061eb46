package config

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"
)

// newIsolatedLoader ignores the user's real config files and .env
func newIsolatedLoader(t *testing.T) *Loader {
	t.Helper()
	return &Loader{
		configPaths: []string{filepath.Join(t.TempDir(), "absent.yaml")},
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test-config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write test config file: %v", err)
	}
	return path
}

func TestNewLoader(t *testing.T) {
	loader := NewLoader()
	if loader == nil {
		t.Fatal("NewLoader returned nil")
	}
	if len(loader.configPaths) != 3 {
		t.Errorf("Expected 3 config paths, got %d", len(loader.configPaths))
	}
	if len(loader.envFiles) != 1 || loader.envFiles[0] != ".env" {
		t.Errorf("Expected .env to be loaded, got %v", loader.envFiles)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := newIsolatedLoader(t).LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load default config: %v", err)
	}

	if cfg.Backend.BaseURL != "http://localhost:8000" {
		t.Errorf("Expected default backend, got %s", cfg.Backend.BaseURL)
	}
	if cfg.Output.DefaultFormat != "text" {
		t.Errorf("Expected default output format text, got %s", cfg.Output.DefaultFormat)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `version: "1.0"
backend:
  base_url: "http://analysis.internal:9000"
  timeout: 45s
analysis:
  max_rows: 500
  vader_breakdown: false
output:
  default_format: "json"
  verbose: true
ui:
  theme: "dark"
`)

	cfg, err := newIsolatedLoader(t).LoadConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config from file: %v", err)
	}

	if cfg.Backend.BaseURL != "http://analysis.internal:9000" {
		t.Errorf("Expected custom base URL, got %s", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Timeout != 45*time.Second {
		t.Errorf("Expected backend timeout 45s, got %v", cfg.Backend.Timeout)
	}
	if cfg.Analysis.MaxRows != 500 {
		t.Errorf("Expected max rows 500, got %d", cfg.Analysis.MaxRows)
	}
	if cfg.Analysis.VaderBreakdown {
		t.Error("Expected VADER breakdown to be disabled")
	}
	if cfg.Output.DefaultFormat != "json" {
		t.Errorf("Expected output format json, got %s", cfg.Output.DefaultFormat)
	}
	if !cfg.Output.Verbose {
		t.Errorf("Expected verbose to be true")
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("Expected dark theme, got %s", cfg.UI.Theme)
	}
	if cfg.UI.TableHeight != 12 {
		t.Errorf("Expected default table height to survive, got %d", cfg.UI.TableHeight)
	}
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := writeConfig(t, `version: "1.0"
backend:
  base_url: "http://localhost:8000
  timeout: 60s
`)

	if _, err := newIsolatedLoader(t).LoadConfig(path); err == nil {
		t.Error("Expected error loading invalid YAML config, but got none")
	}
}

func TestLoadConfigSearchPathPriority(t *testing.T) {
	dir := t.TempDir()
	low := filepath.Join(dir, "system.yaml")
	high := filepath.Join(dir, "project.yaml")

	if err := os.WriteFile(low, []byte("backend:\n  base_url: \"http://low:1\"\nui:\n  theme: \"light\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(high, []byte("backend:\n  base_url: \"http://high:2\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	loader := &Loader{configPaths: []string{high, low}}
	cfg, err := loader.LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Backend.BaseURL != "http://high:2" {
		t.Errorf("Expected highest priority base URL, got %s", cfg.Backend.BaseURL)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("Expected lower priority theme to remain, got %s", cfg.UI.Theme)
	}
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("TWEETSENSE_BACKEND_URL", "https://env.example.com")
	t.Setenv("TWEETSENSE_BACKEND_TIMEOUT", "5s")
	t.Setenv("TWEETSENSE_OUTPUT_VERBOSE", "true")
	t.Setenv("TWEETSENSE_ANALYSIS_MAX_ROWS", "250")
	t.Setenv("TWEETSENSE_ANALYSIS_VADER_BREAKDOWN", "false")
	t.Setenv("TWEETSENSE_UI_LOG_FILE", "/tmp/tweetsense.log")

	loader := NewLoader()
	cfg := DefaultConfig()

	if err := loader.applyEnvOverrides(cfg); err != nil {
		t.Fatalf("Failed to apply env overrides: %v", err)
	}

	if cfg.Backend.BaseURL != "https://env.example.com" {
		t.Errorf("Expected env base URL, got %s", cfg.Backend.BaseURL)
	}
	if cfg.Backend.Timeout != 5*time.Second {
		t.Errorf("Expected timeout 5s, got %v", cfg.Backend.Timeout)
	}
	if !cfg.Output.Verbose {
		t.Errorf("Expected verbose to be true")
	}
	if cfg.Analysis.MaxRows != 250 {
		t.Errorf("Expected max rows 250, got %d", cfg.Analysis.MaxRows)
	}
	if cfg.Analysis.VaderBreakdown {
		t.Error("Expected VADER breakdown disabled")
	}
	if cfg.UI.LogFile != "/tmp/tweetsense.log" {
		t.Errorf("Expected log file from env, got %s", cfg.UI.LogFile)
	}
}

func TestApplyEnvOverridesInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		envVar string
		value  string
	}{
		{"invalid int", "TWEETSENSE_ANALYSIS_MAX_ROWS", "not-a-number"},
		{"invalid bool", "TWEETSENSE_OUTPUT_VERBOSE", "not-a-bool"},
		{"invalid duration", "TWEETSENSE_BACKEND_TIMEOUT", "not-a-duration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.envVar, tt.value)

			if err := NewLoader().applyEnvOverrides(DefaultConfig()); err == nil {
				t.Error("Expected error for invalid env var value, but got none")
			}
		})
	}
}

func TestLoadConfigDotEnv(t *testing.T) {
	// Register restore, then clear so the .env value is the only source
	t.Setenv("TWEETSENSE_UI_THEME", "")
	_ = os.Unsetenv("TWEETSENSE_UI_THEME")
	t.Setenv("TWEETSENSE_BACKEND_URL", "https://from-env.example.com")

	envPath := filepath.Join(t.TempDir(), ".env")
	content := "TWEETSENSE_UI_THEME=light\nTWEETSENSE_BACKEND_URL=http://from-dotenv:8000\n"
	if err := os.WriteFile(envPath, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write .env: %v", err)
	}

	loader := newIsolatedLoader(t)
	loader.envFiles = []string{envPath}

	cfg, err := loader.LoadConfig("")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.UI.Theme != "light" {
		t.Errorf("Expected theme from .env, got %s", cfg.UI.Theme)
	}
	if cfg.Backend.BaseURL != "https://from-env.example.com" {
		t.Errorf("Expected real environment to win over .env, got %s", cfg.Backend.BaseURL)
	}
}

func TestParseDuration(t *testing.T) {
	var duration time.Duration

	if err := parseDuration("30s", &duration); err != nil {
		t.Errorf("Failed to parse duration: %v", err)
	}
	if duration != 30*time.Second {
		t.Errorf("Expected 30s, got %v", duration)
	}

	if err := parseDuration("invalid", &duration); err == nil {
		t.Error("Expected error for invalid duration, but got none")
	}
}

func TestParseInt(t *testing.T) {
	var value int

	if err := parseInt("42", &value); err != nil {
		t.Errorf("Failed to parse int: %v", err)
	}
	if value != 42 {
		t.Errorf("Expected 42, got %d", value)
	}

	if err := parseInt("not-a-number", &value); err == nil {
		t.Error("Expected error for invalid int, but got none")
	}
}

func TestParseBool(t *testing.T) {
	var value bool

	if err := parseBool("true", &value); err != nil {
		t.Errorf("Failed to parse bool: %v", err)
	}
	if !value {
		t.Errorf("Expected true, got %v", value)
	}

	if err := parseBool("not-a-bool", &value); err == nil {
		t.Error("Expected error for invalid bool, but got none")
	}
}

func TestFileExists(t *testing.T) {
	if fileExists("/path/that/does/not/exist") {
		t.Error("Expected file to not exist, but fileExists returned true")
	}

	tempFile := filepath.Join(t.TempDir(), "test-file")
	if err := os.WriteFile(tempFile, []byte("test"), 0o600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	if !fileExists(tempFile) {
		t.Error("Expected file to exist, but fileExists returned false")
	}
}

func TestValidateConfigPath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
		errMsg  string
	}{
		{name: "valid yaml file", path: "config.yaml"},
		{name: "valid yml file", path: "config.yml"},
		{name: "path traversal attempt", path: "../../../etc/passwd", wantErr: true, errMsg: "path traversal not allowed"},
		{name: "non-yaml file", path: "config.txt", wantErr: true, errMsg: "config file must have .yaml or .yml extension"},
		{name: "system file access", path: "/etc/passwd.yaml", wantErr: true, errMsg: "access to system files not allowed"},
		{name: "proc filesystem access", path: "/proc/version.yaml", wantErr: true, errMsg: "access to system files not allowed"},
		{name: "relative path with valid extension", path: "./configs/app.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateConfigPath(tt.path)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected error but got none")
				} else if tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("Expected error message to contain '%s', got '%s'", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestEnvVars(t *testing.T) {
	names := EnvVars()
	if len(names) != 15 {
		t.Errorf("Expected 15 overrides, got %d", len(names))
	}
	if !sort.StringsAreSorted(names) {
		t.Errorf("Expected sorted names, got %v", names)
	}
	for _, name := range names {
		if !strings.HasPrefix(name, EnvPrefix) {
			t.Errorf("Expected %s prefix on %s", EnvPrefix, name)
		}
	}
}
