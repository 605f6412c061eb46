package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yildizm/TweetSense/internal/config"
)

func TestConfigInit(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.yaml")

	stdout, _, err := executeCommand(t, "config", "init", "--output", target)
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if !strings.Contains(stdout, "Configuration file created at: "+target) {
		t.Errorf("Unexpected output %q", stdout)
	}

	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}
	if !strings.Contains(string(data), "vader_breakdown") {
		t.Error("Expected full sample configuration")
	}

	_, _, err = executeCommand(t, "config", "init", "--output", target)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("Expected refusal to overwrite, got %v", err)
	}

	if _, _, err := executeCommand(t, "config", "init", "--minimal", "--force", "--output", target); err != nil {
		t.Errorf("Expected --force to overwrite, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "valid.yaml")
	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(valid, []byte("ui:\n  theme: \"dark\"\n"), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	if err := os.WriteFile(invalid, []byte("ui:\n  theme: \"neon\"\n"), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	stdout, _, err := executeCommand(t, "config", "validate", "--config", valid)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	for _, want := range []string{
		"Configuration is valid (version 1.0)",
		"Backend", "http://localhost:8000", "transport default",
		"VADER breakdown", "Chart size", "800x520",
		"Theme", "dark", "Log file", "discarded",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("Expected %q in output:\n%s", want, stdout)
		}
	}

	stdout, _, err = executeCommand(t, "config", "validate", "--config", invalid)
	if err == nil {
		t.Fatal("Expected validation error")
	}
	if !strings.Contains(stdout, "invalid theme: neon") {
		t.Errorf("Expected theme error in output:\n%s", stdout)
	}
}

func TestConfigShow_JSON(t *testing.T) {
	stdout, _, err := executeCommand(t, "config", "show", "--format", "json")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	if !strings.Contains(stdout, `"base_url": "http://localhost:8000"`) {
		t.Errorf("Expected default backend in output:\n%s", stdout)
	}
}

func TestConfigPath(t *testing.T) {
	t.Setenv("TWEETSENSE_UI_THEME", "light")

	stdout, _, err := executeCommand(t, "config", "path")
	if err != nil {
		t.Fatalf("config path failed: %v", err)
	}

	for _, want := range []string{
		".tweetsense.yaml",
		"Dotenv files",
		".env",
		"TWEETSENSE_BACKEND_URL",
		"TWEETSENSE_ANALYSIS_VADER_BREAKDOWN",
	} {
		if !strings.Contains(stdout, want) {
			t.Errorf("Expected %q in output:\n%s", want, stdout)
		}
	}

	for _, line := range strings.Split(stdout, "\n") {
		fields := strings.Fields(line)
		if strings.Contains(line, "TWEETSENSE_UI_THEME") && fields[len(fields)-1] != "set" {
			t.Errorf("Expected TWEETSENSE_UI_THEME marked set, got %q", line)
		}
		if strings.Contains(line, "light") {
			t.Errorf("Expected override values kept out of the listing, got %q", line)
		}
	}
}

func TestConfigSummary(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Analysis.MaxRows = 250
	cfg.Export.Directory = "exports"

	values := map[string]string{}
	for _, section := range configSummary(cfg) {
		for _, item := range section.Children {
			values[section.Label+"/"+item.Label] = item.Value
		}
	}

	tests := map[string]string{
		"Backend/Timeout":          "transport default",
		"Analysis/Max rows":        "250",
		"Analysis/VADER breakdown": "no",
		"Export/Directory":         "exports",
		"UI/Log file":              "discarded",
	}
	for key, want := range tests {
		if values[key] != want {
			t.Errorf("%s: expected %q, got %q", key, want, values[key])
		}
	}
}
