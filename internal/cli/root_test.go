package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func TestVersionCommand(t *testing.T) {
	tests := []struct {
		name                  string
		version, commit, date string
		want                  string
	}{
		{"release build", "1.2.0", "abc123", "2025-03-14", "TweetSense 1.2.0 (abc123) built on 2025-03-14"},
		{"dev build", "dev", "none", "unknown", "TweetSense development (local-build) built on local-build"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := NewRootCommand(tt.version, tt.commit, tt.date)
			var out bytes.Buffer
			root.SetOut(&out)
			root.SetArgs([]string{"version"})

			if err := root.Execute(); err != nil {
				t.Fatalf("version failed: %v", err)
			}
			if !strings.HasPrefix(out.String(), tt.want) {
				t.Errorf("Expected output starting with %q, got %q", tt.want, out.String())
			}
		})
	}
}

func TestSkipsConfig(t *testing.T) {
	root := NewRootCommand("test", "none", "unknown")

	tests := []struct {
		args []string
		want bool
	}{
		{[]string{"version"}, true},
		{[]string{"config", "show"}, true},
		{[]string{"config", "init"}, true},
		{[]string{"analyze"}, false},
		{[]string{"health"}, false},
		{[]string{"watch"}, false},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			cmd, _, err := root.Find(tt.args)
			if err != nil {
				t.Fatalf("Failed to find command: %v", err)
			}
			if got := skipsConfig(cmd); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestColorDisabled(t *testing.T) {
	t.Setenv("NO_COLOR", "")

	var buf bytes.Buffer
	tests := []struct {
		name string
		mode string
		out  io.Writer
		want bool
	}{
		{"always", "always", &buf, false},
		{"never", "never", os.Stdout, true},
		{"auto with buffer", "auto", &buf, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := colorDisabled(tt.mode, tt.out); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestColorDisabled_NoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")

	if !colorDisabled("auto", os.Stdout) {
		t.Error("Expected NO_COLOR to disable color")
	}
	if colorDisabled("always", os.Stdout) {
		t.Error("Expected 'always' to win over NO_COLOR")
	}
}

func TestLoadGlobalConfig_FlagsOverrideFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	content := "backend:\n  base_url: \"http://file:9000\"\noutput:\n  default_format: \"markdown\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	var captured string
	root := NewRootCommand("test", "none", "unknown")
	probe := &cobra.Command{
		Use: "probe",
		RunE: func(cmd *cobra.Command, args []string) error {
			captured = GetGlobalConfig().Backend.BaseURL + " " + getOutputFormat()
			return nil
		},
	}
	root.AddCommand(probe)
	root.SetArgs([]string{"probe", "--config", path, "--backend", "http://flag:8000"})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if captured != "http://flag:8000 markdown" {
		t.Errorf("Expected flag backend with file format, got %q", captured)
	}
}

func TestLoadGlobalConfig_InvalidBackend(t *testing.T) {
	_, _, err := executeCommand(t, "health", "--backend", "ftp://nowhere")
	if err == nil || !strings.Contains(err.Error(), "invalid --backend") {
		t.Errorf("Expected invalid backend error, got %v", err)
	}
}
