package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	termfmt "github.com/yildizm/go-termfmt"
	"gopkg.in/yaml.v3"

	"github.com/yildizm/TweetSense/internal/config"
	"github.com/yildizm/TweetSense/internal/emoji"
)

const defaultConfigFile = ".tweetsense.yaml"

func newConfigCommand() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage TweetSense configuration",
		Long: `Create, inspect and check TweetSense configuration.

Settings are merged from the built-in defaults, the first config file
found, a local .env file and TWEETSENSE_* environment variables.`,
	}

	configCmd.AddCommand(
		newConfigInitCommand(),
		newConfigShowCommand(),
		newConfigValidateCommand(),
		newConfigPathCommand(),
	)

	return configCmd
}

type configInitOptions struct {
	path    string
	minimal bool
	force   bool
}

func newConfigInitCommand() *cobra.Command {
	var opts configInitOptions

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a sample configuration file",
		Long: `Write a sample configuration with every section documented: backend,
analysis, export, output and ui. Use --minimal for the backend and
output sections only.`,
		Example: `  tweetsense config init
  tweetsense config init --minimal
  tweetsense config init --output ~/.config/tweetsense/config.yaml
  tweetsense config init --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(cmd.OutOrStdout(), opts)
		},
	}

	initCmd.Flags().StringVarP(&opts.path, "output", "o", defaultConfigFile, "where to write the config file")
	initCmd.Flags().BoolVarP(&opts.minimal, "minimal", "m", false, "write only the backend and output sections")
	initCmd.Flags().BoolVarP(&opts.force, "force", "f", false, "replace an existing file")

	return initCmd
}

func runConfigInit(out io.Writer, opts configInitOptions) error {
	if !opts.force && fileExists(opts.path) {
		return fmt.Errorf("config file already exists at %s (use --force to overwrite)", opts.path)
	}

	if dir := filepath.Dir(opts.path); dir != "." && dir != "/" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	content, kind := config.SampleConfig(), "full"
	if opts.minimal {
		content, kind = config.MinimalSampleConfig(), "minimal"
	}

	if err := os.WriteFile(opts.path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Fprintf(out, "%s Configuration file created at: %s\n", emoji.GetEmoji("success"), opts.path)
	fmt.Fprintf(out, "%s Wrote the %s sample; point it at your service with backend.base_url\n", emoji.GetEmoji("spreadsheet"), kind)
	return nil
}

func newConfigShowCommand() *cobra.Command {
	var format, path string

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		Long: `Print the configuration analyze, health and watch would run with, after
defaults, the config file, .env and TWEETSENSE_* variables are merged.`,
		Example: `  tweetsense config show
  tweetsense config show --format json
  tweetsense config show --config ./team.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewLoader().LoadConfig(path)
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}
			return writeConfig(cmd.OutOrStdout(), cfg, format)
		},
	}

	showCmd.Flags().StringVarP(&format, "format", "f", "yaml", "output format (yaml, json)")
	showCmd.Flags().StringVarP(&path, "config", "c", "", "path to config file")

	return showCmd
}

func writeConfig(w io.Writer, cfg *config.Config, format string) error {
	var (
		data []byte
		err  error
	)
	switch format {
	case "json":
		data, err = json.MarshalIndent(cfg, "", "  ")
		data = append(data, '\n')
	case "yaml":
		data, err = yaml.Marshal(cfg)
	default:
		return fmt.Errorf("unsupported format: %s (use json or yaml)", format)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal config to %s: %w", strings.ToUpper(format), err)
	}

	_, err = w.Write(data)
	return err
}

func newConfigValidateCommand() *cobra.Command {
	var path string

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a configuration file",
		Long: `Load and check the configuration, then summarize the settings that
matter when talking to the sentiment service.

Checks that:
- the file is valid YAML
- backend.base_url is an http or https URL and the timeout is not negative
- output.default_format, output.color_mode and ui.theme are known values
- max_rows is not negative and ui.table_height is at least 1
- the chart is at least 320x240`,
		Example: `  tweetsense config validate
  tweetsense config validate --config ./team.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			cfg, err := config.NewLoader().LoadConfig(path)
			if err != nil {
				fmt.Fprintf(out, "%s Configuration validation failed:\n   %v\n", emoji.GetEmoji("error"), err)
				return err
			}

			fmt.Fprintf(out, "%s Configuration is valid (version %s)\n", emoji.GetEmoji("success"), cfg.Version)
			fmt.Fprintf(out, "%s Configuration summary:\n", emoji.GetEmoji("statistics"))
			renderTree(out, configSummary(cfg))
			return nil
		},
	}

	validateCmd.Flags().StringVarP(&path, "config", "c", "", "path to config file")

	return validateCmd
}

// configSummary groups the effective settings by section
func configSummary(cfg *config.Config) []termfmt.TreeItem {
	return []termfmt.TreeItem{
		{Label: "Backend", Children: []termfmt.TreeItem{
			{Label: "URL", Value: cfg.Backend.BaseURL},
			{Label: "Timeout", Value: orDefault(cfg.Backend.Timeout.String(), cfg.Backend.Timeout == 0, "transport default")},
			{Label: "User agent", Value: cfg.Backend.UserAgent, Last: true},
		}},
		{Label: "Analysis", Children: []termfmt.TreeItem{
			{Label: "Max rows", Value: orDefault(strconv.Itoa(cfg.Analysis.MaxRows), cfg.Analysis.MaxRows == 0, "all")},
			{Label: "VADER breakdown", Value: yesNo(cfg.Analysis.VaderBreakdown), Last: true},
		}},
		{Label: "Export", Children: []termfmt.TreeItem{
			{Label: "Directory", Value: orDefault(cfg.Export.Directory, cfg.Export.Directory == "", "current directory")},
			{Label: "Chart size", Value: fmt.Sprintf("%dx%d", cfg.Export.ChartWidth, cfg.Export.ChartHeight), Last: true},
		}},
		{Label: "Output", Children: []termfmt.TreeItem{
			{Label: "Format", Value: cfg.Output.DefaultFormat},
			{Label: "Color", Value: cfg.Output.ColorMode, Last: true},
		}},
		{Label: "UI", Last: true, Children: []termfmt.TreeItem{
			{Label: "Theme", Value: cfg.UI.Theme},
			{Label: "Table height", Value: strconv.Itoa(cfg.UI.TableHeight)},
			{Label: "Log file", Value: orDefault(cfg.UI.LogFile, cfg.UI.LogFile == "", "discarded"), Last: true},
		}},
	}
}

func orDefault(value string, unset bool, fallback string) string {
	if unset {
		return fallback
	}
	return value
}

func newConfigPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show where configuration is read from",
		Long: `List the config files TweetSense searches, highest priority first, the
.env files it loads, and which TWEETSENSE_* overrides are set.`,
		Example: `  tweetsense config path`,
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			writeSearchPaths(out)
			fmt.Fprintln(out)
			writeEnvSources(out)
		},
	}
}

func writeSearchPaths(w io.Writer) {
	fmt.Fprintln(w, "Config files (first found wins):")
	for i, path := range config.GetConfigPaths() {
		fmt.Fprintf(w, "  %d. %s %s\n", i+1, path, presence(path))
	}

	if current, found := config.FindConfigFile(); found {
		fmt.Fprintf(w, "%s Current config file: %s\n", emoji.GetEmoji("target"), current)
	} else {
		fmt.Fprintln(w, "No config file found, using defaults")
	}
}

// writeEnvSources lists the dotenv files and the overrides currently set.
// Values are not printed; they may hold credentials for the service.
func writeEnvSources(w io.Writer) {
	fmt.Fprintln(w, "Dotenv files (existing variables win):")
	for _, path := range config.EnvFiles {
		fmt.Fprintf(w, "  %s %s\n", path, presence(path))
	}

	fmt.Fprintf(w, "%s Environment overrides (%s*), applied over config files:\n", emoji.GetEmoji("info"), config.EnvPrefix)
	for _, name := range config.EnvVars() {
		state := "unset"
		if os.Getenv(name) != "" {
			state = "set"
		}
		fmt.Fprintf(w, "  %-36s %s\n", name, state)
	}
}

func presence(path string) string {
	if fileExists(path) {
		return emoji.GetEmoji("success") + " (exists)"
	}
	return emoji.GetEmoji("error") + " (not found)"
}

// renderTree writes items with the terminal's color and emoji settings
func renderTree(w io.Writer, items []termfmt.TreeItem) {
	opts := termfmt.DefaultOptions()
	opts.Color = !noColor
	opts.Emoji = !emoji.IsEmojiDisabled()
	fmt.Fprintln(w, strings.TrimRight(termfmt.TreeViewWithOptions(items, opts), "\n"))
}

func fileExists(filename string) bool {
	_, err := os.Stat(filename)
	return err == nil
}
