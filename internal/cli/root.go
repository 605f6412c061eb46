package cli

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/yildizm/TweetSense/internal/config"
	"github.com/yildizm/TweetSense/internal/emoji"
	"github.com/yildizm/TweetSense/internal/logger"
)

var (
	cfgFile    string
	verbose    bool
	noColor    bool
	noEmoji    bool
	outputFmt  string
	backendURL string

	globalConfig *config.Config
)

// NewRootCommand creates the root command
func NewRootCommand(version, commit, date string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tweetsense",
		Short: "Tweet sentiment analysis client",
		Long: `TweetSense sends a spreadsheet of tweets to a sentiment analysis service
and shows the results: label counts, the positive/negative distribution,
the VADER breakdown and a scrollable table of every analysed tweet.

Results can be exported as the service's formatted spreadsheet or as a
PNG chart.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Auto-disable emojis on Windows if not explicitly set
			if runtime.GOOS == "windows" && !cmd.Flag("no-emoji").Changed {
				noEmoji = true
			}
			emoji.SetEmojiDisabled(noEmoji)

			if skipsConfig(cmd) {
				return nil
			}
			return loadGlobalConfig(cmd)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&noEmoji, "no-emoji", false, "disable emoji output (useful for Windows terminals)")
	rootCmd.PersistentFlags().StringVarP(&outputFmt, "output", "o", "text", "output format (text, json, markdown, csv)")
	rootCmd.PersistentFlags().StringVar(&backendURL, "backend", "", "sentiment service URL (overrides backend.base_url)")

	// Add subcommands
	rootCmd.AddCommand(newAnalyzeCommand())
	rootCmd.AddCommand(newHealthCommand())
	rootCmd.AddCommand(newWatchCommand())
	rootCmd.AddCommand(newConfigCommand())
	rootCmd.AddCommand(newVersionCommand(version, commit, date))

	return rootCmd
}

func newVersionCommand(version, commit, date string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display version number, build commit, date, and runtime information",
		Run: func(cmd *cobra.Command, args []string) {
			displayVersion := version
			displayCommit := commit
			displayDate := date

			if version == "dev" || version == "" {
				displayVersion = "development"
			}
			if commit == "none" || commit == "" {
				displayCommit = "local-build"
			}
			if date == "unknown" || date == "" {
				displayDate = "local-build"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "TweetSense %s (%s) built on %s\n", displayVersion, displayCommit, displayDate)
			fmt.Fprintf(out, "Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

// skipsConfig reports whether cmd runs without the merged configuration.
// The config subcommands load files themselves so they can report errors.
func skipsConfig(cmd *cobra.Command) bool {
	if cmd.Name() == "version" || cmd.Name() == "help" {
		return true
	}
	for c := cmd; c != nil; c = c.Parent() {
		if c.Name() == "config" {
			return true
		}
	}
	return false
}

// loadGlobalConfig loads the configuration and applies flags that were set
// explicitly on top of it
func loadGlobalConfig(cmd *cobra.Command) error {
	cfg, err := config.NewLoader().LoadConfig(cfgFile)
	if err != nil {
		return err
	}

	if flagChanged(cmd, "backend") {
		cfg.Backend.BaseURL = backendURL
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid --backend: %w", err)
		}
	}
	if !flagChanged(cmd, "output") {
		outputFmt = cfg.Output.DefaultFormat
	}
	if !flagChanged(cmd, "verbose") {
		verbose = cfg.Output.Verbose
	}
	if !flagChanged(cmd, "no-color") {
		noColor = colorDisabled(cfg.Output.ColorMode, os.Stdout)
	}

	globalConfig = cfg
	logger.SetOutput(os.Stderr, noColor)
	return nil
}

func flagChanged(cmd *cobra.Command, name string) bool {
	f := cmd.Flag(name)
	return f != nil && f.Changed
}

// colorDisabled resolves a color mode against the output stream
func colorDisabled(mode string, out io.Writer) bool {
	switch mode {
	case "always":
		return false
	case "never":
		return true
	}

	if os.Getenv("NO_COLOR") != "" {
		return true
	}
	f, ok := out.(*os.File)
	if !ok {
		return true
	}
	return !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd())
}

// GetGlobalConfig returns the loaded configuration, or the defaults when
// none was loaded
func GetGlobalConfig() *config.Config {
	if globalConfig == nil {
		return config.DefaultConfig()
	}
	return globalConfig
}

// Global helpers
func isVerbose() bool {
	return verbose
}

func getOutputFormat() string {
	return outputFmt
}

// verboseChecker adapts the verbose flag for loggers
type verboseChecker struct{}

func (verboseChecker) IsVerbose() bool {
	return isVerbose()
}

func newLogger(component string) *logger.Logger {
	return logger.New(component, verboseChecker{})
}
