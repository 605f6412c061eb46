package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/yildizm/TweetSense/internal/analysis"
	"github.com/yildizm/TweetSense/internal/config"
	"github.com/yildizm/TweetSense/internal/emoji"
	"github.com/yildizm/TweetSense/internal/formatter"
	"github.com/yildizm/TweetSense/internal/logger"
	"github.com/yildizm/TweetSense/internal/sheet"
	"github.com/yildizm/TweetSense/internal/ui"
)

var (
	analyzeNoTUI       bool
	analyzeOutputFile  string
	analyzeXLSX        bool
	analyzeChart       bool
	analyzeServerChart bool
	analyzeVader       bool
	analyzeTimeout     time.Duration
)

func newAnalyzeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [file]",
		Short: "Analyze the tweets in a spreadsheet",
		Long: `Analyze the tweets in an .xlsx, .xls or .csv file.

The first column with text is read, one tweet per row, and sent to the
sentiment service. In a terminal with text output the interactive UI
opens; otherwise the results are printed in the selected format.

Examples:
  tweetsense analyze tweets.xlsx
  tweetsense analyze tweets.csv --no-tui -o json
  tweetsense analyze tweets.xlsx --no-tui --xlsx --chart`,
		Args: cobra.MaximumNArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().BoolVar(&analyzeNoTUI, "no-tui", false, "print results instead of opening the interactive UI")
	cmd.Flags().StringVar(&analyzeOutputFile, "output-file", "", "write formatted results to a file")
	cmd.Flags().BoolVar(&analyzeXLSX, "xlsx", false, "save the service's formatted spreadsheet")
	cmd.Flags().BoolVar(&analyzeChart, "chart", false, "save a PNG chart of the results")
	cmd.Flags().BoolVar(&analyzeServerChart, "server-chart", false, "save the chart rendered by the service")
	cmd.Flags().BoolVar(&analyzeVader, "vader", false, "also request the VADER breakdown (overrides analysis.vader_breakdown)")
	cmd.Flags().DurationVar(&analyzeTimeout, "timeout", 0, "overall analysis timeout (0 waits until done)")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()

	vader := cfg.Analysis.VaderBreakdown
	if flagChanged(cmd, "vader") {
		vader = analyzeVader
	}

	var file string
	if len(args) > 0 {
		file = args[0]
		if err := validateFilePath(file); err != nil {
			return err
		}
	}

	svc, err := newServices(cfg, vader)
	if err != nil {
		return fmt.Errorf("failed to create backend client: %w", err)
	}
	defer svc.Close()

	if shouldUseTUIMode() {
		return runInteractive(cfg, svc, file)
	}

	if file == "" {
		return fmt.Errorf("a file is required when the interactive UI is not used")
	}
	return runAnalysisAndOutput(cmd, svc, file)
}

// shouldUseTUIMode reports whether analyze opens the interactive UI
func shouldUseTUIMode() bool {
	return !analyzeNoTUI &&
		getOutputFormat() == "text" &&
		!isVerbose() &&
		analyzeOutputFile == "" &&
		!wantsExport()
}

func wantsExport() bool {
	return analyzeXLSX || analyzeChart || analyzeServerChart
}

// runInteractive hands the services to the terminal UI. Logs would tear
// the alternate screen, so they go to ui.log_file or nowhere.
func runInteractive(cfg *config.Config, svc *services, file string) error {
	logOut, closeLog, err := openUILog(cfg.UI.LogFile)
	if err != nil {
		return err
	}
	defer closeLog()
	logger.SetOutput(logOut, true)

	return ui.Run(ui.Deps{
		Analyzer:   svc.orchestrator,
		Exporter:   svc.exporter,
		Health:     svc.client,
		Parser:     svc.parser,
		Logger:     newLogger("ui"),
		BackendURL: svc.client.BaseURL(),
		Clock:      time.Now,
	}, ui.Options{
		Theme:       cfg.UI.Theme,
		TableHeight: cfg.UI.TableHeight,
		InitialFile: file,
	})
}

func openUILog(path string) (io.Writer, func(), error) {
	if path == "" {
		return io.Discard, func() {}, nil
	}

	// #nosec G304 - log path comes from the user's own configuration
	f, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open ui log file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

// runAnalysisAndOutput analyses file once and prints or saves the results
func runAnalysisAndOutput(cmd *cobra.Command, svc *services, file string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()
	if analyzeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, analyzeTimeout)
		defer cancel()
	}

	report, err := analyzeFile(ctx, svc, file)
	if err != nil {
		return err
	}

	f, err := getFormatter(getOutputFormat(), !noColor)
	if err != nil {
		return err
	}
	output, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format results: %w", err)
	}

	if err := handleOutputDestination(cmd.OutOrStdout(), output); err != nil {
		return err
	}

	return saveExports(ctx, cmd.ErrOrStderr(), svc, report)
}

// analyzeFile parses file and runs it through the orchestrator
func analyzeFile(ctx context.Context, svc *services, file string) (*analysis.Report, error) {
	rows, err := svc.parser.ParseFile(file)
	if err != nil {
		return nil, err
	}

	outcome, err := svc.orchestrator.Run(ctx, rows)
	if err != nil {
		return nil, err
	}

	return analysis.NewReport(filepath.Base(file), svc.client.BaseURL(), outcome, time.Now()), nil
}

// saveExports writes every requested export. Each export is attempted
// even when an earlier one fails.
func saveExports(ctx context.Context, w io.Writer, svc *services, report *analysis.Report) error {
	type job struct {
		enabled bool
		what    string
		save    func() (string, error)
	}

	jobs := []job{
		{analyzeXLSX, "spreadsheet", func() (string, error) { return svc.exporter.SaveSpreadsheet(ctx, report.Results) }},
		{analyzeChart, "chart", func() (string, error) { return svc.exporter.SaveChart(report) }},
		{analyzeServerChart, "server chart", func() (string, error) { return svc.exporter.SaveServerChart(ctx, report.Results) }},
	}

	var errs []error
	for _, j := range jobs {
		if !j.enabled {
			continue
		}
		path, err := j.save()
		if err != nil {
			fmt.Fprintf(w, "%s Failed to save %s: %v\n", emoji.GetEmoji("error"), j.what, err)
			errs = append(errs, err)
			continue
		}
		fmt.Fprintf(w, "%s Saved %s to %s\n", emoji.GetEmoji("success"), j.what, path)
	}
	return errors.Join(errs...)
}

func handleOutputDestination(w io.Writer, output []byte) error {
	if analyzeOutputFile != "" {
		if err := validateOutputFilePath(analyzeOutputFile); err != nil {
			return fmt.Errorf("invalid output file path: %w", err)
		}

		if err := writeOutputBytesToFile(output, analyzeOutputFile); err != nil {
			return fmt.Errorf("failed to write output to file: %w", err)
		}

		if isVerbose() {
			fmt.Fprintf(os.Stderr, "Output saved to: %s\n", analyzeOutputFile)
		}
		return nil
	}

	_, err := w.Write(output)
	return err
}

func validateFilePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty file path")
	}

	cleanPath := filepath.Clean(path)

	info, err := os.Stat(cleanPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file does not exist: %s", cleanPath)
		}
		return fmt.Errorf("cannot access file: %w", err)
	}

	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", cleanPath)
	}

	if !sheet.Supported(cleanPath) {
		return fmt.Errorf("unsupported file type: %s (expected one of: %s)", filepath.Ext(cleanPath), strings.Join(sheet.Extensions, ", "))
	}

	return nil
}

func validateOutputFilePath(path string) error {
	if path == "" {
		return fmt.Errorf("empty file path")
	}
	if info, err := os.Stat(filepath.Clean(path)); err == nil && info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}
	return nil
}

// getFormatter returns the appropriate formatter for the given format
func getFormatter(format string, color bool) (formatter.Formatter, error) {
	switch format {
	case "json":
		return formatter.NewJSON(), nil
	case "markdown", "md":
		return formatter.NewMarkdown(), nil
	case "csv":
		return formatter.NewCSV(), nil
	case "text", "terminal", "":
		return formatter.NewTerminal(color), nil
	default:
		return nil, fmt.Errorf("unknown format: %s", format)
	}
}

// writeOutputBytesToFile writes output to a file with proper error handling
func writeOutputBytesToFile(output []byte, filePath string) error {
	cleanPath := filepath.Clean(filePath)

	file, err := os.Create(cleanPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && isVerbose() {
			fmt.Fprintf(os.Stderr, "Warning: failed to close output file: %v\n", closeErr)
		}
	}()

	if _, err := file.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if err := file.Sync(); err != nil {
		return fmt.Errorf("failed to sync output file: %w", err)
	}

	return nil
}
