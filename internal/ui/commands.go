package ui

import (
	"context"
	"errors"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yildizm/TweetSense/internal/analysis"
	"github.com/yildizm/TweetSense/internal/backend"
	"github.com/yildizm/TweetSense/internal/logger"
)

// Export kinds, used in confirmation messages
const (
	exportSpreadsheet = "spreadsheet"
	exportChart       = "chart"
	exportServerChart = "server chart"
)

// probeCmd runs the single health probe of the session
func probeCmd(ctx context.Context, checker backend.HealthChecker, log *logger.Logger) tea.Cmd {
	return func() tea.Msg {
		return healthMsg{status: backend.Probe(ctx, checker, log)}
	}
}

// analyzeCmd parses path and submits its rows under ticket
func analyzeCmd(deps Deps, ticket *analysis.Ticket, path string) tea.Cmd {
	return func() tea.Msg {
		rows, err := deps.Parser.ParseFile(path)
		if err != nil {
			deps.Logger.WarnWithFields("upload rejected", []logger.Field{
				logger.F("file", path),
				logger.Error(err),
			})
			return analysisFailedMsg{token: ticket.Token, err: err}
		}

		outcome, err := deps.Analyzer.Analyze(ticket, rows)
		if err != nil {
			return analysisFailedMsg{token: ticket.Token, err: err}
		}

		report := analysis.NewReport(filepath.Base(path), deps.BackendURL, outcome, deps.Clock())
		return analysisDoneMsg{token: ticket.Token, report: report}
	}
}

// exportCmd runs save and reports where the file went, tagged with the
// token of the results it exported
func exportCmd(token uint64, kind string, save func() (string, error)) tea.Cmd {
	return func() tea.Msg {
		path, err := save()
		if err != nil {
			return exportFailedMsg{token: token, kind: kind, err: err}
		}
		return exportDoneMsg{token: token, kind: kind, path: path}
	}
}

// isSuperseded reports whether err only means a newer upload won
func isSuperseded(err error) bool {
	return errors.Is(err, analysis.ErrSuperseded) || errors.Is(err, context.Canceled)
}
