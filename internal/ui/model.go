package ui

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/yildizm/TweetSense/internal/analysis"
	"github.com/yildizm/TweetSense/internal/backend"
	"github.com/yildizm/TweetSense/internal/emoji"
	"github.com/yildizm/TweetSense/internal/logger"
	"github.com/yildizm/TweetSense/internal/sheet"
	"github.com/yildizm/TweetSense/internal/ui/components"
)

// Analyzer is the part of the orchestrator the UI drives
type Analyzer interface {
	Begin(ctx context.Context) *analysis.Ticket
	Analyze(ticket *analysis.Ticket, rows []sheet.Row) (*analysis.Outcome, error)
	Close()
}

// Exporter writes exported files
type Exporter interface {
	SaveSpreadsheet(ctx context.Context, results []analysis.Result) (string, error)
	SaveChart(report *analysis.Report) (string, error)
	SaveServerChart(ctx context.Context, results []analysis.Result) (string, error)
}

// Deps are the services behind the UI
type Deps struct {
	Analyzer   Analyzer
	Exporter   Exporter
	Health     backend.HealthChecker
	Parser     *sheet.Parser
	Logger     *logger.Logger
	BackendURL string
	Clock      func() time.Time
}

// Options controls presentation
type Options struct {
	Theme       string
	TableHeight int
	InitialFile string
}

const (
	indexWidth      = 5
	sentimentWidth  = 12
	confidenceWidth = 16
	minTweetWidth   = 20
)

// Model is the interactive sentiment dashboard
type Model struct {
	deps   Deps
	opts   Options
	styles *Styles

	ctx    context.Context
	cancel context.CancelFunc

	state  ViewState
	health *backend.HealthStatus

	input      textinput.Model
	inputFocus bool
	spinner    spinner.Model
	table      table.Model

	width    int
	height   int
	quitting bool
}

// NewModel creates the UI model
func NewModel(deps Deps, opts Options) (*Model, error) {
	theme, ok := ThemeByName(opts.Theme)
	if !ok {
		return nil, fmt.Errorf("unknown theme: %s (available: %s)", opts.Theme, strings.Join(GetAvailableThemes(), ", "))
	}
	if opts.TableHeight <= 0 {
		opts.TableHeight = 12
	}
	if deps.Parser == nil {
		deps.Parser = sheet.New(0)
	}
	if deps.Logger == nil {
		deps.Logger = logger.New("ui", nil)
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}

	styles := NewStyles(theme)

	ti := textinput.New()
	ti.Placeholder = "path/to/tweets.xlsx (.xlsx, .xls, .csv)"
	ti.Prompt = emoji.GetEmoji("upload") + " "
	ti.CharLimit = 1024
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Header

	t := table.New(
		table.WithColumns(columns(minTweetWidth)),
		table.WithFocused(true),
		table.WithHeight(opts.TableHeight),
	)
	ts := table.DefaultStyles()
	ts.Header = styles.TableHeader
	ts.Selected = styles.TableSelected
	t.SetStyles(ts)

	ctx, cancel := context.WithCancel(context.Background())

	return &Model{
		deps:    deps,
		opts:    opts,
		styles:  styles,
		ctx:     ctx,
		cancel:  cancel,
		state:   Idle(),
		input:   ti,
		spinner: sp,
		table:   t,
	}, nil
}

// State returns the current view state
func (m *Model) State() ViewState {
	return m.state
}

// Close cancels any request still in flight
func (m *Model) Close() {
	m.cancel()
	if m.deps.Analyzer != nil {
		m.deps.Analyzer.Close()
	}
}

// Init probes the backend once and starts the initial upload, if any
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.deps.Health != nil {
		cmds = append(cmds, probeCmd(m.ctx, m.deps.Health, m.deps.Logger))
	}
	if m.opts.InitialFile != "" {
		cmds = append(cmds, m.upload(m.opts.InitialFile))
	}
	return tea.Batch(cmds...)
}

// Update handles messages and key presses
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case healthMsg:
		status := msg.status
		m.health = &status
		return m, nil
	case analysisDoneMsg:
		return m.handleAnalysisDone(msg)
	case analysisFailedMsg:
		return m.handleAnalysisFailed(msg)
	case exportDoneMsg:
		m.state = m.state.ExportDone(msg.token, fmt.Sprintf("Saved %s to %s", msg.kind, msg.path))
		return m, nil
	case exportFailedMsg:
		m.deps.Logger.WarnWithFields("export failed", []logger.Field{
			logger.F("kind", msg.kind),
			logger.Error(msg.err),
		})
		m.state = m.state.ExportFailed(msg.token, msg.err.Error())
		m.syncTable()
		return m, nil
	}

	return m, nil
}

func (m *Model) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	tweetWidth := max(minTweetWidth, msg.Width-indexWidth-sentimentWidth-confidenceWidth-10)
	m.table.SetColumns(columns(tweetWidth))
	m.table.SetWidth(msg.Width - 4)
	m.input.Width = max(20, msg.Width-10)
	m.syncTable()
	return m, nil
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.inputFocus {
		return m.handleInputKey(msg)
	}

	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		m.Close()
		return m, tea.Quit
	case "u":
		m.inputFocus = true
		return m, m.input.Focus()
	case "d":
		return m, m.export(exportSpreadsheet)
	case "p":
		return m, m.export(exportChart)
	case "s":
		return m, m.export(exportServerChart)
	}

	if m.state.Phase == PhaseResults {
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		m.Close()
		return m, tea.Quit
	case "esc":
		m.inputFocus = false
		m.input.Blur()
		return m, nil
	case "enter":
		path := strings.TrimSpace(m.input.Value())
		if path == "" {
			return m, nil
		}
		m.inputFocus = false
		m.input.Blur()
		m.input.SetValue("")
		return m, tea.Batch(m.spinner.Tick, m.upload(path))
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// upload issues a new token and starts parsing and analysis of path
func (m *Model) upload(path string) tea.Cmd {
	ticket := m.deps.Analyzer.Begin(m.ctx)
	m.state = m.state.Upload(filepath.Base(path), ticket.Token)
	m.syncTable()

	m.deps.Logger.DebugWithFields("upload started", []logger.Field{
		logger.F("file", path),
		logger.F("token", ticket.Token),
	})
	return analyzeCmd(m.deps, ticket, path)
}

// export starts the export of kind. Exports are ignored while loading.
func (m *Model) export(kind string) tea.Cmd {
	if m.state.Phase == PhaseLoading || m.deps.Exporter == nil {
		return nil
	}

	token := m.state.Token
	results := m.state.Results()
	report := m.state.Report
	ctx := m.ctx

	switch kind {
	case exportSpreadsheet:
		return exportCmd(token, kind, func() (string, error) { return m.deps.Exporter.SaveSpreadsheet(ctx, results) })
	case exportChart:
		return exportCmd(token, kind, func() (string, error) { return m.deps.Exporter.SaveChart(report) })
	case exportServerChart:
		return exportCmd(token, kind, func() (string, error) { return m.deps.Exporter.SaveServerChart(ctx, results) })
	default:
		return nil
	}
}

func (m *Model) handleAnalysisDone(msg analysisDoneMsg) (tea.Model, tea.Cmd) {
	m.state = m.state.Succeed(msg.token, msg.report)
	m.syncTable()
	return m, nil
}

func (m *Model) handleAnalysisFailed(msg analysisFailedMsg) (tea.Model, tea.Cmd) {
	if isSuperseded(msg.err) {
		return m, nil
	}
	m.state = m.state.Fail(msg.token, msg.err.Error())
	m.syncTable()
	return m, nil
}

// syncTable rebuilds table rows from the current state
func (m *Model) syncTable() {
	results := m.state.Results()
	cols := m.table.Columns()
	tweetWidth := minTweetWidth
	if len(cols) > 1 {
		tweetWidth = cols[1].Width
	}

	ascii := emoji.IsEmojiDisabled()
	rows := make([]table.Row, 0, len(results))
	for i, r := range results {
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			truncate(r.Tweet, tweetWidth),
			r.Sentiment,
			components.ConfidenceBar(r.Score, ascii),
		})
	}
	m.table.SetRows(rows)
	if len(rows) > 0 && m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}
}

func columns(tweetWidth int) []table.Column {
	return []table.Column{
		{Title: "#", Width: indexWidth},
		{Title: "Tweet", Width: tweetWidth},
		{Title: "Sentiment", Width: sentimentWidth},
		{Title: "Confidence", Width: confidenceWidth},
	}
}

// truncate shortens s to limit runes on a single line
func truncate(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	runes := []rune(s)
	if len(runes) <= limit || limit < 4 {
		return s
	}
	return string(runes[:limit-3]) + "..."
}

// Run starts the interactive UI and blocks until it exits
func Run(deps Deps, opts Options) error {
	model, err := NewModel(deps, opts)
	if err != nil {
		return err
	}
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
