package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yildizm/TweetSense/internal/backend"
	"github.com/yildizm/TweetSense/internal/emoji"
	"github.com/yildizm/TweetSense/internal/ui/components"
)

// Badge texts for the backend status
const (
	BadgeChecking  = "Checking backend..."
	BadgeReady     = "Backend Connected & Model Loaded"
	BadgeIssue     = "Backend Issue - Check Logs"
	BadgeOffline   = "Backend offline"
	defaultWidth   = 100
	distributionBW = 50
)

// BadgeText returns the status badge text for a health snapshot.
// A nil snapshot means the probe has not answered yet.
func BadgeText(h *backend.HealthStatus) string {
	switch {
	case h == nil:
		return BadgeChecking
	case h.Status == backend.StatusOffline:
		return BadgeOffline
	case h.Ready():
		return BadgeReady
	default:
		return BadgeIssue
	}
}

// View renders the model
func (m *Model) View() string {
	if m.quitting {
		return "Thanks for using TweetSense! " + emoji.GetEmoji("door") + "\n"
	}

	sections := []string{m.renderHeader()}

	if m.inputFocus {
		sections = append(sections, m.styles.Input.Render(m.input.View()))
	}

	switch m.state.Phase {
	case PhaseIdle:
		sections = append(sections, m.renderIdle())
	case PhaseLoading:
		sections = append(sections, m.renderLoading())
	case PhaseError:
		sections = append(sections, m.renderError())
	case PhaseResults:
		sections = append(sections, m.renderResults())
	}

	if m.state.Notice != "" {
		sections = append(sections, components.NewNoticeBanner(m.state.Notice, 0).
			SetIcon(emoji.GetEmoji("success")).Render())
	}

	sections = append(sections, m.renderHelp())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderHeader() string {
	title := m.styles.Title.Render(emoji.GetEmoji("tweet") + " TweetSense")

	text := BadgeText(m.health)
	style := m.styles.Muted
	switch text {
	case BadgeReady:
		style = m.styles.BadgeOK
	case BadgeIssue:
		style = m.styles.BadgeIssue
	case BadgeOffline:
		style = m.styles.BadgeOffline
	}
	badge := style.Render(emoji.GetEmoji("backend") + " " + text)

	backendURL := m.styles.Muted.Render(m.deps.BackendURL)
	return lipgloss.JoinHorizontal(lipgloss.Center, title, "  ", badge, "  ", backendURL) + "\n"
}

func (m *Model) renderIdle() string {
	lines := []string{
		m.styles.Header.Render("Analyze a spreadsheet of tweets"),
		"",
		"Press u and enter the path of an .xlsx, .xls or .csv file.",
		"The first row is treated as a header; the first column of",
		"every following row is sent for analysis.",
	}
	return m.styles.Box.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderLoading() string {
	return m.styles.Box.Render(fmt.Sprintf("%s Analyzing %s...", m.spinner.View(), m.state.Source))
}

func (m *Model) renderError() string {
	return components.NewErrorBanner(m.state.Err, m.contentWidth()).
		SetIcon(emoji.GetEmoji("error")).Render()
}

func (m *Model) renderResults() string {
	report := m.state.Report
	ascii := emoji.IsEmojiDisabled()
	var sections []string

	if m.state.Err != "" {
		sections = append(sections, components.NewErrorBanner(m.state.Err, m.contentWidth()).
			SetIcon(emoji.GetEmoji("error")).Render())
	}

	sections = append(sections,
		m.styles.Muted.Render(fmt.Sprintf("%s %s", emoji.GetEmoji("upload"), m.state.Source)),
		components.CreateSentimentStats(report.Stats, map[string]string{
			"total":    emoji.GetEmoji("statistics"),
			"positive": emoji.GetEmoji("positive"),
			"negative": emoji.GetEmoji("negative"),
		}).Render(),
	)

	bar := components.NewDistributionBar(min(distributionBW, m.contentWidth()), report.Stats)
	bar.ASCII = ascii
	sections = append(sections, bar.Render())

	if report.Breakdown != nil {
		card := components.NewVaderCard(report.Breakdown, min(60, m.contentWidth()))
		card.Icon = emoji.GetEmoji("scale")
		card.ASCII = ascii
		sections = append(sections, card.Render())
	}

	sections = append(sections, m.table.View(), m.renderSelected())
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderSelected shows the full text and extras of the highlighted row
func (m *Model) renderSelected() string {
	results := m.state.Results()
	i := m.table.Cursor()
	if i < 0 || i >= len(results) {
		return ""
	}

	r := results[i]
	detail := m.styles.Label(r.Sentiment).Render(r.Sentiment) + "  " + r.Tweet
	var extras []string
	if r.LogisticRegression != "" {
		extras = append(extras, "logreg: "+r.LogisticRegression)
	}
	if r.Vader != nil {
		extras = append(extras, fmt.Sprintf("vader: %s (compound %.3f)", r.Vader.Label, r.Vader.Compound))
	}
	if len(extras) > 0 {
		detail += "\n" + m.styles.Muted.Render(strings.Join(extras, "  "))
	}
	return lipgloss.NewStyle().Width(m.contentWidth()).Render(detail)
}

func (m *Model) renderHelp() string {
	keys := []string{"u upload"}
	if m.state.Phase == PhaseResults {
		keys = append(keys, "↑/↓ scroll", "d spreadsheet", "p chart", "s server chart")
	}
	keys = append(keys, "q quit")
	return "\n" + m.styles.Help.Render(strings.Join(keys, " • "))
}

func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return max(m.width-4, 20)
}
