package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yildizm/TweetSense/internal/analysis"
)

// VaderCard renders the averaged VADER sub-scores of a batch
type VaderCard struct {
	Breakdown *analysis.Breakdown
	Width     int
	Icon      string
	ASCII     bool
}

// NewVaderCard creates a new VADER breakdown card
func NewVaderCard(breakdown *analysis.Breakdown, width int) *VaderCard {
	return &VaderCard{Breakdown: breakdown, Width: width}
}

// Render renders the card, or nothing without a breakdown
func (v *VaderCard) Render() string {
	if v.Breakdown == nil {
		return ""
	}

	titleStyle := lipgloss.NewStyle().Foreground(infoColor).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(mutedColor)
	boxStyle := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(mutedColor).Padding(0, 1)

	title := titleStyle.Render("VADER Breakdown")
	if v.Icon != "" {
		title = v.Icon + " " + title
	}

	trackWidth := max(v.Width-24, 10)
	rows := []string{
		title,
		mutedStyle.Render(fmt.Sprintf("compound %.3f over %d tweets", v.Breakdown.AverageCompound, v.Breakdown.TotalTweets)),
		v.row("pos", v.Breakdown.AveragePos, positiveColor, trackWidth),
		v.row("neu", v.Breakdown.AverageNeu, neutralColor, trackWidth),
		v.row("neg", v.Breakdown.AverageNeg, negativeColor, trackWidth),
	}

	return boxStyle.Width(v.Width).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func (v *VaderCard) row(label string, value float64, color lipgloss.AdaptiveColor, width int) string {
	value = max(0, min(value, 1))
	filled := int(value * float64(width))

	block, empty := "█", "░"
	if v.ASCII {
		block, empty = "#", "-"
	}

	bar := lipgloss.NewStyle().Foreground(color).Render(strings.Repeat(block, filled)) +
		lipgloss.NewStyle().Foreground(trackColor).Render(strings.Repeat(empty, width-filled))
	return fmt.Sprintf("%s %.3f %s", label, value, bar)
}
