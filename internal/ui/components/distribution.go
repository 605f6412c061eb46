package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yildizm/TweetSense/internal/analysis"
)

// DistributionBar renders the positive share against the negative share
type DistributionBar struct {
	Width int
	Stats analysis.Stats
	ASCII bool
}

// NewDistributionBar creates a new distribution bar
func NewDistributionBar(width int, stats analysis.Stats) *DistributionBar {
	return &DistributionBar{Width: width, Stats: stats}
}

// Segments returns the widths of the positive and negative parts
func (d *DistributionBar) Segments() (int, int) {
	if d.Width <= 0 || d.Stats.Total() == 0 {
		return 0, 0
	}
	pos := int(d.Stats.PositivePercent()/100*float64(d.Width) + 0.5)
	return pos, d.Width - pos
}

// Render renders the distribution bar
func (d *DistributionBar) Render() string {
	posStyle := lipgloss.NewStyle().Foreground(positiveColor)
	negStyle := lipgloss.NewStyle().Foreground(negativeColor)
	emptyStyle := lipgloss.NewStyle().Foreground(trackColor)

	block, empty := "█", "░"
	if d.ASCII {
		block, empty = "#", "-"
	}

	var bar string
	pos, neg := d.Segments()
	if pos+neg == 0 {
		bar = emptyStyle.Render(strings.Repeat(empty, max(d.Width, 0)))
	} else {
		bar = posStyle.Render(strings.Repeat(block, pos)) + negStyle.Render(strings.Repeat(block, neg))
	}

	legend := fmt.Sprintf("%s positive  %s negative",
		posStyle.Render(analysis.FormatPercent(d.Stats.PositivePercent())),
		negStyle.Render(analysis.FormatPercent(d.Stats.NegativePercent())))

	return lipgloss.JoinVertical(lipgloss.Left, "Distribution", bar, legend)
}

// ConfidenceBar renders a ten-cell bar followed by the percentage
func ConfidenceBar(score float64, ascii bool) string {
	score = max(0, min(score, 1))
	filled := int(score * 10)

	block, empty := "█", "░"
	if ascii {
		block, empty = "#", "-"
	}
	return strings.Repeat(block, filled) + strings.Repeat(empty, 10-filled) + fmt.Sprintf(" %3.0f%%", score*100)
}
