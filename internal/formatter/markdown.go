package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/TweetSense/internal/analysis"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) Format(report *analysis.Report) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# Sentiment Analysis Report\n\n")
	if !report.GeneratedAt.IsZero() {
		fmt.Fprintf(&b, "Generated: %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05"))
	}

	f.writeTableOfContents(&b, report)
	f.writeSummaryTable(&b, report)

	if report.Breakdown != nil {
		f.writeBreakdown(&b, report.Breakdown)
	}

	if len(report.Results) > 0 {
		f.writeResults(&b, report.Results)
	}

	b.WriteString("\n---\n")
	b.WriteString("*Report generated by TweetSense*\n")

	return []byte(b.String()), nil
}

// writeTableOfContents writes a table of contents
func (f *markdownFormatter) writeTableOfContents(b *strings.Builder, report *analysis.Report) {
	b.WriteString("## Table of Contents\n")
	b.WriteString("- [Summary](#summary)\n")

	if report.Breakdown != nil {
		b.WriteString("- [VADER Breakdown](#vader-breakdown)\n")
	}

	if len(report.Results) > 0 {
		b.WriteString("- [Results](#results)\n")
	}
	b.WriteString("\n")
}

// writeSummaryTable writes the label counts as a table
func (f *markdownFormatter) writeSummaryTable(b *strings.Builder, report *analysis.Report) {
	b.WriteString("## Summary\n\n")

	stats := report.Stats

	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	if report.Source != "" {
		fmt.Fprintf(b, "| Source | %s |\n", escapeMarkdownCell(report.Source))
	}
	fmt.Fprintf(b, "| Total | %s |\n", formatNumber(stats.Total()))
	fmt.Fprintf(b, "| Positive | %s |\n", countWithPercent(stats.Positive, stats.PositivePercent()))
	fmt.Fprintf(b, "| Negative | %s |\n", countWithPercent(stats.Negative, stats.NegativePercent()))
	if stats.Other > 0 {
		fmt.Fprintf(b, "| Other labels | %s |\n", formatNumber(stats.Other))
	}
	b.WriteString("\n")

	b.WriteString("```\n")
	fmt.Fprintf(b, "Positive │%s│ %s\n", markdownBar(stats.PositivePercent()), analysis.FormatPercent(stats.PositivePercent()))
	fmt.Fprintf(b, "Negative │%s│ %s\n", markdownBar(stats.NegativePercent()), analysis.FormatPercent(stats.NegativePercent()))
	b.WriteString("```\n\n")
}

// writeBreakdown writes the VADER averages
func (f *markdownFormatter) writeBreakdown(b *strings.Builder, breakdown *analysis.Breakdown) {
	b.WriteString("## VADER Breakdown\n\n")

	b.WriteString("| Score | Average |\n")
	b.WriteString("|-------|---------|\n")
	fmt.Fprintf(b, "| Compound | %.3f |\n", breakdown.AverageCompound)
	fmt.Fprintf(b, "| Positive | %.3f |\n", breakdown.AveragePos)
	fmt.Fprintf(b, "| Neutral | %.3f |\n", breakdown.AverageNeu)
	fmt.Fprintf(b, "| Negative | %.3f |\n", breakdown.AverageNeg)
	fmt.Fprintf(b, "| Tweets | %s |\n\n", formatNumber(breakdown.TotalTweets))
}

// writeResults writes every result as a table row
func (f *markdownFormatter) writeResults(b *strings.Builder, results []analysis.Result) {
	b.WriteString("## Results\n\n")

	b.WriteString("| # | Tweet | Sentiment | Confidence |\n")
	b.WriteString("|---|-------|-----------|------------|\n")
	for i, result := range results {
		fmt.Fprintf(b, "| %d | %s | %s | %s %.0f%% |\n",
			i+1,
			escapeMarkdownCell(result.Tweet),
			escapeMarkdownCell(result.Sentiment),
			createConfidenceBar(result.Score),
			result.Score*100)
	}
}

func markdownBar(percent float64) string {
	filled := int(percent / 100 * 20)
	if filled < 0 {
		filled = 0
	}
	if filled > 20 {
		filled = 20
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", 20-filled)
}

// escapeMarkdownCell keeps a value on one table row
func escapeMarkdownCell(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.ReplaceAll(s, "|", `\|`)
}
