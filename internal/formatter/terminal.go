package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/yildizm/go-termfmt"

	"github.com/yildizm/TweetSense/internal/analysis"
	"github.com/yildizm/TweetSense/internal/emoji"
)

const (
	maxTextResults = 50
	maxTweetWidth  = 60
	distributionW  = 40
)

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = !emoji.IsEmojiDisabled()
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) Format(report *analysis.Report) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b)
	f.writeStatistics(&b, report)
	f.writeDistribution(&b, report.Stats)

	if report.Breakdown != nil {
		f.writeBreakdown(&b, report.Breakdown)
	}

	if len(report.Results) > 0 {
		f.writeResults(&b, report.Results)
	}

	return []byte(b.String()), nil
}

// writeHeader writes the boxed report title
func (f *terminalFormatter) writeHeader(b *strings.Builder) {
	header := "Sentiment Analysis Summary"
	headerLen := len(header)

	b.WriteString("╔" + strings.Repeat("═", headerLen+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", headerLen+2) + "╝\n\n")
}

// writeStatistics writes statistics with tree-style formatting using go-termfmt
func (f *terminalFormatter) writeStatistics(b *strings.Builder, report *analysis.Report) {
	symbol := termfmt.GetEmoji("statistics", f.opts)
	b.WriteString(symbol + " Statistics\n")

	stats := report.Stats
	items := []termfmt.TreeItem{}
	if report.Source != "" {
		items = append(items, termfmt.TreeItem{Label: "Source", Value: report.Source})
	}
	items = append(items,
		termfmt.TreeItem{Label: "Total", Value: formatNumber(stats.Total())},
		termfmt.TreeItem{Label: "Positive", Value: countWithPercent(stats.Positive, stats.PositivePercent())},
		termfmt.TreeItem{Label: "Negative", Value: countWithPercent(stats.Negative, stats.NegativePercent())},
	)
	if stats.Other > 0 {
		items = append(items, termfmt.TreeItem{Label: "Other labels", Value: formatNumber(stats.Other)})
	}
	if report.Duration > 0 {
		items = append(items, termfmt.TreeItem{Label: "Duration", Value: report.Duration.Round(time.Millisecond).String()})
	}
	items[len(items)-1].Last = true

	tree := termfmt.TreeViewWithOptions(items, f.opts)
	b.WriteString(tree + "\n\n")
}

// writeDistribution writes a single bar split between positive and negative
func (f *terminalFormatter) writeDistribution(b *strings.Builder, stats analysis.Stats) {
	b.WriteString("Distribution\n")

	filled, empty := "█", "░"
	if !f.opts.Emoji {
		filled, empty = "+", "-"
	}

	pos := 0
	if stats.Total() > 0 {
		pos = int(stats.PositivePercent()/100*distributionW + 0.5)
	}
	bar := strings.Repeat(filled, pos) + strings.Repeat(empty, distributionW-pos)

	fmt.Fprintf(b, "[%s] %s positive / %s negative\n\n",
		bar,
		analysis.FormatPercent(stats.PositivePercent()),
		analysis.FormatPercent(stats.NegativePercent()))
}

// writeBreakdown writes the averaged VADER sub-scores
func (f *terminalFormatter) writeBreakdown(b *strings.Builder, breakdown *analysis.Breakdown) {
	symbol := termfmt.GetEmoji("insights", f.opts)
	b.WriteString(symbol + " VADER Breakdown\n")

	items := []termfmt.TreeItem{
		{Label: "Compound", Value: fmt.Sprintf("%.3f", breakdown.AverageCompound)},
		{Label: "Positive", Value: fmt.Sprintf("%s %.3f", termfmt.CreateConfidenceBar(clamp(breakdown.AveragePos), f.opts), breakdown.AveragePos)},
		{Label: "Neutral", Value: fmt.Sprintf("%s %.3f", termfmt.CreateConfidenceBar(clamp(breakdown.AverageNeu), f.opts), breakdown.AverageNeu)},
		{Label: "Negative", Value: fmt.Sprintf("%s %.3f", termfmt.CreateConfidenceBar(clamp(breakdown.AverageNeg), f.opts), breakdown.AverageNeg)},
		{Label: "Tweets", Value: formatNumber(breakdown.TotalTweets), Last: true},
	}

	tree := termfmt.TreeViewWithOptions(items, f.opts)
	b.WriteString(tree + "\n\n")
}

// writeResults writes one tree entry per result, capped at maxTextResults
func (f *terminalFormatter) writeResults(b *strings.Builder, results []analysis.Result) {
	symbol := termfmt.GetEmoji("summary", f.opts)
	b.WriteString(symbol + " Results\n")

	shown := results
	if len(shown) > maxTextResults {
		shown = shown[:maxTextResults]
	}

	items := make([]termfmt.TreeItem, 0, len(shown))
	for i, result := range shown {
		item := termfmt.TreeItem{
			Label: fmt.Sprintf("%d. %s %s", i+1, emoji.ForLabel(result.Sentiment), truncate(result.Tweet, maxTweetWidth)),
			Value: result.Sentiment,
			Children: []termfmt.TreeItem{
				{Label: termfmt.CreateConfidenceBar(clamp(result.Score), f.opts), Value: fmt.Sprintf("%.0f%%", result.Score*100)},
			},
			Last: i == len(shown)-1,
		}
		items = append(items, item)
	}

	tree := termfmt.TreeViewWithOptions(items, f.opts)
	b.WriteString(tree + "\n")

	if hidden := len(results) - len(shown); hidden > 0 {
		fmt.Fprintf(b, "... and %s more (use --format csv or --format json for all rows)\n", formatNumber(hidden))
	}
}
