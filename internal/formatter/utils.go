package formatter

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yildizm/go-termfmt"

	"github.com/yildizm/TweetSense/internal/analysis"
)

// formatNumber formats numbers with commas for readability
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return addCommas(fmt.Sprintf("%d", n))
}

// addCommas adds commas to number strings
func addCommas(s string) string {
	if len(s) <= 3 {
		return s
	}
	return addCommas(s[:len(s)-3]) + "," + s[len(s)-3:]
}

// countWithPercent renders "n (p%)"
func countWithPercent(n int, p float64) string {
	return fmt.Sprintf("%s (%s)", formatNumber(n), analysis.FormatPercent(p))
}

// truncate shortens s to at most limit runes and flattens line breaks
func truncate(s string, limit int) string {
	s = strings.Join(strings.Fields(s), " ")
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	return string(runes[:limit-3]) + "..."
}

// createConfidenceBar creates ASCII confidence bar using go-termfmt
func createConfidenceBar(confidence float64) string {
	opts := termfmt.DefaultOptions()
	return termfmt.CreateConfidenceBar(clamp(confidence), opts)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// compound returns the VADER compound score of r, if reported
func compound(r analysis.Result) (float64, bool) {
	if r.Vader == nil {
		return 0, false
	}
	return r.Vader.Compound, true
}
