package analysis

import (
	"fmt"
	"strings"
)

const (
	LabelPositive = "positive"
	LabelNegative = "negative"
)

// Stats counts results by label. Labels other than positive and
// negative land in Other and are excluded from Total.
type Stats struct {
	Positive int `json:"positive"`
	Negative int `json:"negative"`
	Other    int `json:"other"`
}

// ComputeStats counts labels case-insensitively
func ComputeStats(results []Result) Stats {
	var s Stats
	for _, r := range results {
		switch strings.ToLower(strings.TrimSpace(r.Sentiment)) {
		case LabelPositive:
			s.Positive++
		case LabelNegative:
			s.Negative++
		default:
			s.Other++
		}
	}
	return s
}

// Total is positive plus negative
func (s Stats) Total() int {
	return s.Positive + s.Negative
}

// PositivePercent is the positive share of Total
func (s Stats) PositivePercent() float64 {
	return percent(s.Positive, s.Total())
}

// NegativePercent is the negative share of Total
func (s Stats) NegativePercent() float64 {
	return percent(s.Negative, s.Total())
}

// FormatPercent renders a percentage with one decimal place
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.1f%%", p)
}

// IsPositive reports whether label is positive, ignoring case
func IsPositive(label string) bool {
	return strings.EqualFold(strings.TrimSpace(label), LabelPositive)
}

// IsNegative reports whether label is negative, ignoring case
func IsNegative(label string) bool {
	return strings.EqualFold(strings.TrimSpace(label), LabelNegative)
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) / float64(total) * 100
}
