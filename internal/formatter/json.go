package formatter

import (
	"encoding/json"
	"time"

	"github.com/yildizm/TweetSense/internal/analysis"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

func (f *jsonFormatter) Format(report *analysis.Report) ([]byte, error) {
	output := &JSONOutput{
		Summary:   createSummary(report),
		Breakdown: report.Breakdown,
		Results:   report.Results,
	}
	if output.Results == nil {
		output.Results = []analysis.Result{}
	}

	return json.MarshalIndent(output, "", "  ")
}

// JSONOutput is the document written by the JSON formatter
type JSONOutput struct {
	Summary   *SummaryOutput      `json:"summary"`
	Breakdown *analysis.Breakdown `json:"vader_breakdown,omitempty"`
	Results   []analysis.Result   `json:"results"`
}

// SummaryOutput represents the summary section
type SummaryOutput struct {
	Source          string    `json:"source,omitempty"`
	Backend         string    `json:"backend,omitempty"`
	Total           int       `json:"total"`
	Positive        int       `json:"positive"`
	Negative        int       `json:"negative"`
	Other           int       `json:"other"`
	PositivePercent float64   `json:"positive_percent"`
	NegativePercent float64   `json:"negative_percent"`
	GeneratedAt     time.Time `json:"generated_at"`
	Duration        string    `json:"duration,omitempty"`
}

func createSummary(report *analysis.Report) *SummaryOutput {
	stats := report.Stats
	summary := &SummaryOutput{
		Source:          report.Source,
		Backend:         report.Backend,
		Total:           stats.Total(),
		Positive:        stats.Positive,
		Negative:        stats.Negative,
		Other:           stats.Other,
		PositivePercent: stats.PositivePercent(),
		NegativePercent: stats.NegativePercent(),
		GeneratedAt:     report.GeneratedAt,
	}
	if report.Duration > 0 {
		summary.Duration = report.Duration.String()
	}
	return summary
}
