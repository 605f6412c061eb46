package analysis

import (
	"time"

	"github.com/yildizm/TweetSense/internal/backend"
)

// Result is one analysed text, in the order the service returned it
type Result struct {
	Tweet     string  `json:"tweet"`
	Sentiment string  `json:"sentiment"`
	Score     float64 `json:"score"`

	// LogisticRegression is the classifier-only label, when reported
	LogisticRegression string `json:"logistic_regression,omitempty"`

	// Vader holds the lexicon sub-scores, when reported
	Vader *backend.VaderScores `json:"vader,omitempty"`
}

// Breakdown is the service's VADER summary for a batch
type Breakdown struct {
	AveragePos      float64        `json:"average_pos"`
	AverageNeu      float64        `json:"average_neu"`
	AverageNeg      float64        `json:"average_neg"`
	AverageCompound float64        `json:"average_compound"`
	TotalTweets     int            `json:"total_tweets"`
	Distribution    map[string]int `json:"distribution,omitempty"`
}

// Outcome is the product of one successful analysis
type Outcome struct {
	Token     uint64
	Results   []Result
	Stats     Stats
	Breakdown *Breakdown
	Duration  time.Duration
}

// Report bundles an outcome with its context for formatters and exporters
type Report struct {
	Source      string        `json:"source"`
	Backend     string        `json:"backend"`
	Results     []Result      `json:"results"`
	Stats       Stats         `json:"stats"`
	Breakdown   *Breakdown    `json:"vader_breakdown,omitempty"`
	GeneratedAt time.Time     `json:"generated_at"`
	Duration    time.Duration `json:"duration"`
}

// NewReport creates a report for outcome
func NewReport(source, backendURL string, outcome *Outcome, generatedAt time.Time) *Report {
	return &Report{
		Source:      source,
		Backend:     backendURL,
		Results:     outcome.Results,
		Stats:       outcome.Stats,
		Breakdown:   outcome.Breakdown,
		GeneratedAt: generatedAt,
		Duration:    outcome.Duration,
	}
}

// Texts returns the original texts of results, in order
func Texts(results []Result) []string {
	texts := make([]string, len(results))
	for i, r := range results {
		texts[i] = r.Tweet
	}
	return texts
}

func fromItems(items []backend.ResultItem) []Result {
	results := make([]Result, len(items))
	for i, item := range items {
		results[i] = Result{
			Tweet:              item.Tweet,
			Sentiment:          item.Label(),
			Score:              item.Confidence(),
			LogisticRegression: item.LogisticRegression,
			Vader:              item.Vader,
		}
	}
	return results
}

func fromDashboard(d *backend.Dashboard) *Breakdown {
	return &Breakdown{
		AveragePos:      d.Summary.AveragePos,
		AverageNeu:      d.Summary.AverageNeu,
		AverageNeg:      d.Summary.AverageNeg,
		AverageCompound: d.Summary.AverageCompound,
		TotalTweets:     d.Summary.TotalTweets,
		Distribution:    d.Distribution,
	}
}
