package analysis

import "testing"

func TestComputeStats(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		want   Stats
	}{
		{"empty", nil, Stats{}},
		{"mixed case", []string{"Positive", "NEGATIVE", "positive", " negative "}, Stats{Positive: 2, Negative: 2}},
		{"neutral excluded", []string{"positive", "neutral", "negative"}, Stats{Positive: 1, Negative: 1, Other: 1}},
		{"unknown labels", []string{"", "mixed"}, Stats{Other: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := make([]Result, len(tt.labels))
			for i, label := range tt.labels {
				results[i] = Result{Tweet: "t", Sentiment: label}
			}

			got := ComputeStats(results)
			if got != tt.want {
				t.Errorf("Expected %+v, got %+v", tt.want, got)
			}
			if got.Total() > len(results) {
				t.Errorf("Total %d exceeds result count %d", got.Total(), len(results))
			}
			if got.Total()+got.Other != len(results) {
				t.Errorf("Expected every result counted once, got %+v for %d results", got, len(results))
			}
		})
	}
}

func TestStatsPercent(t *testing.T) {
	tests := []struct {
		name    string
		stats   Stats
		wantPos string
		wantNeg string
	}{
		{"even", Stats{Positive: 1, Negative: 1}, "50.0%", "50.0%"},
		{"thirds", Stats{Positive: 1, Negative: 2}, "33.3%", "66.7%"},
		{"other ignored", Stats{Positive: 3, Other: 5}, "100.0%", "0.0%"},
		{"nothing", Stats{}, "0.0%", "0.0%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPercent(tt.stats.PositivePercent()); got != tt.wantPos {
				t.Errorf("Expected positive %s, got %s", tt.wantPos, got)
			}
			if got := FormatPercent(tt.stats.NegativePercent()); got != tt.wantNeg {
				t.Errorf("Expected negative %s, got %s", tt.wantNeg, got)
			}
		})
	}
}
