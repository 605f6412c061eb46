package formatter

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/yildizm/TweetSense/internal/analysis"
	"github.com/yildizm/TweetSense/internal/backend"
	"github.com/yildizm/TweetSense/internal/emoji"
)

func sampleReport() *analysis.Report {
	results := []analysis.Result{
		{Tweet: "I love this", Sentiment: "Positive", Score: 0.92, Vader: &backend.VaderScores{Compound: 0.6369}},
		{Tweet: "Worst | day\never", Sentiment: "Negative", Score: 0.81},
	}
	return &analysis.Report{
		Source:      "tweets.xlsx",
		Backend:     "http://localhost:8000",
		Results:     results,
		Stats:       analysis.ComputeStats(results),
		GeneratedAt: time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC),
		Duration:    1500 * time.Millisecond,
	}
}

func TestTerminalFormat(t *testing.T) {
	emoji.SetEmojiDisabled(true)
	defer emoji.SetEmojiDisabled(false)

	out, err := NewTerminal(false).Format(sampleReport())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	output := string(out)

	for _, want := range []string{
		"Sentiment Analysis Summary",
		"tweets.xlsx",
		"1 (50.0%)",
		"50.0% positive / 50.0% negative",
		"I love this",
		"Worst | day ever",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q\n%s", want, output)
		}
	}

	if strings.Contains(output, "VADER Breakdown") {
		t.Error("Breakdown section should be omitted without a breakdown")
	}
}

func TestTerminalFormat_Breakdown(t *testing.T) {
	report := sampleReport()
	report.Breakdown = &analysis.Breakdown{AveragePos: 0.4, AverageNeu: 0.5, AverageNeg: 0.1, AverageCompound: 0.312, TotalTweets: 2}

	out, err := NewTerminal(false).Format(report)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(string(out), "VADER Breakdown") || !strings.Contains(string(out), "0.312") {
		t.Errorf("Expected breakdown section, got:\n%s", out)
	}
}

func TestTerminalFormat_LimitsResults(t *testing.T) {
	results := make([]analysis.Result, maxTextResults+5)
	for i := range results {
		results[i] = analysis.Result{Tweet: fmt.Sprintf("tweet-%d", i), Sentiment: "positive", Score: 0.5}
	}
	report := &analysis.Report{Results: results, Stats: analysis.ComputeStats(results)}

	out, err := NewTerminal(false).Format(report)
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	output := string(out)

	if strings.Contains(output, fmt.Sprintf("tweet-%d", maxTextResults)) {
		t.Error("Results beyond the limit should not be printed")
	}
	if !strings.Contains(output, "... and 5 more") {
		t.Errorf("Expected hidden row notice, got:\n%s", output)
	}
}

func TestTerminalFormat_Empty(t *testing.T) {
	out, err := NewTerminal(false).Format(&analysis.Report{})
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !strings.Contains(string(out), "0.0% positive / 0.0% negative") {
		t.Errorf("Expected zero percentages, got:\n%s", out)
	}
}

func TestJSONFormat(t *testing.T) {
	out, err := NewJSON().Format(sampleReport())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	var decoded JSONOutput
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	if decoded.Summary.Total != 2 || decoded.Summary.PositivePercent != 50 {
		t.Errorf("Unexpected summary %+v", decoded.Summary)
	}
	if len(decoded.Results) != 2 || decoded.Results[0].Tweet != "I love this" {
		t.Errorf("Unexpected results %+v", decoded.Results)
	}
	if decoded.Breakdown != nil {
		t.Error("Expected no breakdown")
	}
}

func TestJSONFormat_EmptyResultsIsArray(t *testing.T) {
	out, err := NewJSON().Format(&analysis.Report{})
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	if !bytes.Contains(out, []byte(`"results": []`)) {
		t.Errorf("Expected empty results array, got %s", out)
	}
}

func TestCSVFormat(t *testing.T) {
	out, err := NewCSV().Format(sampleReport())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("Output is not valid CSV: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("Expected header plus 2 rows, got %d", len(records))
	}
	if records[0][1] != "Tweet" {
		t.Errorf("Expected 'Tweet' header, got %q", records[0][1])
	}
	if records[1][5] != "0.6369" {
		t.Errorf("Expected compound 0.6369, got %q", records[1][5])
	}
	if records[2][1] != "Worst | day\never" {
		t.Errorf("Expected tweet preserved, got %q", records[2][1])
	}
	if records[2][5] != "" {
		t.Errorf("Expected empty compound, got %q", records[2][5])
	}
}

func TestMarkdownFormat(t *testing.T) {
	out, err := NewMarkdown().Format(sampleReport())
	if err != nil {
		t.Fatalf("Format failed: %v", err)
	}
	output := string(out)

	for _, want := range []string{
		"# Sentiment Analysis Report",
		"Generated: 2025-03-14 15:09:26",
		"| Positive | 1 (50.0%) |",
		`Worst \| day ever`,
		"- [Results](#results)",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q\n%s", want, output)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in       string
		limit    int
		expected string
	}{
		{"short", 10, "short"},
		{"line\nbreak", 20, "line break"},
		{"abcdefghij", 8, "abcde..."},
		{"çççççççççç", 6, "ççç..."},
	}

	for _, tt := range tests {
		if got := truncate(tt.in, tt.limit); got != tt.expected {
			t.Errorf("truncate(%q, %d): expected %q, got %q", tt.in, tt.limit, tt.expected, got)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		n        int
		expected string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
	}

	for _, tt := range tests {
		if got := formatNumber(tt.n); got != tt.expected {
			t.Errorf("formatNumber(%d): expected %s, got %s", tt.n, tt.expected, got)
		}
	}
}
