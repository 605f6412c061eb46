package export

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/yildizm/TweetSense/internal/analysis"
	"github.com/yildizm/TweetSense/internal/backend"
	"github.com/yildizm/TweetSense/internal/logger"
)

var fixedDay = time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC)

func workbookBytes(t *testing.T) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	if err := f.SetCellValue("Sheet1", "A1", "Tweet"); err != nil {
		t.Fatalf("Failed to set cell: %v", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("Failed to write workbook: %v", err)
	}
	return buf.Bytes()
}

func newTestExporter(t *testing.T, handler http.HandlerFunc) (*Exporter, string) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := backend.DefaultConfig()
	config.BaseURL = server.URL
	client, err := backend.New(config, logger.NewWithWriter("backend", nil, io.Discard))
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	dir := t.TempDir()
	e := New(client, Options{Directory: dir}, logger.NewWithWriter("export", nil, io.Discard))
	return e.WithClock(func() time.Time { return fixedDay }), dir
}

func sampleResults() []analysis.Result {
	return []analysis.Result{
		{Tweet: "great day", Sentiment: "Positive", Score: 0.92},
		{Tweet: "bad day", Sentiment: "Negative", Score: 0.81},
	}
}

func TestFileNames(t *testing.T) {
	if got := SpreadsheetName(fixedDay); got != "sentiment_analysis_2025-03-14.xlsx" {
		t.Errorf("Unexpected spreadsheet name %s", got)
	}
	if got := ChartName(fixedDay); got != "sentiment_chart_2025-03-14.png" {
		t.Errorf("Unexpected chart name %s", got)
	}
}

func TestSaveSpreadsheet(t *testing.T) {
	payload := workbookBytes(t)
	e, dir := newTestExporter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/download" {
			t.Errorf("Expected path '/download', got '%s'", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		_, _ = w.Write(payload)
	})

	path, err := e.SaveSpreadsheet(context.Background(), sampleResults())
	if err != nil {
		t.Fatalf("SaveSpreadsheet failed: %v", err)
	}

	want := filepath.Join(dir, "sentiment_analysis_2025-03-14.xlsx")
	if path != want {
		t.Errorf("Expected path %s, got %s", want, path)
	}

	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read export: %v", err)
	}
	if !bytes.Equal(written, payload) {
		t.Error("Expected workbook written unchanged")
	}
}

func TestSaveSpreadsheet_EmptyResultsNoRequest(t *testing.T) {
	calls := 0
	e, _ := newTestExporter(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	_, err := e.SaveSpreadsheet(context.Background(), nil)

	var derr *DownloadError
	if !errors.As(err, &derr) {
		t.Fatalf("Expected DownloadError, got %v", err)
	}
	if derr.Error() != "No results to download" {
		t.Errorf("Expected 'No results to download', got %q", derr.Error())
	}
	if calls != 0 {
		t.Errorf("Expected no request, got %d", calls)
	}
}

func TestSaveSpreadsheet_Errors(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{"backend detail", http.StatusServiceUnavailable, `{"detail":"Hybrid model not loaded."}`, "Hybrid model not loaded."},
		{"no detail", http.StatusInternalServerError, `boom`, "Download failed"},
		{"not a workbook", http.StatusOK, `PK not really`, "backend returned an unreadable workbook"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, dir := newTestExporter(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := e.SaveSpreadsheet(context.Background(), sampleResults())

			var derr *DownloadError
			if !errors.As(err, &derr) {
				t.Fatalf("Expected DownloadError, got %v", err)
			}
			if derr.Message != tt.wantMessage {
				t.Errorf("Expected %q, got %q", tt.wantMessage, derr.Message)
			}

			entries, _ := os.ReadDir(dir)
			if len(entries) != 0 {
				t.Errorf("Expected no file written, found %d", len(entries))
			}
		})
	}
}

func TestSaveChart(t *testing.T) {
	e, dir := newTestExporter(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("Local chart must not contact the backend")
	})

	results := sampleResults()
	report := &analysis.Report{
		Results: results,
		Stats:   analysis.ComputeStats(results),
		Breakdown: &analysis.Breakdown{
			AveragePos: 0.4, AverageNeu: 0.5, AverageNeg: 0.1, AverageCompound: 0.31, TotalTweets: 2,
		},
	}

	path, err := e.SaveChart(report)
	if err != nil {
		t.Fatalf("SaveChart failed: %v", err)
	}
	if path != filepath.Join(dir, "sentiment_chart_2025-03-14.png") {
		t.Errorf("Unexpected path %s", path)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("Failed to open chart: %v", err)
	}
	defer func() { _ = file.Close() }()

	cfg, err := png.DecodeConfig(file)
	if err != nil {
		t.Fatalf("Chart is not a PNG: %v", err)
	}
	if cfg.Width != DefaultChartWidth || cfg.Height != DefaultChartHeight {
		t.Errorf("Expected %dx%d, got %dx%d", DefaultChartWidth, DefaultChartHeight, cfg.Width, cfg.Height)
	}
}

func TestSaveChart_NoResults(t *testing.T) {
	e, _ := newTestExporter(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := e.SaveChart(&analysis.Report{})

	var cerr *ChartError
	if !errors.As(err, &cerr) {
		t.Fatalf("Expected ChartError, got %v", err)
	}
	if cerr.Message != "No chart to export" {
		t.Errorf("Expected 'No chart to export', got %q", cerr.Message)
	}
}

func TestSaveServerChart(t *testing.T) {
	results := sampleResults()
	img, err := RenderChart(&analysis.Report{Results: results, Stats: analysis.ComputeStats(results)}, MinChartWidth, MinChartHeight)
	if err != nil {
		t.Fatalf("RenderChart failed: %v", err)
	}
	var payload bytes.Buffer
	if err := png.Encode(&payload, img); err != nil {
		t.Fatalf("Failed to encode PNG: %v", err)
	}

	e, _ := newTestExporter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/download-chart" {
			t.Errorf("Expected path '/download-chart', got '%s'", r.URL.Path)
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(payload.Bytes())
	})

	path, err := e.SaveServerChart(context.Background(), results)
	if err != nil {
		t.Fatalf("SaveServerChart failed: %v", err)
	}

	written, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read chart: %v", err)
	}
	if !bytes.Equal(written, payload.Bytes()) {
		t.Error("Expected server chart written unchanged")
	}
}

func TestSaveServerChart_NotPNG(t *testing.T) {
	e, _ := newTestExporter(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	_, err := e.SaveServerChart(context.Background(), sampleResults())

	var derr *DownloadError
	if !errors.As(err, &derr) {
		t.Fatalf("Expected DownloadError, got %v", err)
	}
	if derr.Message != "backend returned an unreadable image" {
		t.Errorf("Unexpected message %q", derr.Message)
	}
}

func TestRenderChart_TooSmall(t *testing.T) {
	results := sampleResults()
	_, err := RenderChart(&analysis.Report{Results: results}, 100, 100)

	var cerr *ChartError
	if !errors.As(err, &cerr) {
		t.Errorf("Expected ChartError, got %v", err)
	}
}

func TestRenderChart_PaintsLabelColors(t *testing.T) {
	results := []analysis.Result{{Tweet: "a", Sentiment: "positive"}}
	img, err := RenderChart(&analysis.Report{Results: results, Stats: analysis.ComputeStats(results)}, 400, 300)
	if err != nil {
		t.Fatalf("RenderChart failed: %v", err)
	}

	found := false
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y && !found; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) == colorPositive {
				found = true
				break
			}
		}
	}
	if !found {
		t.Error("Expected positive bar to be painted")
	}
}
