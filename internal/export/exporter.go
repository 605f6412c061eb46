package export

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/yildizm/TweetSense/internal/analysis"
	"github.com/yildizm/TweetSense/internal/logger"
)

// Downloader is the part of the backend client used for exports
type Downloader interface {
	Download(ctx context.Context, texts []string) ([]byte, error)
	DownloadChart(ctx context.Context, texts []string) ([]byte, error)
}

// Options controls where and how exports are written
type Options struct {
	Directory   string
	ChartWidth  int
	ChartHeight int
}

// Exporter writes date-stamped spreadsheet and chart files
type Exporter struct {
	client  Downloader
	options Options
	logger  *logger.Logger
	now     func() time.Time
}

// New creates a new exporter
func New(client Downloader, options Options, log *logger.Logger) *Exporter {
	if options.Directory == "" {
		options.Directory = "."
	}
	if options.ChartWidth == 0 {
		options.ChartWidth = DefaultChartWidth
	}
	if options.ChartHeight == 0 {
		options.ChartHeight = DefaultChartHeight
	}
	if log == nil {
		log = logger.New("export", nil)
	}
	return &Exporter{
		client:  client,
		options: options,
		logger:  log,
		now:     time.Now,
	}
}

// WithClock replaces the clock used for file names
func (e *Exporter) WithClock(now func() time.Time) *Exporter {
	e.now = now
	return e
}

// SpreadsheetName returns the export file name for day t
func SpreadsheetName(t time.Time) string {
	return "sentiment_analysis_" + t.Format("2006-01-02") + ".xlsx"
}

// ChartName returns the chart file name for day t
func ChartName(t time.Time) string {
	return "sentiment_chart_" + t.Format("2006-01-02") + ".png"
}

// SaveSpreadsheet re-submits the texts of results to /download and
// writes the returned workbook. No request is made for empty results.
func (e *Exporter) SaveSpreadsheet(ctx context.Context, results []analysis.Result) (string, error) {
	if len(results) == 0 {
		return "", &DownloadError{Message: msgNoResults}
	}

	data, err := e.client.Download(ctx, analysis.Texts(results))
	if err != nil {
		return "", newDownloadError(err)
	}

	if err := validateWorkbook(data); err != nil {
		return "", &DownloadError{Message: msgBadWorkbook, Cause: err}
	}

	path, err := e.write(SpreadsheetName(e.now()), data)
	if err != nil {
		return "", &DownloadError{Message: msgDownloadFailed, Cause: err}
	}

	e.logger.InfoWithFields("spreadsheet exported", []logger.Field{
		logger.F("path", path),
		logger.Count(len(results)),
	})
	return path, nil
}

// SaveChart renders report locally and writes it as PNG
func (e *Exporter) SaveChart(report *analysis.Report) (string, error) {
	if report == nil || len(report.Results) == 0 {
		return "", &ChartError{Message: msgNoChart}
	}

	img, err := RenderChart(report, e.options.ChartWidth, e.options.ChartHeight)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", &ChartError{Message: msgChartWriteFails, Cause: err}
	}

	path, err := e.write(ChartName(e.now()), buf.Bytes())
	if err != nil {
		return "", &ChartError{Message: msgChartWriteFails, Cause: err}
	}

	e.logger.InfoWithFields("chart exported", []logger.Field{logger.F("path", path)})
	return path, nil
}

// SaveServerChart writes the chart rendered by /download-chart unchanged
func (e *Exporter) SaveServerChart(ctx context.Context, results []analysis.Result) (string, error) {
	if len(results) == 0 {
		return "", &DownloadError{Message: msgNoResults}
	}

	data, err := e.client.DownloadChart(ctx, analysis.Texts(results))
	if err != nil {
		return "", newDownloadError(err)
	}

	if _, err := png.DecodeConfig(bytes.NewReader(data)); err != nil {
		return "", &DownloadError{Message: msgBadImage, Cause: err}
	}

	path, err := e.write(ChartName(e.now()), data)
	if err != nil {
		return "", &DownloadError{Message: msgDownloadFailed, Cause: err}
	}

	e.logger.InfoWithFields("server chart exported", []logger.Field{logger.F("path", path)})
	return path, nil
}

func (e *Exporter) write(name string, data []byte) (string, error) {
	if err := os.MkdirAll(e.options.Directory, 0o750); err != nil {
		return "", err
	}

	path := filepath.Join(e.options.Directory, name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return "", err
	}
	return path, nil
}

func validateWorkbook(data []byte) error {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if len(f.GetSheetList()) == 0 {
		return errors.New("workbook has no sheets")
	}
	return nil
}
