package export

import (
	"errors"
	"fmt"

	"github.com/yildizm/TweetSense/internal/backend"
)

const (
	msgNoResults       = "No results to download"
	msgDownloadFailed  = "Download failed"
	msgBadWorkbook     = "backend returned an unreadable workbook"
	msgBadImage        = "backend returned an unreadable image"
	msgNoChart         = "No chart to export"
	msgChartWriteFails = "Chart export failed"
)

// DownloadError is a user-facing failure of a backend-produced export
type DownloadError struct {
	Message string
	Cause   error
}

func (e *DownloadError) Error() string {
	return e.Message
}

func (e *DownloadError) Unwrap() error {
	return e.Cause
}

// ChartError is a user-facing failure of the locally rendered chart
type ChartError struct {
	Message string
	Cause   error
}

func (e *ChartError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ChartError) Unwrap() error {
	return e.Cause
}

// newDownloadError maps a backend failure to its banner text
func newDownloadError(err error) *DownloadError {
	var re *backend.RequestError
	if errors.As(err, &re) && re.HasDetail() {
		return &DownloadError{Message: re.Detail, Cause: err}
	}
	if errors.As(err, &re) && re.Kind == backend.KindNetwork {
		return &DownloadError{Message: msgDownloadFailed + ": could not reach backend", Cause: err}
	}
	return &DownloadError{Message: msgDownloadFailed, Cause: err}
}
