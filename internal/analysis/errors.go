package analysis

import (
	"errors"
	"fmt"

	"github.com/yildizm/TweetSense/internal/backend"
)

// ErrSuperseded is returned when a newer request was issued while this
// one was in flight. The caller must discard the response.
var ErrSuperseded = errors.New("analysis superseded by a newer request")

const (
	msgAnalysisFailed = "Analysis failed"
	msgUnexpected     = "Unexpected response from backend"
	msgConnectFormat  = "Error connecting to backend. Make sure the sentiment service is running at %s."
)

// AnalysisError is a user-facing analysis failure. Message is shown
// verbatim in the error banner.
type AnalysisError struct {
	Message string
	Cause   error
}

func (e *AnalysisError) Error() string {
	return e.Message
}

func (e *AnalysisError) Unwrap() error {
	return e.Cause
}

// newAnalysisError maps a backend failure to its banner text
func newAnalysisError(err error, baseURL string) *AnalysisError {
	var re *backend.RequestError
	if !errors.As(err, &re) {
		return &AnalysisError{Message: msgAnalysisFailed, Cause: err}
	}

	switch re.Kind {
	case backend.KindStatus:
		if re.HasDetail() {
			return &AnalysisError{Message: re.Detail, Cause: err}
		}
		return &AnalysisError{Message: msgAnalysisFailed, Cause: err}
	case backend.KindNetwork:
		return &AnalysisError{Message: fmt.Sprintf(msgConnectFormat, baseURL), Cause: err}
	case backend.KindDecode:
		return &AnalysisError{Message: msgUnexpected + ": " + re.Message, Cause: err}
	default:
		return &AnalysisError{Message: msgAnalysisFailed, Cause: err}
	}
}
