package ui

import "github.com/yildizm/TweetSense/internal/analysis"

// Phase is the mutually exclusive top-level screen of the UI
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseError
	PhaseResults
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseError:
		return "error"
	case PhaseResults:
		return "results"
	default:
		return "unknown"
	}
}

// ViewState is the immutable presentation state. Every transition
// returns a new value; the receiver is never modified.
type ViewState struct {
	Phase  Phase
	Token  uint64
	Source string

	// Report is set only in PhaseResults
	Report *analysis.Report

	// Err is the banner text in PhaseError, or the export failure
	// shown above results in PhaseResults
	Err string

	// Notice confirms the last successful export
	Notice string
}

// Idle returns the initial state
func Idle() ViewState {
	return ViewState{Phase: PhaseIdle}
}

// Upload starts loading source under token, dropping any previous
// results or error.
func (s ViewState) Upload(source string, token uint64) ViewState {
	return ViewState{
		Phase:  PhaseLoading,
		Token:  token,
		Source: source,
	}
}

// Succeed shows report if token is the one being loaded
func (s ViewState) Succeed(token uint64, report *analysis.Report) ViewState {
	if !s.accepts(token) {
		return s
	}
	return ViewState{
		Phase:  PhaseResults,
		Token:  token,
		Source: s.Source,
		Report: report,
	}
}

// Fail shows message if token is the one being loaded
func (s ViewState) Fail(token uint64, message string) ViewState {
	if !s.accepts(token) {
		return s
	}
	return ViewState{
		Phase:  PhaseError,
		Token:  token,
		Source: s.Source,
		Err:    message,
	}
}

// ExportFailed reports an export started under token. Results stay
// visible. Exports from an earlier upload, or arriving while a newer
// upload loads, are dropped.
func (s ViewState) ExportFailed(token uint64, message string) ViewState {
	if !s.acceptsExport(token) {
		return s
	}
	next := s
	next.Err = message
	next.Notice = ""
	if s.Phase != PhaseResults {
		next.Phase = PhaseError
		next.Report = nil
	}
	return next
}

// ExportDone records a successful export started under token and clears
// any export error
func (s ViewState) ExportDone(token uint64, message string) ViewState {
	if !s.acceptsExport(token) {
		return s
	}
	next := s
	next.Notice = message
	if s.Phase == PhaseResults {
		next.Err = ""
	}
	return next
}

// Results returns the visible results, if any
func (s ViewState) Results() []analysis.Result {
	if s.Phase != PhaseResults || s.Report == nil {
		return nil
	}
	return s.Report.Results
}

func (s ViewState) accepts(token uint64) bool {
	return s.Phase == PhaseLoading && token == s.Token
}

func (s ViewState) acceptsExport(token uint64) bool {
	return s.Phase != PhaseLoading && token == s.Token
}
