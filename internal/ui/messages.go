package ui

import (
	"github.com/yildizm/TweetSense/internal/analysis"
	"github.com/yildizm/TweetSense/internal/backend"
)

// healthMsg carries the one health snapshot of the session
type healthMsg struct {
	status backend.HealthStatus
}

type analysisDoneMsg struct {
	token  uint64
	report *analysis.Report
}

type analysisFailedMsg struct {
	token uint64
	err   error
}

type exportDoneMsg struct {
	token uint64
	kind  string
	path  string
}

type exportFailedMsg struct {
	token uint64
	kind  string
	err   error
}
