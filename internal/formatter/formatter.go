package formatter

import "github.com/yildizm/TweetSense/internal/analysis"

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(report *analysis.Report) ([]byte, error)
}
