package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/yildizm/TweetSense/internal/analysis"
)

// csvFormatter formats results as CSV, one row per tweet
type csvFormatter struct{}

// NewCSV creates a new CSV formatter
func NewCSV() Formatter {
	return &csvFormatter{}
}

func (f *csvFormatter) Format(report *analysis.Report) ([]byte, error) {
	var b bytes.Buffer
	writer := csv.NewWriter(&b)

	headers := []string{
		"#",
		"Tweet",
		"Sentiment",
		"Score",
		"LogReg",
		"VADER Compound",
	}

	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for i, result := range report.Results {
		vader := ""
		if c, ok := compound(result); ok {
			vader = strconv.FormatFloat(c, 'f', 4, 64)
		}

		record := []string{
			strconv.Itoa(i + 1),
			result.Tweet,
			result.Sentiment,
			strconv.FormatFloat(result.Score, 'f', 4, 64),
			result.LogisticRegression,
			vader,
		}

		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return b.Bytes(), nil
}
