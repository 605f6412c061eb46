package config

// SampleConfig returns a fully documented configuration file
func SampleConfig() string {
	return `# TweetSense configuration
version: "1.0"

# Sentiment service connection
backend:
  # Root URL of the analysis service
  base_url: "http://localhost:8000"
  # Per-request timeout; 0 keeps the HTTP transport default
  timeout: 0s
  user_agent: "tweetsense"

analysis:
  # Upper bound on rows sent per upload; 0 sends every row
  max_rows: 0
  # Also request the averaged VADER sub-scores (a second request per analysis)
  vader_breakdown: false

export:
  # Where sentiment_analysis_YYYY-MM-DD.xlsx and sentiment_chart_YYYY-MM-DD.png go
  directory: "."
  chart_width: 800
  chart_height: 520

output:
  # json | text | markdown | csv
  default_format: "text"
  # auto | always | never
  color_mode: "auto"
  verbose: false
  timestamp_format: "2006-01-02 15:04:05"

ui:
  # default | dark | light
  theme: "default"
  # Visible rows in the results table
  table_height: 12
  # Log destination while the interactive UI is running; empty discards logs
  log_file: ""
`
}

// MinimalSampleConfig returns a configuration file with essential settings only
func MinimalSampleConfig() string {
	return `version: "1.0"
backend:
  base_url: "http://localhost:8000"
output:
  default_format: "text"
`
}
