package backend

import (
	"net/url"
	"time"
)

// Config holds connection settings for the sentiment service
type Config struct {
	// BaseURL is the service root, e.g. http://localhost:8000
	BaseURL string `json:"base_url"`

	// Timeout for HTTP requests. Zero leaves the transport default in place.
	Timeout time.Duration `json:"timeout"`

	// UserAgent sent with every request
	UserAgent string `json:"user_agent"`
}

// DefaultConfig returns the configuration for a service on localhost
func DefaultConfig() *Config {
	return &Config{
		BaseURL:   "http://localhost:8000",
		Timeout:   0,
		UserAgent: "tweetsense",
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return NewConfigurationError("base_url", "base URL is required")
	}

	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return NewConfigurationError("base_url", "invalid base URL: "+err.Error())
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return NewConfigurationError("base_url", "scheme must be http or https")
	}
	if u.Host == "" {
		return NewConfigurationError("base_url", "host is required")
	}

	if c.Timeout < 0 {
		return NewConfigurationError("timeout", "timeout cannot be negative")
	}

	return nil
}
