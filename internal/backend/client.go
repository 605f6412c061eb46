package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/yildizm/TweetSense/internal/logger"
)

const (
	// RequestIDHeader carries the per-request correlation id
	RequestIDHeader = "X-Request-ID"

	maxErrorBody = 1 << 20
)

// Client talks to the sentiment service over HTTP
type Client struct {
	config  *Config
	client  *http.Client
	baseURL *url.URL
	logger  *logger.Logger
	newID   func() string
}

// New creates a new client instance
func New(config *Config, log *logger.Logger) (*Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, NewConfigurationError("base_url", "invalid base URL: "+err.Error())
	}

	if log == nil {
		log = logger.New("backend", nil)
	}

	return &Client{
		config:  config,
		client:  &http.Client{Timeout: config.Timeout},
		baseURL: baseURL,
		logger:  log,
		newID:   func() string { return uuid.New().String() },
	}, nil
}

// BaseURL returns the service root
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Health fetches the service health snapshot
func (c *Client) Health(ctx context.Context) (*HealthStatus, error) {
	body, err := c.do(ctx, http.MethodGet, "/health", nil)
	if err != nil {
		return nil, err
	}

	var status HealthStatus
	if err := json.Unmarshal(body, &status); err != nil {
		return nil, newDecodeError("/health", "", "failed to decode response", err)
	}
	if status.Status == "" {
		return nil, newDecodeError("/health", "", "response has no status", nil)
	}

	return &status, nil
}

// Analyze submits texts to /analyze and returns one item per text
func (c *Client) Analyze(ctx context.Context, texts []string) ([]ResultItem, error) {
	body, err := c.do(ctx, http.MethodPost, "/analyze", NewBatch(texts))
	if err != nil {
		return nil, err
	}
	return DecodeResults(body)
}

// Dashboard submits texts to /vader-dashboard
func (c *Client) Dashboard(ctx context.Context, texts []string) (*Dashboard, error) {
	body, err := c.do(ctx, http.MethodPost, "/vader-dashboard", NewBatch(texts))
	if err != nil {
		return nil, err
	}

	var dash Dashboard
	if err := json.Unmarshal(body, &dash); err != nil {
		return nil, newDecodeError("/vader-dashboard", "", "failed to decode response", err)
	}
	return &dash, nil
}

// Download fetches the formatted workbook for texts
func (c *Client) Download(ctx context.Context, texts []string) ([]byte, error) {
	return c.do(ctx, http.MethodPost, "/download", NewBatch(texts))
}

// DownloadChart fetches the service-rendered PNG chart for texts
func (c *Client) DownloadChart(ctx context.Context, texts []string) ([]byte, error) {
	return c.do(ctx, http.MethodPost, "/download-chart", NewBatch(texts))
}

// do performs one request and returns the body of a 2xx response
func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	endpoint := c.baseURL.JoinPath(path)
	requestID := c.newID()
	start := time.Now()

	var reqBody io.Reader = http.NoBody
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return nil, newInternalError(path, "failed to marshal request", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), reqBody)
	if err != nil {
		return nil, newInternalError(path, "failed to create request", err)
	}

	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(RequestIDHeader, requestID)
	if c.config.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.UserAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.WarnWithFields("%s %s failed", []logger.Field{
			logger.F("request_id", requestID),
			logger.Error(err),
		}, method, path)
		return nil, newNetworkError(path, requestID, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		detail := decodeDetail(body)
		c.logger.WarnWithFields("%s %s returned %d", []logger.Field{
			logger.F("request_id", requestID),
			logger.F("detail", detail),
		}, method, path, resp.StatusCode)
		return nil, newStatusError(path, requestID, resp.StatusCode, detail)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newNetworkError(path, requestID, err)
	}

	c.logger.DebugWithFields("%s %s", []logger.Field{
		logger.F("request_id", requestID),
		logger.F("status", resp.StatusCode),
		logger.F("bytes", len(body)),
		logger.Duration(time.Since(start)),
	}, method, path)

	return body, nil
}
