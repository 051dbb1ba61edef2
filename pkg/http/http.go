package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/tokenforge/tokenforge-backend/pkg/logging"
	"github.com/tokenforge/tokenforge-backend/pkg/retry"
)

// HTTPRetryConfig holds configuration for HTTP retry operations
type HTTPRetryConfig struct {
	RetryConfig     *retry.RetryConfig
	Timeout         time.Duration
	IdleConnTimeout time.Duration
	MaxResponseSize int64 // Maximum response size to read for error messages
}

// DefaultHTTPRetryConfig returns default configuration for HTTP retry operations
func DefaultHTTPRetryConfig() *HTTPRetryConfig {
	return &HTTPRetryConfig{
		RetryConfig:     retry.DefaultRetryConfig(),
		Timeout:         10 * time.Second,
		IdleConnTimeout: 30 * time.Second,
		MaxResponseSize: 4096,
	}
}

func (c *HTTPRetryConfig) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.IdleConnTimeout <= 0 {
		return fmt.Errorf("idleConnTimeout must be positive")
	}
	if c.MaxResponseSize < 0 {
		return fmt.Errorf("maxResponseSize must be >= 0")
	}
	return nil
}

// HTTPError represents an HTTP-specific error with status code
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// HTTPClient is a wrapper around http.Client that includes retry logic
type HTTPClient struct {
	client     *http.Client
	HTTPConfig *HTTPRetryConfig
	logger     logging.Logger
}

var _ HTTPClientInterface = (*HTTPClient)(nil)

// NewHTTPClient creates a new HTTP client with retry capabilities
func NewHTTPClient(httpConfig *HTTPRetryConfig, logger logging.Logger) (*HTTPClient, error) {
	if httpConfig == nil {
		httpConfig = DefaultHTTPRetryConfig()
	}

	if err := httpConfig.Validate(); err != nil {
		return nil, fmt.Errorf("invalid HTTP retry config: %w", err)
	}

	if httpConfig.RetryConfig.ShouldRetry == nil {
		httpConfig.RetryConfig.ShouldRetry = func(err error, attempt int) bool {
			var httpErr *HTTPError
			if errors.As(err, &httpErr) {
				// Retry on 5xx and 429, everything else is a caller problem.
				return httpErr.StatusCode >= 500 || httpErr.StatusCode == 429
			}
			// Network errors and the like are assumed retryable.
			return true
		}
	}

	client := &http.Client{
		Timeout: httpConfig.Timeout,
		Transport: &http.Transport{
			IdleConnTimeout:   httpConfig.IdleConnTimeout,
			DisableKeepAlives: false,
			DialContext: (&net.Dialer{
				Timeout:   httpConfig.Timeout / 2,
				KeepAlive: httpConfig.IdleConnTimeout,
			}).DialContext,
			TLSHandshakeTimeout:   httpConfig.Timeout / 2,
			ResponseHeaderTimeout: httpConfig.Timeout / 2,
		},
	}

	return &HTTPClient{
		client:     client,
		HTTPConfig: httpConfig,
		logger:     logger,
	}, nil
}

// DoWithRetry performs an HTTP request with retry logic.
// The caller is responsible for closing the response body.
func (c *HTTPClient) DoWithRetry(ctx context.Context, req *http.Request) (*http.Response, error) {
	operation := func() (*http.Response, error) {
		attemptReq := req.Clone(ctx)
		if req.GetBody != nil {
			body, err := req.GetBody()
			if err != nil {
				return nil, fmt.Errorf("failed to rewind request body: %w", err)
			}
			attemptReq.Body = body
		}

		resp, err := c.client.Do(attemptReq)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode >= 400 {
			msg := c.readErrorBody(resp)
			_ = resp.Body.Close()
			return nil, &HTTPError{StatusCode: resp.StatusCode, Message: msg}
		}

		return resp, nil
	}

	return retry.Retry(ctx, operation, c.HTTPConfig.RetryConfig, c.logger)
}

// readErrorBody reads a bounded chunk of the response body for error reporting.
func (c *HTTPClient) readErrorBody(resp *http.Response) string {
	limited := io.LimitReader(resp.Body, c.HTTPConfig.MaxResponseSize)
	body, err := io.ReadAll(limited)
	if err != nil || len(body) == 0 {
		return resp.Status
	}
	return string(body)
}

// Get performs a GET request with retries.
func (c *HTTPClient) Get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	return c.DoWithRetry(ctx, req)
}

// Post performs a POST request with retries.
func (c *HTTPClient) Post(ctx context.Context, url, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	return c.DoWithRetry(ctx, req)
}

// Put performs a PUT request with retries.
func (c *HTTPClient) Put(ctx context.Context, url, contentType string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", contentType)
	return c.DoWithRetry(ctx, req)
}

// GetClient exposes the underlying http.Client.
func (c *HTTPClient) GetClient() *http.Client {
	return c.client
}

// Close closes idle connections.
func (c *HTTPClient) Close() {
	c.client.CloseIdleConnections()
}
