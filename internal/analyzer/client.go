// Package analyzer is the HTTP client for the remote sentiment-analysis endpoint.
package analyzer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/f3rmion/senti/internal/sentiment"
)

// DefaultEndpoint is the analyzer address used when none is configured.
const DefaultEndpoint = "http://localhost:5000/api/analyze-sentiment"

// DefaultMaxResponseBytes caps the response body read by a Client.
const DefaultMaxResponseBytes = 10 << 20

// ErrRequestFailed matches every error returned by Client.Analyze.
var ErrRequestFailed = errors.New("analyze request failed")

// RequestError describes a failed analyze request. Network failures, non-2xx
// statuses and unusable bodies all surface as a RequestError.
type RequestError struct {
	Op         string // "request", "status" or "decode"
	StatusCode int    // 0 when no response was received
	Message    string // server-provided error message, if any
	Err        error
}

func (e *RequestError) Error() string {
	msg := fmt.Sprintf("analyze %s", e.Op)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (HTTP %d)", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *RequestError) Unwrap() error { return e.Err }

// Is reports ErrRequestFailed for every RequestError.
func (e *RequestError) Is(target error) bool { return target == ErrRequestFailed }

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client posts text to the analyzer endpoint.
type Client struct {
	endpoint   string
	httpClient Doer
	timeout    time.Duration
	maxBody    int64
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(d Doer) Option {
	return func(c *Client) { c.httpClient = d }
}

// WithTimeout bounds each request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// WithMaxResponseBytes caps the response body size. Larger bodies fail with
// a decode error.
func WithMaxResponseBytes(n int64) Option {
	return func(c *Client) { c.maxBody = n }
}

// NewClient creates a client for endpoint, falling back to DefaultEndpoint.
func NewClient(endpoint string, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{},
		maxBody:    DefaultMaxResponseBytes,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the URL requests are sent to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Analyze sends text to the analyzer and decodes the result. The request is
// not retried.
func (c *Client) Analyze(ctx context.Context, text string) (*sentiment.Result, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(sentiment.Request{Text: text})
	if err != nil {
		return nil, &RequestError{Op: "request", Err: fmt.Errorf("marshaling request: %w", err)}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, &RequestError{Op: "request", Err: fmt.Errorf("creating request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &RequestError{Op: "request", Err: fmt.Errorf("making request: %w", err)}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, &RequestError{Op: "request", StatusCode: resp.StatusCode, Err: fmt.Errorf("reading response: %w", err)}
	}
	if int64(len(respBody)) > c.maxBody {
		return nil, &RequestError{Op: "decode", StatusCode: resp.StatusCode, Err: fmt.Errorf("response body exceeds %d bytes", c.maxBody)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr sentiment.ErrorBody
		_ = json.Unmarshal(respBody, &apiErr)
		return nil, &RequestError{
			Op:         "status",
			StatusCode: resp.StatusCode,
			Message:    apiErr.Error,
			Err:        fmt.Errorf("unexpected status %s", resp.Status),
		}
	}

	var wire sentiment.Wire
	if err := json.Unmarshal(respBody, &wire); err != nil {
		return nil, &RequestError{Op: "decode", StatusCode: resp.StatusCode, Err: fmt.Errorf("unmarshaling response: %w", err)}
	}

	result, err := wire.Result()
	if err != nil {
		return nil, &RequestError{Op: "decode", StatusCode: resp.StatusCode, Err: err}
	}

	return result, nil
}
