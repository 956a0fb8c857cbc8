package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// maxErrorBodySize caps the upstream error body kept in HTTPError
const maxErrorBodySize = 4 << 10

// Connector sends JSON requests to a single upstream
type Connector struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

type ConnectorConfig struct {
	BaseURL string
	Logger  *zap.Logger
}

func NewConnector(config *ConnectorConfig, options ...Option) *Connector {
	return &Connector{
		baseURL:    config.BaseURL,
		httpClient: newClient(options...),
		logger:     config.Logger,
	}
}

// RequestOption adjusts a single call to DoRequest
type RequestOption func(*call)

type call struct {
	url    string
	header http.Header
}

func WithHeader(key, value string) RequestOption {
	return func(c *call) {
		c.header.Set(key, value)
	}
}

// WithURL replaces baseURL+endpoint with an absolute url
func WithURL(url string) RequestOption {
	return func(c *call) {
		c.url = url
	}
}

// DoRequest sends reqBody as JSON and decodes a 2xx JSON response into respBody
func (c *Connector) DoRequest(ctx context.Context, method, endpoint string, reqBody, respBody any, opts ...RequestOption) error {
	cl := &call{
		url:    c.baseURL + endpoint,
		header: http.Header{"Accept": []string{"application/json"}},
	}
	for _, opt := range opts {
		opt(cl)
	}

	var body io.Reader
	if reqBody != nil {
		payload, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		body = bytes.NewReader(payload)
		cl.header.Set("Content-Type", "application/json")
		ctx = context.WithValue(ctx, payloadContextKey{}, payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, cl.url, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	for key, values := range cl.header {
		req.Header[key] = values
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodySize))
		return &HTTPError{StatusCode: resp.StatusCode, Message: string(msg)}
	}

	if respBody == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// HTTPError is a non-2xx upstream response
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// Temporary reports whether the upstream may succeed on retry (429 and 5xx)
func (e *HTTPError) Temporary() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// NetworkError wraps a failure that happened before any response arrived
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "network error: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err is worth retrying. Context cancellation never is.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Temporary()
	}

	var netErr *NetworkError
	return errors.As(err, &netErr)
}
