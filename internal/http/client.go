// Package http implements the JSON:API transport shared by every resource
// client: base URL handling, header pinning, bearer injection, the retry
// policy, and error classification.
package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/keyline-io/keyline-go/internal/auth"
	"github.com/keyline-io/keyline-go/internal/constants"
	"github.com/keyline-io/keyline-go/pkg/keyline"
)

// Request describes one API request.
type Request struct {
	Method string
	Path   string
	// Query is the pre-encoded query string. The query builder owns key
	// order, so it is never re-encoded here.
	Query   string
	Body    interface{}
	Headers map[string]string
	// Retryable opts a non-idempotent request into the retry policy.
	// Without it a POST is sent exactly once, so a flaky network cannot
	// create duplicate resources.
	Retryable bool
}

// Response carries the raw result of an API request.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Client is the HTTP transport. It is safe for concurrent use.
type Client struct {
	baseURL       string
	tokenSource   auth.TokenSource
	retryClient   *retryablehttp.Client
	httpClient    *http.Client
	logger        keyline.Logger
	debug         bool
	userAgent     string
	apiVersion    string
	timeout       time.Duration
	retryMax      int
	retryWaitMin  time.Duration
	retryWaitMax  time.Duration
	skipTLSVerify bool
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the structured logger used for debug logging.
func WithLogger(logger keyline.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDebug enables request/response logging through the configured logger.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the default User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithAPIVersion overrides the pinned API version header value.
func WithAPIVersion(version string) Option {
	return func(c *Client) {
		if version != "" {
			c.apiVersion = version
		}
	}
}

// WithTimeout sets the per-attempt HTTP timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithRetryConfig tunes the retry policy. A max of zero disables retries.
func WithRetryConfig(max int, waitMin, waitMax time.Duration) Option {
	return func(c *Client) {
		c.retryMax = max
		c.retryWaitMin = waitMin
		c.retryWaitMax = waitMax
	}
}

// WithHTTPClient substitutes the underlying HTTP client, e.g. for tests or
// custom transports. Timeout and TLS options are not applied to it.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithSkipTLSVerify disables TLS verification. Honored only when the
// KEYLINE_DEV_MODE environment variable is "true" or "1".
func WithSkipTLSVerify(skip bool) Option {
	return func(c *Client) {
		c.skipTLSVerify = skip
	}
}

// NewClient creates the transport for the given base URL. tokenSource may be
// nil for unauthenticated use.
func NewClient(baseURL string, tokenSource auth.TokenSource, opts ...Option) *Client {
	client := &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		tokenSource:  tokenSource,
		logger:       keyline.NopLogger(),
		userAgent:    constants.DefaultUserAgent,
		apiVersion:   constants.DefaultAPIVersion,
		timeout:      constants.DefaultHTTPTimeout,
		retryMax:     constants.DefaultRetryMax,
		retryWaitMin: constants.DefaultRetryWaitMin,
		retryWaitMax: constants.DefaultRetryWaitMax,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{
			Timeout:   client.timeout,
			Transport: client.buildTransport(),
		}
	}

	retryClient := retryablehttp.NewClient()
	retryClient.HTTPClient = client.httpClient
	retryClient.RetryMax = client.retryMax
	retryClient.RetryWaitMin = client.retryWaitMin
	retryClient.RetryWaitMax = client.retryWaitMax
	retryClient.Logger = nil
	retryClient.CheckRetry = retryPolicy
	retryClient.ErrorHandler = func(resp *http.Response, err error, _ int) (*http.Response, error) {
		return resp, err
	}
	client.retryClient = retryClient

	return client
}

func (c *Client) buildTransport() http.RoundTripper {
	transport, ok := http.DefaultTransport.(*http.Transport)
	if !ok {
		return http.DefaultTransport
	}

	transport = transport.Clone()

	if c.skipTLSVerify && devModeEnabled() {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // dev-mode only
	}

	return transport
}

func devModeEnabled() bool {
	value := os.Getenv(constants.DevModeEnvVar)

	return value == constants.BooleanTrue || value == "1"
}

// retryPolicy retries transient network failures, rate limits, and server
// errors. 4xx responses are never retried.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err != nil {
		return true, nil //nolint:nilerr // the error is retried, not swallowed
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= http.StatusInternalServerError {
		return true, nil
	}

	return false, nil
}

// Do executes the request and classifies the outcome. On an API error both
// the raw response and the *keyline.APIError are returned, so callers can
// still inspect headers and body.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	fullURL := c.baseURL + req.Path
	if req.Query != "" {
		fullURL += "?" + req.Query
	}

	var body []byte

	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		body = data
	}

	header, err := c.buildHeader(ctx, req, body)
	if err != nil {
		return nil, err
	}

	if c.debug {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": req.Method,
			"url":    fullURL,
		})
	}

	start := time.Now()

	httpResp, err := c.execute(ctx, req, fullURL, body, header)
	if err != nil {
		if httpResp != nil {
			_ = httpResp.Body.Close()
		}

		return nil, keyline.NewNetworkError(fmt.Errorf("executing request: %w", err))
	}

	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, keyline.NewNetworkError(fmt.Errorf("reading response body: %w", err))
	}

	if c.debug {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status":   httpResp.StatusCode,
			"duration": time.Since(start).String(),
		})
	}

	response := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	if response.StatusCode >= http.StatusBadRequest {
		if response.StatusCode == http.StatusUnauthorized && c.tokenSource != nil {
			// The session enforces exactly-once semantics itself; every
			// 401 reports the rejection.
			c.tokenSource.Invalidate()
		}

		return response, keyline.ClassifyResponse(response.StatusCode, httpResp.Header, respBody)
	}

	return response, nil
}

func (c *Client) buildHeader(ctx context.Context, req *Request, body []byte) (http.Header, error) {
	header := http.Header{}
	header.Set("Accept", constants.ContentTypeAPI)
	header.Set(constants.APIVersionHeader, c.apiVersion)
	header.Set("User-Agent", c.userAgent)

	if body != nil {
		header.Set("Content-Type", constants.ContentTypeAPI)
	}

	if c.tokenSource != nil && req.Headers["Authorization"] == "" {
		token, err := c.tokenSource.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("getting token: %w", err)
		}

		header.Set("Authorization", "Bearer "+token)
	}

	for key, value := range req.Headers {
		header.Set(key, value)
	}

	return header, nil
}

// execute routes the request through the retrying client unless it is a
// POST that has not opted in. Retrying a create through a flaky connection
// could apply it twice.
func (c *Client) execute(ctx context.Context, req *Request, fullURL string, body []byte, header http.Header) (*http.Response, error) {
	if req.Method == http.MethodPost && !req.Retryable {
		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}

		httpReq, err := http.NewRequestWithContext(ctx, req.Method, fullURL, reader)
		if err != nil {
			return nil, fmt.Errorf("building request: %w", err)
		}

		httpReq.Header = header

		return c.httpClient.Do(httpReq)
	}

	var raw interface{}
	if body != nil {
		raw = body
	}

	retryReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, raw)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}

	retryReq.Header = header

	return c.retryClient.Do(retryReq)
}

// Get issues a GET request. query is a pre-encoded query string, empty for
// none.
func (c *Client) Get(ctx context.Context, path, query string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

// Post issues a POST request. It is sent exactly once; use Do with
// Retryable set when the endpoint is safe to replay.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

// Patch issues a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}
