package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/fivetwenty-io/xendit-client/internal/constants"
	"github.com/fivetwenty-io/xendit-client/pkg/xendit"
	"github.com/hashicorp/go-retryablehttp"
)

// Request represents an HTTP request to the Xendit API.
type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Body    interface{}
	Headers map[string]string
}

// Client is the HTTP transport. It runs the interceptor chain around every
// call and maps every failure into the xendit error hierarchy.
type Client struct {
	baseURL      string
	httpClient   *retryablehttp.Client
	logger       xendit.Logger
	debug        bool
	userAgent    string
	interceptors *xendit.InterceptorChain
}

// Option configures the Client.
type Option func(*Client)

// WithLogger sets the logger.
func WithLogger(logger xendit.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDebug enables request/response logging.
func WithDebug(debug bool) Option {
	return func(c *Client) {
		c.debug = debug
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// WithHTTPTimeout bounds each attempt.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.HTTPClient.Timeout = timeout
		}
	}
}

// WithRetryConfig enables retries of retryable failures with exponential
// back-off between retryWaitMin and retryWaitMax.
func WithRetryConfig(retryMax int, retryWaitMin, retryWaitMax time.Duration) Option {
	return func(c *Client) {
		c.httpClient.RetryMax = retryMax
		c.httpClient.RetryWaitMin = retryWaitMin
		c.httpClient.RetryWaitMax = retryWaitMax
	}
}

// WithRetryAdmission makes every retry attempt wait for and consume a token
// from limiter, the same way the first attempt does through the request
// interceptors.
func WithRetryAdmission(limiter *xendit.RateLimiter) Option {
	return func(c *Client) {
		if limiter == nil {
			c.httpClient.PrepareRetry = nil

			return
		}

		c.httpClient.PrepareRetry = func(req *http.Request) error {
			consumed, err := limiter.Admit(req.Context())
			if err != nil {
				return err
			}

			if !consumed {
				c.logger.Debug("Rate limiter token unavailable before retry, proceeding", map[string]interface{}{
					"method": req.Method,
					"path":   req.URL.Path,
				})
			}

			return nil
		}
	}
}

// WithInterceptors replaces the interceptor chain.
func WithInterceptors(chain *xendit.InterceptorChain) Option {
	return func(c *Client) {
		if chain != nil {
			c.interceptors = chain
		}
	}
}

// WithHTTPClient sets the underlying *http.Client, mostly for tests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient.HTTPClient = httpClient
		}
	}
}

// NewClient creates a new HTTP client. Retries are disabled until
// WithRetryConfig is applied.
func NewClient(baseURL string, opts ...Option) *Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 0
	retryClient.HTTPClient.Timeout = constants.DefaultHTTPTimeout
	retryClient.CheckRetry = checkRetry
	retryClient.ErrorHandler = retryablehttp.PassthroughErrorHandler
	retryClient.Logger = nil

	client := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   retryClient,
		logger:       xendit.NopLogger(),
		userAgent:    constants.DefaultUserAgent,
		interceptors: xendit.NewInterceptorChain(),
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient.RetryMax > 0 {
		client.httpClient.Logger = &leveledLogger{logger: client.logger}
	}

	return client
}

// checkRetry retries network failures and the statuses xendit.IsRetryable accepts.
func checkRetry(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}

	if err != nil {
		return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
	}

	return xendit.IsRetryableStatus(resp.StatusCode), nil
}

// Do executes an HTTP request. On an error status both the response and the
// mapped error are returned.
func (c *Client) Do(ctx context.Context, req *Request) (*xendit.Response, error) {
	var body []byte

	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			return nil, xendit.NewValidationError("body", fmt.Sprintf("encoding request body: %v", err))
		}

		body = encoded
	}

	intercepted := &xendit.Request{
		Method:   req.Method,
		Path:     req.Path,
		Query:    req.Query,
		Headers:  make(http.Header),
		Body:     body,
		Metadata: map[string]interface{}{},
	}

	for key, value := range req.Headers {
		intercepted.Headers.Set(key, value)
	}

	err := c.interceptors.ExecuteRequestInterceptors(ctx, intercepted)
	if err != nil {
		return nil, xendit.MapError(err)
	}

	httpReq, err := c.buildRequest(ctx, intercepted)
	if err != nil {
		return nil, xendit.MapError(err)
	}

	if c.debug {
		c.logger.Debug("HTTP Request", map[string]interface{}{
			"method": intercepted.Method,
			"url":    httpReq.URL.String(),
		})
	}

	start := time.Now()

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		resp := &xendit.Response{Error: xendit.MapError(err)}

		return resp, c.finish(ctx, intercepted, resp)
	}

	defer func() { _ = httpResp.Body.Close() }()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		resp := &xendit.Response{StatusCode: httpResp.StatusCode, Headers: httpResp.Header, Error: xendit.MapError(err)}

		return resp, c.finish(ctx, intercepted, resp)
	}

	resp := &xendit.Response{
		StatusCode: httpResp.StatusCode,
		Headers:    httpResp.Header,
		Body:       respBody,
	}

	if c.debug {
		c.logger.Debug("HTTP Response", map[string]interface{}{
			"status":   httpResp.StatusCode,
			"duration": time.Since(start).String(),
		})
	}

	if httpResp.StatusCode >= http.StatusBadRequest {
		resp.Error = xendit.NewAPIErrorFromResponse(httpResp.StatusCode, respBody)
	}

	return resp, c.finish(ctx, intercepted, resp)
}

// finish runs the response interceptors and returns the call's outcome. A
// failing interceptor replaces the outcome; otherwise the original failure
// is returned unchanged.
func (c *Client) finish(ctx context.Context, req *xendit.Request, resp *xendit.Response) error {
	err := c.interceptors.ExecuteResponseInterceptors(ctx, req, resp)
	if err != nil {
		return xendit.MapError(err)
	}

	return resp.Error
}

func (c *Client) buildRequest(ctx context.Context, req *xendit.Request) (*retryablehttp.Request, error) {
	fullURL := c.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	var rawBody interface{}
	if req.Body != nil {
		rawBody = bytes.NewReader(req.Body)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, req.Method, fullURL, rawBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	for key, values := range req.Headers {
		for _, value := range values {
			httpReq.Header.Add(key, value)
		}
	}

	httpReq.Header.Set("Accept", constants.ContentTypeJSON)
	httpReq.Header.Set("User-Agent", c.userAgent)

	if req.Body != nil {
		httpReq.Header.Set("Content-Type", constants.ContentTypeJSON)
	}

	return httpReq, nil
}

// Get performs a GET request.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*xendit.Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodGet,
		Path:   path,
		Query:  query,
	})
}

// Post performs a POST request.
func (c *Client) Post(ctx context.Context, path string, body interface{}) (*xendit.Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPost,
		Path:   path,
		Body:   body,
	})
}

// PostWithHeaders performs a POST request with extra headers.
func (c *Client) PostWithHeaders(ctx context.Context, path string, body interface{}, headers map[string]string) (*xendit.Response, error) {
	return c.Do(ctx, &Request{
		Method:  http.MethodPost,
		Path:    path,
		Body:    body,
		Headers: headers,
	})
}

// Patch performs a PATCH request.
func (c *Client) Patch(ctx context.Context, path string, body interface{}) (*xendit.Response, error) {
	return c.Do(ctx, &Request{
		Method: http.MethodPatch,
		Path:   path,
		Body:   body,
	})
}

// leveledLogger adapts xendit.Logger to retryablehttp.LeveledLogger.
type leveledLogger struct {
	logger xendit.Logger
}

func (l *leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, keyValueFields(keysAndValues))
}

func (l *leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keyValueFields(keysAndValues))
}

func (l *leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keyValueFields(keysAndValues))
}

func (l *leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.logger.Warn(msg, keyValueFields(keysAndValues))
}

func keyValueFields(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2)

	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}

	return fields
}
