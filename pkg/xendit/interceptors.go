package xendit

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Headers read or written by the interceptors.
const (
	HeaderRetryAfter         = "Retry-After"
	HeaderRateLimitRemaining = "X-RateLimit-Remaining"
	HeaderForUserID          = "For-User-Id"
	HeaderIdempotencyKey     = "Idempotency-Key"
)

// Request represents an HTTP request that can be intercepted.
type Request struct {
	Method   string
	Path     string
	Query    url.Values
	Headers  http.Header
	Body     []byte
	Metadata map[string]interface{}
}

// Response represents an HTTP response that can be intercepted. Error is set
// when the call failed, either at the network level (StatusCode is 0) or with
// an error status.
type Response struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	Error      error
}

// RequestInterceptor is called before a request is sent.
type RequestInterceptor func(ctx context.Context, req *Request) error

// ResponseInterceptor is called after a response or failure is received.
type ResponseInterceptor func(ctx context.Context, req *Request, resp *Response) error

// InterceptorChain manages a chain of interceptors.
type InterceptorChain struct {
	requestInterceptors  []RequestInterceptor
	responseInterceptors []ResponseInterceptor
}

// NewInterceptorChain creates a new interceptor chain.
func NewInterceptorChain() *InterceptorChain {
	return &InterceptorChain{
		requestInterceptors:  make([]RequestInterceptor, 0),
		responseInterceptors: make([]ResponseInterceptor, 0),
	}
}

// AddRequestInterceptor adds a request interceptor to the chain.
func (c *InterceptorChain) AddRequestInterceptor(interceptor RequestInterceptor) {
	c.requestInterceptors = append(c.requestInterceptors, interceptor)
}

// AddResponseInterceptor adds a response interceptor to the chain.
func (c *InterceptorChain) AddResponseInterceptor(interceptor ResponseInterceptor) {
	c.responseInterceptors = append(c.responseInterceptors, interceptor)
}

// Append adds every interceptor of other after the ones already in c.
func (c *InterceptorChain) Append(other *InterceptorChain) {
	if other == nil {
		return
	}

	c.requestInterceptors = append(c.requestInterceptors, other.requestInterceptors...)
	c.responseInterceptors = append(c.responseInterceptors, other.responseInterceptors...)
}

// ExecuteRequestInterceptors runs all request interceptors in order.
func (c *InterceptorChain) ExecuteRequestInterceptors(ctx context.Context, req *Request) error {
	for _, interceptor := range c.requestInterceptors {
		err := interceptor(ctx, req)
		if err != nil {
			return fmt.Errorf("request interceptor failed: %w", err)
		}
	}

	return nil
}

// ExecuteResponseInterceptors runs all response interceptors in order.
func (c *InterceptorChain) ExecuteResponseInterceptors(ctx context.Context, req *Request, resp *Response) error {
	for _, interceptor := range c.responseInterceptors {
		err := interceptor(ctx, req, resp)
		if err != nil {
			return fmt.Errorf("response interceptor failed: %w", err)
		}
	}

	return nil
}

// Common Interceptors

// LoggingInterceptor logs requests.
func LoggingInterceptor(logger Logger) RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		logger.Debug("API Request", map[string]interface{}{
			"method": req.Method,
			"path":   req.Path,
		})

		return nil
	}
}

// LoggingResponseInterceptor logs responses.
func LoggingResponseInterceptor(logger Logger) ResponseInterceptor {
	return func(ctx context.Context, req *Request, resp *Response) error {
		fields := map[string]interface{}{
			"method":      req.Method,
			"path":        req.Path,
			"status_code": resp.StatusCode,
		}

		if resp.Error != nil {
			fields["error"] = resp.Error.Error()
			logger.Error("API Response Error", fields)
		} else {
			logger.Debug("API Response", fields)
		}

		return nil
	}
}

// BasicAuthInterceptor authenticates requests with the secret API key as the
// Basic auth username and an empty password.
func BasicAuthInterceptor(secretKey string) RequestInterceptor {
	encoded := base64.StdEncoding.EncodeToString([]byte(secretKey + ":"))

	return func(ctx context.Context, req *Request) error {
		if req.Headers == nil {
			req.Headers = make(http.Header)
		}

		req.Headers.Set("Authorization", "Basic "+encoded)

		return nil
	}
}

// HeaderInterceptor adds custom headers to requests.
func HeaderInterceptor(headers map[string]string) RequestInterceptor {
	return func(ctx context.Context, req *Request) error {
		if req.Headers == nil {
			req.Headers = make(http.Header)
		}

		for key, value := range headers {
			req.Headers.Set(key, value)
		}

		return nil
	}
}

// RateLimitInterceptor waits for the limiter to admit the request, consumes
// a token and then applies the configured fixed request delay.
//
// The token is consumed on a best-effort basis: if another caller took the
// projected token in the meantime the request still proceeds.
func RateLimitInterceptor(limiter *RateLimiter, logger Logger) RequestInterceptor {
	if logger == nil {
		logger = NopLogger()
	}

	return func(ctx context.Context, req *Request) error {
		consumed, err := limiter.Admit(ctx)
		if err != nil {
			return err
		}

		if !consumed {
			logger.Debug("Rate limiter token unavailable after wait, proceeding", map[string]interface{}{
				"method": req.Method,
				"path":   req.Path,
			})
		}

		return nil
	}
}

// RateLimitResponseInterceptor watches responses for quota exhaustion.
//
// On success it warns when the remaining-quota header reports zero. On a 429
// it sleeps for Retry-After seconds (or the configured base retry delay) and
// returns nil, so the transport re-raises the original failure unchanged.
// The interceptor never retries the request itself.
func RateLimitResponseInterceptor(limiter *RateLimiter, logger Logger) ResponseInterceptor {
	if logger == nil {
		logger = NopLogger()
	}

	return func(ctx context.Context, req *Request, resp *Response) error {
		if resp.Error == nil {
			if remaining := resp.Headers.Get(HeaderRateLimitRemaining); remaining != "" {
				if n, err := strconv.Atoi(strings.TrimSpace(remaining)); err == nil && n == 0 {
					logger.Warn("Rate limit quota exhausted", map[string]interface{}{
						"method": req.Method,
						"path":   req.Path,
					})
				}
			}

			return nil
		}

		if IsRetryable(resp) {
			logger.Warn("Retryable request failure", map[string]interface{}{
				"method":      req.Method,
				"path":        req.Path,
				"status_code": resp.StatusCode,
				"error":       resp.Error.Error(),
			})
		}

		if resp.StatusCode != http.StatusTooManyRequests {
			return nil
		}

		delay := retryAfter(resp.Headers, limiter.Config().BaseRetryDelay)

		logger.Warn("Rate limited by API, backing off", map[string]interface{}{
			"method":   req.Method,
			"path":     req.Path,
			"delay_ms": delay.Milliseconds(),
		})

		err := limiter.sleep(ctx, delay)
		if err != nil {
			return fmt.Errorf("backing off after rate limit: %w", err)
		}

		return nil
	}
}

// retryAfter reads the Retry-After header as whole seconds.
func retryAfter(headers http.Header, fallback time.Duration) time.Duration {
	value := strings.TrimSpace(headers.Get(HeaderRetryAfter))
	if value == "" {
		return fallback
	}

	seconds, err := strconv.Atoi(value)
	if err != nil || seconds < 0 {
		return fallback
	}

	return time.Duration(seconds) * time.Second
}

// retryableStatusCodes lists the statuses worth retrying.
var retryableStatusCodes = map[int]struct{}{
	http.StatusRequestTimeout:      {},
	http.StatusTooManyRequests:     {},
	http.StatusInternalServerError: {},
	http.StatusBadGateway:          {},
	http.StatusServiceUnavailable:  {},
	http.StatusGatewayTimeout:      {},
}

// IsRetryableStatus reports whether an HTTP status is worth retrying.
func IsRetryableStatus(statusCode int) bool {
	_, ok := retryableStatusCodes[statusCode]

	return ok
}

// IsRetryable classifies a failed response. Failures without a response
// (network errors) are always retryable.
func IsRetryable(resp *Response) bool {
	if resp == nil || resp.StatusCode == 0 {
		return true
	}

	return IsRetryableStatus(resp.StatusCode)
}
