package xendit

import (
	"time"
)

// Client provides access to every resource client.
type Client interface {
	Customers() CustomersClient
	PaymentMethods() PaymentMethodsClient
	Invoices() InvoicesClient
	EWallets() EWalletsClient
	Cards() CardsClient
	Payouts() PayoutsClient
	PaymentRequests() PaymentRequestsClient

	// Transport exposes the underlying HTTP capability, e.g. for use with
	// FetchAllPages or IterateItems on endpoints without a typed List.
	Transport() Transport
	// RateLimiter returns the installed limiter, or nil when rate limiting
	// is disabled.
	RateLimiter() *RateLimiter
}

// Logger interface for logging.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
}

// Config represents client configuration for building a xendit.Client.
//
// # Authentication
//
// Every request carries a Basic Authorization header built from SecretKey
// as the username and an empty password.
//
// # Rate limiting and retries
//
// When RateLimiter is non-nil a token-bucket limiter is installed in the
// interceptor chain: requests wait for admission, 429 responses back off for
// Retry-After (or BaseRetryDelay) and are then returned to the caller as
// RateLimitError. The client does not retry on its own unless EnableRetries
// is set, in which case retryable failures (network errors, 408, 429, 5xx
// gateway errors) are retried up to MaxRetries times with exponential
// back-off between BaseRetryDelay and MaxRetryDelay.
type Config struct {
	// APIEndpoint is the base URL; defaults to https://api.xendit.co.
	APIEndpoint string
	// SecretKey is the Xendit secret API key. Required.
	SecretKey string
	// ForUserID sends the for-user-id header so calls act on a sub-account.
	ForUserID string

	// HTTPTimeout bounds each HTTP attempt. Defaults to 30s.
	HTTPTimeout time.Duration
	// UserAgent overrides the default User-Agent header.
	UserAgent string
	// Debug enables verbose HTTP request/response logging when a Logger is provided.
	Debug bool
	// Logger receives transport and rate limiter events. Defaults to NopLogger.
	Logger Logger

	// RateLimiter enables client-side rate limiting when non-nil.
	RateLimiter *RateLimiterConfig
	// EnableRetries turns the retry hints of RateLimiter into real retries.
	EnableRetries bool
	// Interceptors are appended after the built-in interceptors.
	Interceptors *InterceptorChain
}

// Metadata carries free-form key/value data attached to resources.
type Metadata map[string]interface{}
