package client

import (
	"context"
	"encoding/json"
	"net/url"
	"strings"

	"github.com/fivetwenty-io/xendit-client/internal/constants"
	"github.com/fivetwenty-io/xendit-client/internal/http"
	"github.com/fivetwenty-io/xendit-client/pkg/xendit"
	"github.com/google/uuid"
)

// Client implements the xendit.Client interface.
type Client struct {
	httpClient  *http.Client
	rateLimiter *xendit.RateLimiter
	baseURL     string
	logger      xendit.Logger

	// Resource clients
	customers       xendit.CustomersClient
	paymentMethods  xendit.PaymentMethodsClient
	invoices        xendit.InvoicesClient
	ewallets        xendit.EWalletsClient
	cards           xendit.CardsClient
	payouts         xendit.PayoutsClient
	paymentRequests xendit.PaymentRequestsClient
}

type options struct {
	limiterOpts []xendit.RateLimiterOption
	httpOpts    []http.Option
}

// Option customizes client construction.
type Option func(*options)

// WithRateLimiterOptions passes options to the rate limiter, e.g. a fake clock.
func WithRateLimiterOptions(opts ...xendit.RateLimiterOption) Option {
	return func(o *options) {
		o.limiterOpts = append(o.limiterOpts, opts...)
	}
}

// WithHTTPOptions passes extra options to the HTTP transport.
func WithHTTPOptions(opts ...http.Option) Option {
	return func(o *options) {
		o.httpOpts = append(o.httpOpts, opts...)
	}
}

// New creates a new Xendit API client.
func New(_ context.Context, config *xendit.Config, opts ...Option) (*Client, error) {
	if config == nil {
		return nil, xendit.ErrConfigRequired
	}

	if strings.TrimSpace(config.SecretKey) == "" {
		return nil, xendit.ErrSecretKeyRequired
	}

	var built options
	for _, opt := range opts {
		opt(&built)
	}

	logger := config.Logger
	if logger == nil {
		logger = xendit.NopLogger()
	}

	baseURL := strings.TrimRight(config.APIEndpoint, "/")
	if baseURL == "" {
		baseURL = constants.DefaultAPIEndpoint
	}

	var limiter *xendit.RateLimiter

	if config.RateLimiter != nil {
		var err error

		limiter, err = xendit.NewRateLimiter(*config.RateLimiter, built.limiterOpts...)
		if err != nil {
			return nil, err
		}
	}

	chain := buildInterceptors(config, limiter, logger)

	httpOpts := createHTTPClientOptions(config, limiter, logger, chain)
	httpOpts = append(httpOpts, built.httpOpts...)

	client := &Client{
		httpClient:  http.NewClient(baseURL, httpOpts...),
		rateLimiter: limiter,
		baseURL:     baseURL,
		logger:      logger,
	}

	client.initializeResourceClients()

	logger.Debug("Xendit client created", map[string]interface{}{
		"endpoint":     baseURL,
		"rate_limited": limiter != nil,
		"retries":      config.EnableRetries,
		"sub_account":  config.ForUserID != "",
	})

	return client, nil
}

// buildInterceptors assembles auth, sub-account, rate limit and logging
// interceptors, followed by any the caller supplied.
func buildInterceptors(config *xendit.Config, limiter *xendit.RateLimiter, logger xendit.Logger) *xendit.InterceptorChain {
	chain := xendit.NewInterceptorChain()
	chain.AddRequestInterceptor(xendit.BasicAuthInterceptor(config.SecretKey))

	if config.ForUserID != "" {
		chain.AddRequestInterceptor(xendit.HeaderInterceptor(map[string]string{
			xendit.HeaderForUserID: config.ForUserID,
		}))
	}

	if limiter != nil {
		chain.AddRequestInterceptor(xendit.RateLimitInterceptor(limiter, logger))
		chain.AddResponseInterceptor(xendit.RateLimitResponseInterceptor(limiter, logger))
	}

	if config.Logger != nil {
		chain.AddRequestInterceptor(xendit.LoggingInterceptor(logger))
		chain.AddResponseInterceptor(xendit.LoggingResponseInterceptor(logger))
	}

	chain.Append(config.Interceptors)

	return chain
}

// createHTTPClientOptions builds HTTP client options from config.
func createHTTPClientOptions(config *xendit.Config, limiter *xendit.RateLimiter, logger xendit.Logger, chain *xendit.InterceptorChain) []http.Option {
	httpOpts := []http.Option{
		http.WithLogger(logger),
		http.WithInterceptors(chain),
	}

	if config.Debug {
		httpOpts = append(httpOpts, http.WithDebug(true))
	}

	if config.UserAgent != "" {
		httpOpts = append(httpOpts, http.WithUserAgent(config.UserAgent))
	}

	if config.HTTPTimeout > 0 {
		httpOpts = append(httpOpts, http.WithHTTPTimeout(config.HTTPTimeout))
	}

	if config.EnableRetries {
		retry := xendit.DefaultRateLimiterConfig()
		if limiter != nil {
			retry = limiter.Config()
		}

		httpOpts = append(httpOpts, http.WithRetryConfig(retry.MaxRetries, retry.BaseRetryDelay, retry.MaxRetryDelay))

		if limiter != nil {
			httpOpts = append(httpOpts, http.WithRetryAdmission(limiter))
		}
	}

	return httpOpts
}

func (c *Client) initializeResourceClients() {
	c.customers = NewCustomersClient(c.httpClient)
	c.paymentMethods = NewPaymentMethodsClient(c.httpClient)
	c.invoices = NewInvoicesClient(c.httpClient)
	c.ewallets = NewEWalletsClient(c.httpClient)
	c.cards = NewCardsClient(c.httpClient)
	c.payouts = NewPayoutsClient(c.httpClient)
	c.paymentRequests = NewPaymentRequestsClient(c.httpClient)
}

// Resource client accessors

// Customers implements xendit.Client.Customers.
func (c *Client) Customers() xendit.CustomersClient {
	return c.customers
}

// PaymentMethods implements xendit.Client.PaymentMethods.
func (c *Client) PaymentMethods() xendit.PaymentMethodsClient {
	return c.paymentMethods
}

// Invoices implements xendit.Client.Invoices.
func (c *Client) Invoices() xendit.InvoicesClient {
	return c.invoices
}

// EWallets implements xendit.Client.EWallets.
func (c *Client) EWallets() xendit.EWalletsClient {
	return c.ewallets
}

// Cards implements xendit.Client.Cards.
func (c *Client) Cards() xendit.CardsClient {
	return c.cards
}

// Payouts implements xendit.Client.Payouts.
func (c *Client) Payouts() xendit.PayoutsClient {
	return c.payouts
}

// PaymentRequests implements xendit.Client.PaymentRequests.
func (c *Client) PaymentRequests() xendit.PaymentRequestsClient {
	return c.paymentRequests
}

// Transport implements xendit.Client.Transport.
func (c *Client) Transport() xendit.Transport {
	return c.httpClient
}

// RateLimiter implements xendit.Client.RateLimiter.
func (c *Client) RateLimiter() *xendit.RateLimiter {
	return c.rateLimiter
}

// decode parses a response body, reporting a mismatch as a shape error.
func decode[T any](resp *xendit.Response, what string) (*T, error) {
	var out T

	err := json.Unmarshal(resp.Body, &out)
	if err != nil {
		return nil, xendit.NewResponseShapeError(what, err)
	}

	return &out, nil
}

// idempotencyHeaders returns the idempotency header, generating a key when
// none was supplied.
func idempotencyHeaders(key string) map[string]string {
	if key == "" {
		key = uuid.NewString()
	}

	return map[string]string{xendit.HeaderIdempotencyKey: key}
}

func resourcePath(base string, segments ...string) string {
	var builder strings.Builder

	builder.WriteString(base)

	for _, segment := range segments {
		builder.WriteString("/")
		builder.WriteString(url.PathEscape(segment))
	}

	return builder.String()
}
