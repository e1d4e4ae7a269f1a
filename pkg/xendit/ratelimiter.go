package xendit

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"
)

// Rate limiter defaults.
const (
	DefaultMaxRequests    = 100
	DefaultWindow         = 60 * time.Second
	DefaultRequestDelay   = 0
	DefaultMaxRetries     = 3
	DefaultBaseRetryDelay = 1 * time.Second
	DefaultMaxRetryDelay  = 30 * time.Second
)

// RateLimiterConfig configures client-side rate limiting.
//
// Zero values take the defaults. MaxRetries, BaseRetryDelay and MaxRetryDelay
// are retry hints: BaseRetryDelay is the 429 back-off when the API sends no
// Retry-After header, and the transport only loops on them when retries are
// enabled on the client Config.
type RateLimiterConfig struct {
	// MaxRequests is the bucket capacity, i.e. requests admitted per Window.
	MaxRequests int `json:"max_requests"     yaml:"max_requests"`
	// Window is the period over which MaxRequests tokens are refilled.
	Window time.Duration `json:"window"           yaml:"window"`
	// RequestDelay is a fixed pause applied after every admitted request.
	RequestDelay time.Duration `json:"request_delay"    yaml:"request_delay"`
	// MaxRetries caps retry attempts for retryable failures.
	MaxRetries int `json:"max_retries"      yaml:"max_retries"`
	// BaseRetryDelay is the initial back-off between retries.
	BaseRetryDelay time.Duration `json:"base_retry_delay" yaml:"base_retry_delay"`
	// MaxRetryDelay caps the back-off between retries.
	MaxRetryDelay time.Duration `json:"max_retry_delay"  yaml:"max_retry_delay"`
}

// DefaultRateLimiterConfig returns the default rate limiter configuration.
func DefaultRateLimiterConfig() RateLimiterConfig {
	return RateLimiterConfig{
		MaxRequests:    DefaultMaxRequests,
		Window:         DefaultWindow,
		RequestDelay:   DefaultRequestDelay,
		MaxRetries:     DefaultMaxRetries,
		BaseRetryDelay: DefaultBaseRetryDelay,
		MaxRetryDelay:  DefaultMaxRetryDelay,
	}
}

// withDefaults validates the config and fills in zero fields.
func (c RateLimiterConfig) withDefaults() (RateLimiterConfig, error) {
	if c.MaxRequests < 0 || c.Window < 0 || c.RequestDelay < 0 ||
		c.MaxRetries < 0 || c.BaseRetryDelay < 0 || c.MaxRetryDelay < 0 {
		return c, fmt.Errorf("%w: values must not be negative", ErrInvalidRateLimiterConfig)
	}

	defaults := DefaultRateLimiterConfig()

	if c.MaxRequests == 0 {
		c.MaxRequests = defaults.MaxRequests
	}

	if c.Window == 0 {
		c.Window = defaults.Window
	}

	if c.MaxRetries == 0 {
		c.MaxRetries = defaults.MaxRetries
	}

	if c.BaseRetryDelay == 0 {
		c.BaseRetryDelay = defaults.BaseRetryDelay
	}

	if c.MaxRetryDelay == 0 {
		c.MaxRetryDelay = defaults.MaxRetryDelay
	}

	if c.MaxRetryDelay < c.BaseRetryDelay {
		return c, fmt.Errorf("%w: max retry delay %s is below base retry delay %s",
			ErrInvalidRateLimiterConfig, c.MaxRetryDelay, c.BaseRetryDelay)
	}

	return c, nil
}

// RateLimiterOption customizes a RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithClock replaces the limiter's time source.
func WithClock(clock func() time.Time) RateLimiterOption {
	return func(r *RateLimiter) {
		r.clock = clock
	}
}

// WithSleeper replaces the function used to suspend callers.
func WithSleeper(sleep func(ctx context.Context, d time.Duration) error) RateLimiterOption {
	return func(r *RateLimiter) {
		r.sleep = sleep
	}
}

// RateLimiter is a token bucket with continuous refill: tokens accrue at
// MaxRequests per Window and the bucket never holds more than MaxRequests.
// It is safe for concurrent use.
type RateLimiter struct {
	config RateLimiterConfig
	clock  func() time.Time
	sleep  func(ctx context.Context, d time.Duration) error

	mu         sync.Mutex
	tokens     float64
	lastRefill time.Time
}

// NewRateLimiter creates a rate limiter with a full bucket.
func NewRateLimiter(config RateLimiterConfig, opts ...RateLimiterOption) (*RateLimiter, error) {
	resolved, err := config.withDefaults()
	if err != nil {
		return nil, err
	}

	limiter := &RateLimiter{
		config: resolved,
		clock:  time.Now,
		sleep:  sleepContext,
	}

	for _, opt := range opts {
		opt(limiter)
	}

	limiter.tokens = float64(resolved.MaxRequests)
	limiter.lastRefill = limiter.clock()

	return limiter, nil
}

// Config returns the resolved configuration.
func (r *RateLimiter) Config() RateLimiterConfig {
	return r.config
}

// Tokens returns the current token count.
func (r *RateLimiter) Tokens() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.refill(r.clock())
}

// refill returns the balance at now: the balance stored at the last consume
// plus everything accrued since, clamped to MaxRequests. Reads never write
// the balance back, so any sequence of reads agrees with a single read.
// Callers hold mu.
func (r *RateLimiter) refill(now time.Time) float64 {
	elapsed := now.Sub(r.lastRefill)
	if elapsed <= 0 {
		return r.tokens
	}

	accrued := float64(elapsed) * float64(r.config.MaxRequests) / float64(r.config.Window)

	return math.Min(float64(r.config.MaxRequests), r.tokens+accrued)
}

// CanAdmit reports whether a token is available without consuming it.
func (r *RateLimiter) CanAdmit() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.refill(r.clock()) >= 1
}

// TryConsume takes a token if one is available.
func (r *RateLimiter) TryConsume() bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock()

	tokens := r.refill(now)
	if tokens < 1 {
		return false
	}

	r.tokens = tokens - 1
	r.lastRefill = now

	return true
}

// WaitTime returns how long until a full token is available, or 0 if one is
// available now. The result is the first nanosecond at which CanAdmit turns
// true, absent other consumers. It does not reserve the token.
func (r *RateLimiter) WaitTime() time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clock()

	tokens := r.refill(now)
	if tokens >= 1 {
		return 0
	}

	wait := time.Duration(math.Ceil((1 - tokens) * float64(r.config.Window) / float64(r.config.MaxRequests)))

	// The projection can land a nanosecond off the float comparison.
	for r.refill(now.Add(wait)) < 1 {
		wait++
	}

	for wait > 1 && r.refill(now.Add(wait-1)) >= 1 {
		wait--
	}

	return wait
}

// Admit waits for admission, consumes a token and applies the fixed request
// delay. It reports whether a token was actually taken: another caller may
// win the projected token during the wait, in which case the caller still
// proceeds.
func (r *RateLimiter) Admit(ctx context.Context) (bool, error) {
	err := r.AwaitAdmission(ctx)
	if err != nil {
		return false, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	consumed := r.TryConsume()

	if r.config.RequestDelay > 0 {
		err = r.sleep(ctx, r.config.RequestDelay)
		if err != nil {
			return consumed, fmt.Errorf("applying request delay: %w", err)
		}
	}

	return consumed, nil
}

// AwaitAdmission blocks until WaitTime has elapsed or ctx is done.
func (r *RateLimiter) AwaitAdmission(ctx context.Context) error {
	wait := r.WaitTime()
	if wait <= 0 {
		return nil
	}

	return r.sleep(ctx, wait)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
