package constants

import "errors"

// CLI configuration errors.
var (
	ErrNoSecretKey         = errors.New("no secret key configured, set XENDIT_SECRET_KEY or run 'xendit config set-key'")
	ErrInvalidOutputFormat = errors.New("invalid output format, expected table, json or yaml")
	ErrInvalidStatus       = errors.New("invalid status filter")
)

// Webhook errors.
var (
	ErrNoWebhookCredentials = errors.New("either --callback-token or --signing-secret is required")
	ErrWebhookRejected      = errors.New("webhook verification failed")
)
