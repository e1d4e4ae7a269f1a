// Package xenditclient provides the main entry point for creating Xendit API clients
package xenditclient

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/fivetwenty-io/xendit-client/internal/client"
	"github.com/fivetwenty-io/xendit-client/internal/constants"
	"github.com/fivetwenty-io/xendit-client/pkg/xendit"
)

// Environment variables read by NewFromEnvironment.
const (
	EnvSecretKey = "XENDIT_SECRET_KEY"
	EnvAPI       = "XENDIT_API"
	EnvForUserID = "XENDIT_FOR_USER_ID"
)

// New creates a new Xendit API client.
func New(ctx context.Context, config *xendit.Config) (xendit.Client, error) {
	if config == nil {
		return nil, xendit.ErrConfigRequired
	}

	if strings.TrimSpace(config.SecretKey) == "" {
		return nil, xendit.ErrSecretKeyRequired
	}

	normalized := *config
	normalized.APIEndpoint = normalizeEndpoint(config.APIEndpoint)

	c, err := client.New(ctx, &normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to create new client: %w", err)
	}

	return c, nil
}

// NewWithSecretKey creates a client for the production endpoint using only a secret key.
func NewWithSecretKey(ctx context.Context, secretKey string) (xendit.Client, error) {
	return New(ctx, &xendit.Config{SecretKey: secretKey})
}

// NewForSubAccount creates a client whose requests act on behalf of a
// sub-account (xenPlatform).
func NewForSubAccount(ctx context.Context, secretKey, forUserID string) (xendit.Client, error) {
	return New(ctx, &xendit.Config{SecretKey: secretKey, ForUserID: forUserID})
}

// NewFromEnvironment creates a client from XENDIT_SECRET_KEY, XENDIT_API and
// XENDIT_FOR_USER_ID. Fields already set on base win over the environment.
func NewFromEnvironment(ctx context.Context, base *xendit.Config) (xendit.Client, error) {
	config := xendit.Config{}
	if base != nil {
		config = *base
	}

	if config.SecretKey == "" {
		config.SecretKey = os.Getenv(EnvSecretKey)
	}

	if config.APIEndpoint == "" {
		config.APIEndpoint = os.Getenv(EnvAPI)
	}

	if config.ForUserID == "" {
		config.ForUserID = os.Getenv(EnvForUserID)
	}

	return New(ctx, &config)
}

// normalizeEndpoint trims trailing slashes and defaults the scheme to https.
func normalizeEndpoint(endpoint string) string {
	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if endpoint == "" {
		return constants.DefaultAPIEndpoint
	}

	if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}

	return endpoint
}
