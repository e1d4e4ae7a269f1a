package xendit_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/fivetwenty-io/xendit-client/pkg/xendit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAPIErrorFromResponse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		status     int
		body       string
		wantCode   string
		wantMsg    string
		check      func(t *testing.T, err error)
		wantDetail interface{}
	}{
		{
			name:     "documented body keeps code and message",
			status:   http.StatusBadRequest,
			body:     `{"error_code":"API_VALIDATION_ERROR","message":"amount is required","errors":[{"path":"amount"}]}`,
			wantCode: "API_VALIDATION_ERROR",
			wantMsg:  "amount is required",
			wantDetail: []interface{}{
				map[string]interface{}{"path": "amount"},
			},
		},
		{
			name:     "unauthorized is normalised",
			status:   http.StatusUnauthorized,
			body:     `{"error_code":"INVALID_TOKEN","message":"bad key"}`,
			wantCode: xendit.ErrorCodeInvalidAPIKey,
			wantMsg:  "bad key",
			check: func(t *testing.T, err error) {
				t.Helper()
				assert.True(t, xendit.IsUnauthorized(err))
			},
		},
		{
			name:     "not found without body",
			status:   http.StatusNotFound,
			wantCode: xendit.ErrorCodeNotFound,
			check: func(t *testing.T, err error) {
				t.Helper()
				assert.True(t, xendit.IsNotFound(err))
			},
		},
		{
			name:     "not found keeps provider code",
			status:   http.StatusNotFound,
			body:     `{"error_code":"INVOICE_NOT_FOUND_ERROR","message":"gone"}`,
			wantCode: "INVOICE_NOT_FOUND_ERROR",
			wantMsg:  "gone",
		},
		{
			name:     "rate limited",
			status:   http.StatusTooManyRequests,
			body:     `slow down`,
			wantCode: xendit.ErrorCodeRateLimitExceeded,
			check: func(t *testing.T, err error) {
				t.Helper()
				assert.True(t, xendit.IsRateLimited(err))
			},
			wantDetail: "slow down",
		},
		{
			name:       "unexpected json shape keeps raw body",
			status:     http.StatusBadGateway,
			body:       `{"oops":true}`,
			wantCode:   xendit.ErrorCodeRequestFailed,
			wantDetail: map[string]interface{}{"oops": true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := xendit.NewAPIErrorFromResponse(tt.status, []byte(tt.body))
			require.Error(t, err)

			var apiErr *xendit.APIError
			require.ErrorAs(t, err, &apiErr)

			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantCode, apiErr.ErrorCode)
			assert.Equal(t, tt.status, xendit.StatusCode(err))

			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, apiErr.Message)
			} else {
				assert.NotEmpty(t, apiErr.Message)
			}

			if tt.wantDetail != nil {
				assert.Equal(t, tt.wantDetail, apiErr.Details)
			}

			if tt.check != nil {
				tt.check(t, err)
			}
		})
	}
}

func TestAPIError_Error(t *testing.T) {
	t.Parallel()

	withStatus := &xendit.APIError{ErrorCode: "DUPLICATE_ERROR", Message: "exists", StatusCode: 409}
	assert.Equal(t, "DUPLICATE_ERROR: exists (status: 409)", withStatus.Error())

	withoutStatus := &xendit.APIError{ErrorCode: "NETWORK_ERROR", Message: "dial failed"}
	assert.Equal(t, "NETWORK_ERROR: dial failed", withoutStatus.Error())
}

func TestMapError(t *testing.T) {
	t.Parallel()

	assert.NoError(t, xendit.MapError(nil))

	validation := xendit.NewValidationError("amount", "is required")
	assert.Same(t, validation, xendit.MapError(validation))

	notFound := xendit.NewAPIErrorFromResponse(http.StatusNotFound, nil)
	assert.Equal(t, notFound, xendit.MapError(notFound))

	wrapped := fmt.Errorf("get invoice: %w", notFound)
	assert.Equal(t, wrapped, xendit.MapError(wrapped))

	mapped := xendit.MapError(context.DeadlineExceeded)

	var apiErr *xendit.APIError
	require.ErrorAs(t, mapped, &apiErr)
	assert.Equal(t, xendit.ErrorCodeNetworkError, apiErr.ErrorCode)
	assert.Zero(t, apiErr.StatusCode)
	assert.ErrorIs(t, mapped, context.DeadlineExceeded)
}

func TestErrorPredicates_ThroughWrapping(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("list invoices: %w", xendit.NewAPIErrorFromResponse(http.StatusTooManyRequests, nil))

	assert.True(t, xendit.IsRateLimited(err))
	assert.False(t, xendit.IsNotFound(err))
	assert.False(t, xendit.IsUnauthorized(err))
	assert.False(t, xendit.IsValidationError(err))
	assert.Equal(t, http.StatusTooManyRequests, xendit.StatusCode(err))

	assert.Zero(t, xendit.StatusCode(errors.New("plain")))
}

func TestValidationError_Error(t *testing.T) {
	t.Parallel()

	single := xendit.NewValidationError("amount", "is required")
	assert.Equal(t, "validation failed: amount: is required", single.Error())
	assert.Equal(t, "amount", single.Field)

	multi := &xendit.ValidationError{
		Message: "validation failed",
		Issues: []xendit.FieldIssue{
			{Field: "currency", Message: "must be one of IDR PHP"},
			{Message: "body is empty"},
		},
	}
	assert.Equal(t, "validation failed: currency: must be one of IDR PHP; body is empty", multi.Error())

	bare := &xendit.ValidationError{Message: "nothing to check"}
	assert.Equal(t, "nothing to check", bare.Error())

	shape := xendit.NewResponseShapeError("invoice", errors.New("unexpected EOF"))
	assert.Equal(t, "invalid invoice response: unexpected EOF", shape.Error())
}
