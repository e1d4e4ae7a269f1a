package xendit

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error codes assigned by the client when the API did not supply one.
const (
	ErrorCodeInvalidAPIKey     = "INVALID_API_KEY"
	ErrorCodeNotFound          = "DATA_NOT_FOUND"
	ErrorCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrorCodeNetworkError      = "NETWORK_ERROR"
	ErrorCodeRequestFailed     = "REQUEST_FAILED"
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired           = errors.New("config is required")
	ErrSecretKeyRequired        = errors.New("secret key is required")
	ErrInvalidRateLimiterConfig = errors.New("invalid rate limiter config")
	ErrNilTransport             = errors.New("transport is required")
	ErrUnknownPaymentMethodType = errors.New("unknown payment method type")
)

// FieldIssue describes a single field-level problem.
type FieldIssue struct {
	Field   string `json:"field,omitempty"   yaml:"field,omitempty"`
	Message string `json:"message"           yaml:"message"`
}

// ValidationError is returned when input fails local validation, before any
// network call is made. It is also used when a response does not have the
// expected shape.
type ValidationError struct {
	Message string
	Issues  []FieldIssue
	Field   string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return e.Message
	}

	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Field != "" {
			parts = append(parts, issue.Field+": "+issue.Message)
		} else {
			parts = append(parts, issue.Message)
		}
	}

	return fmt.Sprintf("%s: %s", e.Message, strings.Join(parts, "; "))
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Message: "validation failed",
		Issues:  []FieldIssue{{Field: field, Message: message}},
		Field:   field,
	}
}

// NewResponseShapeError reports a response body that could not be decoded
// into the expected type.
func NewResponseShapeError(what string, err error) *ValidationError {
	return &ValidationError{
		Message: fmt.Sprintf("invalid %s response", what),
		Issues:  []FieldIssue{{Message: err.Error()}},
	}
}

// APIError represents a failure reported by, or on the way to, the Xendit API.
type APIError struct {
	Message    string `json:"message"    yaml:"message"`
	ErrorCode  string `json:"error_code" yaml:"error_code"`
	StatusCode int    `json:"-"          yaml:"-"`
	// Details holds the provider's field-level errors, or the raw response
	// body when the body did not match the documented error shape.
	Details interface{} `json:"errors,omitempty" yaml:"errors,omitempty"`

	cause error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: %s (status: %d)", e.ErrorCode, e.Message, e.StatusCode)
	}

	return fmt.Sprintf("%s: %s", e.ErrorCode, e.Message)
}

// Unwrap returns the underlying transport failure, if any.
func (e *APIError) Unwrap() error {
	return e.cause
}

// AuthenticationError is returned for HTTP 401 responses.
type AuthenticationError struct {
	*APIError
}

// Unwrap exposes the embedded APIError to errors.As.
func (e *AuthenticationError) Unwrap() error { return e.APIError }

// NotFoundError is returned for HTTP 404 responses.
type NotFoundError struct {
	*APIError
}

// Unwrap exposes the embedded APIError to errors.As.
func (e *NotFoundError) Unwrap() error { return e.APIError }

// RateLimitError is returned for HTTP 429 responses.
type RateLimitError struct {
	*APIError
}

// Unwrap exposes the embedded APIError to errors.As.
func (e *RateLimitError) Unwrap() error { return e.APIError }

type errorBody struct {
	ErrorCode string          `json:"error_code"`
	Message   string          `json:"message"`
	Errors    json.RawMessage `json:"errors"`
}

// NewAPIErrorFromResponse maps an HTTP error response to the error hierarchy.
// Bodies matching the documented {error_code, message, errors} shape keep
// their code and message; anything else gets a status-derived code and keeps
// the raw body as Details.
func NewAPIErrorFromResponse(statusCode int, body []byte) error {
	apiErr := &APIError{StatusCode: statusCode}

	var payload errorBody

	err := json.Unmarshal(body, &payload)
	if err == nil && payload.ErrorCode != "" {
		apiErr.ErrorCode = payload.ErrorCode
		apiErr.Message = payload.Message

		if len(payload.Errors) > 0 && string(payload.Errors) != "null" {
			var details interface{}
			if json.Unmarshal(payload.Errors, &details) == nil {
				apiErr.Details = details
			}
		}
	} else {
		apiErr.ErrorCode = ErrorCodeRequestFailed
		apiErr.Message = fmt.Sprintf("request failed with status %d", statusCode)

		if text := http.StatusText(statusCode); text != "" {
			apiErr.Message = fmt.Sprintf("%s (%s)", apiErr.Message, text)
		}

		if len(body) > 0 {
			apiErr.Details = rawDetails(body)
		}
	}

	if apiErr.Message == "" {
		apiErr.Message = http.StatusText(statusCode)
	}

	return classify(apiErr)
}

func rawDetails(body []byte) interface{} {
	var decoded interface{}
	if json.Unmarshal(body, &decoded) == nil {
		return decoded
	}

	return string(body)
}

func classify(apiErr *APIError) error {
	switch apiErr.StatusCode {
	case http.StatusUnauthorized:
		apiErr.ErrorCode = ErrorCodeInvalidAPIKey

		return &AuthenticationError{APIError: apiErr}
	case http.StatusNotFound:
		if apiErr.ErrorCode == ErrorCodeRequestFailed {
			apiErr.ErrorCode = ErrorCodeNotFound
		}

		return &NotFoundError{APIError: apiErr}
	case http.StatusTooManyRequests:
		if apiErr.ErrorCode == ErrorCodeRequestFailed {
			apiErr.ErrorCode = ErrorCodeRateLimitExceeded
		}

		return &RateLimitError{APIError: apiErr}
	default:
		return apiErr
	}
}

// MapError coerces any failure into the error hierarchy. Errors that already
// belong to it are returned unchanged; anything else becomes a network-level
// APIError wrapping the original cause.
func MapError(err error) error {
	if err == nil {
		return nil
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return err
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return err
	}

	return &APIError{
		Message:   err.Error(),
		ErrorCode: ErrorCodeNetworkError,
		cause:     err,
	}
}

// IsValidationError checks if the error is a local validation failure.
func IsValidationError(err error) bool {
	var validationErr *ValidationError

	return errors.As(err, &validationErr)
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	var notFound *NotFoundError

	return errors.As(err, &notFound)
}

// IsUnauthorized checks if the error is an authentication error.
func IsUnauthorized(err error) bool {
	var authErr *AuthenticationError

	return errors.As(err, &authErr)
}

// IsRateLimited checks if the error is a rate limit error.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError

	return errors.As(err, &rateLimitErr)
}

// StatusCode returns the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}

	return 0
}
