package xendit

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"
)

// Webhook headers.
const (
	HeaderCallbackToken    = "X-Callback-Token"
	HeaderWebhookSignature = "X-Xendit-Signature"
	HeaderWebhookID        = "Webhook-Id"

	signaturePrefix = "sha256="
)

// maxWebhookBody caps the body read by WebhookHandler.
const maxWebhookBody = 1 << 20

// ErrInvalidWebhookEvent is returned when a webhook body lacks an event name.
var ErrInvalidWebhookEvent = errors.New("webhook event name is missing")

// WebhookVerifier checks that a webhook came from Xendit. When both fields
// are set both checks must pass.
type WebhookVerifier struct {
	// CallbackToken is compared with the x-callback-token header.
	CallbackToken string
	// SigningSecret keys the HMAC-SHA256 checked against x-xendit-signature.
	SigningSecret string
}

// Verify reports whether body and headers carry a valid token or signature.
// It never panics and treats any malformed input as a mismatch.
func (v *WebhookVerifier) Verify(body []byte, headers http.Header) bool {
	if v == nil || (v.CallbackToken == "" && v.SigningSecret == "") {
		return false
	}

	if v.CallbackToken != "" && !constantTimeEqual(headers.Get(HeaderCallbackToken), v.CallbackToken) {
		return false
	}

	if v.SigningSecret != "" && !v.verifySignature(body, headers.Get(HeaderWebhookSignature)) {
		return false
	}

	return true
}

// Sign returns the signature header value for body.
func (v *WebhookVerifier) Sign(body []byte) string {
	mac := hmac.New(sha256.New, []byte(v.SigningSecret))
	_, _ = mac.Write(body)

	return signaturePrefix + hex.EncodeToString(mac.Sum(nil))
}

func (v *WebhookVerifier) verifySignature(body []byte, header string) bool {
	header = strings.TrimSpace(header)
	if !strings.HasPrefix(header, signaturePrefix) {
		return false
	}

	got, err := hex.DecodeString(strings.TrimPrefix(header, signaturePrefix))
	if err != nil {
		return false
	}

	mac := hmac.New(sha256.New, []byte(v.SigningSecret))
	_, _ = mac.Write(body)

	return hmac.Equal(got, mac.Sum(nil))
}

func constantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// WebhookEvent is the envelope of a webhook delivery.
type WebhookEvent struct {
	Event      string          `json:"event"                 yaml:"event"`
	BusinessID string          `json:"business_id,omitempty" yaml:"business_id,omitempty"`
	Created    *time.Time      `json:"created,omitempty"     yaml:"created,omitempty"`
	APIVersion string          `json:"api_version,omitempty" yaml:"api_version,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"        yaml:"-"`
}

// DecodeData unmarshals the event payload into v.
func (e *WebhookEvent) DecodeData(v interface{}) error {
	err := json.Unmarshal(e.Data, v)
	if err != nil {
		return NewResponseShapeError("webhook data", err)
	}

	return nil
}

// ParseWebhookEvent decodes a webhook body.
func ParseWebhookEvent(body []byte) (*WebhookEvent, error) {
	var event WebhookEvent

	err := json.Unmarshal(body, &event)
	if err != nil {
		return nil, NewResponseShapeError("webhook", err)
	}

	if event.Event == "" {
		return nil, NewResponseShapeError("webhook", ErrInvalidWebhookEvent)
	}

	return &event, nil
}

// WebhookHandlerFunc processes a verified webhook event.
type WebhookHandlerFunc func(ctx context.Context, event *WebhookEvent) error

// WebhookHandler returns an http.Handler that verifies deliveries and passes
// them to handle. It answers 401 for failed verification, 400 for an
// unreadable body and 500 when handle fails, so Xendit retries the delivery.
func WebhookHandler(verifier *WebhookVerifier, handle WebhookHandlerFunc, logger Logger) http.Handler {
	if logger == nil {
		logger = NopLogger()
	}

	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		body, err := io.ReadAll(io.LimitReader(request.Body, maxWebhookBody))
		if err != nil {
			http.Error(writer, "unreadable body", http.StatusBadRequest)

			return
		}

		if !verifier.Verify(body, request.Header) {
			logger.Warn("Webhook verification failed", map[string]interface{}{
				"remote_addr": request.RemoteAddr,
			})
			http.Error(writer, "invalid signature", http.StatusUnauthorized)

			return
		}

		event, err := ParseWebhookEvent(body)
		if err != nil {
			http.Error(writer, "invalid event", http.StatusBadRequest)

			return
		}

		err = handle(request.Context(), event)
		if err != nil {
			logger.Error("Webhook handler failed", map[string]interface{}{
				"event": event.Event,
				"error": err.Error(),
			})
			http.Error(writer, "handler failed", http.StatusInternalServerError)

			return
		}

		writer.WriteHeader(http.StatusOK)
	})
}
