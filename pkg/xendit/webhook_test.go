package xendit_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fivetwenty-io/xendit-client/pkg/xendit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const invoicePaidBody = `{"event":"invoice.paid","business_id":"biz-1","created":"2024-05-01T10:00:00Z","data":{"id":"inv-1","status":"PAID","amount":50000}}`

func TestWebhookVerifier_Verify(t *testing.T) {
	t.Parallel()

	body := []byte(invoicePaidBody)
	signer := &xendit.WebhookVerifier{SigningSecret: "whsec"}
	signature := signer.Sign(body)

	tests := []struct {
		name     string
		verifier *xendit.WebhookVerifier
		body     []byte
		headers  http.Header
		want     bool
	}{
		{
			name:     "token only",
			verifier: &xendit.WebhookVerifier{CallbackToken: "tok"},
			body:     body,
			headers:  http.Header{"X-Callback-Token": {"tok"}},
			want:     true,
		},
		{
			name:     "wrong token",
			verifier: &xendit.WebhookVerifier{CallbackToken: "tok"},
			body:     body,
			headers:  http.Header{"X-Callback-Token": {"other"}},
		},
		{
			name:     "signature only",
			verifier: signer,
			body:     body,
			headers:  http.Header{"X-Xendit-Signature": {signature}},
			want:     true,
		},
		{
			name:     "tampered body",
			verifier: signer,
			body:     []byte(strings.Replace(invoicePaidBody, "50000", "5", 1)),
			headers:  http.Header{"X-Xendit-Signature": {signature}},
		},
		{
			name:     "malformed signature header",
			verifier: signer,
			body:     body,
			headers:  http.Header{"X-Xendit-Signature": {"sha256=zz-not-hex"}},
		},
		{
			name:     "signature without prefix",
			verifier: signer,
			body:     body,
			headers:  http.Header{"X-Xendit-Signature": {strings.TrimPrefix(signature, "sha256=")}},
		},
		{
			name:     "both configured and both valid",
			verifier: &xendit.WebhookVerifier{CallbackToken: "tok", SigningSecret: "whsec"},
			body:     body,
			headers:  http.Header{"X-Callback-Token": {"tok"}, "X-Xendit-Signature": {signature}},
			want:     true,
		},
		{
			name:     "both configured, token missing",
			verifier: &xendit.WebhookVerifier{CallbackToken: "tok", SigningSecret: "whsec"},
			body:     body,
			headers:  http.Header{"X-Xendit-Signature": {signature}},
		},
		{
			name:     "nothing configured",
			verifier: &xendit.WebhookVerifier{},
			body:     body,
			headers:  http.Header{"X-Callback-Token": {""}},
		},
		{
			name:    "nil verifier",
			body:    body,
			headers: http.Header{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.verifier.Verify(tt.body, tt.headers))
		})
	}
}

func TestParseWebhookEvent(t *testing.T) {
	t.Parallel()

	event, err := xendit.ParseWebhookEvent([]byte(invoicePaidBody))
	require.NoError(t, err)
	assert.Equal(t, "invoice.paid", event.Event)
	assert.Equal(t, "biz-1", event.BusinessID)
	require.NotNil(t, event.Created)

	var invoice xendit.Invoice
	require.NoError(t, event.DecodeData(&invoice))
	assert.Equal(t, "inv-1", invoice.ID)

	_, err = xendit.ParseWebhookEvent([]byte(`{"data":{}}`))
	require.Error(t, err)
	assert.True(t, xendit.IsValidationError(err))

	_, err = xendit.ParseWebhookEvent([]byte(`not json`))
	assert.True(t, xendit.IsValidationError(err))
}

func TestWebhookHandler(t *testing.T) {
	t.Parallel()

	verifier := &xendit.WebhookVerifier{CallbackToken: "tok"}

	tests := []struct {
		name       string
		token      string
		body       string
		handlerErr error
		wantStatus int
		wantCalled bool
	}{
		{name: "delivered", token: "tok", body: invoicePaidBody, wantStatus: http.StatusOK, wantCalled: true},
		{name: "bad token", token: "nope", body: invoicePaidBody, wantStatus: http.StatusUnauthorized},
		{name: "not an event", token: "tok", body: `[]`, wantStatus: http.StatusBadRequest},
		{
			name:       "handler failure asks for redelivery",
			token:      "tok",
			body:       invoicePaidBody,
			handlerErr: errors.New("db down"),
			wantStatus: http.StatusInternalServerError,
			wantCalled: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			called := false
			logger := &recordingLogger{}

			handler := xendit.WebhookHandler(verifier, func(_ context.Context, event *xendit.WebhookEvent) error {
				called = true

				assert.Equal(t, "invoice.paid", event.Event)

				return tt.handlerErr
			}, logger)

			request := httptest.NewRequest(http.MethodPost, "/webhooks/xendit", strings.NewReader(tt.body))
			request.Header.Set(xendit.HeaderCallbackToken, tt.token)

			recorder := httptest.NewRecorder()
			handler.ServeHTTP(recorder, request)

			assert.Equal(t, tt.wantStatus, recorder.Code)
			assert.Equal(t, tt.wantCalled, called)
		})
	}
}
