package commands

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fivetwenty-io/xendit-client/internal/constants"
	"github.com/fivetwenty-io/xendit-client/pkg/xendit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const paidEvent = `{"event":"payment.succeeded","business_id":"biz-1","created":"2024-05-01T10:00:00Z","data":{"id":"py-1","amount":1000}}`

func clearWebhookEnv(t *testing.T) {
	t.Helper()
	t.Setenv("XENDIT_CALLBACK_TOKEN", "")
	t.Setenv("XENDIT_WEBHOOK_SECRET", "")
}

func TestWebhookVerify_Token(t *testing.T) {
	clearWebhookEnv(t)

	result := runCommand(t, NewWebhookCommand(), paidEvent,
		"webhook", "verify", "--callback-token", "tok", "--token", "tok", "-o", "json")
	require.NoError(t, result.err)

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(result.stdout), &out))
	assert.Equal(t, true, out["verified"])
	assert.Equal(t, "payment.succeeded", out["event"])
	assert.Equal(t, map[string]interface{}{"id": "py-1", "amount": float64(1000)}, out["data"])
}

func TestWebhookVerify_SignatureFromFile(t *testing.T) {
	clearWebhookEnv(t)

	file := filepath.Join(t.TempDir(), "body.json")
	require.NoError(t, os.WriteFile(file, []byte(paidEvent), 0o600))

	signature := (&xendit.WebhookVerifier{SigningSecret: "whsec"}).Sign([]byte(paidEvent))

	result := runCommand(t, NewWebhookCommand(), "",
		"webhook", "verify", "--signing-secret", "whsec", "--signature", signature, "--file", file)
	require.NoError(t, result.err)
	assert.Contains(t, result.stdout, "payment.succeeded")
	assert.Contains(t, result.stdout, "biz-1")
}

func TestWebhookVerify_Rejections(t *testing.T) {
	clearWebhookEnv(t)

	result := runCommand(t, NewWebhookCommand(), paidEvent,
		"webhook", "verify", "--callback-token", "tok", "--token", "wrong")
	require.ErrorIs(t, result.err, constants.ErrWebhookRejected)

	result = runCommand(t, NewWebhookCommand(), paidEvent, "webhook", "verify", "--token", "tok")
	require.ErrorIs(t, result.err, constants.ErrNoWebhookCredentials)

	result = runCommand(t, NewWebhookCommand(), `{"data":{}}`,
		"webhook", "verify", "--callback-token", "tok", "--token", "tok")
	require.Error(t, result.err)
	assert.True(t, xendit.IsValidationError(result.err))
}
