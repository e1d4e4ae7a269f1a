//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/fivetwenty-io/xendit-client/pkg/xendit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoiceWorkflow_CompleteLifecycle(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	client := config.NewClient(t)
	ctx := context.Background()
	externalID := GenerateTestName("workflow-invoice")

	// 1. Create
	invoice, err := client.Invoices().Create(ctx, &xendit.InvoiceCreateRequest{
		ExternalID:  externalID,
		Amount:      25000,
		Currency:    xendit.CurrencyIDR,
		Description: "Integration test invoice",
	})
	require.NoError(t, err)
	assert.Equal(t, xendit.InvoiceStatusPending, invoice.Status)
	assert.NotEmpty(t, invoice.InvoiceURL)

	// 2. Get
	fetched, err := client.Invoices().Get(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, externalID, fetched.ExternalID)

	// 3. List by external id
	invoices, err := client.Invoices().List(ctx, &xendit.InvoiceListParams{ExternalID: externalID})
	require.NoError(t, err)
	require.Len(t, invoices, 1)
	assert.Equal(t, invoice.ID, invoices[0].ID)

	// 4. Expire
	expired, err := client.Invoices().Expire(ctx, invoice.ID)
	require.NoError(t, err)
	assert.Equal(t, xendit.InvoiceStatusExpired, expired.Status)

	// 5. Missing invoices map to not found
	_, err = client.Invoices().Get(ctx, "000000000000000000000000")
	assert.True(t, xendit.IsNotFound(err), "unexpected error: %v", err)
}

func TestCustomerWorkflow_CreateAndFind(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	client := config.NewClient(t)
	ctx := context.Background()
	referenceID := GenerateTestName("workflow-customer")

	customer, err := client.Customers().Create(ctx, &xendit.CustomerCreateRequest{
		ReferenceID:      referenceID,
		Type:             xendit.CustomerTypeIndividual,
		Email:            "workflow@example.com",
		IndividualDetail: &xendit.IndividualDetail{GivenNames: "Workflow"},
	})
	require.NoError(t, err)

	found, err := client.Customers().GetByReferenceID(ctx, referenceID)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, customer.ID, found[0].ID)
}

func TestPayoutWorkflow_ListChannels(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	client := config.NewClient(t)

	channels, err := client.Payouts().ListChannels(context.Background(), &xendit.PayoutChannelParams{
		Currency: xendit.CurrencyIDR,
	})
	require.NoError(t, err)
	require.NotEmpty(t, channels)

	for _, channel := range channels {
		assert.Equal(t, xendit.CurrencyIDR, channel.Currency)
	}
}

func TestPaymentRequestWorkflow_IterateItems(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)

	client := config.NewClient(t)
	seen := map[string]bool{}

	items := xendit.IterateItems[xendit.PaymentRequest](context.Background(), client.Transport(),
		"/payment_requests", &xendit.ListOptions{Limit: 2}, &xendit.PaginationOptions{MaxItems: 5})

	for pr, err := range items {
		require.NoError(t, err)
		assert.False(t, seen[pr.ID], "payment request %s returned twice", pr.ID)

		seen[pr.ID] = true
	}

	assert.LessOrEqual(t, len(seen), 5)
}

func TestCLIWorkflow_InvoiceJSONOutput(t *testing.T) {
	config := LoadTestConfig()
	config.SkipIfMissingConfig(t)
	config.SkipIfMissingBinary(t)

	client := config.NewClient(t)
	runner := NewCommandRunner(config, t)

	invoice, err := client.Invoices().Create(context.Background(), &xendit.InvoiceCreateRequest{
		ExternalID: GenerateTestName("workflow-cli"),
		Amount:     10000,
		Currency:   xendit.CurrencyIDR,
	})
	require.NoError(t, err)

	stdout, stderr, err := runner.Run("invoices", "get", invoice.ID, "--output", "json")
	require.NoError(t, err, "Failed to get invoice: %s", stderr)
	AssertJSONOutput(t, stdout)

	var decoded xendit.Invoice
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	assert.Equal(t, invoice.ID, decoded.ID)

	stdout, stderr, err = runner.Run("invoices", "expire", invoice.ID, "--output", "json")
	require.NoError(t, err, "Failed to expire invoice: %s", stderr)
	assert.Contains(t, stdout, xendit.InvoiceStatusExpired)

	_, _, err = runner.Run("invoices", "get", "000000000000000000000000")
	assert.Error(t, err)
}
