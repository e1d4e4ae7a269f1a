package client

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fivetwenty-io/xendit-client/pkg/xendit"
)

func TestEWalletsClient_CreateCharge(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/ewallets/charges", r.URL.Path)

		writeJSON(w, http.StatusAccepted, xendit.EWalletCharge{
			ID:                 "ewc-1",
			ReferenceID:        "order-1",
			Status:             "PENDING",
			Currency:           xendit.CurrencyIDR,
			ChargeAmount:       15000,
			CheckoutMethod:     xendit.CheckoutMethodOneTimePayment,
			ChannelCode:        "ID_SHOPEEPAY",
			IsRedirectRequired: true,
			Actions:            map[string]string{"mobile_deeplink_checkout_url": "shopeeid://pay"},
		})
	})

	client := newTestClient(t, server)

	charge, err := client.EWallets().CreateCharge(context.Background(), &xendit.EWalletChargeRequest{
		ReferenceID:    "order-1",
		Currency:       xendit.CurrencyIDR,
		Amount:         15000,
		CheckoutMethod: xendit.CheckoutMethodOneTimePayment,
		ChannelCode:    "ID_SHOPEEPAY",
		ChannelProperties: &xendit.ChannelProperties{
			SuccessReturnURL: "https://shop.example.com/done",
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "ewc-1", charge.ID)
	assert.True(t, charge.IsRedirectRequired)
	assert.Equal(t, "shopeeid://pay", charge.Actions["mobile_deeplink_checkout_url"])

	body := decodeBody(t, server.LastRequest(t).Body)
	assert.Equal(t, "ID_SHOPEEPAY", body["channel_code"])
	assert.Equal(t, "ONE_TIME_PAYMENT", body["checkout_method"])
}

func TestEWalletsClient_CreateCharge_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		request *xendit.EWalletChargeRequest
		field   string
	}{
		{
			name: "missing channel and payment method",
			request: &xendit.EWalletChargeRequest{
				ReferenceID:    "order-1",
				Currency:       xendit.CurrencyIDR,
				Amount:         100,
				CheckoutMethod: xendit.CheckoutMethodOneTimePayment,
			},
			field: "channel_code",
		},
		{
			name: "non-positive amount",
			request: &xendit.EWalletChargeRequest{
				ReferenceID:    "order-1",
				Currency:       xendit.CurrencyIDR,
				Amount:         -5,
				CheckoutMethod: xendit.CheckoutMethodOneTimePayment,
				ChannelCode:    "ID_OVO",
			},
			field: "amount",
		},
		{
			name: "bad checkout method",
			request: &xendit.EWalletChargeRequest{
				ReferenceID:    "order-1",
				Currency:       xendit.CurrencyIDR,
				Amount:         100,
				CheckoutMethod: "LATER",
				ChannelCode:    "ID_OVO",
			},
			field: "checkout_method",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			server := newTestServer(t, unreachableHandler(t))
			client := newTestClient(t, server)

			_, err := client.EWallets().CreateCharge(context.Background(), tt.request)
			require.Error(t, err)

			var validationErr *xendit.ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.field, validationErr.Field)
			assert.Empty(t, server.Requests())
		})
	}
}

func TestEWalletsClient_CreateCharge_WithPaymentMethod(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusAccepted, xendit.EWalletCharge{ID: "ewc-2"})
	})

	client := newTestClient(t, server)

	_, err := client.EWallets().CreateCharge(context.Background(), &xendit.EWalletChargeRequest{
		ReferenceID:     "order-2",
		Currency:        xendit.CurrencyPHP,
		Amount:          100,
		CheckoutMethod:  xendit.CheckoutMethodTokenized,
		PaymentMethodID: "pm-1",
	})
	require.NoError(t, err)

	body := decodeBody(t, server.LastRequest(t).Body)
	assert.Equal(t, "pm-1", body["payment_method_id"])
	assert.NotContains(t, body, "channel_code")
}

func TestEWalletsClient_VoidCharge(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/ewallets/charges/ewc-1/void", r.URL.Path)

		writeJSON(w, http.StatusOK, xendit.EWalletCharge{ID: "ewc-1", VoidStatus: "PENDING"})
	})

	client := newTestClient(t, server)

	charge, err := client.EWallets().VoidCharge(context.Background(), "ewc-1")
	require.NoError(t, err)
	assert.Equal(t, "PENDING", charge.VoidStatus)
}

func TestEWalletsClient_Refunds(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/ewallets/charges/ewc-1/refunds":
			writeJSON(w, http.StatusOK, xendit.EWalletRefund{ID: "rfd-1", ChargeID: "ewc-1", RefundAmount: 500, Status: "PENDING"})
		case r.Method == http.MethodGet && r.URL.Path == "/ewallets/charges/ewc-1/refunds/rfd-1":
			writeJSON(w, http.StatusOK, xendit.EWalletRefund{ID: "rfd-1", ChargeID: "ewc-1", Status: "SUCCEEDED"})
		case r.Method == http.MethodGet && r.URL.Path == "/ewallets/charges/ewc-1/refunds":
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"data":     []xendit.EWalletRefund{{ID: "rfd-1"}},
				"has_more": false,
			})
		default:
			notFoundHandler(w, r)
		}
	})

	client := newTestClient(t, server)
	ctx := context.Background()

	refund, err := client.EWallets().RefundCharge(ctx, "ewc-1", &xendit.EWalletRefundRequest{Amount: 500, Reason: "REQUESTED_BY_CUSTOMER"})
	require.NoError(t, err)
	assert.Equal(t, "rfd-1", refund.ID)
	assert.InDelta(t, 500, refund.RefundAmount, 0)

	refund, err = client.EWallets().GetRefund(ctx, "ewc-1", "rfd-1")
	require.NoError(t, err)
	assert.Equal(t, "SUCCEEDED", refund.Status)

	page, err := client.EWallets().ListRefunds(ctx, "ewc-1")
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.False(t, page.HasMore)
}

func TestEWalletsClient_RefundCharge_FullRefund(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, xendit.EWalletRefund{ID: "rfd-2"})
	})

	client := newTestClient(t, server)

	_, err := client.EWallets().RefundCharge(context.Background(), "ewc-1", nil)
	require.NoError(t, err)
	assert.JSONEq(t, "{}", string(server.LastRequest(t).Body))
}

func TestEWalletsClient_GetCharge_NotFound(t *testing.T) {
	t.Parallel()

	server := newTestServer(t, notFoundHandler)
	client := newTestClient(t, server)

	_, err := client.EWallets().GetCharge(context.Background(), "ewc-missing")
	require.Error(t, err)
	assert.True(t, xendit.IsNotFound(err))
}
