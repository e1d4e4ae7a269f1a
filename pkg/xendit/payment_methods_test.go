package xendit_test

import (
	"encoding/json"
	"testing"

	"github.com/fivetwenty-io/xendit-client/pkg/xendit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentMethod_UnmarshalVariant(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		body  string
		check func(t *testing.T, details xendit.PaymentMethodParams)
	}{
		{
			name: "ewallet",
			body: `{"id":"pm-1","type":"EWALLET","reusability":"MULTIPLE_USE","status":"ACTIVE",
				"ewallet":{"channel_code":"OVO","account":{"name":"Ada"}}}`,
			check: func(t *testing.T, details xendit.PaymentMethodParams) {
				t.Helper()

				ewallet, ok := details.(*xendit.EWalletParams)
				require.True(t, ok)
				assert.Equal(t, "OVO", ewallet.ChannelCode)
				require.NotNil(t, ewallet.Account)
				assert.Equal(t, "Ada", ewallet.Account.Name)
			},
		},
		{
			name: "qr code",
			body: `{"id":"pm-2","type":"QR_CODE","qr_code":{"channel_code":"QRIS","qr_string":"000201"}}`,
			check: func(t *testing.T, details xendit.PaymentMethodParams) {
				t.Helper()

				qr, ok := details.(*xendit.QRCodeParams)
				require.True(t, ok)
				assert.Equal(t, "000201", qr.QRString)
			},
		},
		{
			name: "unknown type",
			body: `{"id":"pm-3","type":"CRYPTO","crypto":{"chain":"x"}}`,
			check: func(t *testing.T, details xendit.PaymentMethodParams) {
				t.Helper()
				assert.Nil(t, details)
			},
		},
		{
			name: "variant object missing",
			body: `{"id":"pm-4","type":"CARD","card":null}`,
			check: func(t *testing.T, details xendit.PaymentMethodParams) {
				t.Helper()
				assert.Nil(t, details)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var method xendit.PaymentMethod
			require.NoError(t, json.Unmarshal([]byte(tt.body), &method))
			assert.NotEmpty(t, method.ID)
			tt.check(t, method.Details)
		})
	}
}

func TestPaymentMethod_MarshalKeepsVariant(t *testing.T) {
	t.Parallel()

	method := xendit.PaymentMethod{
		ID:          "pm-1",
		Type:        xendit.PaymentMethodTypeDirectDebit,
		Reusability: xendit.ReusabilityMultipleUse,
		Status:      xendit.PaymentMethodStatusActive,
		Details:     &xendit.DirectDebitParams{ChannelCode: "BPI", Type: "BANK_ACCOUNT"},
	}

	data, err := json.Marshal(method)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))

	assert.Equal(t, "DIRECT_DEBIT", fields["type"])
	assert.Equal(t, map[string]interface{}{"channel_code": "BPI", "type": "BANK_ACCOUNT"}, fields["direct_debit"])
	assert.NotContains(t, fields, "Details")
}

func TestPaymentMethodCreateRequest_MarshalJSON(t *testing.T) {
	t.Parallel()

	request := xendit.PaymentMethodCreateRequest{
		Reusability: xendit.ReusabilityOneTimeUse,
		ReferenceID: "ref-1",
		Params: &xendit.OverTheCounterParams{
			ChannelCode:       "7ELEVEN",
			ChannelProperties: xendit.OverTheCounterProperties{CustomerName: "Ada"},
		},
	}

	data, err := json.Marshal(request)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &fields))

	assert.Equal(t, "OVER_THE_COUNTER", fields["type"])
	assert.Equal(t, "ONE_TIME_USE", fields["reusability"])
	assert.Contains(t, fields, "over_the_counter")
	assert.NotContains(t, fields, "Params")

	withoutParams, err := json.Marshal(xendit.PaymentMethodCreateRequest{Reusability: xendit.ReusabilityOneTimeUse})
	require.NoError(t, err)
	assert.JSONEq(t, `{"reusability":"ONE_TIME_USE"}`, string(withoutParams))
}

func TestPaymentMethodType_VariantKey(t *testing.T) {
	t.Parallel()

	key, ok := xendit.PaymentMethodTypeVirtualAccount.VariantKey()
	assert.True(t, ok)
	assert.Equal(t, "virtual_account", key)

	_, ok = xendit.PaymentMethodType("CRYPTO").VariantKey()
	assert.False(t, ok)
}

func TestPaymentMethodListParams_ListOptions(t *testing.T) {
	t.Parallel()

	var nilParams *xendit.PaymentMethodListParams
	assert.Equal(t, &xendit.ListOptions{}, nilParams.ListOptions())

	opts := (&xendit.PaymentMethodListParams{
		CustomerID: "cust-1",
		Types:      []xendit.PaymentMethodType{xendit.PaymentMethodTypeCard, xendit.PaymentMethodTypeEWallet},
		Limit:      5,
	}).ListOptions()

	values := opts.ToValues()
	assert.Equal(t, "cust-1", values.Get("customer_id"))
	assert.Equal(t, []string{"CARD", "EWALLET"}, values["type"])
	assert.Equal(t, "5", values.Get("limit"))
}
