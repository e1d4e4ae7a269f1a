package commands

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"testing"

	"github.com/fivetwenty-io/xendit-client/internal/constants"
	"github.com/fivetwenty-io/xendit-client/pkg/xendit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvoicesList_FollowsCursorWithAll(t *testing.T) {
	server, recorder := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, constants.PathInvoices, r.URL.Path)
		assert.Equal(t, []string{"PAID"}, r.URL.Query()["statuses[]"])

		switch r.URL.Query().Get("last_invoice_id") {
		case "":
			writeJSON(w, http.StatusOK, []map[string]interface{}{
				{"id": "inv-1", "status": "PAID", "amount": 1000, "currency": "IDR"},
				{"id": "inv-2", "status": "PAID", "amount": 2000, "currency": "IDR"},
			})
		case "inv-2":
			writeJSON(w, http.StatusOK, []map[string]interface{}{
				{"id": "inv-3", "status": "PAID", "amount": 3000, "currency": "IDR"},
			})
		default:
			t.Errorf("unexpected cursor %q", r.URL.Query().Get("last_invoice_id"))
		}
	})

	result := runCommand(t, NewInvoicesCommand(), "",
		apiArgs(server, "invoices", "list", "--status", "PAID", "--limit", "2", "--all", "-o", "json")...)
	require.NoError(t, result.err)

	var invoices []xendit.Invoice
	require.NoError(t, json.Unmarshal([]byte(result.stdout), &invoices))
	require.Len(t, invoices, 3)
	assert.Equal(t, "inv-3", invoices[2].ID)
	assert.Len(t, recorder.all(), 2)
}

func TestInvoicesList_MaxItemsStopsEarly(t *testing.T) {
	server, recorder := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []map[string]interface{}{
			{"id": "inv-1", "status": "PENDING"},
			{"id": "inv-2", "status": "PENDING"},
		})
	})

	result := runCommand(t, NewInvoicesCommand(), "",
		apiArgs(server, "invoices", "list", "--limit", "2", "--all", "--max-items", "1", "-o", "json")...)
	require.NoError(t, result.err)

	var invoices []xendit.Invoice
	require.NoError(t, json.Unmarshal([]byte(result.stdout), &invoices))
	assert.Len(t, invoices, 1)
	assert.Len(t, recorder.all(), 1)
}

func TestInvoicesList_RejectsBadFilters(t *testing.T) {
	server, recorder := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []interface{}{})
	})

	result := runCommand(t, NewInvoicesCommand(), "", apiArgs(server, "invoices", "list", "--status", "LOST")...)
	require.ErrorIs(t, result.err, constants.ErrInvalidStatus)

	result = runCommand(t, NewInvoicesCommand(), "", apiArgs(server, "invoices", "list", "--created-after", "yesterday")...)
	require.Error(t, result.err)

	assert.Empty(t, recorder.all())
}

func TestInvoicesGet_Table(t *testing.T) {
	server, _ := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2/invoices/inv-9", r.URL.Path)

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"id": "inv-9", "external_id": "order-9", "status": "PENDING", "amount": 75000, "currency": "IDR",
			"invoice_url": "https://checkout.xendit.co/web/inv-9",
		})
	})

	result := runCommand(t, NewInvoicesCommand(), "", apiArgs(server, "invoices", "get", "inv-9")...)
	require.NoError(t, result.err)
	assert.Contains(t, result.stdout, "order-9")
	assert.Contains(t, result.stdout, "75000 IDR")
	assert.Contains(t, result.stdout, "https://checkout.xendit.co/web/inv-9")
}

func TestInvoicesGet_NotFound(t *testing.T) {
	server, _ := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error_code": "INVOICE_NOT_FOUND_ERROR", "message": "not found"})
	})

	result := runCommand(t, NewInvoicesCommand(), "", apiArgs(server, "invoices", "get", "inv-missing")...)
	require.Error(t, result.err)
	assert.True(t, xendit.IsNotFound(result.err))
}

func TestPaymentRequestsList_MaxItemsIteratesLazily(t *testing.T) {
	server, recorder := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		start, _ := strconv.Atoi(strings.TrimPrefix(r.URL.Query().Get("after_id"), "pr-"))

		data := []map[string]interface{}{
			{"id": fmt.Sprintf("pr-%d", start+1), "status": "SUCCEEDED", "currency": "IDR"},
			{"id": fmt.Sprintf("pr-%d", start+2), "status": "SUCCEEDED", "currency": "IDR"},
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{"data": data, "has_more": true, "after_id": fmt.Sprintf("pr-%d", start+2)})
	})

	result := runCommand(t, NewPaymentRequestsCommand(), "",
		apiArgs(server, "payment-requests", "list", "--limit", "2", "--max-items", "3", "-o", "json")...)
	require.NoError(t, result.err)

	var paymentRequests []xendit.PaymentRequest
	require.NoError(t, json.Unmarshal([]byte(result.stdout), &paymentRequests))
	require.Len(t, paymentRequests, 3)
	assert.Equal(t, "pr-3", paymentRequests[2].ID)
	assert.Len(t, recorder.all(), 2)
}

func TestPaymentRequestsList_SinglePageHint(t *testing.T) {
	server, recorder := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, []string{"order-1"}, r.URL.Query()["reference_id"])

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"data":     []map[string]interface{}{{"id": "pr-1", "reference_id": "order-1", "status": "PENDING"}},
			"has_more": true,
		})
	})

	result := runCommand(t, NewPaymentRequestsCommand(), "",
		apiArgs(server, "payment-requests", "list", "--reference-id", "order-1")...)
	require.NoError(t, result.err)
	assert.Contains(t, result.stdout, "pr-1")
	assert.Contains(t, result.stdout, "More results available")
	assert.Len(t, recorder.all(), 1)
}

func TestPaymentMethodsList_FetchesAllPages(t *testing.T) {
	server, recorder := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, []string{"EWALLET"}, r.URL.Query()["type"])

		if r.URL.Query().Get("after_id") == "" {
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"data":     []map[string]interface{}{{"id": "pm-1", "type": "EWALLET", "status": "ACTIVE"}},
				"has_more": true,
				"after_id": "pm-1",
			})

			return
		}

		writeJSON(w, http.StatusOK, map[string]interface{}{
			"data":     []map[string]interface{}{{"id": "pm-2", "type": "EWALLET", "status": "ACTIVE"}},
			"has_more": false,
		})
	})

	result := runCommand(t, NewPaymentMethodsCommand(), "",
		apiArgs(server, "payment-methods", "list", "--type", "EWALLET")...)
	require.NoError(t, result.err)
	assert.Contains(t, result.stdout, "pm-1")
	assert.Contains(t, result.stdout, "pm-2")
	assert.Len(t, recorder.all(), 2)

	result = runCommand(t, NewPaymentMethodsCommand(), "",
		apiArgs(server, "payment-methods", "list", "--type", "BITCOIN")...)
	require.ErrorIs(t, result.err, ErrInvalidFlagValue)
}

func TestCustomersGet_SendsCredentials(t *testing.T) {
	server, recorder := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"id": "cust-1", "reference_id": "ref-1", "type": "INDIVIDUAL",
			"individual_detail": map[string]string{"given_names": "Ada", "surname": "Lovelace"},
		})
	})

	result := runCommand(t, NewCustomersCommand(), "",
		apiArgs(server, "customers", "get", "cust-1", "--for-user-id", "sub-7")...)
	require.NoError(t, result.err)
	assert.Contains(t, result.stdout, "Ada Lovelace")

	requests := recorder.all()
	require.Len(t, requests, 1)

	username, password, ok := requests[0].BasicAuth()
	require.True(t, ok)
	assert.Equal(t, testSecretKey, username)
	assert.Empty(t, password)
	assert.Equal(t, "sub-7", requests[0].Header.Get(xendit.HeaderForUserID))
}

func TestPayoutsChannels_Query(t *testing.T) {
	server, _ := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, constants.PathPayoutChannels, r.URL.Path)
		assert.Equal(t, "PHP", r.URL.Query().Get("currency"))
		assert.Equal(t, []string{"BANK", "EWALLET"}, r.URL.Query()["channel_category"])

		writeJSON(w, http.StatusOK, []map[string]interface{}{
			{
				"channel_code": "PH_BDO", "channel_name": "BDO", "channel_category": "BANK", "currency": "PHP",
				"amount_limits": map[string]float64{"minimum": 1, "maximum": 50000},
			},
		})
	})

	result := runCommand(t, NewPayoutsCommand(), "",
		apiArgs(server, "payouts", "channels", "--currency", "PHP", "--category", "BANK", "--category", "EWALLET")...)
	require.NoError(t, result.err)
	assert.Contains(t, result.stdout, "PH_BDO")
	assert.Contains(t, result.stdout, "maximum=50000 minimum=1")
}

func TestPayoutsList_RequiresReferenceID(t *testing.T) {
	server, recorder := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, []interface{}{})
	})

	result := runCommand(t, NewPayoutsCommand(), "", apiArgs(server, "payouts", "list")...)
	require.ErrorIs(t, result.err, ErrInvalidFlagValue)
	assert.Empty(t, recorder.all())
}

func TestRateLimitFlagInstallsLimiter(t *testing.T) {
	server, recorder := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(xendit.HeaderRateLimitRemaining, "10")
		writeJSON(w, http.StatusOK, map[string]interface{}{"id": "po-1", "status": "SUCCEEDED", "amount": 10, "currency": "IDR"})
	})

	result := runCommand(t, NewPayoutsCommand(), "",
		apiArgs(server, "payouts", "get", "po-1", "--rate-limit", "60", "--verbose", "-o", "json")...)
	require.NoError(t, result.err)
	assert.Len(t, recorder.all(), 1)
	assert.Contains(t, result.stderr, "API Request")
}
