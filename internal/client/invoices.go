package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/xendit-client/internal/constants"
	"github.com/fivetwenty-io/xendit-client/internal/http"
	"github.com/fivetwenty-io/xendit-client/internal/validation"
	"github.com/fivetwenty-io/xendit-client/pkg/xendit"
)

// InvoicesClient implements xendit.InvoicesClient.
type InvoicesClient struct {
	httpClient *http.Client
}

// NewInvoicesClient creates a new invoices client.
func NewInvoicesClient(httpClient *http.Client) *InvoicesClient {
	return &InvoicesClient{
		httpClient: httpClient,
	}
}

// Create implements xendit.InvoicesClient.Create.
func (c *InvoicesClient) Create(ctx context.Context, request *xendit.InvoiceCreateRequest) (*xendit.Invoice, error) {
	err := validation.Struct(request)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, constants.PathInvoices, request)
	if err != nil {
		return nil, fmt.Errorf("creating invoice: %w", err)
	}

	return decode[xendit.Invoice](resp, "invoice")
}

// Get implements xendit.InvoicesClient.Get.
func (c *InvoicesClient) Get(ctx context.Context, id string) (*xendit.Invoice, error) {
	err := validation.Required("id", id)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, resourcePath(constants.PathInvoices, id), nil)
	if err != nil {
		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	return decode[xendit.Invoice](resp, "invoice")
}

// List implements xendit.InvoicesClient.List. The invoices endpoint returns
// a bare array; use LastInvoiceID to continue from a previous call.
func (c *InvoicesClient) List(ctx context.Context, params *xendit.InvoiceListParams) ([]xendit.Invoice, error) {
	resp, err := c.httpClient.Get(ctx, constants.PathInvoices, params.ListOptions().ToValues())
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}

	invoices, err := decode[[]xendit.Invoice](resp, "invoice list")
	if err != nil {
		return nil, err
	}

	if *invoices == nil {
		return []xendit.Invoice{}, nil
	}

	return *invoices, nil
}

// Expire implements xendit.InvoicesClient.Expire.
func (c *InvoicesClient) Expire(ctx context.Context, id string) (*xendit.Invoice, error) {
	err := validation.Required("id", id)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, resourcePath(constants.PathInvoicesLegacy, id)+"/expire!", nil)
	if err != nil {
		return nil, fmt.Errorf("expiring invoice: %w", err)
	}

	return decode[xendit.Invoice](resp, "invoice")
}
