package client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/fivetwenty-io/xendit-client/internal/constants"
	"github.com/fivetwenty-io/xendit-client/internal/http"
	"github.com/fivetwenty-io/xendit-client/internal/validation"
	"github.com/fivetwenty-io/xendit-client/pkg/xendit"
)

// CustomersClient implements xendit.CustomersClient.
type CustomersClient struct {
	httpClient *http.Client
}

// NewCustomersClient creates a new customers client.
func NewCustomersClient(httpClient *http.Client) *CustomersClient {
	return &CustomersClient{
		httpClient: httpClient,
	}
}

// Create implements xendit.CustomersClient.Create.
func (c *CustomersClient) Create(ctx context.Context, request *xendit.CustomerCreateRequest) (*xendit.Customer, error) {
	err := validation.Struct(request)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, constants.PathCustomers, request)
	if err != nil {
		return nil, fmt.Errorf("creating customer: %w", err)
	}

	return decode[xendit.Customer](resp, "customer")
}

// Get implements xendit.CustomersClient.Get.
func (c *CustomersClient) Get(ctx context.Context, id string) (*xendit.Customer, error) {
	err := validation.Required("id", id)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, resourcePath(constants.PathCustomers, id), nil)
	if err != nil {
		return nil, fmt.Errorf("getting customer: %w", err)
	}

	return decode[xendit.Customer](resp, "customer")
}

// GetByReferenceID implements xendit.CustomersClient.GetByReferenceID.
func (c *CustomersClient) GetByReferenceID(ctx context.Context, referenceID string) ([]xendit.Customer, error) {
	err := validation.Required("reference_id", referenceID)
	if err != nil {
		return nil, err
	}

	query := url.Values{constants.QueryReferenceID: []string{referenceID}}

	resp, err := c.httpClient.Get(ctx, constants.PathCustomers, query)
	if err != nil {
		return nil, fmt.Errorf("getting customers by reference id: %w", err)
	}

	list, err := decode[struct {
		Data []xendit.Customer `json:"data"`
	}](resp, "customer list")
	if err != nil {
		return nil, err
	}

	if list.Data == nil {
		return []xendit.Customer{}, nil
	}

	return list.Data, nil
}

// Update implements xendit.CustomersClient.Update.
func (c *CustomersClient) Update(ctx context.Context, id string, request *xendit.CustomerUpdateRequest) (*xendit.Customer, error) {
	err := validation.Required("id", id)
	if err != nil {
		return nil, err
	}

	err = validation.Struct(request)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Patch(ctx, resourcePath(constants.PathCustomers, id), request)
	if err != nil {
		return nil, fmt.Errorf("updating customer: %w", err)
	}

	return decode[xendit.Customer](resp, "customer")
}
