package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/xendit-client/internal/constants"
	"github.com/fivetwenty-io/xendit-client/internal/http"
	"github.com/fivetwenty-io/xendit-client/internal/validation"
	"github.com/fivetwenty-io/xendit-client/pkg/xendit"
)

// PaymentMethodsClient implements xendit.PaymentMethodsClient.
type PaymentMethodsClient struct {
	httpClient *http.Client
}

// NewPaymentMethodsClient creates a new payment methods client.
func NewPaymentMethodsClient(httpClient *http.Client) *PaymentMethodsClient {
	return &PaymentMethodsClient{
		httpClient: httpClient,
	}
}

// Create implements xendit.PaymentMethodsClient.Create.
func (c *PaymentMethodsClient) Create(ctx context.Context, request *xendit.PaymentMethodCreateRequest) (*xendit.PaymentMethod, error) {
	err := validation.Struct(request)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, constants.PathPaymentMethods, request)
	if err != nil {
		return nil, fmt.Errorf("creating payment method: %w", err)
	}

	return decode[xendit.PaymentMethod](resp, "payment method")
}

// Get implements xendit.PaymentMethodsClient.Get.
func (c *PaymentMethodsClient) Get(ctx context.Context, id string) (*xendit.PaymentMethod, error) {
	err := validation.Required("id", id)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, resourcePath(constants.PathPaymentMethods, id), nil)
	if err != nil {
		return nil, fmt.Errorf("getting payment method: %w", err)
	}

	return decode[xendit.PaymentMethod](resp, "payment method")
}

// List implements xendit.PaymentMethodsClient.List.
func (c *PaymentMethodsClient) List(ctx context.Context, params *xendit.PaymentMethodListParams) (*xendit.Page[xendit.PaymentMethod], error) {
	page, err := xendit.FetchPage[xendit.PaymentMethod](ctx, c.httpClient, constants.PathPaymentMethods, params.ListOptions())
	if err != nil {
		return nil, fmt.Errorf("listing payment methods: %w", err)
	}

	return page, nil
}

// Update implements xendit.PaymentMethodsClient.Update.
func (c *PaymentMethodsClient) Update(ctx context.Context, id string, request *xendit.PaymentMethodUpdateRequest) (*xendit.PaymentMethod, error) {
	err := validation.Required("id", id)
	if err != nil {
		return nil, err
	}

	err = validation.Struct(request)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Patch(ctx, resourcePath(constants.PathPaymentMethods, id), request)
	if err != nil {
		return nil, fmt.Errorf("updating payment method: %w", err)
	}

	return decode[xendit.PaymentMethod](resp, "payment method")
}

// Expire implements xendit.PaymentMethodsClient.Expire.
func (c *PaymentMethodsClient) Expire(ctx context.Context, id string) (*xendit.PaymentMethod, error) {
	err := validation.Required("id", id)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, resourcePath(constants.PathPaymentMethods, id, "expire"), nil)
	if err != nil {
		return nil, fmt.Errorf("expiring payment method: %w", err)
	}

	return decode[xendit.PaymentMethod](resp, "payment method")
}

// AuthorizeOTP implements xendit.PaymentMethodsClient.AuthorizeOTP.
func (c *PaymentMethodsClient) AuthorizeOTP(ctx context.Context, id string, request *xendit.PaymentMethodAuthRequest) (*xendit.PaymentMethod, error) {
	err := validation.Required("id", id)
	if err != nil {
		return nil, err
	}

	err = validation.Struct(request)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, resourcePath(constants.PathPaymentMethods, id, "auth"), request)
	if err != nil {
		return nil, fmt.Errorf("authorizing payment method: %w", err)
	}

	return decode[xendit.PaymentMethod](resp, "payment method")
}

// ListPayments implements xendit.PaymentMethodsClient.ListPayments.
func (c *PaymentMethodsClient) ListPayments(ctx context.Context, id string, opts *xendit.ListOptions) (*xendit.Page[xendit.Payment], error) {
	err := validation.Required("id", id)
	if err != nil {
		return nil, err
	}

	page, err := xendit.FetchPage[xendit.Payment](ctx, c.httpClient, resourcePath(constants.PathPaymentMethods, id, "payments"), opts)
	if err != nil {
		return nil, fmt.Errorf("listing payment method payments: %w", err)
	}

	return page, nil
}
