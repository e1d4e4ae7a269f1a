package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/xendit-client/internal/constants"
	"github.com/fivetwenty-io/xendit-client/internal/http"
	"github.com/fivetwenty-io/xendit-client/internal/validation"
	"github.com/fivetwenty-io/xendit-client/pkg/xendit"
)

// PaymentRequestsClient implements xendit.PaymentRequestsClient.
type PaymentRequestsClient struct {
	httpClient *http.Client
}

// NewPaymentRequestsClient creates a new payment requests client.
func NewPaymentRequestsClient(httpClient *http.Client) *PaymentRequestsClient {
	return &PaymentRequestsClient{
		httpClient: httpClient,
	}
}

// Create implements xendit.PaymentRequestsClient.Create.
func (c *PaymentRequestsClient) Create(ctx context.Context, request *xendit.PaymentRequestCreateRequest) (*xendit.PaymentRequest, error) {
	err := validation.Struct(request)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.PostWithHeaders(ctx, constants.PathPaymentRequests, request, idempotencyHeaders(request.IdempotencyKey))
	if err != nil {
		return nil, fmt.Errorf("creating payment request: %w", err)
	}

	return decode[xendit.PaymentRequest](resp, "payment request")
}

// Get implements xendit.PaymentRequestsClient.Get.
func (c *PaymentRequestsClient) Get(ctx context.Context, id string) (*xendit.PaymentRequest, error) {
	err := validation.Required("id", id)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, resourcePath(constants.PathPaymentRequests, id), nil)
	if err != nil {
		return nil, fmt.Errorf("getting payment request: %w", err)
	}

	return decode[xendit.PaymentRequest](resp, "payment request")
}

// List implements xendit.PaymentRequestsClient.List.
func (c *PaymentRequestsClient) List(ctx context.Context, params *xendit.PaymentRequestListParams) (*xendit.Page[xendit.PaymentRequest], error) {
	page, err := xendit.FetchPage[xendit.PaymentRequest](ctx, c.httpClient, constants.PathPaymentRequests, params.ListOptions())
	if err != nil {
		return nil, fmt.Errorf("listing payment requests: %w", err)
	}

	return page, nil
}

// Capture implements xendit.PaymentRequestsClient.Capture.
func (c *PaymentRequestsClient) Capture(ctx context.Context, id string, request *xendit.PaymentRequestCaptureRequest) (*xendit.Capture, error) {
	err := validation.Required("id", id)
	if err != nil {
		return nil, err
	}

	err = validation.Struct(request)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, resourcePath(constants.PathPaymentRequests, id, "captures"), request)
	if err != nil {
		return nil, fmt.Errorf("capturing payment request: %w", err)
	}

	return decode[xendit.Capture](resp, "capture")
}

// AuthorizeOTP implements xendit.PaymentRequestsClient.AuthorizeOTP.
func (c *PaymentRequestsClient) AuthorizeOTP(ctx context.Context, id string, request *xendit.PaymentRequestAuthRequest) (*xendit.PaymentRequest, error) {
	err := validation.Required("id", id)
	if err != nil {
		return nil, err
	}

	err = validation.Struct(request)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, resourcePath(constants.PathPaymentRequests, id, "auth"), request)
	if err != nil {
		return nil, fmt.Errorf("authorizing payment request: %w", err)
	}

	return decode[xendit.PaymentRequest](resp, "payment request")
}

// ResendOTP implements xendit.PaymentRequestsClient.ResendOTP.
func (c *PaymentRequestsClient) ResendOTP(ctx context.Context, id string) (*xendit.PaymentRequest, error) {
	err := validation.Required("id", id)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, resourcePath(constants.PathPaymentRequests, id, "auth", "resend"), nil)
	if err != nil {
		return nil, fmt.Errorf("resending payment request OTP: %w", err)
	}

	return decode[xendit.PaymentRequest](resp, "payment request")
}
