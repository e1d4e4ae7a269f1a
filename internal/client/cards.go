package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/xendit-client/internal/constants"
	"github.com/fivetwenty-io/xendit-client/internal/http"
	"github.com/fivetwenty-io/xendit-client/internal/validation"
	"github.com/fivetwenty-io/xendit-client/pkg/xendit"
)

// CardsClient implements xendit.CardsClient.
type CardsClient struct {
	httpClient *http.Client
}

// NewCardsClient creates a new cards client.
func NewCardsClient(httpClient *http.Client) *CardsClient {
	return &CardsClient{
		httpClient: httpClient,
	}
}

// CreateCharge implements xendit.CardsClient.CreateCharge.
func (c *CardsClient) CreateCharge(ctx context.Context, request *xendit.CardChargeRequest) (*xendit.CardCharge, error) {
	err := validation.Struct(request)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, constants.PathCardCharges, request)
	if err != nil {
		return nil, fmt.Errorf("creating card charge: %w", err)
	}

	return decode[xendit.CardCharge](resp, "card charge")
}

// GetCharge implements xendit.CardsClient.GetCharge.
func (c *CardsClient) GetCharge(ctx context.Context, chargeID string) (*xendit.CardCharge, error) {
	err := validation.Required("charge_id", chargeID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, resourcePath(constants.PathCardCharges, chargeID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting card charge: %w", err)
	}

	return decode[xendit.CardCharge](resp, "card charge")
}

// CaptureCharge implements xendit.CardsClient.CaptureCharge.
func (c *CardsClient) CaptureCharge(ctx context.Context, chargeID string, request *xendit.CardCaptureRequest) (*xendit.CardCharge, error) {
	err := validation.Required("charge_id", chargeID)
	if err != nil {
		return nil, err
	}

	err = validation.Struct(request)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, resourcePath(constants.PathCardCharges, chargeID, "capture"), request)
	if err != nil {
		return nil, fmt.Errorf("capturing card charge: %w", err)
	}

	return decode[xendit.CardCharge](resp, "card charge")
}

// ReverseAuthorization implements xendit.CardsClient.ReverseAuthorization.
func (c *CardsClient) ReverseAuthorization(ctx context.Context, chargeID string, request *xendit.CardReverseAuthorizationRequest) (*xendit.CardReversal, error) {
	err := validation.Required("charge_id", chargeID)
	if err != nil {
		return nil, err
	}

	err = validation.Struct(request)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, resourcePath(constants.PathCardCharges, chargeID, "auth_reversal"), request)
	if err != nil {
		return nil, fmt.Errorf("reversing card authorization: %w", err)
	}

	return decode[xendit.CardReversal](resp, "card reversal")
}

// CreateRefund implements xendit.CardsClient.CreateRefund.
func (c *CardsClient) CreateRefund(ctx context.Context, chargeID string, request *xendit.CardRefundRequest) (*xendit.CardRefund, error) {
	err := validation.Required("charge_id", chargeID)
	if err != nil {
		return nil, err
	}

	err = validation.Struct(request)
	if err != nil {
		return nil, err
	}

	path := resourcePath(constants.PathCardCharges, chargeID, "refunds")

	resp, err := c.httpClient.PostWithHeaders(ctx, path, request, idempotencyHeaders(request.IdempotencyKey))
	if err != nil {
		return nil, fmt.Errorf("refunding card charge: %w", err)
	}

	return decode[xendit.CardRefund](resp, "card refund")
}

// GetToken implements xendit.CardsClient.GetToken.
func (c *CardsClient) GetToken(ctx context.Context, tokenID string) (*xendit.CardToken, error) {
	err := validation.Required("token_id", tokenID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, resourcePath(constants.PathCardTokens, tokenID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting card token: %w", err)
	}

	return decode[xendit.CardToken](resp, "card token")
}
