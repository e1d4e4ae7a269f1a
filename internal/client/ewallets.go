package client

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/xendit-client/internal/constants"
	"github.com/fivetwenty-io/xendit-client/internal/http"
	"github.com/fivetwenty-io/xendit-client/internal/validation"
	"github.com/fivetwenty-io/xendit-client/pkg/xendit"
)

// EWalletsClient implements xendit.EWalletsClient.
type EWalletsClient struct {
	httpClient *http.Client
}

// NewEWalletsClient creates a new e-wallets client.
func NewEWalletsClient(httpClient *http.Client) *EWalletsClient {
	return &EWalletsClient{
		httpClient: httpClient,
	}
}

// CreateCharge implements xendit.EWalletsClient.CreateCharge.
func (c *EWalletsClient) CreateCharge(ctx context.Context, request *xendit.EWalletChargeRequest) (*xendit.EWalletCharge, error) {
	err := validation.Struct(request)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, constants.PathEWalletCharges, request)
	if err != nil {
		return nil, fmt.Errorf("creating e-wallet charge: %w", err)
	}

	return decode[xendit.EWalletCharge](resp, "e-wallet charge")
}

// GetCharge implements xendit.EWalletsClient.GetCharge.
func (c *EWalletsClient) GetCharge(ctx context.Context, chargeID string) (*xendit.EWalletCharge, error) {
	err := validation.Required("charge_id", chargeID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, resourcePath(constants.PathEWalletCharges, chargeID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting e-wallet charge: %w", err)
	}

	return decode[xendit.EWalletCharge](resp, "e-wallet charge")
}

// VoidCharge implements xendit.EWalletsClient.VoidCharge.
func (c *EWalletsClient) VoidCharge(ctx context.Context, chargeID string) (*xendit.EWalletCharge, error) {
	err := validation.Required("charge_id", chargeID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, resourcePath(constants.PathEWalletCharges, chargeID, "void"), nil)
	if err != nil {
		return nil, fmt.Errorf("voiding e-wallet charge: %w", err)
	}

	return decode[xendit.EWalletCharge](resp, "e-wallet charge")
}

// RefundCharge implements xendit.EWalletsClient.RefundCharge.
func (c *EWalletsClient) RefundCharge(ctx context.Context, chargeID string, request *xendit.EWalletRefundRequest) (*xendit.EWalletRefund, error) {
	err := validation.Required("charge_id", chargeID)
	if err != nil {
		return nil, err
	}

	if request == nil {
		request = &xendit.EWalletRefundRequest{}
	}

	err = validation.Struct(request)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, resourcePath(constants.PathEWalletCharges, chargeID, "refunds"), request)
	if err != nil {
		return nil, fmt.Errorf("refunding e-wallet charge: %w", err)
	}

	return decode[xendit.EWalletRefund](resp, "e-wallet refund")
}

// GetRefund implements xendit.EWalletsClient.GetRefund.
func (c *EWalletsClient) GetRefund(ctx context.Context, chargeID, refundID string) (*xendit.EWalletRefund, error) {
	err := validation.Required("charge_id", chargeID)
	if err != nil {
		return nil, err
	}

	err = validation.Required("refund_id", refundID)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, resourcePath(constants.PathEWalletCharges, chargeID, "refunds", refundID), nil)
	if err != nil {
		return nil, fmt.Errorf("getting e-wallet refund: %w", err)
	}

	return decode[xendit.EWalletRefund](resp, "e-wallet refund")
}

// ListRefunds implements xendit.EWalletsClient.ListRefunds.
func (c *EWalletsClient) ListRefunds(ctx context.Context, chargeID string) (*xendit.Page[xendit.EWalletRefund], error) {
	err := validation.Required("charge_id", chargeID)
	if err != nil {
		return nil, err
	}

	page, err := xendit.FetchPage[xendit.EWalletRefund](ctx, c.httpClient, resourcePath(constants.PathEWalletCharges, chargeID, "refunds"), nil)
	if err != nil {
		return nil, fmt.Errorf("listing e-wallet refunds: %w", err)
	}

	return page, nil
}
