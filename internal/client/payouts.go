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

// PayoutsClient implements xendit.PayoutsClient.
type PayoutsClient struct {
	httpClient *http.Client
}

// NewPayoutsClient creates a new payouts client.
func NewPayoutsClient(httpClient *http.Client) *PayoutsClient {
	return &PayoutsClient{
		httpClient: httpClient,
	}
}

// Create implements xendit.PayoutsClient.Create.
func (c *PayoutsClient) Create(ctx context.Context, request *xendit.PayoutCreateRequest) (*xendit.Payout, error) {
	err := validation.Struct(request)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.PostWithHeaders(ctx, constants.PathPayouts, request, idempotencyHeaders(request.IdempotencyKey))
	if err != nil {
		return nil, fmt.Errorf("creating payout: %w", err)
	}

	return decode[xendit.Payout](resp, "payout")
}

// Get implements xendit.PayoutsClient.Get.
func (c *PayoutsClient) Get(ctx context.Context, id string) (*xendit.Payout, error) {
	err := validation.Required("id", id)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Get(ctx, resourcePath(constants.PathPayouts, id), nil)
	if err != nil {
		return nil, fmt.Errorf("getting payout: %w", err)
	}

	return decode[xendit.Payout](resp, "payout")
}

// ListByReferenceID implements xendit.PayoutsClient.ListByReferenceID.
func (c *PayoutsClient) ListByReferenceID(ctx context.Context, referenceID string) ([]xendit.Payout, error) {
	err := validation.Required("reference_id", referenceID)
	if err != nil {
		return nil, err
	}

	query := url.Values{constants.QueryReferenceID: []string{referenceID}}

	resp, err := c.httpClient.Get(ctx, constants.PathPayouts, query)
	if err != nil {
		return nil, fmt.Errorf("listing payouts by reference id: %w", err)
	}

	payouts, err := decode[[]xendit.Payout](resp, "payout list")
	if err != nil {
		return nil, err
	}

	if *payouts == nil {
		return []xendit.Payout{}, nil
	}

	return *payouts, nil
}

// Cancel implements xendit.PayoutsClient.Cancel.
func (c *PayoutsClient) Cancel(ctx context.Context, id string) (*xendit.Payout, error) {
	err := validation.Required("id", id)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Post(ctx, resourcePath(constants.PathPayouts, id, "cancel"), nil)
	if err != nil {
		return nil, fmt.Errorf("cancelling payout: %w", err)
	}

	return decode[xendit.Payout](resp, "payout")
}

// ListChannels implements xendit.PayoutsClient.ListChannels.
func (c *PayoutsClient) ListChannels(ctx context.Context, params *xendit.PayoutChannelParams) ([]xendit.PayoutChannel, error) {
	query := url.Values{}

	if params != nil {
		if params.Currency != "" {
			query.Set("currency", params.Currency)
		}

		for _, category := range params.ChannelCategory {
			query.Add("channel_category", category)
		}

		if params.ChannelCode != "" {
			query.Set("channel_code", params.ChannelCode)
		}
	}

	resp, err := c.httpClient.Get(ctx, constants.PathPayoutChannels, query)
	if err != nil {
		return nil, fmt.Errorf("listing payout channels: %w", err)
	}

	channels, err := decode[[]xendit.PayoutChannel](resp, "payout channel list")
	if err != nil {
		return nil, err
	}

	if *channels == nil {
		return []xendit.PayoutChannel{}, nil
	}

	return *channels, nil
}
