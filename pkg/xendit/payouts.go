package xendit

import (
	"context"
)

// Payout statuses.
const (
	PayoutStatusAccepted  = "ACCEPTED"
	PayoutStatusRequested = "REQUESTED"
	PayoutStatusSucceeded = "SUCCEEDED"
	PayoutStatusFailed    = "FAILED"
	PayoutStatusCancelled = "CANCELLED"
	PayoutStatusReversed  = "REVERSED"
)

// PayoutChannelProperties identifies the destination account.
type PayoutChannelProperties struct {
	AccountNumber     string `json:"account_number"                validate:"required" yaml:"account_number"`
	AccountHolderName string `json:"account_holder_name,omitempty" yaml:"account_holder_name,omitempty"`
	AccountType       string `json:"account_type,omitempty"        yaml:"account_type,omitempty"`
}

// ReceiptNotification lists who is emailed when the payout completes.
type ReceiptNotification struct {
	EmailTo  []string `json:"email_to,omitempty"  validate:"omitempty,dive,email" yaml:"email_to,omitempty"`
	EmailCC  []string `json:"email_cc,omitempty"  validate:"omitempty,dive,email" yaml:"email_cc,omitempty"`
	EmailBCC []string `json:"email_bcc,omitempty" validate:"omitempty,dive,email" yaml:"email_bcc,omitempty"`
}

// Payout represents a disbursement to a bank account or e-wallet.
type Payout struct {
	ID                  string                  `json:"id"                             yaml:"id"`
	BusinessID          string                  `json:"business_id,omitempty"          yaml:"business_id,omitempty"`
	ReferenceID         string                  `json:"reference_id"                   yaml:"reference_id"`
	Amount              float64                 `json:"amount"                         yaml:"amount"`
	Currency            string                  `json:"currency"                       yaml:"currency"`
	Description         string                  `json:"description,omitempty"          yaml:"description,omitempty"`
	ChannelCode         string                  `json:"channel_code"                   yaml:"channel_code"`
	ChannelProperties   PayoutChannelProperties `json:"channel_properties"             yaml:"channel_properties"`
	ReceiptNotification *ReceiptNotification    `json:"receipt_notification,omitempty" yaml:"receipt_notification,omitempty"`
	Status              string                  `json:"status"                         yaml:"status"`
	FailureCode         string                  `json:"failure_code,omitempty"         yaml:"failure_code,omitempty"`
	EstimatedArrival    string                  `json:"estimated_arrival_time,omitempty" yaml:"estimated_arrival_time,omitempty"`
	Metadata            Metadata                `json:"metadata,omitempty"             yaml:"metadata,omitempty"`
	Timestamps
}

// PayoutCreateRequest is the request for creating a payout.
type PayoutCreateRequest struct {
	ReferenceID         string                  `json:"reference_id"                   validate:"required,max=255"  yaml:"reference_id"`
	ChannelCode         string                  `json:"channel_code"                   validate:"required"          yaml:"channel_code"`
	ChannelProperties   PayoutChannelProperties `json:"channel_properties"             yaml:"channel_properties"`
	Amount              float64                 `json:"amount"                         validate:"required,gt=0"     yaml:"amount"`
	Currency            string                  `json:"currency"                       validate:"required,len=3"    yaml:"currency"`
	Description         string                  `json:"description,omitempty"          validate:"omitempty,max=100" yaml:"description,omitempty"`
	ReceiptNotification *ReceiptNotification    `json:"receipt_notification,omitempty" yaml:"receipt_notification,omitempty"`
	Metadata            Metadata                `json:"metadata,omitempty"             yaml:"metadata,omitempty"`

	// IdempotencyKey is sent as a header; one is generated when empty.
	IdempotencyKey string `json:"-" yaml:"-"`
}

// PayoutChannel describes a destination channel.
type PayoutChannel struct {
	ChannelCode     string             `json:"channel_code"              yaml:"channel_code"`
	ChannelCategory string             `json:"channel_category"          yaml:"channel_category"`
	Currency        string             `json:"currency"                  yaml:"currency"`
	ChannelName     string             `json:"channel_name"              yaml:"channel_name"`
	AmountLimits    map[string]float64 `json:"amount_limits,omitempty"  yaml:"amount_limits,omitempty"`
}

// PayoutChannelParams filters the channel listing.
type PayoutChannelParams struct {
	Currency        string
	ChannelCategory []string
	ChannelCode     string
}

// PayoutsClient defines operations for payouts.
type PayoutsClient interface {
	Create(ctx context.Context, request *PayoutCreateRequest) (*Payout, error)
	Get(ctx context.Context, id string) (*Payout, error)
	ListByReferenceID(ctx context.Context, referenceID string) ([]Payout, error)
	Cancel(ctx context.Context, id string) (*Payout, error)
	ListChannels(ctx context.Context, params *PayoutChannelParams) ([]PayoutChannel, error)
}
