package xendit

import (
	"context"
)

// Card charge statuses.
const (
	CardChargeStatusAuthorized = "AUTHORIZED"
	CardChargeStatusCaptured   = "CAPTURED"
	CardChargeStatusReversed   = "REVERSED"
	CardChargeStatusFailed     = "FAILED"
)

// CardCharge represents a credit card charge.
type CardCharge struct {
	ID                    string  `json:"id"                                yaml:"id"`
	ExternalID            string  `json:"external_id"                       yaml:"external_id"`
	BusinessID            string  `json:"business_id,omitempty"             yaml:"business_id,omitempty"`
	Status                string  `json:"status"                            yaml:"status"`
	AuthorizedAmount      float64 `json:"authorized_amount"                 yaml:"authorized_amount"`
	CaptureAmount         float64 `json:"capture_amount,omitempty"          yaml:"capture_amount,omitempty"`
	Currency              string  `json:"currency"                          yaml:"currency"`
	MaskedCardNumber      string  `json:"masked_card_number,omitempty"      yaml:"masked_card_number,omitempty"`
	CardBrand             string  `json:"card_brand,omitempty"              yaml:"card_brand,omitempty"`
	CardType              string  `json:"card_type,omitempty"               yaml:"card_type,omitempty"`
	ChargeType            string  `json:"charge_type,omitempty"             yaml:"charge_type,omitempty"`
	FailureReason         string  `json:"failure_reason,omitempty"          yaml:"failure_reason,omitempty"`
	ApprovalCode          string  `json:"approval_code,omitempty"           yaml:"approval_code,omitempty"`
	MerchantReferenceCode string  `json:"merchant_reference_code,omitempty" yaml:"merchant_reference_code,omitempty"`
	Descriptor            string  `json:"descriptor,omitempty"              yaml:"descriptor,omitempty"`
	Created               string  `json:"created,omitempty"                 yaml:"created,omitempty"`
}

// CardChargeRequest is the request for charging a tokenized card.
type CardChargeRequest struct {
	TokenID          string   `json:"token_id"                     validate:"required"           yaml:"token_id"`
	ExternalID       string   `json:"external_id"                  validate:"required,max=255"   yaml:"external_id"`
	Amount           float64  `json:"amount"                       validate:"required,gt=0"      yaml:"amount"`
	Currency         string   `json:"currency,omitempty"           validate:"omitempty,len=3"    yaml:"currency,omitempty"`
	AuthenticationID string   `json:"authentication_id,omitempty"  yaml:"authentication_id,omitempty"`
	CardCVN          string   `json:"card_cvn,omitempty"           validate:"omitempty,numeric,min=3,max=4" yaml:"card_cvn,omitempty"`
	Capture          *bool    `json:"capture,omitempty"            yaml:"capture,omitempty"`
	Descriptor       string   `json:"descriptor,omitempty"         validate:"omitempty,max=22"   yaml:"descriptor,omitempty"`
	Metadata         Metadata `json:"metadata,omitempty"           yaml:"metadata,omitempty"`
}

// CardCaptureRequest captures an authorized card charge.
type CardCaptureRequest struct {
	Amount float64 `json:"amount" validate:"required,gt=0" yaml:"amount"`
}

// CardReverseAuthorizationRequest releases an uncaptured authorization.
type CardReverseAuthorizationRequest struct {
	ExternalID string `json:"external_id" validate:"required,max=255" yaml:"external_id"`
}

// CardReversal is the result of an authorization reversal.
type CardReversal struct {
	ID                 string `json:"id"                 yaml:"id"`
	ExternalID         string `json:"external_id"        yaml:"external_id"`
	CreditCardChargeID string `json:"credit_card_charge_id" yaml:"credit_card_charge_id"`
	Status             string `json:"status"             yaml:"status"`
	Created            string `json:"created,omitempty"  yaml:"created,omitempty"`
}

// CardRefundRequest is the request for refunding a card charge.
type CardRefundRequest struct {
	ExternalID string  `json:"external_id" validate:"required,max=255" yaml:"external_id"`
	Amount     float64 `json:"amount"      validate:"required,gt=0"    yaml:"amount"`

	// IdempotencyKey is sent as a header; one is generated when empty.
	IdempotencyKey string `json:"-" yaml:"-"`
}

// CardRefund represents a card refund.
type CardRefund struct {
	ID                 string  `json:"id"                    yaml:"id"`
	ExternalID         string  `json:"external_id"           yaml:"external_id"`
	CreditCardChargeID string  `json:"credit_card_charge_id" yaml:"credit_card_charge_id"`
	Amount             float64 `json:"amount"                yaml:"amount"`
	Status             string  `json:"status"                yaml:"status"`
	FailureReason      string  `json:"failure_reason,omitempty" yaml:"failure_reason,omitempty"`
	Created            string  `json:"created,omitempty"     yaml:"created,omitempty"`
}

// CardToken represents a tokenized card.
type CardToken struct {
	ID               string           `json:"id"                           yaml:"id"`
	Status           string           `json:"status"                       yaml:"status"`
	MaskedCardNumber string           `json:"masked_card_number,omitempty" yaml:"masked_card_number,omitempty"`
	CardInfo         *CardInformation `json:"card_info,omitempty" yaml:"card_info,omitempty"`
	FailureReason    string           `json:"failure_reason,omitempty"     yaml:"failure_reason,omitempty"`
}

// CardsClient defines operations for card charges and tokens.
type CardsClient interface {
	CreateCharge(ctx context.Context, request *CardChargeRequest) (*CardCharge, error)
	GetCharge(ctx context.Context, chargeID string) (*CardCharge, error)
	CaptureCharge(ctx context.Context, chargeID string, request *CardCaptureRequest) (*CardCharge, error)
	ReverseAuthorization(ctx context.Context, chargeID string, request *CardReverseAuthorizationRequest) (*CardReversal, error)
	CreateRefund(ctx context.Context, chargeID string, request *CardRefundRequest) (*CardRefund, error)
	GetToken(ctx context.Context, tokenID string) (*CardToken, error)
}
