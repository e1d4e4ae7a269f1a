package xendit

import (
	"context"
	"time"
)

// E-wallet checkout methods.
const (
	CheckoutMethodOneTimePayment = "ONE_TIME_PAYMENT"
	CheckoutMethodTokenized      = "TOKENIZED_PAYMENT"
)

// EWalletCharge represents an e-wallet charge.
type EWalletCharge struct {
	ID                 string             `json:"id"                             yaml:"id"`
	BusinessID         string             `json:"business_id,omitempty"          yaml:"business_id,omitempty"`
	ReferenceID        string             `json:"reference_id"                   yaml:"reference_id"`
	Status             string             `json:"status"                         yaml:"status"`
	Currency           string             `json:"currency"                       yaml:"currency"`
	ChargeAmount       float64            `json:"charge_amount"                  yaml:"charge_amount"`
	CaptureAmount      *float64           `json:"capture_amount,omitempty"       yaml:"capture_amount,omitempty"`
	RefundedAmount     *float64           `json:"refunded_amount,omitempty"      yaml:"refunded_amount,omitempty"`
	CheckoutMethod     string             `json:"checkout_method"                yaml:"checkout_method"`
	ChannelCode        string             `json:"channel_code"                   yaml:"channel_code"`
	ChannelProperties  *ChannelProperties `json:"channel_properties,omitempty"   yaml:"channel_properties,omitempty"`
	Actions            map[string]string  `json:"actions,omitempty"              yaml:"actions,omitempty"`
	IsRedirectRequired bool               `json:"is_redirect_required"           yaml:"is_redirect_required"`
	CallbackURL        string             `json:"callback_url,omitempty"         yaml:"callback_url,omitempty"`
	VoidStatus         string             `json:"void_status,omitempty"          yaml:"void_status,omitempty"`
	VoidedAt           *time.Time         `json:"voided_at,omitempty"            yaml:"voided_at,omitempty"`
	FailureCode        string             `json:"failure_code,omitempty"         yaml:"failure_code,omitempty"`
	Metadata           Metadata           `json:"metadata,omitempty"             yaml:"metadata,omitempty"`
	Timestamps
}

// EWalletChargeRequest is the request for creating an e-wallet charge.
type EWalletChargeRequest struct {
	ReferenceID       string             `json:"reference_id"                 validate:"required,max=255"                                 yaml:"reference_id"`
	Currency          string             `json:"currency"                     validate:"required,len=3"                                   yaml:"currency"`
	Amount            float64            `json:"amount"                       validate:"required,gt=0"                                    yaml:"amount"`
	CheckoutMethod    string             `json:"checkout_method"              validate:"required,oneof=ONE_TIME_PAYMENT TOKENIZED_PAYMENT" yaml:"checkout_method"`
	ChannelCode       string             `json:"channel_code,omitempty"       validate:"required_without=PaymentMethodID"                 yaml:"channel_code,omitempty"`
	ChannelProperties *ChannelProperties `json:"channel_properties,omitempty" yaml:"channel_properties,omitempty"`
	PaymentMethodID   string             `json:"payment_method_id,omitempty"  yaml:"payment_method_id,omitempty"`
	CustomerID        string             `json:"customer_id,omitempty"        yaml:"customer_id,omitempty"`
	Metadata          Metadata           `json:"metadata,omitempty"           yaml:"metadata,omitempty"`
}

// EWalletRefund represents a refund of an e-wallet charge.
type EWalletRefund struct {
	ID            string  `json:"id"                       yaml:"id"`
	ChargeID      string  `json:"charge_id"                yaml:"charge_id"`
	Status        string  `json:"status"                   yaml:"status"`
	Currency      string  `json:"currency"                 yaml:"currency"`
	ChannelCode   string  `json:"channel_code,omitempty"   yaml:"channel_code,omitempty"`
	CaptureAmount float64 `json:"capture_amount"           yaml:"capture_amount"`
	RefundAmount  float64 `json:"refund_amount"            yaml:"refund_amount"`
	Reason        string  `json:"reason,omitempty"         yaml:"reason,omitempty"`
	FailureCode   string  `json:"failure_code,omitempty"   yaml:"failure_code,omitempty"`
	Timestamps
}

// EWalletRefundRequest is the request for refunding an e-wallet charge. A
// zero Amount refunds the full captured amount.
type EWalletRefundRequest struct {
	Amount float64 `json:"amount,omitempty" validate:"omitempty,gt=0" yaml:"amount,omitempty"`
	Reason string  `json:"reason,omitempty" validate:"omitempty,oneof=FRAUDULENT DUPLICATE REQUESTED_BY_CUSTOMER CANCELLATION OTHERS" yaml:"reason,omitempty"`
}

// EWalletsClient defines operations for e-wallet charges.
type EWalletsClient interface {
	CreateCharge(ctx context.Context, request *EWalletChargeRequest) (*EWalletCharge, error)
	GetCharge(ctx context.Context, chargeID string) (*EWalletCharge, error)
	VoidCharge(ctx context.Context, chargeID string) (*EWalletCharge, error)
	RefundCharge(ctx context.Context, chargeID string, request *EWalletRefundRequest) (*EWalletRefund, error)
	GetRefund(ctx context.Context, chargeID, refundID string) (*EWalletRefund, error)
	ListRefunds(ctx context.Context, chargeID string) (*Page[EWalletRefund], error)
}
