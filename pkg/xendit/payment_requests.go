package xendit

import (
	"context"
	"encoding/json"
	"net/url"
)

// Payment request statuses.
const (
	PaymentRequestStatusPending         = "PENDING"
	PaymentRequestStatusRequiresAction  = "REQUIRES_ACTION"
	PaymentRequestStatusAwaitingCapture = "AWAITING_CAPTURE"
	PaymentRequestStatusSucceeded       = "SUCCEEDED"
	PaymentRequestStatusCanceled        = "CANCELED"
	PaymentRequestStatusFailed          = "FAILED"
	PaymentRequestStatusVoided          = "VOIDED"
	PaymentRequestStatusUnknown         = "UNKNOWN"
)

// Capture methods.
const (
	CaptureMethodAutomatic = "AUTOMATIC"
	CaptureMethodManual    = "MANUAL"
)

// PaymentMethodInput selects the payment method for a payment request:
// either an existing one by ID or a new one described inline.
type PaymentMethodInput struct {
	ID          string              `json:"id,omitempty"           yaml:"id,omitempty"`
	Reusability string              `json:"reusability,omitempty"  validate:"omitempty,oneof=ONE_TIME_USE MULTIPLE_USE" yaml:"reusability,omitempty"`
	ReferenceID string              `json:"reference_id,omitempty" yaml:"reference_id,omitempty"`
	Description string              `json:"description,omitempty"  yaml:"description,omitempty"`
	Params      PaymentMethodParams `json:"-"                      validate:"required_without=ID"                        yaml:"params,omitempty"`
}

// MarshalJSON adds the type discriminator and the variant object.
func (p PaymentMethodInput) MarshalJSON() ([]byte, error) {
	type alias PaymentMethodInput

	fields, err := marshalFields(alias(p))
	if err != nil {
		return nil, err
	}

	err = encodeVariant(fields, p.Params)
	if err != nil {
		return nil, err
	}

	return json.Marshal(fields)
}

// PaymentRequest represents a request for payment.
type PaymentRequest struct {
	ID            string         `json:"id"                          yaml:"id"`
	BusinessID    string         `json:"business_id,omitempty"       yaml:"business_id,omitempty"`
	ReferenceID   string         `json:"reference_id"                yaml:"reference_id"`
	CustomerID    string         `json:"customer_id,omitempty"       yaml:"customer_id,omitempty"`
	Currency      string         `json:"currency"                    yaml:"currency"`
	Amount        *float64       `json:"amount,omitempty"            yaml:"amount,omitempty"`
	Country       string         `json:"country,omitempty"           yaml:"country,omitempty"`
	Status        string         `json:"status"                      yaml:"status"`
	Description   string         `json:"description,omitempty"       yaml:"description,omitempty"`
	CaptureMethod string         `json:"capture_method,omitempty"    yaml:"capture_method,omitempty"`
	FailureCode   string         `json:"failure_code,omitempty"      yaml:"failure_code,omitempty"`
	PaymentMethod *PaymentMethod `json:"payment_method,omitempty"    yaml:"payment_method,omitempty"`
	Actions       []Action       `json:"actions,omitempty"           yaml:"actions,omitempty"`
	Metadata      Metadata       `json:"metadata,omitempty"          yaml:"metadata,omitempty"`
	Timestamps
}

// PaymentRequestCreateRequest is the request for creating a payment request.
// Exactly one of PaymentMethod and PaymentMethodID is expected.
type PaymentRequestCreateRequest struct {
	ReferenceID     string              `json:"reference_id,omitempty"    validate:"omitempty,max=255"                         yaml:"reference_id,omitempty"`
	Currency        string              `json:"currency"                  validate:"required,len=3"                            yaml:"currency"`
	Amount          *float64            `json:"amount,omitempty"          validate:"omitempty,gt=0"                            yaml:"amount,omitempty"`
	Country         string              `json:"country,omitempty"         validate:"omitempty,len=2"                           yaml:"country,omitempty"`
	CustomerID      string              `json:"customer_id,omitempty"     yaml:"customer_id,omitempty"`
	Description     string              `json:"description,omitempty"     validate:"omitempty,max=1000"                        yaml:"description,omitempty"`
	CaptureMethod   string              `json:"capture_method,omitempty"  validate:"omitempty,oneof=AUTOMATIC MANUAL"          yaml:"capture_method,omitempty"`
	PaymentMethodID string              `json:"payment_method_id,omitempty" validate:"required_without=PaymentMethod"          yaml:"payment_method_id,omitempty"`
	PaymentMethod   *PaymentMethodInput `json:"payment_method,omitempty"  validate:"required_without=PaymentMethodID"          yaml:"payment_method,omitempty"`
	Metadata        Metadata            `json:"metadata,omitempty"        yaml:"metadata,omitempty"`

	// IdempotencyKey is sent as a header; one is generated when empty.
	IdempotencyKey string `json:"-" yaml:"-"`
}

// PaymentRequestCaptureRequest captures an authorized payment request.
type PaymentRequestCaptureRequest struct {
	CaptureAmount float64 `json:"capture_amount" validate:"required,gt=0" yaml:"capture_amount"`
}

// PaymentRequestAuthRequest carries the OTP sent to the payer.
type PaymentRequestAuthRequest struct {
	AuthCode string `json:"auth_code" validate:"required,numeric,min=4,max=8" yaml:"auth_code"`
}

// Capture represents a capture of a payment request.
type Capture struct {
	ID               string   `json:"id"                       yaml:"id"`
	PaymentRequestID string   `json:"payment_request_id"       yaml:"payment_request_id"`
	ReferenceID      string   `json:"reference_id,omitempty"   yaml:"reference_id,omitempty"`
	Status           string   `json:"status"                   yaml:"status"`
	Currency         string   `json:"currency"                 yaml:"currency"`
	AuthorizedAmount *float64 `json:"authorized_amount,omitempty" yaml:"authorized_amount,omitempty"`
	CapturedAmount   *float64 `json:"captured_amount,omitempty"   yaml:"captured_amount,omitempty"`
	Timestamps
}

// Payment is a single settled or attempted payment.
type Payment struct {
	ID               string         `json:"id"                           yaml:"id"`
	PaymentRequestID string         `json:"payment_request_id,omitempty" yaml:"payment_request_id,omitempty"`
	ReferenceID      string         `json:"reference_id,omitempty"       yaml:"reference_id,omitempty"`
	Currency         string         `json:"currency"                     yaml:"currency"`
	Amount           float64        `json:"amount"                       yaml:"amount"`
	Status           string         `json:"status"                       yaml:"status"`
	Country          string         `json:"country,omitempty"            yaml:"country,omitempty"`
	PaymentMethod    *PaymentMethod `json:"payment_method,omitempty"     yaml:"payment_method,omitempty"`
	Timestamps
}

// PaymentRequestListParams filters a payment request listing.
type PaymentRequestListParams struct {
	IDs          []string
	ReferenceIDs []string
	CustomerID   string
	Limit        int
	AfterID      string
	BeforeID     string
}

// ListOptions converts the params to generic list options.
func (p *PaymentRequestListParams) ListOptions() *ListOptions {
	if p == nil {
		return &ListOptions{}
	}

	filters := url.Values{}
	for _, id := range p.IDs {
		filters.Add("id", id)
	}

	for _, referenceID := range p.ReferenceIDs {
		filters.Add("reference_id", referenceID)
	}

	if p.CustomerID != "" {
		filters.Set("customer_id", p.CustomerID)
	}

	return &ListOptions{Limit: p.Limit, AfterID: p.AfterID, BeforeID: p.BeforeID, Filters: filters}
}

// PaymentRequestsClient defines operations for payment requests.
type PaymentRequestsClient interface {
	Create(ctx context.Context, request *PaymentRequestCreateRequest) (*PaymentRequest, error)
	Get(ctx context.Context, id string) (*PaymentRequest, error)
	List(ctx context.Context, params *PaymentRequestListParams) (*Page[PaymentRequest], error)
	Capture(ctx context.Context, id string, request *PaymentRequestCaptureRequest) (*Capture, error)
	AuthorizeOTP(ctx context.Context, id string, request *PaymentRequestAuthRequest) (*PaymentRequest, error)
	ResendOTP(ctx context.Context, id string) (*PaymentRequest, error)
}
