package xendit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
)

// PaymentMethodType identifies a payment method channel family.
type PaymentMethodType string

// Payment method types.
const (
	PaymentMethodTypeEWallet        PaymentMethodType = "EWALLET"
	PaymentMethodTypeDirectDebit    PaymentMethodType = "DIRECT_DEBIT"
	PaymentMethodTypeCard           PaymentMethodType = "CARD"
	PaymentMethodTypeVirtualAccount PaymentMethodType = "VIRTUAL_ACCOUNT"
	PaymentMethodTypeOverTheCounter PaymentMethodType = "OVER_THE_COUNTER"
	PaymentMethodTypeQRCode         PaymentMethodType = "QR_CODE"
)

// Payment method reusability.
const (
	ReusabilityOneTimeUse  = "ONE_TIME_USE"
	ReusabilityMultipleUse = "MULTIPLE_USE"
)

// Payment method statuses.
const (
	PaymentMethodStatusActive         = "ACTIVE"
	PaymentMethodStatusInactive       = "INACTIVE"
	PaymentMethodStatusPending        = "PENDING"
	PaymentMethodStatusExpired        = "EXPIRED"
	PaymentMethodStatusFailed         = "FAILED"
	PaymentMethodStatusRequiresAction = "REQUIRES_ACTION"
)

// variantKeys maps each type to the JSON key holding its parameters.
var variantKeys = map[PaymentMethodType]string{
	PaymentMethodTypeEWallet:        "ewallet",
	PaymentMethodTypeDirectDebit:    "direct_debit",
	PaymentMethodTypeCard:           "card",
	PaymentMethodTypeVirtualAccount: "virtual_account",
	PaymentMethodTypeOverTheCounter: "over_the_counter",
	PaymentMethodTypeQRCode:         "qr_code",
}

// VariantKey returns the JSON key carrying the parameters for t.
func (t PaymentMethodType) VariantKey() (string, bool) {
	key, ok := variantKeys[t]

	return key, ok
}

// PaymentMethodParams holds the channel-specific part of a payment method.
// It is implemented only by the types in this package.
type PaymentMethodParams interface {
	PaymentMethodType() PaymentMethodType
	isPaymentMethodParams()
}

// EWalletParams are the parameters of an EWALLET payment method.
type EWalletParams struct {
	ChannelCode       string             `json:"channel_code"                 validate:"required" yaml:"channel_code"`
	ChannelProperties *ChannelProperties `json:"channel_properties,omitempty" yaml:"channel_properties,omitempty"`
	Account           *EWalletAccount    `json:"account,omitempty"            yaml:"account,omitempty"`
}

// EWalletAccount is the linked e-wallet account reported by the API.
type EWalletAccount struct {
	Name           string   `json:"name,omitempty"            yaml:"name,omitempty"`
	AccountDetails string   `json:"account_details,omitempty" yaml:"account_details,omitempty"`
	Balance        *float64 `json:"balance,omitempty"         yaml:"balance,omitempty"`
	PointBalance   *float64 `json:"point_balance,omitempty"   yaml:"point_balance,omitempty"`
}

// DirectDebitParams are the parameters of a DIRECT_DEBIT payment method.
type DirectDebitParams struct {
	ChannelCode       string             `json:"channel_code"                 validate:"required" yaml:"channel_code"`
	ChannelProperties *ChannelProperties `json:"channel_properties,omitempty" yaml:"channel_properties,omitempty"`
	Type              string             `json:"type,omitempty"               validate:"omitempty,oneof=DEBIT_CARD BANK_ACCOUNT" yaml:"type,omitempty"`
}

// CardParams are the parameters of a CARD payment method.
type CardParams struct {
	Currency          string                 `json:"currency"                     validate:"required,len=3" yaml:"currency"`
	ChannelProperties *CardChannelProperties `json:"channel_properties,omitempty" yaml:"channel_properties,omitempty"`
	CardInformation   *CardInformation       `json:"card_information,omitempty"   yaml:"card_information,omitempty"`
}

// CardChannelProperties controls 3DS and redirect behavior for cards.
type CardChannelProperties struct {
	SkipThreeDSecure bool   `json:"skip_three_d_secure,omitempty" yaml:"skip_three_d_secure,omitempty"`
	SuccessReturnURL string `json:"success_return_url,omitempty"  validate:"omitempty,url" yaml:"success_return_url,omitempty"`
	FailureReturnURL string `json:"failure_return_url,omitempty"  validate:"omitempty,url" yaml:"failure_return_url,omitempty"`
}

// CardInformation is the masked card data reported by the API.
type CardInformation struct {
	TokenID          string `json:"token_id,omitempty"            yaml:"token_id,omitempty"`
	MaskedCardNumber string `json:"masked_card_number,omitempty"  yaml:"masked_card_number,omitempty"`
	CardholderName   string `json:"cardholder_name,omitempty"     yaml:"cardholder_name,omitempty"`
	ExpiryMonth      string `json:"expiry_month,omitempty"        yaml:"expiry_month,omitempty"`
	ExpiryYear       string `json:"expiry_year,omitempty"         yaml:"expiry_year,omitempty"`
	Network          string `json:"network,omitempty"             yaml:"network,omitempty"`
	Country          string `json:"country,omitempty"             yaml:"country,omitempty"`
	Type             string `json:"type,omitempty"                yaml:"type,omitempty"`
}

// VirtualAccountParams are the parameters of a VIRTUAL_ACCOUNT payment method.
type VirtualAccountParams struct {
	ChannelCode       string                   `json:"channel_code"          validate:"required" yaml:"channel_code"`
	ChannelProperties VirtualAccountProperties `json:"channel_properties"    yaml:"channel_properties"`
	Amount            *float64                 `json:"amount,omitempty"      validate:"omitempty,gt=0" yaml:"amount,omitempty"`
	Currency          string                   `json:"currency,omitempty"    validate:"omitempty,len=3" yaml:"currency,omitempty"`
}

// VirtualAccountProperties configures a virtual account.
type VirtualAccountProperties struct {
	CustomerName         string   `json:"customer_name"                   validate:"required" yaml:"customer_name"`
	VirtualAccountNumber string   `json:"virtual_account_number,omitempty" yaml:"virtual_account_number,omitempty"`
	SuggestedAmount      *float64 `json:"suggested_amount,omitempty"      yaml:"suggested_amount,omitempty"`
	ExpiresAt            string   `json:"expires_at,omitempty"            yaml:"expires_at,omitempty"`
}

// OverTheCounterParams are the parameters of an OVER_THE_COUNTER payment method.
type OverTheCounterParams struct {
	ChannelCode       string                   `json:"channel_code"       validate:"required" yaml:"channel_code"`
	ChannelProperties OverTheCounterProperties `json:"channel_properties" yaml:"channel_properties"`
	Amount            *float64                 `json:"amount,omitempty"   validate:"omitempty,gt=0" yaml:"amount,omitempty"`
	Currency          string                   `json:"currency,omitempty" validate:"omitempty,len=3" yaml:"currency,omitempty"`
}

// OverTheCounterProperties configures an over-the-counter payment code.
type OverTheCounterProperties struct {
	CustomerName string `json:"customer_name"          validate:"required" yaml:"customer_name"`
	PaymentCode  string `json:"payment_code,omitempty" yaml:"payment_code,omitempty"`
	ExpiresAt    string `json:"expires_at,omitempty"   yaml:"expires_at,omitempty"`
}

// QRCodeParams are the parameters of a QR_CODE payment method.
type QRCodeParams struct {
	ChannelCode string   `json:"channel_code,omitempty" yaml:"channel_code,omitempty"`
	Amount      *float64 `json:"amount,omitempty"       validate:"omitempty,gt=0" yaml:"amount,omitempty"`
	Currency    string   `json:"currency,omitempty"     validate:"omitempty,len=3" yaml:"currency,omitempty"`
	QRString    string   `json:"qr_string,omitempty"    yaml:"qr_string,omitempty"`
}

func (EWalletParams) PaymentMethodType() PaymentMethodType        { return PaymentMethodTypeEWallet }
func (DirectDebitParams) PaymentMethodType() PaymentMethodType    { return PaymentMethodTypeDirectDebit }
func (CardParams) PaymentMethodType() PaymentMethodType           { return PaymentMethodTypeCard }
func (VirtualAccountParams) PaymentMethodType() PaymentMethodType { return PaymentMethodTypeVirtualAccount }
func (OverTheCounterParams) PaymentMethodType() PaymentMethodType { return PaymentMethodTypeOverTheCounter }
func (QRCodeParams) PaymentMethodType() PaymentMethodType         { return PaymentMethodTypeQRCode }

func (EWalletParams) isPaymentMethodParams()        {}
func (DirectDebitParams) isPaymentMethodParams()    {}
func (CardParams) isPaymentMethodParams()           {}
func (VirtualAccountParams) isPaymentMethodParams() {}
func (OverTheCounterParams) isPaymentMethodParams() {}
func (QRCodeParams) isPaymentMethodParams()         {}

// newParams returns an empty parameter value for t.
func newParams(t PaymentMethodType) (PaymentMethodParams, error) {
	switch t {
	case PaymentMethodTypeEWallet:
		return &EWalletParams{}, nil
	case PaymentMethodTypeDirectDebit:
		return &DirectDebitParams{}, nil
	case PaymentMethodTypeCard:
		return &CardParams{}, nil
	case PaymentMethodTypeVirtualAccount:
		return &VirtualAccountParams{}, nil
	case PaymentMethodTypeOverTheCounter:
		return &OverTheCounterParams{}, nil
	case PaymentMethodTypeQRCode:
		return &QRCodeParams{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownPaymentMethodType, t)
	}
}

// encodeVariant adds the type discriminator and the variant object to fields.
func encodeVariant(fields map[string]json.RawMessage, params PaymentMethodParams) error {
	if params == nil {
		return nil
	}

	paymentType := params.PaymentMethodType()
	key, _ := paymentType.VariantKey()

	typeJSON, err := json.Marshal(paymentType)
	if err != nil {
		return err
	}

	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("encoding %s parameters: %w", key, err)
	}

	fields["type"] = typeJSON
	fields[key] = paramsJSON

	return nil
}

// decodeVariant reads the type discriminator and its variant object.
func decodeVariant(data []byte) (PaymentMethodType, PaymentMethodParams, error) {
	var fields map[string]json.RawMessage

	err := json.Unmarshal(data, &fields)
	if err != nil {
		return "", nil, err
	}

	var paymentType PaymentMethodType

	rawType, ok := fields["type"]
	if !ok {
		return "", nil, nil
	}

	err = json.Unmarshal(rawType, &paymentType)
	if err != nil {
		return "", nil, fmt.Errorf("decoding type: %w", err)
	}

	params, err := newParams(paymentType)
	if errors.Is(err, ErrUnknownPaymentMethodType) {
		return paymentType, nil, nil
	}

	key, _ := paymentType.VariantKey()

	raw, ok := fields[key]
	if !ok || string(raw) == "null" {
		return paymentType, nil, nil
	}

	err = json.Unmarshal(raw, params)
	if err != nil {
		return "", nil, fmt.Errorf("decoding %s parameters: %w", key, err)
	}

	return paymentType, params, nil
}

func marshalFields(v interface{}) (map[string]json.RawMessage, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	var fields map[string]json.RawMessage

	err = json.Unmarshal(data, &fields)
	if err != nil {
		return nil, err
	}

	return fields, nil
}

// PaymentMethod represents a stored payment method.
type PaymentMethod struct {
	ID          string              `json:"id"                     yaml:"id"`
	Type        PaymentMethodType   `json:"type"                   yaml:"type"`
	Reusability string              `json:"reusability"            yaml:"reusability"`
	Status      string              `json:"status"                 yaml:"status"`
	Country     string              `json:"country,omitempty"      yaml:"country,omitempty"`
	BusinessID  string              `json:"business_id,omitempty"  yaml:"business_id,omitempty"`
	CustomerID  string              `json:"customer_id,omitempty"  yaml:"customer_id,omitempty"`
	ReferenceID string              `json:"reference_id,omitempty" yaml:"reference_id,omitempty"`
	Description string              `json:"description,omitempty"  yaml:"description,omitempty"`
	FailureCode string              `json:"failure_code,omitempty" yaml:"failure_code,omitempty"`
	Actions     []Action            `json:"actions,omitempty"      yaml:"actions,omitempty"`
	Metadata    Metadata            `json:"metadata,omitempty"     yaml:"metadata,omitempty"`
	Details     PaymentMethodParams `json:"-"                      yaml:"details,omitempty"`
	Timestamps
}

// UnmarshalJSON decodes the variant object selected by the type field into Details.
func (p *PaymentMethod) UnmarshalJSON(data []byte) error {
	type alias PaymentMethod

	var decoded alias

	err := json.Unmarshal(data, &decoded)
	if err != nil {
		return err
	}

	_, details, err := decodeVariant(data)
	if err != nil {
		return err
	}

	decoded.Details = details
	*p = PaymentMethod(decoded)

	return nil
}

// MarshalJSON writes Details back under its variant key.
func (p PaymentMethod) MarshalJSON() ([]byte, error) {
	type alias PaymentMethod

	fields, err := marshalFields(alias(p))
	if err != nil {
		return nil, err
	}

	err = encodeVariant(fields, p.Details)
	if err != nil {
		return nil, err
	}

	return json.Marshal(fields)
}

// PaymentMethodCreateRequest is the request for creating a payment method.
// The type is taken from Params.
type PaymentMethodCreateRequest struct {
	Reusability string              `json:"reusability"            validate:"required,oneof=ONE_TIME_USE MULTIPLE_USE" yaml:"reusability"`
	Country     string              `json:"country,omitempty"      validate:"omitempty,len=2"                           yaml:"country,omitempty"`
	CustomerID  string              `json:"customer_id,omitempty"  yaml:"customer_id,omitempty"`
	ReferenceID string              `json:"reference_id,omitempty" validate:"omitempty,max=255"                         yaml:"reference_id,omitempty"`
	Description string              `json:"description,omitempty"  yaml:"description,omitempty"`
	Metadata    Metadata            `json:"metadata,omitempty"     yaml:"metadata,omitempty"`
	Params      PaymentMethodParams `json:"-"                      validate:"required"                                  yaml:"params"`
}

// MarshalJSON adds the type discriminator and the variant object.
func (r PaymentMethodCreateRequest) MarshalJSON() ([]byte, error) {
	type alias PaymentMethodCreateRequest

	fields, err := marshalFields(alias(r))
	if err != nil {
		return nil, err
	}

	err = encodeVariant(fields, r.Params)
	if err != nil {
		return nil, err
	}

	return json.Marshal(fields)
}

// PaymentMethodUpdateRequest is the request for updating a payment method.
type PaymentMethodUpdateRequest struct {
	Status      string   `json:"status,omitempty"       validate:"omitempty,oneof=ACTIVE INACTIVE" yaml:"status,omitempty"`
	ReferenceID string   `json:"reference_id,omitempty" yaml:"reference_id,omitempty"`
	Description string   `json:"description,omitempty"  yaml:"description,omitempty"`
	Metadata    Metadata `json:"metadata,omitempty"     yaml:"metadata,omitempty"`
}

// PaymentMethodAuthRequest carries the OTP sent to the payer.
type PaymentMethodAuthRequest struct {
	AuthCode string `json:"auth_code" validate:"required,numeric,min=4,max=8" yaml:"auth_code"`
}

// PaymentMethodListParams filters a payment method listing.
type PaymentMethodListParams struct {
	CustomerID  string
	ReferenceID string
	Types       []PaymentMethodType
	Statuses    []string
	Limit       int
	AfterID     string
	BeforeID    string
}

// ListOptions converts the params to generic list options.
func (p *PaymentMethodListParams) ListOptions() *ListOptions {
	if p == nil {
		return &ListOptions{}
	}

	filters := url.Values{}
	if p.CustomerID != "" {
		filters.Set("customer_id", p.CustomerID)
	}

	if p.ReferenceID != "" {
		filters.Set("reference_id", p.ReferenceID)
	}

	for _, t := range p.Types {
		filters.Add("type", string(t))
	}

	for _, status := range p.Statuses {
		filters.Add("status", status)
	}

	return &ListOptions{Limit: p.Limit, AfterID: p.AfterID, BeforeID: p.BeforeID, Filters: filters}
}

// PaymentMethodsClient defines operations for payment methods.
type PaymentMethodsClient interface {
	Create(ctx context.Context, request *PaymentMethodCreateRequest) (*PaymentMethod, error)
	Get(ctx context.Context, id string) (*PaymentMethod, error)
	List(ctx context.Context, params *PaymentMethodListParams) (*Page[PaymentMethod], error)
	Update(ctx context.Context, id string, request *PaymentMethodUpdateRequest) (*PaymentMethod, error)
	Expire(ctx context.Context, id string) (*PaymentMethod, error)
	AuthorizeOTP(ctx context.Context, id string, request *PaymentMethodAuthRequest) (*PaymentMethod, error)
	ListPayments(ctx context.Context, id string, opts *ListOptions) (*Page[Payment], error)
}
