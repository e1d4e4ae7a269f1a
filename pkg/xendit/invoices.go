package xendit

import (
	"context"
	"net/url"
	"strconv"
	"time"
)

// Invoice statuses.
const (
	InvoiceStatusPending = "PENDING"
	InvoiceStatusPaid    = "PAID"
	InvoiceStatusSettled = "SETTLED"
	InvoiceStatusExpired = "EXPIRED"
)

// InvoiceItem is a line item shown on the invoice.
type InvoiceItem struct {
	Name        string  `json:"name"                  validate:"required,max=256" yaml:"name"`
	Quantity    int     `json:"quantity"              validate:"required,gt=0"    yaml:"quantity"`
	Price       float64 `json:"price"                 validate:"gte=0"            yaml:"price"`
	Category    string  `json:"category,omitempty"    yaml:"category,omitempty"`
	ReferenceID string  `json:"reference_id,omitempty" yaml:"reference_id,omitempty"`
	URL         string  `json:"url,omitempty"         validate:"omitempty,url"    yaml:"url,omitempty"`
}

// InvoiceFee is an additional fee charged on the invoice.
type InvoiceFee struct {
	Type  string  `json:"type"  validate:"required" yaml:"type"`
	Value float64 `json:"value" yaml:"value"`
}

// InvoiceCustomer is the payer data printed on the invoice.
type InvoiceCustomer struct {
	GivenNames   string    `json:"given_names,omitempty"   yaml:"given_names,omitempty"`
	Surname      string    `json:"surname,omitempty"       yaml:"surname,omitempty"`
	Email        string    `json:"email,omitempty"         validate:"omitempty,email" yaml:"email,omitempty"`
	MobileNumber string    `json:"mobile_number,omitempty" yaml:"mobile_number,omitempty"`
	Addresses    []Address `json:"addresses,omitempty"     validate:"omitempty,dive"  yaml:"addresses,omitempty"`
}

// Invoice represents a hosted invoice.
type Invoice struct {
	ID                 string           `json:"id"                                    yaml:"id"`
	ExternalID         string           `json:"external_id"                           yaml:"external_id"`
	UserID             string           `json:"user_id,omitempty"                     yaml:"user_id,omitempty"`
	Status             string           `json:"status"                                yaml:"status"`
	MerchantName       string           `json:"merchant_name,omitempty"               yaml:"merchant_name,omitempty"`
	Amount             float64          `json:"amount"                                yaml:"amount"`
	PaidAmount         *float64         `json:"paid_amount,omitempty"                 yaml:"paid_amount,omitempty"`
	Currency           string           `json:"currency"                              yaml:"currency"`
	Description        string           `json:"description,omitempty"                 yaml:"description,omitempty"`
	PayerEmail         string           `json:"payer_email,omitempty"                 yaml:"payer_email,omitempty"`
	InvoiceURL         string           `json:"invoice_url"                           yaml:"invoice_url"`
	ExpiryDate         *time.Time       `json:"expiry_date,omitempty"                 yaml:"expiry_date,omitempty"`
	PaidAt             *time.Time       `json:"paid_at,omitempty"                     yaml:"paid_at,omitempty"`
	PaymentMethod      string           `json:"payment_method,omitempty"              yaml:"payment_method,omitempty"`
	PaymentChannel     string           `json:"payment_channel,omitempty"             yaml:"payment_channel,omitempty"`
	SuccessRedirectURL string           `json:"success_redirect_url,omitempty"        yaml:"success_redirect_url,omitempty"`
	FailureRedirectURL string           `json:"failure_redirect_url,omitempty"        yaml:"failure_redirect_url,omitempty"`
	Customer           *InvoiceCustomer `json:"customer,omitempty"                    yaml:"customer,omitempty"`
	Items              []InvoiceItem    `json:"items,omitempty"                       yaml:"items,omitempty"`
	Fees               []InvoiceFee     `json:"fees,omitempty"                        yaml:"fees,omitempty"`
	Metadata           Metadata         `json:"metadata,omitempty"                    yaml:"metadata,omitempty"`
	Timestamps
}

// InvoiceCreateRequest is the request for creating an invoice.
type InvoiceCreateRequest struct {
	ExternalID         string           `json:"external_id"                    validate:"required,max=255"      yaml:"external_id"`
	Amount             float64          `json:"amount"                         validate:"required,gt=0"         yaml:"amount"`
	Currency           string           `json:"currency,omitempty"             validate:"omitempty,len=3"       yaml:"currency,omitempty"`
	Description        string           `json:"description,omitempty"          validate:"omitempty,max=1000"    yaml:"description,omitempty"`
	PayerEmail         string           `json:"payer_email,omitempty"          validate:"omitempty,email"       yaml:"payer_email,omitempty"`
	InvoiceDuration    int              `json:"invoice_duration,omitempty"     validate:"omitempty,gt=0"        yaml:"invoice_duration,omitempty"`
	SuccessRedirectURL string           `json:"success_redirect_url,omitempty" validate:"omitempty,url"         yaml:"success_redirect_url,omitempty"`
	FailureRedirectURL string           `json:"failure_redirect_url,omitempty" validate:"omitempty,url"         yaml:"failure_redirect_url,omitempty"`
	PaymentMethods     []string         `json:"payment_methods,omitempty"      yaml:"payment_methods,omitempty"`
	Customer           *InvoiceCustomer `json:"customer,omitempty"             yaml:"customer,omitempty"`
	Items              []InvoiceItem    `json:"items,omitempty"                validate:"omitempty,dive"        yaml:"items,omitempty"`
	Fees               []InvoiceFee     `json:"fees,omitempty"                 validate:"omitempty,dive"        yaml:"fees,omitempty"`
	Metadata           Metadata         `json:"metadata,omitempty"             yaml:"metadata,omitempty"`
}

// InvoiceListParams filters an invoice listing.
type InvoiceListParams struct {
	ExternalID    string
	Statuses      []string
	ClientTypes   []string
	CreatedAfter  *time.Time
	CreatedBefore *time.Time
	PaidAfter     *time.Time
	PaidBefore    *time.Time
	Limit         int
	LastInvoiceID string
}

// ListOptions converts the params to generic list options. Status arrays are
// sent as repeated statuses[] entries and dates as RFC 3339.
func (p *InvoiceListParams) ListOptions() *ListOptions {
	if p == nil {
		return &ListOptions{}
	}

	filters := url.Values{}
	if p.ExternalID != "" {
		filters.Set("external_id", p.ExternalID)
	}

	for _, status := range p.Statuses {
		filters.Add("statuses[]", status)
	}

	for _, clientType := range p.ClientTypes {
		filters.Add("client_types[]", clientType)
	}

	setTime(filters, "created_after", p.CreatedAfter)
	setTime(filters, "created_before", p.CreatedBefore)
	setTime(filters, "paid_after", p.PaidAfter)
	setTime(filters, "paid_before", p.PaidBefore)

	if p.LastInvoiceID != "" {
		filters.Set("last_invoice_id", p.LastInvoiceID)
	}

	if p.Limit > 0 {
		filters.Set("limit", strconv.Itoa(p.Limit))
	}

	return &ListOptions{Filters: filters}
}

func setTime(values url.Values, key string, t *time.Time) {
	if t != nil {
		values.Set(key, t.UTC().Format(time.RFC3339))
	}
}

// InvoicesClient defines operations for invoices.
type InvoicesClient interface {
	Create(ctx context.Context, request *InvoiceCreateRequest) (*Invoice, error)
	Get(ctx context.Context, id string) (*Invoice, error)
	List(ctx context.Context, params *InvoiceListParams) ([]Invoice, error)
	Expire(ctx context.Context, id string) (*Invoice, error)
}
