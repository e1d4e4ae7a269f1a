package xendit

import (
	"time"
)

// Currency codes accepted by the API.
const (
	CurrencyIDR = "IDR"
	CurrencyPHP = "PHP"
	CurrencyTHB = "THB"
	CurrencyVND = "VND"
	CurrencyMYR = "MYR"
	CurrencyUSD = "USD"
)

// Address is a postal address.
type Address struct {
	Country     string `json:"country"                validate:"required,len=2" yaml:"country"`
	StreetLine1 string `json:"street_line1,omitempty" yaml:"street_line1,omitempty"`
	StreetLine2 string `json:"street_line2,omitempty" yaml:"street_line2,omitempty"`
	City        string `json:"city,omitempty"         yaml:"city,omitempty"`
	Province    string `json:"province_state,omitempty" yaml:"province_state,omitempty"`
	PostalCode  string `json:"postal_code,omitempty"  yaml:"postal_code,omitempty"`
	Category    string `json:"category,omitempty"     yaml:"category,omitempty"`
	IsPrimary   bool   `json:"is_primary,omitempty"   yaml:"is_primary,omitempty"`
}

// IndividualDetail describes a natural person.
type IndividualDetail struct {
	GivenNames  string `json:"given_names"           validate:"required" yaml:"given_names"`
	Surname     string `json:"surname,omitempty"     yaml:"surname,omitempty"`
	Nationality string `json:"nationality,omitempty" yaml:"nationality,omitempty"`
	DateOfBirth string `json:"date_of_birth,omitempty" yaml:"date_of_birth,omitempty"`
	Gender      string `json:"gender,omitempty"      validate:"omitempty,oneof=MALE FEMALE OTHER" yaml:"gender,omitempty"`
}

// BusinessDetail describes a legal entity.
type BusinessDetail struct {
	BusinessName       string `json:"business_name"           validate:"required" yaml:"business_name"`
	BusinessType       string `json:"business_type,omitempty" yaml:"business_type,omitempty"`
	NatureOfBusiness   string `json:"nature_of_business,omitempty" yaml:"nature_of_business,omitempty"`
	DateOfRegistration string `json:"date_of_registration,omitempty" yaml:"date_of_registration,omitempty"`
}

// ChannelProperties carries channel-specific redirect and account data.
type ChannelProperties struct {
	SuccessReturnURL string     `json:"success_return_url,omitempty" validate:"omitempty,url" yaml:"success_return_url,omitempty"`
	FailureReturnURL string     `json:"failure_return_url,omitempty" validate:"omitempty,url" yaml:"failure_return_url,omitempty"`
	CancelReturnURL  string     `json:"cancel_return_url,omitempty"  validate:"omitempty,url" yaml:"cancel_return_url,omitempty"`
	MobileNumber     string     `json:"mobile_number,omitempty"      yaml:"mobile_number,omitempty"`
	CustomerName     string     `json:"customer_name,omitempty"      yaml:"customer_name,omitempty"`
	ExpiresAt        *time.Time `json:"expires_at,omitempty"     yaml:"expires_at,omitempty"`
}

// Action is a follow-up step the payer must complete, such as a redirect.
type Action struct {
	Action     string `json:"action"                yaml:"action"`
	URLType    string `json:"url_type,omitempty"    yaml:"url_type,omitempty"`
	URL        string `json:"url,omitempty"         yaml:"url,omitempty"`
	Method     string `json:"method,omitempty"      yaml:"method,omitempty"`
	QRCode     string `json:"qr_code,omitempty"     yaml:"qr_code,omitempty"`
	Descriptor string `json:"descriptor,omitempty"  yaml:"descriptor,omitempty"`
}

// Timestamps are the creation and update times carried by most resources.
type Timestamps struct {
	Created *time.Time `json:"created,omitempty" yaml:"created,omitempty"`
	Updated *time.Time `json:"updated,omitempty" yaml:"updated,omitempty"`
}
