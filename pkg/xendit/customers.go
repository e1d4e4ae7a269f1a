package xendit

import (
	"context"
)

// Customer types.
const (
	CustomerTypeIndividual = "INDIVIDUAL"
	CustomerTypeBusiness   = "BUSINESS"
)

// Customer represents a payer record.
type Customer struct {
	ID               string            `json:"id"                          yaml:"id"`
	ReferenceID      string            `json:"reference_id"                yaml:"reference_id"`
	Type             string            `json:"type"                        yaml:"type"`
	Email            string            `json:"email,omitempty"             yaml:"email,omitempty"`
	MobileNumber     string            `json:"mobile_number,omitempty"     yaml:"mobile_number,omitempty"`
	PhoneNumber      string            `json:"phone_number,omitempty"      yaml:"phone_number,omitempty"`
	Description      string            `json:"description,omitempty"       yaml:"description,omitempty"`
	IndividualDetail *IndividualDetail `json:"individual_detail,omitempty" yaml:"individual_detail,omitempty"`
	BusinessDetail   *BusinessDetail   `json:"business_detail,omitempty"   yaml:"business_detail,omitempty"`
	Addresses        []Address         `json:"addresses,omitempty"         yaml:"addresses,omitempty"`
	Metadata         Metadata          `json:"metadata,omitempty"          yaml:"metadata,omitempty"`
	Timestamps
}

// CustomerCreateRequest is the request for creating a customer. Exactly one
// of IndividualDetail and BusinessDetail must match Type.
type CustomerCreateRequest struct {
	ReferenceID      string            `json:"reference_id"                validate:"required,max=255"                           yaml:"reference_id"`
	Type             string            `json:"type"                        validate:"required,oneof=INDIVIDUAL BUSINESS"         yaml:"type"`
	Email            string            `json:"email,omitempty"             validate:"omitempty,email"                            yaml:"email,omitempty"`
	MobileNumber     string            `json:"mobile_number,omitempty"     validate:"omitempty,e164"                             yaml:"mobile_number,omitempty"`
	Description      string            `json:"description,omitempty"       validate:"omitempty,max=1000"                         yaml:"description,omitempty"`
	IndividualDetail *IndividualDetail `json:"individual_detail,omitempty" validate:"required_if=Type INDIVIDUAL"                  yaml:"individual_detail,omitempty"`
	BusinessDetail   *BusinessDetail   `json:"business_detail,omitempty"   validate:"required_if=Type BUSINESS"                    yaml:"business_detail,omitempty"`
	Addresses        []Address         `json:"addresses,omitempty"         validate:"omitempty,dive"                             yaml:"addresses,omitempty"`
	Metadata         Metadata          `json:"metadata,omitempty"          yaml:"metadata,omitempty"`
}

// CustomerUpdateRequest is the request for updating a customer.
type CustomerUpdateRequest struct {
	Email            *string           `json:"email,omitempty"             validate:"omitempty,email" yaml:"email,omitempty"`
	MobileNumber     *string           `json:"mobile_number,omitempty"     validate:"omitempty,e164"  yaml:"mobile_number,omitempty"`
	Description      *string           `json:"description,omitempty"       yaml:"description,omitempty"`
	IndividualDetail *IndividualDetail `json:"individual_detail,omitempty" yaml:"individual_detail,omitempty"`
	BusinessDetail   *BusinessDetail   `json:"business_detail,omitempty"   yaml:"business_detail,omitempty"`
	Addresses        []Address         `json:"addresses,omitempty"         validate:"omitempty,dive"  yaml:"addresses,omitempty"`
	Metadata         Metadata          `json:"metadata,omitempty"          yaml:"metadata,omitempty"`
}

// CustomersClient defines operations for customers.
type CustomersClient interface {
	Create(ctx context.Context, request *CustomerCreateRequest) (*Customer, error)
	Get(ctx context.Context, id string) (*Customer, error)
	GetByReferenceID(ctx context.Context, referenceID string) ([]Customer, error)
	Update(ctx context.Context, id string, request *CustomerUpdateRequest) (*Customer, error)
}
