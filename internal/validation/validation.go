// Package validation checks request values against their validate tags
// before anything is sent to the API.
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/fivetwenty-io/xendit-client/pkg/xendit"
	"github.com/go-playground/validator/v10"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func instance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(field reflect.StructField) string {
			name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}

			if name == "" {
				return field.Name
			}

			return name
		})
	})

	return validate
}

// Struct validates v and returns a *xendit.ValidationError listing every
// failing field, or nil. A nil v is reported as a missing request.
func Struct(v interface{}) error {
	if v == nil || isNilPointer(v) {
		return &xendit.ValidationError{
			Message: "validation failed",
			Issues:  []xendit.FieldIssue{{Message: "request is required"}},
		}
	}

	err := instance().Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &xendit.ValidationError{
			Message: "validation failed",
			Issues:  []xendit.FieldIssue{{Message: err.Error()}},
		}
	}

	issues := make([]xendit.FieldIssue, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		issues = append(issues, xendit.FieldIssue{
			Field:   fieldPath(fieldErr.Namespace()),
			Message: describe(fieldErr),
		})
	}

	validationErr := &xendit.ValidationError{
		Message: "validation failed",
		Issues:  issues,
	}

	if len(issues) == 1 {
		validationErr.Field = issues[0].Field
	}

	return validationErr
}

// Required checks that an identifier argument is non-empty.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return xendit.NewValidationError(field, "is required")
	}

	return nil
}

// fieldPath drops the leading struct name from a validator namespace.
func fieldPath(namespace string) string {
	_, rest, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}

	return rest
}

func describe(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required", "required_if", "required_without":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "e164":
		return "must be an E.164 phone number"
	case "oneof":
		return fmt.Sprintf("must be one of [%s]", fieldErr.Param())
	case "len":
		return fmt.Sprintf("must be %s characters long", fieldErr.Param())
	case "max":
		return fmt.Sprintf("must be at most %s", fieldErr.Param())
	case "min":
		return fmt.Sprintf("must be at least %s", fieldErr.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fieldErr.Param())
	case "gte":
		return fmt.Sprintf("must be greater than or equal to %s", fieldErr.Param())
	case "numeric":
		return "must be numeric"
	default:
		return fmt.Sprintf("failed %q validation", fieldErr.Tag())
	}
}

func isNilPointer(v interface{}) bool {
	value := reflect.ValueOf(v)

	return value.Kind() == reflect.Ptr && value.IsNil()
}
