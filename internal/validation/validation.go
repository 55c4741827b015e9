// Package validation checks booking and enquiry form input field by field.
package validation

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/Domenick1991/goaholidays/internal/domain"
	"github.com/go-playground/validator/v10"
)

// Errors maps a JSON field name to a human-readable message. Empty means valid.
type Errors map[string]string

func (e Errors) Valid() bool {
	return len(e) == 0
}

// Err returns the set as a *domain.ValidationError, or nil when valid.
func (e Errors) Err() error {
	if e.Valid() {
		return nil
	}
	return domain.ValidationErrorFrom(e)
}

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{10}$`)
)

var messages = map[string]map[string]string{
	"name": {
		"required": "Name is required",
	},
	"email": {
		"required":   "Email is required",
		"looseemail": "Please enter a valid email address",
	},
	"phone": {
		"required": "Phone number is required",
		"phone10":  "Please enter a valid 10-digit phone number",
	},
	"package": {
		"required": "Please select a package",
		"tier":     "Please select a package",
	},
	"persons": {
		"min": "Number of persons must be between 1 and 20",
		"max": "Number of persons must be between 1 and 20",
	},
	"message": {
		"required": "Message is required",
	},
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "looseemail", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "phone10", func(fl validator.FieldLevel) bool {
		return phonePattern.MatchString(fl.Field().String())
	})
	mustRegister(v, "tier", func(fl validator.FieldLevel) bool {
		return domain.Tier(fl.Field().String()).Valid()
	})

	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(err)
	}
}

// ValidateBooking checks a booking form after trimming its fields.
func ValidateBooking(in domain.BookingInput) Errors {
	return check(in.Normalize())
}

// ValidateEnquiry checks an enquiry form after trimming its fields.
func ValidateEnquiry(in domain.EnquiryInput) Errors {
	return check(in.Normalize())
}

func check(s any) Errors {
	out := Errors{}

	err := validate.Struct(s)
	if err == nil {
		return out
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		out["_"] = err.Error()
		return out
	}

	for _, fe := range fieldErrs {
		field := fe.Field()
		if _, seen := out[field]; seen {
			continue
		}
		out[field] = message(field, fe.Tag())
	}
	return out
}

func message(field, tag string) string {
	if msg, ok := messages[field][tag]; ok {
		return msg
	}
	return field + " is invalid"
}
