package validation

import (
	"testing"

	"github.com/Domenick1991/goaholidays/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBooking() domain.BookingInput {
	return domain.BookingInput{
		Name:    "Asha Rao",
		Email:   "asha@example.com",
		Phone:   "9876543210",
		Package: domain.TierGold,
		Persons: 2,
	}
}

func TestValidateBooking(t *testing.T) {
	testCases := []struct {
		name     string
		mutate   func(in *domain.BookingInput)
		expected Errors
	}{
		{
			name:     "valid",
			mutate:   func(in *domain.BookingInput) {},
			expected: Errors{},
		},
		{
			name: "padded fields are trimmed before checks",
			mutate: func(in *domain.BookingInput) {
				in.Name = "  Asha  "
				in.Email = " ASHA@Example.com "
				in.Phone = " 9876543210 "
			},
			expected: Errors{},
		},
		{
			name:     "blank name",
			mutate:   func(in *domain.BookingInput) { in.Name = "   " },
			expected: Errors{"name": "Name is required"},
		},
		{
			name:     "missing email",
			mutate:   func(in *domain.BookingInput) { in.Email = "" },
			expected: Errors{"email": "Email is required"},
		},
		{
			name:     "malformed email",
			mutate:   func(in *domain.BookingInput) { in.Email = "foo@bar" },
			expected: Errors{"email": "Please enter a valid email address"},
		},
		{
			name:     "short phone",
			mutate:   func(in *domain.BookingInput) { in.Phone = "12345" },
			expected: Errors{"phone": "Please enter a valid 10-digit phone number"},
		},
		{
			name:     "phone with letters",
			mutate:   func(in *domain.BookingInput) { in.Phone = "98765abcde" },
			expected: Errors{"phone": "Please enter a valid 10-digit phone number"},
		},
		{
			name:     "missing phone",
			mutate:   func(in *domain.BookingInput) { in.Phone = "" },
			expected: Errors{"phone": "Phone number is required"},
		},
		{
			name:     "no package",
			mutate:   func(in *domain.BookingInput) { in.Package = "" },
			expected: Errors{"package": "Please select a package"},
		},
		{
			name:     "unknown package",
			mutate:   func(in *domain.BookingInput) { in.Package = "bronze" },
			expected: Errors{"package": "Please select a package"},
		},
		{
			name:     "zero persons",
			mutate:   func(in *domain.BookingInput) { in.Persons = 0 },
			expected: Errors{"persons": "Number of persons must be between 1 and 20"},
		},
		{
			name:     "too many persons",
			mutate:   func(in *domain.BookingInput) { in.Persons = 21 },
			expected: Errors{"persons": "Number of persons must be between 1 and 20"},
		},
		{
			name:     "upper bound persons",
			mutate:   func(in *domain.BookingInput) { in.Persons = 20 },
			expected: Errors{},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			in := validBooking()
			tc.mutate(&in)

			got := ValidateBooking(in)
			assert.Equal(t, tc.expected, got)
			assert.Equal(t, len(tc.expected) == 0, got.Valid())
		})
	}
}

func TestValidateEnquiry(t *testing.T) {
	in := domain.EnquiryInput{
		Name:    "Ravi",
		Email:   "foo",
		Phone:   "9876543210",
		Package: domain.TierSilver,
		Message: "  ",
	}

	got := ValidateEnquiry(in)
	assert.Equal(t, Errors{
		"email":   "Please enter a valid email address",
		"message": "Message is required",
	}, got)

	err := got.Err()
	ve := domain.IsValidationError(err)
	require.NotNil(t, ve)
	assert.Equal(t, "Please enter a valid email address", ve.Fields()["email"])
}

func TestErrors_ErrNilWhenValid(t *testing.T) {
	assert.NoError(t, ValidateBooking(validBooking()).Err())
}
