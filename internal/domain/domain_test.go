package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTier(t *testing.T) {
	tier, ok := ParseTier("  Gold ")
	assert.True(t, ok)
	assert.Equal(t, TierGold, tier)

	_, ok = ParseTier("bronze")
	assert.False(t, ok)

	_, ok = ParseTier("")
	assert.False(t, ok)
}

func TestCatalog_ReturnsCopy(t *testing.T) {
	c := Catalog()
	require.Len(t, c, 3)
	c[0].Price = 1

	p, ok := Lookup(TierPlatinum)
	require.True(t, ok)
	assert.Equal(t, float64(15000), p.Price)
	assert.Equal(t, "Platinum", p.Name)
}

func TestBooking_Validate(t *testing.T) {
	valid := Booking{
		Name:        "Asha",
		Email:       "asha@example.com",
		Phone:       "9876543210",
		Package:     TierSilver,
		PackageName: "Silver",
		Persons:     2,
		BookingDate: "17/10/2026, 10:00:00",
	}
	assert.NoError(t, valid.Validate())

	invalid := valid
	invalid.Package = "bronze"
	invalid.Persons = 21
	invalid.Name = "  "

	err := invalid.Validate()
	ve := IsValidationError(err)
	require.NotNil(t, ve)
	assert.Contains(t, ve.Fields(), "package")
	assert.Contains(t, ve.Fields(), "persons")
	assert.Contains(t, ve.Fields(), "name")
}

func TestEnquiry_Validate(t *testing.T) {
	e := Enquiry{Name: "Ravi", Email: "ravi@example.com", Phone: "9876543210", Package: TierGold}
	ve := IsValidationError(e.Validate())
	require.NotNil(t, ve)
	assert.Equal(t, map[string]string{"message": "Path `message` is required."}, ve.Fields())
}

func TestValidationError_Wrapped(t *testing.T) {
	ve := NewValidationError()
	ve.Add("phone", "bad")
	ve.Add("email", "bad")
	ve.Add("email", "ignored")

	err := fmt.Errorf("create booking: %w", ve)
	got := IsValidationError(err)
	require.NotNil(t, got)
	assert.Equal(t, "bad", got.Fields()["email"])
	assert.Equal(t, "validation failed: email: bad, phone: bad", got.Error())

	assert.Nil(t, IsValidationError(errors.New("boom")))
	assert.Nil(t, ValidationErrorFrom(nil))
}
