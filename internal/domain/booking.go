package domain

import (
	"strings"
	"time"
)

type Booking struct {
	ID                 string    `json:"_id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Phone              string    `json:"phone"`
	Package            Tier      `json:"package"`
	PackageName        string    `json:"packageName"`
	Persons            int       `json:"persons"`
	NewYearVoucher     bool      `json:"newYearVoucher"`
	BasePrice          float64   `json:"basePrice"`
	Discount           float64   `json:"discount"`
	DiscountAmount     float64   `json:"discountAmount"`
	PriceAfterDiscount float64   `json:"priceAfterDiscount"`
	VoucherDiscount    float64   `json:"voucherDiscount"`
	TotalPrice         float64   `json:"totalPrice"`
	BookingDate        string    `json:"bookingDate"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// BookingInput is the client payload for creating or replacing a booking.
// Price fields are pointers so that an omitted field can be told apart from zero.
type BookingInput struct {
	Name               string   `json:"name" validate:"required"`
	Email              string   `json:"email" validate:"required,looseemail"`
	Phone              string   `json:"phone" validate:"required,phone10"`
	Package            Tier     `json:"package" validate:"required,tier"`
	PackageName        string   `json:"packageName"`
	Persons            int      `json:"persons" validate:"min=1,max=20"`
	NewYearVoucher     bool     `json:"newYearVoucher"`
	BasePrice          *float64 `json:"basePrice"`
	Discount           *float64 `json:"discount"`
	DiscountAmount     *float64 `json:"discountAmount"`
	PriceAfterDiscount *float64 `json:"priceAfterDiscount"`
	VoucherDiscount    *float64 `json:"voucherDiscount"`
	TotalPrice         *float64 `json:"totalPrice"`
	BookingDate        string   `json:"bookingDate"`
}

// Normalize trims text fields and lower-cases the e-mail address.
func (in BookingInput) Normalize() BookingInput {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.Package = Tier(strings.TrimSpace(string(in.Package)))
	in.PackageName = strings.TrimSpace(in.PackageName)
	in.BookingDate = strings.TrimSpace(in.BookingDate)
	return in
}

// HasPrices reports whether the client supplied any monetary field.
func (in BookingInput) HasPrices() bool {
	return in.BasePrice != nil || in.Discount != nil || in.DiscountAmount != nil ||
		in.PriceAfterDiscount != nil || in.VoucherDiscount != nil || in.TotalPrice != nil
}

// Validate enforces the stored-record constraints: required fields, tier enum and persons range.
func (b *Booking) Validate() error {
	ve := NewValidationError()
	if strings.TrimSpace(b.Name) == "" {
		ve.Add("name", "Path `name` is required.")
	}
	if strings.TrimSpace(b.Email) == "" {
		ve.Add("email", "Path `email` is required.")
	}
	if strings.TrimSpace(b.Phone) == "" {
		ve.Add("phone", "Path `phone` is required.")
	}
	if !b.Package.Valid() {
		ve.Add("package", "`"+string(b.Package)+"` is not a valid enum value for path `package`.")
	}
	if strings.TrimSpace(b.PackageName) == "" {
		ve.Add("packageName", "Path `packageName` is required.")
	}
	if b.Persons < 1 || b.Persons > 20 {
		ve.Add("persons", "Path `persons` must be between 1 and 20.")
	}
	if strings.TrimSpace(b.BookingDate) == "" {
		ve.Add("bookingDate", "Path `bookingDate` is required.")
	}
	return ve.OrNil()
}
