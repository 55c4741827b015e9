// Package pricing turns a package selection into a price breakdown.
package pricing

import (
	"math"

	"github.com/Domenick1991/goaholidays/internal/domain"
)

type Breakdown struct {
	BasePrice          float64 `json:"basePrice"`
	Discount           float64 `json:"discount"`
	DiscountAmount     float64 `json:"discountAmount"`
	PriceAfterDiscount float64 `json:"priceAfterDiscount"`
	VoucherDiscount    float64 `json:"voucherDiscount"`
	TotalPrice         float64 `json:"totalPrice"`
}

// Quote prices a booking. An unknown or empty tier yields a zero breakdown:
// nothing has been selected yet.
func Quote(tier domain.Tier, persons int, voucher bool) Breakdown {
	pkg, ok := domain.Lookup(tier)
	if !ok {
		return Breakdown{}
	}

	base := pkg.Price * float64(persons)
	discountAmount := base * pkg.Discount / 100
	afterDiscount := base - discountAmount

	var voucherDiscount float64
	if voucher {
		voucherDiscount = domain.VoucherAmount
	}

	return Breakdown{
		BasePrice:          base,
		Discount:           pkg.Discount,
		DiscountAmount:     discountAmount,
		PriceAfterDiscount: afterDiscount,
		VoucherDiscount:    voucherDiscount,
		TotalPrice:         math.Max(0, afterDiscount-voucherDiscount),
	}
}

// Apply copies the breakdown into the booking's monetary fields.
func (b Breakdown) Apply(booking *domain.Booking) {
	booking.BasePrice = b.BasePrice
	booking.Discount = b.Discount
	booking.DiscountAmount = b.DiscountAmount
	booking.PriceAfterDiscount = b.PriceAfterDiscount
	booking.VoucherDiscount = b.VoucherDiscount
	booking.TotalPrice = b.TotalPrice
}

// Consistent reports whether the booking's stored prices match a fresh quote.
func Consistent(booking *domain.Booking) bool {
	q := Quote(booking.Package, booking.Persons, booking.NewYearVoucher)
	return q == Breakdown{
		BasePrice:          booking.BasePrice,
		Discount:           booking.Discount,
		DiscountAmount:     booking.DiscountAmount,
		PriceAfterDiscount: booking.PriceAfterDiscount,
		VoucherDiscount:    booking.VoucherDiscount,
		TotalPrice:         booking.TotalPrice,
	}
}
