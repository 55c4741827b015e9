package domain

import "strings"

// Tier is one of the fixed holiday package levels.
type Tier string

const (
	TierPlatinum Tier = "platinum"
	TierGold     Tier = "gold"
	TierSilver   Tier = "silver"
)

// VoucherAmount is the flat New Year voucher deduction applied to bookings.
const VoucherAmount = 1000

type Package struct {
	Tier     Tier    `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Discount float64 `json:"discount"`
}

var catalog = []Package{
	{Tier: TierPlatinum, Name: "Platinum", Price: 15000, Discount: 15},
	{Tier: TierGold, Name: "Gold", Price: 10000, Discount: 10},
	{Tier: TierSilver, Name: "Silver", Price: 5000, Discount: 5},
}

// Catalog returns a copy of the package table ordered from the most expensive tier.
func Catalog() []Package {
	out := make([]Package, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the catalog entry for the tier.
func Lookup(t Tier) (Package, bool) {
	for _, p := range catalog {
		if p.Tier == t {
			return p, true
		}
	}
	return Package{}, false
}

func (t Tier) Valid() bool {
	_, ok := Lookup(t)
	return ok
}

// ParseTier accepts a tier name in any case, surrounding spaces ignored.
func ParseTier(s string) (Tier, bool) {
	t := Tier(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", false
	}
	return t, true
}
