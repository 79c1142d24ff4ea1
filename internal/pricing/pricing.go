// Package pricing computes heating-oil quotes from the market base price,
// oil grade, ordered volume and the selected provider's multiplier.
package pricing

import "math"

// OilType identifies the heating-oil grade.
type OilType string

const (
	OilStandard OilType = "standard"
	OilPremium  OilType = "premium"
	OilBio      OilType = "bio"
)

// Valid reports whether t is a known oil grade.
func (t OilType) Valid() bool {
	switch t {
	case OilStandard, OilPremium, OilBio:
		return true
	}
	return false
}

// Quantity bounds in liters accepted by the checkout.
const (
	MinQuantity = 500
	MaxQuantity = 50000
)

// DefaultMarketPrice is used when no market price setting is stored.
const DefaultMarketPrice = 0.89

// ComputePrice returns the per-liter price (3 decimals) and the order total
// (2 decimals). Grade surcharge and volume discount apply additively to the
// market base price before the provider multiplier.
//
// Quantity validation is the caller's responsibility; the function itself is
// pure and never fails.
func ComputePrice(quantity int, oilType OilType, providerMultiplier, marketPrice float64) (pricePerLiter, totalPrice float64) {
	base := marketPrice

	switch oilType {
	case OilPremium:
		base += 0.02
	case OilBio:
		base += 0.04
	}

	if quantity >= 5000 {
		base -= 0.02
	} else if quantity >= 3000 {
		base -= 0.01
	}

	pricePerLiter = round(base*providerMultiplier, 3)
	totalPrice = round(pricePerLiter*float64(quantity), 2)
	return pricePerLiter, totalPrice
}

// round rounds half away from zero to the given number of decimals, matching
// Math.round semantics for the non-negative values seen here.
func round(value float64, decimals int) float64 {
	shift := math.Pow(10, float64(decimals))
	return math.Round(value*shift) / shift
}
