package pricing

import "math"

// VATRate is the reduced Dutch VAT rate that applies to catering food and
// drink.
const VATRate = 0.09

// VAT-exclusive unit prices for variety (bulk) orders.
const (
	SandwichPriceExclVAT       = 6.83
	GlutenFreeSurchargeExclVAT = 0.90
)

// centEpsilon absorbs binary floating-point representation noise when a value
// lands on (or a hair above) an exact cent.
const centEpsilon = 1e-9

// Round2 rounds to two decimals, half away from zero. Non-finite input maps
// to zero so a bad upstream value can never poison a running total.
func Round2(x float64) float64 {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return math.Round(x*100) / 100
}

// CeilVAT computes VAT under the storefront regime: rounded up to the next
// cent, so displayed totals never under-collect VAT. This is intentionally
// different from StandardVAT and the two must never be mixed.
func CeilVAT(base float64) float64 {
	if math.IsNaN(base) || math.IsInf(base, 0) || base <= 0 {
		return 0
	}
	return math.Ceil(base*VATRate*100-centEpsilon) / 100
}

// StandardVAT computes VAT under the accounting-export regime: standard
// half-up rounding, matching what the external ledger computes on its side.
func StandardVAT(base float64) float64 {
	if math.IsNaN(base) || math.IsInf(base, 0) || base <= 0 {
		return 0
	}
	return Round2(base * VATRate)
}

// ToVATExclusive converts a VAT-inclusive price to VAT-exclusive.
func ToVATExclusive(priceInclVAT float64) float64 {
	return Round2(Round2(priceInclVAT) / (1 + VATRate))
}

// ToVATInclusive converts a VAT-exclusive price to VAT-inclusive.
func ToVATInclusive(priceExclVAT float64) float64 {
	return Round2(Round2(priceExclVAT) * (1 + VATRate))
}
