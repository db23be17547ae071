package domain

import "github.com/shopspring/decimal"

// Currency is the only currency the storefront sells in.
const Currency = "BDT"

var hundred = decimal.NewFromInt(100)

// ClampDiscount forces a discount percent into [0,100].
func ClampDiscount(discount int) int {
	switch {
	case discount < 0:
		return 0
	case discount > 100:
		return 100
	default:
		return discount
	}
}

// EffectivePrice applies a percent discount to a price in poisha and rounds the
// result to the nearest poisha, half away from zero.
func EffectivePrice(pricePoisha int64, discount int) int64 {
	d := ClampDiscount(discount)
	if d == 0 {
		return pricePoisha
	}
	price := decimal.NewFromInt(pricePoisha)
	off := price.Mul(decimal.NewFromInt(int64(d))).Div(hundred)
	return price.Sub(off).Round(0).IntPart()
}

// Taka converts poisha to a taka amount with two decimal places.
func Taka(poisha int64) decimal.Decimal {
	return decimal.New(poisha, -2)
}

// PoishaFromTaka converts a taka amount to poisha, rounding to the nearest poisha.
func PoishaFromTaka(taka decimal.Decimal) int64 {
	return taka.Mul(hundred).Round(0).IntPart()
}
