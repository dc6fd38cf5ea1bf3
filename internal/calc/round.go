package calc

import "github.com/shopspring/decimal"

// Round2 rounds v to two decimal places, half away from zero. The rounding
// is done on the shortest decimal representation of v, so 1.005 becomes 1.01.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
