package round

import "github.com/shopspring/decimal"

// Two rounds to two decimal places, half away from zero. float64 math
// alone gets boundary cases wrong (2.345*100 is 234.4999…), so the value
// goes through its shortest decimal representation first; 2.345 rounds
// to 2.35, matching the upstream reporting contract.
func Two(v float64) float64 {
	out, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return out
}
