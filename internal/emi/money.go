package emi

import "github.com/shopspring/decimal"

var (
	hundred = decimal.NewFromInt(100)
	twelve  = decimal.NewFromInt(12)
)

// round2 rounds a monetary value to currency precision (2 decimal places,
// half away from zero). Every monetary figure the engine produces goes
// through this helper so rounding stays consistent across all operations.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// clampZero floors a balance at zero.
func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// MonthlyRate converts an annual percentage rate (e.g. 8.5) to a monthly
// fractional rate (e.g. 0.00708333...).
func MonthlyRate(annualPercent decimal.Decimal) decimal.Decimal {
	return annualPercent.Div(hundred).Div(twelve)
}
