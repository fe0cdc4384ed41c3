package emi

import (
	"math"

	"github.com/shopspring/decimal"
)

// ComputeEMI calculates the equated monthly installment for the given terms
// using the standard annuity formula:
//
//	EMI = P * r * (1+r)^n / ((1+r)^n - 1)
//
// where r is the monthly rate and n the tenure in months. A zero rate
// degenerates to a straight-line split of the principal; a zero tenure
// returns zero. The power term is computed in float64 and the result rounded
// to currency precision.
func ComputeEMI(principal, annualRatePercent decimal.Decimal, tenureMonths int) decimal.Decimal {
	if tenureMonths == 0 {
		return decimal.Zero
	}

	monthly := MonthlyRate(annualRatePercent)
	if monthly.IsZero() {
		return round2(principal.Div(decimal.NewFromInt(int64(tenureMonths))))
	}

	r := monthly.InexactFloat64()
	factor := math.Pow(1+r, float64(tenureMonths))
	payment := principal.InexactFloat64() * r * factor / (factor - 1)

	return decimal.NewFromFloat(math.Round(payment*100) / 100)
}
