// Package calc implements the debt amortization and strategy projection
// engine. Every function is pure: inputs are plain records supplied by the
// caller, results are plain values, and nothing outside local working
// copies is ever mutated. Monetary results are rounded to two decimal
// places. Validation of input shape is the caller's responsibility; the
// calculations here are total over well-formed inputs.
package calc

import "math"

// MonthlyRate converts an annual percentage rate to a monthly decimal rate.
func MonthlyRate(annualRatePercent float64) float64 {
	return annualRatePercent / 100 / 12
}

// InterestForPeriod returns one month of interest accrued on a balance at
// the given annual percentage rate.
func InterestForPeriod(balance, annualRatePercent float64) float64 {
	return balance * MonthlyRate(annualRatePercent)
}

// PrincipalFromPayment returns the portion of a payment that reduces
// principal. A payment that does not cover accrued interest contributes
// zero principal; the balance does not decrease.
func PrincipalFromPayment(paymentAmount, interestAmount float64) float64 {
	return math.Max(0, paymentAmount-interestAmount)
}

// Round2 rounds a value to two decimal places for currency and percentages.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
