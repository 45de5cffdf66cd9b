package calc

import (
	"math"
	"time"

	"paydown/internal/models"
)

// DebtWithProgress is a debt annotated with progress-to-date metrics.
// MonthsRemaining and TotalInterestRemaining are nil when no projection is
// possible, i.e. the debt is paid off or its minimum payment is not positive.
type DebtWithProgress struct {
	models.Debt
	TotalPaid              float64  `json:"total_paid"`
	ProgressPercentage     float64  `json:"progress_percentage"`
	MonthsRemaining        *int     `json:"months_remaining,omitempty"`
	TotalInterestRemaining *float64 `json:"total_interest_remaining,omitempty"`
}

// DebtProgress computes progress metrics for a single debt from its payment
// history. The months-remaining figure uses the standard amortization closed
// form at the debt's minimum payment; a zero interest rate degenerates to
// balance divided by payment.
func DebtProgress(debt models.Debt, payments []models.Payment) DebtWithProgress {
	var totalPaid float64
	for _, p := range payments {
		totalPaid += p.Amount
	}

	var progress float64
	if debt.OriginalBalance > 0 {
		progress = (debt.OriginalBalance - debt.CurrentBalance) / debt.OriginalBalance * 100
	}

	result := DebtWithProgress{
		Debt:               debt,
		TotalPaid:          Round2(totalPaid),
		ProgressPercentage: Round2(progress),
	}

	if debt.CurrentBalance > 0 && debt.MinimumPayment > 0 {
		rate := MonthlyRate(debt.InterestRate)

		var months int
		var interestRemaining float64
		if rate > 0 {
			months = int(math.Ceil(
				math.Log(1+debt.CurrentBalance*rate/debt.MinimumPayment) / math.Log(1+rate),
			))
			interestRemaining = Round2(debt.MinimumPayment*float64(months) - debt.CurrentBalance)
		} else {
			months = int(math.Ceil(debt.CurrentBalance / debt.MinimumPayment))
		}

		result.MonthsRemaining = &months
		result.TotalInterestRemaining = &interestRemaining
	}

	return result
}

// PaymentSummary aggregates a set of payment records. LastPaymentDate is nil
// when there are no payments.
type PaymentSummary struct {
	TotalAmount     float64    `json:"total_amount"`
	TotalPrincipal  float64    `json:"total_principal"`
	TotalInterest   float64    `json:"total_interest"`
	PaymentCount    int        `json:"payment_count"`
	LastPaymentDate *time.Time `json:"last_payment_date,omitempty"`
}

// SummarizePayments totals amount, principal, and interest across payments.
// An empty input yields the zero summary; it never errors.
func SummarizePayments(payments []models.Payment) PaymentSummary {
	if len(payments) == 0 {
		return PaymentSummary{}
	}

	var amount, principal, interest float64
	last := payments[0].PaymentDate
	for _, p := range payments {
		amount += p.Amount
		principal += p.Principal
		interest += p.Interest
		if p.PaymentDate.After(last) {
			last = p.PaymentDate
		}
	}

	return PaymentSummary{
		TotalAmount:     Round2(amount),
		TotalPrincipal:  Round2(principal),
		TotalInterest:   Round2(interest),
		PaymentCount:    len(payments),
		LastPaymentDate: &last,
	}
}

// MinimumPayments sums the minimum payments of all active debts that still
// carry a balance.
func MinimumPayments(debts []models.Debt) float64 {
	var total float64
	for _, d := range debts {
		if d.IsActive && d.CurrentBalance > 0 {
			total += d.MinimumPayment
		}
	}
	return Round2(total)
}
