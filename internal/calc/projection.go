package calc

import (
	"math"
	"time"

	"paydown/internal/models"
)

// DefaultMaxMonths bounds the payoff simulation horizon at 30 years.
const DefaultMaxMonths = 360

// MonthEntry is one simulated month of the payoff schedule. RemainingBalance
// is the sum of all debt balances after this month's reductions.
type MonthEntry struct {
	Month            int     `json:"month"`
	Payment          float64 `json:"payment"`
	Principal        float64 `json:"principal"`
	Interest         float64 `json:"interest"`
	RemainingBalance float64 `json:"remaining_balance"`
}

// Projection is the result of simulating a debt portfolio forward under a
// strategy. PaidOff reports whether the portfolio reached zero balance; when
// false the horizon was exhausted first and the breakdown ends with a
// non-zero remaining balance.
type Projection struct {
	TotalMonths      int          `json:"total_months"`
	TotalInterest    float64      `json:"total_interest"`
	TotalPayments    float64      `json:"total_payments"`
	PaidOff          bool         `json:"paid_off"`
	PayoffDate       time.Time    `json:"payoff_date"`
	MonthlyBreakdown []MonthEntry `json:"monthly_breakdown"`
}

// ProjectPayoff simulates the portfolio month by month under the strategy
// until every debt reaches zero balance or maxMonths is hit. Each month,
// every debt with a balance is charged one period of interest and paid its
// minimum; the strategy's extra payment is then allocated in policy order
// and applied as additional principal. The simulation works on value copies
// of the debts and never mutates the caller's records.
//
// A maxMonths of zero or less uses DefaultMaxMonths. The payoff date is now
// advanced by the number of simulated months.
func ProjectPayoff(debts []models.Debt, strategy models.Strategy, maxMonths int, now time.Time) Projection {
	if maxMonths <= 0 {
		maxMonths = DefaultMaxMonths
	}

	working := activeDebts(debts)
	if len(working) == 0 {
		return Projection{PaidOff: true, PayoffDate: now, MonthlyBreakdown: []MonthEntry{}}
	}

	index := make(map[string]int, len(working))
	for i, d := range working {
		index[d.ID] = i
	}

	breakdown := []MonthEntry{}
	var month int
	var totalInterest, totalPayments float64
	remaining := math.Inf(1)

	for month < maxMonths && anyBalance(working) {
		month++
		var monthPayment, monthPrincipal, monthInterest float64

		// Minimum payments on every open debt.
		for i := range working {
			d := &working[i]
			if d.CurrentBalance <= 0 {
				continue
			}
			interest := InterestForPeriod(d.CurrentBalance, d.InterestRate)
			principal := math.Min(PrincipalFromPayment(d.MinimumPayment, interest), d.CurrentBalance)

			d.CurrentBalance -= principal
			monthPayment += d.MinimumPayment
			monthPrincipal += principal
			monthInterest += interest
			totalInterest += interest
		}

		// Extra payment in strategy order, applied as additional principal.
		for _, alloc := range AllocateExtra(working, strategy, strategy.ExtraPayment) {
			i, ok := index[alloc.DebtID]
			if !ok || working[i].CurrentBalance <= 0 {
				continue
			}
			extra := math.Min(alloc.Amount, working[i].CurrentBalance)
			working[i].CurrentBalance -= extra
			monthPayment += extra
			monthPrincipal += extra
		}

		remaining = 0
		for i := range working {
			remaining += working[i].CurrentBalance
		}

		breakdown = append(breakdown, MonthEntry{
			Month:            month,
			Payment:          Round2(monthPayment),
			Principal:        Round2(monthPrincipal),
			Interest:         Round2(monthInterest),
			RemainingBalance: Round2(remaining),
		})

		totalPayments += monthPayment

		if remaining <= 0 {
			break
		}
	}

	return Projection{
		TotalMonths:      month,
		TotalInterest:    Round2(totalInterest),
		TotalPayments:    Round2(totalPayments),
		PaidOff:          remaining <= 0,
		PayoffDate:       now.AddDate(0, month, 0),
		MonthlyBreakdown: breakdown,
	}
}

func anyBalance(debts []models.Debt) bool {
	for i := range debts {
		if debts[i].CurrentBalance > 0 {
			return true
		}
	}
	return false
}
