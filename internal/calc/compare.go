package calc

import (
	"math"
	"time"

	"paydown/internal/models"
)

// StrategyComparison holds avalanche and snowball projections over the same
// portfolio and budget, plus the savings the cheaper policy offers.
type StrategyComparison struct {
	Avalanche     Projection          `json:"avalanche"`
	Snowball      Projection          `json:"snowball"`
	InterestSaved float64             `json:"interest_saved"`
	MonthsSaved   int                 `json:"months_saved"`
	Recommended   models.StrategyType `json:"recommended"`
}

// CompareStrategies projects the portfolio under both avalanche and
// snowball with the same extra payment and reports which comes out ahead.
// Avalanche is recommended only when it saves interest; a tie favors
// snowball for its motivational quick wins.
func CompareStrategies(debts []models.Debt, extraPayment float64, maxMonths int, now time.Time) StrategyComparison {
	avalanche := ProjectPayoff(debts, models.Strategy{
		Type:         models.StrategyTypeAvalanche,
		ExtraPayment: extraPayment,
	}, maxMonths, now)

	snowball := ProjectPayoff(debts, models.Strategy{
		Type:         models.StrategyTypeSnowball,
		ExtraPayment: extraPayment,
	}, maxMonths, now)

	recommended := models.StrategyTypeSnowball
	if avalanche.TotalInterest < snowball.TotalInterest {
		recommended = models.StrategyTypeAvalanche
	}

	return StrategyComparison{
		Avalanche:     avalanche,
		Snowball:      snowball,
		InterestSaved: Round2(math.Max(0, snowball.TotalInterest-avalanche.TotalInterest)),
		MonthsSaved:   snowball.TotalMonths - avalanche.TotalMonths,
		Recommended:   recommended,
	}
}
