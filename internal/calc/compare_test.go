package calc

import (
	"testing"

	"paydown/internal/models"
)

func TestCompareStrategies(t *testing.T) {
	t.Run("avalanche wins when rates differ", func(t *testing.T) {
		// High-rate debt has the larger balance, so attacking it first
		// saves interest over the snowball's smallest-balance-first order.
		debts := []models.Debt{
			makeDebt("high-rate", 8000, 24, 200),
			makeDebt("low-rate", 1000, 5, 50),
		}

		got := CompareStrategies(debts, 300, 0, projectionStart)

		if got.Recommended != models.StrategyTypeAvalanche {
			t.Errorf("expected avalanche recommended, got %s", got.Recommended)
		}
		if got.InterestSaved <= 0 {
			t.Errorf("expected positive interest saved, got %v", got.InterestSaved)
		}
		if got.Avalanche.TotalInterest >= got.Snowball.TotalInterest {
			t.Errorf("avalanche interest %v should be below snowball %v",
				got.Avalanche.TotalInterest, got.Snowball.TotalInterest)
		}
	})

	t.Run("tie recommends snowball", func(t *testing.T) {
		// A single debt projects identically under both policies.
		debts := []models.Debt{makeDebt("only", 2000, 12, 100)}

		got := CompareStrategies(debts, 50, 0, projectionStart)

		if got.Recommended != models.StrategyTypeSnowball {
			t.Errorf("expected snowball recommended on a tie, got %s", got.Recommended)
		}
		if got.InterestSaved != 0 {
			t.Errorf("expected 0 interest saved, got %v", got.InterestSaved)
		}
		if got.MonthsSaved != 0 {
			t.Errorf("expected 0 months saved, got %d", got.MonthsSaved)
		}
	})

	t.Run("empty portfolio", func(t *testing.T) {
		got := CompareStrategies(nil, 100, 0, projectionStart)

		if !got.Avalanche.PaidOff || !got.Snowball.PaidOff {
			t.Error("expected both projections paid off")
		}
		if got.Recommended != models.StrategyTypeSnowball {
			t.Errorf("expected snowball recommended, got %s", got.Recommended)
		}
	})

	t.Run("interest saved is never negative", func(t *testing.T) {
		debts := []models.Debt{
			makeDebt("a", 3000, 10, 100),
			makeDebt("b", 500, 25, 50),
		}

		got := CompareStrategies(debts, 0, 0, projectionStart)
		if got.InterestSaved < 0 {
			t.Errorf("interest saved should be non-negative, got %v", got.InterestSaved)
		}
	})
}
