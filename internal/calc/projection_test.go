package calc

import (
	"math/rand"
	"testing"
	"time"

	"paydown/internal/models"
)

var projectionStart = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func TestProjectPayoff(t *testing.T) {
	avalanche := models.Strategy{Type: models.StrategyTypeAvalanche}

	t.Run("empty portfolio is already paid off", func(t *testing.T) {
		got := ProjectPayoff(nil, avalanche, 0, projectionStart)

		if !got.PaidOff {
			t.Error("expected paid off")
		}
		if got.TotalMonths != 0 || got.TotalInterest != 0 || got.TotalPayments != 0 {
			t.Errorf("expected zero projection, got %+v", got)
		}
		if !got.PayoffDate.Equal(projectionStart) {
			t.Errorf("expected payoff date %v, got %v", projectionStart, got.PayoffDate)
		}
		if got.MonthlyBreakdown == nil || len(got.MonthlyBreakdown) != 0 {
			t.Errorf("expected empty breakdown, got %v", got.MonthlyBreakdown)
		}
	})

	t.Run("zero rate pays off in balance over payment months", func(t *testing.T) {
		debts := []models.Debt{makeDebt("a", 1200, 0, 100)}

		got := ProjectPayoff(debts, avalanche, 0, projectionStart)
		if !got.PaidOff {
			t.Fatal("expected paid off")
		}
		if got.TotalMonths != 12 {
			t.Errorf("expected 12 months, got %d", got.TotalMonths)
		}
		if got.TotalInterest != 0 {
			t.Errorf("expected 0 interest, got %v", got.TotalInterest)
		}
		if got.TotalPayments != 1200 {
			t.Errorf("expected 1200 total payments, got %v", got.TotalPayments)
		}
		want := projectionStart.AddDate(0, 12, 0)
		if !got.PayoffDate.Equal(want) {
			t.Errorf("expected payoff date %v, got %v", want, got.PayoffDate)
		}
	})

	t.Run("remaining balance is monotonically non-increasing", func(t *testing.T) {
		debts := []models.Debt{
			makeDebt("a", 3000, 22, 100),
			makeDebt("b", 8000, 6, 200),
			makeDebt("c", 500, 15, 50),
		}
		strategy := models.Strategy{Type: models.StrategyTypeAvalanche, ExtraPayment: 150}

		got := ProjectPayoff(debts, strategy, 0, projectionStart)
		if !got.PaidOff {
			t.Fatal("expected portfolio to pay off within the default horizon")
		}

		prev := 3000.0 + 8000 + 500
		for _, entry := range got.MonthlyBreakdown {
			if entry.RemainingBalance > prev {
				t.Fatalf("month %d: balance increased from %v to %v",
					entry.Month, prev, entry.RemainingBalance)
			}
			prev = entry.RemainingBalance
		}
		if last := got.MonthlyBreakdown[len(got.MonthlyBreakdown)-1]; last.RemainingBalance != 0 {
			t.Errorf("expected final balance 0, got %v", last.RemainingBalance)
		}
	})

	t.Run("extra payment shortens the payoff", func(t *testing.T) {
		debts := []models.Debt{
			makeDebt("a", 3000, 22, 100),
			makeDebt("b", 2000, 15, 80),
		}

		without := ProjectPayoff(debts, models.Strategy{Type: models.StrategyTypeAvalanche}, 0, projectionStart)
		with := ProjectPayoff(debts, models.Strategy{Type: models.StrategyTypeAvalanche, ExtraPayment: 200}, 0, projectionStart)

		if with.TotalMonths >= without.TotalMonths {
			t.Errorf("extra payment should shorten payoff: %d vs %d months",
				with.TotalMonths, without.TotalMonths)
		}
		if with.TotalInterest >= without.TotalInterest {
			t.Errorf("extra payment should reduce interest: %v vs %v",
				with.TotalInterest, without.TotalInterest)
		}
	})

	t.Run("horizon exhausted when minimum never covers interest", func(t *testing.T) {
		// Interest accrues faster than the minimum payment can cover.
		debt := makeDebt("a", 10000, 30, 100)
		got := ProjectPayoff([]models.Debt{debt}, avalanche, 0, projectionStart)

		if got.PaidOff {
			t.Error("expected portfolio not to pay off")
		}
		if got.TotalMonths != DefaultMaxMonths {
			t.Errorf("expected %d months, got %d", DefaultMaxMonths, got.TotalMonths)
		}
		if last := got.MonthlyBreakdown[len(got.MonthlyBreakdown)-1]; last.RemainingBalance <= 0 {
			t.Errorf("expected non-zero remaining balance, got %v", last.RemainingBalance)
		}
	})

	t.Run("custom horizon is respected", func(t *testing.T) {
		debts := []models.Debt{makeDebt("a", 1200, 0, 100)}

		got := ProjectPayoff(debts, avalanche, 6, projectionStart)
		if got.PaidOff {
			t.Error("expected truncated projection not to pay off")
		}
		if got.TotalMonths != 6 {
			t.Errorf("expected 6 months, got %d", got.TotalMonths)
		}
	})

	t.Run("caller's debts are not mutated", func(t *testing.T) {
		debts := []models.Debt{makeDebt("a", 1200, 0, 100)}
		ProjectPayoff(debts, avalanche, 0, projectionStart)

		if debts[0].CurrentBalance != 1200 {
			t.Errorf("input balance mutated to %v", debts[0].CurrentBalance)
		}
	})

	t.Run("months are numbered consecutively from one", func(t *testing.T) {
		debts := []models.Debt{makeDebt("a", 500, 10, 100)}
		got := ProjectPayoff(debts, avalanche, 0, projectionStart)

		for i, entry := range got.MonthlyBreakdown {
			if entry.Month != i+1 {
				t.Fatalf("entry %d has month %d", i, entry.Month)
			}
		}
	})
}

func TestProjectPayoffTermination(t *testing.T) {
	// Randomized portfolios must always terminate within the horizon, paid
	// off or not.
	rng := rand.New(rand.NewSource(1))
	types := []models.StrategyType{
		models.StrategyTypeAvalanche,
		models.StrategyTypeSnowball,
		models.StrategyTypeCustom,
	}

	for i := 0; i < 50; i++ {
		n := 1 + rng.Intn(5)
		debts := make([]models.Debt, n)
		priorities := make([]string, n)
		for j := range debts {
			id := string(rune('a' + j))
			debts[j] = makeDebt(id,
				Round2(rng.Float64()*20000),
				Round2(rng.Float64()*40),
				Round2(rng.Float64()*500),
			)
			priorities[j] = id
		}

		strategy := models.Strategy{
			Type:           types[rng.Intn(len(types))],
			ExtraPayment:   Round2(rng.Float64() * 300),
			DebtPriorities: priorities,
		}

		got := ProjectPayoff(debts, strategy, 0, projectionStart)
		if got.TotalMonths > DefaultMaxMonths {
			t.Fatalf("case %d: exceeded horizon with %d months", i, got.TotalMonths)
		}
		if len(got.MonthlyBreakdown) != got.TotalMonths {
			t.Fatalf("case %d: %d breakdown entries for %d months",
				i, len(got.MonthlyBreakdown), got.TotalMonths)
		}
		if got.PaidOff {
			if last := got.MonthlyBreakdown; len(last) > 0 && last[len(last)-1].RemainingBalance != 0 {
				t.Fatalf("case %d: paid off but final balance %v",
					i, last[len(last)-1].RemainingBalance)
			}
		}
	}
}
