package calc

import (
	"math"
	"sort"

	"paydown/internal/models"
)

// activeDebts returns the debts that participate in ordering and
// allocation: active, with a positive balance. The result is a fresh slice
// of value copies in original relative order.
func activeDebts(debts []models.Debt) []models.Debt {
	out := make([]models.Debt, 0, len(debts))
	for _, d := range debts {
		if d.IsActive && d.CurrentBalance > 0 {
			out = append(out, d)
		}
	}
	return out
}

// OrderDebts orders the active, positive-balance debts by the strategy's
// payoff policy:
//
//   - avalanche: highest interest rate first
//   - snowball: lowest balance first
//   - custom: by position in priorities; debts not listed come after all
//     prioritized debts in their original relative order. A custom strategy
//     without priorities falls back to avalanche.
//
// Ties preserve the original relative order. An unrecognized strategy type
// falls back to avalanche; this fallback is a deliberate policy, matching
// the custom-without-priorities case.
func OrderDebts(debts []models.Debt, strategyType models.StrategyType, priorities []string) []models.Debt {
	ordered := activeDebts(debts)

	switch strategyType {
	case models.StrategyTypeSnowball:
		sort.SliceStable(ordered, func(i, j int) bool {
			return ordered[i].CurrentBalance < ordered[j].CurrentBalance
		})
	case models.StrategyTypeCustom:
		if len(priorities) == 0 {
			sortByRateDesc(ordered)
			break
		}
		rank := make(map[string]int, len(priorities))
		for i, id := range priorities {
			rank[id] = i
		}
		unlisted := len(priorities)
		sort.SliceStable(ordered, func(i, j int) bool {
			ri, ok := rank[ordered[i].ID]
			if !ok {
				ri = unlisted
			}
			rj, ok := rank[ordered[j].ID]
			if !ok {
				rj = unlisted
			}
			return ri < rj
		})
	case models.StrategyTypeAvalanche:
		sortByRateDesc(ordered)
	default:
		sortByRateDesc(ordered)
	}

	return ordered
}

func sortByRateDesc(debts []models.Debt) {
	sort.SliceStable(debts, func(i, j int) bool {
		return debts[i].InterestRate > debts[j].InterestRate
	})
}

// Allocation assigns a portion of the extra payment to one debt.
type Allocation struct {
	DebtID string  `json:"debt_id"`
	Amount float64 `json:"amount"`
}

// AllocateExtra distributes the extra payment across the active debts in
// strategy-policy order: the full remainder goes to the highest-priority
// debt up to its balance, then rolls over to the next. The total allocated
// never exceeds extraAmount, and no debt is allocated more than its current
// balance. Returns nil when there is nothing to allocate.
func AllocateExtra(debts []models.Debt, strategy models.Strategy, extraAmount float64) []Allocation {
	if extraAmount <= 0 {
		return nil
	}
	ordered := OrderDebts(debts, strategy.Type, strategy.DebtPriorities)
	if len(ordered) == 0 {
		return nil
	}

	var allocations []Allocation
	remaining := extraAmount
	for _, d := range ordered {
		if remaining <= 0 {
			break
		}
		amount := math.Min(remaining, d.CurrentBalance)
		if amount > 0 {
			allocations = append(allocations, Allocation{DebtID: d.ID, Amount: Round2(amount)})
			remaining -= amount
		}
	}
	return allocations
}
