package validation

import (
	"strconv"

	"paydown/internal/models"
)

// Form variants accept the string-typed values a presentation layer
// collects from text inputs, coerce them to numbers, and then run the same
// rules as the JSON validators. Coercion failures are reported as field
// issues, never as errors.

// DebtForm is a debt creation payload with text-typed numeric fields.
type DebtForm struct {
	Name            string `json:"name"`
	Category        string `json:"category"`
	CurrentBalance  string `json:"current_balance"`
	OriginalBalance string `json:"original_balance"`
	InterestRate    string `json:"interest_rate"`
	MinimumPayment  string `json:"minimum_payment"`
	DueDay          string `json:"due_day"`
}

// PaymentForm is a payment creation payload with text-typed numeric fields.
type PaymentForm struct {
	DebtID      string `json:"debt_id"`
	Amount      string `json:"amount"`
	PaymentDate string `json:"payment_date"`
	Note        string `json:"note"`
}

// StrategyForm is a strategy creation payload with text-typed numeric fields.
type StrategyForm struct {
	Name           string   `json:"name"`
	Type           string   `json:"type"`
	MonthlyBudget  string   `json:"monthly_budget"`
	ExtraPayment   string   `json:"extra_payment"`
	DebtPriorities []string `json:"debt_priorities"`
}

// ParseDebtForm coerces a debt form and validates the result.
func (s *Schemas) ParseDebtForm(f DebtForm) Result[CreateDebtInput] {
	var c coercer
	in := CreateDebtInput{
		Name:            f.Name,
		Category:        models.DebtCategory(f.Category),
		CurrentBalance:  c.float(f.CurrentBalance, "current_balance"),
		OriginalBalance: c.float(f.OriginalBalance, "original_balance"),
		InterestRate:    c.float(f.InterestRate, "interest_rate"),
		MinimumPayment:  c.float(f.MinimumPayment, "minimum_payment"),
		DueDay:          c.int(f.DueDay, "due_day"),
	}
	if len(c.issues) > 0 {
		return failWith[CreateDebtInput]("Invalid debt data", c.issues)
	}
	return s.ValidateCreateDebt(in)
}

// ParsePaymentForm coerces a payment form and validates the result.
func (s *Schemas) ParsePaymentForm(f PaymentForm) Result[CreatePaymentInput] {
	var c coercer
	in := CreatePaymentInput{
		DebtID:      f.DebtID,
		Amount:      c.float(f.Amount, "amount"),
		PaymentDate: c.millis(f.PaymentDate, "payment_date"),
		Note:        f.Note,
	}
	if len(c.issues) > 0 {
		return failWith[CreatePaymentInput]("Invalid payment data", c.issues)
	}
	return s.ValidateCreatePayment(in)
}

// ParseStrategyForm coerces a strategy form and validates the result.
func (s *Schemas) ParseStrategyForm(f StrategyForm) Result[CreateStrategyInput] {
	var c coercer
	in := CreateStrategyInput{
		Name:           f.Name,
		Type:           models.StrategyType(f.Type),
		MonthlyBudget:  c.float(f.MonthlyBudget, "monthly_budget"),
		ExtraPayment:   c.float(f.ExtraPayment, "extra_payment"),
		DebtPriorities: f.DebtPriorities,
	}
	if len(c.issues) > 0 {
		return failWith[CreateStrategyInput]("Invalid strategy data", c.issues)
	}
	return s.ValidateCreateStrategy(in)
}

// coercer converts string fields, collecting an issue per failed field.
type coercer struct {
	issues []Issue
}

func (c *coercer) float(s, path string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		c.issues = append(c.issues, Issue{Path: path, Message: "Must be a number"})
		return 0
	}
	return v
}

func (c *coercer) int(s, path string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		c.issues = append(c.issues, Issue{Path: path, Message: "Must be a whole number"})
		return 0
	}
	return v
}

func (c *coercer) millis(s, path string) int64 {
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		c.issues = append(c.issues, Issue{Path: path, Message: "Must be an epoch-millisecond timestamp"})
		return 0
	}
	return v
}
