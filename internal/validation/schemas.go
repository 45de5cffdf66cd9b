// Package validation is the input boundary of the planning engine. It
// checks and normalizes raw debt, payment, and strategy records before
// they reach persistence or calculations, reporting failures as tagged
// Result values with per-field issues rather than errors or panics.
package validation

import (
	"fmt"
	"math"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"paydown/internal/models"
)

// Schemas validates engine input records. The zero value is not usable;
// construct with New.
type Schemas struct {
	validate *validator.Validate
	now      func() time.Time
}

// Option configures a Schemas.
type Option func(*Schemas)

// WithClock overrides the current-time reference used for the
// payment-date-not-in-future check. Intended for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Schemas) { s.now = now }
}

// New creates a Schemas with all custom rules registered.
func New(opts ...Option) *Schemas {
	s := &Schemas{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}

	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = v.RegisterValidation("currency", validCurrency)
	_ = v.RegisterValidation("debt_category", validDebtCategory)
	_ = v.RegisterValidation("strategy_type", validStrategyType)

	v.RegisterStructValidation(createDebtChecks, CreateDebtInput{})
	v.RegisterStructValidation(updateDebtChecks, UpdateDebtInput{})
	v.RegisterStructValidation(s.createPaymentChecks, CreatePaymentInput{})

	s.validate = v
	return s
}

// CreateDebtInput is the raw payload for creating a debt.
type CreateDebtInput struct {
	Name            string              `json:"name" validate:"required,max=100"`
	Category        models.DebtCategory `json:"category" validate:"required,debt_category"`
	CurrentBalance  float64             `json:"current_balance" validate:"gt=0,max=10000000,currency"`
	OriginalBalance float64             `json:"original_balance" validate:"gt=0,max=10000000,currency"`
	InterestRate    float64             `json:"interest_rate" validate:"min=0,max=100,currency"`
	MinimumPayment  float64             `json:"minimum_payment" validate:"gt=0,max=100000,currency"`
	DueDay          int                 `json:"due_day" validate:"min=1,max=31"`
}

// UpdateDebtInput is the raw payload for updating a debt. All fields are
// optional; UpdatedAt must be a positive epoch-millisecond timestamp.
type UpdateDebtInput struct {
	Name            *string              `json:"name" validate:"omitempty,min=1,max=100"`
	Category        *models.DebtCategory `json:"category" validate:"omitempty,debt_category"`
	CurrentBalance  *float64             `json:"current_balance" validate:"omitempty,gt=0,max=10000000,currency"`
	OriginalBalance *float64             `json:"original_balance" validate:"omitempty,gt=0,max=10000000,currency"`
	InterestRate    *float64             `json:"interest_rate" validate:"omitempty,min=0,max=100,currency"`
	MinimumPayment  *float64             `json:"minimum_payment" validate:"omitempty,gt=0,max=100000,currency"`
	DueDay          *int                 `json:"due_day" validate:"omitempty,min=1,max=31"`
	UpdatedAt       int64                `json:"updated_at" validate:"required,gt=0"`
}

// CreatePaymentInput is the raw payload for logging a payment.
// PaymentDate is epoch milliseconds and must not be in the future.
type CreatePaymentInput struct {
	DebtID      string  `json:"debt_id" validate:"required"`
	Amount      float64 `json:"amount" validate:"gt=0,max=100000,currency"`
	PaymentDate int64   `json:"payment_date" validate:"required,gt=0"`
	Note        string  `json:"note" validate:"omitempty,max=500"`
}

// CreateStrategyInput is the raw payload for creating a strategy.
type CreateStrategyInput struct {
	Name           string              `json:"name" validate:"required,max=100"`
	Type           models.StrategyType `json:"type" validate:"required,strategy_type"`
	MonthlyBudget  float64             `json:"monthly_budget" validate:"gt=0,max=100000,currency"`
	ExtraPayment   float64             `json:"extra_payment" validate:"min=0,max=100000,currency"`
	DebtPriorities []string            `json:"debt_priorities" validate:"omitempty,unique"`
}

// UpdateStrategyInput is the raw payload for updating a strategy.
type UpdateStrategyInput struct {
	Name           *string              `json:"name" validate:"omitempty,min=1,max=100"`
	Type           *models.StrategyType `json:"type" validate:"omitempty,strategy_type"`
	MonthlyBudget  *float64             `json:"monthly_budget" validate:"omitempty,gt=0,max=100000,currency"`
	ExtraPayment   *float64             `json:"extra_payment" validate:"omitempty,min=0,max=100000,currency"`
	DebtPriorities []string             `json:"debt_priorities" validate:"omitempty,unique"`
	UpdatedAt      int64                `json:"updated_at" validate:"required,gt=0"`
}

// ValidateCreateDebt checks a debt creation payload.
func (s *Schemas) ValidateCreateDebt(in CreateDebtInput) Result[CreateDebtInput] {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.run(in); err != nil {
		return fail[CreateDebtInput]("Invalid debt data", err)
	}
	return ok(in)
}

// ValidateUpdateDebt checks a debt update payload.
func (s *Schemas) ValidateUpdateDebt(in UpdateDebtInput) Result[UpdateDebtInput] {
	if in.Name != nil {
		trimmed := strings.TrimSpace(*in.Name)
		in.Name = &trimmed
	}
	if err := s.run(in); err != nil {
		return fail[UpdateDebtInput]("Invalid debt update data", err)
	}
	return ok(in)
}

// ValidateCreatePayment checks a payment creation payload.
func (s *Schemas) ValidateCreatePayment(in CreatePaymentInput) Result[CreatePaymentInput] {
	if err := s.run(in); err != nil {
		return fail[CreatePaymentInput]("Invalid payment data", err)
	}
	return ok(in)
}

// ValidateCreateStrategy checks a strategy creation payload.
func (s *Schemas) ValidateCreateStrategy(in CreateStrategyInput) Result[CreateStrategyInput] {
	in.Name = strings.TrimSpace(in.Name)
	if err := s.run(in); err != nil {
		return fail[CreateStrategyInput]("Invalid strategy data", err)
	}
	return ok(in)
}

// ValidateUpdateStrategy checks a strategy update payload.
func (s *Schemas) ValidateUpdateStrategy(in UpdateStrategyInput) Result[UpdateStrategyInput] {
	if in.Name != nil {
		trimmed := strings.TrimSpace(*in.Name)
		in.Name = &trimmed
	}
	if err := s.run(in); err != nil {
		return fail[UpdateStrategyInput]("Invalid strategy update data", err)
	}
	return ok(in)
}

// run executes struct validation, converting any panic from the underlying
// library into an ordinary error so the public functions never throw.
func (s *Schemas) run(value any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("validation failed unexpectedly: %v", r)
		}
	}()
	return s.validate.Struct(value)
}

// --- custom rules ---

func validCurrency(fl validator.FieldLevel) bool {
	v := fl.Field().Float()
	return math.Abs(v*100-math.Round(v*100)) < 1e-9
}

func validDebtCategory(fl validator.FieldLevel) bool {
	switch models.DebtCategory(fl.Field().String()) {
	case models.DebtCategoryCreditCard, models.DebtCategoryPersonalLoan,
		models.DebtCategoryStudentLoan, models.DebtCategoryMortgage,
		models.DebtCategoryAutoLoan, models.DebtCategoryOther:
		return true
	}
	return false
}

func validStrategyType(fl validator.FieldLevel) bool {
	switch models.StrategyType(fl.Field().String()) {
	case models.StrategyTypeAvalanche, models.StrategyTypeSnowball, models.StrategyTypeCustom:
		return true
	}
	return false
}

// createDebtChecks attaches cross-field errors to the offending field.
func createDebtChecks(sl validator.StructLevel) {
	in := sl.Current().Interface().(CreateDebtInput)
	if in.CurrentBalance > in.OriginalBalance {
		sl.ReportError(in.CurrentBalance, "current_balance", "CurrentBalance", "lte_original_balance", "")
	}
	if in.MinimumPayment > in.CurrentBalance {
		sl.ReportError(in.MinimumPayment, "minimum_payment", "MinimumPayment", "lte_current_balance", "")
	}
}

// updateDebtChecks applies the cross-field rules only when both sides of a
// comparison are present in the partial update.
func updateDebtChecks(sl validator.StructLevel) {
	in := sl.Current().Interface().(UpdateDebtInput)
	if in.CurrentBalance != nil && in.OriginalBalance != nil && *in.CurrentBalance > *in.OriginalBalance {
		sl.ReportError(in.CurrentBalance, "current_balance", "CurrentBalance", "lte_original_balance", "")
	}
	if in.MinimumPayment != nil && in.CurrentBalance != nil && *in.MinimumPayment > *in.CurrentBalance {
		sl.ReportError(in.MinimumPayment, "minimum_payment", "MinimumPayment", "lte_current_balance", "")
	}
}

func (s *Schemas) createPaymentChecks(sl validator.StructLevel) {
	in := sl.Current().Interface().(CreatePaymentInput)
	if in.PaymentDate > s.now().UnixMilli() {
		sl.ReportError(in.PaymentDate, "payment_date", "PaymentDate", "not_future", "")
	}
}
