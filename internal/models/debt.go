package models

// DebtCategory classifies a debt by the kind of liability it represents
type DebtCategory string

const (
	DebtCategoryCreditCard   DebtCategory = "credit_card"
	DebtCategoryPersonalLoan DebtCategory = "personal_loan"
	DebtCategoryStudentLoan  DebtCategory = "student_loan"
	DebtCategoryMortgage     DebtCategory = "mortgage"
	DebtCategoryAutoLoan     DebtCategory = "auto_loan"
	DebtCategoryOther        DebtCategory = "other"
)

// Valid reports whether c is one of the known debt categories.
func (c DebtCategory) Valid() bool {
	switch c {
	case DebtCategoryCreditCard, DebtCategoryPersonalLoan, DebtCategoryStudentLoan,
		DebtCategoryMortgage, DebtCategoryAutoLoan, DebtCategoryOther:
		return true
	}
	return false
}

// Debt represents a single liability owned by a user. CurrentBalance only
// moves as a consequence of applied payments; it never exceeds
// OriginalBalance. Monetary fields are dollars rounded to two decimal
// places, InterestRate is an annual percentage.
type Debt struct {
	Base
	UserID          string       `gorm:"type:uuid;not null;index" json:"user_id"`
	Name            string       `gorm:"not null" json:"name"`
	Category        DebtCategory `gorm:"not null" json:"category"`
	CurrentBalance  float64      `gorm:"not null" json:"current_balance"`
	OriginalBalance float64      `gorm:"not null" json:"original_balance"`
	InterestRate    float64      `gorm:"not null" json:"interest_rate"`
	MinimumPayment  float64      `gorm:"not null" json:"minimum_payment"`
	DueDay          int          `gorm:"not null" json:"due_day"`
	IsActive        bool         `gorm:"default:true" json:"is_active"`
}
