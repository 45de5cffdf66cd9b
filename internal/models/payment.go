package models

import "time"

// Payment is an immutable record of a payment applied against a debt.
// Principal and Interest are the amortization split computed at the time
// the payment was logged; RemainingBalance is a point-in-time snapshot of
// the debt balance after this payment and is never recomputed.
type Payment struct {
	Base
	UserID           string    `gorm:"type:uuid;not null;index" json:"user_id"`
	DebtID           string    `gorm:"type:uuid;not null;index" json:"debt_id"`
	Amount           float64   `gorm:"not null" json:"amount"`
	Principal        float64   `gorm:"not null" json:"principal"`
	Interest         float64   `gorm:"not null" json:"interest"`
	RemainingBalance float64   `gorm:"not null" json:"remaining_balance"`
	PaymentDate      time.Time `gorm:"not null;index" json:"payment_date"`
	Note             string    `json:"note,omitempty"`

	// Relationships
	Debt Debt `gorm:"foreignKey:DebtID" json:"debt,omitempty"`
}
