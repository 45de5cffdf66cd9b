package models

// User represents the user model in the database
type User struct {
	Base
	Email      string     `gorm:"uniqueIndex;not null" json:"email"`
	Password   string     `gorm:"not null" json:"-"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	IsActive   bool       `gorm:"default:true" json:"is_active"`
	Debts      []Debt     `gorm:"foreignKey:UserID" json:"debts,omitempty"`
	Payments   []Payment  `gorm:"foreignKey:UserID" json:"payments,omitempty"`
	Strategies []Strategy `gorm:"foreignKey:UserID" json:"strategies,omitempty"`
}
