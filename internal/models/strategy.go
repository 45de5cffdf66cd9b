package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// StrategyType selects the payoff ordering policy
type StrategyType string

const (
	StrategyTypeAvalanche StrategyType = "avalanche"
	StrategyTypeSnowball  StrategyType = "snowball"
	StrategyTypeCustom    StrategyType = "custom"
)

// Valid reports whether t is one of the known strategy types.
func (t StrategyType) Valid() bool {
	switch t {
	case StrategyTypeAvalanche, StrategyTypeSnowball, StrategyTypeCustom:
		return true
	}
	return false
}

// DebtIDList is an ordered list of debt IDs stored as a JSON column.
type DebtIDList []string

// Value implements driver.Valuer.
func (l DebtIDList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner.
func (l *DebtIDList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported type for DebtIDList: %T", value)
	}
}

// Strategy is a named payoff policy. ExtraPayment is the surplus beyond
// minimum payments allocated according to Type each simulated month;
// DebtPriorities is only consulted when Type is custom.
type Strategy struct {
	Base
	UserID         string       `gorm:"type:uuid;not null;index" json:"user_id"`
	Name           string       `gorm:"not null" json:"name"`
	Type           StrategyType `gorm:"not null" json:"type"`
	MonthlyBudget  float64      `gorm:"not null" json:"monthly_budget"`
	ExtraPayment   float64      `gorm:"not null" json:"extra_payment"`
	DebtPriorities DebtIDList   `gorm:"type:text" json:"debt_priorities,omitempty"`
	IsActive       bool         `gorm:"default:false" json:"is_active"`
}
