package services

import (
	"paydown/internal/calc"
	"paydown/internal/models"
	"paydown/internal/pagination"
	"paydown/internal/validation"
)

// UserServicer defines the contract for user-related business logic.
type UserServicer interface {
	CreateUser(email, password, firstName, lastName string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	VerifyPassword(user *models.User, password string) bool
}

// DebtFilter holds optional filter parameters for listing debts.
type DebtFilter struct {
	IsActive *bool
	Category *models.DebtCategory
}

// Dashboard aggregates a user's portfolio position for the overview screen.
type Dashboard struct {
	TotalBalance         float64             `json:"total_balance"`
	TotalOriginalBalance float64             `json:"total_original_balance"`
	OverallProgress      float64             `json:"overall_progress"`
	ActiveDebtCount      int                 `json:"active_debt_count"`
	TotalMinimumPayment  float64             `json:"total_minimum_payment"`
	Payments             calc.PaymentSummary `json:"payments"`
}

// DebtServicer defines the contract for debt-related business logic.
// Create and update operations receive inputs already checked by the
// validation layer.
type DebtServicer interface {
	CreateDebt(userID string, in validation.CreateDebtInput) (*models.Debt, error)
	GetUserDebts(userID string, page pagination.PageRequest, filter DebtFilter) (*pagination.PageResponse[models.Debt], error)
	GetDebtByID(userID, debtID string) (*models.Debt, error)
	UpdateDebt(userID, debtID string, in validation.UpdateDebtInput) (*models.Debt, error)
	DeleteDebt(userID, debtID string) error
	GetDebtProgress(userID, debtID string) (*calc.DebtWithProgress, error)
	GetDashboard(userID string) (*Dashboard, error)
}

// PaymentServicer defines the contract for payment-related business logic.
type PaymentServicer interface {
	LogPayment(userID string, in validation.CreatePaymentInput) (*models.Payment, error)
	GetUserPayments(userID string, page pagination.PageRequest, debtID *string) (*pagination.PageResponse[models.Payment], error)
	GetDebtPayments(userID, debtID string, page pagination.PageRequest) (*pagination.PageResponse[models.Payment], error)
	GetPaymentSummary(userID string, debtID *string) (*calc.PaymentSummary, error)
}

// StrategyServicer defines the contract for strategy-related business logic.
type StrategyServicer interface {
	CreateStrategy(userID string, in validation.CreateStrategyInput) (*models.Strategy, error)
	GetUserStrategies(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Strategy], error)
	GetStrategyByID(userID, strategyID string) (*models.Strategy, error)
	UpdateStrategy(userID, strategyID string, in validation.UpdateStrategyInput) (*models.Strategy, error)
	DeleteStrategy(userID, strategyID string) error
	ActivateStrategy(userID, strategyID string) (*models.Strategy, error)
	GetProjection(userID, strategyID string) (*calc.Projection, error)
	CompareStrategies(userID string, extraPayment float64) (*calc.StrategyComparison, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
