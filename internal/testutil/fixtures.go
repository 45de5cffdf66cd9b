package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"paydown/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Email:    email,
		Password: string(hash),
		IsActive: true,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestDebt creates an active credit card debt with a 5000 balance at 20% APR.
func CreateTestDebt(t *testing.T, db *gorm.DB, userID string) *models.Debt {
	t.Helper()
	return CreateTestDebtWith(t, db, userID, models.Debt{
		Name:            fmt.Sprintf("Test Debt %d", nextID()),
		Category:        models.DebtCategoryCreditCard,
		CurrentBalance:  5000,
		OriginalBalance: 5000,
		InterestRate:    20,
		MinimumPayment:  150,
		DueDay:          1,
		IsActive:        true,
	})
}

// CreateTestDebtWith creates a debt from the given template, filling in UserID
// and defaulting Name and DueDay when unset.
func CreateTestDebtWith(t *testing.T, db *gorm.DB, userID string, debt models.Debt) *models.Debt {
	t.Helper()

	debt.UserID = userID
	if debt.Name == "" {
		debt.Name = fmt.Sprintf("Test Debt %d", nextID())
	}
	if debt.DueDay == 0 {
		debt.DueDay = 1
	}
	if err := db.Create(&debt).Error; err != nil {
		t.Fatalf("failed to create test debt: %v", err)
	}
	return &debt
}

// CreateTestPayment records a payment row directly, bypassing the service
// layer's amortization split.
func CreateTestPayment(t *testing.T, db *gorm.DB, userID, debtID string, amount float64, paymentDate time.Time) *models.Payment {
	t.Helper()

	payment := &models.Payment{
		UserID:      userID,
		DebtID:      debtID,
		Amount:      amount,
		Principal:   amount,
		PaymentDate: paymentDate,
	}
	if err := db.Create(payment).Error; err != nil {
		t.Fatalf("failed to create test payment: %v", err)
	}
	return payment
}

// CreateTestStrategy creates an avalanche strategy with a 500 monthly budget.
func CreateTestStrategy(t *testing.T, db *gorm.DB, userID string) *models.Strategy {
	t.Helper()
	return CreateTestStrategyWith(t, db, userID, models.Strategy{
		Type:          models.StrategyTypeAvalanche,
		MonthlyBudget: 500,
		ExtraPayment:  100,
	})
}

// CreateTestStrategyWith creates a strategy from the given template, filling
// in UserID and defaulting Name when unset.
func CreateTestStrategyWith(t *testing.T, db *gorm.DB, userID string, strategy models.Strategy) *models.Strategy {
	t.Helper()

	strategy.UserID = userID
	if strategy.Name == "" {
		strategy.Name = fmt.Sprintf("Test Strategy %d", nextID())
	}
	if err := db.Create(&strategy).Error; err != nil {
		t.Fatalf("failed to create test strategy: %v", err)
	}
	return &strategy
}
