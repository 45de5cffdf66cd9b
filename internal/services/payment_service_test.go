package services

import (
	"testing"
	"time"

	"paydown/internal/models"
	"paydown/internal/pagination"
	"paydown/internal/testutil"
	"paydown/internal/validation"
)

func TestLogPayment(t *testing.T) {
	yesterday := time.Now().Add(-24 * time.Hour).UnixMilli()

	t.Run("amortization_split", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		debtSvc := NewDebtService(db)
		svc := NewPaymentService(db, debtSvc)
		user := testutil.CreateTestUser(t, db)

		// 6000 at 12% APR accrues exactly 60 in one month.
		debt := testutil.CreateTestDebtWith(t, db, user.ID, models.Debt{
			Category:        models.DebtCategoryPersonalLoan,
			CurrentBalance:  6000,
			OriginalBalance: 6000,
			InterestRate:    12,
			MinimumPayment:  200,
			IsActive:        true,
		})

		payment, err := svc.LogPayment(user.ID, validation.CreatePaymentInput{
			DebtID:      debt.ID,
			Amount:      200,
			PaymentDate: yesterday,
		})
		testutil.AssertNoError(t, err)

		testutil.AssertMoneyEqual(t, 60, payment.Interest, "interest")
		testutil.AssertMoneyEqual(t, 140, payment.Principal, "principal")
		testutil.AssertMoneyEqual(t, 5860, payment.RemainingBalance, "remaining balance")

		reloaded, err := debtSvc.GetDebtByID(user.ID, debt.ID)
		testutil.AssertNoError(t, err)
		testutil.AssertMoneyEqual(t, 5860, reloaded.CurrentBalance, "debt balance")
		if !reloaded.IsActive {
			t.Error("expected debt to stay active")
		}
	})

	t.Run("payment_below_interest_reduces_nothing", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		debtSvc := NewDebtService(db)
		svc := NewPaymentService(db, debtSvc)
		user := testutil.CreateTestUser(t, db)

		debt := testutil.CreateTestDebtWith(t, db, user.ID, models.Debt{
			Category:        models.DebtCategoryCreditCard,
			CurrentBalance:  6000,
			OriginalBalance: 6000,
			InterestRate:    12,
			MinimumPayment:  200,
			IsActive:        true,
		})

		payment, err := svc.LogPayment(user.ID, validation.CreatePaymentInput{
			DebtID:      debt.ID,
			Amount:      40,
			PaymentDate: yesterday,
		})
		testutil.AssertNoError(t, err)

		testutil.AssertMoneyEqual(t, 40, payment.Interest, "interest")
		testutil.AssertMoneyEqual(t, 0, payment.Principal, "principal")
		testutil.AssertMoneyEqual(t, 6000, payment.RemainingBalance, "remaining balance")
	})

	t.Run("overpayment_caps_at_balance_and_deactivates", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		debtSvc := NewDebtService(db)
		svc := NewPaymentService(db, debtSvc)
		user := testutil.CreateTestUser(t, db)

		debt := testutil.CreateTestDebtWith(t, db, user.ID, models.Debt{
			Category:        models.DebtCategoryCreditCard,
			CurrentBalance:  100,
			OriginalBalance: 1000,
			InterestRate:    0,
			MinimumPayment:  50,
			IsActive:        true,
		})

		payment, err := svc.LogPayment(user.ID, validation.CreatePaymentInput{
			DebtID:      debt.ID,
			Amount:      500,
			PaymentDate: yesterday,
		})
		testutil.AssertNoError(t, err)

		testutil.AssertMoneyEqual(t, 100, payment.Principal, "principal")
		testutil.AssertMoneyEqual(t, 0, payment.RemainingBalance, "remaining balance")

		var reloaded models.Debt
		testutil.AssertNoError(t, db.First(&reloaded, "id = ?", debt.ID).Error)
		if reloaded.IsActive {
			t.Error("expected paid-off debt to be deactivated")
		}
	})

	t.Run("inactive_debt_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPaymentService(db, NewDebtService(db))
		user := testutil.CreateTestUser(t, db)

		debt := testutil.CreateTestDebtWith(t, db, user.ID, models.Debt{
			Category:        models.DebtCategoryCreditCard,
			CurrentBalance:  500,
			OriginalBalance: 1000,
			InterestRate:    10,
			MinimumPayment:  50,
			IsActive:        false,
		})

		_, err := svc.LogPayment(user.ID, validation.CreatePaymentInput{
			DebtID:      debt.ID,
			Amount:      100,
			PaymentDate: yesterday,
		})
		testutil.AssertAppError(t, err, "DEBT_INACTIVE")
	})

	t.Run("other_users_debt_rejected", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		defer testutil.TeardownTestDB(t, db)
		svc := NewPaymentService(db, NewDebtService(db))
		user := testutil.CreateTestUser(t, db)
		other := testutil.CreateTestUser(t, db)
		debt := testutil.CreateTestDebt(t, db, user.ID)

		_, err := svc.LogPayment(other.ID, validation.CreatePaymentInput{
			DebtID:      debt.ID,
			Amount:      100,
			PaymentDate: yesterday,
		})
		testutil.AssertAppError(t, err, "DEBT_NOT_FOUND")
	})
}

func TestGetUserPayments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewPaymentService(db, NewDebtService(db))
	user := testutil.CreateTestUser(t, db)
	debtA := testutil.CreateTestDebt(t, db, user.ID)
	debtB := testutil.CreateTestDebt(t, db, user.ID)

	older := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 4, 15, 0, 0, 0, 0, time.UTC)
	testutil.CreateTestPayment(t, db, user.ID, debtA.ID, 100, older)
	testutil.CreateTestPayment(t, db, user.ID, debtA.ID, 100, newer)
	testutil.CreateTestPayment(t, db, user.ID, debtB.ID, 50, older)

	t.Run("all_payments_newest_first", func(t *testing.T) {
		result, err := svc.GetUserPayments(user.ID, pagination.PageRequest{}, nil)
		testutil.AssertNoError(t, err)
		if result.TotalItems != 3 {
			t.Fatalf("expected 3 payments, got %d", result.TotalItems)
		}
		if !result.Data[0].PaymentDate.Equal(newer) {
			t.Errorf("expected newest payment first, got %v", result.Data[0].PaymentDate)
		}
	})

	t.Run("filtered_by_debt", func(t *testing.T) {
		result, err := svc.GetUserPayments(user.ID, pagination.PageRequest{}, &debtB.ID)
		testutil.AssertNoError(t, err)
		if result.TotalItems != 1 {
			t.Errorf("expected 1 payment, got %d", result.TotalItems)
		}
	})
}

func TestGetDebtPayments(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewPaymentService(db, NewDebtService(db))
	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)
	debt := testutil.CreateTestDebt(t, db, user.ID)
	testutil.CreateTestPayment(t, db, user.ID, debt.ID, 100, time.Now())

	t.Run("owner_sees_payments", func(t *testing.T) {
		result, err := svc.GetDebtPayments(user.ID, debt.ID, pagination.PageRequest{})
		testutil.AssertNoError(t, err)
		if result.TotalItems != 1 {
			t.Errorf("expected 1 payment, got %d", result.TotalItems)
		}
	})

	t.Run("other_user_gets_not_found", func(t *testing.T) {
		_, err := svc.GetDebtPayments(other.ID, debt.ID, pagination.PageRequest{})
		testutil.AssertAppError(t, err, "DEBT_NOT_FOUND")
	})
}

func TestGetPaymentSummary(t *testing.T) {
	db := testutil.SetupTestDB(t)
	defer testutil.TeardownTestDB(t, db)
	svc := NewPaymentService(db, NewDebtService(db))
	user := testutil.CreateTestUser(t, db)
	debtA := testutil.CreateTestDebt(t, db, user.ID)
	debtB := testutil.CreateTestDebt(t, db, user.ID)

	testutil.CreateTestPayment(t, db, user.ID, debtA.ID, 100, time.Now())
	testutil.CreateTestPayment(t, db, user.ID, debtB.ID, 50, time.Now())

	t.Run("all_debts", func(t *testing.T) {
		summary, err := svc.GetPaymentSummary(user.ID, nil)
		testutil.AssertNoError(t, err)
		if summary.PaymentCount != 2 || summary.TotalAmount != 150 {
			t.Errorf("unexpected summary %+v", summary)
		}
	})

	t.Run("scoped_to_debt", func(t *testing.T) {
		summary, err := svc.GetPaymentSummary(user.ID, &debtB.ID)
		testutil.AssertNoError(t, err)
		if summary.PaymentCount != 1 || summary.TotalAmount != 50 {
			t.Errorf("unexpected summary %+v", summary)
		}
	})

	t.Run("empty_history", func(t *testing.T) {
		empty := testutil.CreateTestUser(t, db)
		summary, err := svc.GetPaymentSummary(empty.ID, nil)
		testutil.AssertNoError(t, err)
		if summary.PaymentCount != 0 || summary.LastPaymentDate != nil {
			t.Errorf("expected zero summary, got %+v", summary)
		}
	})
}
