package services

import (
	"math"
	"time"

	"gorm.io/gorm"

	"paydown/internal/calc"
	apperrors "paydown/internal/errors"
	"paydown/internal/models"
	"paydown/internal/pagination"
	"paydown/internal/validation"
)

// paymentService handles payment-related business logic.
type paymentService struct {
	db          *gorm.DB
	debtService DebtServicer
}

// NewPaymentService creates a new PaymentServicer.
func NewPaymentService(db *gorm.DB, debtService DebtServicer) PaymentServicer {
	return &paymentService{db: db, debtService: debtService}
}

// LogPayment records a validated payment against a debt. The amortization
// split is computed at the debt's current balance: one period of accrued
// interest first, the remainder as principal capped at the balance. The
// payment record and the balance reduction are committed in one database
// transaction, and the debt is deactivated when its balance reaches zero.
func (s *paymentService) LogPayment(userID string, in validation.CreatePaymentInput) (*models.Payment, error) {
	debt, err := s.debtService.GetDebtByID(userID, in.DebtID)
	if err != nil {
		return nil, err
	}
	if !debt.IsActive {
		return nil, apperrors.ErrDebtInactive
	}
	if debt.CurrentBalance <= 0 {
		return nil, apperrors.ErrDebtPaidOff
	}

	accrued := calc.InterestForPeriod(debt.CurrentBalance, debt.InterestRate)
	interest := calc.Round2(math.Min(in.Amount, accrued))
	principal := calc.Round2(math.Min(in.Amount-interest, debt.CurrentBalance))
	newBalance := calc.Round2(debt.CurrentBalance - principal)

	payment := &models.Payment{
		UserID:           userID,
		DebtID:           debt.ID,
		Amount:           in.Amount,
		Principal:        principal,
		Interest:         interest,
		RemainingBalance: newBalance,
		PaymentDate:      time.UnixMilli(in.PaymentDate),
		Note:             in.Note,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(payment).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}

		updates := map[string]interface{}{
			"current_balance": newBalance,
			"is_active":       newBalance > 0,
		}
		if err := tx.Model(debt).Updates(updates).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return payment, nil
}

// GetUserPayments returns a paginated list of the user's payments, newest
// first, optionally filtered to one debt.
func (s *paymentService) GetUserPayments(userID string, page pagination.PageRequest, debtID *string) (*pagination.PageResponse[models.Payment], error) {
	page.Defaults()

	base := s.db.Model(&models.Payment{}).Where("user_id = ?", userID)
	if debtID != nil {
		base = base.Where("debt_id = ?", *debtID)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var payments []models.Payment
	if err := base.Order("payment_date DESC").Scopes(pagination.Paginate(page)).Find(&payments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(payments, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetDebtPayments returns a paginated list of payments for one debt after
// verifying the debt belongs to the user.
func (s *paymentService) GetDebtPayments(userID, debtID string, page pagination.PageRequest) (*pagination.PageResponse[models.Payment], error) {
	if _, err := s.debtService.GetDebtByID(userID, debtID); err != nil {
		return nil, err
	}
	return s.GetUserPayments(userID, page, &debtID)
}

// GetPaymentSummary aggregates the user's payments, optionally scoped to
// one debt. An empty history yields the zero summary.
func (s *paymentService) GetPaymentSummary(userID string, debtID *string) (*calc.PaymentSummary, error) {
	base := s.db.Where("user_id = ?", userID)
	if debtID != nil {
		if _, err := s.debtService.GetDebtByID(userID, *debtID); err != nil {
			return nil, err
		}
		base = base.Where("debt_id = ?", *debtID)
	}

	var payments []models.Payment
	if err := base.Find(&payments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := calc.SummarizePayments(payments)
	return &summary, nil
}
