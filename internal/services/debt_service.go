package services

import (
	"errors"

	"gorm.io/gorm"

	"paydown/internal/calc"
	apperrors "paydown/internal/errors"
	"paydown/internal/models"
	"paydown/internal/pagination"
	"paydown/internal/validation"
)

// debtService handles debt-related business logic.
type debtService struct {
	db *gorm.DB
}

// NewDebtService creates a new DebtServicer.
func NewDebtService(db *gorm.DB) DebtServicer {
	return &debtService{db: db}
}

// CreateDebt persists a new debt from a validated creation input.
func (s *debtService) CreateDebt(userID string, in validation.CreateDebtInput) (*models.Debt, error) {
	debt := &models.Debt{
		UserID:          userID,
		Name:            in.Name,
		Category:        in.Category,
		CurrentBalance:  in.CurrentBalance,
		OriginalBalance: in.OriginalBalance,
		InterestRate:    in.InterestRate,
		MinimumPayment:  in.MinimumPayment,
		DueDay:          in.DueDay,
		IsActive:        true,
	}

	if err := s.db.Create(debt).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return debt, nil
}

// GetUserDebts returns a paginated list of the user's debts with optional filters.
func (s *debtService) GetUserDebts(userID string, page pagination.PageRequest, filter DebtFilter) (*pagination.PageResponse[models.Debt], error) {
	page.Defaults()

	base := s.db.Model(&models.Debt{}).Where("user_id = ?", userID)
	if filter.IsActive != nil {
		base = base.Where("is_active = ?", *filter.IsActive)
	}
	if filter.Category != nil {
		base = base.Where("category = ?", *filter.Category)
	}

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var debts []models.Debt
	if err := base.Order("created_at").Scopes(pagination.Paginate(page)).Find(&debts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(debts, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetDebtByID returns a debt by ID if it belongs to the user.
func (s *debtService) GetDebtByID(userID, debtID string) (*models.Debt, error) {
	var debt models.Debt
	if err := s.db.Where("id = ? AND user_id = ?", debtID, userID).First(&debt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrDebtNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &debt, nil
}

// UpdateDebt applies a validated partial update to a debt.
func (s *debtService) UpdateDebt(userID, debtID string, in validation.UpdateDebtInput) (*models.Debt, error) {
	debt, err := s.GetDebtByID(userID, debtID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Category != nil {
		updates["category"] = *in.Category
	}
	if in.CurrentBalance != nil {
		updates["current_balance"] = *in.CurrentBalance
	}
	if in.OriginalBalance != nil {
		updates["original_balance"] = *in.OriginalBalance
	}
	if in.InterestRate != nil {
		updates["interest_rate"] = *in.InterestRate
	}
	if in.MinimumPayment != nil {
		updates["minimum_payment"] = *in.MinimumPayment
	}
	if in.DueDay != nil {
		updates["due_day"] = *in.DueDay
	}

	if len(updates) > 0 {
		if err := s.db.Model(debt).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return debt, nil
}

// DeleteDebt soft-deletes a debt.
func (s *debtService) DeleteDebt(userID, debtID string) error {
	debt, err := s.GetDebtByID(userID, debtID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(debt).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetDebtProgress computes progress-to-date metrics for one debt from its
// full payment history.
func (s *debtService) GetDebtProgress(userID, debtID string) (*calc.DebtWithProgress, error) {
	debt, err := s.GetDebtByID(userID, debtID)
	if err != nil {
		return nil, err
	}

	var payments []models.Payment
	if err := s.db.Where("user_id = ? AND debt_id = ?", userID, debtID).Find(&payments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	progress := calc.DebtProgress(*debt, payments)
	return &progress, nil
}

// GetDashboard aggregates the user's portfolio position: balances, overall
// progress, minimum payment load, and payment totals.
func (s *debtService) GetDashboard(userID string) (*Dashboard, error) {
	var debts []models.Debt
	if err := s.db.Where("user_id = ?", userID).Find(&debts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var payments []models.Payment
	if err := s.db.Where("user_id = ?", userID).Find(&payments).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var totalBalance, totalOriginal float64
	var activeCount int
	for _, d := range debts {
		totalBalance += d.CurrentBalance
		totalOriginal += d.OriginalBalance
		if d.IsActive && d.CurrentBalance > 0 {
			activeCount++
		}
	}

	var progress float64
	if totalOriginal > 0 {
		progress = (totalOriginal - totalBalance) / totalOriginal * 100
	}

	return &Dashboard{
		TotalBalance:         calc.Round2(totalBalance),
		TotalOriginalBalance: calc.Round2(totalOriginal),
		OverallProgress:      calc.Round2(progress),
		ActiveDebtCount:      activeCount,
		TotalMinimumPayment:  calc.MinimumPayments(debts),
		Payments:             calc.SummarizePayments(payments),
	}, nil
}
