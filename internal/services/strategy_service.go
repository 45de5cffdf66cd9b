package services

import (
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"

	"paydown/internal/cache"
	"paydown/internal/calc"
	apperrors "paydown/internal/errors"
	"paydown/internal/logger"
	"paydown/internal/models"
	"paydown/internal/pagination"
	"paydown/internal/validation"
)

// projectionTTL bounds how stale a cached projection can get; payments and
// debt edits are not tracked per strategy, so the cache expires instead.
const projectionTTL = 5 * time.Minute

// strategyService handles strategy-related business logic and runs the
// projection engine over the user's portfolio.
type strategyService struct {
	db    *gorm.DB
	cache cache.Cache
	now   func() time.Time
}

// NewStrategyService creates a new StrategyServicer.
func NewStrategyService(db *gorm.DB, c cache.Cache) StrategyServicer {
	return &strategyService{db: db, cache: c, now: time.Now}
}

// NewStrategyServiceWithClock creates a StrategyServicer with a fixed
// current-time reference for reproducible projections in tests.
func NewStrategyServiceWithClock(db *gorm.DB, c cache.Cache, now func() time.Time) StrategyServicer {
	return &strategyService{db: db, cache: c, now: now}
}

// CreateStrategy persists a new strategy from a validated creation input.
// Custom priorities must reference debts owned by the user.
func (s *strategyService) CreateStrategy(userID string, in validation.CreateStrategyInput) (*models.Strategy, error) {
	if err := s.verifyPriorities(userID, in.DebtPriorities); err != nil {
		return nil, err
	}

	strategy := &models.Strategy{
		UserID:         userID,
		Name:           in.Name,
		Type:           in.Type,
		MonthlyBudget:  in.MonthlyBudget,
		ExtraPayment:   in.ExtraPayment,
		DebtPriorities: in.DebtPriorities,
	}

	if err := s.db.Create(strategy).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return strategy, nil
}

// GetUserStrategies returns a paginated list of the user's strategies.
func (s *strategyService) GetUserStrategies(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Strategy], error) {
	page.Defaults()

	base := s.db.Model(&models.Strategy{}).Where("user_id = ?", userID)

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var strategies []models.Strategy
	if err := base.Order("created_at").Scopes(pagination.Paginate(page)).Find(&strategies).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(strategies, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// GetStrategyByID returns a strategy by ID if it belongs to the user.
func (s *strategyService) GetStrategyByID(userID, strategyID string) (*models.Strategy, error) {
	var strategy models.Strategy
	if err := s.db.Where("id = ? AND user_id = ?", strategyID, userID).First(&strategy).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrStrategyNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &strategy, nil
}

// UpdateStrategy applies a validated partial update to a strategy and
// invalidates its cached projection.
func (s *strategyService) UpdateStrategy(userID, strategyID string, in validation.UpdateStrategyInput) (*models.Strategy, error) {
	strategy, err := s.GetStrategyByID(userID, strategyID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if in.Name != nil {
		updates["name"] = *in.Name
	}
	if in.Type != nil {
		updates["type"] = *in.Type
	}
	if in.MonthlyBudget != nil {
		updates["monthly_budget"] = *in.MonthlyBudget
	}
	if in.ExtraPayment != nil {
		updates["extra_payment"] = *in.ExtraPayment
	}
	if in.DebtPriorities != nil {
		if err := s.verifyPriorities(userID, in.DebtPriorities); err != nil {
			return nil, err
		}
		updates["debt_priorities"] = models.DebtIDList(in.DebtPriorities)
	}

	if len(updates) > 0 {
		if err := s.db.Model(strategy).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		s.invalidateProjection(strategyID)
	}

	return strategy, nil
}

// DeleteStrategy soft-deletes a strategy and drops its cached projection.
func (s *strategyService) DeleteStrategy(userID, strategyID string) error {
	strategy, err := s.GetStrategyByID(userID, strategyID)
	if err != nil {
		return err
	}

	if err := s.db.Delete(strategy).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	s.invalidateProjection(strategyID)
	return nil
}

// ActivateStrategy marks one strategy active and deactivates the user's
// others in the same transaction.
func (s *strategyService) ActivateStrategy(userID, strategyID string) (*models.Strategy, error) {
	strategy, err := s.GetStrategyByID(userID, strategyID)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Strategy{}).
			Where("user_id = ? AND id <> ?", userID, strategyID).
			Update("is_active", false).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		if err := tx.Model(strategy).Update("is_active", true).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return strategy, nil
}

// GetProjection runs the payoff simulation for a strategy over the user's
// debts. Results are cached for a short period keyed by strategy ID.
func (s *strategyService) GetProjection(userID, strategyID string) (*calc.Projection, error) {
	strategy, err := s.GetStrategyByID(userID, strategyID)
	if err != nil {
		return nil, err
	}

	key := projectionKey(strategyID)
	if cached, found := s.cache.Get(key); found {
		var projection calc.Projection
		if err := json.Unmarshal([]byte(cached), &projection); err == nil {
			return &projection, nil
		}
		// Unreadable cache entries are dropped and recomputed.
		_ = s.cache.Delete(key)
	}

	debts, err := s.userDebts(userID)
	if err != nil {
		return nil, err
	}

	projection := calc.ProjectPayoff(debts, *strategy, calc.DefaultMaxMonths, s.now())

	if data, err := json.Marshal(projection); err == nil {
		if err := s.cache.Set(key, string(data), projectionTTL); err != nil {
			logger.Get().Warnw("failed to cache projection", "strategy_id", strategyID, "error", err)
		}
	}

	return &projection, nil
}

// CompareStrategies projects the user's portfolio under avalanche and
// snowball with the given extra payment.
func (s *strategyService) CompareStrategies(userID string, extraPayment float64) (*calc.StrategyComparison, error) {
	debts, err := s.userDebts(userID)
	if err != nil {
		return nil, err
	}

	comparison := calc.CompareStrategies(debts, extraPayment, calc.DefaultMaxMonths, s.now())
	return &comparison, nil
}

func (s *strategyService) userDebts(userID string) ([]models.Debt, error) {
	var debts []models.Debt
	if err := s.db.Where("user_id = ?", userID).Find(&debts).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return debts, nil
}

// verifyPriorities checks that every prioritized debt exists and belongs
// to the user. Uniqueness is already guaranteed by validation.
func (s *strategyService) verifyPriorities(userID string, priorities []string) error {
	if len(priorities) == 0 {
		return nil
	}

	var count int64
	if err := s.db.Model(&models.Debt{}).
		Where("user_id = ? AND id IN ?", userID, priorities).
		Count(&count).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if count != int64(len(priorities)) {
		return apperrors.ErrUnknownDebtID
	}
	return nil
}

func (s *strategyService) invalidateProjection(strategyID string) {
	if err := s.cache.Delete(projectionKey(strategyID)); err != nil {
		logger.Get().Warnw("failed to invalidate projection cache", "strategy_id", strategyID, "error", err)
	}
}

func projectionKey(strategyID string) string {
	return "projection:" + strategyID
}
