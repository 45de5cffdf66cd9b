package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "paydown/internal/errors"
	"paydown/internal/pagination"
	"paydown/internal/services"
	"paydown/internal/validation"
)

// StrategyHandler handles strategy-related requests.
type StrategyHandler struct {
	strategyService services.StrategyServicer
	auditService    services.AuditServicer
	schemas         *validation.Schemas
}

// NewStrategyHandler creates a new StrategyHandler.
func NewStrategyHandler(strategyService services.StrategyServicer, auditService services.AuditServicer, schemas *validation.Schemas) *StrategyHandler {
	return &StrategyHandler{strategyService: strategyService, auditService: auditService, schemas: schemas}
}

// CreateStrategy handles the creation of a new payoff strategy.
// @Summary     Create a strategy
// @Description Create a new payoff strategy for the authenticated user
// @Tags        strategies
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body validation.CreateStrategyInput true "Strategy details"
// @Success     201 {object} models.Strategy "Strategy created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /strategies [post]
func (h *StrategyHandler) CreateStrategy(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var in validation.CreateStrategyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result := h.schemas.ValidateCreateStrategy(in)
	if !result.Valid {
		respondWithValidation(c, result.Error, result.Issues)
		return
	}

	strategy, err := h.strategyService.CreateStrategy(userID, result.Data)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_STRATEGY", "strategy", strategy.ID, c.ClientIP(),
		map[string]interface{}{"name": strategy.Name, "type": strategy.Type})

	c.JSON(http.StatusCreated, gin.H{"strategy": strategy})
}

// GetStrategies handles listing strategies for the authenticated user.
// @Summary     Get strategies
// @Description Get a paginated list of strategies for the authenticated user
// @Tags        strategies
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int false "Page number (default 1)"
// @Param       page_size query int false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Strategy] "Paginated strategies"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /strategies [get]
func (h *StrategyHandler) GetStrategies(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.strategyService.GetUserStrategies(userID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetStrategy handles retrieving a specific strategy.
// @Summary     Get strategy by ID
// @Description Get a specific strategy by ID
// @Tags        strategies
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Strategy ID"
// @Success     200 {object} models.Strategy "Strategy details"
// @Failure     400 {object} ErrorResponse "Invalid strategy ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Strategy not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /strategies/{id} [get]
func (h *StrategyHandler) GetStrategy(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	strategyID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	strategy, err := h.strategyService.GetStrategyByID(userID, strategyID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"strategy": strategy})
}

// UpdateStrategy handles updating a strategy.
// @Summary     Update a strategy
// @Description Update an existing strategy's fields
// @Tags        strategies
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string                         true "Strategy ID"
// @Param       request body validation.UpdateStrategyInput true "Fields to update"
// @Success     200 {object} models.Strategy "Strategy updated"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Strategy not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /strategies/{id} [put]
func (h *StrategyHandler) UpdateStrategy(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	strategyID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var in validation.UpdateStrategyInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result := h.schemas.ValidateUpdateStrategy(in)
	if !result.Valid {
		respondWithValidation(c, result.Error, result.Issues)
		return
	}

	strategy, err := h.strategyService.UpdateStrategy(userID, strategyID, result.Data)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_STRATEGY", "strategy", strategy.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"strategy": strategy})
}

// DeleteStrategy handles deleting a strategy.
// @Summary     Delete a strategy
// @Description Soft-delete a strategy
// @Tags        strategies
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Strategy ID"
// @Success     200 {object} map[string]string "Strategy deleted"
// @Failure     400 {object} ErrorResponse "Invalid strategy ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Strategy not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /strategies/{id} [delete]
func (h *StrategyHandler) DeleteStrategy(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	strategyID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.strategyService.DeleteStrategy(userID, strategyID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_STRATEGY", "strategy", strategyID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Strategy deleted"})
}

// ActivateStrategy handles marking one strategy as active.
// @Summary     Activate a strategy
// @Description Mark a strategy active, deactivating any other active strategy
// @Tags        strategies
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Strategy ID"
// @Success     200 {object} models.Strategy "Strategy activated"
// @Failure     400 {object} ErrorResponse "Invalid strategy ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Strategy not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /strategies/{id}/activate [post]
func (h *StrategyHandler) ActivateStrategy(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	strategyID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	strategy, err := h.strategyService.ActivateStrategy(userID, strategyID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "ACTIVATE_STRATEGY", "strategy", strategy.ID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"strategy": strategy})
}

// GetProjection handles computing the month-by-month payoff projection.
// @Summary     Get strategy projection
// @Description Simulate the payoff under a strategy and return the month-by-month schedule
// @Tags        strategies
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Strategy ID"
// @Success     200 {object} calc.Projection "Payoff projection"
// @Failure     400 {object} ErrorResponse "Invalid strategy ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Strategy not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /strategies/{id}/projection [get]
func (h *StrategyHandler) GetProjection(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	strategyID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	projection, err := h.strategyService.GetProjection(userID, strategyID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"projection": projection})
}

// CompareStrategies handles the avalanche-versus-snowball comparison.
// @Summary     Compare strategies
// @Description Project avalanche and snowball side by side over the user's active debts
// @Tags        strategies
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       extra_payment query number false "Extra monthly payment beyond minimums (default 0)"
// @Success     200 {object} calc.StrategyComparison "Side-by-side comparison"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /strategies/compare [get]
func (h *StrategyHandler) CompareStrategies(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var extraPayment float64
	if v := c.Query("extra_payment"); v != "" {
		extraPayment, err = strconv.ParseFloat(v, 64)
		if err != nil || extraPayment < 0 {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "extra_payment must be a non-negative number"))
			return
		}
	}

	comparison, err := h.strategyService.CompareStrategies(userID, extraPayment)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"comparison": comparison})
}
