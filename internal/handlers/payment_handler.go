package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "paydown/internal/errors"
	"paydown/internal/pagination"
	"paydown/internal/services"
	"paydown/internal/uuid"
	"paydown/internal/validation"
)

// PaymentHandler handles payment-related requests.
type PaymentHandler struct {
	paymentService services.PaymentServicer
	auditService   services.AuditServicer
	schemas        *validation.Schemas
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(paymentService services.PaymentServicer, auditService services.AuditServicer, schemas *validation.Schemas) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, auditService: auditService, schemas: schemas}
}

// LogPayment handles recording a payment against a debt.
// @Summary     Log a payment
// @Description Record a payment against a debt, splitting it into interest and principal and reducing the balance
// @Tags        payments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body validation.CreatePaymentInput true "Payment details"
// @Success     201 {object} models.Payment "Payment recorded"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /payments [post]
func (h *PaymentHandler) LogPayment(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var in validation.CreatePaymentInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result := h.schemas.ValidateCreatePayment(in)
	if !result.Valid {
		respondWithValidation(c, result.Error, result.Issues)
		return
	}

	payment, err := h.paymentService.LogPayment(userID, result.Data)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "LOG_PAYMENT", "payment", payment.ID, c.ClientIP(),
		map[string]interface{}{"debt_id": payment.DebtID, "amount": payment.Amount})

	c.JSON(http.StatusCreated, gin.H{"payment": payment})
}

// GetPayments handles listing payments for the authenticated user.
// @Summary     Get payments
// @Description Get a paginated list of payments, optionally filtered by debt
// @Tags        payments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       debt_id   query string false "Filter by debt ID"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Payment] "Paginated payments"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /payments [get]
func (h *PaymentHandler) GetPayments(c *gin.Context) {
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

	var debtID *string
	if v := c.Query("debt_id"); v != "" {
		if !uuid.IsValid(v) {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid debt_id"))
			return
		}
		debtID = &v
	}

	result, err := h.paymentService.GetUserPayments(userID, page, debtID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetDebtPayments handles listing payments for a specific debt.
// @Summary     Get payments for a debt
// @Description Get a paginated list of payments recorded against one debt
// @Tags        payments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  string true  "Debt ID"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.Payment] "Paginated payments"
// @Failure     400 {object} ErrorResponse "Invalid debt ID"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Debt not found"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /debts/{id}/payments [get]
func (h *PaymentHandler) GetDebtPayments(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	debtID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	result, err := h.paymentService.GetDebtPayments(userID, debtID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetPaymentSummary handles aggregating payment totals.
// @Summary     Get payment summary
// @Description Get payment count and totals, optionally scoped to one debt
// @Tags        payments
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       debt_id query string false "Scope to a single debt"
// @Success     200 {object} calc.PaymentSummary "Payment summary"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /payments/summary [get]
func (h *PaymentHandler) GetPaymentSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var debtID *string
	if v := c.Query("debt_id"); v != "" {
		if !uuid.IsValid(v) {
			respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid debt_id"))
			return
		}
		debtID = &v
	}

	summary, err := h.paymentService.GetPaymentSummary(userID, debtID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": summary})
}
