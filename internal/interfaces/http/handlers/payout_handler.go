package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"pigbank.backend/internal/domain/entities"
	domainerrors "pigbank.backend/internal/domain/errors"
	"pigbank.backend/internal/interfaces/http/response"
	"pigbank.backend/internal/usecases"
	"pigbank.backend/pkg/utils"
)

// PayoutHandler handles dashboard payout CRUD
type PayoutHandler struct {
	billingUsecase *usecases.BillingUsecase
}

// NewPayoutHandler creates a new payout handler
func NewPayoutHandler(billingUsecase *usecases.BillingUsecase) *PayoutHandler {
	return &PayoutHandler{billingUsecase: billingUsecase}
}

// List returns the caller's payouts
// GET /api/v1/payouts
func (h *PayoutHandler) List(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	page := pagination(c)
	status := entities.PayoutStatus(c.Query("status"))
	payouts, total, err := h.billingUsecase.ListPayouts(c.Request.Context(), p.UserID, status, page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"payouts": payouts,
		"meta":    utils.CalculateMeta(total, page.Page, page.Limit),
	})
}

// ListForUser returns any user's payouts to platform reviewers
// GET /api/v1/admin/users/:id/payouts
func (h *PayoutHandler) ListForUser(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	page := pagination(c)
	status := entities.PayoutStatus(c.Query("status"))
	payouts, total, err := h.billingUsecase.ListPayoutsForUser(c.Request.Context(), p, userID, status, page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"payouts": payouts,
		"meta":    utils.CalculateMeta(total, page.Page, page.Limit),
	})
}

// Get returns one payout
// GET /api/v1/payouts/:id
func (h *PayoutHandler) Get(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	payout, err := h.billingUsecase.GetPayout(c.Request.Context(), p.UserID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payout": payout})
}

// Create records a payout
// POST /api/v1/payouts
func (h *PayoutHandler) Create(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var input entities.PayoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	payout, err := h.billingUsecase.CreatePayout(c.Request.Context(), p.UserID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"payout": payout})
}

// Update rewrites a payout
// PUT /api/v1/payouts/:id
func (h *PayoutHandler) Update(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input entities.PayoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	payout, err := h.billingUsecase.UpdatePayout(c.Request.Context(), p.UserID, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payout": payout})
}

// Delete removes a payout
// DELETE /api/v1/payouts/:id
func (h *PayoutHandler) Delete(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.billingUsecase.DeletePayout(c.Request.Context(), p.UserID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "payout deleted"})
}
