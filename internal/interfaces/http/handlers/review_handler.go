package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"pigbank.backend/internal/domain/entities"
	domainerrors "pigbank.backend/internal/domain/errors"
	"pigbank.backend/internal/interfaces/http/response"
	"pigbank.backend/internal/usecases"
	"pigbank.backend/pkg/utils"
)

// ReviewHandler handles the staff/admin merchant review console
type ReviewHandler struct {
	reviewUsecase *usecases.ReviewUsecase
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewUsecase *usecases.ReviewUsecase) *ReviewHandler {
	return &ReviewHandler{reviewUsecase: reviewUsecase}
}

// List returns merchants filtered by status and search term
// GET /api/v1/admin/merchants
func (h *ReviewHandler) List(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	status := entities.MerchantStatus(c.Query("status"))
	search := c.Query("search")
	page := pagination(c)

	merchants, total, err := h.reviewUsecase.List(c.Request.Context(), p, status, search, page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"merchants": merchants,
		"meta":      utils.CalculateMeta(total, page.Page, page.Limit),
	})
}

// Counts returns merchant counts per status for the console sidebar
// GET /api/v1/admin/merchants/counts
func (h *ReviewHandler) Counts(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	counts, err := h.reviewUsecase.CountByStatus(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"counts": counts})
}

// Detail returns the full review view of one merchant
// GET /api/v1/admin/merchants/:id
func (h *ReviewHandler) Detail(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	merchantID, ok := pathID(c, "id")
	if !ok {
		return
	}

	detail, err := h.reviewUsecase.Detail(c.Request.Context(), p, merchantID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, detail)
}

// Approve approves a submitted application
// POST /api/v1/admin/merchants/:id/approve
func (h *ReviewHandler) Approve(c *gin.Context) {
	h.action(c, func(p *entities.Principal, id uuid.UUID) (*entities.Merchant, error) {
		return h.reviewUsecase.Approve(c.Request.Context(), p, id)
	})
}

// Reject rejects an application with an optional reason
// POST /api/v1/admin/merchants/:id/reject
func (h *ReviewHandler) Reject(c *gin.Context) {
	var input entities.ReviewActionInput
	_ = c.ShouldBindJSON(&input) // reason is optional

	h.action(c, func(p *entities.Principal, id uuid.UUID) (*entities.Merchant, error) {
		return h.reviewUsecase.Reject(c.Request.Context(), p, id, input.Reason)
	})
}

// RequestAction sends the application back to the merchant
// POST /api/v1/admin/merchants/:id/request-action
func (h *ReviewHandler) RequestAction(c *gin.Context) {
	var input entities.ReviewActionInput
	_ = c.ShouldBindJSON(&input)

	h.action(c, func(p *entities.Principal, id uuid.UUID) (*entities.Merchant, error) {
		return h.reviewUsecase.RequestAction(c.Request.Context(), p, id, input.Reason)
	})
}

// StartReview marks an application as under review
// POST /api/v1/admin/merchants/:id/start-review
func (h *ReviewHandler) StartReview(c *gin.Context) {
	h.action(c, func(p *entities.Principal, id uuid.UUID) (*entities.Merchant, error) {
		return h.reviewUsecase.StartReview(c.Request.Context(), p, id)
	})
}

// Suspend suspends an approved merchant (admin override)
// POST /api/v1/admin/merchants/:id/suspend
func (h *ReviewHandler) Suspend(c *gin.Context) {
	var input entities.ReviewActionInput
	_ = c.ShouldBindJSON(&input)

	h.action(c, func(p *entities.Principal, id uuid.UUID) (*entities.Merchant, error) {
		return h.reviewUsecase.Suspend(c.Request.Context(), p, id, input.Reason)
	})
}

// Delete removes a merchant and everything attached to it
// DELETE /api/v1/admin/merchants/:id
func (h *ReviewHandler) Delete(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	merchantID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.reviewUsecase.Delete(c.Request.Context(), p, merchantID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "merchant deleted"})
}

// AddNote appends a review note
// POST /api/v1/admin/merchants/:id/notes
func (h *ReviewHandler) AddNote(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	merchantID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input entities.NoteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	note, err := h.reviewUsecase.AddNote(c.Request.Context(), p, merchantID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"note": note})
}

// ListNotes returns review notes, newest first
// GET /api/v1/admin/merchants/:id/notes
func (h *ReviewHandler) ListNotes(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	merchantID, ok := pathID(c, "id")
	if !ok {
		return
	}

	notes, err := h.reviewUsecase.ListNotes(c.Request.Context(), p, merchantID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"notes": notes})
}

// ListEvents returns the audit trail, newest first
// GET /api/v1/admin/merchants/:id/events
func (h *ReviewHandler) ListEvents(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	merchantID, ok := pathID(c, "id")
	if !ok {
		return
	}

	events, err := h.reviewUsecase.ListEvents(c.Request.Context(), p, merchantID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"events": events})
}

func (h *ReviewHandler) action(c *gin.Context, fn func(p *entities.Principal, id uuid.UUID) (*entities.Merchant, error)) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	merchantID, ok := pathID(c, "id")
	if !ok {
		return
	}

	merchant, err := fn(p, merchantID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"merchant": merchant})
}
