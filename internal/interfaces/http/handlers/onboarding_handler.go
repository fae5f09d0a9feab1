package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"pigbank.backend/internal/domain/entities"
	domainerrors "pigbank.backend/internal/domain/errors"
	"pigbank.backend/internal/interfaces/http/response"
	"pigbank.backend/internal/usecases"
)

// OnboardingHandler handles the merchant application endpoints
type OnboardingHandler struct {
	onboardingUsecase *usecases.OnboardingUsecase
}

// NewOnboardingHandler creates a new onboarding handler
func NewOnboardingHandler(onboardingUsecase *usecases.OnboardingUsecase) *OnboardingHandler {
	return &OnboardingHandler{onboardingUsecase: onboardingUsecase}
}

// GetApplication returns the caller's draft, creating it on first load
// GET /api/v1/onboarding/application
func (h *OnboardingHandler) GetApplication(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	merchant, err := h.onboardingUsecase.GetDraft(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"merchant": merchant})
}

// UpdateApplication applies a partial auto-save write to the draft
// PUT /api/v1/onboarding/application
func (h *OnboardingHandler) UpdateApplication(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var input entities.MerchantDraftInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	merchant, err := h.onboardingUsecase.UpdateDraft(c.Request.Context(), p, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"merchant": merchant})
}

// Submit locks the application for review
// POST /api/v1/onboarding/submit
func (h *OnboardingHandler) Submit(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	merchant, err := h.onboardingUsecase.Submit(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"merchant": merchant})
}

// ListOwners returns the application's beneficial owners
// GET /api/v1/onboarding/owners
func (h *OnboardingHandler) ListOwners(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	owners, err := h.onboardingUsecase.ListOwners(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"owners": owners})
}

// AddOwner adds a beneficial owner to the draft
// POST /api/v1/onboarding/owners
func (h *OnboardingHandler) AddOwner(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var input entities.OwnerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	owner, err := h.onboardingUsecase.AddOwner(c.Request.Context(), p, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"owner": owner})
}

// UpdateOwner updates a beneficial owner on the draft
// PUT /api/v1/onboarding/owners/:id
func (h *OnboardingHandler) UpdateOwner(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	ownerID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input entities.OwnerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	owner, err := h.onboardingUsecase.UpdateOwner(c.Request.Context(), p, ownerID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"owner": owner})
}

// RemoveOwner deletes a beneficial owner from the draft
// DELETE /api/v1/onboarding/owners/:id
func (h *OnboardingHandler) RemoveOwner(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	ownerID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.onboardingUsecase.RemoveOwner(c.Request.Context(), p, ownerID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "owner removed"})
}
