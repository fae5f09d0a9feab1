package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"pigbank.backend/internal/domain/entities"
	domainerrors "pigbank.backend/internal/domain/errors"
	"pigbank.backend/internal/interfaces/http/response"
	"pigbank.backend/internal/usecases"
)

// SettingsHandler handles checkout settings and the Wix integration record
type SettingsHandler struct {
	settingsUsecase *usecases.SettingsUsecase
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsUsecase *usecases.SettingsUsecase) *SettingsHandler {
	return &SettingsHandler{settingsUsecase: settingsUsecase}
}

// GetCheckout returns the merchant's hosted checkout configuration,
// falling back to defaults before the first write
// GET /api/v1/settings/checkout
func (h *SettingsHandler) GetCheckout(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	settings, err := h.settingsUsecase.GetCheckoutSettings(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"settings": settings})
}

// UpdateCheckout upserts the checkout configuration
// PUT /api/v1/settings/checkout
func (h *SettingsHandler) UpdateCheckout(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var input entities.CheckoutSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	settings, err := h.settingsUsecase.UpdateCheckoutSettings(c.Request.Context(), p, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"settings": settings})
}

// GetWix returns the caller's Wix storefront linkage
// GET /api/v1/settings/wix
func (h *SettingsHandler) GetWix(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	integration, err := h.settingsUsecase.GetWixIntegration(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"integration": integration})
}

// UpsertWix creates or updates the Wix linkage
// PUT /api/v1/settings/wix
func (h *SettingsHandler) UpsertWix(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var input entities.WixIntegrationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	integration, err := h.settingsUsecase.UpsertWixIntegration(c.Request.Context(), p, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"integration": integration})
}

// DeleteWix removes the Wix linkage
// DELETE /api/v1/settings/wix
func (h *SettingsHandler) DeleteWix(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	if err := h.settingsUsecase.DeleteWixIntegration(c.Request.Context(), p); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "integration removed"})
}
