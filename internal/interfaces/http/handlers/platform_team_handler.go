package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"pigbank.backend/internal/domain/entities"
	domainerrors "pigbank.backend/internal/domain/errors"
	"pigbank.backend/internal/interfaces/http/response"
	"pigbank.backend/internal/usecases"
)

// PlatformTeamHandler handles management of platform operators
type PlatformTeamHandler struct {
	platformTeamUsecase *usecases.PlatformTeamUsecase
}

// NewPlatformTeamHandler creates a new platform team handler
func NewPlatformTeamHandler(platformTeamUsecase *usecases.PlatformTeamUsecase) *PlatformTeamHandler {
	return &PlatformTeamHandler{platformTeamUsecase: platformTeamUsecase}
}

// List returns all platform staff and admins
// GET /api/v1/admin/operators
func (h *PlatformTeamHandler) List(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	operators, err := h.platformTeamUsecase.ListOperators(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"operators": operators})
}

// Invite creates a platform operator account
// POST /api/v1/admin/operators
func (h *PlatformTeamHandler) Invite(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var input entities.PlatformInviteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	user, err := h.platformTeamUsecase.Invite(c.Request.Context(), p, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"user": user})
}

// ChangeRole switches an operator between staff and admin
// PUT /api/v1/admin/operators/:id/role
func (h *PlatformTeamHandler) ChangeRole(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input struct {
		Role entities.UserRole `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	user, err := h.platformTeamUsecase.ChangeRole(c.Request.Context(), p, userID, input.Role)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// Remove soft-deletes an operator account
// DELETE /api/v1/admin/operators/:id
func (h *PlatformTeamHandler) Remove(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.platformTeamUsecase.Remove(c.Request.Context(), p, userID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "operator removed"})
}
