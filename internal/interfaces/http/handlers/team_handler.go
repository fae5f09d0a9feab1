package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"pigbank.backend/internal/domain/entities"
	domainerrors "pigbank.backend/internal/domain/errors"
	"pigbank.backend/internal/interfaces/http/response"
	"pigbank.backend/internal/usecases"
)

// TeamHandler handles merchant-scoped team management
type TeamHandler struct {
	teamUsecase *usecases.TeamUsecase
}

// NewTeamHandler creates a new team handler
func NewTeamHandler(teamUsecase *usecases.TeamUsecase) *TeamHandler {
	return &TeamHandler{teamUsecase: teamUsecase}
}

// List returns the caller's merchant team roster
// GET /api/v1/team
func (h *TeamHandler) List(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	members, err := h.teamUsecase.ListTeam(c.Request.Context(), p)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"members": members})
}

// Invite attaches an existing user by email or creates a placeholder one
// POST /api/v1/team/invite
func (h *TeamHandler) Invite(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var input entities.InviteInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	resp, err := h.teamUsecase.Invite(c.Request.Context(), p, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp)
}

// ChangeRole changes a member's merchant role
// PUT /api/v1/team/:id/role
func (h *TeamHandler) ChangeRole(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	membershipID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input entities.ChangeRoleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	membership, err := h.teamUsecase.ChangeRole(c.Request.Context(), p, membershipID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"membership": membership})
}

// Remove deletes a membership from the team
// DELETE /api/v1/team/:id
func (h *TeamHandler) Remove(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	membershipID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.teamUsecase.Remove(c.Request.Context(), p, membershipID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "member removed"})
}
