package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "pigbank.backend/internal/domain/errors"
	"pigbank.backend/internal/interfaces/http/response"
	"pigbank.backend/internal/usecases"
)

// DemoHandler seeds and tears down demo dashboard data for the caller.
// The same seeder backs the cmd/demo-seed CLI.
type DemoHandler struct {
	seedUsecase *usecases.SeedUsecase
}

// NewDemoHandler creates a new demo handler
func NewDemoHandler(seedUsecase *usecases.SeedUsecase) *DemoHandler {
	return &DemoHandler{seedUsecase: seedUsecase}
}

// Seed replaces the caller's dashboard data with generated fixtures
// POST /api/v1/demo/seed
func (h *DemoHandler) Seed(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var input struct {
		Months int `json:"months"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, domainerrors.BadRequest(err.Error()))
			return
		}
	}

	result, err := h.seedUsecase.Seed(c.Request.Context(), p.UserID, input.Months)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

// Teardown removes all seeded data and clears the demo flag
// DELETE /api/v1/demo/seed
func (h *DemoHandler) Teardown(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	if err := h.seedUsecase.Teardown(c.Request.Context(), p.UserID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "demo data removed"})
}
