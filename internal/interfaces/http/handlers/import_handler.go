package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"pigbank.backend/internal/domain/entities"
	domainerrors "pigbank.backend/internal/domain/errors"
	"pigbank.backend/internal/interfaces/http/response"
	"pigbank.backend/internal/usecases"
)

// ImportHandler handles Bankful transaction imports
type ImportHandler struct {
	importUsecase *usecases.ImportUsecase
}

// NewImportHandler creates a new import handler
func NewImportHandler(importUsecase *usecases.ImportUsecase) *ImportHandler {
	return &ImportHandler{importUsecase: importUsecase}
}

// Run pulls the processor report and imports new transactions
// POST /api/v1/imports/bankful
func (h *ImportHandler) Run(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var input entities.ImportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	result, err := h.importUsecase.Run(c.Request.Context(), p, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, result)
}

// VerifyCredentials checks processor credentials without importing
// POST /api/v1/imports/bankful/verify
func (h *ImportHandler) VerifyCredentials(c *gin.Context) {
	if _, ok := requirePrincipal(c); !ok {
		return
	}

	var input entities.ImportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.importUsecase.VerifyCredentials(c.Request.Context(), &input); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "credentials verified"})
}

// History lists the caller's recent import attempts
// GET /api/v1/imports/bankful
func (h *ImportHandler) History(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	imports, err := h.importUsecase.History(c.Request.Context(), p, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"imports": imports})
}
