package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"pigbank.backend/internal/domain/entities"
	domainerrors "pigbank.backend/internal/domain/errors"
	"pigbank.backend/internal/domain/repositories"
	"pigbank.backend/internal/interfaces/http/response"
	"pigbank.backend/internal/usecases"
	"pigbank.backend/pkg/utils"
)

// TransactionHandler handles dashboard transaction CRUD
type TransactionHandler struct {
	transactionUsecase *usecases.TransactionUsecase
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionUsecase *usecases.TransactionUsecase) *TransactionHandler {
	return &TransactionHandler{transactionUsecase: transactionUsecase}
}

// List returns the caller's transactions, filtered and paginated
// GET /api/v1/transactions
func (h *TransactionHandler) List(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	filter := repositories.TransactionFilter{
		Status:    entities.TransactionStatus(c.Query("status")),
		Method:    c.Query("method"),
		Search:    c.Query("search"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}
	page := pagination(c)

	result, err := h.transactionUsecase.List(c.Request.Context(), p.UserID, filter, page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"transactions": result.Items,
		"meta":         utils.CalculateMeta(result.TotalCount, page.Page, page.Limit),
	})
}

// ListForUser returns any user's transactions to platform reviewers
// GET /api/v1/admin/users/:id/transactions
func (h *TransactionHandler) ListForUser(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	filter := repositories.TransactionFilter{
		Status:    entities.TransactionStatus(c.Query("status")),
		Method:    c.Query("method"),
		Search:    c.Query("search"),
		StartDate: c.Query("startDate"),
		EndDate:   c.Query("endDate"),
	}
	page := pagination(c)

	result, err := h.transactionUsecase.ListForUser(c.Request.Context(), p, userID, filter, page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"transactions": result.Items,
		"meta":         utils.CalculateMeta(result.TotalCount, page.Page, page.Limit),
	})
}

// Get returns one transaction
// GET /api/v1/transactions/:id
func (h *TransactionHandler) Get(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	tx, err := h.transactionUsecase.Get(c.Request.Context(), p.UserID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"transaction": tx})
}

// Create records a transaction
// POST /api/v1/transactions
func (h *TransactionHandler) Create(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var input entities.TransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	tx, err := h.transactionUsecase.Create(c.Request.Context(), p.UserID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"transaction": tx})
}

// Update rewrites a transaction
// PUT /api/v1/transactions/:id
func (h *TransactionHandler) Update(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input entities.TransactionInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	tx, err := h.transactionUsecase.Update(c.Request.Context(), p.UserID, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"transaction": tx})
}

// Delete removes a transaction
// DELETE /api/v1/transactions/:id
func (h *TransactionHandler) Delete(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.transactionUsecase.Delete(c.Request.Context(), p.UserID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "transaction deleted"})
}
