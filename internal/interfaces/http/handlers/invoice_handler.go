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

// InvoiceHandler handles dashboard invoice CRUD
type InvoiceHandler struct {
	billingUsecase *usecases.BillingUsecase
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(billingUsecase *usecases.BillingUsecase) *InvoiceHandler {
	return &InvoiceHandler{billingUsecase: billingUsecase}
}

// List returns the caller's invoices
// GET /api/v1/invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	page := pagination(c)
	status := entities.InvoiceStatus(c.Query("status"))
	invoices, total, err := h.billingUsecase.ListInvoices(c.Request.Context(), p.UserID, status, page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"invoices": invoices,
		"meta":     utils.CalculateMeta(total, page.Page, page.Limit),
	})
}

// ListForUser returns any user's invoices to platform reviewers
// GET /api/v1/admin/users/:id/invoices
func (h *InvoiceHandler) ListForUser(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	page := pagination(c)
	status := entities.InvoiceStatus(c.Query("status"))
	invoices, total, err := h.billingUsecase.ListInvoicesForUser(c.Request.Context(), p, userID, status, page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"invoices": invoices,
		"meta":     utils.CalculateMeta(total, page.Page, page.Limit),
	})
}

// Get returns one invoice with its line items
// GET /api/v1/invoices/:id
func (h *InvoiceHandler) Get(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	invoice, err := h.billingUsecase.GetInvoice(c.Request.Context(), p.UserID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"invoice": invoice})
}

// Create adds an invoice; the amount is computed from its items
// POST /api/v1/invoices
func (h *InvoiceHandler) Create(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var input entities.InvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	invoice, err := h.billingUsecase.CreateInvoice(c.Request.Context(), p.UserID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"invoice": invoice})
}

// Update rewrites an invoice, replacing its items wholesale
// PUT /api/v1/invoices/:id
func (h *InvoiceHandler) Update(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input entities.InvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	invoice, err := h.billingUsecase.UpdateInvoice(c.Request.Context(), p.UserID, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"invoice": invoice})
}

// Delete removes an invoice and its items
// DELETE /api/v1/invoices/:id
func (h *InvoiceHandler) Delete(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.billingUsecase.DeleteInvoice(c.Request.Context(), p.UserID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "invoice deleted"})
}
