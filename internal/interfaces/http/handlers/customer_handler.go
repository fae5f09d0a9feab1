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

// CustomerHandler handles dashboard customer CRUD
type CustomerHandler struct {
	billingUsecase *usecases.BillingUsecase
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(billingUsecase *usecases.BillingUsecase) *CustomerHandler {
	return &CustomerHandler{billingUsecase: billingUsecase}
}

// List returns the caller's customers
// GET /api/v1/customers
func (h *CustomerHandler) List(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	page := pagination(c)
	customers, total, err := h.billingUsecase.ListCustomers(c.Request.Context(), p.UserID, c.Query("search"), page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"customers": customers,
		"meta":      utils.CalculateMeta(total, page.Page, page.Limit),
	})
}

// ListForUser returns any user's customers to platform reviewers
// GET /api/v1/admin/users/:id/customers
func (h *CustomerHandler) ListForUser(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	page := pagination(c)
	customers, total, err := h.billingUsecase.ListCustomersForUser(c.Request.Context(), p, userID, c.Query("search"), page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{
		"customers": customers,
		"meta":      utils.CalculateMeta(total, page.Page, page.Limit),
	})
}

// Get returns one customer
// GET /api/v1/customers/:id
func (h *CustomerHandler) Get(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	customer, err := h.billingUsecase.GetCustomer(c.Request.Context(), p.UserID, id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"customer": customer})
}

// Create adds a customer
// POST /api/v1/customers
func (h *CustomerHandler) Create(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var input entities.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	customer, err := h.billingUsecase.CreateCustomer(c.Request.Context(), p.UserID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"customer": customer})
}

// Update rewrites a customer
// PUT /api/v1/customers/:id
func (h *CustomerHandler) Update(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input entities.CustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	customer, err := h.billingUsecase.UpdateCustomer(c.Request.Context(), p.UserID, id, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"customer": customer})
}

// Delete removes a customer
// DELETE /api/v1/customers/:id
func (h *CustomerHandler) Delete(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.billingUsecase.DeleteCustomer(c.Request.Context(), p.UserID, id); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "customer deleted"})
}
