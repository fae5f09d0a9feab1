package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"pigbank.backend/internal/domain/entities"
	domainerrors "pigbank.backend/internal/domain/errors"
	"pigbank.backend/internal/interfaces/http/middleware"
	"pigbank.backend/internal/interfaces/http/response"
	"pigbank.backend/pkg/utils"
)

// requirePrincipal fetches the authenticated principal or writes a 401.
// Routes behind RequireAuth always have one; this covers miswired routes.
func requirePrincipal(c *gin.Context) (*entities.Principal, bool) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
	}
	return p, ok
}

// pathID parses the named path parameter as a UUID or writes a 400
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}

// pagination reads page/limit query params with defaults
func pagination(c *gin.Context) utils.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	return utils.GetPaginationParams(page, limit)
}
