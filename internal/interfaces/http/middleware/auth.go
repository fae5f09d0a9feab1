package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"pigbank.backend/internal/domain/entities"
	domainerrors "pigbank.backend/internal/domain/errors"
	"pigbank.backend/internal/interfaces/http/response"
	"pigbank.backend/pkg/jwt"
	"pigbank.backend/pkg/redis"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// PrincipalKey is the context key for the resolved principal
	PrincipalKey = "principal"
)

// SessionReader resolves a session id to its stored identity
type SessionReader interface {
	GetSession(ctx context.Context, sessionID string) (*redis.SessionData, error)
}

// RequireAuth resolves the caller identity and stores a Principal in the
// gin context. Browsers carry the session cookie; API clients send a
// bearer access token. The cookie wins when both are present.
func RequireAuth(jwtService *jwt.JWTService, sessions SessionReader, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if p, ok := principalFromCookie(c, sessions, cookieName); ok {
			c.Set(PrincipalKey, p)
			c.Next()
			return
		}

		authHeader := c.GetHeader(AuthorizationHeader)
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abort(c, domainerrors.Unauthorized("authentication required"))
			return
		}

		claims, err := jwtService.ValidateToken(strings.TrimPrefix(authHeader, BearerPrefix))
		if err != nil {
			if errors.Is(err, jwt.ErrExpiredToken) {
				abort(c, domainerrors.Unauthorized("token has expired"))
				return
			}
			abort(c, domainerrors.Unauthorized("invalid token"))
			return
		}

		c.Set(PrincipalKey, &entities.Principal{
			UserID: claims.UserID,
			Email:  claims.Email,
			Role:   entities.UserRole(claims.Role),
		})
		c.Next()
	}
}

func principalFromCookie(c *gin.Context, sessions SessionReader, cookieName string) (*entities.Principal, bool) {
	sessionID, err := c.Cookie(cookieName)
	if err != nil || sessionID == "" {
		return nil, false
	}

	data, err := sessions.GetSession(c.Request.Context(), sessionID)
	if err != nil || data == nil {
		return nil, false
	}

	userID, err := uuid.Parse(data.UserID)
	if err != nil {
		return nil, false
	}

	return &entities.Principal{
		UserID: userID,
		Email:  data.Email,
		Role:   entities.UserRole(data.Role),
	}, true
}

// GetPrincipal returns the principal set by RequireAuth
func GetPrincipal(c *gin.Context) (*entities.Principal, bool) {
	val, exists := c.Get(PrincipalKey)
	if !exists {
		return nil, false
	}
	p, ok := val.(*entities.Principal)
	return p, ok
}

// RequirePlatform gates a route group to platform staff and admins
func RequirePlatform() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			abort(c, domainerrors.Unauthorized("authentication required"))
			return
		}
		if !p.Role.IsPlatform() {
			abort(c, domainerrors.Forbidden("platform access required"))
			return
		}
		c.Next()
	}
}

// RequireAdmin gates a route group to platform admins
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := GetPrincipal(c)
		if !ok {
			abort(c, domainerrors.Unauthorized("authentication required"))
			return
		}
		if !p.Role.IsAdmin() {
			abort(c, domainerrors.Forbidden("admin access required"))
			return
		}
		c.Next()
	}
}

func abort(c *gin.Context, err error) {
	response.Error(c, err)
	c.Abort()
}
