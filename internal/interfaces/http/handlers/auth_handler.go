package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"pigbank.backend/internal/domain/entities"
	domainerrors "pigbank.backend/internal/domain/errors"
	"pigbank.backend/internal/interfaces/http/middleware"
	"pigbank.backend/internal/interfaces/http/response"
	"pigbank.backend/internal/usecases"
	"pigbank.backend/pkg/crypto"
)

// SessionCookie carries the cookie attributes the auth handler stamps on
// login and clears on logout.
type SessionCookie struct {
	Name   string
	Domain string
	MaxAge int
	Secure bool
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authUsecase *usecases.AuthUsecase
	cookie      SessionCookie
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase *usecases.AuthUsecase, cookie SessionCookie) *AuthHandler {
	return &AuthHandler{authUsecase: authUsecase, cookie: cookie}
}

// Register handles user registration
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input entities.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	resp, err := h.authUsecase.Register(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setSessionCookie(c, resp.SessionID)
	response.Success(c, http.StatusCreated, resp)
}

// Login handles user login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	resp, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setSessionCookie(c, resp.SessionID)
	response.Success(c, http.StatusOK, resp)
}

// Logout drops the server-side session and clears the cookie
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID, _ := c.Cookie(h.cookie.Name)
	if err := h.authUsecase.Logout(c.Request.Context(), sessionID); err != nil {
		response.Error(c, err)
		return
	}

	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", h.cookie.Domain, h.cookie.Secure, true)
	response.Success(c, http.StatusOK, gin.H{"message": "logged out"})
}

// GetMe returns the authenticated user's profile
// GET /api/v1/auth/me
func (h *AuthHandler) GetMe(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	user, err := h.authUsecase.GetProfile(c.Request.Context(), p.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// UpdateMe updates the authenticated user's profile
// PUT /api/v1/auth/me
func (h *AuthHandler) UpdateMe(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	user, err := h.authUsecase.UpdateProfile(c.Request.Context(), p.UserID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": user})
}

// ChangePassword verifies the current password and sets a new one
// POST /api/v1/auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	p, ok := middleware.GetPrincipal(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}

	var input entities.ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.authUsecase.ChangePassword(c.Request.Context(), p.UserID, &input); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "password changed"})
}

// RefreshToken issues a new token pair from a refresh token in the body
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	pair, err := h.authUsecase.RefreshToken(c.Request.Context(), input.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, pair)
}

// OAuthRedirect sends the browser to the provider consent page
// GET /api/v1/auth/oauth/redirect
func (h *AuthHandler) OAuthRedirect(c *gin.Context) {
	state, err := crypto.GenerateSessionID()
	if err != nil {
		response.Error(c, err)
		return
	}

	// State round-trips through a short-lived cookie. The provider
	// redirects back cross-site, so it needs SameSite=None too.
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie("oauth_state", state, 600, "/", h.cookie.Domain, h.cookie.Secure, true)
	c.Redirect(http.StatusFound, h.authUsecase.OAuthURL(state))
}

// OAuthCallback completes the authorization-code flow
// GET /api/v1/auth/oauth/callback
func (h *AuthHandler) OAuthCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		response.Error(c, domainerrors.BadRequest("missing authorization code"))
		return
	}

	expectedState, err := c.Cookie("oauth_state")
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		response.Error(c, domainerrors.BadRequest("invalid oauth state"))
		return
	}
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie("oauth_state", "", -1, "/", h.cookie.Domain, h.cookie.Secure, true)

	resp, err := h.authUsecase.OAuthCallback(c.Request.Context(), code)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.setSessionCookie(c, resp.SessionID)
	response.Success(c, http.StatusOK, resp)
}

// setSessionCookie stamps the session cookie. The dashboard SPA is served
// from another origin, so the cookie must be SameSite=None or the browser
// drops it on cross-site requests.
func (h *AuthHandler) setSessionCookie(c *gin.Context, sessionID string) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(h.cookie.Name, sessionID, h.cookie.MaxAge, "/", h.cookie.Domain, h.cookie.Secure, true)
}
