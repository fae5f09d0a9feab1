package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"pigbank.backend/internal/domain/entities"
	domainerrors "pigbank.backend/internal/domain/errors"
	"pigbank.backend/internal/domain/repositories"
	"pigbank.backend/internal/infrastructure/oauth"
	"pigbank.backend/pkg/crypto"
	"pigbank.backend/pkg/jwt"
	"pigbank.backend/pkg/logger"
	"pigbank.backend/pkg/redis"
)

// SessionManager abstracts the encrypted session store
type SessionManager interface {
	CreateSession(ctx context.Context, sessionID string, data *redis.SessionData, expiration time.Duration) error
	GetSession(ctx context.Context, sessionID string) (*redis.SessionData, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// IdentityProvider abstracts the external OAuth provider
type IdentityProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (string, error)
	FetchUserInfo(ctx context.Context, accessToken string) (*oauth.UserInfo, error)
}

// AuthUsecase handles authentication business logic
type AuthUsecase struct {
	userRepo   repositories.UserRepository
	jwtService *jwt.JWTService
	sessions   SessionManager
	idp        IdentityProvider
	sessionTTL time.Duration
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	jwtService *jwt.JWTService,
	sessions SessionManager,
	idp IdentityProvider,
	sessionTTL time.Duration,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:   userRepo,
		jwtService: jwtService,
		sessions:   sessions,
		idp:        idp,
		sessionTTL: sessionTTL,
	}
}

// Register creates a new user account. New signups start as
// merchant_pending until their application is approved.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.RegisterInput) (*entities.AuthResponse, error) {
	_, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, domainerrors.Conflict("email already registered")
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Email:        input.Email,
		PasswordHash: null.StringFrom(passwordHash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         entities.UserRoleMerchantPending,
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info(ctx, "user registered", zap.String("user_id", user.ID.String()))
	return u.establishSession(ctx, user)
}

// Login authenticates a user with email and password
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthorized("invalid credentials")
		}
		return nil, err
	}

	if !user.PasswordHash.Valid || !crypto.CheckPassword(input.Password, user.PasswordHash.String) {
		return nil, domainerrors.Unauthorized("invalid credentials")
	}

	return u.establishSession(ctx, user)
}

// Logout removes the server-side session
func (u *AuthUsecase) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return u.sessions.DeleteSession(ctx, sessionID)
}

// GetProfile returns the user record behind a principal
func (u *AuthUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, userID)
}

// UpdateProfile updates name and avatar
func (u *AuthUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, input *entities.UpdateProfileInput) (*entities.User, error) {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	user.FirstName = input.FirstName
	user.LastName = input.LastName
	if input.ProfileImageURL != "" {
		user.ProfileImageURL = null.StringFrom(input.ProfileImageURL)
	}

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ChangePassword verifies the current password before setting a new one
func (u *AuthUsecase) ChangePassword(ctx context.Context, userID uuid.UUID, input *entities.ChangePasswordInput) error {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}

	if !user.PasswordHash.Valid || !crypto.CheckPassword(input.CurrentPassword, user.PasswordHash.String) {
		return domainerrors.Unauthorized("current password is incorrect")
	}

	newHash, err := crypto.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = null.StringFrom(newHash)
	return u.userRepo.Update(ctx, user)
}

// RefreshToken issues a new token pair from a valid refresh token
func (u *AuthUsecase) RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := u.jwtService.ValidateToken(refreshToken)
	if err != nil {
		if errors.Is(err, jwt.ErrExpiredToken) {
			return nil, domainerrors.NewAppError(401, domainerrors.CodeUnauthorized, "refresh token expired", domainerrors.ErrTokenExpired)
		}
		return nil, domainerrors.Unauthorized("invalid refresh token")
	}

	// Re-read the user so a role change invalidates stale claims
	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, domainerrors.Unauthorized("invalid refresh token")
	}

	return u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
}

// OAuthURL builds the provider consent URL for the given state
func (u *AuthUsecase) OAuthURL(state string) string {
	return u.idp.AuthCodeURL(state)
}

// OAuthCallback completes the authorization-code flow. The local user is
// keyed by the provider-supplied email and created on first login.
func (u *AuthUsecase) OAuthCallback(ctx context.Context, code string) (*entities.AuthResponse, error) {
	accessToken, err := u.idp.Exchange(ctx, code)
	if err != nil {
		return nil, err
	}

	info, err := u.idp.FetchUserInfo(ctx, accessToken)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.GetByEmail(ctx, info.Email)
	if err != nil {
		if !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
		user = &entities.User{
			Email:     info.Email,
			FirstName: info.FirstName,
			LastName:  info.LastName,
			Role:      entities.UserRoleMerchantPending,
		}
		if info.Picture != "" {
			user.ProfileImageURL = null.StringFrom(info.Picture)
		}
		if err := u.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
		logger.Info(ctx, "user created via oauth", zap.String("user_id", user.ID.String()))
	} else {
		changed := false
		if info.FirstName != "" && user.FirstName != info.FirstName {
			user.FirstName = info.FirstName
			changed = true
		}
		if info.LastName != "" && user.LastName != info.LastName {
			user.LastName = info.LastName
			changed = true
		}
		if info.Picture != "" && user.ProfileImageURL.String != info.Picture {
			user.ProfileImageURL = null.StringFrom(info.Picture)
			changed = true
		}
		if changed {
			if err := u.userRepo.Update(ctx, user); err != nil {
				return nil, err
			}
		}
	}

	return u.establishSession(ctx, user)
}

func (u *AuthUsecase) establishSession(ctx context.Context, user *entities.User) (*entities.AuthResponse, error) {
	sessionID, err := crypto.GenerateSessionID()
	if err != nil {
		return nil, err
	}

	data := &redis.SessionData{
		UserID: user.ID.String(),
		Email:  user.Email,
		Role:   string(user.Role),
	}
	if err := u.sessions.CreateSession(ctx, sessionID, data, u.sessionTTL); err != nil {
		return nil, err
	}

	pair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		SessionID:    sessionID,
		User:         user,
	}, nil
}
