package usecases_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"pigbank.backend/internal/domain/entities"
	domainerrors "pigbank.backend/internal/domain/errors"
	"pigbank.backend/internal/infrastructure/oauth"
	"pigbank.backend/internal/usecases"
	"pigbank.backend/pkg/crypto"
	"pigbank.backend/pkg/jwt"
)

func newAuthFixture() (*usecases.AuthUsecase, *MockUserRepository, *MockSessionManager, *MockIdentityProvider) {
	userRepo := new(MockUserRepository)
	sessions := new(MockSessionManager)
	idp := new(MockIdentityProvider)
	jwtSvc := jwt.NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)
	uc := usecases.NewAuthUsecase(userRepo, jwtSvc, sessions, idp, 24*time.Hour)
	return uc, userRepo, sessions, idp
}

func TestAuth_Register_NewSignupIsPending(t *testing.T) {
	uc, userRepo, sessions, _ := newAuthFixture()

	userRepo.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, domainerrors.ErrNotFound).Once()
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
		return u.Role == entities.UserRoleMerchantPending && u.PasswordHash.Valid
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entities.User).ID = uuid.New()
	}).Return(nil).Once()
	sessions.On("CreateSession", mock.Anything, mock.Anything, mock.Anything, 24*time.Hour).Return(nil).Once()

	resp, err := uc.Register(context.Background(), &entities.RegisterInput{
		Email: "new@example.com", Password: "hunter2hunter2", FirstName: "New", LastName: "User",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.SessionID)
	assert.Equal(t, entities.UserRoleMerchantPending, resp.User.Role)
}

func TestAuth_Register_DuplicateEmail(t *testing.T) {
	uc, userRepo, _, _ := newAuthFixture()

	userRepo.On("GetByEmail", mock.Anything, "taken@example.com").
		Return(&entities.User{ID: uuid.New()}, nil).Once()

	_, err := uc.Register(context.Background(), &entities.RegisterInput{
		Email: "taken@example.com", Password: "hunter2hunter2", FirstName: "A", LastName: "B",
	})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestAuth_Login_WrongPassword(t *testing.T) {
	uc, userRepo, _, _ := newAuthFixture()

	hash, err := crypto.HashPassword("correct-password")
	require.NoError(t, err)
	userRepo.On("GetByEmail", mock.Anything, "jo@example.com").Return(&entities.User{
		ID:           uuid.New(),
		Email:        "jo@example.com",
		PasswordHash: null.StringFrom(hash),
	}, nil).Once()

	_, err = uc.Login(context.Background(), &entities.LoginInput{Email: "jo@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestAuth_Login_UnknownEmailSameError(t *testing.T) {
	uc, userRepo, _, _ := newAuthFixture()

	userRepo.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, domainerrors.ErrNotFound).Once()

	_, err := uc.Login(context.Background(), &entities.LoginInput{Email: "ghost@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestAuth_Login_OAuthOnlyUserHasNoPassword(t *testing.T) {
	uc, userRepo, _, _ := newAuthFixture()

	userRepo.On("GetByEmail", mock.Anything, "oauth@example.com").Return(&entities.User{
		ID:    uuid.New(),
		Email: "oauth@example.com",
	}, nil).Once()

	_, err := uc.Login(context.Background(), &entities.LoginInput{Email: "oauth@example.com", Password: "anything"})
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestAuth_Login_Success(t *testing.T) {
	uc, userRepo, sessions, _ := newAuthFixture()

	hash, err := crypto.HashPassword("correct-password")
	require.NoError(t, err)
	user := &entities.User{
		ID:           uuid.New(),
		Email:        "jo@example.com",
		PasswordHash: null.StringFrom(hash),
		Role:         entities.UserRoleMerchant,
	}
	userRepo.On("GetByEmail", mock.Anything, "jo@example.com").Return(user, nil).Once()
	sessions.On("CreateSession", mock.Anything, mock.Anything, mock.Anything, 24*time.Hour).Return(nil).Once()

	resp, err := uc.Login(context.Background(), &entities.LoginInput{Email: "jo@example.com", Password: "correct-password"})
	require.NoError(t, err)
	assert.Len(t, resp.SessionID, 64)
	assert.Equal(t, user.ID, resp.User.ID)
}

func TestAuth_Logout_EmptySessionNoop(t *testing.T) {
	uc, _, sessions, _ := newAuthFixture()

	require.NoError(t, uc.Logout(context.Background(), ""))
	sessions.AssertNotCalled(t, "DeleteSession", mock.Anything, mock.Anything)
}

func TestAuth_RefreshToken_PicksUpRoleChange(t *testing.T) {
	uc, userRepo, _, _ := newAuthFixture()
	jwtSvc := jwt.NewJWTService("test-secret", 15*time.Minute, 24*time.Hour)

	userID := uuid.New()
	pair, err := jwtSvc.GenerateTokenPair(userID, "jo@example.com", string(entities.UserRoleMerchantPending))
	require.NoError(t, err)

	// The role changed since the refresh token was minted
	userRepo.On("GetByID", mock.Anything, userID).Return(&entities.User{
		ID:    userID,
		Email: "jo@example.com",
		Role:  entities.UserRoleMerchant,
	}, nil).Once()

	newPair, err := uc.RefreshToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)

	claims, err := jwtSvc.ValidateToken(newPair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, string(entities.UserRoleMerchant), claims.Role)
}

func TestAuth_RefreshToken_Garbage(t *testing.T) {
	uc, _, _, _ := newAuthFixture()

	_, err := uc.RefreshToken(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
}

func TestAuth_OAuthCallback_CreatesUserOnFirstLogin(t *testing.T) {
	uc, userRepo, sessions, idp := newAuthFixture()

	idp.On("Exchange", mock.Anything, "the-code").Return("tok-1", nil).Once()
	idp.On("FetchUserInfo", mock.Anything, "tok-1").Return(&oauth.UserInfo{
		Email: "sso@example.com", FirstName: "Sam", LastName: "Oh", Picture: "https://img/p.png",
	}, nil).Once()
	userRepo.On("GetByEmail", mock.Anything, "sso@example.com").Return(nil, domainerrors.ErrNotFound).Once()
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
		return u.Email == "sso@example.com" && u.Role == entities.UserRoleMerchantPending && !u.PasswordHash.Valid
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entities.User).ID = uuid.New()
	}).Return(nil).Once()
	sessions.On("CreateSession", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	resp, err := uc.OAuthCallback(context.Background(), "the-code")
	require.NoError(t, err)
	assert.Equal(t, "sso@example.com", resp.User.Email)
}

func TestAuth_OAuthCallback_ExistingUserProfileRefreshed(t *testing.T) {
	uc, userRepo, sessions, idp := newAuthFixture()
	existing := &entities.User{
		ID:        uuid.New(),
		Email:     "sso@example.com",
		FirstName: "Old",
		LastName:  "Name",
		Role:      entities.UserRoleMerchant,
	}

	idp.On("Exchange", mock.Anything, "the-code").Return("tok-1", nil).Once()
	idp.On("FetchUserInfo", mock.Anything, "tok-1").Return(&oauth.UserInfo{
		Email: "sso@example.com", FirstName: "Sam", LastName: "Oh",
	}, nil).Once()
	userRepo.On("GetByEmail", mock.Anything, "sso@example.com").Return(existing, nil).Once()
	userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
		return u.FirstName == "Sam" && u.LastName == "Oh"
	})).Return(nil).Once()
	sessions.On("CreateSession", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	_, err := uc.OAuthCallback(context.Background(), "the-code")
	require.NoError(t, err)
	userRepo.AssertExpectations(t)
}

func TestAuth_ChangePassword_WrongCurrent(t *testing.T) {
	uc, userRepo, _, _ := newAuthFixture()
	userID := uuid.New()

	hash, err := crypto.HashPassword("current-password")
	require.NoError(t, err)
	userRepo.On("GetByID", mock.Anything, userID).Return(&entities.User{
		ID:           userID,
		PasswordHash: null.StringFrom(hash),
	}, nil).Once()

	err = uc.ChangePassword(context.Background(), userID, &entities.ChangePasswordInput{
		CurrentPassword: "wrong-password", NewPassword: "new-password-1",
	})
	assert.ErrorIs(t, err, domainerrors.ErrUnauthorized)
	userRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}
