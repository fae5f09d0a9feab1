package usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"pigbank.backend/internal/domain/entities"
	domainerrors "pigbank.backend/internal/domain/errors"
	"pigbank.backend/internal/usecases"
)

func newPlatformTeamFixture() (*usecases.PlatformTeamUsecase, *MockUserRepository, *MockUnitOfWork) {
	userRepo := new(MockUserRepository)
	uow := new(MockUnitOfWork)
	return usecases.NewPlatformTeamUsecase(userRepo, uow), userRepo, uow
}

func TestPlatformTeam_Invite_StaffForbidden(t *testing.T) {
	uc, _, _ := newPlatformTeamFixture()

	_, err := uc.Invite(context.Background(), staffPrincipal, &entities.PlatformInviteInput{
		Email: "x@pigbank.io", Role: entities.UserRolePigbankStaff,
	})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestPlatformTeam_Invite_RejectsMerchantRole(t *testing.T) {
	uc, _, _ := newPlatformTeamFixture()

	_, err := uc.Invite(context.Background(), adminPrincipal, &entities.PlatformInviteInput{
		Email: "x@pigbank.io", Role: entities.UserRoleMerchant,
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestPlatformTeam_Invite_Success(t *testing.T) {
	uc, userRepo, _ := newPlatformTeamFixture()

	userRepo.On("GetByEmail", mock.Anything, "ops@pigbank.io").Return(nil, domainerrors.ErrNotFound).Once()
	userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
		return u.Role == entities.UserRolePigbankStaff && u.PasswordHash.Valid
	})).Return(nil).Once()

	operator, err := uc.Invite(context.Background(), adminPrincipal, &entities.PlatformInviteInput{
		Email: "ops@pigbank.io", FirstName: "Ops", LastName: "Person", Role: entities.UserRolePigbankStaff,
	})
	require.NoError(t, err)
	assert.Equal(t, entities.UserRolePigbankStaff, operator.Role)
}

func TestPlatformTeam_ChangeRole_SelfRejected(t *testing.T) {
	uc, _, _ := newPlatformTeamFixture()

	_, err := uc.ChangeRole(context.Background(), adminPrincipal, adminPrincipal.UserID, entities.UserRolePigbankStaff)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestPlatformTeam_ChangeRole_LastAdminBlocked(t *testing.T) {
	uc, userRepo, uow := newPlatformTeamFixture()
	targetID := uuid.New()

	userRepo.On("GetByID", mock.Anything, targetID).
		Return(&entities.User{ID: targetID, Role: entities.UserRolePigbankAdmin}, nil).Once()
	uow.On("Do", mock.Anything, mock.Anything).Return(nil).Once()
	userRepo.On("CountByRole", mock.Anything, entities.UserRolePigbankAdmin).Return(int64(1), nil).Once()

	_, err := uc.ChangeRole(context.Background(), adminPrincipal, targetID, entities.UserRolePigbankStaff)
	assert.ErrorIs(t, err, domainerrors.ErrLastAdmin)
	userRepo.AssertNotCalled(t, "UpdateRole", mock.Anything, mock.Anything, mock.Anything)
}

func TestPlatformTeam_Remove_NonOperator404(t *testing.T) {
	uc, userRepo, _ := newPlatformTeamFixture()
	targetID := uuid.New()

	userRepo.On("GetByID", mock.Anything, targetID).
		Return(&entities.User{ID: targetID, Role: entities.UserRoleMerchant}, nil).Once()

	err := uc.Remove(context.Background(), adminPrincipal, targetID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestPlatformTeam_Remove_Staff(t *testing.T) {
	uc, userRepo, uow := newPlatformTeamFixture()
	targetID := uuid.New()

	userRepo.On("GetByID", mock.Anything, targetID).
		Return(&entities.User{ID: targetID, Role: entities.UserRolePigbankStaff}, nil).Once()
	uow.On("Do", mock.Anything, mock.Anything).Return(nil).Once()
	userRepo.On("SoftDelete", mock.Anything, targetID).Return(nil).Once()

	require.NoError(t, uc.Remove(context.Background(), adminPrincipal, targetID))
	userRepo.AssertNotCalled(t, "CountByRole", mock.Anything, mock.Anything)
}

func TestPlatformTeam_ListOperators(t *testing.T) {
	uc, userRepo, _ := newPlatformTeamFixture()

	userRepo.On("ListByRoles", mock.Anything, []entities.UserRole{
		entities.UserRolePigbankStaff,
		entities.UserRolePigbankAdmin,
	}).Return([]*entities.User{{ID: uuid.New()}}, nil).Once()

	operators, err := uc.ListOperators(context.Background(), staffPrincipal)
	require.NoError(t, err)
	assert.Len(t, operators, 1)
}
