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

type teamFixture struct {
	uc           *usecases.TeamUsecase
	memberRepo   *MockMembershipRepository
	userRepo     *MockUserRepository
	merchantRepo *MockMerchantRepository
	uow          *MockUnitOfWork
}

func newTeamFixture() *teamFixture {
	f := &teamFixture{
		memberRepo:   new(MockMembershipRepository),
		userRepo:     new(MockUserRepository),
		merchantRepo: new(MockMerchantRepository),
		uow:          new(MockUnitOfWork),
	}
	f.uc = usecases.NewTeamUsecase(f.memberRepo, f.userRepo, f.merchantRepo, f.uow)
	return f
}

func membership(merchantID, userID uuid.UUID, role entities.MerchantRole) *entities.Membership {
	return &entities.Membership{
		ID:           uuid.New(),
		MerchantID:   merchantID,
		UserID:       userID,
		MerchantRole: role,
	}
}

func TestTeam_Remove_StaffActorForbiddenBeforeTargetLookup(t *testing.T) {
	f := newTeamFixture()
	merchantID := uuid.New()
	actor := &entities.Principal{UserID: uuid.New(), Role: entities.UserRoleMerchant}

	f.memberRepo.On("GetByUser", mock.Anything, actor.UserID).
		Return(membership(merchantID, actor.UserID, entities.MerchantRoleStaff), nil).Once()

	// A staff actor gets 403 even for a membership id that does not exist
	err := f.uc.Remove(context.Background(), actor, uuid.New())
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	f.memberRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestTeam_Remove_MissingTarget404(t *testing.T) {
	f := newTeamFixture()
	merchantID := uuid.New()
	actor := &entities.Principal{UserID: uuid.New(), Role: entities.UserRoleMerchant}
	missingID := uuid.New()

	f.memberRepo.On("GetByUser", mock.Anything, actor.UserID).
		Return(membership(merchantID, actor.UserID, entities.MerchantRoleOwner), nil).Once()
	f.memberRepo.On("GetByID", mock.Anything, missingID).Return(nil, domainerrors.ErrNotFound).Once()

	err := f.uc.Remove(context.Background(), actor, missingID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestTeam_Remove_OtherMerchantTarget404(t *testing.T) {
	f := newTeamFixture()
	actor := &entities.Principal{UserID: uuid.New(), Role: entities.UserRoleMerchant}
	target := membership(uuid.New(), uuid.New(), entities.MerchantRoleStaff)

	f.memberRepo.On("GetByUser", mock.Anything, actor.UserID).
		Return(membership(uuid.New(), actor.UserID, entities.MerchantRoleOwner), nil).Once()
	f.memberRepo.On("GetByID", mock.Anything, target.ID).Return(target, nil).Once()

	err := f.uc.Remove(context.Background(), actor, target.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestTeam_Remove_SelfRejected(t *testing.T) {
	f := newTeamFixture()
	merchantID := uuid.New()
	actor := &entities.Principal{UserID: uuid.New(), Role: entities.UserRoleMerchant}
	self := membership(merchantID, actor.UserID, entities.MerchantRoleOwner)

	f.memberRepo.On("GetByUser", mock.Anything, actor.UserID).Return(self, nil).Once()
	f.memberRepo.On("GetByID", mock.Anything, self.ID).Return(self, nil).Once()

	err := f.uc.Remove(context.Background(), actor, self.ID)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidInput)
}

func TestTeam_Remove_ManagerCannotTouchOwner(t *testing.T) {
	f := newTeamFixture()
	merchantID := uuid.New()
	actor := &entities.Principal{UserID: uuid.New(), Role: entities.UserRoleMerchant}
	target := membership(merchantID, uuid.New(), entities.MerchantRoleOwner)

	f.memberRepo.On("GetByUser", mock.Anything, actor.UserID).
		Return(membership(merchantID, actor.UserID, entities.MerchantRoleManager), nil).Once()
	f.memberRepo.On("GetByID", mock.Anything, target.ID).Return(target, nil).Once()

	err := f.uc.Remove(context.Background(), actor, target.ID)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestTeam_Remove_LastOwnerBlocked(t *testing.T) {
	f := newTeamFixture()
	merchantID := uuid.New()
	actor := &entities.Principal{UserID: uuid.New(), Role: entities.UserRoleMerchant}
	target := membership(merchantID, uuid.New(), entities.MerchantRoleOwner)

	f.memberRepo.On("GetByUser", mock.Anything, actor.UserID).
		Return(membership(merchantID, actor.UserID, entities.MerchantRoleOwner), nil).Once()
	f.memberRepo.On("GetByID", mock.Anything, target.ID).Return(target, nil).Once()
	f.uow.On("Do", mock.Anything, mock.Anything).Return(nil).Once()
	f.memberRepo.On("CountByRole", mock.Anything, merchantID, entities.MerchantRoleOwner).Return(int64(1), nil).Once()

	err := f.uc.Remove(context.Background(), actor, target.ID)
	assert.ErrorIs(t, err, domainerrors.ErrLastOwner)
	f.memberRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestTeam_Remove_Success(t *testing.T) {
	f := newTeamFixture()
	merchantID := uuid.New()
	actor := &entities.Principal{UserID: uuid.New(), Role: entities.UserRoleMerchant}
	target := membership(merchantID, uuid.New(), entities.MerchantRoleStaff)

	f.memberRepo.On("GetByUser", mock.Anything, actor.UserID).
		Return(membership(merchantID, actor.UserID, entities.MerchantRoleManager), nil).Once()
	f.memberRepo.On("GetByID", mock.Anything, target.ID).Return(target, nil).Once()
	f.uow.On("Do", mock.Anything, mock.Anything).Return(nil).Once()
	f.memberRepo.On("Delete", mock.Anything, target.ID).Return(nil).Once()

	require.NoError(t, f.uc.Remove(context.Background(), actor, target.ID))
	f.memberRepo.AssertExpectations(t)
}

func TestTeam_ChangeRole_ManagerCannotGrantOwner(t *testing.T) {
	f := newTeamFixture()
	merchantID := uuid.New()
	actor := &entities.Principal{UserID: uuid.New(), Role: entities.UserRoleMerchant}
	target := membership(merchantID, uuid.New(), entities.MerchantRoleStaff)

	f.memberRepo.On("GetByUser", mock.Anything, actor.UserID).
		Return(membership(merchantID, actor.UserID, entities.MerchantRoleManager), nil).Once()
	f.memberRepo.On("GetByID", mock.Anything, target.ID).Return(target, nil).Once()

	_, err := f.uc.ChangeRole(context.Background(), actor, target.ID, &entities.ChangeRoleInput{Role: entities.MerchantRoleOwner})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestTeam_ChangeRole_LastOwnerDemotionBlocked(t *testing.T) {
	f := newTeamFixture()
	merchantID := uuid.New()
	actor := &entities.Principal{UserID: uuid.New(), Role: entities.UserRoleMerchant}
	target := membership(merchantID, uuid.New(), entities.MerchantRoleOwner)

	f.memberRepo.On("GetByUser", mock.Anything, actor.UserID).
		Return(membership(merchantID, actor.UserID, entities.MerchantRoleOwner), nil).Once()
	f.memberRepo.On("GetByID", mock.Anything, target.ID).Return(target, nil).Once()
	f.uow.On("Do", mock.Anything, mock.Anything).Return(nil).Once()
	f.memberRepo.On("CountByRole", mock.Anything, merchantID, entities.MerchantRoleOwner).Return(int64(1), nil).Once()

	_, err := f.uc.ChangeRole(context.Background(), actor, target.ID, &entities.ChangeRoleInput{Role: entities.MerchantRoleManager})
	assert.ErrorIs(t, err, domainerrors.ErrLastOwner)
}

func TestTeam_ChangeRole_Success(t *testing.T) {
	f := newTeamFixture()
	merchantID := uuid.New()
	actor := &entities.Principal{UserID: uuid.New(), Role: entities.UserRoleMerchant}
	target := membership(merchantID, uuid.New(), entities.MerchantRoleStaff)

	f.memberRepo.On("GetByUser", mock.Anything, actor.UserID).
		Return(membership(merchantID, actor.UserID, entities.MerchantRoleOwner), nil).Once()
	f.memberRepo.On("GetByID", mock.Anything, target.ID).Return(target, nil).Once()
	f.uow.On("Do", mock.Anything, mock.Anything).Return(nil).Once()
	f.memberRepo.On("UpdateRole", mock.Anything, target.ID, entities.MerchantRoleManager).Return(nil).Once()

	updated := membership(merchantID, target.UserID, entities.MerchantRoleManager)
	updated.ID = target.ID
	f.memberRepo.On("GetByID", mock.Anything, target.ID).Return(updated, nil).Once()

	result, err := f.uc.ChangeRole(context.Background(), actor, target.ID, &entities.ChangeRoleInput{Role: entities.MerchantRoleManager})
	require.NoError(t, err)
	assert.Equal(t, entities.MerchantRoleManager, result.MerchantRole)
}

func TestTeam_Invite_ExistingUserAttached(t *testing.T) {
	f := newTeamFixture()
	merchantID := uuid.New()
	actor := &entities.Principal{UserID: uuid.New(), Role: entities.UserRoleMerchant}
	existing := &entities.User{ID: uuid.New(), Email: "jo@example.com", Role: entities.UserRoleMerchantPending}

	f.memberRepo.On("GetByUser", mock.Anything, actor.UserID).
		Return(membership(merchantID, actor.UserID, entities.MerchantRoleOwner), nil).Once()
	f.merchantRepo.On("GetByID", mock.Anything, merchantID).
		Return(completeMerchant(merchantID, entities.MerchantStatusDraft), nil).Once()
	f.userRepo.On("GetByEmail", mock.Anything, "jo@example.com").Return(existing, nil).Once()
	f.memberRepo.On("GetByUser", mock.Anything, existing.ID).Return(nil, domainerrors.ErrNotFound).Once()
	f.uow.On("Do", mock.Anything, mock.Anything).Return(nil).Once()
	f.memberRepo.On("Create", mock.Anything, mock.MatchedBy(func(m *entities.Membership) bool {
		return m.UserID == existing.ID && m.MerchantRole == entities.MerchantRoleStaff
	})).Return(nil).Once()

	resp, err := f.uc.Invite(context.Background(), actor, &entities.InviteInput{Email: "jo@example.com", Role: entities.MerchantRoleStaff})
	require.NoError(t, err)
	assert.False(t, resp.IsNewUser)
	f.userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestTeam_Invite_NewUserCreatedWithPlaceholder(t *testing.T) {
	f := newTeamFixture()
	merchantID := uuid.New()
	actor := &entities.Principal{UserID: uuid.New(), Role: entities.UserRoleMerchant}

	f.memberRepo.On("GetByUser", mock.Anything, actor.UserID).
		Return(membership(merchantID, actor.UserID, entities.MerchantRoleOwner), nil).Once()
	f.merchantRepo.On("GetByID", mock.Anything, merchantID).
		Return(completeMerchant(merchantID, entities.MerchantStatusApproved), nil).Once()
	f.userRepo.On("GetByEmail", mock.Anything, "new@example.com").Return(nil, domainerrors.ErrNotFound).Once()
	f.uow.On("Do", mock.Anything, mock.Anything).Return(nil).Once()
	f.userRepo.On("Create", mock.Anything, mock.MatchedBy(func(u *entities.User) bool {
		// Invitees of an approved merchant skip the pending role
		return u.Email == "new@example.com" && u.Role == entities.UserRoleMerchant && u.PasswordHash.Valid
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*entities.User).ID = uuid.New()
	}).Return(nil).Once()
	f.memberRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	resp, err := f.uc.Invite(context.Background(), actor, &entities.InviteInput{
		Email: "new@example.com", FirstName: "New", LastName: "Member", Role: entities.MerchantRoleManager,
	})
	require.NoError(t, err)
	assert.True(t, resp.IsNewUser)
}

func TestTeam_Invite_AlreadyOnATeam(t *testing.T) {
	f := newTeamFixture()
	merchantID := uuid.New()
	actor := &entities.Principal{UserID: uuid.New(), Role: entities.UserRoleMerchant}
	existing := &entities.User{ID: uuid.New(), Email: "taken@example.com", Role: entities.UserRoleMerchant}

	f.memberRepo.On("GetByUser", mock.Anything, actor.UserID).
		Return(membership(merchantID, actor.UserID, entities.MerchantRoleOwner), nil).Once()
	f.merchantRepo.On("GetByID", mock.Anything, merchantID).
		Return(completeMerchant(merchantID, entities.MerchantStatusApproved), nil).Once()
	f.userRepo.On("GetByEmail", mock.Anything, "taken@example.com").Return(existing, nil).Once()
	f.memberRepo.On("GetByUser", mock.Anything, existing.ID).
		Return(membership(uuid.New(), existing.ID, entities.MerchantRoleOwner), nil).Once()

	_, err := f.uc.Invite(context.Background(), actor, &entities.InviteInput{Email: "taken@example.com", Role: entities.MerchantRoleStaff})
	assert.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestTeam_ListTeam_StaffMayView(t *testing.T) {
	f := newTeamFixture()
	merchantID := uuid.New()
	actor := &entities.Principal{UserID: uuid.New(), Role: entities.UserRoleMerchant}

	f.memberRepo.On("GetByUser", mock.Anything, actor.UserID).
		Return(membership(merchantID, actor.UserID, entities.MerchantRoleStaff), nil).Once()
	f.memberRepo.On("ListByMerchant", mock.Anything, merchantID).
		Return([]*entities.TeamMember{{UserID: actor.UserID}}, nil).Once()

	members, err := f.uc.ListTeam(context.Background(), actor)
	require.NoError(t, err)
	assert.Len(t, members, 1)
}
