package authz

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pigbank.backend/internal/domain/entities"
	domainerrors "pigbank.backend/internal/domain/errors"
)

func principal(role entities.UserRole) *entities.Principal {
	return &entities.Principal{UserID: uuid.New(), Email: "user@example.com", Role: role}
}

func TestRequirePlatform(t *testing.T) {
	assert.NoError(t, RequirePlatform(principal(entities.UserRolePigbankStaff)))
	assert.NoError(t, RequirePlatform(principal(entities.UserRolePigbankAdmin)))

	err := RequirePlatform(principal(entities.UserRoleMerchant))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))

	err = RequirePlatform(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUnauthorized))
}

func TestRequireAdmin(t *testing.T) {
	assert.NoError(t, RequireAdmin(principal(entities.UserRolePigbankAdmin)))

	err := RequireAdmin(principal(entities.UserRolePigbankStaff))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}

func TestCanAccessMerchant(t *testing.T) {
	t.Run("platform roles bypass membership", func(t *testing.T) {
		assert.NoError(t, CanAccessMerchant(principal(entities.UserRolePigbankStaff), nil))
	})

	t.Run("member allowed", func(t *testing.T) {
		m := &entities.Membership{MerchantRole: entities.MerchantRoleStaff}
		assert.NoError(t, CanAccessMerchant(principal(entities.UserRoleMerchant), m))
	})

	t.Run("non-member forbidden", func(t *testing.T) {
		err := CanAccessMerchant(principal(entities.UserRoleMerchant), nil)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
	})
}

func TestCheckMembershipChange(t *testing.T) {
	tests := []struct {
		name    string
		change  MembershipChange
		wantErr error
	}{
		{
			name:   "owner re-roles staff",
			change: MembershipChange{ActorRole: entities.MerchantRoleOwner, TargetRole: entities.MerchantRoleStaff, NewRole: entities.MerchantRoleManager},
		},
		{
			name:   "owner promotes to owner",
			change: MembershipChange{ActorRole: entities.MerchantRoleOwner, TargetRole: entities.MerchantRoleManager, NewRole: entities.MerchantRoleOwner},
		},
		{
			name:    "staff cannot manage",
			change:  MembershipChange{ActorRole: entities.MerchantRoleStaff, TargetRole: entities.MerchantRoleStaff},
			wantErr: domainerrors.ErrForbidden,
		},
		{
			name:    "self change rejected",
			change:  MembershipChange{ActorRole: entities.MerchantRoleOwner, TargetRole: entities.MerchantRoleOwner, IsSelf: true},
			wantErr: domainerrors.ErrInvalidInput,
		},
		{
			name:    "manager cannot touch owner",
			change:  MembershipChange{ActorRole: entities.MerchantRoleManager, TargetRole: entities.MerchantRoleOwner, NewRole: entities.MerchantRoleStaff},
			wantErr: domainerrors.ErrForbidden,
		},
		{
			name:    "manager cannot grant owner",
			change:  MembershipChange{ActorRole: entities.MerchantRoleManager, TargetRole: entities.MerchantRoleStaff, NewRole: entities.MerchantRoleOwner},
			wantErr: domainerrors.ErrForbidden,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckMembershipChange(tt.change)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr))
		})
	}
}

func TestCanInvite(t *testing.T) {
	assert.NoError(t, CanInvite(entities.MerchantRoleOwner, entities.MerchantRoleOwner))
	assert.NoError(t, CanInvite(entities.MerchantRoleManager, entities.MerchantRoleStaff))

	err := CanInvite(entities.MerchantRoleManager, entities.MerchantRoleOwner)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))

	err = CanInvite(entities.MerchantRoleStaff, entities.MerchantRoleStaff)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrForbidden))
}
