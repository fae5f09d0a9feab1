package authz

import (
	"pigbank.backend/internal/domain/entities"
	domainerrors "pigbank.backend/internal/domain/errors"
)

// Guard holds the pure role-authorization decisions. It never touches
// storage; callers load whatever memberships the decision needs first.

// RequirePlatform allows only platform staff and admins through
func RequirePlatform(p *entities.Principal) error {
	if p == nil {
		return domainerrors.Unauthorized("authentication required")
	}
	if !p.Role.IsPlatform() {
		return domainerrors.Forbidden("platform access required")
	}
	return nil
}

// RequireAdmin allows only platform admins through
func RequireAdmin(p *entities.Principal) error {
	if p == nil {
		return domainerrors.Unauthorized("authentication required")
	}
	if !p.Role.IsAdmin() {
		return domainerrors.Forbidden("admin access required")
	}
	return nil
}

// CanAccessMerchant reports whether the principal may read a merchant's
// data. Platform roles see every merchant; everyone else needs a
// membership on that merchant.
func CanAccessMerchant(p *entities.Principal, membership *entities.Membership) error {
	if p == nil {
		return domainerrors.Unauthorized("authentication required")
	}
	if p.Role.IsPlatform() {
		return nil
	}
	if membership == nil {
		return domainerrors.Forbidden("no access to this merchant")
	}
	return nil
}

// CanManageTeam reports whether a merchant-scoped role may invite,
// re-role, or remove members. Staff may only view the roster.
func CanManageTeam(role entities.MerchantRole) bool {
	return role == entities.MerchantRoleOwner || role == entities.MerchantRoleManager
}

// MembershipChange describes an attempted mutation of one membership
type MembershipChange struct {
	ActorRole  entities.MerchantRole
	TargetRole entities.MerchantRole
	// NewRole is empty for removals
	NewRole entities.MerchantRole
	IsSelf  bool
}

// CheckMembershipChange applies the team-management rules in a fixed
// order so callers get stable error codes:
//  1. actor must be owner or manager
//  2. actor may not change or remove their own membership
//  3. managers may not touch owners
//  4. managers may not grant the owner role
//
// The last-owner rule needs a roster count and lives in the usecase,
// which evaluates it after these checks pass.
func CheckMembershipChange(c MembershipChange) error {
	if !CanManageTeam(c.ActorRole) {
		return domainerrors.Forbidden("only owners and managers can manage the team")
	}
	if c.IsSelf {
		return domainerrors.BadRequest("cannot modify your own membership")
	}
	if c.ActorRole == entities.MerchantRoleManager && c.TargetRole == entities.MerchantRoleOwner {
		return domainerrors.Forbidden("managers cannot modify owners")
	}
	if c.ActorRole == entities.MerchantRoleManager && c.NewRole == entities.MerchantRoleOwner {
		return domainerrors.Forbidden("managers cannot grant the owner role")
	}
	return nil
}

// CanInvite reports whether the actor may invite a member with the given
// role. Managers may only invite managers and staff.
func CanInvite(actorRole, inviteeRole entities.MerchantRole) error {
	if !CanManageTeam(actorRole) {
		return domainerrors.Forbidden("only owners and managers can manage the team")
	}
	if actorRole == entities.MerchantRoleManager && inviteeRole == entities.MerchantRoleOwner {
		return domainerrors.Forbidden("managers cannot grant the owner role")
	}
	return nil
}
