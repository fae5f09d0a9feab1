package entities

import (
	"time"

	"github.com/google/uuid"
)

// MerchantRole represents merchant-scoped team roles
type MerchantRole string

const (
	MerchantRoleOwner   MerchantRole = "owner"
	MerchantRoleManager MerchantRole = "manager"
	MerchantRoleStaff   MerchantRole = "staff"
)

// ValidMerchantRole reports whether the given role is a known team role
func ValidMerchantRole(r MerchantRole) bool {
	return r == MerchantRoleOwner || r == MerchantRoleManager || r == MerchantRoleStaff
}

// Membership is the join entity between a user and a merchant. Exactly one
// membership exists per (user, merchant) pair.
type Membership struct {
	ID           uuid.UUID    `json:"id"`
	MerchantID   uuid.UUID    `json:"merchantId"`
	UserID       uuid.UUID    `json:"userId"`
	MerchantRole MerchantRole `json:"merchantRole"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

// TeamMember is a membership joined with its user for team listings
type TeamMember struct {
	MembershipID uuid.UUID    `json:"membershipId"`
	UserID       uuid.UUID    `json:"userId"`
	Email        string       `json:"email"`
	FirstName    string       `json:"firstName"`
	LastName     string       `json:"lastName"`
	MerchantRole MerchantRole `json:"merchantRole"`
	UserRole     UserRole     `json:"userRole"`
	JoinedAt     time.Time    `json:"joinedAt"`
}

// InviteInput represents input for inviting a team member by email
type InviteInput struct {
	Email     string       `json:"email" binding:"required,email"`
	FirstName string       `json:"firstName"`
	LastName  string       `json:"lastName"`
	Role      MerchantRole `json:"role" binding:"required"`
}

// ChangeRoleInput represents input for changing a member's team role
type ChangeRoleInput struct {
	Role MerchantRole `json:"role" binding:"required"`
}

// InviteResponse reports the attached membership and whether a new user
// record had to be created for the email.
type InviteResponse struct {
	Membership *Membership `json:"membership"`
	IsNewUser  bool        `json:"isNewUser"`
}

// PlatformInviteInput represents input for inviting a platform operator
type PlatformInviteInput struct {
	Email     string   `json:"email" binding:"required,email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Role      UserRole `json:"role" binding:"required"`
}
