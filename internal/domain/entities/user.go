package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// UserRole represents platform-level user roles
type UserRole string

const (
	UserRoleMerchantPending UserRole = "merchant_pending"
	UserRoleMerchant        UserRole = "merchant"
	UserRolePigbankStaff    UserRole = "pigbank_staff"
	UserRolePigbankAdmin    UserRole = "pigbank_admin"
	UserRoleNone            UserRole = ""
)

// IsPlatform reports whether the role belongs to a platform operator
func (r UserRole) IsPlatform() bool {
	return r == UserRolePigbankStaff || r == UserRolePigbankAdmin
}

// IsAdmin reports whether the role is the platform admin role
func (r UserRole) IsAdmin() bool {
	return r == UserRolePigbankAdmin
}

// User represents a user entity
type User struct {
	ID              uuid.UUID   `json:"id"`
	Email           string      `json:"email"`
	PasswordHash    null.String `json:"-"` // empty for external-auth users
	FirstName       string      `json:"firstName"`
	LastName        string      `json:"lastName"`
	ProfileImageURL null.String `json:"profileImageUrl,omitempty"`
	Role            UserRole    `json:"role"`
	MerchantID      null.String `json:"merchantId,omitempty"`
	DemoActive      bool        `json:"demoActive"`
	CreatedAt       time.Time   `json:"createdAt"`
	UpdatedAt       time.Time   `json:"updatedAt"`
	DeletedAt       null.Time   `json:"-"`
}

// Principal is the authenticated identity passed explicitly into handlers
// and usecases. It is resolved once by the auth middleware.
type Principal struct {
	UserID uuid.UUID
	Email  string
	Role   UserRole
}

// RegisterInput represents input for user registration
type RegisterInput struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName" binding:"required,min=1,max=100"`
	LastName  string `json:"lastName" binding:"required,min=1,max=100"`
}

// LoginInput represents input for user login
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse represents authentication response
type AuthResponse struct {
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	SessionID    string `json:"sessionId,omitempty"`
	User         *User  `json:"user"`
}

// UpdateProfileInput represents input for profile updates
type UpdateProfileInput struct {
	FirstName       string `json:"firstName" binding:"required,min=1,max=100"`
	LastName        string `json:"lastName" binding:"required,min=1,max=100"`
	ProfileImageURL string `json:"profileImageUrl"`
}

// ChangePasswordInput represents input for changing user password.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required,min=8"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}
