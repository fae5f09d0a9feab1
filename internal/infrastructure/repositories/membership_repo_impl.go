package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"pigbank.backend/internal/domain/entities"
	domainerrors "pigbank.backend/internal/domain/errors"
	"pigbank.backend/internal/infrastructure/models"
)

// MembershipRepository implements merchant team membership operations
type MembershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// Create creates a membership row
func (r *MembershipRepository) Create(ctx context.Context, membership *entities.Membership) error {
	m := &models.Membership{
		ID:           membership.ID,
		MerchantID:   membership.MerchantID,
		UserID:       membership.UserID,
		MerchantRole: string(membership.MerchantRole),
	}
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	if err := GetDB(ctx, r.db).WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	membership.ID = m.ID
	membership.CreatedAt = m.CreatedAt
	membership.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a membership by ID
func (r *MembershipRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Membership, error) {
	var m models.Membership
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByUserAndMerchant gets the unique membership for a (user, merchant) pair
func (r *MembershipRepository) GetByUserAndMerchant(ctx context.Context, userID, merchantID uuid.UUID) (*entities.Membership, error) {
	var m models.Membership
	err := GetDB(ctx, r.db).WithContext(ctx).
		Where("user_id = ? AND merchant_id = ?", userID, merchantID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// GetByUser gets a user's membership. Users belong to at most one merchant.
func (r *MembershipRepository) GetByUser(ctx context.Context, userID uuid.UUID) (*entities.Membership, error) {
	var m models.Membership
	if err := GetDB(ctx, r.db).WithContext(ctx).Where("user_id = ?", userID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// ListByMerchant lists the team roster joined with user records
func (r *MembershipRepository) ListByMerchant(ctx context.Context, merchantID uuid.UUID) ([]*entities.TeamMember, error) {
	type rosterRow struct {
		MembershipID uuid.UUID
		UserID       uuid.UUID
		Email        string
		FirstName    string
		LastName     string
		MerchantRole string
		UserRole     string
		JoinedAt     time.Time
	}

	var rows []rosterRow
	err := GetDB(ctx, r.db).WithContext(ctx).
		Table("memberships").
		Select(`memberships.id AS membership_id, users.id AS user_id, users.email,
			users.first_name, users.last_name, memberships.merchant_role,
			users.role AS user_role, memberships.created_at AS joined_at`).
		Joins("JOIN users ON users.id = memberships.user_id").
		Where("memberships.merchant_id = ? AND memberships.deleted_at IS NULL AND users.deleted_at IS NULL", merchantID).
		Order("memberships.created_at ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	members := make([]*entities.TeamMember, 0, len(rows))
	for _, row := range rows {
		members = append(members, &entities.TeamMember{
			MembershipID: row.MembershipID,
			UserID:       row.UserID,
			Email:        row.Email,
			FirstName:    row.FirstName,
			LastName:     row.LastName,
			MerchantRole: entities.MerchantRole(row.MerchantRole),
			UserRole:     entities.UserRole(row.UserRole),
			JoinedAt:     row.JoinedAt,
		})
	}
	return members, nil
}

// UpdateRole changes a member's team role
func (r *MembershipRepository) UpdateRole(ctx context.Context, id uuid.UUID, role entities.MerchantRole) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Membership{}).Where("id = ?", id).
		Updates(map[string]interface{}{"merchant_role": string(role), "updated_at": time.Now()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Delete soft deletes a membership
func (r *MembershipRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := GetDB(ctx, r.db).WithContext(ctx).Delete(&models.Membership{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// DeleteByMerchant removes every membership of a merchant
func (r *MembershipRepository) DeleteByMerchant(ctx context.Context, merchantID uuid.UUID) error {
	return GetDB(ctx, r.db).WithContext(ctx).Unscoped().
		Where("merchant_id = ?", merchantID).
		Delete(&models.Membership{}).Error
}

// CountByRole counts members of a merchant holding the given team role
func (r *MembershipRepository) CountByRole(ctx context.Context, merchantID uuid.UUID, role entities.MerchantRole) (int64, error) {
	var count int64
	err := GetDB(ctx, r.db).WithContext(ctx).Model(&models.Membership{}).
		Where("merchant_id = ? AND merchant_role = ?", merchantID, string(role)).
		Count(&count).Error
	return count, err
}

func (r *MembershipRepository) toEntity(m *models.Membership) *entities.Membership {
	return &entities.Membership{
		ID:           m.ID,
		MerchantID:   m.MerchantID,
		UserID:       m.UserID,
		MerchantRole: entities.MerchantRole(m.MerchantRole),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
