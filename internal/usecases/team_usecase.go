package usecases

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"pigbank.backend/internal/domain/authz"
	"pigbank.backend/internal/domain/entities"
	domainerrors "pigbank.backend/internal/domain/errors"
	"pigbank.backend/internal/domain/repositories"
	"pigbank.backend/pkg/crypto"
	"pigbank.backend/pkg/logger"
)

// TeamUsecase manages the merchant-scoped team roster
type TeamUsecase struct {
	memberRepo   repositories.MembershipRepository
	userRepo     repositories.UserRepository
	merchantRepo repositories.MerchantRepository
	uow          repositories.UnitOfWork
}

// NewTeamUsecase creates a new team usecase
func NewTeamUsecase(
	memberRepo repositories.MembershipRepository,
	userRepo repositories.UserRepository,
	merchantRepo repositories.MerchantRepository,
	uow repositories.UnitOfWork,
) *TeamUsecase {
	return &TeamUsecase{
		memberRepo:   memberRepo,
		userRepo:     userRepo,
		merchantRepo: merchantRepo,
		uow:          uow,
	}
}

// ListTeam lists the roster of the principal's merchant. Every member may
// view the roster.
func (u *TeamUsecase) ListTeam(ctx context.Context, principal *entities.Principal) ([]*entities.TeamMember, error) {
	membership, err := u.requireMembership(ctx, principal)
	if err != nil {
		return nil, err
	}
	return u.memberRepo.ListByMerchant(ctx, membership.MerchantID)
}

// Invite attaches a user to the merchant by email, creating the user record
// with a placeholder password when the email is unknown.
func (u *TeamUsecase) Invite(ctx context.Context, principal *entities.Principal, input *entities.InviteInput) (*entities.InviteResponse, error) {
	actor, err := u.requireMembership(ctx, principal)
	if err != nil {
		return nil, err
	}
	if !entities.ValidMerchantRole(input.Role) {
		return nil, domainerrors.BadRequest("unknown team role")
	}
	if err := authz.CanInvite(actor.MerchantRole, input.Role); err != nil {
		return nil, err
	}

	merchant, err := u.merchantRepo.GetByID(ctx, actor.MerchantID)
	if err != nil {
		return nil, err
	}

	invitee, err := u.userRepo.GetByEmail(ctx, input.Email)
	isNewUser := false
	switch {
	case err == nil:
		if invitee.Role.IsPlatform() {
			return nil, domainerrors.BadRequest("platform operators cannot join merchant teams")
		}
		if _, err := u.memberRepo.GetByUser(ctx, invitee.ID); err == nil {
			return nil, domainerrors.Conflict("user already belongs to a merchant team")
		} else if !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
	case errors.Is(err, domainerrors.ErrNotFound):
		isNewUser = true
	default:
		return nil, err
	}

	membership := &entities.Membership{
		MerchantID:   actor.MerchantID,
		MerchantRole: input.Role,
	}
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if isNewUser {
			placeholder, err := crypto.GeneratePlaceholderPassword()
			if err != nil {
				return err
			}
			hash, err := crypto.HashPassword(placeholder)
			if err != nil {
				return err
			}

			// Members invited after approval skip the pending role
			role := entities.UserRoleMerchantPending
			if merchant.Status == entities.MerchantStatusApproved {
				role = entities.UserRoleMerchant
			}
			invitee = &entities.User{
				Email:        input.Email,
				PasswordHash: null.StringFrom(hash),
				FirstName:    input.FirstName,
				LastName:     input.LastName,
				Role:         role,
			}
			if err := u.userRepo.Create(txCtx, invitee); err != nil {
				return err
			}
		}
		membership.UserID = invitee.ID
		return u.memberRepo.Create(txCtx, membership)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "team member invited",
		zap.String("merchant_id", actor.MerchantID.String()),
		zap.String("user_id", invitee.ID.String()),
		zap.Bool("new_user", isNewUser))
	return &entities.InviteResponse{Membership: membership, IsNewUser: isNewUser}, nil
}

// ChangeRole changes a member's team role
func (u *TeamUsecase) ChangeRole(ctx context.Context, principal *entities.Principal, membershipID uuid.UUID, input *entities.ChangeRoleInput) (*entities.Membership, error) {
	actor, target, err := u.loadChange(ctx, principal, membershipID)
	if err != nil {
		return nil, err
	}
	if !entities.ValidMerchantRole(input.Role) {
		return nil, domainerrors.BadRequest("unknown team role")
	}

	if err := authz.CheckMembershipChange(authz.MembershipChange{
		ActorRole:  actor.MerchantRole,
		TargetRole: target.MerchantRole,
		NewRole:    input.Role,
		IsSelf:     target.UserID == principal.UserID,
	}); err != nil {
		return nil, err
	}

	// The last-owner count and the write commit together so two concurrent
	// demotions cannot both pass the check.
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if target.MerchantRole == entities.MerchantRoleOwner && input.Role != entities.MerchantRoleOwner {
			if err := u.requireAnotherOwner(txCtx, target); err != nil {
				return err
			}
		}
		return u.memberRepo.UpdateRole(txCtx, membershipID, input.Role)
	})
	if err != nil {
		return nil, err
	}
	return u.memberRepo.GetByID(ctx, membershipID)
}

// Remove deletes a member from the team
func (u *TeamUsecase) Remove(ctx context.Context, principal *entities.Principal, membershipID uuid.UUID) error {
	actor, target, err := u.loadChange(ctx, principal, membershipID)
	if err != nil {
		return err
	}

	if err := authz.CheckMembershipChange(authz.MembershipChange{
		ActorRole:  actor.MerchantRole,
		TargetRole: target.MerchantRole,
		IsSelf:     target.UserID == principal.UserID,
	}); err != nil {
		return err
	}

	return u.uow.Do(ctx, func(txCtx context.Context) error {
		if target.MerchantRole == entities.MerchantRoleOwner {
			if err := u.requireAnotherOwner(txCtx, target); err != nil {
				return err
			}
		}
		return u.memberRepo.Delete(txCtx, membershipID)
	})
}

// requireMembership resolves the principal's membership, rejecting users
// outside any merchant team.
func (u *TeamUsecase) requireMembership(ctx context.Context, principal *entities.Principal) (*entities.Membership, error) {
	membership, err := u.memberRepo.GetByUser(ctx, principal.UserID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Forbidden("no merchant team membership")
		}
		return nil, err
	}
	return membership, nil
}

// loadChange resolves actor and target for a membership mutation. Actors
// without management rights get 403 before the target lookup can 404.
func (u *TeamUsecase) loadChange(ctx context.Context, principal *entities.Principal, membershipID uuid.UUID) (*entities.Membership, *entities.Membership, error) {
	actor, err := u.requireMembership(ctx, principal)
	if err != nil {
		return nil, nil, err
	}
	if !authz.CanManageTeam(actor.MerchantRole) {
		return nil, nil, domainerrors.Forbidden("only owners and managers can manage the team")
	}

	target, err := u.memberRepo.GetByID(ctx, membershipID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, nil, domainerrors.NotFound("membership not found")
		}
		return nil, nil, err
	}
	if target.MerchantID != actor.MerchantID {
		return nil, nil, domainerrors.NotFound("membership not found")
	}
	return actor, target, nil
}

func (u *TeamUsecase) requireAnotherOwner(ctx context.Context, target *entities.Membership) error {
	owners, err := u.memberRepo.CountByRole(ctx, target.MerchantID, entities.MerchantRoleOwner)
	if err != nil {
		return err
	}
	if owners <= 1 {
		return domainerrors.NewAppError(400, domainerrors.CodeBadRequest, "cannot remove the last owner", domainerrors.ErrLastOwner)
	}
	return nil
}
