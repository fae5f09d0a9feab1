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

// PlatformTeamUsecase manages the platform operator roster. Only admins
// mutate it; staff may view.
type PlatformTeamUsecase struct {
	userRepo repositories.UserRepository
	uow      repositories.UnitOfWork
}

// NewPlatformTeamUsecase creates a new platform team usecase
func NewPlatformTeamUsecase(userRepo repositories.UserRepository, uow repositories.UnitOfWork) *PlatformTeamUsecase {
	return &PlatformTeamUsecase{userRepo: userRepo, uow: uow}
}

// ListOperators lists platform staff and admins
func (u *PlatformTeamUsecase) ListOperators(ctx context.Context, principal *entities.Principal) ([]*entities.User, error) {
	if err := authz.RequirePlatform(principal); err != nil {
		return nil, err
	}
	return u.userRepo.ListByRoles(ctx, []entities.UserRole{
		entities.UserRolePigbankStaff,
		entities.UserRolePigbankAdmin,
	})
}

// Invite creates a platform operator account
func (u *PlatformTeamUsecase) Invite(ctx context.Context, principal *entities.Principal, input *entities.PlatformInviteInput) (*entities.User, error) {
	if err := authz.RequireAdmin(principal); err != nil {
		return nil, err
	}
	if !input.Role.IsPlatform() {
		return nil, domainerrors.BadRequest("role must be a platform role")
	}

	_, err := u.userRepo.GetByEmail(ctx, input.Email)
	if err == nil {
		return nil, domainerrors.Conflict("email already registered")
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	placeholder, err := crypto.GeneratePlaceholderPassword()
	if err != nil {
		return nil, err
	}
	hash, err := crypto.HashPassword(placeholder)
	if err != nil {
		return nil, err
	}

	operator := &entities.User{
		Email:        input.Email,
		PasswordHash: null.StringFrom(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         input.Role,
	}
	if err := u.userRepo.Create(ctx, operator); err != nil {
		return nil, err
	}

	logger.Info(ctx, "platform operator invited",
		zap.String("user_id", operator.ID.String()),
		zap.String("role", string(operator.Role)))
	return operator, nil
}

// ChangeRole moves an operator between staff and admin
func (u *PlatformTeamUsecase) ChangeRole(ctx context.Context, principal *entities.Principal, userID uuid.UUID, role entities.UserRole) (*entities.User, error) {
	if err := authz.RequireAdmin(principal); err != nil {
		return nil, err
	}
	if userID == principal.UserID {
		return nil, domainerrors.BadRequest("cannot change your own role")
	}
	if !role.IsPlatform() {
		return nil, domainerrors.BadRequest("role must be a platform role")
	}

	target, err := u.requireOperator(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if target.Role.IsAdmin() && !role.IsAdmin() {
			if err := u.requireAnotherAdmin(txCtx); err != nil {
				return err
			}
		}
		return u.userRepo.UpdateRole(txCtx, userID, role)
	})
	if err != nil {
		return nil, err
	}
	return u.userRepo.GetByID(ctx, userID)
}

// Remove deletes an operator account
func (u *PlatformTeamUsecase) Remove(ctx context.Context, principal *entities.Principal, userID uuid.UUID) error {
	if err := authz.RequireAdmin(principal); err != nil {
		return err
	}
	if userID == principal.UserID {
		return domainerrors.BadRequest("cannot remove your own account")
	}

	target, err := u.requireOperator(ctx, userID)
	if err != nil {
		return err
	}

	return u.uow.Do(ctx, func(txCtx context.Context) error {
		if target.Role.IsAdmin() {
			if err := u.requireAnotherAdmin(txCtx); err != nil {
				return err
			}
		}
		return u.userRepo.SoftDelete(txCtx, userID)
	})
}

func (u *PlatformTeamUsecase) requireOperator(ctx context.Context, userID uuid.UUID) (*entities.User, error) {
	target, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("operator not found")
		}
		return nil, err
	}
	if !target.Role.IsPlatform() {
		return nil, domainerrors.NotFound("operator not found")
	}
	return target, nil
}

func (u *PlatformTeamUsecase) requireAnotherAdmin(ctx context.Context) error {
	admins, err := u.userRepo.CountByRole(ctx, entities.UserRolePigbankAdmin)
	if err != nil {
		return err
	}
	if admins <= 1 {
		return domainerrors.NewAppError(400, domainerrors.CodeBadRequest, "cannot remove the last admin", domainerrors.ErrLastAdmin)
	}
	return nil
}
