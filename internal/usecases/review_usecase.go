package usecases

import (
	"context"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"pigbank.backend/internal/domain/authz"
	"pigbank.backend/internal/domain/entities"
	"pigbank.backend/internal/domain/repositories"
	"pigbank.backend/pkg/logger"
	"pigbank.backend/pkg/utils"
)

// ReviewUsecase is the platform review console over merchant applications
type ReviewUsecase struct {
	merchantRepo repositories.MerchantRepository
	ownerRepo    repositories.OwnerRepository
	memberRepo   repositories.MembershipRepository
	userRepo     repositories.UserRepository
	noteRepo     repositories.NoteRepository
	eventRepo    repositories.EventRepository
	settingsRepo repositories.CheckoutSettingsRepository
	uow          repositories.UnitOfWork
}

// NewReviewUsecase creates a new review usecase
func NewReviewUsecase(
	merchantRepo repositories.MerchantRepository,
	ownerRepo repositories.OwnerRepository,
	memberRepo repositories.MembershipRepository,
	userRepo repositories.UserRepository,
	noteRepo repositories.NoteRepository,
	eventRepo repositories.EventRepository,
	settingsRepo repositories.CheckoutSettingsRepository,
	uow repositories.UnitOfWork,
) *ReviewUsecase {
	return &ReviewUsecase{
		merchantRepo: merchantRepo,
		ownerRepo:    ownerRepo,
		memberRepo:   memberRepo,
		userRepo:     userRepo,
		noteRepo:     noteRepo,
		eventRepo:    eventRepo,
		settingsRepo: settingsRepo,
		uow:          uow,
	}
}

// List lists merchant applications for the review queue
func (u *ReviewUsecase) List(ctx context.Context, principal *entities.Principal, status entities.MerchantStatus, search string, p utils.PaginationParams) ([]*entities.Merchant, int64, error) {
	if err := authz.RequirePlatform(principal); err != nil {
		return nil, 0, err
	}
	return u.merchantRepo.List(ctx, status, search, p)
}

// CountByStatus returns the review queue counters
func (u *ReviewUsecase) CountByStatus(ctx context.Context, principal *entities.Principal) (map[entities.MerchantStatus]int64, error) {
	if err := authz.RequirePlatform(principal); err != nil {
		return nil, err
	}
	return u.merchantRepo.CountByStatus(ctx)
}

// Detail loads the full review view of one merchant
func (u *ReviewUsecase) Detail(ctx context.Context, principal *entities.Principal, merchantID uuid.UUID) (*entities.MerchantDetail, error) {
	if err := authz.RequirePlatform(principal); err != nil {
		return nil, err
	}

	merchant, err := u.merchantRepo.GetByID(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	owners, err := u.ownerRepo.ListByMerchant(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	team, err := u.memberRepo.ListByMerchant(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	notes, err := u.noteRepo.ListByMerchant(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	events, err := u.eventRepo.ListByMerchant(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	return &entities.MerchantDetail{
		Merchant: merchant,
		Owners:   owners,
		Team:     team,
		Notes:    notes,
		Events:   events,
	}, nil
}

// Approve moves a merchant to approved and promotes every team member to
// the merchant role. Status, role cascade, and the single audit event
// commit atomically.
func (u *ReviewUsecase) Approve(ctx context.Context, principal *entities.Principal, merchantID uuid.UUID) (*entities.Merchant, error) {
	if err := authz.RequireAdmin(principal); err != nil {
		return nil, err
	}
	return u.applyEvent(ctx, principal, merchantID, entities.EventApprove, "")
}

// Reject moves a merchant to rejected with an optional reason
func (u *ReviewUsecase) Reject(ctx context.Context, principal *entities.Principal, merchantID uuid.UUID, reason string) (*entities.Merchant, error) {
	if err := authz.RequireAdmin(principal); err != nil {
		return nil, err
	}
	return u.applyEvent(ctx, principal, merchantID, entities.EventReject, reason)
}

// RequestAction sends the application back to the merchant for changes
func (u *ReviewUsecase) RequestAction(ctx context.Context, principal *entities.Principal, merchantID uuid.UUID, reason string) (*entities.Merchant, error) {
	if err := authz.RequirePlatform(principal); err != nil {
		return nil, err
	}
	return u.applyEvent(ctx, principal, merchantID, entities.EventRequestAction, reason)
}

// StartReview claims a submitted application for review
func (u *ReviewUsecase) StartReview(ctx context.Context, principal *entities.Principal, merchantID uuid.UUID) (*entities.Merchant, error) {
	if err := authz.RequirePlatform(principal); err != nil {
		return nil, err
	}
	return u.applyEvent(ctx, principal, merchantID, entities.EventStartReview, "")
}

// Suspend takes an approved merchant out of service
func (u *ReviewUsecase) Suspend(ctx context.Context, principal *entities.Principal, merchantID uuid.UUID, reason string) (*entities.Merchant, error) {
	if err := authz.RequireAdmin(principal); err != nil {
		return nil, err
	}
	return u.applyEvent(ctx, principal, merchantID, entities.EventSuspend, reason)
}

// AddNote appends an internal review note
func (u *ReviewUsecase) AddNote(ctx context.Context, principal *entities.Principal, merchantID uuid.UUID, input *entities.NoteInput) (*entities.MerchantNote, error) {
	if err := authz.RequirePlatform(principal); err != nil {
		return nil, err
	}
	if _, err := u.merchantRepo.GetByID(ctx, merchantID); err != nil {
		return nil, err
	}

	note := &entities.MerchantNote{
		MerchantID: merchantID,
		AuthorID:   principal.UserID,
		Body:       input.Body,
	}
	if err := u.noteRepo.Create(ctx, note); err != nil {
		return nil, err
	}
	return note, nil
}

// ListNotes lists a merchant's internal review notes
func (u *ReviewUsecase) ListNotes(ctx context.Context, principal *entities.Principal, merchantID uuid.UUID) ([]*entities.MerchantNote, error) {
	if err := authz.RequirePlatform(principal); err != nil {
		return nil, err
	}
	return u.noteRepo.ListByMerchant(ctx, merchantID)
}

// ListEvents lists a merchant's status audit trail
func (u *ReviewUsecase) ListEvents(ctx context.Context, principal *entities.Principal, merchantID uuid.UUID) ([]*entities.MerchantEvent, error) {
	if err := authz.RequirePlatform(principal); err != nil {
		return nil, err
	}
	return u.eventRepo.ListByMerchant(ctx, merchantID)
}

// Delete removes a merchant and everything hanging off it
func (u *ReviewUsecase) Delete(ctx context.Context, principal *entities.Principal, merchantID uuid.UUID) error {
	if err := authz.RequireAdmin(principal); err != nil {
		return err
	}
	if _, err := u.merchantRepo.GetByID(ctx, merchantID); err != nil {
		return err
	}

	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.ownerRepo.DeleteByMerchant(txCtx, merchantID); err != nil {
			return err
		}
		if err := u.memberRepo.DeleteByMerchant(txCtx, merchantID); err != nil {
			return err
		}
		if err := u.noteRepo.DeleteByMerchant(txCtx, merchantID); err != nil {
			return err
		}
		if err := u.eventRepo.DeleteByMerchant(txCtx, merchantID); err != nil {
			return err
		}
		if err := u.settingsRepo.DeleteByMerchant(txCtx, merchantID); err != nil {
			return err
		}
		return u.merchantRepo.Delete(txCtx, merchantID)
	})
	if err != nil {
		return err
	}

	logger.Info(ctx, "merchant deleted",
		zap.String("merchant_id", merchantID.String()),
		zap.String("actor_id", principal.UserID.String()))
	return nil
}

// applyEvent resolves the transition, persists it, and appends exactly one
// audit event. Approval additionally cascades the member role promotion.
func (u *ReviewUsecase) applyEvent(ctx context.Context, principal *entities.Principal, merchantID uuid.UUID, event entities.MerchantEventType, reason string) (*entities.Merchant, error) {
	merchant, err := u.merchantRepo.GetByID(ctx, merchantID)
	if err != nil {
		return nil, err
	}

	next, err := entities.NextStatus(merchant.Status, event)
	if err != nil {
		return nil, err
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		// Write the reason before the status change so UpdateStatus owns
		// the status column and its timestamps.
		if event == entities.EventReject && reason != "" {
			merchant.RejectionReason = null.StringFrom(reason)
			if err := u.merchantRepo.Update(txCtx, merchant); err != nil {
				return err
			}
		}

		if err := u.merchantRepo.UpdateStatus(txCtx, merchantID, next); err != nil {
			return err
		}

		if event == entities.EventApprove {
			if err := u.promoteMembers(txCtx, merchantID); err != nil {
				return err
			}
		}

		auditEvent := &entities.MerchantEvent{
			MerchantID: merchantID,
			ActorID:    principal.UserID,
			EventType:  string(event),
		}
		if reason != "" {
			auditEvent.Detail = null.StringFrom(reason)
		}
		return u.eventRepo.Create(txCtx, auditEvent)
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "merchant status changed",
		zap.String("merchant_id", merchantID.String()),
		zap.String("event", string(event)),
		zap.String("status", string(next)))
	return u.merchantRepo.GetByID(ctx, merchantID)
}

// promoteMembers lifts every pending member of the merchant to the full
// merchant role.
func (u *ReviewUsecase) promoteMembers(ctx context.Context, merchantID uuid.UUID) error {
	members, err := u.memberRepo.ListByMerchant(ctx, merchantID)
	if err != nil {
		return err
	}
	for _, member := range members {
		if member.UserRole != entities.UserRoleMerchantPending {
			continue
		}
		if err := u.userRepo.UpdateRole(ctx, member.UserID, entities.UserRoleMerchant); err != nil {
			return err
		}
	}
	return nil
}
