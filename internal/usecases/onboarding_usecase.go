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
	"pigbank.backend/pkg/logger"
)

// OnboardingUsecase drives the merchant application from draft to submission
type OnboardingUsecase struct {
	merchantRepo   repositories.MerchantRepository
	ownerRepo      repositories.OwnerRepository
	membershipRepo repositories.MembershipRepository
	userRepo       repositories.UserRepository
	eventRepo      repositories.EventRepository
	uow            repositories.UnitOfWork
}

// NewOnboardingUsecase creates a new onboarding usecase
func NewOnboardingUsecase(
	merchantRepo repositories.MerchantRepository,
	ownerRepo repositories.OwnerRepository,
	membershipRepo repositories.MembershipRepository,
	userRepo repositories.UserRepository,
	eventRepo repositories.EventRepository,
	uow repositories.UnitOfWork,
) *OnboardingUsecase {
	return &OnboardingUsecase{
		merchantRepo:   merchantRepo,
		ownerRepo:      ownerRepo,
		membershipRepo: membershipRepo,
		userRepo:       userRepo,
		eventRepo:      eventRepo,
		uow:            uow,
	}
}

// GetDraft loads the principal's merchant application, creating an empty
// draft with an owner membership on first access.
func (u *OnboardingUsecase) GetDraft(ctx context.Context, principal *entities.Principal) (*entities.Merchant, error) {
	merchant, err := u.merchantRepo.GetByUserID(ctx, principal.UserID)
	if err == nil {
		return merchant, nil
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	created := &entities.Merchant{Status: entities.MerchantStatusDraft}
	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.merchantRepo.Create(txCtx, created); err != nil {
			return err
		}
		return u.membershipRepo.Create(txCtx, &entities.Membership{
			MerchantID:   created.ID,
			UserID:       principal.UserID,
			MerchantRole: entities.MerchantRoleOwner,
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "merchant draft created",
		zap.String("merchant_id", created.ID.String()),
		zap.String("user_id", principal.UserID.String()))
	created.OnboardingStatus = entities.OnboardingStatusPending
	return created, nil
}

// UpdateDraft applies a partial auto-save write. Only fields present in the
// input are touched. Allowed while the application is editable
// (draft or action_required) and only by owners and managers.
func (u *OnboardingUsecase) UpdateDraft(ctx context.Context, principal *entities.Principal, input *entities.MerchantDraftInput) (*entities.Merchant, error) {
	merchant, membership, err := u.loadEditable(ctx, principal)
	if err != nil {
		return nil, err
	}
	if !authz.CanManageTeam(membership.MerchantRole) {
		return nil, domainerrors.Forbidden("only owners and managers can edit the application")
	}

	applyDraftInput(merchant, input)

	if err := u.merchantRepo.Update(ctx, merchant); err != nil {
		return nil, err
	}
	return u.merchantRepo.GetByID(ctx, merchant.ID)
}

// AddOwner attaches a beneficial owner to the application
func (u *OnboardingUsecase) AddOwner(ctx context.Context, principal *entities.Principal, input *entities.OwnerInput) (*entities.MerchantOwner, error) {
	merchant, membership, err := u.loadEditable(ctx, principal)
	if err != nil {
		return nil, err
	}
	if !authz.CanManageTeam(membership.MerchantRole) {
		return nil, domainerrors.Forbidden("only owners and managers can edit the application")
	}

	owner := ownerFromInput(input)
	owner.MerchantID = merchant.ID
	if err := u.ownerRepo.Create(ctx, owner); err != nil {
		return nil, err
	}
	return owner, nil
}

// UpdateOwner rewrites a beneficial owner record
func (u *OnboardingUsecase) UpdateOwner(ctx context.Context, principal *entities.Principal, ownerID uuid.UUID, input *entities.OwnerInput) (*entities.MerchantOwner, error) {
	merchant, membership, err := u.loadEditable(ctx, principal)
	if err != nil {
		return nil, err
	}
	if !authz.CanManageTeam(membership.MerchantRole) {
		return nil, domainerrors.Forbidden("only owners and managers can edit the application")
	}

	existing, err := u.ownerRepo.GetByID(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if existing.MerchantID != merchant.ID {
		return nil, domainerrors.NotFound("owner not found")
	}

	updated := ownerFromInput(input)
	updated.ID = existing.ID
	updated.MerchantID = merchant.ID
	if err := u.ownerRepo.Update(ctx, updated); err != nil {
		return nil, err
	}
	return u.ownerRepo.GetByID(ctx, ownerID)
}

// RemoveOwner deletes a beneficial owner record
func (u *OnboardingUsecase) RemoveOwner(ctx context.Context, principal *entities.Principal, ownerID uuid.UUID) error {
	merchant, membership, err := u.loadEditable(ctx, principal)
	if err != nil {
		return err
	}
	if !authz.CanManageTeam(membership.MerchantRole) {
		return domainerrors.Forbidden("only owners and managers can edit the application")
	}

	existing, err := u.ownerRepo.GetByID(ctx, ownerID)
	if err != nil {
		return err
	}
	if existing.MerchantID != merchant.ID {
		return domainerrors.NotFound("owner not found")
	}
	return u.ownerRepo.Delete(ctx, ownerID)
}

// ListOwners lists the application's beneficial owners
func (u *OnboardingUsecase) ListOwners(ctx context.Context, principal *entities.Principal) ([]*entities.MerchantOwner, error) {
	merchant, err := u.merchantRepo.GetByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}
	return u.ownerRepo.ListByMerchant(ctx, merchant.ID)
}

// Submit validates the application and moves it to submitted. The status
// change, role promotion, and audit event commit atomically.
func (u *OnboardingUsecase) Submit(ctx context.Context, principal *entities.Principal) (*entities.Merchant, error) {
	merchant, err := u.merchantRepo.GetByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, err
	}

	membership, err := u.membershipRepo.GetByUserAndMerchant(ctx, principal.UserID, merchant.ID)
	if err != nil {
		return nil, err
	}
	if !authz.CanManageTeam(membership.MerchantRole) {
		return nil, domainerrors.Forbidden("only owners and managers can submit the application")
	}

	next, err := entities.NextStatus(merchant.Status, entities.EventSubmit)
	if err != nil {
		return nil, err
	}

	owners, err := u.ownerRepo.ListByMerchant(ctx, merchant.ID)
	if err != nil {
		return nil, err
	}
	if err := validateSubmission(merchant, owners); err != nil {
		return nil, err
	}

	err = u.uow.Do(ctx, func(txCtx context.Context) error {
		if err := u.merchantRepo.UpdateStatus(txCtx, merchant.ID, next); err != nil {
			return err
		}

		// Promote the submitting user out of the pending role
		user, err := u.userRepo.GetByID(txCtx, principal.UserID)
		if err != nil {
			return err
		}
		if user.Role == entities.UserRoleMerchantPending {
			if err := u.userRepo.UpdateRole(txCtx, user.ID, entities.UserRoleMerchant); err != nil {
				return err
			}
		}

		return u.eventRepo.Create(txCtx, &entities.MerchantEvent{
			MerchantID: merchant.ID,
			ActorID:    principal.UserID,
			EventType:  string(entities.EventSubmit),
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "merchant application submitted", zap.String("merchant_id", merchant.ID.String()))
	return u.merchantRepo.GetByID(ctx, merchant.ID)
}

// loadEditable loads the principal's merchant and membership and checks the
// application is in an editable status.
func (u *OnboardingUsecase) loadEditable(ctx context.Context, principal *entities.Principal) (*entities.Merchant, *entities.Membership, error) {
	merchant, err := u.merchantRepo.GetByUserID(ctx, principal.UserID)
	if err != nil {
		return nil, nil, err
	}

	membership, err := u.membershipRepo.GetByUserAndMerchant(ctx, principal.UserID, merchant.ID)
	if err != nil {
		return nil, nil, err
	}

	if merchant.Status != entities.MerchantStatusDraft && merchant.Status != entities.MerchantStatusActionRequired {
		return nil, nil, domainerrors.NewAppError(
			409,
			domainerrors.CodeInvalidTransition,
			"application can no longer be edited",
			domainerrors.ErrMerchantNotEditable,
		)
	}
	return merchant, membership, nil
}

// validateSubmission enforces the server-side completeness rules
func validateSubmission(merchant *entities.Merchant, owners []*entities.MerchantOwner) error {
	if merchant.LegalName == "" || merchant.EIN == "" || merchant.BusinessType == "" {
		return domainerrors.BadRequest("business profile is incomplete")
	}
	if merchant.AddressLine1 == "" || merchant.City == "" || merchant.State == "" || merchant.PostalCode == "" || merchant.Country == "" {
		return domainerrors.BadRequest("business address is incomplete")
	}
	if !merchant.Website.Valid || !merchant.ProductInfo.Valid {
		return domainerrors.BadRequest("website and product information are required")
	}
	if !merchant.BankName.Valid || !merchant.RoutingNumber.Valid || !merchant.AccountNumber.Valid {
		return domainerrors.BadRequest("bank details are incomplete")
	}
	if !merchant.VoidedCheckURL.Valid || !merchant.BusinessLicenseURL.Valid {
		return domainerrors.BadRequest("voided check and business license documents are required")
	}

	hasConsentedOwner := false
	for _, owner := range owners {
		if owner.KYCConsent {
			hasConsentedOwner = true
			break
		}
	}
	if !hasConsentedOwner {
		return domainerrors.BadRequest("at least one beneficial owner with KYC consent is required")
	}
	return nil
}

func applyDraftInput(merchant *entities.Merchant, input *entities.MerchantDraftInput) {
	if input.LegalName != nil {
		merchant.LegalName = *input.LegalName
	}
	if input.DBAName != nil {
		merchant.DBAName = null.StringFrom(*input.DBAName)
	}
	if input.EIN != nil {
		merchant.EIN = *input.EIN
	}
	if input.BusinessType != nil {
		merchant.BusinessType = *input.BusinessType
	}
	if input.Website != nil {
		merchant.Website = null.StringFrom(*input.Website)
	}
	if input.ProductInfo != nil {
		merchant.ProductInfo = null.StringFrom(*input.ProductInfo)
	}
	if input.AddressLine1 != nil {
		merchant.AddressLine1 = *input.AddressLine1
	}
	if input.AddressLine2 != nil {
		merchant.AddressLine2 = null.StringFrom(*input.AddressLine2)
	}
	if input.City != nil {
		merchant.City = *input.City
	}
	if input.State != nil {
		merchant.State = *input.State
	}
	if input.PostalCode != nil {
		merchant.PostalCode = *input.PostalCode
	}
	if input.Country != nil {
		merchant.Country = *input.Country
	}
	if input.ExpectedMonthlyVolume != nil {
		merchant.ExpectedMonthlyVolume = null.Float64From(*input.ExpectedMonthlyVolume)
	}
	if input.AverageTicket != nil {
		merchant.AverageTicket = null.Float64From(*input.AverageTicket)
	}
	if input.BankName != nil {
		merchant.BankName = null.StringFrom(*input.BankName)
	}
	if input.RoutingNumber != nil {
		merchant.RoutingNumber = null.StringFrom(*input.RoutingNumber)
	}
	if input.AccountNumber != nil {
		merchant.AccountNumber = null.StringFrom(*input.AccountNumber)
	}
	if input.VoidedCheckURL != nil {
		merchant.VoidedCheckURL = null.StringFrom(*input.VoidedCheckURL)
	}
	if input.BusinessLicenseURL != nil {
		merchant.BusinessLicenseURL = null.StringFrom(*input.BusinessLicenseURL)
	}
}

func ownerFromInput(input *entities.OwnerInput) *entities.MerchantOwner {
	owner := &entities.MerchantOwner{
		FirstName:        input.FirstName,
		LastName:         input.LastName,
		DateOfBirth:      input.DateOfBirth,
		HomeAddress:      input.HomeAddress,
		SSN:              input.SSN,
		OwnershipPercent: input.OwnershipPercent,
		KYCConsent:       input.KYCConsent,
	}
	if input.GovIDFrontURL != "" {
		owner.GovIDFrontURL = null.StringFrom(input.GovIDFrontURL)
	}
	if input.GovIDBackURL != "" {
		owner.GovIDBackURL = null.StringFrom(input.GovIDBackURL)
	}
	return owner
}
