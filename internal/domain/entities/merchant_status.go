package entities

import (
	"net/http"

	domainerrors "pigbank.backend/internal/domain/errors"
)

// MerchantEventType represents an event applied to a merchant application
type MerchantEventType string

// Event values double as the eventType recorded in the audit log.
const (
	EventSubmit        MerchantEventType = "submitted"
	EventApprove       MerchantEventType = "approved"
	EventReject        MerchantEventType = "rejected"
	EventRequestAction MerchantEventType = "action_required"
	EventStartReview   MerchantEventType = "review_started"
	EventSuspend       MerchantEventType = "suspended"
)

// merchantTransitions is the single transition table for merchant status.
// Legality of every review/submit action is decided here, nowhere else.
var merchantTransitions = map[MerchantStatus]map[MerchantEventType]MerchantStatus{
	MerchantStatusDraft: {
		EventSubmit: MerchantStatusSubmitted,
	},
	MerchantStatusSubmitted: {
		EventApprove:       MerchantStatusApproved,
		EventReject:        MerchantStatusRejected,
		EventRequestAction: MerchantStatusActionRequired,
		EventStartReview:   MerchantStatusUnderReview,
	},
	MerchantStatusActionRequired: {
		EventSubmit:      MerchantStatusSubmitted,
		EventApprove:     MerchantStatusApproved,
		EventReject:      MerchantStatusRejected,
		EventStartReview: MerchantStatusUnderReview,
	},
	MerchantStatusUnderReview: {
		EventApprove:       MerchantStatusApproved,
		EventReject:        MerchantStatusRejected,
		EventRequestAction: MerchantStatusActionRequired,
	},
	MerchantStatusApproved: {
		EventSuspend: MerchantStatusSuspended,
	},
	// rejected and suspended are terminal
}

// NextStatus resolves the status transition for an event. A transition not
// present in the table is rejected with ErrInvalidTransition.
func NextStatus(current MerchantStatus, event MerchantEventType) (MerchantStatus, error) {
	if events, ok := merchantTransitions[current]; ok {
		if next, ok := events[event]; ok {
			return next, nil
		}
	}
	return current, domainerrors.NewAppError(
		http.StatusConflict,
		domainerrors.CodeInvalidTransition,
		"cannot apply "+string(event)+" while status is "+string(current),
		domainerrors.ErrInvalidTransition,
	)
}

// DerivedOnboardingStatus keeps the secondary onboarding status in lock-step
// with the canonical status.
func DerivedOnboardingStatus(status MerchantStatus) OnboardingStatus {
	switch status {
	case MerchantStatusSubmitted, MerchantStatusActionRequired, MerchantStatusUnderReview:
		return OnboardingStatusSubmitted
	case MerchantStatusApproved, MerchantStatusSuspended:
		return OnboardingStatusApproved
	case MerchantStatusRejected:
		return OnboardingStatusRejected
	default:
		return OnboardingStatusPending
	}
}
