package entities

import (
	"errors"
	"testing"

	domainerrors "pigbank.backend/internal/domain/errors"
)

func TestNextStatus_AllowedTransitions(t *testing.T) {
	cases := []struct {
		from  MerchantStatus
		event MerchantEventType
		want  MerchantStatus
	}{
		{MerchantStatusDraft, EventSubmit, MerchantStatusSubmitted},
		{MerchantStatusSubmitted, EventApprove, MerchantStatusApproved},
		{MerchantStatusSubmitted, EventReject, MerchantStatusRejected},
		{MerchantStatusSubmitted, EventRequestAction, MerchantStatusActionRequired},
		{MerchantStatusSubmitted, EventStartReview, MerchantStatusUnderReview},
		{MerchantStatusActionRequired, EventSubmit, MerchantStatusSubmitted},
		{MerchantStatusActionRequired, EventApprove, MerchantStatusApproved},
		{MerchantStatusActionRequired, EventReject, MerchantStatusRejected},
		{MerchantStatusActionRequired, EventStartReview, MerchantStatusUnderReview},
		{MerchantStatusUnderReview, EventApprove, MerchantStatusApproved},
		{MerchantStatusUnderReview, EventReject, MerchantStatusRejected},
		{MerchantStatusUnderReview, EventRequestAction, MerchantStatusActionRequired},
		{MerchantStatusApproved, EventSuspend, MerchantStatusSuspended},
	}
	for _, tc := range cases {
		got, err := NextStatus(tc.from, tc.event)
		if err != nil {
			t.Fatalf("%s + %s: unexpected error %v", tc.from, tc.event, err)
		}
		if got != tc.want {
			t.Fatalf("%s + %s: expected %s, got %s", tc.from, tc.event, tc.want, got)
		}
	}
}

func TestNextStatus_RejectedTransitions(t *testing.T) {
	cases := []struct {
		from  MerchantStatus
		event MerchantEventType
	}{
		{MerchantStatusDraft, EventApprove},
		{MerchantStatusDraft, EventSuspend},
		{MerchantStatusSubmitted, EventSubmit},
		{MerchantStatusUnderReview, EventSubmit},
		{MerchantStatusApproved, EventApprove},
		{MerchantStatusApproved, EventReject},
		{MerchantStatusRejected, EventSubmit},
		{MerchantStatusRejected, EventApprove},
		{MerchantStatusSuspended, EventApprove},
		{MerchantStatusSuspended, EventSubmit},
	}
	for _, tc := range cases {
		got, err := NextStatus(tc.from, tc.event)
		if err == nil {
			t.Fatalf("%s + %s: expected error, got %s", tc.from, tc.event, got)
		}
		if !errors.Is(err, domainerrors.ErrInvalidTransition) {
			t.Fatalf("%s + %s: expected ErrInvalidTransition, got %v", tc.from, tc.event, err)
		}
		if got != tc.from {
			t.Fatalf("%s + %s: status must not move on rejection, got %s", tc.from, tc.event, got)
		}

		var appErr *domainerrors.AppError
		if !errors.As(err, &appErr) || appErr.Status != 409 {
			t.Fatalf("%s + %s: expected a 409 app error, got %v", tc.from, tc.event, err)
		}
	}
}

func TestDerivedOnboardingStatus(t *testing.T) {
	cases := map[MerchantStatus]OnboardingStatus{
		MerchantStatusDraft:          OnboardingStatusPending,
		MerchantStatusSubmitted:      OnboardingStatusSubmitted,
		MerchantStatusActionRequired: OnboardingStatusSubmitted,
		MerchantStatusUnderReview:    OnboardingStatusSubmitted,
		MerchantStatusApproved:       OnboardingStatusApproved,
		MerchantStatusSuspended:      OnboardingStatusApproved,
		MerchantStatusRejected:       OnboardingStatusRejected,
	}
	for status, want := range cases {
		if got := DerivedOnboardingStatus(status); got != want {
			t.Fatalf("%s: expected %s, got %s", status, want, got)
		}
	}
}
