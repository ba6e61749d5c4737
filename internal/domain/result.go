package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared by repositories and services.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrStoreFailure = errors.New("store failure")
)

// ErrDuplicateMeetingID is returned by repositories when an insert violates meetingId uniqueness.
var ErrDuplicateMeetingID = fmt.Errorf("%w: meetingId already exists", ErrConflict)

// FailureReason classifies a failed operation for the caller.
type FailureReason string

const (
	ReasonValidation   FailureReason = "validation"
	ReasonNotFound     FailureReason = "not_found"
	ReasonConflict     FailureReason = "conflict"
	ReasonStoreFailure FailureReason = "store_failure"
)

// ReasonFor maps an error to its FailureReason. Anything that is not a known business
// error is a store failure.
func ReasonFor(err error) FailureReason {
	switch {
	case errors.Is(err, ErrValidation):
		return ReasonValidation
	case errors.Is(err, ErrNotFound):
		return ReasonNotFound
	case errors.Is(err, ErrConflict):
		return ReasonConflict
	default:
		return ReasonStoreFailure
	}
}

// MeetupResult is the envelope returned by meetup operations.
// swagger:model MeetupResult
type MeetupResult struct {
	Success bool          `json:"success"`
	Reason  FailureReason `json:"reason,omitempty"`
	Message string        `json:"message,omitempty"`
	Meeting *Meetup       `json:"meeting,omitempty"`
}

// Succeeded returns a successful MeetupResult carrying m (which may be nil).
func Succeeded(m *Meetup) MeetupResult {
	return MeetupResult{Success: true, Meeting: m}
}

// Failed returns a failed MeetupResult classified from err.
func Failed(err error) MeetupResult {
	return MeetupResult{Reason: ReasonFor(err), Message: err.Error()}
}

// RSVPOutcome distinguishes the results of an RSVP attempt.
type RSVPOutcome string

const (
	RSVPAdded     RSVPOutcome = "added"
	RSVPDuplicate RSVPOutcome = "duplicate"
	RSVPNotFound  RSVPOutcome = "not_found"
	// RSVPFailed covers validation and store failures; Reason tells which.
	RSVPFailed RSVPOutcome = "failed"
)

// RSVPResult is the envelope returned by AddRSVP.
// swagger:model RSVPResult
type RSVPResult struct {
	Outcome RSVPOutcome   `json:"outcome"`
	Reason  FailureReason `json:"reason,omitempty"`
	Message string        `json:"message,omitempty"`
	Meeting *Meetup       `json:"meeting,omitempty"`
}
