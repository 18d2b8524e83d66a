package verification

import (
	"fmt"
	"time"
)

// transitions is the explicit state table. Terminal states map to nil:
// verified, unverified and cancelled admit no further transitions, so a
// resolution cannot be overwritten by a later call.
//
// awaiting_response is recorded by the employer-reply intake when an HR
// inbox acknowledges the request; no operation in this service emits it.
// It stays in the table and in both sweep predicates so acknowledged
// threads still get reminders, time out and resolve like unacknowledged
// ones.
var transitions = map[Status][]Status{
	StatusPendingSend: {StatusEmailSent, StatusCustomerContacted, StatusCancelled},
	StatusEmailSent: {StatusAwaitingResponse, StatusVerified, StatusUnverified,
		StatusCustomerContacted, StatusTimeout, StatusCancelled},
	StatusAwaitingResponse: {StatusVerified, StatusUnverified, StatusCustomerContacted,
		StatusTimeout, StatusCancelled},
	StatusCustomerContacted: {StatusEmailSent, StatusAwaitingResponse, StatusVerified,
		StatusUnverified, StatusTimeout, StatusCancelled},
	StatusTimeout:    {StatusVerified, StatusUnverified, StatusCustomerContacted, StatusCancelled},
	StatusVerified:   nil,
	StatusUnverified: nil,
	StatusCancelled:  nil,
}

func (s Status) Terminal() bool {
	switch s {
	case StatusVerified, StatusUnverified, StatusCancelled:
		return true
	}
	return false
}

// CanTransition reports whether from → to is a legal move.
func CanTransition(from, to Status) bool {
	for _, t := range transitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

// Transition flips the status after checking the table and appends the
// matching timeline entry. Callers persist the record in the same
// transaction.
func Transition(v *HRVerification, to Status, at time.Time, performedBy, details string) error {
	if v.Status.Terminal() {
		return fmt.Errorf("%w: %s is terminal", ErrAlreadyResolved, v.Status)
	}
	if !CanTransition(v.Status, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, v.Status, to)
	}
	v.Status = to
	v.AppendTimeline("status_changed", at, performedBy, details)
	return nil
}
