package verification

import (
	"errors"
	"testing"
	"time"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusPendingSend, StatusEmailSent},
		{StatusPendingSend, StatusCustomerContacted},
		{StatusPendingSend, StatusCancelled},
		{StatusEmailSent, StatusAwaitingResponse},
		{StatusEmailSent, StatusVerified},
		{StatusEmailSent, StatusTimeout},
		{StatusAwaitingResponse, StatusUnverified},
		{StatusCustomerContacted, StatusEmailSent},
		{StatusTimeout, StatusVerified},
		{StatusTimeout, StatusCancelled},
	}
	for _, tr := range allowed {
		if !CanTransition(tr.from, tr.to) {
			t.Errorf("expected %s -> %s to be legal", tr.from, tr.to)
		}
	}

	denied := []struct{ from, to Status }{
		{StatusPendingSend, StatusVerified},
		{StatusPendingSend, StatusAwaitingResponse},
		{StatusPendingSend, StatusTimeout},
		{StatusVerified, StatusUnverified},
		{StatusVerified, StatusCancelled},
		{StatusUnverified, StatusVerified},
		{StatusCancelled, StatusEmailSent},
		{StatusTimeout, StatusEmailSent},
	}
	for _, tr := range denied {
		if CanTransition(tr.from, tr.to) {
			t.Errorf("expected %s -> %s to be illegal", tr.from, tr.to)
		}
	}
}

func TestTerminal(t *testing.T) {
	for _, s := range []Status{StatusVerified, StatusUnverified, StatusCancelled} {
		if !s.Terminal() {
			t.Errorf("%s should be terminal", s)
		}
	}
	for _, s := range []Status{StatusPendingSend, StatusEmailSent, StatusAwaitingResponse,
		StatusCustomerContacted, StatusTimeout} {
		if s.Terminal() {
			t.Errorf("%s should not be terminal", s)
		}
	}
}

func TestTransition(t *testing.T) {
	now := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)

	v := &HRVerification{Status: StatusPendingSend}
	if err := Transition(v, StatusEmailSent, now, "system", "initial send"); err != nil {
		t.Fatalf("Transition: %v", err)
	}
	if v.Status != StatusEmailSent {
		t.Errorf("status=%s", v.Status)
	}
	if len(v.Timeline) != 1 || v.Timeline[0].Action != "status_changed" {
		t.Errorf("timeline: %+v", v.Timeline)
	}

	// illegal move leaves state untouched
	v2 := &HRVerification{Status: StatusPendingSend}
	err := Transition(v2, StatusVerified, now, "admin", "")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("want ErrInvalidTransition, got %v", err)
	}
	if v2.Status != StatusPendingSend || len(v2.Timeline) != 0 {
		t.Errorf("state mutated on illegal transition: %+v", v2)
	}

	// terminal states reject everything
	v3 := &HRVerification{Status: StatusVerified}
	if err := Transition(v3, StatusUnverified, now, "admin", ""); !errors.Is(err, ErrAlreadyResolved) {
		t.Fatalf("want ErrAlreadyResolved, got %v", err)
	}
}
