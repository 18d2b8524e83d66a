package verification

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, v *HRVerification) error
	GetByVerificationID(ctx context.Context, verificationID string) (*HRVerification, error)
	// GetByVerificationIDForUpdate locks the row for the enclosing
	// transaction; sweep actions re-check their predicate on the locked
	// row before acting.
	GetByVerificationIDForUpdate(ctx context.Context, verificationID string) (*HRVerification, error)
	GetByOrderID(ctx context.Context, orderID string) (*HRVerification, error)
	Save(ctx context.Context, v *HRVerification) error

	// ListTimeoutCandidates returns non-escalated records in email_sent
	// or awaiting_response whose response deadline is before now.
	ListTimeoutCandidates(ctx context.Context, now time.Time) ([]*HRVerification, error)
	// ListReminderCandidates returns records in email_sent or
	// awaiting_response whose email was sent before cutoff and that have
	// not yet exhausted their reminder cap.
	ListReminderCandidates(ctx context.Context, cutoff time.Time) ([]*HRVerification, error)
}
