package verificationmock

import (
	"context"
	"time"

	domain "github.com/okey68/paya-marketplace-sub000/internal/domain/verification"
)

// Repo is a function-backed mock that satisfies verification.Repository.
type Repo struct {
	CreateFn                       func(ctx context.Context, v *domain.HRVerification) error
	GetByVerificationIDFn          func(ctx context.Context, verificationID string) (*domain.HRVerification, error)
	GetByVerificationIDForUpdateFn func(ctx context.Context, verificationID string) (*domain.HRVerification, error)
	GetByOrderIDFn                 func(ctx context.Context, orderID string) (*domain.HRVerification, error)
	SaveFn                         func(ctx context.Context, v *domain.HRVerification) error
	ListTimeoutCandidatesFn        func(ctx context.Context, now time.Time) ([]*domain.HRVerification, error)
	ListReminderCandidatesFn       func(ctx context.Context, cutoff time.Time) ([]*domain.HRVerification, error)
}

func (m *Repo) Create(ctx context.Context, v *domain.HRVerification) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, v)
	}
	return nil
}

func (m *Repo) GetByVerificationID(ctx context.Context, verificationID string) (*domain.HRVerification, error) {
	if m.GetByVerificationIDFn != nil {
		return m.GetByVerificationIDFn(ctx, verificationID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByVerificationIDForUpdate(ctx context.Context, verificationID string) (*domain.HRVerification, error) {
	if m.GetByVerificationIDForUpdateFn != nil {
		return m.GetByVerificationIDForUpdateFn(ctx, verificationID)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByOrderID(ctx context.Context, orderID string) (*domain.HRVerification, error) {
	if m.GetByOrderIDFn != nil {
		return m.GetByOrderIDFn(ctx, orderID)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, v *domain.HRVerification) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, v)
	}
	return nil
}

func (m *Repo) ListTimeoutCandidates(ctx context.Context, now time.Time) ([]*domain.HRVerification, error) {
	if m.ListTimeoutCandidatesFn != nil {
		return m.ListTimeoutCandidatesFn(ctx, now)
	}
	return nil, nil
}

func (m *Repo) ListReminderCandidates(ctx context.Context, cutoff time.Time) ([]*domain.HRVerification, error) {
	if m.ListReminderCandidatesFn != nil {
		return m.ListReminderCandidatesFn(ctx, cutoff)
	}
	return nil, nil
}
