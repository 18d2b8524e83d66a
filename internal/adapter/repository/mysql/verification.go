package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	verifDomain "github.com/okey68/paya-marketplace-sub000/internal/domain/verification"
)

type VerificationRepository struct{ db *gorm.DB }

func NewVerificationRepository(db *gorm.DB) *VerificationRepository {
	return &VerificationRepository{db: db}
}

func (r *VerificationRepository) Create(ctx context.Context, v *verifDomain.HRVerification) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *VerificationRepository) Save(ctx context.Context, v *verifDomain.HRVerification) error {
	return r.db.WithContext(ctx).Save(v).Error
}

func (r *VerificationRepository) GetByVerificationID(ctx context.Context, verificationID string) (*verifDomain.HRVerification, error) {
	var out verifDomain.HRVerification
	res := r.db.WithContext(ctx).Where("verification_id = ?", verificationID).First(&out)
	return &out, res.Error
}

func (r *VerificationRepository) GetByVerificationIDForUpdate(ctx context.Context, verificationID string) (*verifDomain.HRVerification, error) {
	var out verifDomain.HRVerification
	res := forUpdate(r.db.WithContext(ctx)).Where("verification_id = ?", verificationID).First(&out)
	return &out, res.Error
}

func (r *VerificationRepository) GetByOrderID(ctx context.Context, orderID string) (*verifDomain.HRVerification, error) {
	var out verifDomain.HRVerification
	res := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&out)
	return &out, res.Error
}

// awaitingStatuses are the states a sweep may act on; everything else is
// either not yet sent or already resolved.
var awaitingStatuses = []verifDomain.Status{
	verifDomain.StatusEmailSent,
	verifDomain.StatusAwaitingResponse,
}

func (r *VerificationRepository) ListTimeoutCandidates(ctx context.Context, now time.Time) ([]*verifDomain.HRVerification, error) {
	var out []*verifDomain.HRVerification
	res := r.db.WithContext(ctx).
		Where("status IN ? AND is_escalated = ?", awaitingStatuses, false).
		Where("response_deadline IS NOT NULL AND response_deadline < ?", now).
		Order("response_deadline ASC").
		Find(&out)
	return out, res.Error
}

func (r *VerificationRepository) ListReminderCandidates(ctx context.Context, cutoff time.Time) ([]*verifDomain.HRVerification, error) {
	var rows []*verifDomain.HRVerification
	res := r.db.WithContext(ctx).
		Where("status IN ? AND is_escalated = ?", awaitingStatuses, false).
		Where("email_sent_at IS NOT NULL AND email_sent_at < ?", cutoff).
		Order("email_sent_at ASC").
		Find(&rows)
	if res.Error != nil {
		return nil, res.Error
	}
	// the reminder cap lives in a JSON column, so it is filtered here
	// rather than in SQL
	out := rows[:0]
	for _, v := range rows {
		limit := v.MaxReminders
		if limit <= 0 {
			limit = verifDomain.DefaultMaxReminders
		}
		if len(v.RemindersSent) < limit {
			out = append(out, v)
		}
	}
	return out, nil
}
