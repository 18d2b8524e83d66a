package verification

import (
	"time"

	domainVerif "github.com/okey68/paya-marketplace-sub000/internal/domain/verification"
)

// DTO is the wire view of a verification record.
type DTO struct {
	VerificationID   string                       `json:"verification_id"`
	OrderID          string                       `json:"order_id"`
	CustomerID       string                       `json:"customer_id"`
	CompanyID        string                       `json:"company_id"`
	Status           string                       `json:"status"`
	HRContact        domainVerif.ContactSnapshot  `json:"hr_contact"`
	Customer         domainVerif.CustomerSnapshot `json:"customer"`
	EmailSentAt      *time.Time                   `json:"email_sent_at,omitempty"`
	ResponseDeadline *time.Time                   `json:"response_deadline,omitempty"`
	RemindersSent    int                          `json:"reminders_sent"`
	MaxReminders     int                          `json:"max_reminders"`
	IsEscalated      bool                         `json:"is_escalated"`
	EscalatedAt      *time.Time                   `json:"escalated_at,omitempty"`
	Result           *domainVerif.Result          `json:"verification_result,omitempty"`
	ReviewedBy       string                       `json:"reviewed_by,omitempty"`
	ReviewedAt       *time.Time                   `json:"reviewed_at,omitempty"`
	Timeline         domainVerif.Timeline         `json:"timeline"`
	CreatedAt        time.Time                    `json:"created_at"`
}

func toDTO(v *domainVerif.HRVerification) *DTO {
	return &DTO{
		VerificationID:   v.VerificationID,
		OrderID:          v.OrderID,
		CustomerID:       v.CustomerID,
		CompanyID:        v.CompanyID,
		Status:           string(v.Status),
		HRContact:        v.HRContact,
		Customer:         v.Customer,
		EmailSentAt:      v.EmailSentAt,
		ResponseDeadline: v.ResponseDeadline,
		RemindersSent:    len(v.RemindersSent),
		MaxReminders:     v.MaxReminders,
		IsEscalated:      v.IsEscalated,
		EscalatedAt:      v.EscalatedAt,
		Result:           v.Result,
		ReviewedBy:       v.ReviewedBy,
		ReviewedAt:       v.ReviewedAt,
		Timeline:         v.Timeline,
		CreatedAt:        v.CreatedAt,
	}
}
