package verification

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("verification not found")
	ErrAlreadyExists      = errors.New("verification already exists for order")
	ErrInvalidTransition  = errors.New("invalid verification transition")
	ErrAlreadyResolved    = errors.New("verification already resolved")
	ErrAlreadyEscalated   = errors.New("verification already escalated")
	ErrReminderCapReached = errors.New("reminder cap reached")
	ErrReasonRequired     = errors.New("reason is required")
	ErrNoCustomer         = errors.New("order has no customer")
	ErrNoEmployerMatch    = errors.New("no employer match for customer")
)

const DefaultMaxReminders = 2

type Status string

const (
	StatusPendingSend       Status = "pending_send"
	StatusEmailSent         Status = "email_sent"
	StatusAwaitingResponse  Status = "awaiting_response"
	StatusVerified          Status = "verified"
	StatusUnverified        Status = "unverified"
	StatusCustomerContacted Status = "customer_contacted"
	StatusTimeout           Status = "timeout"
	StatusCancelled         Status = "cancelled"
)

// ContactSnapshot freezes the HR contact at creation time; later edits
// to the company record do not touch an in-flight verification.
type ContactSnapshot struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	IsPrimary bool   `json:"is_primary"`
}

func (s ContactSnapshot) Value() (driver.Value, error) { return json.Marshal(s) }
func (s *ContactSnapshot) Scan(value any) error        { return scanJSON(s, value) }

type CustomerSnapshot struct {
	CustomerID   string `json:"customer_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	EmployerName string `json:"employer_name"`
	JobTitle     string `json:"job_title,omitempty"`
}

func (s CustomerSnapshot) Value() (driver.Value, error) { return json.Marshal(s) }
func (s *CustomerSnapshot) Scan(value any) error        { return scanJSON(s, value) }

type OrderSnapshot struct {
	OrderID     string  `json:"order_id"`
	TotalAmount float64 `json:"total_amount"`
	LoanAmount  float64 `json:"loan_amount"`
}

func (s OrderSnapshot) Value() (driver.Value, error) { return json.Marshal(s) }
func (s *OrderSnapshot) Scan(value any) error        { return scanJSON(s, value) }

type Reminder struct {
	SentAt    time.Time `json:"sent_at"`
	To        string    `json:"to"`
	MessageID string    `json:"message_id,omitempty"`
}

type ReminderList []Reminder

func (l ReminderList) Value() (driver.Value, error) { return json.Marshal(l) }
func (l *ReminderList) Scan(value any) error        { return scanJSON(l, value) }

type Result struct {
	Verified   bool   `json:"verified"`
	Reason     string `json:"reason,omitempty"`
	VerifiedBy string `json:"verified_by"`
}

func (r Result) Value() (driver.Value, error) { return json.Marshal(r) }
func (r *Result) Scan(value any) error        { return scanJSON(r, value) }

type CustomerContact struct {
	ContactedAt time.Time `json:"contacted_at"`
	ContactedBy string    `json:"contacted_by"`
	Reason      string    `json:"reason"`
	Method      string    `json:"method"`
}

func (c CustomerContact) Value() (driver.Value, error) { return json.Marshal(c) }
func (c *CustomerContact) Scan(value any) error        { return scanJSON(c, value) }

type TimelineEntry struct {
	Action      string    `json:"action"`
	Timestamp   time.Time `json:"timestamp"`
	PerformedBy string    `json:"performed_by,omitempty"`
	Details     string    `json:"details,omitempty"`
}

type Timeline []TimelineEntry

func (t Timeline) Value() (driver.Value, error) { return json.Marshal(t) }
func (t *Timeline) Scan(value any) error        { return scanJSON(t, value) }

// HRVerification tracks one employer verification; the unique index on
// order_id enforces at most one record per order.
type HRVerification struct {
	ID             uint64 `gorm:"primaryKey;column:id" json:"-"`
	VerificationID string `gorm:"size:32;uniqueIndex:ux_hr_verifications_vid" json:"verification_id"`
	OrderID        string `gorm:"size:32;uniqueIndex:ux_hr_verifications_order" json:"order_id"`
	CustomerID     string `gorm:"size:32;index" json:"customer_id"`
	CompanyID      string `gorm:"size:32;index" json:"company_id"`

	HRContact ContactSnapshot  `gorm:"column:hr_contact;type:json" json:"hr_contact"`
	Customer  CustomerSnapshot `gorm:"column:customer_snapshot;type:json" json:"customer"`
	Order     OrderSnapshot    `gorm:"column:order_snapshot;type:json" json:"order"`

	Status           Status       `gorm:"size:32;index" json:"status"`
	PayslipPath      string       `gorm:"type:text" json:"payslip_path,omitempty"`
	AgreementPDFPath string       `gorm:"type:text" json:"agreement_pdf_path,omitempty"`
	EmailSentAt      *time.Time   `json:"email_sent_at,omitempty"`
	ResponseDeadline *time.Time   `json:"response_deadline,omitempty"`
	RemindersSent    ReminderList `gorm:"column:reminders_sent;type:json" json:"reminders_sent"`
	MaxReminders     int          `gorm:"default:2" json:"max_reminders"`

	Result     *Result    `gorm:"column:verification_result;type:json" json:"verification_result,omitempty"`
	ReviewedBy string     `gorm:"size:32" json:"reviewed_by,omitempty"`
	ReviewedAt *time.Time `json:"reviewed_at,omitempty"`

	CustomerContact *CustomerContact `gorm:"column:customer_contact;type:json" json:"customer_contact,omitempty"`

	IsEscalated      bool       `gorm:"index" json:"is_escalated"`
	EscalatedAt      *time.Time `json:"escalated_at,omitempty"`
	EscalationReason string     `gorm:"type:text" json:"escalation_reason,omitempty"`

	Timeline Timeline `gorm:"column:timeline;type:json" json:"timeline"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (HRVerification) TableName() string { return "hr_verifications" }

// AppendTimeline records one audit entry; the slice is append-only.
func (v *HRVerification) AppendTimeline(action string, at time.Time, performedBy, details string) {
	v.Timeline = append(v.Timeline, TimelineEntry{
		Action:      action,
		Timestamp:   at,
		PerformedBy: performedBy,
		Details:     details,
	})
}

func scanJSON(dst any, value any) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported column type %T", value)
	}
}
