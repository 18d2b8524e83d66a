package order

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/okey68/paya-marketplace-sub000/internal/domain/underwriting"
)

var (
	ErrNotFound           = errors.New("order not found")
	ErrUnknownStatus      = errors.New("unknown order status")
	ErrNotVerified        = errors.New("order is not hr_verified")
	ErrAgreementNotSigned = errors.New("paya agreement is not signed")
	ErrAlreadyComplete    = errors.New("order already complete")
)

type Status string

const (
	StatusPendingPayment          Status = "pending_payment"
	StatusUnderwriting            Status = "underwriting"
	StatusApproved                Status = "approved"
	StatusRejected                Status = "rejected"
	StatusHRVerificationPending   Status = "hr_verification_pending"
	StatusHRVerified              Status = "hr_verified"
	StatusHRUnverified            Status = "hr_unverified"
	StatusOrderComplete           Status = "order_complete"
	StatusPaymentProcessing       Status = "payment_processing"
	StatusPaid                    Status = "paid"
	StatusProcessing              Status = "processing"
	StatusShipped                 Status = "shipped"
	StatusDelivered               Status = "delivered"
	StatusCancelled               Status = "cancelled"
	StatusRefunded                Status = "refunded"
)

var allStatuses = map[Status]struct{}{
	StatusPendingPayment: {}, StatusUnderwriting: {}, StatusApproved: {},
	StatusRejected: {}, StatusHRVerificationPending: {}, StatusHRVerified: {},
	StatusHRUnverified: {}, StatusOrderComplete: {}, StatusPaymentProcessing: {},
	StatusPaid: {}, StatusProcessing: {}, StatusShipped: {}, StatusDelivered: {},
	StatusCancelled: {}, StatusRefunded: {},
}

// ParseStatus validates a wire value against the closed status enum.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	if _, ok := allStatuses[st]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return st, nil
}

// TimelineEntry is one append-only audit record; entries are never
// edited or removed.
type TimelineEntry struct {
	Action      string    `json:"action"`
	Timestamp   time.Time `json:"timestamp"`
	PerformedBy string    `json:"performed_by,omitempty"`
	Details     string    `json:"details,omitempty"`
}

type Timeline []TimelineEntry

func (t Timeline) Value() (driver.Value, error) { return json.Marshal(t) }
func (t *Timeline) Scan(value any) error        { return scanJSON(t, value) }

// Merchant identifies a seller whose items are on the order.
type Merchant struct {
	MerchantID string `json:"merchant_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
}

type MerchantList []Merchant

func (l MerchantList) Value() (driver.Value, error) { return json.Marshal(l) }
func (l *MerchantList) Scan(value any) error        { return scanJSON(l, value) }

// BNPLInfo is the installment financing block on a BNPL order.
type BNPLInfo struct {
	LoanAmount            float64    `json:"loan_amount"`
	AdvanceRate           float64    `json:"advance_rate"`
	AdvanceAmount         float64    `json:"advance_amount"`
	PayaAgreementSigned   bool       `json:"paya_agreement_signed"`
	PayaAgreementSignedAt *time.Time `json:"paya_agreement_signed_at,omitempty"`
}

func (b BNPLInfo) Value() (driver.Value, error) { return json.Marshal(b) }
func (b *BNPLInfo) Scan(value any) error        { return scanJSON(b, value) }

// UnderwritingResult is the decision plus the applicant snapshot it was
// made against, embedded on the order at decision time.
type UnderwritingResult struct {
	underwriting.Decision
	Applicant    underwriting.Applicant `json:"applicant"`
	ModelVersion int                    `json:"model_version"`
	DecidedAt    time.Time              `json:"decided_at"`
}

func (r UnderwritingResult) Value() (driver.Value, error) { return json.Marshal(r) }
func (r *UnderwritingResult) Scan(value any) error        { return scanJSON(r, value) }

// CompletionInfo records the completion stamp and the per-channel
// notification outcomes, tracked independently so a retry can resend
// just the missing channel.
type CompletionInfo struct {
	CompletedAt       *time.Time `json:"completed_at,omitempty"`
	CompletedBy       string     `json:"completed_by,omitempty"`
	CustomerEmailSent bool       `json:"customer_email_sent"`
	MerchantEmailSent bool       `json:"merchant_email_sent"`
}

func (i CompletionInfo) Value() (driver.Value, error) { return json.Marshal(i) }
func (i *CompletionInfo) Scan(value any) error        { return scanJSON(i, value) }

type Order struct {
	ID              uint64              `gorm:"primaryKey;column:id" json:"-"`
	OrderID         string              `gorm:"size:32;uniqueIndex:ux_orders_order_id" json:"order_id"`
	CustomerID      string              `gorm:"size:32;index:idx_orders_customer" json:"customer_id"`
	Status          Status              `gorm:"size:32;index" json:"status"`
	StatusUpdatedAt time.Time           `json:"status_updated_at"`
	TotalAmount     float64             `gorm:"type:decimal(18,2)" json:"total_amount"`
	Merchants       MerchantList        `gorm:"column:merchants;type:json" json:"merchants"`
	IsBNPL          bool                `gorm:"column:is_bnpl" json:"is_bnpl"`
	BNPL            BNPLInfo            `gorm:"column:bnpl;type:json" json:"bnpl"`
	Underwriting    *UnderwritingResult `gorm:"column:underwriting_result;type:json" json:"underwriting_result,omitempty"`
	// LoanDetails is derived; stored so the signed agreement can be
	// regenerated without recomputation drift across model edits.
	LoanDetails *underwriting.LoanDetails `gorm:"column:loan_details;type:json" json:"loan_details,omitempty"`
	Completion  CompletionInfo            `gorm:"column:completion;type:json" json:"completion"`
	Timeline    Timeline                  `gorm:"column:timeline;type:json" json:"timeline"`
	CreatedAt   time.Time                 `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time                 `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt            `gorm:"index" json:"-"`
}

func (Order) TableName() string { return "orders" }

// AppendTimeline adds one audit entry; callers persist the order in the
// same transaction that made the change being recorded.
func (o *Order) AppendTimeline(action string, at time.Time, performedBy, details string) {
	o.Timeline = append(o.Timeline, TimelineEntry{
		Action:      action,
		Timestamp:   at,
		PerformedBy: performedBy,
		Details:     details,
	})
}

// DistinctMerchants dedupes merchants by email for completion notices.
func (o *Order) DistinctMerchants() []Merchant {
	seen := make(map[string]struct{}, len(o.Merchants))
	out := make([]Merchant, 0, len(o.Merchants))
	for _, m := range o.Merchants {
		if _, ok := seen[m.Email]; ok {
			continue
		}
		seen[m.Email] = struct{}{}
		out = append(out, m)
	}
	return out
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
