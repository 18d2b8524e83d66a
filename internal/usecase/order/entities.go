package order

import (
	"time"

	domain "github.com/okey68/paya-marketplace-sub000/internal/domain/order"
	domainUW "github.com/okey68/paya-marketplace-sub000/internal/domain/underwriting"
)

// DTO is the wire view of an order.
type DTO struct {
	OrderID             string                 `json:"order_id"`
	CustomerID          string                 `json:"customer_id"`
	Status              string                 `json:"status"`
	TotalAmount         float64                `json:"total_amount"`
	IsBNPL              bool                   `json:"is_bnpl"`
	BNPL                domain.BNPLInfo        `json:"bnpl"`
	UnderwritingScore   int                    `json:"underwriting_score,omitempty"`
	UnderwritingReasons []string               `json:"underwriting_reasons,omitempty"`
	LoanDetails         *domainUW.LoanDetails  `json:"loan_details,omitempty"`
	Completion          domain.CompletionInfo  `json:"completion"`
	Timeline            domain.Timeline        `json:"timeline"`
	CreatedAt           time.Time              `json:"created_at"`
}

func toDTO(o *domain.Order) *DTO {
	dto := &DTO{
		OrderID:     o.OrderID,
		CustomerID:  o.CustomerID,
		Status:      string(o.Status),
		TotalAmount: o.TotalAmount,
		IsBNPL:      o.IsBNPL,
		BNPL:        o.BNPL,
		LoanDetails: o.LoanDetails,
		Completion:  o.Completion,
		Timeline:    o.Timeline,
		CreatedAt:   o.CreatedAt,
	}
	if o.Underwriting != nil {
		dto.UnderwritingScore = o.Underwriting.Score
		dto.UnderwritingReasons = o.Underwriting.Reasons
	}
	return dto
}
