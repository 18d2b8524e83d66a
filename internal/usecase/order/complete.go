package order

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "github.com/okey68/paya-marketplace-sub000/internal/domain/order"
	"github.com/okey68/paya-marketplace-sub000/internal/domain/uow"
	"github.com/okey68/paya-marketplace-sub000/internal/notify"
)

// CompleteOrder is the final gate: the order must be hr_verified and the
// customer must have signed the agreement. Completion commits first;
// the customer and per-merchant notices that follow are best-effort and
// never roll it back — each channel's outcome is recorded separately so
// a retry can resend just the missing one.
func (u *Usecase) CompleteOrder(ctx context.Context, orderID, actorID string) (*DTO, error) {
	var dto *DTO
	err := u.uow.WithinOrderTx(ctx, orderID, func(r uow.Repos, o *domain.Order) error {
		if o.Status == domain.StatusOrderComplete {
			return domain.ErrAlreadyComplete
		}
		if o.Status != domain.StatusHRVerified {
			return fmt.Errorf("%w: status is %s", domain.ErrNotVerified, o.Status)
		}
		if !o.BNPL.PayaAgreementSigned {
			return domain.ErrAgreementNotSigned
		}

		now := u.now()
		o.Status = domain.StatusOrderComplete
		o.StatusUpdatedAt = now
		completedAt := now
		o.Completion.CompletedAt = &completedAt
		o.Completion.CompletedBy = actorID
		o.AppendTimeline("order_completed", now, actorID, "")
		if err := r.Orders.Save(ctx, o); err != nil {
			return err
		}
		dto = toDTO(o)
		return nil
	})
	_ = dto
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	u.sendCompletionNotices(ctx, orderID)
	return u.Get(ctx, orderID)
}

func (u *Usecase) sendCompletionNotices(ctx context.Context, orderID string) {
	o, err := u.repo.GetByOrderID(ctx, orderID)
	if err != nil {
		u.logger.Error("completion notices skipped", zap.String("order_id", orderID), zap.Error(err))
		return
	}

	customerSent := false
	if cust, err := u.customers.GetByCustomerID(ctx, o.CustomerID); err == nil {
		_, customerSent = u.notifier.TrySend(ctx, notify.Message{
			To:      cust.Email,
			Subject: "Your Paya order is complete",
			Body: "Order " + o.OrderID + " is complete. Your repayment schedule is unchanged; " +
				"you will be reminded before each due date.",
		})
	} else {
		u.logger.Warn("customer completion notice skipped",
			zap.String("order_id", orderID), zap.Error(err))
	}

	// one notice per distinct merchant; all must land for the flag to set
	merchantsSent := true
	for _, m := range o.DistinctMerchants() {
		_, ok := u.notifier.TrySend(ctx, notify.Message{
			To:      m.Email,
			Subject: "Paya order complete - advance released",
			Body: "Order " + o.OrderID + " is complete and your merchant advance of " +
				fmt.Sprintf("%.2f", o.BNPL.AdvanceAmount) + " has been released.",
		})
		if !ok {
			merchantsSent = false
		}
	}
	if len(o.Merchants) == 0 {
		merchantsSent = false
	}

	err = u.uow.WithinOrderTx(ctx, orderID, func(r uow.Repos, o *domain.Order) error {
		o.Completion.CustomerEmailSent = customerSent
		o.Completion.MerchantEmailSent = merchantsSent
		return r.Orders.Save(ctx, o)
	})
	if err != nil {
		u.logger.Error("completion flags not persisted", zap.String("order_id", orderID), zap.Error(err))
	}
}
