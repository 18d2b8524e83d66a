package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/okey68/paya-marketplace-sub000/internal/domain/customer"
	domain "github.com/okey68/paya-marketplace-sub000/internal/domain/order"
	domainUW "github.com/okey68/paya-marketplace-sub000/internal/domain/underwriting"
	"github.com/okey68/paya-marketplace-sub000/internal/domain/uow"
	domainVerif "github.com/okey68/paya-marketplace-sub000/internal/domain/verification"
	"github.com/okey68/paya-marketplace-sub000/internal/notify"
)

// ErrVerificationInit wraps an employer-verification initiation failure.
// The order keeps its committed status; an operator fixes the directory
// and retries.
var ErrVerificationInit = errors.New("verification initiation failed")

// Workflow is the slice of the verification usecase the lifecycle needs
// at the approval transition: create the record and dispatch the initial
// employer email.
type Workflow interface {
	Start(ctx context.Context, orderID, actorID string) error
}

// Notifier sends best-effort customer/merchant messages.
type Notifier interface {
	TrySend(ctx context.Context, m notify.Message) (string, bool)
}

type Usecase struct {
	repo      domain.Repository
	customers customer.Repository
	uow       uow.UnitOfWork
	workflow  Workflow
	notifier  Notifier
	logger    *zap.Logger
	now       func() time.Time
}

func NewUsecase(repo domain.Repository, customers customer.Repository, tx uow.UnitOfWork,
	workflow Workflow, notifier Notifier, logger *zap.Logger) *Usecase {
	return &Usecase{
		repo:      repo,
		customers: customers,
		uow:       tx,
		workflow:  workflow,
		notifier:  notifier,
		logger:    logger.Named("order_usecase"),
		now:       func() time.Time { return time.Now().UTC() },
	}
}

type UpdateStatusInput struct {
	OrderID string
	Status  string
	ActorID string
	Reason  string
	// SkipVerification suppresses the employer verification hook on the
	// approved transition.
	SkipVerification bool
}

// UpdateStatus validates the target status against the closed enum,
// appends a timeline entry and persists both in one transaction. The
// approved and rejected transitions carry side effects; a verification
// initiation failure is surfaced, never swallowed.
func (u *Usecase) UpdateStatus(ctx context.Context, in UpdateStatusInput) (*DTO, error) {
	target, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}

	var dto *DTO
	var rejectionReasons []string
	err = u.uow.WithinOrderTx(ctx, in.OrderID, func(r uow.Repos, o *domain.Order) error {
		now := u.now()
		from := o.Status
		o.Status = target
		o.StatusUpdatedAt = now
		details := string(from) + " -> " + string(target)
		if in.Reason != "" {
			details += ": " + in.Reason
		}
		o.AppendTimeline("status_changed", now, in.ActorID, details)
		if err := r.Orders.Save(ctx, o); err != nil {
			return err
		}
		if target == domain.StatusRejected && o.Underwriting != nil {
			rejectionReasons = o.Underwriting.Reasons
		}
		dto = toDTO(o)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	switch target {
	case domain.StatusApproved:
		if dto.IsBNPL && !in.SkipVerification {
			if err := u.startVerification(ctx, in.OrderID, in.ActorID); err != nil {
				return dto, err
			}
			return u.Get(ctx, in.OrderID)
		}
	case domain.StatusRejected:
		u.notifyRejection(ctx, dto, rejectionReasons)
	}
	return dto, nil
}

// startVerification runs initiate + initial send, then advances the
// order to hr_verification_pending. Any failure leaves the order
// approved and is reported via ErrVerificationInit.
func (u *Usecase) startVerification(ctx context.Context, orderID, actorID string) error {
	if err := u.workflow.Start(ctx, orderID, actorID); err != nil {
		u.logger.Warn("verification initiation failed",
			zap.String("order_id", orderID), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrVerificationInit, err)
	}

	err := u.uow.WithinOrderTx(ctx, orderID, func(r uow.Repos, o *domain.Order) error {
		now := u.now()
		o.Status = domain.StatusHRVerificationPending
		o.StatusUpdatedAt = now
		o.AppendTimeline("status_changed", now, actorID, "approved -> hr_verification_pending")
		return r.Orders.Save(ctx, o)
	})
	return err
}

func (u *Usecase) notifyRejection(ctx context.Context, dto *DTO, reasons []string) {
	cust, err := u.customers.GetByCustomerID(ctx, dto.CustomerID)
	if err != nil {
		u.logger.Warn("rejection notice skipped",
			zap.String("order_id", dto.OrderID), zap.Error(err))
		return
	}
	body := "Your installment application for order " + dto.OrderID + " was declined."
	if len(reasons) > 0 {
		body += "\n\nReasons:\n- " + strings.Join(reasons, "\n- ")
	}
	u.notifier.TrySend(ctx, notify.Message{
		To:      cust.Email,
		Subject: "Your Paya application decision",
		Body:    body,
	})
}

// Underwrite scores the order's customer against the active model and
// transitions to approved or rejected. The decision, the applicant
// snapshot it was made against and the derived schedule are embedded on
// the order so the decision stays reproducible after model changes.
func (u *Usecase) Underwrite(ctx context.Context, orderID, actorID string) (*DTO, error) {
	var dto *DTO
	var approved bool
	err := u.uow.WithinOrderTx(ctx, orderID, func(r uow.Repos, o *domain.Order) error {
		if o.Status != domain.StatusUnderwriting {
			return fmt.Errorf("%w: underwrite from %s", domain.ErrUnknownStatus, o.Status)
		}
		model, err := r.Models.GetActive(ctx)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainUW.ErrNoActiveModel
			}
			return err
		}
		cust, err := r.Customers.GetByCustomerID(ctx, o.CustomerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainVerif.ErrNoCustomer
			}
			return err
		}

		now := u.now()
		applicant := cust.Applicant()
		decision := domainUW.EvaluateApplicant(model, applicant, o.TotalAmount)
		o.Underwriting = &domain.UnderwritingResult{
			Decision:     decision,
			Applicant:    applicant,
			ModelVersion: model.Version,
			DecidedAt:    now,
		}

		if decision.Approved {
			details := domainUW.CalculateLoanDetails(model, o.TotalAmount, now)
			o.LoanDetails = &details
			o.BNPL.LoanAmount = details.LoanAmount
			o.BNPL.AdvanceRate = model.Parameters.AdvanceRate
			o.BNPL.AdvanceAmount = details.MerchantAdvance
			o.Status = domain.StatusApproved
			o.AppendTimeline("underwriting_decision", now, actorID,
				fmt.Sprintf("approved with score %d", decision.Score))
		} else {
			o.Status = domain.StatusRejected
			o.AppendTimeline("underwriting_decision", now, actorID,
				"rejected: "+strings.Join(decision.Reasons, "; "))
		}
		o.StatusUpdatedAt = now
		if err := r.Orders.Save(ctx, o); err != nil {
			return err
		}
		approved = decision.Approved
		dto = toDTO(o)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if approved {
		if dto.IsBNPL {
			if err := u.startVerification(ctx, orderID, actorID); err != nil {
				return dto, err
			}
			return u.Get(ctx, orderID)
		}
	} else {
		u.notifyRejection(ctx, dto, dto.UnderwritingReasons)
	}
	return dto, nil
}

// SignAgreement flips the internal agreement flag the completion gate
// checks.
func (u *Usecase) SignAgreement(ctx context.Context, orderID, actorID string) (*DTO, error) {
	var dto *DTO
	err := u.uow.WithinOrderTx(ctx, orderID, func(r uow.Repos, o *domain.Order) error {
		now := u.now()
		o.BNPL.PayaAgreementSigned = true
		signedAt := now
		o.BNPL.PayaAgreementSignedAt = &signedAt
		o.AppendTimeline("agreement_signed", now, actorID, "")
		if err := r.Orders.Save(ctx, o); err != nil {
			return err
		}
		dto = toDTO(o)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, orderID string) (*DTO, error) {
	o, err := u.repo.GetByOrderID(ctx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return toDTO(o), nil
}
