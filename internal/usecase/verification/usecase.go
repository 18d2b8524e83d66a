package verification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/okey68/paya-marketplace-sub000/internal/agreement"
	domainCompany "github.com/okey68/paya-marketplace-sub000/internal/domain/company"
	domainOrder "github.com/okey68/paya-marketplace-sub000/internal/domain/order"
	"github.com/okey68/paya-marketplace-sub000/internal/domain/uow"
	domainVerif "github.com/okey68/paya-marketplace-sub000/internal/domain/verification"
	"github.com/okey68/paya-marketplace-sub000/internal/notify"
	"github.com/okey68/paya-marketplace-sub000/pkg/id"
)

// SystemActor marks transitions driven by the scheduler rather than an
// admin user.
const SystemActor = "system"

// Notifier is the slice of the dispatcher the workflow needs.
type Notifier interface {
	Send(ctx context.Context, m notify.Message) (string, error)
}

type Config struct {
	Timeout       time.Duration
	ReminderAfter time.Duration
	MaxReminders  int
}

type Usecase struct {
	repo       domainVerif.Repository
	uow        uow.UnitOfWork
	notifier   Notifier
	agreements agreement.Generator
	cfg        Config
	logger     *zap.Logger
	now        func() time.Time
}

func NewUsecase(repo domainVerif.Repository, tx uow.UnitOfWork, notifier Notifier,
	agreements agreement.Generator, cfg Config, logger *zap.Logger) *Usecase {
	return &Usecase{
		repo:       repo,
		uow:        tx,
		notifier:   notifier,
		agreements: agreements,
		cfg:        cfg,
		logger:     logger.Named("verification_usecase"),
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Initiate creates the verification record for an approved BNPL order.
// Every precondition failure is returned to the caller; none are
// silently skipped, so an operator can fix the directory and retry.
func (u *Usecase) Initiate(ctx context.Context, orderID, actorID string) (*DTO, error) {
	var dto *DTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		o, err := r.Orders.GetByOrderID(ctx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainOrder.ErrNotFound
			}
			return err
		}

		if _, err := r.Verifications.GetByOrderID(ctx, orderID); err == nil {
			return domainVerif.ErrAlreadyExists
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if o.CustomerID == "" {
			return domainVerif.ErrNoCustomer
		}
		cust, err := r.Customers.GetByCustomerID(ctx, o.CustomerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainVerif.ErrNoCustomer
			}
			return err
		}
		if strings.TrimSpace(cust.EmployerName) == "" {
			return fmt.Errorf("%w: customer declared no employer", domainVerif.ErrNoEmployerMatch)
		}

		comp, err := r.Companies.FindByNameOrAlias(ctx, cust.EmployerName)
		if err != nil {
			if errors.Is(err, domainCompany.ErrNotFound) {
				return fmt.Errorf("%w: %q", domainVerif.ErrNoEmployerMatch, cust.EmployerName)
			}
			return err
		}
		contact, err := comp.PrimaryContact()
		if err != nil {
			return fmt.Errorf("%w: %s", domainCompany.ErrNoHRContact, comp.CompanyName)
		}

		now := u.now()
		agreementPath := ""
		if o.LoanDetails != nil {
			agreementPath, err = u.agreements.Generate(ctx, o.OrderID, cust.FullName(), *o.LoanDetails)
			if err != nil {
				return fmt.Errorf("generate agreement: %w", err)
			}
		}

		v := &domainVerif.HRVerification{
			VerificationID: id.NewID32(),
			OrderID:        o.OrderID,
			CustomerID:     cust.CustomerID,
			CompanyID:      comp.CompanyID,
			HRContact: domainVerif.ContactSnapshot{
				Name:      contact.Name,
				Email:     contact.Email,
				Phone:     contact.Phone,
				IsPrimary: contact.IsPrimary,
			},
			Customer: domainVerif.CustomerSnapshot{
				CustomerID:   cust.CustomerID,
				Name:         cust.FullName(),
				Email:        cust.Email,
				Phone:        cust.Phone,
				EmployerName: cust.EmployerName,
				JobTitle:     cust.JobTitle,
			},
			Order: domainVerif.OrderSnapshot{
				OrderID:     o.OrderID,
				TotalAmount: o.TotalAmount,
				LoanAmount:  o.BNPL.LoanAmount,
			},
			Status:           domainVerif.StatusPendingSend,
			AgreementPDFPath: agreementPath,
			MaxReminders:     u.cfg.MaxReminders,
		}
		v.AppendTimeline("created", now, actorID, "verification request created for "+comp.CompanyName)
		if err := r.Verifications.Create(ctx, v); err != nil {
			return err
		}

		comp.Stats.TotalRequests++
		if err := r.Companies.Save(ctx, comp); err != nil {
			return err
		}

		dto = toDTO(v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Start creates the verification record and dispatches the initial
// employer email in one go. This is the entry point the order lifecycle
// uses on the approved transition.
func (u *Usecase) Start(ctx context.Context, orderID, actorID string) error {
	dto, err := u.Initiate(ctx, orderID, actorID)
	if err != nil {
		return err
	}
	_, err = u.SendEmail(ctx, dto.VerificationID, actorID)
	return err
}

// SendEmail dispatches the initial verification request. Legal only from
// pending_send; sets the response deadline once, at send time.
func (u *Usecase) SendEmail(ctx context.Context, verificationID, actorID string) (*DTO, error) {
	var dto *DTO
	err := u.uow.WithinVerificationTx(ctx, verificationID, func(r uow.Repos, v *domainVerif.HRVerification) error {
		if err := u.sendInitial(ctx, r, v, actorID); err != nil {
			return err
		}
		dto = toDTO(v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

func (u *Usecase) sendInitial(ctx context.Context, r uow.Repos, v *domainVerif.HRVerification, actorID string) error {
	if v.Status != domainVerif.StatusPendingSend {
		return fmt.Errorf("%w: initial send from %s", domainVerif.ErrInvalidTransition, v.Status)
	}

	msgID, err := u.notifier.Send(ctx, u.verificationEmail(v, false))
	if err != nil {
		return fmt.Errorf("send verification email: %w", err)
	}

	now := u.now()
	sentAt := now
	deadline := now.Add(u.cfg.Timeout)
	v.EmailSentAt = &sentAt
	v.ResponseDeadline = &deadline
	if err := domainVerif.Transition(v, domainVerif.StatusEmailSent, now, actorID,
		"verification email sent to "+v.HRContact.Email+" (message "+msgID+")"); err != nil {
		return err
	}
	return r.Verifications.Save(ctx, v)
}

// Resend sends a bounded reminder when the initial email already went
// out; otherwise it behaves like the initial send. Reminders never reset
// the status or extend the deadline.
func (u *Usecase) Resend(ctx context.Context, verificationID, actorID string) (*DTO, error) {
	var dto *DTO
	err := u.uow.WithinVerificationTx(ctx, verificationID, func(r uow.Repos, v *domainVerif.HRVerification) error {
		if v.EmailSentAt == nil {
			if err := u.sendInitial(ctx, r, v, actorID); err != nil {
				return err
			}
			dto = toDTO(v)
			return nil
		}

		if v.Status.Terminal() {
			return fmt.Errorf("%w: %s", domainVerif.ErrAlreadyResolved, v.Status)
		}
		if len(v.RemindersSent) >= maxReminders(v) {
			return domainVerif.ErrReminderCapReached
		}

		msgID, err := u.notifier.Send(ctx, u.verificationEmail(v, true))
		if err != nil {
			return fmt.Errorf("send reminder email: %w", err)
		}

		now := u.now()
		v.RemindersSent = append(v.RemindersSent, domainVerif.Reminder{
			SentAt:    now,
			To:        v.HRContact.Email,
			MessageID: msgID,
		})
		v.AppendTimeline("reminder_sent", now, actorID,
			fmt.Sprintf("reminder %d of %d sent to %s", len(v.RemindersSent), maxReminders(v), v.HRContact.Email))
		if err := r.Verifications.Save(ctx, v); err != nil {
			return err
		}
		dto = toDTO(v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// MarkVerified resolves the verification positively and moves the order
// to hr_verified.
func (u *Usecase) MarkVerified(ctx context.Context, verificationID, actorID, notes string) (*DTO, error) {
	return u.resolve(ctx, verificationID, actorID, notes, true)
}

// MarkUnverified resolves negatively; a non-empty reason is required.
func (u *Usecase) MarkUnverified(ctx context.Context, verificationID, actorID, reason string) (*DTO, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: unverified resolution needs a reason", domainVerif.ErrReasonRequired)
	}
	return u.resolve(ctx, verificationID, actorID, reason, false)
}

func (u *Usecase) resolve(ctx context.Context, verificationID, actorID, reason string, verified bool) (*DTO, error) {
	target := domainVerif.StatusUnverified
	orderStatus := domainOrder.StatusHRUnverified
	if verified {
		target = domainVerif.StatusVerified
		orderStatus = domainOrder.StatusHRVerified
	}

	var dto *DTO
	err := u.uow.WithinVerificationTx(ctx, verificationID, func(r uow.Repos, v *domainVerif.HRVerification) error {
		now := u.now()
		if err := domainVerif.Transition(v, target, now, actorID, reason); err != nil {
			return err
		}
		v.Result = &domainVerif.Result{Verified: verified, Reason: reason, VerifiedBy: actorID}
		v.ReviewedBy = actorID
		reviewedAt := now
		v.ReviewedAt = &reviewedAt
		if err := r.Verifications.Save(ctx, v); err != nil {
			return err
		}

		u.updateCompanyStats(ctx, r, v, verified, now)

		o, err := r.Orders.GetByOrderIDForUpdate(ctx, v.OrderID)
		if err != nil {
			return fmt.Errorf("load order %s: %w", v.OrderID, err)
		}
		o.Status = orderStatus
		o.StatusUpdatedAt = now
		o.AppendTimeline("status_changed", now, actorID, "employer verification resolved: "+string(target))
		if err := r.Orders.Save(ctx, o); err != nil {
			return err
		}

		dto = toDTO(v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// updateCompanyStats folds the outcome into the employer's rolling
// stats. A directory hiccup must not undo an admin's resolution, so
// failures are logged, not returned.
func (u *Usecase) updateCompanyStats(ctx context.Context, r uow.Repos, v *domainVerif.HRVerification, verified bool, now time.Time) {
	comp, err := r.Companies.GetByCompanyID(ctx, v.CompanyID)
	if err != nil {
		u.logger.Warn("company stats skipped", zap.String("company_id", v.CompanyID), zap.Error(err))
		return
	}
	responseDays := 0.0
	if v.EmailSentAt != nil {
		responseDays = now.Sub(*v.EmailSentAt).Hours() / 24
	}
	comp.Stats.Record(verified, responseDays, now)
	if err := r.Companies.Save(ctx, comp); err != nil {
		u.logger.Warn("company stats save failed", zap.String("company_id", v.CompanyID), zap.Error(err))
	}
}

// RecordCustomerContact side-tracks the verification while the applicant
// supplies more information. The response deadline is untouched.
func (u *Usecase) RecordCustomerContact(ctx context.Context, verificationID, actorID, reason, method string) (*DTO, error) {
	if strings.TrimSpace(reason) == "" {
		return nil, fmt.Errorf("%w: customer contact needs a reason", domainVerif.ErrReasonRequired)
	}
	var dto *DTO
	err := u.uow.WithinVerificationTx(ctx, verificationID, func(r uow.Repos, v *domainVerif.HRVerification) error {
		now := u.now()
		if err := domainVerif.Transition(v, domainVerif.StatusCustomerContacted, now, actorID,
			"customer contacted via "+method+": "+reason); err != nil {
			return err
		}
		v.CustomerContact = &domainVerif.CustomerContact{
			ContactedAt: now,
			ContactedBy: actorID,
			Reason:      reason,
			Method:      method,
		}
		if err := r.Verifications.Save(ctx, v); err != nil {
			return err
		}
		dto = toDTO(v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Escalate flags the record for human attention. From email_sent or
// awaiting_response the status also moves to timeout. Escalation never
// resolves the verification by itself.
func (u *Usecase) Escalate(ctx context.Context, verificationID, reason string) (*DTO, error) {
	var dto *DTO
	err := u.uow.WithinVerificationTx(ctx, verificationID, func(r uow.Repos, v *domainVerif.HRVerification) error {
		if v.Status.Terminal() {
			return fmt.Errorf("%w: %s", domainVerif.ErrAlreadyResolved, v.Status)
		}
		if v.IsEscalated {
			return domainVerif.ErrAlreadyEscalated
		}

		now := u.now()
		v.IsEscalated = true
		escalatedAt := now
		v.EscalatedAt = &escalatedAt
		v.EscalationReason = reason

		switch v.Status {
		case domainVerif.StatusEmailSent, domainVerif.StatusAwaitingResponse:
			if err := domainVerif.Transition(v, domainVerif.StatusTimeout, now, SystemActor, reason); err != nil {
				return err
			}
		default:
			v.AppendTimeline("escalated", now, SystemActor, reason)
		}
		if err := r.Verifications.Save(ctx, v); err != nil {
			return err
		}
		dto = toDTO(v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Cancel terminates the verification from any non-terminal state, e.g.
// when the order is cancelled upstream.
func (u *Usecase) Cancel(ctx context.Context, verificationID, actorID, reason string) (*DTO, error) {
	var dto *DTO
	err := u.uow.WithinVerificationTx(ctx, verificationID, func(r uow.Repos, v *domainVerif.HRVerification) error {
		now := u.now()
		if err := domainVerif.Transition(v, domainVerif.StatusCancelled, now, actorID, reason); err != nil {
			return err
		}
		if err := r.Verifications.Save(ctx, v); err != nil {
			return err
		}
		dto = toDTO(v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Get returns a read-only view of one verification.
func (u *Usecase) Get(ctx context.Context, verificationID string) (*DTO, error) {
	v, err := u.repo.GetByVerificationID(ctx, verificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainVerif.ErrNotFound
		}
		return nil, err
	}
	return toDTO(v), nil
}

// CheckTimeouts escalates every overdue, unescalated record. Records are
// processed one at a time; the escalation transaction re-reads the row
// under lock, so a record resolved mid-sweep is skipped, and one bad
// record never aborts the batch.
func (u *Usecase) CheckTimeouts(ctx context.Context) (int, error) {
	candidates, err := u.repo.ListTimeoutCandidates(ctx, u.now())
	if err != nil {
		return 0, err
	}
	escalated := 0
	for _, c := range candidates {
		deadline := "unknown"
		if c.ResponseDeadline != nil {
			deadline = c.ResponseDeadline.UTC().Format(time.RFC3339)
		}
		_, err := u.Escalate(ctx, c.VerificationID, "no employer response before deadline "+deadline)
		switch {
		case err == nil:
			escalated++
		case errors.Is(err, domainVerif.ErrAlreadyEscalated), errors.Is(err, domainVerif.ErrAlreadyResolved):
			// raced with an admin or a concurrent sweep; nothing to do
		default:
			u.logger.Error("timeout escalation failed",
				zap.String("verification_id", c.VerificationID), zap.Error(err))
		}
	}
	return escalated, nil
}

// SendReminders nudges employers whose email is older than the reminder
// window, up to each record's cap. Sequential for the same reason as
// CheckTimeouts.
func (u *Usecase) SendReminders(ctx context.Context) (int, error) {
	cutoff := u.now().Add(-u.cfg.ReminderAfter)
	candidates, err := u.repo.ListReminderCandidates(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	sent := 0
	for _, c := range candidates {
		_, err := u.Resend(ctx, c.VerificationID, SystemActor)
		switch {
		case err == nil:
			sent++
		case errors.Is(err, domainVerif.ErrReminderCapReached), errors.Is(err, domainVerif.ErrAlreadyResolved):
			// state moved on since the candidate list was built
		default:
			u.logger.Error("reminder send failed",
				zap.String("verification_id", c.VerificationID), zap.Error(err))
		}
	}
	return sent, nil
}

func (u *Usecase) verificationEmail(v *domainVerif.HRVerification, reminder bool) notify.Message {
	subject := fmt.Sprintf("Employment verification request for %s", v.Customer.Name)
	if reminder {
		subject = "Reminder: " + subject
	}
	deadline := ""
	if v.ResponseDeadline != nil {
		deadline = "\nPlease respond by " + v.ResponseDeadline.UTC().Format(time.RFC1123) + "."
	}
	body := fmt.Sprintf(
		"Dear %s,\n\n%s has applied for installment financing with Paya and named %s as their employer.\n"+
			"Please confirm their employment and declared role (%s).%s\n\nThank you,\nPaya Verifications",
		v.HRContact.Name, v.Customer.Name, v.Customer.EmployerName, v.Customer.JobTitle, deadline)

	var attachments []string
	if v.PayslipPath != "" {
		attachments = append(attachments, v.PayslipPath)
	}
	if v.AgreementPDFPath != "" {
		attachments = append(attachments, v.AgreementPDFPath)
	}
	return notify.Message{To: v.HRContact.Email, Subject: subject, Body: body, Attachments: attachments}
}

func maxReminders(v *domainVerif.HRVerification) int {
	if v.MaxReminders > 0 {
		return v.MaxReminders
	}
	return domainVerif.DefaultMaxReminders
}
