package uowmock

import (
	"context"
	"errors"

	"github.com/okey68/paya-marketplace-sub000/internal/domain/order"
	"github.com/okey68/paya-marketplace-sub000/internal/domain/uow"
	"github.com/okey68/paya-marketplace-sub000/internal/domain/verification"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return
// errUnimplemented.
type UoW struct {
	WithinTxFn             func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinOrderTxFn        func(ctx context.Context, orderID string, fn func(r uow.Repos, o *order.Order) error) error
	WithinVerificationTxFn func(ctx context.Context, verificationID string, fn func(r uow.Repos, v *verification.HRVerification) error) error
}

func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinOrderTx(ctx context.Context, orderID string, fn func(r uow.Repos, o *order.Order) error) error {
	if m.WithinOrderTxFn != nil {
		return m.WithinOrderTxFn(ctx, orderID, fn)
	}
	return errUnimplemented
}

func (m *UoW) WithinVerificationTx(ctx context.Context, verificationID string, fn func(r uow.Repos, v *verification.HRVerification) error) error {
	if m.WithinVerificationTxFn != nil {
		return m.WithinVerificationTxFn(ctx, verificationID, fn)
	}
	return errUnimplemented
}

// Passthrough builds a UoW whose transactions simply run the callback
// against the provided repos, loading locked rows through them.
func Passthrough(r uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(ctx context.Context, fn func(uow.Repos) error) error {
			return fn(r)
		},
		WithinOrderTxFn: func(ctx context.Context, orderID string, fn func(uow.Repos, *order.Order) error) error {
			o, err := r.Orders.GetByOrderIDForUpdate(ctx, orderID)
			if err != nil {
				return err
			}
			return fn(r, o)
		},
		WithinVerificationTxFn: func(ctx context.Context, verificationID string, fn func(uow.Repos, *verification.HRVerification) error) error {
			v, err := r.Verifications.GetByVerificationIDForUpdate(ctx, verificationID)
			if err != nil {
				return err
			}
			return fn(r, v)
		},
	}
}
