package uow

import (
	"context"

	"github.com/okey68/paya-marketplace-sub000/internal/domain/company"
	"github.com/okey68/paya-marketplace-sub000/internal/domain/customer"
	"github.com/okey68/paya-marketplace-sub000/internal/domain/order"
	"github.com/okey68/paya-marketplace-sub000/internal/domain/underwriting"
	"github.com/okey68/paya-marketplace-sub000/internal/domain/verification"
)

type Repos struct {
	Orders        order.Repository
	Verifications verification.Repository
	Companies     company.Repository
	Customers     customer.Repository
	Models        underwriting.Repository
}

type UnitOfWork interface {
	// WithinTx runs fn with all repositories bound to one transaction.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// WithinOrderTx locks the order row first, then passes it in.
	WithinOrderTx(ctx context.Context, orderID string, fn func(r Repos, o *order.Order) error) error
	// WithinVerificationTx locks the verification row first. Mutations
	// that flip status and append timeline entries go through here so
	// both land in a single commit.
	WithinVerificationTx(ctx context.Context, verificationID string, fn func(r Repos, v *verification.HRVerification) error) error
}
