package customermock

import (
	"context"

	domain "github.com/okey68/paya-marketplace-sub000/internal/domain/customer"
)

// Repo is a function-backed mock that satisfies customer.Repository.
type Repo struct {
	CreateFn          func(ctx context.Context, c *domain.Customer) error
	GetByCustomerIDFn func(ctx context.Context, customerID string) (*domain.Customer, error)
}

func (m *Repo) Create(ctx context.Context, c *domain.Customer) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetByCustomerID(ctx context.Context, customerID string) (*domain.Customer, error) {
	if m.GetByCustomerIDFn != nil {
		return m.GetByCustomerIDFn(ctx, customerID)
	}
	return nil, context.Canceled
}
