package order

import "context"

type Repository interface {
	Create(ctx context.Context, o *Order) error
	GetByOrderID(ctx context.Context, orderID string) (*Order, error)
	// GetByOrderIDForUpdate locks the row for the enclosing transaction
	// so a timeline append and status flip commit as one update.
	GetByOrderIDForUpdate(ctx context.Context, orderID string) (*Order, error)
	Save(ctx context.Context, o *Order) error
}
