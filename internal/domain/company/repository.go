package company

import "context"

type Repository interface {
	Create(ctx context.Context, c *Company) error
	GetByCompanyID(ctx context.Context, companyID string) (*Company, error)
	// FindByNameOrAlias resolves an employer by exact case-insensitive
	// match on the company name or any alias. Returns ErrNotFound when
	// no active company matches.
	FindByNameOrAlias(ctx context.Context, name string) (*Company, error)
	Save(ctx context.Context, c *Company) error
}
