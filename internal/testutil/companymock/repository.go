package companymock

import (
	"context"

	domain "github.com/okey68/paya-marketplace-sub000/internal/domain/company"
)

// Repo is a function-backed mock that satisfies company.Repository.
type Repo struct {
	CreateFn            func(ctx context.Context, c *domain.Company) error
	GetByCompanyIDFn    func(ctx context.Context, companyID string) (*domain.Company, error)
	FindByNameOrAliasFn func(ctx context.Context, name string) (*domain.Company, error)
	SaveFn              func(ctx context.Context, c *domain.Company) error
}

func (m *Repo) Create(ctx context.Context, c *domain.Company) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *Repo) GetByCompanyID(ctx context.Context, companyID string) (*domain.Company, error) {
	if m.GetByCompanyIDFn != nil {
		return m.GetByCompanyIDFn(ctx, companyID)
	}
	return nil, context.Canceled
}

func (m *Repo) FindByNameOrAlias(ctx context.Context, name string) (*domain.Company, error) {
	if m.FindByNameOrAliasFn != nil {
		return m.FindByNameOrAliasFn(ctx, name)
	}
	return nil, context.Canceled
}

func (m *Repo) Save(ctx context.Context, c *domain.Company) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}
