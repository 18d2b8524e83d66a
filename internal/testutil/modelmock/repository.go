package modelmock

import (
	"context"

	domain "github.com/okey68/paya-marketplace-sub000/internal/domain/underwriting"
)

// Repo is a function-backed mock that satisfies underwriting.Repository.
type Repo struct {
	CreateFn        func(ctx context.Context, m *domain.Model) error
	GetActiveFn     func(ctx context.Context) (*domain.Model, error)
	GetByModelIDFn  func(ctx context.Context, modelID string) (*domain.Model, error)
	DeactivateAllFn func(ctx context.Context) error
	MaxVersionFn    func(ctx context.Context) (int, error)
}

func (m *Repo) Create(ctx context.Context, mdl *domain.Model) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, mdl)
	}
	return nil
}

func (m *Repo) GetActive(ctx context.Context) (*domain.Model, error) {
	if m.GetActiveFn != nil {
		return m.GetActiveFn(ctx)
	}
	return nil, context.Canceled
}

func (m *Repo) GetByModelID(ctx context.Context, modelID string) (*domain.Model, error) {
	if m.GetByModelIDFn != nil {
		return m.GetByModelIDFn(ctx, modelID)
	}
	return nil, context.Canceled
}

func (m *Repo) DeactivateAll(ctx context.Context) error {
	if m.DeactivateAllFn != nil {
		return m.DeactivateAllFn(ctx)
	}
	return nil
}

func (m *Repo) MaxVersion(ctx context.Context) (int, error) {
	if m.MaxVersionFn != nil {
		return m.MaxVersionFn(ctx)
	}
	return 0, nil
}
