package company

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "github.com/okey68/paya-marketplace-sub000/internal/domain/company"
	"github.com/okey68/paya-marketplace-sub000/internal/testutil/companymock"
)

func TestCreate(t *testing.T) {
	var created *domain.Company
	repo := &companymock.Repo{
		CreateFn: func(_ context.Context, c *domain.Company) error {
			created = c
			return nil
		},
	}
	u := NewUsecase(repo, zap.NewNop())

	dto, err := u.Create(context.Background(), CreateCompanyInput{
		CompanyName: "Acme Corp",
		Aliases:     []string{"Acme"},
		HRContacts:  []domain.HRContact{{Name: "HR", Email: "hr@acme.example", IsPrimary: true}},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created == nil || !created.IsActive || len(created.CompanyID) != 32 {
		t.Errorf("created company: %+v", created)
	}
	if dto.CompanyName != "Acme Corp" || len(dto.HRContacts) != 1 {
		t.Errorf("dto: %+v", dto)
	}
}

func TestCreate_RequiresHRContact(t *testing.T) {
	called := false
	repo := &companymock.Repo{
		CreateFn: func(context.Context, *domain.Company) error { called = true; return nil },
	}
	u := NewUsecase(repo, zap.NewNop())

	_, err := u.Create(context.Background(), CreateCompanyInput{CompanyName: "Acme Corp"})
	if !errors.Is(err, domain.ErrNoHRContact) {
		t.Fatalf("want ErrNoHRContact, got %v", err)
	}
	if called {
		t.Errorf("contactless company reached storage")
	}
}

func TestGet_NotFound(t *testing.T) {
	repo := &companymock.Repo{
		GetByCompanyIDFn: func(context.Context, string) (*domain.Company, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	u := NewUsecase(repo, zap.NewNop())

	if _, err := u.Get(context.Background(), "ffffffffffffffffffffffffffffffff"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}
