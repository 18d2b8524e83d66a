package mysql

import (
	"context"
	"errors"
	"testing"

	companyDomain "github.com/okey68/paya-marketplace-sub000/internal/domain/company"
	"github.com/okey68/paya-marketplace-sub000/pkg/id"
)

func makeCompany(name string, aliases ...string) *companyDomain.Company {
	return &companyDomain.Company{
		CompanyID:   id.NewID32(),
		CompanyName: name,
		Aliases:     companyDomain.AliasList(aliases),
		HRContacts: companyDomain.HRContactList{
			{Name: "HR", Email: "hr@" + name + ".example", IsPrimary: true},
		},
		IsActive: true,
	}
}

func TestCompanyCreateAndGet(t *testing.T) {
	db := openTestDB(t)
	repo := NewCompanyRepository(db)
	ctx := context.Background()

	c := makeCompany("acme")
	if err := repo.Create(ctx, c); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.GetByCompanyID(ctx, c.CompanyID)
	if err != nil {
		t.Fatalf("GetByCompanyID: %v", err)
	}
	if got.CompanyName != "acme" || len(got.HRContacts) != 1 {
		t.Errorf("unexpected company: %+v", got)
	}
}

func TestFindByNameOrAlias(t *testing.T) {
	db := openTestDB(t)
	repo := NewCompanyRepository(db)
	ctx := context.Background()

	acme := makeCompany("Acme Corp", "Acme", "Acme Corporation")
	if err := repo.Create(ctx, acme); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(ctx, makeCompany("Globex")); err != nil {
		t.Fatalf("Create: %v", err)
	}

	for _, name := range []string{"Acme Corp", "ACME CORP", "acme corporation", "ACME"} {
		got, err := repo.FindByNameOrAlias(ctx, name)
		if err != nil {
			t.Fatalf("FindByNameOrAlias(%q): %v", name, err)
		}
		if got.CompanyID != acme.CompanyID {
			t.Errorf("FindByNameOrAlias(%q) matched %s", name, got.CompanyName)
		}
	}

	if _, err := repo.FindByNameOrAlias(ctx, "Initech"); !errors.Is(err, companyDomain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestFindByNameOrAlias_SkipsInactive(t *testing.T) {
	db := openTestDB(t)
	repo := NewCompanyRepository(db)
	ctx := context.Background()

	gone := makeCompany("Wound Down Ltd", "WDL")
	gone.IsActive = false
	if err := repo.Create(ctx, gone); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := repo.FindByNameOrAlias(ctx, "Wound Down Ltd"); !errors.Is(err, companyDomain.ErrNotFound) {
		t.Fatalf("inactive company matched by name: %v", err)
	}
	if _, err := repo.FindByNameOrAlias(ctx, "WDL"); !errors.Is(err, companyDomain.ErrNotFound) {
		t.Fatalf("inactive company matched by alias: %v", err)
	}
}

func TestCompanySaveStats(t *testing.T) {
	db := openTestDB(t)
	repo := NewCompanyRepository(db)
	ctx := context.Background()

	c := makeCompany("acme")
	if err := repo.Create(ctx, c); err != nil {
		t.Fatalf("Create: %v", err)
	}

	c.Stats.TotalRequests = 3
	c.Stats.VerifiedCount = 2
	if err := repo.Save(ctx, c); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.GetByCompanyID(ctx, c.CompanyID)
	if err != nil {
		t.Fatalf("GetByCompanyID: %v", err)
	}
	if got.Stats.TotalRequests != 3 || got.Stats.VerifiedCount != 2 {
		t.Errorf("stats did not round-trip: %+v", got.Stats)
	}
}
