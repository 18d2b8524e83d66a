package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	companyDomain "github.com/okey68/paya-marketplace-sub000/internal/domain/company"
)

type CompanyRepository struct{ db *gorm.DB }

func NewCompanyRepository(db *gorm.DB) *CompanyRepository { return &CompanyRepository{db: db} }

func (r *CompanyRepository) Create(ctx context.Context, c *companyDomain.Company) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CompanyRepository) Save(ctx context.Context, c *companyDomain.Company) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *CompanyRepository) GetByCompanyID(ctx context.Context, companyID string) (*companyDomain.Company, error) {
	var out companyDomain.Company
	res := r.db.WithContext(ctx).Where("company_id = ?", companyID).First(&out)
	return &out, res.Error
}

// FindByNameOrAlias tries an indexed case-insensitive name match first.
// Aliases live in a JSON column, so the fallback loads active companies
// and matches in process; the directory is small enough for that.
func (r *CompanyRepository) FindByNameOrAlias(ctx context.Context, name string) (*companyDomain.Company, error) {
	var out companyDomain.Company
	res := r.db.WithContext(ctx).
		Where("LOWER(company_name) = LOWER(?) AND is_active = ?", name, true).
		First(&out)
	if res.Error == nil {
		return &out, nil
	}
	if !errors.Is(res.Error, gorm.ErrRecordNotFound) {
		return nil, res.Error
	}

	var all []*companyDomain.Company
	if err := r.db.WithContext(ctx).Where("is_active = ?", true).Find(&all).Error; err != nil {
		return nil, err
	}
	for _, c := range all {
		if c.Matches(name) {
			return c, nil
		}
	}
	return nil, companyDomain.ErrNotFound
}
