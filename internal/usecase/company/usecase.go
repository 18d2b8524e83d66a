package company

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "github.com/okey68/paya-marketplace-sub000/internal/domain/company"
	"github.com/okey68/paya-marketplace-sub000/pkg/id"
)

type Usecase struct {
	repo   domain.Repository
	logger *zap.Logger
}

func NewUsecase(repo domain.Repository, logger *zap.Logger) *Usecase {
	return &Usecase{repo: repo, logger: logger.Named("company_usecase")}
}

type CreateCompanyInput struct {
	CompanyName string             `json:"company_name"`
	Aliases     []string           `json:"aliases"`
	HRContacts  []domain.HRContact `json:"hr_contacts"`
}

type DTO struct {
	CompanyID   string                   `json:"company_id"`
	CompanyName string                   `json:"company_name"`
	Aliases     []string                 `json:"aliases,omitempty"`
	HRContacts  []domain.HRContact       `json:"hr_contacts"`
	Stats       domain.VerificationStats `json:"verification_stats"`
	IsActive    bool                     `json:"is_active"`
	CreatedAt   time.Time                `json:"created_at"`
}

func toDTO(c *domain.Company) *DTO {
	return &DTO{
		CompanyID:   c.CompanyID,
		CompanyName: c.CompanyName,
		Aliases:     []string(c.Aliases),
		HRContacts:  []domain.HRContact(c.HRContacts),
		Stats:       c.Stats,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
	}
}

// Create registers an employer in the directory. At least one HR
// contact is required so a verification can always be addressed.
func (u *Usecase) Create(ctx context.Context, in CreateCompanyInput) (*DTO, error) {
	if len(in.HRContacts) == 0 {
		return nil, domain.ErrNoHRContact
	}
	c := &domain.Company{
		CompanyID:   id.NewID32(),
		CompanyName: in.CompanyName,
		Aliases:     domain.AliasList(in.Aliases),
		HRContacts:  domain.HRContactList(in.HRContacts),
		IsActive:    true,
	}
	if err := u.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	u.logger.Info("company registered",
		zap.String("company_id", c.CompanyID), zap.String("name", c.CompanyName))
	return toDTO(c), nil
}

func (u *Usecase) Get(ctx context.Context, companyID string) (*DTO, error) {
	c, err := u.repo.GetByCompanyID(ctx, companyID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return toDTO(c), nil
}
