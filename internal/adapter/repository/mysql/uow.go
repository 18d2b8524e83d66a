package mysql

import (
	"context"

	"gorm.io/gorm"

	orderDomain "github.com/okey68/paya-marketplace-sub000/internal/domain/order"
	"github.com/okey68/paya-marketplace-sub000/internal/domain/uow"
	verifDomain "github.com/okey68/paya-marketplace-sub000/internal/domain/verification"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func boundRepos(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Orders:        &OrderRepository{db: tx},
		Verifications: &VerificationRepository{db: tx},
		Companies:     &CompanyRepository{db: tx},
		Customers:     &CustomerRepository{db: tx},
		Models:        &ModelRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(boundRepos(tx))
	})
}

func (u *GormUoW) WithinOrderTx(ctx context.Context, orderID string, fn func(r uow.Repos, o *orderDomain.Order) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := boundRepos(tx)
		// lock the order row up-front to prevent races
		o, err := r.Orders.GetByOrderIDForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		return fn(r, o)
	})
}

func (u *GormUoW) WithinVerificationTx(ctx context.Context, verificationID string, fn func(r uow.Repos, v *verifDomain.HRVerification) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := boundRepos(tx)
		v, err := r.Verifications.GetByVerificationIDForUpdate(ctx, verificationID)
		if err != nil {
			return err
		}
		return fn(r, v)
	})
}
