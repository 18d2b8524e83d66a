package mysql

import (
	"context"

	"gorm.io/gorm"

	customerDomain "github.com/okey68/paya-marketplace-sub000/internal/domain/customer"
)

type CustomerRepository struct{ db *gorm.DB }

func NewCustomerRepository(db *gorm.DB) *CustomerRepository { return &CustomerRepository{db: db} }

func (r *CustomerRepository) Create(ctx context.Context, c *customerDomain.Customer) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CustomerRepository) GetByCustomerID(ctx context.Context, customerID string) (*customerDomain.Customer, error) {
	var out customerDomain.Customer
	res := r.db.WithContext(ctx).Where("customer_id = ?", customerID).First(&out)
	return &out, res.Error
}
