package mysql

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	orderDomain "github.com/okey68/paya-marketplace-sub000/internal/domain/order"
)

type OrderRepository struct{ db *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepository { return &OrderRepository{db: db} }

func (r *OrderRepository) Create(ctx context.Context, o *orderDomain.Order) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *OrderRepository) Save(ctx context.Context, o *orderDomain.Order) error {
	return r.db.WithContext(ctx).Save(o).Error
}

func (r *OrderRepository) GetByOrderID(ctx context.Context, orderID string) (*orderDomain.Order, error) {
	var out orderDomain.Order
	res := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&out)
	return &out, res.Error
}

func (r *OrderRepository) GetByOrderIDForUpdate(ctx context.Context, orderID string) (*orderDomain.Order, error) {
	var out orderDomain.Order
	res := forUpdate(r.db.WithContext(ctx)).Where("order_id = ?", orderID).First(&out)
	return &out, res.Error
}

// forUpdate adds a row lock on dialects that support it. sqlite (used in
// tests) has a single-writer lock instead, so the clause is skipped
// there.
func forUpdate(db *gorm.DB) *gorm.DB {
	if db.Dialector.Name() == "sqlite" {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}
