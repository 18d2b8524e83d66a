package mysql

import (
	"context"

	"gorm.io/gorm"

	uwDomain "github.com/okey68/paya-marketplace-sub000/internal/domain/underwriting"
)

type ModelRepository struct{ db *gorm.DB }

func NewModelRepository(db *gorm.DB) *ModelRepository { return &ModelRepository{db: db} }

func (r *ModelRepository) Create(ctx context.Context, m *uwDomain.Model) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *ModelRepository) GetActive(ctx context.Context) (*uwDomain.Model, error) {
	var out uwDomain.Model
	res := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("version DESC").
		First(&out)
	return &out, res.Error
}

func (r *ModelRepository) GetByModelID(ctx context.Context, modelID string) (*uwDomain.Model, error) {
	var out uwDomain.Model
	res := r.db.WithContext(ctx).Where("model_id = ?", modelID).First(&out)
	return &out, res.Error
}

func (r *ModelRepository) DeactivateAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Model(&uwDomain.Model{}).
		Where("is_active = ?", true).
		Update("is_active", false).Error
}

func (r *ModelRepository) MaxVersion(ctx context.Context) (int, error) {
	var v int
	err := r.db.WithContext(ctx).
		Model(&uwDomain.Model{}).
		Select("COALESCE(MAX(version), 0)").
		Scan(&v).Error
	return v, err
}
