package underwriting

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	domain "github.com/okey68/paya-marketplace-sub000/internal/domain/underwriting"
	"github.com/okey68/paya-marketplace-sub000/internal/domain/uow"
	"github.com/okey68/paya-marketplace-sub000/pkg/id"
)

type Usecase struct {
	repo   domain.Repository
	uow    uow.UnitOfWork
	logger *zap.Logger
	now    func() time.Time
}

func NewUsecase(repo domain.Repository, tx uow.UnitOfWork, logger *zap.Logger) *Usecase {
	return &Usecase{
		repo:   repo,
		uow:    tx,
		logger: logger.Named("underwriting_usecase"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

type SaveModelInput struct {
	Metrics    domain.Metrics    `json:"metrics"`
	Parameters domain.Parameters `json:"parameters"`
	CreatedBy  string            `json:"created_by"`
}

type ModelDTO struct {
	ModelID    string            `json:"model_id"`
	Version    int               `json:"version"`
	Metrics    domain.Metrics    `json:"metrics"`
	Parameters domain.Parameters `json:"parameters"`
	IsActive   bool              `json:"is_active"`
	CreatedAt  time.Time         `json:"created_at"`
}

func toModelDTO(m *domain.Model) *ModelDTO {
	return &ModelDTO{
		ModelID:    m.ModelID,
		Version:    m.Version,
		Metrics:    m.Metrics,
		Parameters: m.Parameters,
		IsActive:   m.IsActive,
		CreatedAt:  m.CreatedAt,
	}
}

// SaveModel appends a new model version and makes it the single active
// one. A validation failure rejects the write entirely; prior versions
// are deactivated, never edited.
func (u *Usecase) SaveModel(ctx context.Context, in SaveModelInput) (*ModelDTO, error) {
	m := &domain.Model{
		ModelID:    id.NewID32(),
		Metrics:    in.Metrics,
		Parameters: in.Parameters,
		IsActive:   true,
		CreatedBy:  in.CreatedBy,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}

	var dto *ModelDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		maxV, err := r.Models.MaxVersion(ctx)
		if err != nil {
			return err
		}
		if err := r.Models.DeactivateAll(ctx); err != nil {
			return err
		}
		m.Version = maxV + 1
		if err := r.Models.Create(ctx, m); err != nil {
			return err
		}
		dto = toModelDTO(m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	u.logger.Info("underwriting model activated",
		zap.String("model_id", m.ModelID), zap.Int("version", m.Version))
	return dto, nil
}

func (u *Usecase) ActiveModel(ctx context.Context) (*ModelDTO, error) {
	m, err := u.repo.GetActive(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoActiveModel
		}
		return nil, err
	}
	return toModelDTO(m), nil
}
