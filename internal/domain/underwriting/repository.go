package underwriting

import "context"

type Repository interface {
	// Create inserts a new model version (append-only history).
	Create(ctx context.Context, m *Model) error
	GetActive(ctx context.Context) (*Model, error)
	GetByModelID(ctx context.Context, modelID string) (*Model, error)
	// DeactivateAll clears is_active on every version; used inside the
	// same transaction that inserts the replacement.
	DeactivateAll(ctx context.Context) error
	// MaxVersion returns the highest stored version, 0 when empty.
	MaxVersion(ctx context.Context) (int, error)
}
