package stock

import (
	"context"

	"github.com/google/uuid"
)

// ConfigRepository defines persistence operations for stock configurations.
// FindByKeyForUpdate must acquire a row lock so that concurrent writers to the
// same counter serialize (read-then-write, never blind-write).
type ConfigRepository interface {
	Save(ctx context.Context, config *Config) error
	FindByKey(ctx context.Context, key string) (*Config, error)
	FindByKeyForUpdate(ctx context.Context, key string) (*Config, error)
	FindByItem(ctx context.Context, itemID uuid.UUID) ([]Config, error)
	FindAll(ctx context.Context) ([]Config, error)
}

// MovementRepository defines persistence operations for the append-only
// movement ledger. There is deliberately no update or delete.
type MovementRepository interface {
	Append(ctx context.Context, movement *Movement) error
	FindByID(ctx context.Context, id uuid.UUID) (*Movement, error)
	FindByItem(ctx context.Context, itemID uuid.UUID) ([]Movement, error)
	FindAll(ctx context.Context) ([]Movement, error)
}
