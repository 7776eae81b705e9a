package catalog

import (
	"context"

	"github.com/google/uuid"
)

// ItemRepository defines persistence operations for catalog items.
// FindByIDForUpdate must acquire a row lock so that concurrent central-counter
// updates serialize.
// UpdateDetails persists the catalog fields only; the central counter column
// is left to the movement transaction that owns it.
type ItemRepository interface {
	Save(ctx context.Context, item *Item) error
	UpdateDetails(ctx context.Context, item *Item) error
	FindByID(ctx context.Context, id uuid.UUID) (*Item, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*Item, error)
	FindByCode(ctx context.Context, code string) (*Item, error)
	FindAll(ctx context.Context) ([]Item, error)
	FindBelowMinimum(ctx context.Context) ([]Item, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
