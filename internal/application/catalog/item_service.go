package catalog

import (
	"context"
	"time"

	"github.com/estoquesaude/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ItemInput carries the writable fields of a catalog item
type ItemInput struct {
	Name           string
	Code           string
	Category       string
	UnitOfMeasure  string
	Supplier       string
	ExpirationDate *time.Time
}

// ItemService manages the item catalog
type ItemService struct {
	repo   catalog.ItemRepository
	logger *zap.Logger
}

// NewItemService creates an ItemService
func NewItemService(repo catalog.ItemRepository, logger *zap.Logger) *ItemService {
	return &ItemService{repo: repo, logger: logger.Named("catalog")}
}

// Create registers a new item
func (s *ItemService) Create(ctx context.Context, input ItemInput) (*catalog.Item, error) {
	item, err := catalog.NewItem(input.Name, input.Code, input.Category, input.UnitOfMeasure)
	if err != nil {
		return nil, err
	}
	item.WithSupplyDetails(input.Supplier, input.ExpirationDate)
	if err := s.repo.Save(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("item created", zap.String("item_id", item.ID.String()), zap.String("code", item.Code))
	return item, nil
}

// Update modifies an existing item
func (s *ItemService) Update(ctx context.Context, id uuid.UUID, input ItemInput) (*catalog.Item, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := item.Update(input.Name, input.Category, input.UnitOfMeasure, input.Supplier, input.ExpirationDate); err != nil {
		return nil, err
	}
	// Catalog edits never carry the counter: a movement may have committed
	// since the read above.
	if err := s.repo.UpdateDetails(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// SetMinQuantity sets the central minimum-quantity threshold
func (s *ItemService) SetMinQuantity(ctx context.Context, id uuid.UUID, quantity decimal.Decimal) (*catalog.Item, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := item.SetMinQuantityCentral(quantity); err != nil {
		return nil, err
	}
	if err := s.repo.UpdateDetails(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Get returns one item
func (s *ItemService) Get(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns all items
func (s *ItemService) List(ctx context.Context) ([]catalog.Item, error) {
	return s.repo.FindAll(ctx)
}

// ListBelowMinimum returns the items whose central stock undershoots the
// configured minimum, for the replenishment alert view
func (s *ItemService) ListBelowMinimum(ctx context.Context) ([]catalog.Item, error) {
	return s.repo.FindBelowMinimum(ctx)
}

// Delete removes an item
func (s *ItemService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("item deleted", zap.String("item_id", id.String()))
	return nil
}
