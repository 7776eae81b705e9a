package persistence

import (
	"context"
	"errors"

	"github.com/estoquesaude/backend/internal/domain/catalog"
	"github.com/estoquesaude/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormItemRepository implements catalog.ItemRepository using GORM
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a new GormItemRepository
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// Save persists an item, inserting or updating as needed
func (r *GormItemRepository) Save(ctx context.Context, item *catalog.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// UpdateDetails writes the catalog columns only. current_quantity_central is
// excluded so an unlocked catalog edit cannot overwrite a committed movement.
func (r *GormItemRepository) UpdateDetails(ctx context.Context, item *catalog.Item) error {
	return r.db.WithContext(ctx).
		Model(item).
		Select("name", "category", "unit_of_measure", "supplier", "expiration_date", "min_quantity_central", "updated_at").
		Updates(item).Error
}

// FindByID finds an item by its ID
func (r *GormItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	var item catalog.Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByIDForUpdate finds an item by ID holding a row lock so that
// concurrent central-counter updates serialize. Must run inside a
// transaction.
func (r *GormItemRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	var item catalog.Item
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByCode finds an item by its unique code
func (r *GormItemRepository) FindByCode(ctx context.Context, code string) (*catalog.Item, error) {
	var item catalog.Item
	if err := r.db.WithContext(ctx).First(&item, "code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindAll returns all items ordered by name
func (r *GormItemRepository) FindAll(ctx context.Context) ([]catalog.Item, error) {
	var items []catalog.Item
	if err := r.db.WithContext(ctx).Order("name").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindBelowMinimum returns items whose central stock is below the minimum
func (r *GormItemRepository) FindBelowMinimum(ctx context.Context) ([]catalog.Item, error) {
	var items []catalog.Item
	if err := r.db.WithContext(ctx).
		Where("min_quantity_central > 0 AND current_quantity_central < min_quantity_central").
		Order("name").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Delete removes an item by ID
func (r *GormItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&catalog.Item{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ catalog.ItemRepository = (*GormItemRepository)(nil)
