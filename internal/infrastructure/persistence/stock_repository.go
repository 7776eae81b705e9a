package persistence

import (
	"context"
	"errors"

	"github.com/estoquesaude/backend/internal/domain/shared"
	"github.com/estoquesaude/backend/internal/domain/stock"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStockConfigRepository implements stock.ConfigRepository using GORM
type GormStockConfigRepository struct {
	db *gorm.DB
}

// NewGormStockConfigRepository creates a new GormStockConfigRepository
func NewGormStockConfigRepository(db *gorm.DB) *GormStockConfigRepository {
	return &GormStockConfigRepository{db: db}
}

// Save persists a stock configuration
func (r *GormStockConfigRepository) Save(ctx context.Context, config *stock.Config) error {
	return r.db.WithContext(ctx).Save(config).Error
}

// FindByKey finds a configuration by its composite key
func (r *GormStockConfigRepository) FindByKey(ctx context.Context, key string) (*stock.Config, error) {
	var config stock.Config
	if err := r.db.WithContext(ctx).First(&config, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &config, nil
}

// FindByKeyForUpdate finds a configuration by key holding a row lock so
// that concurrent counter updates serialize. Must run inside a
// transaction.
func (r *GormStockConfigRepository) FindByKeyForUpdate(ctx context.Context, key string) (*stock.Config, error) {
	var config stock.Config
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&config, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &config, nil
}

// FindByItem returns all configurations for an item
func (r *GormStockConfigRepository) FindByItem(ctx context.Context, itemID uuid.UUID) ([]stock.Config, error) {
	var configs []stock.Config
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("key").
		Find(&configs).Error; err != nil {
		return nil, err
	}
	return configs, nil
}

// FindAll returns all configurations
func (r *GormStockConfigRepository) FindAll(ctx context.Context) ([]stock.Config, error) {
	var configs []stock.Config
	if err := r.db.WithContext(ctx).Order("key").Find(&configs).Error; err != nil {
		return nil, err
	}
	return configs, nil
}

// GormStockMovementRepository implements stock.MovementRepository using GORM.
// The ledger is append-only.
type GormStockMovementRepository struct {
	db *gorm.DB
}

// NewGormStockMovementRepository creates a new GormStockMovementRepository
func NewGormStockMovementRepository(db *gorm.DB) *GormStockMovementRepository {
	return &GormStockMovementRepository{db: db}
}

// Append writes a new ledger entry
func (r *GormStockMovementRepository) Append(ctx context.Context, movement *stock.Movement) error {
	return r.db.WithContext(ctx).Create(movement).Error
}

// FindByID finds a ledger entry by ID
func (r *GormStockMovementRepository) FindByID(ctx context.Context, id uuid.UUID) (*stock.Movement, error) {
	var movement stock.Movement
	if err := r.db.WithContext(ctx).First(&movement, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &movement, nil
}

// FindByItem returns all ledger entries for an item, newest first
func (r *GormStockMovementRepository) FindByItem(ctx context.Context, itemID uuid.UUID) ([]stock.Movement, error) {
	var movements []stock.Movement
	if err := r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("date DESC, created_at DESC").
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

// FindAll returns all ledger entries, newest first
func (r *GormStockMovementRepository) FindAll(ctx context.Context) ([]stock.Movement, error) {
	var movements []stock.Movement
	if err := r.db.WithContext(ctx).
		Order("date DESC, created_at DESC").
		Find(&movements).Error; err != nil {
		return nil, err
	}
	return movements, nil
}

var (
	_ stock.ConfigRepository   = (*GormStockConfigRepository)(nil)
	_ stock.MovementRepository = (*GormStockMovementRepository)(nil)
)
