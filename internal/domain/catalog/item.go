package catalog

import (
	"strings"
	"time"

	"github.com/estoquesaude/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Item represents a stockable item in the central catalog.
// CurrentQuantityCentral is the live counter for the central warehouse;
// quantities at served units and UBS general buckets live on StockConfig.
type Item struct {
	shared.BaseEntity
	Name                   string          `gorm:"type:varchar(200);not null"`
	Code                   string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	Category               string          `gorm:"type:varchar(100)"`
	UnitOfMeasure          string          `gorm:"type:varchar(30);not null"`
	MinQuantityCentral     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CurrentQuantityCentral decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	Supplier               string          `gorm:"type:varchar(200)"`
	ExpirationDate         *time.Time
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "items"
}

// NewItem creates a new catalog item
func NewItem(name, code, category, unitOfMeasure string) (*Item, error) {
	name = strings.TrimSpace(name)
	code = strings.TrimSpace(code)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Item name is required")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Item code is required")
	}
	if strings.TrimSpace(unitOfMeasure) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unit of measure is required")
	}

	return &Item{
		BaseEntity:             shared.NewBaseEntity(),
		Name:                   name,
		Code:                   strings.ToUpper(code),
		Category:               strings.TrimSpace(category),
		UnitOfMeasure:          strings.TrimSpace(unitOfMeasure),
		MinQuantityCentral:     decimal.Zero,
		CurrentQuantityCentral: decimal.Zero,
	}, nil
}

// Update changes the editable catalog fields
func (i *Item) Update(name, category, unitOfMeasure, supplier string, expiration *time.Time) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Item name is required")
	}
	if strings.TrimSpace(unitOfMeasure) == "" {
		return shared.NewDomainError("INVALID_INPUT", "Unit of measure is required")
	}

	i.Name = name
	i.Category = strings.TrimSpace(category)
	i.UnitOfMeasure = strings.TrimSpace(unitOfMeasure)
	i.Supplier = strings.TrimSpace(supplier)
	i.ExpirationDate = expiration
	i.UpdatedAt = time.Now()
	return nil
}

// WithSupplyDetails sets the optional supplier and expiration fields
func (i *Item) WithSupplyDetails(supplier string, expiration *time.Time) *Item {
	i.Supplier = strings.TrimSpace(supplier)
	i.ExpirationDate = expiration
	return i
}

// SetMinQuantityCentral sets the central minimum quantity threshold
func (i *Item) SetMinQuantityCentral(quantity decimal.Decimal) error {
	if quantity.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Minimum quantity cannot be negative")
	}
	i.MinQuantityCentral = quantity
	i.UpdatedAt = time.Now()
	return nil
}

// ApplyCentralDelta adjusts the central counter by a signed delta.
// Fails when the result would be negative.
func (i *Item) ApplyCentralDelta(delta decimal.Decimal) error {
	next := i.CurrentQuantityCentral.Add(delta)
	if next.IsNegative() {
		return shared.ErrInsufficientStock
	}
	i.CurrentQuantityCentral = next
	i.UpdatedAt = time.Now()
	return nil
}

// IsBelowMinimumCentral returns true if the central counter undershoots the minimum
func (i *Item) IsBelowMinimumCentral() bool {
	return i.MinQuantityCentral.GreaterThan(decimal.Zero) &&
		i.CurrentQuantityCentral.LessThan(i.MinQuantityCentral)
}
