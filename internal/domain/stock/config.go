package stock

import (
	"fmt"
	"time"

	"github.com/estoquesaude/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LocationKind identifies which bucket a stock configuration belongs to
type LocationKind string

const (
	// LocationCentral is the central warehouse
	LocationCentral LocationKind = "central"
	// LocationUnit is a served unit inside a hospital
	LocationUnit LocationKind = "unit"
	// LocationUBSGeneral is the general-stock bucket of a primary-care facility
	LocationUBSGeneral LocationKind = "ubs_general"
)

// generalSuffix is the composite-key suffix for a primary-care general bucket
const generalSuffix = "UBSGENERAL"

// ConfigKey derives the deterministic document identity for a stock
// configuration. The composite key guarantees exactly one config per
// (item, location) pair without duplicate-detection queries.
//
//	central:      {itemID}_central
//	served unit:  {itemID}_{unitID}
//	UBS general:  {itemID}_{hospitalID}_UBSGENERAL
func ConfigKey(itemID uuid.UUID, kind LocationKind, locationID uuid.UUID) (string, error) {
	if itemID == uuid.Nil {
		return "", shared.NewDomainError("INVALID_INPUT", "Item ID is required for a config key")
	}

	switch kind {
	case LocationCentral:
		return fmt.Sprintf("%s_central", itemID), nil
	case LocationUnit:
		if locationID == uuid.Nil {
			return "", shared.NewDomainError("INVALID_INPUT", "Unit ID is required for a unit config key")
		}
		return fmt.Sprintf("%s_%s", itemID, locationID), nil
	case LocationUBSGeneral:
		if locationID == uuid.Nil {
			return "", shared.NewDomainError("INVALID_INPUT", "Hospital ID is required for a general-stock config key")
		}
		return fmt.Sprintf("%s_%s_%s", itemID, locationID, generalSuffix), nil
	default:
		return "", shared.NewDomainError("INVALID_INPUT", "Unknown stock location kind")
	}
}

// Config holds the strategic stock parameters and the live counter for one
// (item, location) pair. The primary key is the composite string from
// ConfigKey, not a generated id. The central location has no Config counter;
// its quantity lives on the catalog Item.
type Config struct {
	Key             string          `gorm:"type:varchar(100);primaryKey;column:key"`
	ItemID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	LocationKind    LocationKind    `gorm:"type:varchar(20);not null"`
	UnitID          *uuid.UUID      `gorm:"type:uuid;index"`
	HospitalID      *uuid.UUID      `gorm:"type:uuid;index"`
	StrategicLevel  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MinQuantity     decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CurrentQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName returns the table name for GORM
func (Config) TableName() string {
	return "stock_configs"
}

// NewUnitConfig creates a config for a served-unit bucket
func NewUnitConfig(itemID, unitID, hospitalID uuid.UUID) (*Config, error) {
	key, err := ConfigKey(itemID, LocationUnit, unitID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &Config{
		Key:          key,
		ItemID:       itemID,
		LocationKind: LocationUnit,
		UnitID:       &unitID,
		HospitalID:   &hospitalID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// NewUBSGeneralConfig creates a config for a primary-care general bucket
func NewUBSGeneralConfig(itemID, hospitalID uuid.UUID) (*Config, error) {
	key, err := ConfigKey(itemID, LocationUBSGeneral, hospitalID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	return &Config{
		Key:          key,
		ItemID:       itemID,
		LocationKind: LocationUBSGeneral,
		HospitalID:   &hospitalID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// SetLevels merges the strategic stock parameters without touching the counter
func (c *Config) SetLevels(strategicLevel, minQuantity decimal.Decimal) error {
	if strategicLevel.IsNegative() || minQuantity.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Stock levels cannot be negative")
	}
	c.StrategicLevel = strategicLevel
	c.MinQuantity = minQuantity
	c.UpdatedAt = time.Now()
	return nil
}

// ApplyDelta adjusts the counter by a signed delta.
// Fails when the result would be negative.
func (c *Config) ApplyDelta(delta decimal.Decimal) error {
	next := c.CurrentQuantity.Add(delta)
	if next.IsNegative() {
		return shared.ErrInsufficientStock
	}
	c.CurrentQuantity = next
	c.UpdatedAt = time.Now()
	return nil
}

// IsBelowMinimum returns true if the counter undershoots the minimum quantity
func (c *Config) IsBelowMinimum() bool {
	return c.MinQuantity.GreaterThan(decimal.Zero) && c.CurrentQuantity.LessThan(c.MinQuantity)
}

// IsBelowStrategicLevel returns true if the counter undershoots the strategic level
func (c *Config) IsBelowStrategicLevel() bool {
	return c.StrategicLevel.GreaterThan(decimal.Zero) && c.CurrentQuantity.LessThan(c.StrategicLevel)
}
