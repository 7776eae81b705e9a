package stock

import (
	"time"

	"github.com/estoquesaude/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MovementType represents the type of a stock movement
type MovementType string

const (
	// MovementTypeEntry is stock coming into a location
	MovementTypeEntry MovementType = "entry"
	// MovementTypeExit is stock leaving a location (transfer, disposal)
	MovementTypeExit MovementType = "exit"
	// MovementTypeConsumption is stock dispensed to a patient or used up
	MovementTypeConsumption MovementType = "consumption"
)

// String returns the string representation of MovementType
func (t MovementType) String() string {
	return string(t)
}

// IsValid returns true if the movement type is known
func (t MovementType) IsValid() bool {
	switch t {
	case MovementTypeEntry, MovementTypeExit, MovementTypeConsumption:
		return true
	}
	return false
}

// SignedQuantity returns quantity with the sign implied by the type:
// positive for entry, negative for exit and consumption.
func (t MovementType) SignedQuantity(quantity decimal.Decimal) decimal.Decimal {
	if t == MovementTypeEntry {
		return quantity
	}
	return quantity.Neg()
}

// Movement is one immutable ledger entry affecting exactly one item at exactly
// one location. Entries are append-only: corrections are made with new
// movements, never by editing. Display names are denormalized at write time so
// history stays faithful even if the referenced entity is later renamed.
type Movement struct {
	shared.BaseEntity
	ItemID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_movements_item_date,priority:1"`
	Type          MovementType    `gorm:"type:varchar(20);not null;index"`
	Quantity      decimal.Decimal `gorm:"type:decimal(18,4);not null"` // always positive, direction from Type
	Date          time.Time       `gorm:"type:date;not null;index:idx_movements_item_date,priority:2"`
	ConfigKey     string          `gorm:"type:varchar(100);not null;index"`
	UnitID        *uuid.UUID      `gorm:"type:uuid;index"`
	HospitalID    *uuid.UUID      `gorm:"type:uuid;index"`
	PatientID     *uuid.UUID      `gorm:"type:uuid;index"`
	Notes         string          `gorm:"type:varchar(500)"`
	RecordedBy    string          `gorm:"type:varchar(128);not null"`
	ItemName      string          `gorm:"type:varchar(200);not null"`
	ItemCode      string          `gorm:"type:varchar(50);not null"`
	HospitalName  string          `gorm:"type:varchar(200)"`
	UnitName      string          `gorm:"type:varchar(200)"`
	PatientName   string          `gorm:"type:varchar(200)"`
	QuantityAfter decimal.Decimal `gorm:"type:decimal(18,4);not null"` // counter value after the movement
}

// TableName returns the table name for GORM
func (Movement) TableName() string {
	return "stock_movements"
}

// NewMovement creates a new ledger entry. The configKey ties the entry to the
// counter it adjusted; quantityAfter records the post-movement counter value.
func NewMovement(
	itemID uuid.UUID,
	movementType MovementType,
	quantity decimal.Decimal,
	date time.Time,
	configKey string,
	recordedBy string,
	quantityAfter decimal.Decimal,
) (*Movement, error) {
	if itemID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Item ID cannot be empty")
	}
	if !movementType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown movement type")
	}
	if quantity.IsNegative() || quantity.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}
	if date.IsZero() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Movement date is required")
	}
	if configKey == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Config key cannot be empty")
	}
	if recordedBy == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Recording user is required")
	}

	return &Movement{
		BaseEntity:    shared.NewBaseEntity(),
		ItemID:        itemID,
		Type:          movementType,
		Quantity:      quantity,
		Date:          date,
		ConfigKey:     configKey,
		RecordedBy:    recordedBy,
		QuantityAfter: quantityAfter,
	}, nil
}

// WithLocation sets the location references of the movement
func (m *Movement) WithLocation(unitID, hospitalID *uuid.UUID) *Movement {
	m.UnitID = unitID
	m.HospitalID = hospitalID
	return m
}

// WithPatient sets the patient reference of the movement
func (m *Movement) WithPatient(patientID *uuid.UUID) *Movement {
	m.PatientID = patientID
	return m
}

// WithNotes sets free-text notes
func (m *Movement) WithNotes(notes string) *Movement {
	m.Notes = notes
	return m
}

// WithDisplayNames captures the denormalized names at write time
func (m *Movement) WithDisplayNames(itemName, itemCode, hospitalName, unitName, patientName string) *Movement {
	m.ItemName = itemName
	m.ItemCode = itemCode
	m.HospitalName = hospitalName
	m.UnitName = unitName
	m.PatientName = patientName
	return m
}

// SignedQuantity returns the quantity with the sign implied by the type
func (m *Movement) SignedQuantity() decimal.Decimal {
	return m.Type.SignedQuantity(m.Quantity)
}
