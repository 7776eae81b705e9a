package facility

import (
	"strings"
	"time"

	"github.com/estoquesaude/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ServedUnit represents a consuming location inside a hospital
// (ward, pharmacy, room).
type ServedUnit struct {
	shared.BaseEntity
	Name       string    `gorm:"type:varchar(200);not null"`
	Location   string    `gorm:"type:varchar(200)"`
	HospitalID uuid.UUID `gorm:"type:uuid;not null;index"`
}

// TableName returns the table name for GORM
func (ServedUnit) TableName() string {
	return "served_units"
}

// NewServedUnit creates a new served unit belonging to a hospital
func NewServedUnit(name, location string, hospitalID uuid.UUID) (*ServedUnit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unit name is required")
	}
	if hospitalID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_INPUT", "Owning hospital is required")
	}

	return &ServedUnit{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Location:   strings.TrimSpace(location),
		HospitalID: hospitalID,
	}, nil
}

// Update changes the editable fields
func (u *ServedUnit) Update(name, location string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Unit name is required")
	}
	u.Name = name
	u.Location = strings.TrimSpace(location)
	u.UpdatedAt = time.Now()
	return nil
}
