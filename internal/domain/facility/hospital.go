package facility

import (
	"strings"
	"time"

	"github.com/estoquesaude/backend/internal/domain/shared"
)

// FacilityType discriminates ordinary hospitals from primary-care units (UBS).
// Primary-care facilities carry an additional "general stock" bucket that is
// not tied to any served unit.
type FacilityType string

const (
	// FacilityTypeHospital is an ordinary hospital
	FacilityTypeHospital FacilityType = "hospital"
	// FacilityTypePrimaryCare is a primary-care unit (UBS)
	FacilityTypePrimaryCare FacilityType = "primary_care"
)

// IsValid returns true if the facility type is known
func (t FacilityType) IsValid() bool {
	switch t {
	case FacilityTypeHospital, FacilityTypePrimaryCare:
		return true
	}
	return false
}

// Hospital represents a hospital or primary-care facility
type Hospital struct {
	shared.BaseEntity
	Name    string       `gorm:"type:varchar(200);not null"`
	Address string       `gorm:"type:varchar(300)"`
	Type    FacilityType `gorm:"type:varchar(20);not null;default:'hospital'"`
}

// TableName returns the table name for GORM
func (Hospital) TableName() string {
	return "hospitals"
}

// NewHospital creates a new hospital registry entry
func NewHospital(name, address string, facilityType FacilityType) (*Hospital, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Hospital name is required")
	}
	if facilityType == "" {
		facilityType = FacilityTypeHospital
	}
	if !facilityType.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown facility type")
	}

	return &Hospital{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		Address:    strings.TrimSpace(address),
		Type:       facilityType,
	}, nil
}

// IsPrimaryCare returns true for UBS facilities, which own a general-stock bucket
func (h *Hospital) IsPrimaryCare() bool {
	return h.Type == FacilityTypePrimaryCare
}

// Update changes the editable registry fields
func (h *Hospital) Update(name, address string, facilityType FacilityType) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Hospital name is required")
	}
	if facilityType != "" && !facilityType.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "Unknown facility type")
	}

	h.Name = name
	h.Address = strings.TrimSpace(address)
	if facilityType != "" {
		h.Type = facilityType
	}
	h.UpdatedAt = time.Now()
	return nil
}

// InferFacilityType maps legacy names to a facility type. Earlier data encoded
// the type as a "UBS" substring in the name; imports still honor that convention.
func InferFacilityType(name string) FacilityType {
	if strings.Contains(strings.ToUpper(name), "UBS") {
		return FacilityTypePrimaryCare
	}
	return FacilityTypeHospital
}
