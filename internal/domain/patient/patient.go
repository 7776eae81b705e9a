package patient

import (
	"strings"
	"time"

	"github.com/estoquesaude/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// susCardLength is the fixed length of a national health card number
const susCardLength = 15

// Sex is the registered sex of a patient
type Sex string

const (
	SexFemale      Sex = "F"
	SexMale        Sex = "M"
	SexUnspecified Sex = ""
)

// IsValid returns true if the sex value is known
func (s Sex) IsValid() bool {
	switch s {
	case SexFemale, SexMale, SexUnspecified:
		return true
	}
	return false
}

// Patient represents a registered patient of a primary-care facility
type Patient struct {
	shared.BaseEntity
	Name          string    `gorm:"type:varchar(200);not null"`
	SUSCardNumber string    `gorm:"type:varchar(15);not null;index"`
	BirthDate     *time.Time
	Address       string    `gorm:"type:varchar(300)"`
	Phone         string    `gorm:"type:varchar(30)"`
	Sex           Sex       `gorm:"type:varchar(1)"`
	HealthAgent   string    `gorm:"type:varchar(200)"`
	HospitalID    uuid.UUID `gorm:"type:uuid;index"`
}

// TableName returns the table name for GORM
func (Patient) TableName() string {
	return "patients"
}

// ValidateSUSCardNumber checks that the card number is exactly 15 digits
func ValidateSUSCardNumber(number string) error {
	if len(number) != susCardLength {
		return shared.NewDomainError("INVALID_INPUT", "O número do Cartão SUS deve ter exatamente 15 dígitos")
	}
	for _, r := range number {
		if r < '0' || r > '9' {
			return shared.NewDomainError("INVALID_INPUT", "O número do Cartão SUS deve ter exatamente 15 dígitos")
		}
	}
	return nil
}

// NewPatient creates a new patient record
func NewPatient(name, susCardNumber string) (*Patient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Patient name is required")
	}
	susCardNumber = strings.TrimSpace(susCardNumber)
	if err := ValidateSUSCardNumber(susCardNumber); err != nil {
		return nil, err
	}

	return &Patient{
		BaseEntity:    shared.NewBaseEntity(),
		Name:          name,
		SUSCardNumber: susCardNumber,
	}, nil
}

// SetDetails fills the optional registry fields
func (p *Patient) SetDetails(birthDate *time.Time, address, phone string, sex Sex, healthAgent string, hospitalID uuid.UUID) error {
	if !sex.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "Unknown sex value")
	}
	p.BirthDate = birthDate
	p.Address = strings.TrimSpace(address)
	p.Phone = strings.TrimSpace(phone)
	p.Sex = sex
	p.HealthAgent = strings.TrimSpace(healthAgent)
	p.HospitalID = hospitalID
	p.UpdatedAt = time.Now()
	return nil
}

// Update changes name and card number
func (p *Patient) Update(name, susCardNumber string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Patient name is required")
	}
	susCardNumber = strings.TrimSpace(susCardNumber)
	if err := ValidateSUSCardNumber(susCardNumber); err != nil {
		return err
	}
	p.Name = name
	p.SUSCardNumber = susCardNumber
	p.UpdatedAt = time.Now()
	return nil
}
