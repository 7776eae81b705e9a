package handler

import (
	"time"

	"github.com/estoquesaude/backend/internal/domain/catalog"
	"github.com/estoquesaude/backend/internal/domain/facility"
	"github.com/estoquesaude/backend/internal/domain/identity"
	"github.com/estoquesaude/backend/internal/domain/patient"
	"github.com/estoquesaude/backend/internal/domain/stock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ItemResponse is the API shape of a catalog item
type ItemResponse struct {
	ID                     uuid.UUID       `json:"id"`
	Name                   string          `json:"name"`
	Code                   string          `json:"code"`
	Category               string          `json:"category,omitempty"`
	UnitOfMeasure          string          `json:"unit_of_measure"`
	MinQuantityCentral     decimal.Decimal `json:"min_quantity_central"`
	CurrentQuantityCentral decimal.Decimal `json:"current_quantity_central"`
	Supplier               string          `json:"supplier,omitempty"`
	ExpirationDate         *time.Time      `json:"expiration_date,omitempty"`
	CreatedAt              time.Time       `json:"created_at"`
	UpdatedAt              time.Time       `json:"updated_at"`
}

func toItemResponse(item *catalog.Item) ItemResponse {
	return ItemResponse{
		ID:                     item.ID,
		Name:                   item.Name,
		Code:                   item.Code,
		Category:               item.Category,
		UnitOfMeasure:          item.UnitOfMeasure,
		MinQuantityCentral:     item.MinQuantityCentral,
		CurrentQuantityCentral: item.CurrentQuantityCentral,
		Supplier:               item.Supplier,
		ExpirationDate:         item.ExpirationDate,
		CreatedAt:              item.CreatedAt,
		UpdatedAt:              item.UpdatedAt,
	}
}

func toItemResponses(items []catalog.Item) []ItemResponse {
	out := make([]ItemResponse, len(items))
	for i := range items {
		out[i] = toItemResponse(&items[i])
	}
	return out
}

// HospitalResponse is the API shape of a hospital
type HospitalResponse struct {
	ID        uuid.UUID             `json:"id"`
	Name      string                `json:"name"`
	Address   string                `json:"address,omitempty"`
	Type      facility.FacilityType `json:"type"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
}

func toHospitalResponse(h *facility.Hospital) HospitalResponse {
	return HospitalResponse{
		ID:        h.ID,
		Name:      h.Name,
		Address:   h.Address,
		Type:      h.Type,
		CreatedAt: h.CreatedAt,
		UpdatedAt: h.UpdatedAt,
	}
}

func toHospitalResponses(hospitals []facility.Hospital) []HospitalResponse {
	out := make([]HospitalResponse, len(hospitals))
	for i := range hospitals {
		out[i] = toHospitalResponse(&hospitals[i])
	}
	return out
}

// UnitResponse is the API shape of a served unit
type UnitResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Location   string    `json:"location,omitempty"`
	HospitalID uuid.UUID `json:"hospital_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func toUnitResponse(u *facility.ServedUnit) UnitResponse {
	return UnitResponse{
		ID:         u.ID,
		Name:       u.Name,
		Location:   u.Location,
		HospitalID: u.HospitalID,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func toUnitResponses(units []facility.ServedUnit) []UnitResponse {
	out := make([]UnitResponse, len(units))
	for i := range units {
		out[i] = toUnitResponse(&units[i])
	}
	return out
}

// PatientResponse is the API shape of a patient record
type PatientResponse struct {
	ID            uuid.UUID   `json:"id"`
	Name          string      `json:"name"`
	SUSCardNumber string      `json:"sus_card_number"`
	BirthDate     *time.Time  `json:"birth_date,omitempty"`
	Address       string      `json:"address,omitempty"`
	Phone         string      `json:"phone,omitempty"`
	Sex           patient.Sex `json:"sex,omitempty"`
	HealthAgent   string      `json:"health_agent,omitempty"`
	HospitalID    uuid.UUID   `json:"hospital_id,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

func toPatientResponse(p *patient.Patient) PatientResponse {
	return PatientResponse{
		ID:            p.ID,
		Name:          p.Name,
		SUSCardNumber: p.SUSCardNumber,
		BirthDate:     p.BirthDate,
		Address:       p.Address,
		Phone:         p.Phone,
		Sex:           p.Sex,
		HealthAgent:   p.HealthAgent,
		HospitalID:    p.HospitalID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toPatientResponses(patients []patient.Patient) []PatientResponse {
	out := make([]PatientResponse, len(patients))
	for i := range patients {
		out[i] = toPatientResponse(&patients[i])
	}
	return out
}

// ConfigResponse is the API shape of a stock configuration
type ConfigResponse struct {
	Key             string             `json:"key"`
	ItemID          uuid.UUID          `json:"item_id"`
	LocationKind    stock.LocationKind `json:"location_kind"`
	UnitID          *uuid.UUID         `json:"unit_id,omitempty"`
	HospitalID      *uuid.UUID         `json:"hospital_id,omitempty"`
	StrategicLevel  decimal.Decimal    `json:"strategic_level"`
	MinQuantity     decimal.Decimal    `json:"min_quantity"`
	CurrentQuantity decimal.Decimal    `json:"current_quantity"`
	UpdatedAt       time.Time          `json:"updated_at"`
}

func toConfigResponse(cfg *stock.Config) ConfigResponse {
	return ConfigResponse{
		Key:             cfg.Key,
		ItemID:          cfg.ItemID,
		LocationKind:    cfg.LocationKind,
		UnitID:          cfg.UnitID,
		HospitalID:      cfg.HospitalID,
		StrategicLevel:  cfg.StrategicLevel,
		MinQuantity:     cfg.MinQuantity,
		CurrentQuantity: cfg.CurrentQuantity,
		UpdatedAt:       cfg.UpdatedAt,
	}
}

func toConfigResponses(configs []stock.Config) []ConfigResponse {
	out := make([]ConfigResponse, len(configs))
	for i := range configs {
		out[i] = toConfigResponse(&configs[i])
	}
	return out
}

// MovementResponse is the API shape of a ledger entry. Display names are
// the denormalized values captured when the movement was recorded.
type MovementResponse struct {
	ID            uuid.UUID          `json:"id"`
	ItemID        uuid.UUID          `json:"item_id"`
	ItemName      string             `json:"item_name"`
	ItemCode      string             `json:"item_code"`
	Type          stock.MovementType `json:"type"`
	Quantity      decimal.Decimal    `json:"quantity"`
	QuantityAfter decimal.Decimal    `json:"quantity_after"`
	Date          time.Time          `json:"date"`
	ConfigKey     string             `json:"config_key"`
	UnitID        *uuid.UUID         `json:"unit_id,omitempty"`
	UnitName      string             `json:"unit_name,omitempty"`
	HospitalID    *uuid.UUID         `json:"hospital_id,omitempty"`
	HospitalName  string             `json:"hospital_name,omitempty"`
	PatientID     *uuid.UUID         `json:"patient_id,omitempty"`
	PatientName   string             `json:"patient_name,omitempty"`
	Notes         string             `json:"notes,omitempty"`
	RecordedBy    string             `json:"recorded_by"`
	CreatedAt     time.Time          `json:"created_at"`
}

func toMovementResponse(m *stock.Movement) MovementResponse {
	return MovementResponse{
		ID:            m.ID,
		ItemID:        m.ItemID,
		ItemName:      m.ItemName,
		ItemCode:      m.ItemCode,
		Type:          m.Type,
		Quantity:      m.Quantity,
		QuantityAfter: m.QuantityAfter,
		Date:          m.Date,
		ConfigKey:     m.ConfigKey,
		UnitID:        m.UnitID,
		UnitName:      m.UnitName,
		HospitalID:    m.HospitalID,
		HospitalName:  m.HospitalName,
		PatientID:     m.PatientID,
		PatientName:   m.PatientName,
		Notes:         m.Notes,
		RecordedBy:    m.RecordedBy,
		CreatedAt:     m.CreatedAt,
	}
}

func toMovementResponses(movements []stock.Movement) []MovementResponse {
	out := make([]MovementResponse, len(movements))
	for i := range movements {
		out[i] = toMovementResponse(&movements[i])
	}
	return out
}

// ProfileResponse is the API shape of a user profile
type ProfileResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Email      string          `json:"email"`
	Role       identity.Role   `json:"role"`
	Status     identity.Status `json:"status"`
	HospitalID *uuid.UUID      `json:"hospital_id,omitempty"`
	UnitID     *uuid.UUID      `json:"unit_id,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

func toProfileResponse(p *identity.UserProfile) ProfileResponse {
	return ProfileResponse{
		ID:         p.ID,
		Name:       p.Name,
		Email:      p.Email,
		Role:       p.Role,
		Status:     p.Status,
		HospitalID: p.HospitalID,
		UnitID:     p.UnitID,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

func toProfileResponses(profiles []identity.UserProfile) []ProfileResponse {
	out := make([]ProfileResponse, len(profiles))
	for i := range profiles {
		out[i] = toProfileResponse(&profiles[i])
	}
	return out
}
