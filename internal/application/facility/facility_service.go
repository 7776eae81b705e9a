package facility

import (
	"context"

	"github.com/estoquesaude/backend/internal/domain/facility"
	"github.com/estoquesaude/backend/internal/domain/identity"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service manages hospitals and their served units
type Service struct {
	hospitals facility.HospitalRepository
	units     facility.ServedUnitRepository
	logger    *zap.Logger
}

// NewService creates a facility Service
func NewService(hospitals facility.HospitalRepository, units facility.ServedUnitRepository, logger *zap.Logger) *Service {
	return &Service{
		hospitals: hospitals,
		units:     units,
		logger:    logger.Named("facility"),
	}
}

// CreateHospital registers a hospital
func (s *Service) CreateHospital(ctx context.Context, name, address string, facilityType facility.FacilityType) (*facility.Hospital, error) {
	hospital, err := facility.NewHospital(name, address, facilityType)
	if err != nil {
		return nil, err
	}
	if err := s.hospitals.Save(ctx, hospital); err != nil {
		return nil, err
	}
	s.logger.Info("hospital created",
		zap.String("hospital_id", hospital.ID.String()),
		zap.String("type", string(hospital.Type)),
	)
	return hospital, nil
}

// UpdateHospital modifies a hospital
func (s *Service) UpdateHospital(ctx context.Context, id uuid.UUID, name, address string, facilityType facility.FacilityType) (*facility.Hospital, error) {
	hospital, err := s.hospitals.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := hospital.Update(name, address, facilityType); err != nil {
		return nil, err
	}
	if err := s.hospitals.Save(ctx, hospital); err != nil {
		return nil, err
	}
	return hospital, nil
}

// GetHospital returns one hospital
func (s *Service) GetHospital(ctx context.Context, id uuid.UUID) (*facility.Hospital, error) {
	return s.hospitals.FindByID(ctx, id)
}

// ListHospitals returns all hospitals
func (s *Service) ListHospitals(ctx context.Context) ([]facility.Hospital, error) {
	return s.hospitals.FindAll(ctx)
}

// DeleteHospital removes a hospital
func (s *Service) DeleteHospital(ctx context.Context, id uuid.UUID) error {
	return s.hospitals.Delete(ctx, id)
}

// CreateUnit registers a served unit under a hospital
func (s *Service) CreateUnit(ctx context.Context, name, location string, hospitalID uuid.UUID) (*facility.ServedUnit, error) {
	// The owning hospital must resolve before the unit is created
	if _, err := s.hospitals.FindByID(ctx, hospitalID); err != nil {
		return nil, err
	}
	unit, err := facility.NewServedUnit(name, location, hospitalID)
	if err != nil {
		return nil, err
	}
	if err := s.units.Save(ctx, unit); err != nil {
		return nil, err
	}
	s.logger.Info("served unit created",
		zap.String("unit_id", unit.ID.String()),
		zap.String("hospital_id", hospitalID.String()),
	)
	return unit, nil
}

// GetUnit returns one served unit
func (s *Service) GetUnit(ctx context.Context, id uuid.UUID) (*facility.ServedUnit, error) {
	return s.units.FindByID(ctx, id)
}

// ListUnits returns the served units the actor may see
func (s *Service) ListUnits(ctx context.Context, policy identity.AccessPolicy, hospitalID *uuid.UUID) ([]facility.ServedUnit, error) {
	var units []facility.ServedUnit
	var err error
	if hospitalID != nil {
		units, err = s.units.FindByHospital(ctx, *hospitalID)
	} else {
		units, err = s.units.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	return policy.VisibleUnits(units), nil
}

// DeleteUnit removes a served unit
func (s *Service) DeleteUnit(ctx context.Context, id uuid.UUID) error {
	return s.units.Delete(ctx, id)
}
