package patientapp

import (
	"context"
	"time"

	"github.com/estoquesaude/backend/internal/domain/patient"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PatientInput carries the writable fields of a patient record
type PatientInput struct {
	Name          string
	SUSCardNumber string
	BirthDate     *time.Time
	Address       string
	Phone         string
	Sex           patient.Sex
	HealthAgent   string
	HospitalID    uuid.UUID
}

// Service manages the patient registry
type Service struct {
	repo   patient.Repository
	logger *zap.Logger
}

// NewService creates a patient Service
func NewService(repo patient.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger.Named("patient")}
}

// Create registers a patient
func (s *Service) Create(ctx context.Context, input PatientInput) (*patient.Patient, error) {
	p, err := patient.NewPatient(input.Name, input.SUSCardNumber)
	if err != nil {
		return nil, err
	}
	if err := p.SetDetails(input.BirthDate, input.Address, input.Phone, input.Sex, input.HealthAgent, input.HospitalID); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	s.logger.Info("patient created", zap.String("patient_id", p.ID.String()))
	return p, nil
}

// Update modifies a patient record
func (s *Service) Update(ctx context.Context, id uuid.UUID, input PatientInput) (*patient.Patient, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := p.Update(input.Name, input.SUSCardNumber); err != nil {
		return nil, err
	}
	if err := p.SetDetails(input.BirthDate, input.Address, input.Phone, input.Sex, input.HealthAgent, input.HospitalID); err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Get returns one patient
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	return s.repo.FindByID(ctx, id)
}

// List returns patients, optionally restricted to one registering facility
func (s *Service) List(ctx context.Context, hospitalID *uuid.UUID) ([]patient.Patient, error) {
	if hospitalID != nil {
		return s.repo.FindByHospital(ctx, *hospitalID)
	}
	return s.repo.FindAll(ctx)
}

// Delete removes a patient record
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
