package persistence

import (
	"context"
	"errors"

	"github.com/estoquesaude/backend/internal/domain/patient"
	"github.com/estoquesaude/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPatientRepository implements patient.Repository using GORM
type GormPatientRepository struct {
	db *gorm.DB
}

// NewGormPatientRepository creates a new GormPatientRepository
func NewGormPatientRepository(db *gorm.DB) *GormPatientRepository {
	return &GormPatientRepository{db: db}
}

// Save persists a patient
func (r *GormPatientRepository) Save(ctx context.Context, p *patient.Patient) error {
	return r.db.WithContext(ctx).Save(p).Error
}

// SaveAll persists a batch of patients in a single insert
func (r *GormPatientRepository) SaveAll(ctx context.Context, patients []*patient.Patient) error {
	if len(patients) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(patients).Error
}

// FindByID finds a patient by ID
func (r *GormPatientRepository) FindByID(ctx context.Context, id uuid.UUID) (*patient.Patient, error) {
	var p patient.Patient
	if err := r.db.WithContext(ctx).First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// FindByHospital returns all patients registered at a hospital
func (r *GormPatientRepository) FindByHospital(ctx context.Context, hospitalID uuid.UUID) ([]patient.Patient, error) {
	var patients []patient.Patient
	if err := r.db.WithContext(ctx).
		Where("hospital_id = ?", hospitalID).
		Order("name").
		Find(&patients).Error; err != nil {
		return nil, err
	}
	return patients, nil
}

// FindAll returns all patients ordered by name
func (r *GormPatientRepository) FindAll(ctx context.Context) ([]patient.Patient, error) {
	var patients []patient.Patient
	if err := r.db.WithContext(ctx).Order("name").Find(&patients).Error; err != nil {
		return nil, err
	}
	return patients, nil
}

// Delete removes a patient by ID
func (r *GormPatientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&patient.Patient{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ patient.Repository = (*GormPatientRepository)(nil)
