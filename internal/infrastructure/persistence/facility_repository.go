package persistence

import (
	"context"
	"errors"

	"github.com/estoquesaude/backend/internal/domain/facility"
	"github.com/estoquesaude/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormHospitalRepository implements facility.HospitalRepository using GORM
type GormHospitalRepository struct {
	db *gorm.DB
}

// NewGormHospitalRepository creates a new GormHospitalRepository
func NewGormHospitalRepository(db *gorm.DB) *GormHospitalRepository {
	return &GormHospitalRepository{db: db}
}

// Save persists a hospital
func (r *GormHospitalRepository) Save(ctx context.Context, hospital *facility.Hospital) error {
	return r.db.WithContext(ctx).Save(hospital).Error
}

// FindByID finds a hospital by its ID
func (r *GormHospitalRepository) FindByID(ctx context.Context, id uuid.UUID) (*facility.Hospital, error) {
	var hospital facility.Hospital
	if err := r.db.WithContext(ctx).First(&hospital, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &hospital, nil
}

// FindAll returns all hospitals ordered by name
func (r *GormHospitalRepository) FindAll(ctx context.Context) ([]facility.Hospital, error) {
	var hospitals []facility.Hospital
	if err := r.db.WithContext(ctx).Order("name").Find(&hospitals).Error; err != nil {
		return nil, err
	}
	return hospitals, nil
}

// Delete removes a hospital by ID
func (r *GormHospitalRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&facility.Hospital{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// GormServedUnitRepository implements facility.ServedUnitRepository using GORM
type GormServedUnitRepository struct {
	db *gorm.DB
}

// NewGormServedUnitRepository creates a new GormServedUnitRepository
func NewGormServedUnitRepository(db *gorm.DB) *GormServedUnitRepository {
	return &GormServedUnitRepository{db: db}
}

// Save persists a served unit
func (r *GormServedUnitRepository) Save(ctx context.Context, unit *facility.ServedUnit) error {
	return r.db.WithContext(ctx).Save(unit).Error
}

// FindByID finds a served unit by its ID
func (r *GormServedUnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*facility.ServedUnit, error) {
	var unit facility.ServedUnit
	if err := r.db.WithContext(ctx).First(&unit, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &unit, nil
}

// FindByHospital returns all units belonging to a hospital
func (r *GormServedUnitRepository) FindByHospital(ctx context.Context, hospitalID uuid.UUID) ([]facility.ServedUnit, error) {
	var units []facility.ServedUnit
	if err := r.db.WithContext(ctx).
		Where("hospital_id = ?", hospitalID).
		Order("name").
		Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

// FindAll returns all served units ordered by name
func (r *GormServedUnitRepository) FindAll(ctx context.Context) ([]facility.ServedUnit, error) {
	var units []facility.ServedUnit
	if err := r.db.WithContext(ctx).Order("name").Find(&units).Error; err != nil {
		return nil, err
	}
	return units, nil
}

// Delete removes a served unit by ID
func (r *GormServedUnitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&facility.ServedUnit{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var (
	_ facility.HospitalRepository   = (*GormHospitalRepository)(nil)
	_ facility.ServedUnitRepository = (*GormServedUnitRepository)(nil)
)
