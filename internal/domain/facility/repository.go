package facility

import (
	"context"

	"github.com/google/uuid"
)

// HospitalRepository defines persistence operations for hospitals
type HospitalRepository interface {
	Save(ctx context.Context, hospital *Hospital) error
	FindByID(ctx context.Context, id uuid.UUID) (*Hospital, error)
	FindAll(ctx context.Context) ([]Hospital, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ServedUnitRepository defines persistence operations for served units
type ServedUnitRepository interface {
	Save(ctx context.Context, unit *ServedUnit) error
	FindByID(ctx context.Context, id uuid.UUID) (*ServedUnit, error)
	FindByHospital(ctx context.Context, hospitalID uuid.UUID) ([]ServedUnit, error)
	FindAll(ctx context.Context) ([]ServedUnit, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
