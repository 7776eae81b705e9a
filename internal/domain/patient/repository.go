package patient

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for patients
type Repository interface {
	Save(ctx context.Context, patient *Patient) error
	SaveAll(ctx context.Context, patients []*Patient) error
	FindByID(ctx context.Context, id uuid.UUID) (*Patient, error)
	FindByHospital(ctx context.Context, hospitalID uuid.UUID) ([]Patient, error)
	FindAll(ctx context.Context) ([]Patient, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
