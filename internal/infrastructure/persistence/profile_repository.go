package persistence

import (
	"context"
	"errors"

	"github.com/estoquesaude/backend/internal/domain/identity"
	"github.com/estoquesaude/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormProfileRepository implements identity.ProfileRepository using GORM
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a new GormProfileRepository
func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// Save persists a user profile
func (r *GormProfileRepository) Save(ctx context.Context, profile *identity.UserProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

// FindByID finds a profile by the identity-provider subject ID
func (r *GormProfileRepository) FindByID(ctx context.Context, subjectID string) (*identity.UserProfile, error) {
	var profile identity.UserProfile
	if err := r.db.WithContext(ctx).First(&profile, "id = ?", subjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

// FindAll returns all profiles ordered by name
func (r *GormProfileRepository) FindAll(ctx context.Context) ([]identity.UserProfile, error) {
	var profiles []identity.UserProfile
	if err := r.db.WithContext(ctx).Order("name").Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

var _ identity.ProfileRepository = (*GormProfileRepository)(nil)
