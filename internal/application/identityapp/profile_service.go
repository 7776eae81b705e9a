package identityapp

import (
	"context"
	"errors"

	"github.com/estoquesaude/backend/internal/domain/identity"
	"github.com/estoquesaude/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProfileService manages the application-side profiles of identity-provider
// subjects. Authentication itself happens at the provider; this service only
// tracks roles, associations and activation state.
type ProfileService struct {
	repo   identity.ProfileRepository
	logger *zap.Logger
}

// NewProfileService creates a ProfileService
func NewProfileService(repo identity.ProfileRepository, logger *zap.Logger) *ProfileService {
	return &ProfileService{repo: repo, logger: logger.Named("identity")}
}

// EnsureProfile returns the profile for a verified subject, creating it with
// the default role on first login
func (s *ProfileService) EnsureProfile(ctx context.Context, subjectID, name, email string) (*identity.UserProfile, error) {
	profile, err := s.repo.FindByID(ctx, subjectID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	profile, err = identity.NewUserProfile(subjectID, name, email, identity.RoleUser)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Save(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info("profile created on first login",
		zap.String("subject_id", subjectID),
		zap.String("role", string(profile.Role)),
	)
	return profile, nil
}

// Get returns one profile
func (s *ProfileService) Get(ctx context.Context, subjectID string) (*identity.UserProfile, error) {
	return s.repo.FindByID(ctx, subjectID)
}

// List returns all profiles
func (s *ProfileService) List(ctx context.Context) ([]identity.UserProfile, error) {
	return s.repo.FindAll(ctx)
}

// SetRole changes the role of a profile and its facility association.
// Facility-scoped roles require the matching association.
func (s *ProfileService) SetRole(ctx context.Context, subjectID string, role identity.Role, hospitalID, unitID *uuid.UUID) (*identity.UserProfile, error) {
	if !role.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Unknown role")
	}
	switch role {
	case identity.RoleHospitalOperator, identity.RoleUBSOperator:
		if hospitalID == nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Facility-scoped roles require a hospital association")
		}
	}

	profile, err := s.repo.FindByID(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	profile.Role = role
	profile.Associate(hospitalID, unitID)
	if err := s.repo.Save(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info("profile role updated",
		zap.String("subject_id", subjectID),
		zap.String("role", string(role)),
	)
	return profile, nil
}

// Deactivate denies a subject further access without deleting its history
func (s *ProfileService) Deactivate(ctx context.Context, subjectID string) (*identity.UserProfile, error) {
	profile, err := s.repo.FindByID(ctx, subjectID)
	if err != nil {
		return nil, err
	}
	profile.Deactivate()
	if err := s.repo.Save(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info("profile deactivated", zap.String("subject_id", subjectID))
	return profile, nil
}
