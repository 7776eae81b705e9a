package identityapp

import (
	"context"
	"testing"

	"github.com/estoquesaude/backend/internal/domain/identity"
	"github.com/estoquesaude/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memProfileRepo struct {
	profiles map[string]identity.UserProfile
}

func newMemProfileRepo() *memProfileRepo {
	return &memProfileRepo{profiles: make(map[string]identity.UserProfile)}
}

func (r *memProfileRepo) Save(_ context.Context, profile *identity.UserProfile) error {
	r.profiles[profile.ID] = *profile
	return nil
}

func (r *memProfileRepo) FindByID(_ context.Context, subjectID string) (*identity.UserProfile, error) {
	if p, ok := r.profiles[subjectID]; ok {
		copied := p
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memProfileRepo) FindAll(_ context.Context) ([]identity.UserProfile, error) {
	out := make([]identity.UserProfile, 0, len(r.profiles))
	for _, p := range r.profiles {
		out = append(out, p)
	}
	return out, nil
}

func TestProfileService_EnsureProfile(t *testing.T) {
	repo := newMemProfileRepo()
	svc := NewProfileService(repo, zap.NewNop())
	ctx := context.Background()

	created, err := svc.EnsureProfile(ctx, "subject-1", "Ana Souza", "ana@prefeitura.gov.br")
	require.NoError(t, err)
	assert.Equal(t, identity.RoleUser, created.Role)
	assert.True(t, created.IsActive())

	// Second login resolves the same profile without resetting anything
	created.Role = identity.RoleCentralOperator
	require.NoError(t, repo.Save(ctx, created))

	again, err := svc.EnsureProfile(ctx, "subject-1", "Ana Souza", "ana@prefeitura.gov.br")
	require.NoError(t, err)
	assert.Equal(t, identity.RoleCentralOperator, again.Role)
}

func TestProfileService_SetRole(t *testing.T) {
	repo := newMemProfileRepo()
	svc := NewProfileService(repo, zap.NewNop())
	ctx := context.Background()

	_, err := svc.EnsureProfile(ctx, "subject-2", "João Lima", "joao@prefeitura.gov.br")
	require.NoError(t, err)

	hospitalID := uuid.New()
	updated, err := svc.SetRole(ctx, "subject-2", identity.RoleHospitalOperator, &hospitalID, nil)
	require.NoError(t, err)
	assert.Equal(t, identity.RoleHospitalOperator, updated.Role)
	require.NotNil(t, updated.HospitalID)
	assert.Equal(t, hospitalID, *updated.HospitalID)

	// Facility-scoped roles need an association
	_, err = svc.SetRole(ctx, "subject-2", identity.RoleUBSOperator, nil, nil)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_INPUT", domainErr.Code)
}

func TestProfileService_Deactivate(t *testing.T) {
	repo := newMemProfileRepo()
	svc := NewProfileService(repo, zap.NewNop())
	ctx := context.Background()

	_, err := svc.EnsureProfile(ctx, "subject-3", "Mara Dias", "mara@prefeitura.gov.br")
	require.NoError(t, err)

	deactivated, err := svc.Deactivate(ctx, "subject-3")
	require.NoError(t, err)
	assert.False(t, deactivated.IsActive())

	_, err = svc.Deactivate(ctx, "unknown-subject")
	require.ErrorIs(t, err, shared.ErrNotFound)
}
