package router

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/estoquesaude/backend/internal/application/identityapp"
	"github.com/estoquesaude/backend/internal/domain/identity"
	"github.com/estoquesaude/backend/internal/domain/shared"
	"github.com/estoquesaude/backend/internal/infrastructure/auth"
	"github.com/estoquesaude/backend/internal/infrastructure/config"
	"github.com/estoquesaude/backend/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	testSecret = "0123456789abcdef0123456789abcdef"
	testIssuer = "estoque-saude"
)

type memProfileRepo struct {
	profiles map[string]identity.UserProfile
}

func (r *memProfileRepo) Save(_ context.Context, p *identity.UserProfile) error {
	r.profiles[p.ID] = *p
	return nil
}

func (r *memProfileRepo) FindByID(_ context.Context, id string) (*identity.UserProfile, error) {
	if p, ok := r.profiles[id]; ok {
		copied := p
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}

func (r *memProfileRepo) FindAll(_ context.Context) ([]identity.UserProfile, error) {
	return nil, nil
}

func signToken(t *testing.T, subject string) string {
	t.Helper()
	claims := auth.Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    testIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		Name:  "Ana Souza",
		Email: "ana@prefeitura.gov.br",
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func newTestRouter(repo *memProfileRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		App:  config.AppConfig{Name: "estoque", Env: "test", Port: "8080"},
		JWT:  config.JWTConfig{Secret: testSecret, Issuer: testIssuer},
		HTTP: config.HTTPConfig{MaxBodySize: 1 << 20},
	}
	verifier := auth.NewTokenVerifier(cfg.JWT)
	profiles := identityapp.NewProfileService(repo, zap.NewNop())

	return New(cfg, zap.NewNop(), verifier, profiles, Handlers{
		System:   handler.NewSystemHandler(nil, cfg.App.Name, cfg.App.Env),
		Items:    handler.NewItemHandler(nil),
		Facility: handler.NewFacilityHandler(nil),
		Patients: handler.NewPatientHandler(nil),
		Stock:    handler.NewStockHandler(nil, nil),
		Imports:  handler.NewImportHandler(nil, nil, nil),
		Advisory: handler.NewAdvisoryHandler(nil),
		Profiles: handler.NewProfileHandler(nil),
	})
}

func doJSON(engine *gin.Engine, method, path, token string) int {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader("{}"))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	engine.ServeHTTP(rec, req)
	return rec.Code
}

func TestRouter_PatientWritesRequireOperatorRole(t *testing.T) {
	repo := &memProfileRepo{profiles: map[string]identity.UserProfile{}}
	engine := newTestRouter(repo)

	// First request provisions the profile with the read-only user role
	reader := signToken(t, "reader-1")

	t.Run("read-only user cannot write the patient registry", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, doJSON(engine, http.MethodPost, "/api/v1/patients", reader))
		assert.Equal(t, http.StatusForbidden, doJSON(engine, http.MethodPut, "/api/v1/patients/some-id", reader))
		assert.Equal(t, http.StatusForbidden, doJSON(engine, http.MethodPost, "/api/v1/imports/patients", reader))
	})

	t.Run("facility operator passes the role gate", func(t *testing.T) {
		profile, err := identity.NewUserProfile("op-1", "Op", "op@prefeitura.gov.br", identity.RoleUBSOperator)
		require.NoError(t, err)
		repo.profiles[profile.ID] = *profile

		// The empty body fails validation, proving the request got past
		// the gate instead of being rejected by role
		assert.Equal(t, http.StatusBadRequest, doJSON(engine, http.MethodPost, "/api/v1/patients", signToken(t, "op-1")))
	})
}
