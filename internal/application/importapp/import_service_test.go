package importapp

import (
	"context"
	"sync"
	"testing"

	appstock "github.com/estoquesaude/backend/internal/application/stock"
	"github.com/estoquesaude/backend/internal/domain/catalog"
	"github.com/estoquesaude/backend/internal/domain/facility"
	"github.com/estoquesaude/backend/internal/domain/identity"
	"github.com/estoquesaude/backend/internal/domain/patient"
	"github.com/estoquesaude/backend/internal/domain/shared"
	"github.com/estoquesaude/backend/internal/domain/stock"
	"github.com/estoquesaude/backend/internal/infrastructure/importcsv"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memScope is a minimal in-memory TransactionScope for import tests. Failed
// executions roll back by restoring snapshots of the touched collections.
type memScope struct {
	mu        sync.Mutex
	hospitals []*facility.Hospital
	patients  []*patient.Patient
	items     map[uuid.UUID]*catalog.Item
	configs   map[string]*stock.Config
	movements []*stock.Movement

	failCommit bool
}

func newMemScope() *memScope {
	return &memScope{
		items:   make(map[uuid.UUID]*catalog.Item),
		configs: make(map[string]*stock.Config),
	}
}

func (s *memScope) Execute(_ context.Context, fn func(repos appstock.TransactionalRepositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failCommit {
		return shared.ErrConcurrencyConflict
	}

	hospitalsBefore := len(s.hospitals)
	patientsBefore := len(s.patients)
	movementsBefore := len(s.movements)

	if err := fn(&memRepos{scope: s}); err != nil {
		s.hospitals = s.hospitals[:hospitalsBefore]
		s.patients = s.patients[:patientsBefore]
		s.movements = s.movements[:movementsBefore]
		return err
	}
	return nil
}

type memRepos struct{ scope *memScope }

func (r *memRepos) Items() catalog.ItemRepository          { return &memItemRepo{r.scope} }
func (r *memRepos) Hospitals() facility.HospitalRepository { return &memHospitalRepo{r.scope} }
func (r *memRepos) Units() facility.ServedUnitRepository   { return nil }
func (r *memRepos) Patients() patient.Repository           { return &memPatientRepo{r.scope} }
func (r *memRepos) Configs() stock.ConfigRepository        { return &memConfigRepo{r.scope} }
func (r *memRepos) Movements() stock.MovementRepository    { return &memMovementRepo{r.scope} }

type memHospitalRepo struct{ scope *memScope }

func (r *memHospitalRepo) Save(_ context.Context, h *facility.Hospital) error {
	r.scope.hospitals = append(r.scope.hospitals, h)
	return nil
}
func (r *memHospitalRepo) FindByID(_ context.Context, _ uuid.UUID) (*facility.Hospital, error) {
	return nil, shared.ErrNotFound
}
func (r *memHospitalRepo) FindAll(_ context.Context) ([]facility.Hospital, error) { return nil, nil }
func (r *memHospitalRepo) Delete(_ context.Context, _ uuid.UUID) error            { return nil }

type memPatientRepo struct{ scope *memScope }

func (r *memPatientRepo) Save(_ context.Context, p *patient.Patient) error {
	r.scope.patients = append(r.scope.patients, p)
	return nil
}
func (r *memPatientRepo) SaveAll(ctx context.Context, patients []*patient.Patient) error {
	for _, p := range patients {
		if err := r.Save(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
func (r *memPatientRepo) FindByID(_ context.Context, _ uuid.UUID) (*patient.Patient, error) {
	return nil, shared.ErrNotFound
}
func (r *memPatientRepo) FindByHospital(_ context.Context, _ uuid.UUID) ([]patient.Patient, error) {
	return nil, nil
}
func (r *memPatientRepo) FindAll(_ context.Context) ([]patient.Patient, error) { return nil, nil }
func (r *memPatientRepo) Delete(_ context.Context, _ uuid.UUID) error          { return nil }

type memItemRepo struct{ scope *memScope }

func (r *memItemRepo) Save(_ context.Context, item *catalog.Item) error {
	r.scope.items[item.ID] = item
	return nil
}
func (r *memItemRepo) UpdateDetails(_ context.Context, item *catalog.Item) error {
	stored, ok := r.scope.items[item.ID]
	if !ok {
		return shared.ErrNotFound
	}
	counter := stored.CurrentQuantityCentral
	copied := *item
	copied.CurrentQuantityCentral = counter
	r.scope.items[item.ID] = &copied
	return nil
}
func (r *memItemRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Item, error) {
	if item, ok := r.scope.items[id]; ok {
		copied := *item
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}
func (r *memItemRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	return r.FindByID(ctx, id)
}
func (r *memItemRepo) FindByCode(_ context.Context, code string) (*catalog.Item, error) {
	for _, item := range r.scope.items {
		if item.Code == code {
			copied := *item
			return &copied, nil
		}
	}
	return nil, shared.ErrNotFound
}
func (r *memItemRepo) FindAll(_ context.Context) ([]catalog.Item, error)          { return nil, nil }
func (r *memItemRepo) FindBelowMinimum(_ context.Context) ([]catalog.Item, error) { return nil, nil }
func (r *memItemRepo) Delete(_ context.Context, _ uuid.UUID) error                { return nil }

type memConfigRepo struct{ scope *memScope }

func (r *memConfigRepo) Save(_ context.Context, cfg *stock.Config) error {
	copied := *cfg
	r.scope.configs[cfg.Key] = &copied
	return nil
}
func (r *memConfigRepo) FindByKey(_ context.Context, key string) (*stock.Config, error) {
	if cfg, ok := r.scope.configs[key]; ok {
		copied := *cfg
		return &copied, nil
	}
	return nil, shared.ErrNotFound
}
func (r *memConfigRepo) FindByKeyForUpdate(ctx context.Context, key string) (*stock.Config, error) {
	return r.FindByKey(ctx, key)
}
func (r *memConfigRepo) FindByItem(_ context.Context, _ uuid.UUID) ([]stock.Config, error) {
	return nil, nil
}
func (r *memConfigRepo) FindAll(_ context.Context) ([]stock.Config, error) { return nil, nil }

type memMovementRepo struct{ scope *memScope }

func (r *memMovementRepo) Append(_ context.Context, m *stock.Movement) error {
	r.scope.movements = append(r.scope.movements, m)
	return nil
}
func (r *memMovementRepo) FindByID(_ context.Context, _ uuid.UUID) (*stock.Movement, error) {
	return nil, shared.ErrNotFound
}
func (r *memMovementRepo) FindByItem(_ context.Context, _ uuid.UUID) ([]stock.Movement, error) {
	return nil, nil
}
func (r *memMovementRepo) FindAll(_ context.Context) ([]stock.Movement, error) { return nil, nil }

func withBOM(s string) []byte {
	return append([]byte{0xEF, 0xBB, 0xBF}, []byte(s)...)
}

func TestHospitalImportService(t *testing.T) {
	ctx := context.Background()

	t.Run("imports valid rows and infers facility type", func(t *testing.T) {
		scope := newMemScope()
		service := NewHospitalImportService(scope, zap.NewNop())

		data := withBOM("Nome,Endereço\nHospital Regional,Rua A\nUBS Vila Nova,Rua B\n")
		result, err := service.Import(ctx, data)

		require.NoError(t, err)
		assert.Equal(t, 2, result.TotalRows)
		assert.Equal(t, 2, result.ImportedRows)
		assert.Equal(t, 0, result.ErrorRows)

		require.Len(t, scope.hospitals, 2)
		assert.Equal(t, facility.FacilityTypeHospital, scope.hospitals[0].Type)
		assert.Equal(t, facility.FacilityTypePrimaryCare, scope.hospitals[1].Type)
	})

	t.Run("collects row errors without aborting siblings", func(t *testing.T) {
		scope := newMemScope()
		service := NewHospitalImportService(scope, zap.NewNop())

		data := withBOM("Nome,Endereço\nHospital A,Rua A\n,Rua B\nHospital C,Rua C\n")
		result, err := service.Import(ctx, data)

		require.NoError(t, err)
		assert.Equal(t, 3, result.TotalRows)
		assert.Equal(t, 2, result.ImportedRows)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, 3, result.Errors[0].Row)
		assert.Equal(t, "Nome", result.Errors[0].Column)
	})

	t.Run("commit failure fails the whole batch", func(t *testing.T) {
		scope := newMemScope()
		scope.failCommit = true
		service := NewHospitalImportService(scope, zap.NewNop())

		data := withBOM("Nome,Endereço\nHospital A,Rua A\n")
		_, err := service.Import(ctx, data)

		require.Error(t, err)
		assert.Empty(t, scope.hospitals)
	})

	t.Run("rejects a file without the expected columns", func(t *testing.T) {
		service := NewHospitalImportService(newMemScope(), zap.NewNop())

		_, err := service.Import(ctx, withBOM("Name,Address\nHospital A,Street\n"))
		require.ErrorIs(t, err, importcsv.ErrMissingHeader)
	})
}

func TestPatientImportService(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects a 14-digit card and keeps the siblings", func(t *testing.T) {
		scope := newMemScope()
		service := NewPatientImportService(scope, zap.NewNop())

		data := withBOM("Nome Completo,Número do Cartão SUS,Data de Nascimento\n" +
			"Maria Silva,123456789012345,1980-05-20\n" +
			"João Souza,12345678901234,\n" +
			"Ana Costa,987654321098765,1992-11-03\n")

		result, err := service.Import(ctx, data)

		require.NoError(t, err)
		assert.Equal(t, 3, result.TotalRows)
		assert.Equal(t, 2, result.ImportedRows)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, 3, result.Errors[0].Row)
		assert.Contains(t, result.Errors[0].Message, "15 dígitos")

		require.Len(t, scope.patients, 2)
		assert.Equal(t, "Maria Silva", scope.patients[0].Name)
		require.NotNil(t, scope.patients[0].BirthDate)
		assert.Equal(t, "1980-05-20", scope.patients[0].BirthDate.Format("2006-01-02"))
	})

	t.Run("does not deduplicate repeated rows", func(t *testing.T) {
		scope := newMemScope()
		service := NewPatientImportService(scope, zap.NewNop())

		data := withBOM("Nome Completo,Número do Cartão SUS,Data de Nascimento\n" +
			"Maria Silva,123456789012345,\n" +
			"Maria Silva,123456789012345,\n")

		result, err := service.Import(ctx, data)

		require.NoError(t, err)
		assert.Equal(t, 2, result.ImportedRows)
		assert.Len(t, scope.patients, 2)
	})

	t.Run("bad birth date is a row error", func(t *testing.T) {
		scope := newMemScope()
		service := NewPatientImportService(scope, zap.NewNop())

		data := withBOM("Nome Completo,Número do Cartão SUS,Data de Nascimento\n" +
			"Maria Silva,123456789012345,20/05/1980\n")

		result, err := service.Import(ctx, data)

		require.NoError(t, err)
		assert.Equal(t, 0, result.ImportedRows)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, "Data de Nascimento", result.Errors[0].Column)
	})
}

func TestMovementImportService(t *testing.T) {
	ctx := context.Background()

	scope := newMemScope()
	item, err := catalog.NewItem("Dipirona 500mg", "DIP500", "Medicamento", "comprimido")
	require.NoError(t, err)
	scope.items[item.ID] = item

	movements := appstock.NewMovementService(scope, zap.NewNop())
	service := NewMovementImportService(movements, zap.NewNop())

	profile, err := identity.NewUserProfile("subject-admin", "Admin", "admin@example.com", identity.RoleAdmin)
	require.NoError(t, err)
	actor := appstock.Actor{SubjectID: profile.ID, Policy: identity.NewAccessPolicy(profile)}

	t.Run("each row is its own transaction", func(t *testing.T) {
		data := withBOM("Código do Item,Tipo,Quantidade,Data,Observações\n" +
			"DIP500,entrada,100,2026-03-01,compra\n" +
			"NOPE,entrada,10,2026-03-01,\n" +
			"DIP500,saída,30,2026-03-02,\n" +
			"DIP500,saída,500,2026-03-03,\n")

		result, err := service.Import(ctx, actor, data, nil, nil)

		require.NoError(t, err)
		assert.Equal(t, 4, result.TotalRows)
		assert.Equal(t, 2, result.ImportedRows)
		assert.Equal(t, 2, result.ErrorRows)

		// Unknown item on line 3, insufficient stock on line 5
		require.Len(t, result.Errors, 2)
		assert.Equal(t, 3, result.Errors[0].Row)
		assert.Equal(t, 5, result.Errors[1].Row)

		stored := scope.items[item.ID]
		assert.Equal(t, "70", stored.CurrentQuantityCentral.String())
		assert.Len(t, scope.movements, 2)
	})

	t.Run("unknown type is a row error", func(t *testing.T) {
		data := withBOM("Código do Item,Tipo,Quantidade,Data\nDIP500,emprestimo,1,2026-03-01\n")

		result, err := service.Import(ctx, actor, data, nil, nil)

		require.NoError(t, err)
		assert.Equal(t, 0, result.ImportedRows)
		require.Len(t, result.Errors, 1)
		assert.Equal(t, "Tipo", result.Errors[0].Column)
	})
}
