package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/estoquesaude/backend/internal/domain/catalog"
	"github.com/estoquesaude/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// memItemRepo keeps items in memory. UpdateDetails mirrors the column-
// selective update: every catalog field changes, the counter does not.
// afterFind, when set, runs once after a read, standing in for a movement
// that commits between the service's read and its write.
type memItemRepo struct {
	items     map[uuid.UUID]catalog.Item
	afterFind func()
}

func newMemItemRepo() *memItemRepo {
	return &memItemRepo{items: make(map[uuid.UUID]catalog.Item)}
}

func (r *memItemRepo) Save(_ context.Context, item *catalog.Item) error {
	r.items[item.ID] = *item
	return nil
}

func (r *memItemRepo) UpdateDetails(_ context.Context, item *catalog.Item) error {
	stored, ok := r.items[item.ID]
	if !ok {
		return shared.ErrNotFound
	}
	counter := stored.CurrentQuantityCentral
	stored = *item
	stored.CurrentQuantityCentral = counter
	r.items[item.ID] = stored
	return nil
}

func (r *memItemRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Item, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	if r.afterFind != nil {
		hook := r.afterFind
		r.afterFind = nil
		hook()
	}
	return &item, nil
}

func (r *memItemRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*catalog.Item, error) {
	return r.FindByID(ctx, id)
}

func (r *memItemRepo) FindByCode(_ context.Context, code string) (*catalog.Item, error) {
	for _, item := range r.items {
		if item.Code == code {
			return &item, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *memItemRepo) FindAll(_ context.Context) ([]catalog.Item, error) { return nil, nil }

func (r *memItemRepo) FindBelowMinimum(_ context.Context) ([]catalog.Item, error) { return nil, nil }

func (r *memItemRepo) Delete(_ context.Context, id uuid.UUID) error {
	delete(r.items, id)
	return nil
}

func seedItem(t *testing.T, repo *memItemRepo, centralQty int64) *catalog.Item {
	t.Helper()
	item, err := catalog.NewItem("Dipirona 500mg", "DIP500", "Medicamento", "comprimido")
	require.NoError(t, err)
	require.NoError(t, item.ApplyCentralDelta(decimal.NewFromInt(centralQty)))
	repo.items[item.ID] = *item
	return item
}

func TestItemService_CreateCarriesSupplyDetails(t *testing.T) {
	repo := newMemItemRepo()
	svc := NewItemService(repo, zap.NewNop())
	expiration := time.Date(2027, 1, 31, 0, 0, 0, 0, time.UTC)

	item, err := svc.Create(context.Background(), ItemInput{
		Name:           "Soro Fisiológico 0,9%",
		Code:           "soro09",
		Category:       "Insumo",
		UnitOfMeasure:  "frasco",
		Supplier:       "Distribuidora Saúde Ltda",
		ExpirationDate: &expiration,
	})

	require.NoError(t, err)
	assert.Equal(t, "SORO09", item.Code)
	assert.Equal(t, "Distribuidora Saúde Ltda", item.Supplier)
	require.NotNil(t, item.ExpirationDate)
	assert.True(t, expiration.Equal(*item.ExpirationDate))

	stored := repo.items[item.ID]
	assert.Equal(t, "Distribuidora Saúde Ltda", stored.Supplier)
	assert.True(t, stored.CurrentQuantityCentral.IsZero())
}

func TestItemService_UpdateKeepsCommittedCounter(t *testing.T) {
	repo := newMemItemRepo()
	svc := NewItemService(repo, zap.NewNop())
	item := seedItem(t, repo, 15)

	// A movement commits between the service's read and its write
	repo.afterFind = func() {
		stored := repo.items[item.ID]
		stored.CurrentQuantityCentral = decimal.NewFromInt(5)
		repo.items[item.ID] = stored
	}

	updated, err := svc.Update(context.Background(), item.ID, ItemInput{
		Name:          "Dipirona 1g",
		Category:      "Medicamento",
		UnitOfMeasure: "comprimido",
	})

	require.NoError(t, err)
	assert.Equal(t, "Dipirona 1g", updated.Name)

	stored := repo.items[item.ID]
	assert.Equal(t, "Dipirona 1g", stored.Name)
	assert.Equal(t, "5", stored.CurrentQuantityCentral.String())
}

func TestItemService_SetMinQuantityKeepsCommittedCounter(t *testing.T) {
	repo := newMemItemRepo()
	svc := NewItemService(repo, zap.NewNop())
	item := seedItem(t, repo, 15)

	repo.afterFind = func() {
		stored := repo.items[item.ID]
		stored.CurrentQuantityCentral = decimal.NewFromInt(5)
		repo.items[item.ID] = stored
	}

	_, err := svc.SetMinQuantity(context.Background(), item.ID, decimal.NewFromInt(8))

	require.NoError(t, err)
	stored := repo.items[item.ID]
	assert.Equal(t, "8", stored.MinQuantityCentral.String())
	assert.Equal(t, "5", stored.CurrentQuantityCentral.String())
}
