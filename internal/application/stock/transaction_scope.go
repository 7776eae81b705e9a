package stock

import (
	"context"

	"github.com/estoquesaude/backend/internal/domain/catalog"
	"github.com/estoquesaude/backend/internal/domain/facility"
	"github.com/estoquesaude/backend/internal/domain/patient"
	"github.com/estoquesaude/backend/internal/domain/stock"
)

// TransactionalRepositories exposes the repositories that participate in a
// movement transaction, all scoped to the same database transaction.
type TransactionalRepositories interface {
	Items() catalog.ItemRepository
	Hospitals() facility.HospitalRepository
	Units() facility.ServedUnitRepository
	Patients() patient.Repository
	Configs() stock.ConfigRepository
	Movements() stock.MovementRepository
}

// TransactionScope executes a function atomically: either every write inside
// fn persists, or none does. The ledger entry and the counter update must
// never be observed apart.
type TransactionScope interface {
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}
