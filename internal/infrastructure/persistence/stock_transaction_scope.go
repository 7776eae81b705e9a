package persistence

import (
	"context"
	"strings"

	appstock "github.com/estoquesaude/backend/internal/application/stock"
	"github.com/estoquesaude/backend/internal/domain/catalog"
	"github.com/estoquesaude/backend/internal/domain/facility"
	"github.com/estoquesaude/backend/internal/domain/patient"
	"github.com/estoquesaude/backend/internal/domain/shared"
	"github.com/estoquesaude/backend/internal/domain/stock"
	"gorm.io/gorm"
)

// GormTransactionScope implements appstock.TransactionScope using GORM
// transactions
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs fn inside a database transaction. Store-level conflicts
// (deadlock, serialization failure) are mapped to the domain conflict error
// so callers can retry.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos appstock.TransactionalRepositories) error) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormTransactionalRepositories{tx: tx})
	})
	if err != nil && isConflict(err) {
		return shared.ErrConcurrencyConflict
	}
	return err
}

// isConflict detects retryable transaction failures.
// SQLSTATE 40001 is serialization_failure, 40P01 is deadlock_detected.
func isConflict(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "40001") || strings.Contains(msg, "40P01") ||
		strings.Contains(msg, "deadlock")
}

// gormTransactionalRepositories provides repositories scoped to one
// transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

func (r *gormTransactionalRepositories) Items() catalog.ItemRepository {
	return NewGormItemRepository(r.tx)
}

func (r *gormTransactionalRepositories) Hospitals() facility.HospitalRepository {
	return NewGormHospitalRepository(r.tx)
}

func (r *gormTransactionalRepositories) Units() facility.ServedUnitRepository {
	return NewGormServedUnitRepository(r.tx)
}

func (r *gormTransactionalRepositories) Patients() patient.Repository {
	return NewGormPatientRepository(r.tx)
}

func (r *gormTransactionalRepositories) Configs() stock.ConfigRepository {
	return NewGormStockConfigRepository(r.tx)
}

func (r *gormTransactionalRepositories) Movements() stock.MovementRepository {
	return NewGormStockMovementRepository(r.tx)
}

var (
	_ appstock.TransactionScope          = (*GormTransactionScope)(nil)
	_ appstock.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
)
