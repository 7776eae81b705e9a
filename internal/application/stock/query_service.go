package stock

import (
	"context"
	"errors"

	"github.com/estoquesaude/backend/internal/domain/identity"
	"github.com/estoquesaude/backend/internal/domain/shared"
	"github.com/estoquesaude/backend/internal/domain/stock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// QueryService serves the stock views: configurations, levels and movement
// history, always filtered through the actor's access policy. Level writes
// go through the transaction scope so they never race a movement.
type QueryService struct {
	scope     TransactionScope
	configs   stock.ConfigRepository
	movements stock.MovementRepository
	logger    *zap.Logger
}

// NewQueryService creates a QueryService
func NewQueryService(
	scope TransactionScope,
	configs stock.ConfigRepository,
	movements stock.MovementRepository,
	logger *zap.Logger,
) *QueryService {
	return &QueryService{
		scope:     scope,
		configs:   configs,
		movements: movements,
		logger:    logger.Named("stock-query"),
	}
}

// ListConfigs returns the stock configurations the actor may see
func (s *QueryService) ListConfigs(ctx context.Context, policy identity.AccessPolicy, itemID *uuid.UUID) ([]stock.Config, error) {
	var configs []stock.Config
	var err error
	if itemID != nil {
		configs, err = s.configs.FindByItem(ctx, *itemID)
	} else {
		configs, err = s.configs.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	return policy.VisibleConfigs(configs), nil
}

// ListMovements returns the ledger entries the actor may see
func (s *QueryService) ListMovements(ctx context.Context, policy identity.AccessPolicy, itemID *uuid.UUID) ([]stock.Movement, error) {
	var movements []stock.Movement
	var err error
	if itemID != nil {
		movements, err = s.movements.FindByItem(ctx, *itemID)
	} else {
		movements, err = s.movements.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	return policy.VisibleMovements(movements), nil
}

// LevelsInput sets the strategic parameters of one stock location
type LevelsInput struct {
	ItemID         uuid.UUID
	UnitID         *uuid.UUID
	HospitalID     *uuid.UUID
	StrategicLevel decimal.Decimal
	MinQuantity    decimal.Decimal
}

// UpsertLevels creates or updates the strategic level and minimum quantity of
// a non-central stock location. The counter is never touched here: the config
// is read under a row lock inside the transaction so a movement committed in
// the meantime keeps its counter update.
func (s *QueryService) UpsertLevels(ctx context.Context, policy identity.AccessPolicy, input LevelsInput) (*stock.Config, error) {
	if input.UnitID == nil && input.HospitalID == nil {
		return nil, shared.NewDomainError("INVALID_INPUT",
			"Strategic levels apply to units and general buckets; central minimums live on the item")
	}

	var cfg *stock.Config
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var (
			kind       stock.LocationKind
			locationID uuid.UUID
			hospitalID *uuid.UUID
		)
		if input.UnitID != nil {
			unit, err := repos.Units().FindByID(ctx, *input.UnitID)
			if err != nil {
				return err
			}
			owner := unit.HospitalID
			kind, locationID, hospitalID = stock.LocationUnit, unit.ID, &owner
		} else {
			hospital, err := repos.Hospitals().FindByID(ctx, *input.HospitalID)
			if err != nil {
				return err
			}
			if !hospital.IsPrimaryCare() {
				return shared.NewDomainError("INVALID_INPUT",
					"Only primary-care facilities have a general stock bucket")
			}
			kind, locationID, hospitalID = stock.LocationUBSGeneral, hospital.ID, &hospital.ID
		}

		if !policy.CanRecordMovementAt(kind, input.UnitID, hospitalID) {
			return shared.ErrForbidden
		}

		key, err := stock.ConfigKey(input.ItemID, kind, locationID)
		if err != nil {
			return err
		}

		cfg, err = repos.Configs().FindByKeyForUpdate(ctx, key)
		if errors.Is(err, shared.ErrNotFound) {
			if kind == stock.LocationUnit {
				cfg, err = stock.NewUnitConfig(input.ItemID, locationID, *hospitalID)
			} else {
				cfg, err = stock.NewUBSGeneralConfig(input.ItemID, locationID)
			}
		}
		if err != nil {
			return err
		}

		if err := cfg.SetLevels(input.StrategicLevel, input.MinQuantity); err != nil {
			return err
		}
		return repos.Configs().Save(ctx, cfg)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("stock levels updated", zap.String("config_key", cfg.Key))
	return cfg, nil
}
