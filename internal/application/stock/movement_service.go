package stock

import (
	"context"
	"errors"

	"github.com/estoquesaude/backend/internal/domain/catalog"
	"github.com/estoquesaude/backend/internal/domain/shared"
	"github.com/estoquesaude/backend/internal/domain/stock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// maxRetries bounds the automatic retry of movement transactions that fail on
// a store-level conflict. Validation and authorization failures never retry.
const maxRetries = 3

// MovementService is the stock-movement transaction processor. Every movement
// goes through RecordMovement: validate, resolve references, authorize, derive
// the counter identity, then atomically append the ledger entry and adjust the
// counter.
type MovementService struct {
	scope  TransactionScope
	logger *zap.Logger
}

// NewMovementService creates a MovementService
func NewMovementService(scope TransactionScope, logger *zap.Logger) *MovementService {
	return &MovementService{
		scope:  scope,
		logger: logger.Named("movement"),
	}
}

// RecordMovement processes one proposed movement. On success the ledger entry
// and the counter update are committed together; on any failure neither
// persists.
func (s *MovementService) RecordMovement(ctx context.Context, actor Actor, input MovementInput) (*MovementReceipt, error) {
	if err := validateInput(actor, input); err != nil {
		return nil, err
	}

	var receipt *MovementReceipt
	var err error
	for attempt := 0; attempt < maxRetries; attempt++ {
		receipt, err = s.recordOnce(ctx, actor, input)
		if err == nil || !errors.Is(err, shared.ErrConcurrencyConflict) {
			break
		}
		s.logger.Warn("movement transaction conflict, retrying",
			zap.Int("attempt", attempt+1),
			zap.String("item_id", input.ItemID.String()),
		)
	}
	if err != nil {
		return nil, err
	}

	s.logger.Info("movement recorded",
		zap.String("movement_id", receipt.MovementID.String()),
		zap.String("config_key", receipt.ConfigKey),
		zap.String("type", input.Type.String()),
		zap.String("recorded_by", actor.SubjectID),
	)

	return receipt, nil
}

// ResolveItemCode maps a catalog item code to its ID, for callers that
// address items the way spreadsheets do
func (s *MovementService) ResolveItemCode(ctx context.Context, code string) (uuid.UUID, error) {
	var id uuid.UUID
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		item, err := repos.Items().FindByCode(ctx, code)
		if err != nil {
			return err
		}
		id = item.ID
		return nil
	})
	return id, err
}

func validateInput(actor Actor, input MovementInput) error {
	if actor.SubjectID == "" {
		return shared.ErrUnauthorized
	}
	if input.ItemID == uuid.Nil {
		return shared.NewDomainError("INVALID_INPUT", "Item is required")
	}
	if !input.Type.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "Unknown movement type")
	}
	if input.Quantity.IsZero() || input.Quantity.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Quantity must be positive")
	}
	if input.Date.IsZero() {
		return shared.NewDomainError("INVALID_INPUT", "Movement date is required")
	}
	if input.UnitID != nil && input.HospitalID != nil {
		return shared.NewDomainError("INVALID_INPUT", "Provide either a unit or a hospital, not both")
	}
	return nil
}

// recordOnce runs one attempt of the movement transaction
func (s *MovementService) recordOnce(ctx context.Context, actor Actor, input MovementInput) (*MovementReceipt, error) {
	var receipt *MovementReceipt

	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		item, err := repos.Items().FindByID(ctx, input.ItemID)
		if err != nil {
			return err
		}

		loc, err := resolveLocation(ctx, repos, input)
		if err != nil {
			return err
		}

		if !actor.Policy.CanRecordMovementAt(loc.kind, input.UnitID, loc.hospitalID) {
			return shared.ErrForbidden
		}

		patientName := ""
		if input.PatientID != nil {
			p, err := repos.Patients().FindByID(ctx, *input.PatientID)
			if err != nil {
				return err
			}
			patientName = p.Name
		}

		delta := input.Type.SignedQuantity(input.Quantity)

		key, quantityAfter, err := applyDelta(ctx, repos, item, loc, delta)
		if err != nil {
			return err
		}

		movement, err := stock.NewMovement(
			item.ID, input.Type, input.Quantity, input.Date, key,
			actor.SubjectID, quantityAfter,
		)
		if err != nil {
			return err
		}
		movement.
			WithLocation(input.UnitID, loc.hospitalID).
			WithPatient(input.PatientID).
			WithNotes(input.Notes).
			WithDisplayNames(item.Name, item.Code, loc.hospitalName, loc.unitName, patientName)

		if err := repos.Movements().Append(ctx, movement); err != nil {
			return err
		}

		receipt = &MovementReceipt{
			MovementID:    movement.ID,
			ConfigKey:     key,
			QuantityAfter: quantityAfter,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return receipt, nil
}

// resolvedLocation carries the counter identity plus display names captured
// for the ledger
type resolvedLocation struct {
	kind         stock.LocationKind
	locationID   uuid.UUID
	hospitalID   *uuid.UUID
	hospitalName string
	unitName     string
}

// resolveLocation maps the input's unit/hospital references to a stock
// location. No unit and no hospital means the central warehouse. A hospital
// without a unit addresses the general bucket, which only primary-care
// facilities have.
func resolveLocation(ctx context.Context, repos TransactionalRepositories, input MovementInput) (*resolvedLocation, error) {
	switch {
	case input.UnitID != nil:
		unit, err := repos.Units().FindByID(ctx, *input.UnitID)
		if err != nil {
			return nil, err
		}
		hospital, err := repos.Hospitals().FindByID(ctx, unit.HospitalID)
		if err != nil {
			return nil, err
		}
		hospitalID := hospital.ID
		return &resolvedLocation{
			kind:         stock.LocationUnit,
			locationID:   unit.ID,
			hospitalID:   &hospitalID,
			hospitalName: hospital.Name,
			unitName:     unit.Name,
		}, nil

	case input.HospitalID != nil:
		hospital, err := repos.Hospitals().FindByID(ctx, *input.HospitalID)
		if err != nil {
			return nil, err
		}
		if !hospital.IsPrimaryCare() {
			return nil, shared.NewDomainError("INVALID_INPUT",
				"Only primary-care facilities have a general stock bucket")
		}
		hospitalID := hospital.ID
		return &resolvedLocation{
			kind:         stock.LocationUBSGeneral,
			locationID:   hospital.ID,
			hospitalID:   &hospitalID,
			hospitalName: hospital.Name,
		}, nil

	default:
		return &resolvedLocation{kind: stock.LocationCentral}, nil
	}
}

// applyDelta adjusts the counter for the resolved location under a row lock
// and returns the config key plus the post-movement quantity. The central
// counter lives on the catalog item; unit and general buckets live on stock
// configs, created lazily on first use.
func applyDelta(
	ctx context.Context,
	repos TransactionalRepositories,
	item *catalog.Item,
	loc *resolvedLocation,
	delta decimal.Decimal,
) (string, decimal.Decimal, error) {
	if loc.kind == stock.LocationCentral {
		key, err := stock.ConfigKey(item.ID, stock.LocationCentral, uuid.Nil)
		if err != nil {
			return "", decimal.Zero, err
		}
		locked, err := repos.Items().FindByIDForUpdate(ctx, item.ID)
		if err != nil {
			return "", decimal.Zero, err
		}
		if err := locked.ApplyCentralDelta(delta); err != nil {
			return "", decimal.Zero, err
		}
		if err := repos.Items().Save(ctx, locked); err != nil {
			return "", decimal.Zero, err
		}
		return key, locked.CurrentQuantityCentral, nil
	}

	key, err := stock.ConfigKey(item.ID, loc.kind, loc.locationID)
	if err != nil {
		return "", decimal.Zero, err
	}

	cfg, err := repos.Configs().FindByKeyForUpdate(ctx, key)
	if errors.Is(err, shared.ErrNotFound) {
		cfg, err = newConfigFor(item.ID, loc)
	}
	if err != nil {
		return "", decimal.Zero, err
	}

	if err := cfg.ApplyDelta(delta); err != nil {
		return "", decimal.Zero, err
	}
	if err := repos.Configs().Save(ctx, cfg); err != nil {
		return "", decimal.Zero, err
	}
	return key, cfg.CurrentQuantity, nil
}

func newConfigFor(itemID uuid.UUID, loc *resolvedLocation) (*stock.Config, error) {
	if loc.kind == stock.LocationUnit {
		return stock.NewUnitConfig(itemID, loc.locationID, *loc.hospitalID)
	}
	return stock.NewUBSGeneralConfig(itemID, *loc.hospitalID)
}
