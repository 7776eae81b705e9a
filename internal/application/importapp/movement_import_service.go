package importapp

import (
	"context"
	"fmt"
	"strings"
	"time"

	appstock "github.com/estoquesaude/backend/internal/application/stock"
	"github.com/estoquesaude/backend/internal/domain/stock"
	"github.com/estoquesaude/backend/internal/infrastructure/importcsv"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Movement import column names, matching what spreadsheet users fill in
const (
	colItemCode = "Código do Item"
	colType     = "Tipo"
	colQuantity = "Quantidade"
	colDate     = "Data"
	colNotes    = "Observações"
)

var movementColumns = []string{colItemCode, colType, colQuantity, colDate}

// MovementImportService feeds each spreadsheet row through the movement
// transaction processor. Unlike the registry imports, every row is its own
// atomic transaction: a row that fails (bad reference, insufficient stock)
// is reported and skipped without undoing its siblings.
type MovementImportService struct {
	movements *appstock.MovementService
	logger    *zap.Logger
}

// NewMovementImportService creates a MovementImportService
func NewMovementImportService(movements *appstock.MovementService, logger *zap.Logger) *MovementImportService {
	return &MovementImportService{
		movements: movements,
		logger:    logger.Named("movement-import"),
	}
}

// Import processes a movement CSV batch addressed to one location. The
// location (central, served unit, or general bucket) is chosen at upload
// time and applies to every row.
func (s *MovementImportService) Import(
	ctx context.Context,
	actor appstock.Actor,
	data []byte,
	unitID, hospitalID *uuid.UUID,
) (*Result, error) {
	parser, err := importcsv.ParseFromBytes(data)
	if err != nil {
		return nil, err
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, err
	}
	if missing := parser.ValidateHeaders(movementColumns); len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing columns %v", importcsv.ErrMissingHeader, missing)
	}

	rows, err := parser.ReadAllRows()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, importcsv.ErrNoDataRows
	}

	errs := importcsv.NewErrorCollection(maxImportErrors)
	imported := 0

	for _, row := range rows {
		input, column, err := s.parseRow(ctx, row, unitID, hospitalID)
		if err != nil {
			errs.AddValidationError(row.LineNumber, column, err.Error())
			continue
		}

		if _, err := s.movements.RecordMovement(ctx, actor, *input); err != nil {
			errs.AddValidationError(row.LineNumber, "", err.Error())
			continue
		}
		imported++
	}

	s.logger.Info("movement batch processed",
		zap.Int("total_rows", len(rows)),
		zap.Int("imported", imported),
		zap.Int("errors", errs.TotalCount()),
	)

	return buildResult(len(rows), imported, errs), nil
}

// parseRow turns a CSV row into a movement input, returning the offending
// column on failure
func (s *MovementImportService) parseRow(
	ctx context.Context,
	row *importcsv.Row,
	unitID, hospitalID *uuid.UUID,
) (*appstock.MovementInput, string, error) {
	code := row.Get(colItemCode)
	if code == "" {
		return nil, colItemCode, fmt.Errorf("field '%s' is required", colItemCode)
	}

	movementType, err := parseMovementType(row.Get(colType))
	if err != nil {
		return nil, colType, err
	}

	quantity, err := decimal.NewFromString(row.Get(colQuantity))
	if err != nil {
		return nil, colQuantity, fmt.Errorf("invalid quantity %q", row.Get(colQuantity))
	}

	date, err := time.Parse(birthDateLayout, row.Get(colDate))
	if err != nil {
		return nil, colDate, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", row.Get(colDate))
	}

	item, err := s.movements.ResolveItemCode(ctx, code)
	if err != nil {
		return nil, colItemCode, fmt.Errorf("item '%s' not found", code)
	}

	return &appstock.MovementInput{
		ItemID:     item,
		Type:       movementType,
		Quantity:   quantity,
		Date:       date,
		UnitID:     unitID,
		HospitalID: hospitalID,
		Notes:      row.Get(colNotes),
	}, "", nil
}

// parseMovementType accepts both the Portuguese spreadsheet values and the
// canonical identifiers
func parseMovementType(value string) (stock.MovementType, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "entrada", "entry":
		return stock.MovementTypeEntry, nil
	case "saída", "saida", "exit":
		return stock.MovementTypeExit, nil
	case "consumo", "consumption":
		return stock.MovementTypeConsumption, nil
	default:
		return "", fmt.Errorf("unknown movement type %q", value)
	}
}
