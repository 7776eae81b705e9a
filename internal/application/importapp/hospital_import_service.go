package importapp

import (
	"context"
	"fmt"

	appstock "github.com/estoquesaude/backend/internal/application/stock"
	"github.com/estoquesaude/backend/internal/domain/facility"
	"github.com/estoquesaude/backend/internal/infrastructure/importcsv"
	"go.uber.org/zap"
)

// maxImportErrors caps how many row errors one import reports
const maxImportErrors = 100

// HospitalImportService imports hospitals from an uploaded CSV. Rows are
// validated first, then every valid row commits in a single transaction; a
// commit failure fails the whole batch.
type HospitalImportService struct {
	scope  appstock.TransactionScope
	logger *zap.Logger
}

// NewHospitalImportService creates a HospitalImportService
func NewHospitalImportService(scope appstock.TransactionScope, logger *zap.Logger) *HospitalImportService {
	return &HospitalImportService{
		scope:  scope,
		logger: logger.Named("hospital-import"),
	}
}

// Import parses and imports a hospital CSV batch
func (s *HospitalImportService) Import(ctx context.Context, data []byte) (*Result, error) {
	parser, err := importcsv.ParseFromBytes(data)
	if err != nil {
		return nil, err
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, err
	}
	if missing := parser.ValidateHeaders(importcsv.HospitalTemplate.RequiredHeaders()); len(missing) > 0 {
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
	staged := make([]*facility.Hospital, 0, len(rows))

	for _, row := range rows {
		name := row.Get("Nome")
		if name == "" {
			errs.AddRequiredError(row.LineNumber, "Nome")
			continue
		}

		// Legacy files carry no type column; the name decides.
		hospital, err := facility.NewHospital(name, row.Get("Endereço"), facility.InferFacilityType(name))
		if err != nil {
			errs.AddValidationError(row.LineNumber, "Nome", err.Error())
			continue
		}
		staged = append(staged, hospital)
	}

	if len(staged) > 0 {
		err := s.scope.Execute(ctx, func(repos appstock.TransactionalRepositories) error {
			for _, hospital := range staged {
				if err := repos.Hospitals().Save(ctx, hospital); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	s.logger.Info("hospital batch imported",
		zap.Int("total_rows", len(rows)),
		zap.Int("imported", len(staged)),
		zap.Int("errors", errs.TotalCount()),
	)

	return buildResult(len(rows), len(staged), errs), nil
}
