package importapp

import (
	"context"
	"fmt"
	"time"

	appstock "github.com/estoquesaude/backend/internal/application/stock"
	"github.com/estoquesaude/backend/internal/domain/patient"
	"github.com/estoquesaude/backend/internal/infrastructure/importcsv"
	"go.uber.org/zap"
)

const birthDateLayout = "2006-01-02"

// PatientImportService imports patients from an uploaded CSV. Row-level
// validation errors (bad SUS card number, missing name) are collected per row;
// the surviving rows commit together in a single transaction. Rows are not
// deduplicated: the same person listed twice becomes two records, matching how
// paper lists are transcribed.
type PatientImportService struct {
	scope  appstock.TransactionScope
	logger *zap.Logger
}

// NewPatientImportService creates a PatientImportService
func NewPatientImportService(scope appstock.TransactionScope, logger *zap.Logger) *PatientImportService {
	return &PatientImportService{
		scope:  scope,
		logger: logger.Named("patient-import"),
	}
}

// Import parses and imports a patient CSV batch
func (s *PatientImportService) Import(ctx context.Context, data []byte) (*Result, error) {
	parser, err := importcsv.ParseFromBytes(data)
	if err != nil {
		return nil, err
	}
	if err := parser.ParseHeader(); err != nil {
		return nil, err
	}
	if missing := parser.ValidateHeaders(importcsv.PatientTemplate.RequiredHeaders()); len(missing) > 0 {
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
	staged := make([]*patient.Patient, 0, len(rows))

	for _, row := range rows {
		name := row.Get("Nome Completo")
		if name == "" {
			errs.AddRequiredError(row.LineNumber, "Nome Completo")
			continue
		}

		p, err := patient.NewPatient(name, row.Get("Número do Cartão SUS"))
		if err != nil {
			errs.AddValidationError(row.LineNumber, "Número do Cartão SUS", err.Error())
			continue
		}

		if raw := row.Get("Data de Nascimento"); raw != "" {
			birthDate, err := time.Parse(birthDateLayout, raw)
			if err != nil {
				errs.AddFormatError(row.LineNumber, "Data de Nascimento", "YYYY-MM-DD", raw)
				continue
			}
			p.BirthDate = &birthDate
		}

		staged = append(staged, p)
	}

	if len(staged) > 0 {
		err := s.scope.Execute(ctx, func(repos appstock.TransactionalRepositories) error {
			return repos.Patients().SaveAll(ctx, staged)
		})
		if err != nil {
			return nil, err
		}
	}

	s.logger.Info("patient batch imported",
		zap.Int("total_rows", len(rows)),
		zap.Int("imported", len(staged)),
		zap.Int("errors", errs.TotalCount()),
	)

	return buildResult(len(rows), len(staged), errs), nil
}
