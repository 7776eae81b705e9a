package importapp

import (
	"github.com/estoquesaude/backend/internal/infrastructure/importcsv"
)

// Result summarizes one batch import: how many rows were read, how many
// committed, and the per-row errors for the rest
type Result struct {
	TotalRows    int                  `json:"total_rows"`
	ImportedRows int                  `json:"imported_rows"`
	ErrorRows    int                  `json:"error_rows"`
	Errors       []importcsv.RowError `json:"errors,omitempty"`
	IsTruncated  bool                 `json:"is_truncated,omitempty"`
	TotalErrors  int                  `json:"total_errors,omitempty"`
}

func buildResult(total, imported int, ec *importcsv.ErrorCollection) *Result {
	return &Result{
		TotalRows:    total,
		ImportedRows: imported,
		ErrorRows:    total - imported,
		Errors:       ec.Errors(),
		IsTruncated:  ec.IsTruncated(),
		TotalErrors:  ec.TotalCount(),
	}
}
