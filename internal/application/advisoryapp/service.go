package advisoryapp

import (
	"context"
	"strings"

	"github.com/estoquesaude/backend/internal/domain/shared"
	"github.com/estoquesaude/backend/internal/infrastructure/advisory"
	"go.uber.org/zap"
)

// TrendAnalyzer is the outbound port to the text-generation service
type TrendAnalyzer interface {
	AnalyzeTrends(ctx context.Context, input advisory.Input) (*advisory.Result, error)
}

// AnalysisInput carries the free-text stock context for a trend analysis
type AnalysisInput struct {
	ConsumptionHistory string
	SeasonalNotes      string
	StrategicLevels    string
}

// Analysis is the advisory answer returned to the caller. The content is
// informational only and never feeds back into stock counters.
type Analysis struct {
	Trend           string
	Recommendations string
}

// Service validates analysis requests and delegates to the external
// text-generation client
type Service struct {
	analyzer TrendAnalyzer
	logger   *zap.Logger
}

// NewService creates an advisory Service
func NewService(analyzer TrendAnalyzer, logger *zap.Logger) *Service {
	return &Service{analyzer: analyzer, logger: logger.Named("advisory")}
}

// Analyze requests a consumption-trend description and reorder
// recommendations for the supplied stock context
func (s *Service) Analyze(ctx context.Context, input AnalysisInput) (*Analysis, error) {
	if strings.TrimSpace(input.ConsumptionHistory) == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Consumption history is required")
	}

	result, err := s.analyzer.AnalyzeTrends(ctx, advisory.Input{
		ConsumptionHistory: input.ConsumptionHistory,
		SeasonalNotes:      input.SeasonalNotes,
		StrategicLevels:    input.StrategicLevels,
	})
	if err != nil {
		s.logger.Warn("trend analysis failed", zap.Error(err))
		return nil, err
	}

	return &Analysis{
		Trend:           result.Trend,
		Recommendations: result.Recommendations,
	}, nil
}
