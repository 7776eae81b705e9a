package handler

import (
	"github.com/estoquesaude/backend/internal/application/advisoryapp"
	"github.com/gin-gonic/gin"
)

// AdvisoryHandler serves the consumption-trend advisory endpoint
type AdvisoryHandler struct {
	BaseHandler
	advisory *advisoryapp.Service
}

// NewAdvisoryHandler creates an AdvisoryHandler
func NewAdvisoryHandler(advisory *advisoryapp.Service) *AdvisoryHandler {
	return &AdvisoryHandler{advisory: advisory}
}

// AnalysisRequest carries the free-text stock context for a trend analysis
type AnalysisRequest struct {
	ConsumptionHistory string `json:"consumption_history" binding:"required"`
	SeasonalNotes      string `json:"seasonal_notes"`
	StrategicLevels    string `json:"strategic_levels"`
}

// AnalysisResponse is the advisory answer
type AnalysisResponse struct {
	Trend           string `json:"trend"`
	Recommendations string `json:"recommendations"`
}

// Analyze requests a consumption-trend description and reorder
// recommendations. The answer is informational only.
func (h *AdvisoryHandler) Analyze(c *gin.Context) {
	var req AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	analysis, err := h.advisory.Analyze(c.Request.Context(), advisoryapp.AnalysisInput{
		ConsumptionHistory: req.ConsumptionHistory,
		SeasonalNotes:      req.SeasonalNotes,
		StrategicLevels:    req.StrategicLevels,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, AnalysisResponse{
		Trend:           analysis.Trend,
		Recommendations: analysis.Recommendations,
	})
}
