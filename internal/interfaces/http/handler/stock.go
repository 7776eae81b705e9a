package handler

import (
	"time"

	appstock "github.com/estoquesaude/backend/internal/application/stock"
	"github.com/estoquesaude/backend/internal/domain/stock"
	"github.com/estoquesaude/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockHandler serves the stock endpoints: movement recording, the
// movement ledger, configurations and strategic levels
type StockHandler struct {
	BaseHandler
	movements *appstock.MovementService
	queries   *appstock.QueryService
}

// NewStockHandler creates a StockHandler
func NewStockHandler(movements *appstock.MovementService, queries *appstock.QueryService) *StockHandler {
	return &StockHandler{movements: movements, queries: queries}
}

// MovementRequest is a proposed stock movement. At most one of unit_id and
// hospital_id may be set; neither means the central warehouse.
type MovementRequest struct {
	ItemID     uuid.UUID       `json:"item_id" binding:"required"`
	Type       string          `json:"type" binding:"required,oneof=entry exit consumption"`
	Quantity   decimal.Decimal `json:"quantity"`
	Date       time.Time       `json:"date" binding:"required"`
	UnitID     *uuid.UUID      `json:"unit_id"`
	HospitalID *uuid.UUID      `json:"hospital_id"`
	PatientID  *uuid.UUID      `json:"patient_id"`
	Notes      string          `json:"notes" binding:"max=500"`
}

// LevelsRequest sets the strategic level and minimum quantity of a
// non-central stock location
type LevelsRequest struct {
	ItemID         uuid.UUID       `json:"item_id" binding:"required"`
	UnitID         *uuid.UUID      `json:"unit_id"`
	HospitalID     *uuid.UUID      `json:"hospital_id"`
	StrategicLevel decimal.Decimal `json:"strategic_level"`
	MinQuantity    decimal.Decimal `json:"min_quantity"`
}

// RecordMovement validates, authorizes and commits one stock movement
func (h *StockHandler) RecordMovement(c *gin.Context) {
	var req MovementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	actor := appstock.Actor{
		SubjectID: middleware.GetProfile(c).ID,
		Policy:    middleware.GetPolicy(c),
	}

	receipt, err := h.movements.RecordMovement(c.Request.Context(), actor, appstock.MovementInput{
		ItemID:     req.ItemID,
		Type:       stock.MovementType(req.Type),
		Quantity:   req.Quantity,
		Date:       req.Date,
		UnitID:     req.UnitID,
		HospitalID: req.HospitalID,
		PatientID:  req.PatientID,
		Notes:      req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, receipt)
}

// ListMovements returns the ledger entries visible to the actor
func (h *StockHandler) ListMovements(c *gin.Context) {
	itemID, ok := h.optionalItemFilter(c)
	if !ok {
		return
	}

	movements, err := h.queries.ListMovements(c.Request.Context(), middleware.GetPolicy(c), itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toMovementResponses(movements))
}

// ListConfigs returns the stock configurations visible to the actor
func (h *StockHandler) ListConfigs(c *gin.Context) {
	itemID, ok := h.optionalItemFilter(c)
	if !ok {
		return
	}

	configs, err := h.queries.ListConfigs(c.Request.Context(), middleware.GetPolicy(c), itemID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toConfigResponses(configs))
}

// UpsertLevels sets the strategic parameters of one stock location
func (h *StockHandler) UpsertLevels(c *gin.Context) {
	var req LevelsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	cfg, err := h.queries.UpsertLevels(c.Request.Context(), middleware.GetPolicy(c), appstock.LevelsInput{
		ItemID:         req.ItemID,
		UnitID:         req.UnitID,
		HospitalID:     req.HospitalID,
		StrategicLevel: req.StrategicLevel,
		MinQuantity:    req.MinQuantity,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toConfigResponse(cfg))
}

func (h *StockHandler) optionalItemFilter(c *gin.Context) (*uuid.UUID, bool) {
	raw := c.Query("item_id")
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		h.BadRequest(c, "Invalid item_id filter")
		return nil, false
	}
	return &id, true
}
