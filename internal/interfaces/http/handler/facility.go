package handler

import (
	facilityapp "github.com/estoquesaude/backend/internal/application/facility"
	"github.com/estoquesaude/backend/internal/domain/facility"
	"github.com/estoquesaude/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FacilityHandler serves the hospital and served-unit endpoints
type FacilityHandler struct {
	BaseHandler
	facilities *facilityapp.Service
}

// NewFacilityHandler creates a FacilityHandler
func NewFacilityHandler(facilities *facilityapp.Service) *FacilityHandler {
	return &FacilityHandler{facilities: facilities}
}

// HospitalRequest is the request body for creating or updating a hospital
type HospitalRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Address string `json:"address" binding:"max=300"`
	Type    string `json:"type" binding:"omitempty,oneof=hospital primary_care"`
}

// UnitRequest is the request body for creating a served unit
type UnitRequest struct {
	Name       string    `json:"name" binding:"required,min=1,max=200"`
	Location   string    `json:"location" binding:"max=200"`
	HospitalID uuid.UUID `json:"hospital_id" binding:"required"`
}

// CreateHospital registers a hospital
func (h *FacilityHandler) CreateHospital(c *gin.Context) {
	var req HospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	hospital, err := h.facilities.CreateHospital(c.Request.Context(), req.Name, req.Address, facility.FacilityType(req.Type))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toHospitalResponse(hospital))
}

// GetHospital returns one hospital
func (h *FacilityHandler) GetHospital(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid hospital ID format")
		return
	}

	hospital, err := h.facilities.GetHospital(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toHospitalResponse(hospital))
}

// ListHospitals returns all hospitals
func (h *FacilityHandler) ListHospitals(c *gin.Context) {
	hospitals, err := h.facilities.ListHospitals(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toHospitalResponses(hospitals))
}

// UpdateHospital modifies a hospital
func (h *FacilityHandler) UpdateHospital(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid hospital ID format")
		return
	}

	var req HospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	hospital, err := h.facilities.UpdateHospital(c.Request.Context(), id, req.Name, req.Address, facility.FacilityType(req.Type))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toHospitalResponse(hospital))
}

// DeleteHospital removes a hospital
func (h *FacilityHandler) DeleteHospital(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid hospital ID format")
		return
	}

	if err := h.facilities.DeleteHospital(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// CreateUnit registers a served unit under a hospital
func (h *FacilityHandler) CreateUnit(c *gin.Context) {
	var req UnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	unit, err := h.facilities.CreateUnit(c.Request.Context(), req.Name, req.Location, req.HospitalID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toUnitResponse(unit))
}

// GetUnit returns one served unit
func (h *FacilityHandler) GetUnit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid unit ID format")
		return
	}

	unit, err := h.facilities.GetUnit(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toUnitResponse(unit))
}

// ListUnits returns the served units visible to the actor, optionally
// filtered by hospital
func (h *FacilityHandler) ListUnits(c *gin.Context) {
	var hospitalID *uuid.UUID
	if raw := c.Query("hospital_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid hospital_id filter")
			return
		}
		hospitalID = &id
	}

	units, err := h.facilities.ListUnits(c.Request.Context(), middleware.GetPolicy(c), hospitalID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toUnitResponses(units))
}

// DeleteUnit removes a served unit
func (h *FacilityHandler) DeleteUnit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid unit ID format")
		return
	}

	if err := h.facilities.DeleteUnit(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
