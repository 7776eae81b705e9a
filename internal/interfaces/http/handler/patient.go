package handler

import (
	"time"

	"github.com/estoquesaude/backend/internal/application/patientapp"
	"github.com/estoquesaude/backend/internal/domain/patient"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// PatientHandler serves the patient registry endpoints
type PatientHandler struct {
	BaseHandler
	patients *patientapp.Service
}

// NewPatientHandler creates a PatientHandler
func NewPatientHandler(patients *patientapp.Service) *PatientHandler {
	return &PatientHandler{patients: patients}
}

// PatientRequest is the request body for creating or updating a patient
type PatientRequest struct {
	Name          string     `json:"name" binding:"required,min=1,max=200"`
	SUSCardNumber string     `json:"sus_card_number" binding:"required,suscard"`
	BirthDate     *time.Time `json:"birth_date"`
	Address       string     `json:"address" binding:"max=300"`
	Phone         string     `json:"phone" binding:"max=30"`
	Sex           string     `json:"sex" binding:"omitempty,oneof=F M"`
	HealthAgent   string     `json:"health_agent" binding:"max=200"`
	HospitalID    uuid.UUID  `json:"hospital_id"`
}

func (r PatientRequest) toInput() patientapp.PatientInput {
	return patientapp.PatientInput{
		Name:          r.Name,
		SUSCardNumber: r.SUSCardNumber,
		BirthDate:     r.BirthDate,
		Address:       r.Address,
		Phone:         r.Phone,
		Sex:           patient.Sex(r.Sex),
		HealthAgent:   r.HealthAgent,
		HospitalID:    r.HospitalID,
	}
}

// Create registers a patient
func (h *PatientHandler) Create(c *gin.Context) {
	var req PatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	p, err := h.patients.Create(c.Request.Context(), req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, toPatientResponse(p))
}

// GetByID returns one patient
func (h *PatientHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid patient ID format")
		return
	}

	p, err := h.patients.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPatientResponse(p))
}

// List returns patients, optionally filtered by registering facility
func (h *PatientHandler) List(c *gin.Context) {
	var hospitalID *uuid.UUID
	if raw := c.Query("hospital_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid hospital_id filter")
			return
		}
		hospitalID = &id
	}

	patients, err := h.patients.List(c.Request.Context(), hospitalID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPatientResponses(patients))
}

// Update modifies a patient record
func (h *PatientHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid patient ID format")
		return
	}

	var req PatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	p, err := h.patients.Update(c.Request.Context(), id, req.toInput())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toPatientResponse(p))
}

// Delete removes a patient record
func (h *PatientHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid patient ID format")
		return
	}

	if err := h.patients.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
