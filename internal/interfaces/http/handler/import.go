package handler

import (
	"fmt"
	"io"
	"net/http"

	"github.com/estoquesaude/backend/internal/application/importapp"
	appstock "github.com/estoquesaude/backend/internal/application/stock"
	"github.com/estoquesaude/backend/internal/infrastructure/importcsv"
	"github.com/estoquesaude/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// maxImportUpload bounds the CSV upload size
const maxImportUpload = 10 << 20 // 10 MiB

// ImportHandler serves the CSV batch import endpoints and the template
// downloads
type ImportHandler struct {
	BaseHandler
	hospitals *importapp.HospitalImportService
	patients  *importapp.PatientImportService
	movements *importapp.MovementImportService
}

// NewImportHandler creates an ImportHandler
func NewImportHandler(
	hospitals *importapp.HospitalImportService,
	patients *importapp.PatientImportService,
	movements *importapp.MovementImportService,
) *ImportHandler {
	return &ImportHandler{
		hospitals: hospitals,
		patients:  patients,
		movements: movements,
	}
}

// ImportHospitals imports a hospital CSV batch in one transaction
func (h *ImportHandler) ImportHospitals(c *gin.Context) {
	data, ok := h.readUpload(c)
	if !ok {
		return
	}

	result, err := h.hospitals.Import(c.Request.Context(), data)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ImportPatients imports a patient CSV batch in one transaction
func (h *ImportHandler) ImportPatients(c *gin.Context) {
	data, ok := h.readUpload(c)
	if !ok {
		return
	}

	result, err := h.patients.Import(c.Request.Context(), data)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// ImportMovements imports a movement CSV batch. The target location from
// the form fields applies to every row; each accepted row commits as its
// own movement.
func (h *ImportHandler) ImportMovements(c *gin.Context) {
	data, ok := h.readUpload(c)
	if !ok {
		return
	}

	var unitID, hospitalID *uuid.UUID
	if raw := c.PostForm("unit_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid unit_id")
			return
		}
		unitID = &id
	}
	if raw := c.PostForm("hospital_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid hospital_id")
			return
		}
		hospitalID = &id
	}

	actor := appstock.Actor{
		SubjectID: middleware.GetProfile(c).ID,
		Policy:    middleware.GetPolicy(c),
	}

	result, err := h.movements.Import(c.Request.Context(), actor, data, unitID, hospitalID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// HospitalTemplate downloads the hospital import template
func (h *ImportHandler) HospitalTemplate(c *gin.Context) {
	h.serveTemplate(c, importcsv.HospitalTemplate)
}

// PatientTemplate downloads the patient import template
func (h *ImportHandler) PatientTemplate(c *gin.Context) {
	h.serveTemplate(c, importcsv.PatientTemplate)
}

func (h *ImportHandler) serveTemplate(c *gin.Context, t importcsv.Template) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", t.Filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", t.Render())
}

func (h *ImportHandler) readUpload(c *gin.Context) ([]byte, bool) {
	file, _, err := c.Request.FormFile("file")
	if err != nil {
		h.BadRequest(c, "A CSV file upload named 'file' is required")
		return nil, false
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImportUpload+1))
	if err != nil {
		h.BadRequest(c, "Unable to read uploaded file")
		return nil, false
	}
	if len(data) > maxImportUpload {
		h.BadRequest(c, "Uploaded file exceeds the 10 MiB limit")
		return nil, false
	}
	return data, true
}
