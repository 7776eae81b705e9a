package handler

import (
	"github.com/estoquesaude/backend/internal/application/identityapp"
	"github.com/estoquesaude/backend/internal/domain/identity"
	"github.com/estoquesaude/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ProfileHandler serves the user-profile endpoints
type ProfileHandler struct {
	BaseHandler
	profiles *identityapp.ProfileService
}

// NewProfileHandler creates a ProfileHandler
func NewProfileHandler(profiles *identityapp.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

// SetRoleRequest changes the role and facility association of a profile
type SetRoleRequest struct {
	Role       string     `json:"role" binding:"required,oneof=admin central_operator hospital_operator ubs_operator user"`
	HospitalID *uuid.UUID `json:"hospital_id"`
	UnitID     *uuid.UUID `json:"unit_id"`
}

// Me returns the profile of the authenticated actor
func (h *ProfileHandler) Me(c *gin.Context) {
	profile := middleware.GetProfile(c)
	h.Success(c, toProfileResponse(profile))
}

// List returns all profiles
func (h *ProfileHandler) List(c *gin.Context) {
	profiles, err := h.profiles.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toProfileResponses(profiles))
}

// GetByID returns one profile by identity-provider subject
func (h *ProfileHandler) GetByID(c *gin.Context) {
	profile, err := h.profiles.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toProfileResponse(profile))
}

// SetRole changes the role and facility association of a profile
func (h *ProfileHandler) SetRole(c *gin.Context) {
	var req SetRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	profile, err := h.profiles.SetRole(c.Request.Context(),
		c.Param("id"), identity.Role(req.Role), req.HospitalID, req.UnitID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toProfileResponse(profile))
}

// Deactivate denies a subject further access
func (h *ProfileHandler) Deactivate(c *gin.Context) {
	profile, err := h.profiles.Deactivate(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toProfileResponse(profile))
}
