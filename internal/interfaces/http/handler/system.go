package handler

import (
	"net/http"
	"time"

	"github.com/estoquesaude/backend/internal/infrastructure/persistence"
	"github.com/estoquesaude/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

// SystemHandler serves health and readiness probes
type SystemHandler struct {
	BaseHandler
	db      *persistence.Database
	appName string
	env     string
}

// NewSystemHandler creates a SystemHandler
func NewSystemHandler(db *persistence.Database, appName, env string) *SystemHandler {
	return &SystemHandler{db: db, appName: appName, env: env}
}

// HealthResponse reports process liveness
type HealthResponse struct {
	Status string    `json:"status"`
	App    string    `json:"app"`
	Env    string    `json:"env"`
	Time   time.Time `json:"time"`
}

// Health reports liveness without touching dependencies
func (h *SystemHandler) Health(c *gin.Context) {
	h.Success(c, HealthResponse{
		Status: "ok",
		App:    h.appName,
		Env:    h.env,
		Time:   time.Now().UTC(),
	})
}

// Ready reports readiness, verifying the database connection
func (h *SystemHandler) Ready(c *gin.Context) {
	if err := h.db.Ping(); err != nil {
		c.JSON(http.StatusServiceUnavailable,
			dto.NewErrorResponse(dto.ErrCodeInternal, "Database is unreachable", ""))
		return
	}
	h.Success(c, gin.H{"status": "ready"})
}
