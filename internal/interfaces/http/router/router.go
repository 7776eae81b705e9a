package router

import (
	"github.com/estoquesaude/backend/internal/application/identityapp"
	"github.com/estoquesaude/backend/internal/domain/identity"
	"github.com/estoquesaude/backend/internal/infrastructure/auth"
	"github.com/estoquesaude/backend/internal/infrastructure/config"
	"github.com/estoquesaude/backend/internal/infrastructure/logger"
	"github.com/estoquesaude/backend/internal/interfaces/http/handler"
	"github.com/estoquesaude/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handlers bundles the HTTP handlers wired into the router
type Handlers struct {
	System   *handler.SystemHandler
	Items    *handler.ItemHandler
	Facility *handler.FacilityHandler
	Patients *handler.PatientHandler
	Stock    *handler.StockHandler
	Imports  *handler.ImportHandler
	Advisory *handler.AdvisoryHandler
	Profiles *handler.ProfileHandler
}

// New builds the gin engine with the full middleware chain and route table.
// Probes are public; everything under /api/v1 requires a verified bearer
// token. Registry writes need a warehouse-level role; movement-level
// authorization happens in the application services.
func New(
	cfg *config.Config,
	log *zap.Logger,
	verifier *auth.TokenVerifier,
	profiles *identityapp.ProfileService,
	h Handlers,
) *gin.Engine {
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		_ = engine.SetTrustedProxies(cfg.HTTP.TrustedProxies)
	}

	engine.Use(
		middleware.RequestID(),
		logger.GinMiddleware(log),
		logger.Recovery(log),
		middleware.CORS(cfg.HTTP.CORSAllowOrigins),
		middleware.BodyLimit(cfg.HTTP.MaxBodySize),
	)

	engine.GET("/health", h.System.Health)
	engine.GET("/ready", h.System.Ready)

	api := engine.Group("/api/v1")
	api.Use(middleware.Authentication(verifier, profiles))

	warehouseRoles := middleware.RequireRole(identity.RoleAdmin, identity.RoleCentralOperator)
	// Every operator role maintains the patient registry; the plain user
	// role stays read-only.
	operatorRoles := middleware.RequireRole(
		identity.RoleAdmin, identity.RoleCentralOperator,
		identity.RoleHospitalOperator, identity.RoleUBSOperator,
	)
	adminOnly := middleware.RequireRole(identity.RoleAdmin)

	items := api.Group("/items")
	{
		items.GET("", h.Items.List)
		items.GET("/below-minimum", h.Items.ListBelowMinimum)
		items.GET("/:id", h.Items.GetByID)
		items.POST("", warehouseRoles, h.Items.Create)
		items.PUT("/:id", warehouseRoles, h.Items.Update)
		items.PUT("/:id/min-quantity", warehouseRoles, h.Items.SetMinQuantity)
		items.DELETE("/:id", warehouseRoles, h.Items.Delete)
	}

	hospitals := api.Group("/hospitals")
	{
		hospitals.GET("", h.Facility.ListHospitals)
		hospitals.GET("/:id", h.Facility.GetHospital)
		hospitals.POST("", warehouseRoles, h.Facility.CreateHospital)
		hospitals.PUT("/:id", warehouseRoles, h.Facility.UpdateHospital)
		hospitals.DELETE("/:id", warehouseRoles, h.Facility.DeleteHospital)
	}

	units := api.Group("/units")
	{
		units.GET("", h.Facility.ListUnits)
		units.GET("/:id", h.Facility.GetUnit)
		units.POST("", warehouseRoles, h.Facility.CreateUnit)
		units.DELETE("/:id", warehouseRoles, h.Facility.DeleteUnit)
	}

	patients := api.Group("/patients")
	{
		patients.GET("", h.Patients.List)
		patients.GET("/:id", h.Patients.GetByID)
		patients.POST("", operatorRoles, h.Patients.Create)
		patients.PUT("/:id", operatorRoles, h.Patients.Update)
		patients.DELETE("/:id", warehouseRoles, h.Patients.Delete)
	}

	stock := api.Group("/stock")
	{
		stock.POST("/movements", h.Stock.RecordMovement)
		stock.GET("/movements", h.Stock.ListMovements)
		stock.GET("/configs", h.Stock.ListConfigs)
		stock.PUT("/levels", h.Stock.UpsertLevels)
	}

	imports := api.Group("/imports")
	{
		imports.POST("/hospitals", warehouseRoles, h.Imports.ImportHospitals)
		imports.POST("/patients", operatorRoles, h.Imports.ImportPatients)
		imports.POST("/movements", h.Imports.ImportMovements)
		imports.GET("/templates/hospitals", h.Imports.HospitalTemplate)
		imports.GET("/templates/patients", h.Imports.PatientTemplate)
	}

	api.POST("/advisory/trends", h.Advisory.Analyze)

	profilesGroup := api.Group("/profiles")
	{
		profilesGroup.GET("/me", h.Profiles.Me)
		profilesGroup.GET("", adminOnly, h.Profiles.List)
		profilesGroup.GET("/:id", adminOnly, h.Profiles.GetByID)
		profilesGroup.PUT("/:id/role", adminOnly, h.Profiles.SetRole)
		profilesGroup.POST("/:id/deactivate", adminOnly, h.Profiles.Deactivate)
	}

	return engine
}
