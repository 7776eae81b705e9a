package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/estoquesaude/backend/internal/application/advisoryapp"
	catalogapp "github.com/estoquesaude/backend/internal/application/catalog"
	facilityapp "github.com/estoquesaude/backend/internal/application/facility"
	"github.com/estoquesaude/backend/internal/application/identityapp"
	"github.com/estoquesaude/backend/internal/application/importapp"
	"github.com/estoquesaude/backend/internal/application/patientapp"
	appstock "github.com/estoquesaude/backend/internal/application/stock"
	"github.com/estoquesaude/backend/internal/infrastructure/advisory"
	"github.com/estoquesaude/backend/internal/infrastructure/auth"
	"github.com/estoquesaude/backend/internal/infrastructure/config"
	"github.com/estoquesaude/backend/internal/infrastructure/logger"
	"github.com/estoquesaude/backend/internal/infrastructure/persistence"
	"github.com/estoquesaude/backend/internal/interfaces/http/handler"
	"github.com/estoquesaude/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	if err := db.Migrate(); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Repositories
	itemRepo := persistence.NewGormItemRepository(db.DB)
	hospitalRepo := persistence.NewGormHospitalRepository(db.DB)
	unitRepo := persistence.NewGormServedUnitRepository(db.DB)
	patientRepo := persistence.NewGormPatientRepository(db.DB)
	configRepo := persistence.NewGormStockConfigRepository(db.DB)
	movementRepo := persistence.NewGormStockMovementRepository(db.DB)
	profileRepo := persistence.NewGormProfileRepository(db.DB)
	txScope := persistence.NewGormTransactionScope(db.DB)

	// Application services
	itemService := catalogapp.NewItemService(itemRepo, log)
	facilityService := facilityapp.NewService(hospitalRepo, unitRepo, log)
	patientService := patientapp.NewService(patientRepo, log)
	movementService := appstock.NewMovementService(txScope, log)
	queryService := appstock.NewQueryService(txScope, configRepo, movementRepo, log)
	profileService := identityapp.NewProfileService(profileRepo, log)
	advisoryService := advisoryapp.NewService(advisory.NewClient(cfg.Advisory, log), log)

	hospitalImport := importapp.NewHospitalImportService(txScope, log)
	patientImport := importapp.NewPatientImportService(txScope, log)
	movementImport := importapp.NewMovementImportService(movementService, log)

	verifier := auth.NewTokenVerifier(cfg.JWT)

	engine := router.New(cfg, log, verifier, profileService, router.Handlers{
		System:   handler.NewSystemHandler(db, cfg.App.Name, cfg.App.Env),
		Items:    handler.NewItemHandler(itemService),
		Facility: handler.NewFacilityHandler(facilityService),
		Patients: handler.NewPatientHandler(patientService),
		Stock:    handler.NewStockHandler(movementService, queryService),
		Imports:  handler.NewImportHandler(hospitalImport, patientImport, movementImport),
		Advisory: handler.NewAdvisoryHandler(advisoryService),
		Profiles: handler.NewProfileHandler(profileService),
	})

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("http server listening", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Error("forced shutdown", zap.Error(err))
	}

	log.Info("stopped")
}
