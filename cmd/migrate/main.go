package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/estoquesaude/backend/internal/infrastructure/config"
	"github.com/estoquesaude/backend/internal/infrastructure/logger"
	"github.com/estoquesaude/backend/internal/infrastructure/persistence"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Schema migration tool. Runs against the configured PostgreSQL database
// by default; -sqlite creates or updates a local file database instead,
// for development without a running PostgreSQL.
func main() {
	sqlitePath := flag.String("sqlite", "", "migrate a local SQLite file instead of PostgreSQL")
	flag.Parse()

	log, err := logger.New(logger.DefaultConfig())
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if *sqlitePath != "" {
		migrateSQLite(log, *sqlitePath)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load configuration", zap.Error(err))
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = db.Close() }()

	if err := db.Migrate(); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
	log.Info("migration complete",
		zap.String("database", cfg.Database.DBName),
		zap.Int("models", len(persistence.Models())),
	)
}

func migrateSQLite(log *zap.Logger, path string) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatal("failed to open sqlite database", zap.Error(err))
	}

	if err := db.AutoMigrate(persistence.Models()...); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
	log.Info("migration complete",
		zap.String("sqlite", path),
		zap.Int("models", len(persistence.Models())),
	)
}
