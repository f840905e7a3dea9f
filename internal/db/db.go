package db

import (
	"database/sql"
	"fmt"

	"teahouse-kiosk/internal/config"
	"teahouse-kiosk/internal/logger"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// driverName is swapped in tests.
var driverName = "postgres"

// InitDB opens the Postgres backend or exits the process.
func InitDB(cfg *config.Config) *sql.DB {
	db, err := NewDatabase(cfg)
	if err != nil {
		logger.L().Fatal("database init failed", zap.Error(err))
	}
	return db
}

// NewDatabase opens and pings the catalog/discount/order database.
func NewDatabase(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open(driverName, dsn(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	logger.L().Info("database connection established",
		zap.String("host", cfg.DBHost),
		zap.String("db", cfg.DBName),
	)
	return db, nil
}

func dsn(cfg *config.Config) string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort,
	)
}
