// Package database owns the MySQL connection pool and the startup
// migration. Everything above it talks to *sql.DB only.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/RihamAlgosbi/zawiya-complaints-backend/internal/config"
)

// Open builds the DSN from the configuration, applies the configured
// pool limits and verifies connectivity with a short ping before
// handing the pool out. parseTime is forced on so DATETIME columns
// scan into time.Time, and loc=UTC keeps every timestamp in UTC on
// both sides of the wire.
func Open(cfg config.Config) (*sql.DB, error) {
	creds := cfg.DBUser
	if cfg.DBPass != "" {
		creds += ":" + cfg.DBPass
	}
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		creds, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("database: open: %w", err)
	}
	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database: ping: %w", err)
	}
	return db, nil
}
