// Package database manages the postgres connection pool and schema
// migrations for the merchant reference store.
package database

import (
	"context"
	"fmt"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/Lakshmi0706/Mogrds/config"
)

// Connect opens a postgres connection pool and verifies it with a ping,
// retrying while the database comes up.
func Connect(ctx context.Context, logger ectologger.Logger, cfg *config.Config) (*sqlx.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DatabaseHost, cfg.DatabasePort, cfg.DatabaseUserName,
		cfg.DatabasePassword, cfg.DatabaseName, cfg.DatabaseSSLMode,
	)

	retries := cfg.DatabaseReconnectRetryCount
	if retries < 1 {
		retries = 1
	}

	var db *sqlx.DB
	var err error
	for attempt := 1; attempt <= retries; attempt++ {
		db, err = sqlx.ConnectContext(ctx, cfg.DatabaseDriver, dsn)
		if err == nil {
			break
		}
		logger.WithContext(ctx).WithError(err).Warnf("Database connection attempt %d/%d failed", attempt, retries)

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Second):
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	db.SetMaxOpenConns(cfg.DatabaseMaxOpenConns)
	db.SetMaxIdleConns(cfg.DatabaseMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DatabaseConnMaxLifetime)

	logger.WithContext(ctx).WithFields(map[string]any{
		"host":     cfg.DatabaseHost,
		"database": cfg.DatabaseName,
	}).Info("Connected to postgres")

	return db, nil
}
