// Package db owns the PostgreSQL connection pool.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/config"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/logger"
)

const (
	applicationName    = "syllabus-tracker"
	connectTimeout     = 10 * time.Second
	defaultTxTimeout   = 30 * time.Second
	defaultMaxConns    = 10
	defaultMaxLifetime = time.Hour
)

// PostgresDB wraps the pgx pool shared by repositories.
type PostgresDB struct {
	Pool *pgxpool.Pool
}

// PoolConfig translates the database section of cfg into a pgx pool config.
// Sessions run in UTC so DATE columns never shift with the server zone.
func PoolConfig(cfg *config.Config) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.GetPostgresConnectionString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse pgxpool config: %w", err)
	}

	maxConns := cfg.Database.MaxOpenConns
	if maxConns <= 0 {
		maxConns = defaultMaxConns
	}
	minConns := cfg.Database.MaxIdleConns
	if minConns < 0 {
		minConns = 0
	}
	if minConns > maxConns {
		minConns = maxConns
	}
	poolConfig.MaxConns = int32(maxConns)
	poolConfig.MinConns = int32(minConns)

	poolConfig.MaxConnLifetime = defaultMaxLifetime
	if cfg.Database.ConnMaxLifetime != "" {
		lifetime, err := time.ParseDuration(cfg.Database.ConnMaxLifetime)
		if err != nil {
			return nil, fmt.Errorf("invalid conn_max_lifetime: %w", err)
		}
		poolConfig.MaxConnLifetime = lifetime
	}

	poolConfig.ConnConfig.RuntimeParams["application_name"] = applicationName
	poolConfig.ConnConfig.RuntimeParams["timezone"] = "UTC"

	poolConfig.BeforeAcquire = func(ctx context.Context, conn *pgx.Conn) bool {
		if err := conn.Ping(ctx); err != nil {
			logger.Warn().Err(err).Msg("Discarding unhealthy database connection")
			return false
		}
		return true
	}

	return poolConfig, nil
}

// NewPostgresDB opens the pool and verifies the server is reachable.
func NewPostgresDB(cfg *config.Config) (*PostgresDB, error) {
	poolConfig, err := PoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create database connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to reach database %s:%s: %w", cfg.Database.Host, cfg.Database.Port, err)
	}

	logger.Info().
		Int32("maxConns", poolConfig.MaxConns).
		Int32("minConns", poolConfig.MinConns).
		Msg("Database pool ready")
	return &PostgresDB{Pool: pool}, nil
}

// Health pings the database.
func (db *PostgresDB) Health(ctx context.Context) error {
	if db == nil || db.Pool == nil {
		return fmt.Errorf("database pool not initialized")
	}
	return db.Pool.Ping(ctx)
}

// Close closes the pool
func (db *PostgresDB) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// TransactionFn is a function that executes within a transaction
type TransactionFn func(ctx context.Context, tx pgx.Tx) error

// WithTransaction runs fn in a transaction, committing on success and rolling
// back on error or panic. Callers without a deadline get defaultTxTimeout.
func (db *PostgresDB) WithTransaction(ctx context.Context, fn TransactionFn) (err error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultTxTimeout)
		defer cancel()
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(context.WithoutCancel(ctx))
			panic(r)
		}
	}()

	if err = fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(context.WithoutCancel(ctx)); rbErr != nil {
			logger.Error().Err(rbErr).Msg("Failed to rollback transaction")
			return fmt.Errorf("%w (rollback failed: %v)", err, rbErr)
		}
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
