package db

import (
	"context"
	"fmt"
	"time"

	"karma/pkg/types"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	// Schema is the search_path used when DATABASE_URL does not set one.
	Schema          = "karma"
	ApplicationName = "karma"
)

func Connect(ctx context.Context, config *types.Config) (*pgxpool.Pool, error) {
	poolConfig, err := PoolConfig(config)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// PoolConfig parses DATABASE_URL and fills in the runtime parameters and
// pool limits the URL leaves unset.
func PoolConfig(config *types.Config) (*pgxpool.Config, error) {
	poolConfig, err := pgxpool.ParseConfig(config.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	params := poolConfig.ConnConfig.RuntimeParams
	if _, ok := params["search_path"]; !ok {
		params["search_path"] = Schema
	}
	if _, ok := params["application_name"]; !ok {
		params["application_name"] = ApplicationName
	}

	if config.DatabaseMaxConns > 0 {
		poolConfig.MaxConns = config.DatabaseMaxConns
	}
	poolConfig.MaxConnIdleTime = 15 * time.Minute
	poolConfig.MaxConnLifetime = 45 * time.Minute

	return poolConfig, nil
}
