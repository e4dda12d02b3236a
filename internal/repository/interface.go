package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// DB is implemented by anything that can report database liveness.
type DB interface {
	Ping(ctx context.Context) error
}

// PoolProvider yields the pool repositories run their queries on.
type PoolProvider interface {
	Pool(ctx context.Context) (*pgxpool.Pool, error)
}
