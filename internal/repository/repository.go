package repository

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/singleflight"
)

const connectTimeout = 10 * time.Second

// NewPool creates a PostgreSQL connection pool and verifies it with a ping.
func NewPool(ctx context.Context, connString string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}

// Connector hands out a process-wide pool that is opened on first use.
// Concurrent first callers share one in-flight connection attempt. A failed
// attempt is not remembered, so the next caller tries again.
type Connector struct {
	connString string
	open       func(ctx context.Context, connString string) (*pgxpool.Pool, error)

	pool  atomic.Pointer[pgxpool.Pool]
	group singleflight.Group
}

// NewConnector returns a Connector for connString. No connection is made yet.
func NewConnector(connString string) *Connector {
	return &Connector{connString: connString, open: NewPool}
}

var _ PoolProvider = (*Connector)(nil)
var _ DB = (*Connector)(nil)

// Pool returns the shared pool, connecting if needed.
func (c *Connector) Pool(ctx context.Context) (*pgxpool.Pool, error) {
	if p := c.pool.Load(); p != nil {
		return p, nil
	}
	v, err, _ := c.group.Do("pool", func() (any, error) {
		if p := c.pool.Load(); p != nil {
			return p, nil
		}
		// Other callers wait on this attempt, so it must not die with the
		// context of whichever request happened to start it.
		openCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), connectTimeout)
		defer cancel()
		p, err := c.open(openCtx, c.connString)
		if err != nil {
			return nil, err
		}
		c.pool.Store(p)
		return p, nil
	})
	if err != nil {
		return nil, fmt.Errorf("repository: connect: %w", err)
	}
	return v.(*pgxpool.Pool), nil
}

// Ping checks that the database is reachable.
func (c *Connector) Ping(ctx context.Context) error {
	p, err := c.Pool(ctx)
	if err != nil {
		return err
	}
	return p.Ping(ctx)
}

// Close releases the pool if one was opened.
func (c *Connector) Close() {
	if p := c.pool.Swap(nil); p != nil {
		p.Close()
	}
}
