// Package pg owns the pgx pool and its configuration
package pg

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// QueryTracer is re-exported so callers never import pgx directly
type QueryTracer = pgx.QueryTracer

// Config carries connection settings for the pool
type Config struct {
	URL      string
	MaxConns int32
	SlowMs   int
}

// PG wraps the pgx pool
type PG struct {
	Pool *pgxpool.Pool
}

// newPool is a seam for tests
var newPool = func(ctx context.Context, cfg *pgxpool.Config) (*pgxpool.Pool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Open parses cfg and builds a pool. When pool is non-nil it is adopted
// as-is and cfg/tracer are ignored
func Open(ctx context.Context, cfg Config, tracer QueryTracer, pool *pgxpool.Pool) (*PG, error) {
	if pool != nil {
		return &PG{Pool: pool}, nil
	}

	pcfg, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse postgres url: %w", err)
	}
	if cfg.MaxConns > 0 {
		pcfg.MaxConns = cfg.MaxConns
	}
	if tracer != nil {
		pcfg.ConnConfig.Tracer = tracer
	}

	p, err := newPool(ctx, pcfg)
	if err != nil {
		return nil, fmt.Errorf("open postgres pool: %w", err)
	}
	return &PG{Pool: p}, nil
}

// Close releases the pool
func (p *PG) Close() {
	if p != nil && p.Pool != nil {
		p.Pool.Close()
	}
}
