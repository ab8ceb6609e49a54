// Package ch owns the clickhouse connection used for append-only event sinks
package ch

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// Rows is the clickhouse result contract
type Rows = driver.Rows

// Config carries clickhouse connection settings
type Config struct {
	URL  string
	Role string
}

// CH wraps a native clickhouse connection
type CH struct {
	Conn driver.Conn
}

// Open parses the DSN and dials clickhouse
func Open(ctx context.Context, cfg Config) (*CH, error) {
	opts, err := clickhouse.ParseDSN(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse clickhouse dsn: %w", err)
	}
	opts.ClientInfo = buildClientInfo(cfg.Role)

	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open clickhouse: %w", err)
	}
	if err := conn.Ping(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ping clickhouse: %w", err)
	}
	return &CH{Conn: conn}, nil
}

func buildClientInfo(role string) clickhouse.ClientInfo {
	version := "dev"
	if role != "" {
		version = version + "+" + role
	}
	return clickhouse.ClientInfo{
		Products: []struct {
			Name    string
			Version string
		}{
			{Name: "modgate", Version: version},
		},
	}
}

// InsertRows writes rows through a prepared batch. Column order must match
// the table definition
func (c *CH) InsertRows(ctx context.Context, table string, rows [][]any) error {
	if len(rows) == 0 {
		return nil
	}
	batch, err := c.Conn.PrepareBatch(ctx, "INSERT INTO "+table)
	if err != nil {
		return fmt.Errorf("prepare batch %s: %w", table, err)
	}
	for _, row := range rows {
		if err := batch.Append(row...); err != nil {
			return fmt.Errorf("append batch %s: %w", table, err)
		}
	}
	return batch.Send()
}

// Query runs a read query and returns the native rows
func (c *CH) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	return c.Conn.Query(ctx, sql, args...)
}

// Ping verifies connectivity
func (c *CH) Ping(ctx context.Context) error { return c.Conn.Ping(ctx) }

// Close releases the connection
func (c *CH) Close() error { return c.Conn.Close() }
