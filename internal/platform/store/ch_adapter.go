package store

import (
	"context"
	"errors"

	chx "modgate/internal/platform/store/ch"
)

// chAdapter adapts *ch.CH to the Clickhouse seam
type chAdapter struct {
	ch *chx.CH
}

func newCHAdapter(c *chx.CH) *chAdapter { return &chAdapter{ch: c} }

// Insert accepts [][]any rows in table column order
func (a *chAdapter) Insert(ctx context.Context, table string, data any) error {
	rows, ok := data.([][]any)
	if !ok {
		return errors.New("ch insert expects [][]any rows")
	}
	return a.ch.InsertRows(ctx, table, rows)
}

func (a *chAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rs, err := a.ch.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return &chRows{rs: rs}, nil
}

func (a *chAdapter) Ping(ctx context.Context) error { return a.ch.Ping(ctx) }
func (a *chAdapter) Close() error                   { return a.ch.Close() }

// chRows narrows the native clickhouse rows to the store.Rows contract
type chRows struct {
	rs chx.Rows
}

func (r *chRows) Next() bool             { return r.rs.Next() }
func (r *chRows) Scan(dest ...any) error { return r.rs.Scan(dest...) }
func (r *chRows) Err() error             { return r.rs.Err() }
func (r *chRows) Close()                 { _ = r.rs.Close() }
func (r *chRows) Columns() []string      { return r.rs.Columns() }
