package store

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"modgate/internal/platform/store/pg"
)

// pgAdapter adapts *pg.PG to the TxRunner seam
type pgAdapter struct {
	pg *pg.PG
}

func newPGAdapter(p *pg.PG) *pgAdapter { return &pgAdapter{pg: p} }

func (a *pgAdapter) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	tag, err := a.pg.Pool.Exec(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return tagAdapter{tag}, nil
}

func (a *pgAdapter) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rs, err := a.pg.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return &rowsAdapter{rs}, nil
}

func (a *pgAdapter) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return a.pg.Pool.QueryRow(ctx, sql, args...)
}

// Tx runs fn inside a transaction, committing on nil error
func (a *pgAdapter) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := a.pg.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	q := &txQuerier{tx: tx}
	if err := fn(q); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

func (a *pgAdapter) Ping(ctx context.Context) error { return a.pg.Pool.Ping(ctx) }

func (a *pgAdapter) Close() error {
	a.pg.Close()
	return nil
}

// txQuerier adapts pgx.Tx to RowQuerier inside Tx callbacks
type txQuerier struct {
	tx pgx.Tx
}

func (q *txQuerier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	tag, err := q.tx.Exec(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return tagAdapter{tag}, nil
}

func (q *txQuerier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rs, err := q.tx.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return &rowsAdapter{rs}, nil
}

func (q *txQuerier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return q.tx.QueryRow(ctx, sql, args...)
}

// rowsAdapter narrows pgx.Rows to the store.Rows contract
type rowsAdapter struct {
	rs pgx.Rows
}

func (r *rowsAdapter) Next() bool             { return r.rs.Next() }
func (r *rowsAdapter) Scan(dest ...any) error { return r.rs.Scan(dest...) }
func (r *rowsAdapter) Err() error             { return r.rs.Err() }
func (r *rowsAdapter) Close()                 { r.rs.Close() }

func (r *rowsAdapter) Columns() []string {
	fds := r.rs.FieldDescriptions()
	out := make([]string, len(fds))
	for i, fd := range fds {
		out[i] = fd.Name
	}
	return out
}

type tagAdapter struct {
	tag pgconn.CommandTag
}

func (t tagAdapter) String() string      { return t.tag.String() }
func (t tagAdapter) RowsAffected() int64 { return t.tag.RowsAffected() }
