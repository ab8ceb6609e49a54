// Package repo provides the Postgres moderation ledger repository
package repo

import (
	"context"
	stderrs "errors"
	"time"

	"github.com/jackc/pgx/v5"

	"modgate/internal/modkit/repokit"
	perr "modgate/internal/platform/errors"
	"modgate/internal/platform/store"
	"modgate/internal/services/ledger/domain"
)

// Repo is the ledger persistence surface used by the service layer
type Repo interface {
	Insert(ctx context.Context, e domain.Entry) error
	Get(ctx context.Context, id string) (domain.Entry, error)
	ListPending(ctx context.Context, limit int, before *time.Time) ([]domain.Entry, error)

	// ResolvePending flips a pending entry to a terminal status.
	// ok=false means the precondition missed (entry absent or already resolved)
	ResolvePending(
		ctx context.Context,
		id string,
		status domain.Status,
		reason string,
		moderatorID, contentID *string,
	) (domain.Entry, bool, error)

	// FlagPending overwrites the reason of a pending entry, ok=false on miss
	FlagPending(ctx context.Context, id, reason string) (bool, error)

	// AssignContentID sets content_id where it is still NULL, ok=false on miss
	AssignContentID(ctx context.Context, id, contentID string) (bool, error)
}

type (
	// PG is a Postgres implementation of the ledger repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const entryCols = `
	id, content_type, content_id, snapshot, flagged_by_ai,
	reporter_id, author_id, category_id, reason, status,
	moderator_id, created_at, reviewed_at`

// Insert writes a fresh pending entry
func (r *queries) Insert(ctx context.Context, e domain.Entry) error {
	snap, err := e.Snapshot.Encode()
	if err != nil {
		return err
	}

	const sql = `
		INSERT INTO moderation_entries (
			id, content_type, content_id, snapshot, flagged_by_ai,
			reporter_id, author_id, category_id, reason, status, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = r.q.Exec(ctx, sql,
		e.ID, string(e.ContentType), e.ContentID, snap, e.FlaggedByAI,
		e.ReporterID, e.AuthorID, e.CategoryID, e.Reason, string(e.Status), e.CreatedAt,
	)
	return perr.FromPostgres(err, "insert ledger entry")
}

// Get fetches one entry by id
func (r *queries) Get(ctx context.Context, id string) (domain.Entry, error) {
	row := r.q.QueryRow(ctx, `SELECT `+entryCols+` FROM moderation_entries WHERE id = $1`, id)
	e, err := scanEntry(row)
	if stderrs.Is(err, pgx.ErrNoRows) {
		return domain.Entry{}, perr.NotFoundf("ledger entry %s not found", id)
	}
	if err != nil {
		return domain.Entry{}, perr.FromPostgres(err, "get ledger entry")
	}
	return e, nil
}

// ListPending returns the review queue ordered oldest-first, keyset-paged
// on created_at
func (r *queries) ListPending(ctx context.Context, limit int, before *time.Time) ([]domain.Entry, error) {
	const sql = `
		SELECT ` + entryCols + `
		FROM moderation_entries
		WHERE status = 'pending'
		  AND ($2::timestamptz IS NULL OR created_at < $2)
		ORDER BY created_at ASC, id ASC
		LIMIT $1`

	rows, err := r.q.Query(ctx, sql, limit, before)
	if err != nil {
		return nil, perr.FromPostgres(err, "list pending entries")
	}
	defer rows.Close()

	var out []domain.Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, perr.FromPostgres(err, "scan pending entry")
		}
		out = append(out, e)
	}
	return out, perr.FromPostgres(rows.Err(), "iterate pending entries")
}

// ResolvePending is the optimistic single-writer transition: the status
// predicate makes two concurrent resolutions race for one updated row
func (r *queries) ResolvePending(
	ctx context.Context,
	id string,
	status domain.Status,
	reason string,
	moderatorID, contentID *string,
) (domain.Entry, bool, error) {
	const sql = `
		UPDATE moderation_entries
		SET status       = $2,
		    reason       = $3,
		    moderator_id = $4,
		    content_id   = COALESCE($5, content_id),
		    reviewed_at  = NOW()
		WHERE id = $1 AND status = 'pending'
		RETURNING ` + entryCols

	row := r.q.QueryRow(ctx, sql, id, string(status), reason, moderatorID, contentID)
	e, err := scanEntry(row)
	if stderrs.Is(err, pgx.ErrNoRows) {
		return domain.Entry{}, false, nil
	}
	if err != nil {
		return domain.Entry{}, false, perr.FromPostgres(err, "resolve ledger entry")
	}
	return e, true, nil
}

// FlagPending records the AI verdict on an entry still awaiting review
func (r *queries) FlagPending(ctx context.Context, id, reason string) (bool, error) {
	const sql = `
		UPDATE moderation_entries
		SET reason = $2, flagged_by_ai = TRUE
		WHERE id = $1 AND status = 'pending'`
	tag, err := r.q.Exec(ctx, sql, id, reason)
	if err != nil {
		return false, perr.FromPostgres(err, "flag ledger entry")
	}
	return tag.RowsAffected() > 0, nil
}

// AssignContentID links content exactly once; the IS NULL predicate blocks
// double materialization
func (r *queries) AssignContentID(ctx context.Context, id, contentID string) (bool, error) {
	const sql = `
		UPDATE moderation_entries
		SET content_id = $2
		WHERE id = $1 AND content_id IS NULL`
	tag, err := r.q.Exec(ctx, sql, id, contentID)
	if err != nil {
		return false, perr.FromPostgres(err, "assign content id")
	}
	return tag.RowsAffected() > 0, nil
}

func scanEntry(row store.Row) (domain.Entry, error) {
	var (
		e           domain.Entry
		contentType string
		status      string
		snap        []byte
	)
	err := row.Scan(
		&e.ID, &contentType, &e.ContentID, &snap, &e.FlaggedByAI,
		&e.ReporterID, &e.AuthorID, &e.CategoryID, &e.Reason, &status,
		&e.ModeratorID, &e.CreatedAt, &e.ReviewedAt,
	)
	if err != nil {
		return domain.Entry{}, err
	}

	e.ContentType = domain.ContentType(contentType)
	e.Status = domain.Status(status)
	e.Snapshot, err = domain.DecodeSnapshot(snap)
	if err != nil {
		return domain.Entry{}, err
	}
	return e, nil
}
