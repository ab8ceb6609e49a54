// Package repo provides the Postgres moderation job queue
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"

	"modgate/internal/modkit/repokit"
	perr "modgate/internal/platform/errors"
	"modgate/internal/services/modworker/domain"
)

// Repo is the job queue persistence surface
type Repo interface {
	// Enqueue idempotently creates (or revives) the job for an entry
	Enqueue(ctx context.Context, entryID string) error

	// LeaseDue leases up to limit due jobs for leaseFor
	LeaseDue(ctx context.Context, workerID string, limit int, leaseFor time.Duration) ([]domain.Job, error)

	Complete(ctx context.Context, jobID string) error
	Requeue(ctx context.Context, jobID, lastErr string, nextAttemptAt time.Time) error
	MarkDead(ctx context.Context, jobID, lastErr string) error
}

type (
	// PG is a Postgres implementation of the job queue repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// Enqueue is safe to call twice for the same entry; a done or dead job is
// revived so re-submitted edits get re-checked
func (r *queries) Enqueue(ctx context.Context, entryID string) error {
	const sql = `
		INSERT INTO moderation_jobs (id, entry_id, state, next_attempt_at)
		VALUES ($1, $2, 'queued', now())
		ON CONFLICT (entry_id)
		DO UPDATE SET state = 'queued', attempts = 0, last_error = NULL,
		              next_attempt_at = now(), leased_by = NULL,
		              lease_expires_at = NULL, updated_at = now()`
	_, err := r.q.Exec(ctx, sql, uuid.NewString(), entryID)
	return perr.FromPostgres(err, "enqueue moderation job")
}

// LeaseDue takes due queued jobs with SKIP LOCKED so concurrent workers never
// double-lease
func (r *queries) LeaseDue(
	ctx context.Context,
	workerID string,
	limit int,
	leaseFor time.Duration,
) ([]domain.Job, error) {
	if workerID == "" {
		workerID = uuid.NewString()
	}
	const sql = `
		WITH ready AS (
			SELECT id
			  FROM moderation_jobs
			 WHERE state = 'queued'
			   AND next_attempt_at <= now()
			   AND (lease_expires_at IS NULL OR lease_expires_at <= now())
			 ORDER BY next_attempt_at ASC
			 LIMIT $1
			 FOR UPDATE SKIP LOCKED
		), upd AS (
			UPDATE moderation_jobs j
			   SET leased_by = $2,
			       lease_expires_at = now() + $3::interval,
			       updated_at = now()
			 WHERE j.id IN (SELECT id FROM ready)
			RETURNING j.*
		)
		SELECT id::text, entry_id::text, attempts, state, last_error,
		       next_attempt_at, COALESCE(lease_expires_at, now()),
		       COALESCE(leased_by, $2), created_at, updated_at
		  FROM upd`

	rows, err := r.q.Query(ctx, sql, limit, workerID, leaseFor.String())
	if err != nil {
		return nil, perr.FromPostgres(err, "lease moderation jobs")
	}
	defer rows.Close()

	var out []domain.Job
	for rows.Next() {
		var (
			j     domain.Job
			state string
		)
		if err := rows.Scan(
			&j.ID, &j.EntryID, &j.Attempts, &state, &j.LastError,
			&j.NextAttemptAt, &j.LeaseExpires, &j.LeasedBy, &j.CreatedAt, &j.UpdatedAt,
		); err != nil {
			return nil, perr.FromPostgres(err, "scan moderation job")
		}
		j.State = domain.State(state)
		out = append(out, j)
	}
	return out, perr.FromPostgres(rows.Err(), "iterate moderation jobs")
}

// Complete marks a job done and releases the lease
func (r *queries) Complete(ctx context.Context, jobID string) error {
	const sql = `
		UPDATE moderation_jobs
		   SET state = 'done', leased_by = NULL, lease_expires_at = NULL, updated_at = now()
		 WHERE id = $1`
	_, err := r.q.Exec(ctx, sql, jobID)
	return perr.FromPostgres(err, "complete moderation job")
}

// Requeue re-schedules a failed job and clears the lease
func (r *queries) Requeue(ctx context.Context, jobID, lastErr string, nextAttemptAt time.Time) error {
	const sql = `
		UPDATE moderation_jobs
		   SET attempts = attempts + 1,
		       last_error = NULLIF($2, ''),
		       next_attempt_at = $3,
		       leased_by = NULL,
		       lease_expires_at = NULL,
		       updated_at = now()
		 WHERE id = $1`
	_, err := r.q.Exec(ctx, sql, jobID, lastErr, nextAttemptAt)
	return perr.FromPostgres(err, "requeue moderation job")
}

// MarkDead retires an exhausted job. The ledger entry is untouched and stays
// in the pending review queue
func (r *queries) MarkDead(ctx context.Context, jobID, lastErr string) error {
	const sql = `
		UPDATE moderation_jobs
		   SET state = 'dead',
		       attempts = attempts + 1,
		       last_error = NULLIF($2, ''),
		       leased_by = NULL,
		       lease_expires_at = NULL,
		       updated_at = now()
		 WHERE id = $1`
	_, err := r.q.Exec(ctx, sql, jobID, lastErr)
	return perr.FromPostgres(err, "mark moderation job dead")
}
