// Package repo provides the Postgres notification repository
package repo

import (
	"context"

	"modgate/internal/modkit/repokit"
	perr "modgate/internal/platform/errors"
	"modgate/internal/services/notify/domain"
)

// Repo is the notification persistence surface
type Repo interface {
	Insert(ctx context.Context, n domain.Notification) error
	List(ctx context.Context, recipientID string, unreadOnly bool) ([]domain.Notification, error)
	MarkRead(ctx context.Context, recipientID, id string) (bool, error)
	MarkAllRead(ctx context.Context, recipientID string) error
	DeleteRead(ctx context.Context, recipientID string) error
}

type (
	// PG is a Postgres implementation of the notification repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// Insert writes one notification
func (r *queries) Insert(ctx context.Context, n domain.Notification) error {
	const sql = `
		INSERT INTO notifications (
			id, recipient_id, actor_id, verb, content_summary,
			description, target_url, read, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, $8)`
	_, err := r.q.Exec(ctx, sql,
		n.ID, n.RecipientID, n.ActorID, n.Verb, n.ContentSummary,
		n.Description, n.TargetURL, n.CreatedAt,
	)
	return perr.FromPostgres(err, "insert notification")
}

// List returns a recipient's notifications newest-first
func (r *queries) List(ctx context.Context, recipientID string, unreadOnly bool) ([]domain.Notification, error) {
	const sql = `
		SELECT id, recipient_id, actor_id, verb, content_summary,
		       description, target_url, read, created_at
		FROM notifications
		WHERE recipient_id = $1 AND ($2 = FALSE OR read = FALSE)
		ORDER BY created_at DESC`

	rows, err := r.q.Query(ctx, sql, recipientID, unreadOnly)
	if err != nil {
		return nil, perr.FromPostgres(err, "list notifications")
	}
	defer rows.Close()

	var out []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(
			&n.ID, &n.RecipientID, &n.ActorID, &n.Verb, &n.ContentSummary,
			&n.Description, &n.TargetURL, &n.Read, &n.CreatedAt,
		); err != nil {
			return nil, perr.FromPostgres(err, "scan notification")
		}
		out = append(out, n)
	}
	return out, perr.FromPostgres(rows.Err(), "iterate notifications")
}

// MarkRead flips one notification, scoped to its recipient
func (r *queries) MarkRead(ctx context.Context, recipientID, id string) (bool, error) {
	tag, err := r.q.Exec(ctx,
		`UPDATE notifications SET read = TRUE WHERE id = $1 AND recipient_id = $2`, id, recipientID)
	if err != nil {
		return false, perr.FromPostgres(err, "mark notification read")
	}
	return tag.RowsAffected() > 0, nil
}

// MarkAllRead flips every unread notification for the recipient
func (r *queries) MarkAllRead(ctx context.Context, recipientID string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE notifications SET read = TRUE WHERE recipient_id = $1 AND read = FALSE`, recipientID)
	return perr.FromPostgres(err, "mark all notifications read")
}

// DeleteRead clears already-read notifications for the recipient
func (r *queries) DeleteRead(ctx context.Context, recipientID string) error {
	_, err := r.q.Exec(ctx,
		`DELETE FROM notifications WHERE recipient_id = $1 AND read = TRUE`, recipientID)
	return perr.FromPostgres(err, "delete read notifications")
}
