// Package repo provides the Postgres content repository
package repo

import (
	"context"
	stderrs "errors"

	"github.com/jackc/pgx/v5"

	"modgate/internal/modkit/repokit"
	perr "modgate/internal/platform/errors"
	"modgate/internal/services/content/domain"
)

// Repo is the content persistence surface used by the service layer
type Repo interface {
	InsertBlog(ctx context.Context, id string, args domain.BlogArgs) error
	UpdateBlog(ctx context.Context, id string, args domain.BlogArgs) error
	InsertComment(ctx context.Context, id string, args domain.CommentArgs) error
	BlogAuthor(ctx context.Context, id string) (string, error)
	DeleteBlog(ctx context.Context, id string) error
	DeleteComment(ctx context.Context, id string) error
}

type (
	// PG is a Postgres implementation of the content repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// InsertBlog writes a new blog row
func (r *queries) InsertBlog(ctx context.Context, id string, args domain.BlogArgs) error {
	const sql = `
		INSERT INTO blogs (id, author_id, category_id, title, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())`
	_, err := r.q.Exec(ctx, sql, id, args.AuthorID, args.CategoryID, args.Title, args.Body)
	return perr.FromPostgres(err, "insert blog")
}

// UpdateBlog overwrites an existing blog's fields
func (r *queries) UpdateBlog(ctx context.Context, id string, args domain.BlogArgs) error {
	const sql = `
		UPDATE blogs
		SET title = $2, body = $3, category_id = $4, updated_at = NOW()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, sql, id, args.Title, args.Body, args.CategoryID)
	if err != nil {
		return perr.FromPostgres(err, "update blog")
	}
	if tag.RowsAffected() == 0 {
		return perr.NotFoundf("blog %s not found", id)
	}
	return nil
}

// InsertComment writes a new comment row
func (r *queries) InsertComment(ctx context.Context, id string, args domain.CommentArgs) error {
	const sql = `
		INSERT INTO comments (id, blog_id, author_id, parent_id, reply_to_user_id, body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW())`
	_, err := r.q.Exec(ctx, sql, id, args.BlogID, args.AuthorID, args.ParentID, args.ReplyToUserID, args.Body)
	return perr.FromPostgres(err, "insert comment")
}

// BlogAuthor resolves the author of a blog for notification routing
func (r *queries) BlogAuthor(ctx context.Context, id string) (string, error) {
	var author string
	err := r.q.QueryRow(ctx, `SELECT author_id FROM blogs WHERE id = $1`, id).Scan(&author)
	if stderrs.Is(err, pgx.ErrNoRows) {
		return "", perr.NotFoundf("blog %s not found", id)
	}
	if err != nil {
		return "", perr.FromPostgres(err, "blog author")
	}
	return author, nil
}

// DeleteBlog removes a blog and its comments. Idempotent
func (r *queries) DeleteBlog(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM comments WHERE blog_id = $1`, id); err != nil {
		return perr.FromPostgres(err, "delete blog comments")
	}
	_, err := r.q.Exec(ctx, `DELETE FROM blogs WHERE id = $1`, id)
	return perr.FromPostgres(err, "delete blog")
}

// DeleteComment removes a comment and any replies hanging off it. Idempotent
func (r *queries) DeleteComment(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM comments WHERE parent_id = $1`, id); err != nil {
		return perr.FromPostgres(err, "delete comment replies")
	}
	_, err := r.q.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	return perr.FromPostgres(err, "delete comment")
}
