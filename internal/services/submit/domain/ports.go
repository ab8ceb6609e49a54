// Package domain defines the submission intake types and ports
package domain

import (
	"context"

	"modgate/internal/core/moderate"
	ledgerdom "modgate/internal/services/ledger/domain"
)

// SubmitBlogArgs queues a new blog post for moderation
type SubmitBlogArgs struct {
	AuthorID   string `json:"author_id" validate:"required"`
	Title      string `json:"title" validate:"required,max=200"`
	Body       string `json:"body" validate:"required"`
	CategoryID *string
}

// EditBlogArgs queues a revision of an existing blog post. The live post
// stays untouched until the revision is approved
type EditBlogArgs struct {
	BlogID     string `json:"blog_id" validate:"required"`
	AuthorID   string `json:"author_id" validate:"required"`
	Title      string `json:"title" validate:"required,max=200"`
	Body       string `json:"body" validate:"required"`
	CategoryID *string
}

// SubmitCommentArgs checks and, when clean, immediately publishes a comment
type SubmitCommentArgs struct {
	BlogID        string `json:"blog_id" validate:"required"`
	AuthorID      string `json:"author_id" validate:"required"`
	ParentID      *string
	ReplyToUserID *string
	Body          string `json:"body" validate:"required,max=2000"`
}

// ReportArgs files a user report against live content
type ReportArgs struct {
	ContentType ledgerdom.ContentType `json:"content_type" validate:"required,oneof=blog comment"`
	ContentID   string                `json:"content_id" validate:"required"`
	ReporterID  string                `json:"reporter_id" validate:"required"`
	AuthorID    string                `json:"author_id" validate:"required"`
	Reason      string                `json:"reason" validate:"required,max=500"`
}

// Receipt acknowledges an asynchronous submission
type Receipt struct {
	EntryID string
	Status  ledgerdom.Status
}

// CommentResult is the synchronous comment outcome. A clean comment carries
// its published CommentID; a flagged one carries the pending EntryID and a
// redacted verdict
type CommentResult struct {
	CommentID string
	EntryID   string
	Verdict   moderate.Verdict
}

// SubmitPort is the author-facing intake surface
type SubmitPort interface {
	SubmitBlog(ctx context.Context, args SubmitBlogArgs) (Receipt, error)
	EditBlog(ctx context.Context, args EditBlogArgs) (Receipt, error)
	SubmitComment(ctx context.Context, args SubmitCommentArgs) (CommentResult, error)
	Report(ctx context.Context, args ReportArgs) (Receipt, error)
}
