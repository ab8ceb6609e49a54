// Package domain defines the content materialization types and ports
package domain

import "context"

// BlogArgs carries the fields needed to create or update a blog post
type BlogArgs struct {
	AuthorID   string `validate:"required"`
	Title      string `validate:"required"`
	Body       string `validate:"required"`
	CategoryID *string
}

// CommentArgs carries the fields needed to create a comment
type CommentArgs struct {
	BlogID        string `validate:"required"`
	AuthorID      string `validate:"required"`
	ParentID      *string
	ReplyToUserID *string
	Body          string `validate:"required"`
}

// Kind mirrors the ledger content types for delete routing
type Kind string

// Deletable content kinds
const (
	KindBlog    Kind = "blog"
	KindComment Kind = "comment"
)

// WriterPort materializes approved submissions and removes reported content
type WriterPort interface {
	CreateBlog(ctx context.Context, args BlogArgs) (string, error)
	UpdateBlog(ctx context.Context, blogID string, args BlogArgs) error
	CreateComment(ctx context.Context, args CommentArgs) (string, error)

	// Delete removes content upheld as violating. Missing content is a no-op:
	// the ledger keeps its history either way
	Delete(ctx context.Context, kind Kind, id string) error
}

// ReaderPort answers the lookups collaborators need for notification routing
type ReaderPort interface {
	BlogAuthor(ctx context.Context, blogID string) (string, error)
}
