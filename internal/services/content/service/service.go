// Package service implements content materialization for approved submissions
package service

import (
	"context"

	"github.com/google/uuid"

	"modgate/internal/modkit"
	"modgate/internal/modkit/repokit"
	perr "modgate/internal/platform/errors"
	"modgate/internal/platform/logger"
	"modgate/internal/platform/validate"
	"modgate/internal/services/content/domain"
	crepo "modgate/internal/services/content/repo"
)

// Svc implements the content writer and reader ports
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[crepo.Repo]
	repo   crepo.Repo
}

// New constructs the service
func New(deps modkit.Deps) *Svc {
	b := crepo.NewPG()
	return &Svc{
		db:     deps.PG,
		binder: b,
		repo:   b.Bind(deps.PG),
	}
}

var (
	_ domain.WriterPort = (*Svc)(nil)
	_ domain.ReaderPort = (*Svc)(nil)
)

// CreateBlog materializes a new blog post and returns its id
func (s *Svc) CreateBlog(ctx context.Context, args domain.BlogArgs) (string, error) {
	if err := validate.Struct(args); err != nil {
		return "", err
	}
	id := uuid.NewString()
	if err := s.repo.InsertBlog(ctx, id, args); err != nil {
		return "", err
	}
	logger.Named("content").Debug().Str("blog_id", id).Msg("blog materialized")
	return id, nil
}

// UpdateBlog overwrites an existing blog with the approved edit
func (s *Svc) UpdateBlog(ctx context.Context, blogID string, args domain.BlogArgs) error {
	if blogID == "" {
		return perr.InvalidArgf("blog id required")
	}
	if err := validate.Struct(args); err != nil {
		return err
	}
	return s.repo.UpdateBlog(ctx, blogID, args)
}

// CreateComment materializes a comment and returns its id
func (s *Svc) CreateComment(ctx context.Context, args domain.CommentArgs) (string, error) {
	if err := validate.Struct(args); err != nil {
		return "", err
	}
	id := uuid.NewString()
	if err := s.repo.InsertComment(ctx, id, args); err != nil {
		return "", err
	}
	return id, nil
}

// BlogAuthor resolves a blog's author for notification routing
func (s *Svc) BlogAuthor(ctx context.Context, blogID string) (string, error) {
	if blogID == "" {
		return "", perr.InvalidArgf("blog id required")
	}
	return s.repo.BlogAuthor(ctx, blogID)
}

// Delete removes reported content after an upheld report
func (s *Svc) Delete(ctx context.Context, kind domain.Kind, id string) error {
	if id == "" {
		return perr.InvalidArgf("content id required")
	}
	switch kind {
	case domain.KindBlog:
		return s.repo.DeleteBlog(ctx, id)
	case domain.KindComment:
		return s.repo.DeleteComment(ctx, id)
	default:
		return perr.InvalidArgf("unknown content kind %q", kind)
	}
}
