// Package service implements the moderation ledger state machine
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"modgate/internal/modkit"
	"modgate/internal/modkit/repokit"
	perr "modgate/internal/platform/errors"
	"modgate/internal/platform/logger"
	"modgate/internal/platform/validate"
	"modgate/internal/services/ledger/domain"
	lrepo "modgate/internal/services/ledger/repo"
)

const defaultPageLimit = 50

// Svc implements domain.LedgerPort over Postgres
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[lrepo.Repo]
	repo   lrepo.Repo
}

// New constructs the service
func New(deps modkit.Deps) *Svc {
	b := lrepo.NewPG()
	return &Svc{
		db:     deps.PG,
		binder: b,
		repo:   b.Bind(deps.PG),
	}
}

var _ domain.LedgerPort = (*Svc)(nil)

// Create opens a new pending entry around an immutable snapshot
func (s *Svc) Create(ctx context.Context, args domain.CreateArgs) (domain.Entry, error) {
	if err := validate.Struct(args); err != nil {
		return domain.Entry{}, err
	}
	if err := args.Snapshot.Validate(); err != nil {
		return domain.Entry{}, err
	}

	e := domain.Entry{
		ID:          uuid.NewString(),
		ContentType: args.ContentType,
		ContentID:   args.ContentID,
		Snapshot:    args.Snapshot,
		FlaggedByAI: args.FlaggedByAI,
		ReporterID:  args.ReporterID,
		AuthorID:    args.AuthorID,
		CategoryID:  args.CategoryID,
		Reason:      args.Reason,
		Status:      domain.StatusPending,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Insert(ctx, e); err != nil {
		return domain.Entry{}, err
	}

	logger.C(logger.WithEntry(ctx, e.ID, e.AuthorID)).Info().
		Str("content_type", string(e.ContentType)).
		Bool("flagged_by_ai", e.FlaggedByAI).
		Msg("ledger entry created")
	return e, nil
}

// Get fetches one entry by id
func (s *Svc) Get(ctx context.Context, id string) (domain.Entry, error) {
	if id == "" {
		return domain.Entry{}, perr.InvalidArgf("entry id required")
	}
	return s.repo.Get(ctx, id)
}

// ListPending returns the review queue, oldest first
func (s *Svc) ListPending(ctx context.Context, page domain.PageArgs) ([]domain.Entry, error) {
	limit := page.Limit
	if limit <= 0 || limit > 200 {
		limit = defaultPageLimit
	}
	return s.repo.ListPending(ctx, limit, page.Before)
}

// Resolve performs the single terminal transition for an entry.
// The status = pending predicate in the repo is the optimistic lock: of two
// concurrent resolutions exactly one updates a row, the other gets NotFound
func (s *Svc) Resolve(ctx context.Context, args domain.ResolveArgs) (domain.Entry, error) {
	if err := validate.Struct(args); err != nil {
		return domain.Entry{}, err
	}

	e, ok, err := s.repo.ResolvePending(ctx, args.EntryID, args.Status, args.Reason, args.ModeratorID, args.ContentID)
	if err != nil {
		return domain.Entry{}, err
	}
	if !ok {
		return domain.Entry{}, perr.NotFoundf("ledger entry %s not found in pending state", args.EntryID)
	}

	logger.C(logger.WithEntry(ctx, e.ID, e.AuthorID)).Info().
		Str("status", string(e.Status)).
		Msg("ledger entry resolved")
	return e, nil
}

// Flag records an AI verdict on a still-pending entry
func (s *Svc) Flag(ctx context.Context, entryID, reason string) error {
	if entryID == "" {
		return perr.InvalidArgf("entry id required")
	}
	ok, err := s.repo.FlagPending(ctx, entryID, reason)
	if err != nil {
		return err
	}
	if !ok {
		return perr.NotFoundf("ledger entry %s not found in pending state", entryID)
	}
	return nil
}

// AssignContentID links materialized content to an entry, at most once
func (s *Svc) AssignContentID(ctx context.Context, entryID, contentID string) error {
	if entryID == "" || contentID == "" {
		return perr.InvalidArgf("entry id and content id required")
	}
	ok, err := s.repo.AssignContentID(ctx, entryID, contentID)
	if err != nil {
		return err
	}
	if !ok {
		return perr.Conflictf("ledger entry %s already carries a content id", entryID)
	}
	return nil
}
