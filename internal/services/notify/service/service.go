// Package service implements notification fan-in for moderation outcomes
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"modgate/internal/modkit"
	"modgate/internal/modkit/repokit"
	perr "modgate/internal/platform/errors"
	pstrings "modgate/internal/platform/strings"
	"modgate/internal/platform/validate"
	"modgate/internal/services/notify/domain"
	nrepo "modgate/internal/services/notify/repo"
)

// summaries are previews, not transcripts
const summaryRunes = 120

// Svc implements the notifier and inbox ports
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[nrepo.Repo]
	repo   nrepo.Repo
}

// New constructs the service
func New(deps modkit.Deps) *Svc {
	b := nrepo.NewPG()
	return &Svc{
		db:     deps.PG,
		binder: b,
		repo:   b.Bind(deps.PG),
	}
}

var (
	_ domain.NotifierPort = (*Svc)(nil)
	_ domain.InboxPort    = (*Svc)(nil)
)

// Notify records one notification for a recipient
func (s *Svc) Notify(ctx context.Context, args domain.NotifyArgs) error {
	if err := validate.Struct(args); err != nil {
		return err
	}

	return s.repo.Insert(ctx, domain.Notification{
		ID:             uuid.NewString(),
		RecipientID:    args.RecipientID,
		ActorID:        args.ActorID,
		Verb:           args.Verb,
		ContentSummary: pstrings.Truncate(args.ContentSummary, summaryRunes),
		Description:    args.Description,
		TargetURL:      args.TargetURL,
		CreatedAt:      time.Now().UTC(),
	})
}

// List returns the recipient's notifications, optionally unread only
func (s *Svc) List(ctx context.Context, recipientID string, unreadOnly bool) ([]domain.Notification, error) {
	if recipientID == "" {
		return nil, perr.InvalidArgf("recipient id required")
	}
	return s.repo.List(ctx, recipientID, unreadOnly)
}

// MarkRead flips a single notification
func (s *Svc) MarkRead(ctx context.Context, recipientID, id string) error {
	if recipientID == "" || id == "" {
		return perr.InvalidArgf("recipient id and notification id required")
	}
	ok, err := s.repo.MarkRead(ctx, recipientID, id)
	if err != nil {
		return err
	}
	if !ok {
		return perr.NotFoundf("notification %s not found for recipient", id)
	}
	return nil
}

// MarkAllRead flips every unread notification for the recipient
func (s *Svc) MarkAllRead(ctx context.Context, recipientID string) error {
	if recipientID == "" {
		return perr.InvalidArgf("recipient id required")
	}
	return s.repo.MarkAllRead(ctx, recipientID)
}

// DeleteRead clears read notifications for the recipient
func (s *Svc) DeleteRead(ctx context.Context, recipientID string) error {
	if recipientID == "" {
		return perr.InvalidArgf("recipient id required")
	}
	return s.repo.DeleteRead(ctx, recipientID)
}
