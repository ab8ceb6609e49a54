// Package service implements the human review workflow: the only place a
// ledger entry can become rejected, and the place queued snapshots become
// real content
package service

import (
	"context"
	"fmt"

	"modgate/internal/core/moderate"
	"modgate/internal/modkit"
	perr "modgate/internal/platform/errors"
	"modgate/internal/platform/logger"
	"modgate/internal/platform/validate"
	contentdom "modgate/internal/services/content/domain"
	ledgerdom "modgate/internal/services/ledger/domain"
	notifydom "modgate/internal/services/notify/domain"
	"modgate/internal/services/review/domain"
)

// Svc implements domain.ReviewPort
type Svc struct {
	ports domain.Ports
	deps  modkit.Deps
}

// New constructs the service
func New(deps modkit.Deps, ports domain.Ports) *Svc {
	return &Svc{ports: ports, deps: deps}
}

var _ domain.ReviewPort = (*Svc)(nil)

// Approve resolves a pending entry in the author's favor. The ledger's
// pending gate runs first, so of two concurrent resolutions only the winner
// materializes content or sends notifications
func (s *Svc) Approve(ctx context.Context, args domain.ApproveArgs) (ledgerdom.Entry, error) {
	if err := validate.Struct(args); err != nil {
		return ledgerdom.Entry{}, err
	}

	entry, err := s.ports.Ledger.Get(ctx, args.EntryID)
	if err != nil {
		return ledgerdom.Entry{}, err
	}

	resolved, err := s.ports.Ledger.Resolve(ctx, ledgerdom.ResolveArgs{
		EntryID:     args.EntryID,
		Status:      ledgerdom.StatusApproved,
		Reason:      entry.Reason,
		ModeratorID: &args.ModeratorID,
	})
	if err != nil {
		return ledgerdom.Entry{}, err
	}

	log := logger.C(logger.WithEntry(ctx, resolved.ID, resolved.AuthorID))

	if resolved.ReporterID != nil {
		// reported content already exists; tell the reporter nothing was found
		s.notify(ctx, notifydom.NotifyArgs{
			RecipientID:    *resolved.ReporterID,
			Verb:           notifydom.VerbReportDismissed,
			ContentSummary: resolved.Snapshot.Text(),
			Description:    "no violation was found in the content you reported",
			TargetURL:      targetURL(resolved),
		})
	} else {
		contentID, err := s.materialize(ctx, resolved)
		if err != nil {
			log.Error().Err(err).Msg("approved entry failed to materialize")
			return resolved, perr.Wrap(err, perr.ErrorCodeDB, "materialize approved content")
		}
		if contentID != "" {
			resolved.ContentID = &contentID
		}
	}

	s.notify(ctx, notifydom.NotifyArgs{
		RecipientID:    resolved.AuthorID,
		ActorID:        &args.ModeratorID,
		Verb:           notifydom.VerbApproved,
		ContentSummary: resolved.Snapshot.Text(),
		Description:    "your submission passed review and is now published",
		TargetURL:      targetURL(resolved),
	})

	log.Info().Msg("entry approved")
	return resolved, nil
}

// Reject resolves a pending entry against the author. The stored audit
// reason keeps the AI/report origin; the notification carries a redacted
// copy so confidence scores never reach users
func (s *Svc) Reject(ctx context.Context, args domain.RejectArgs) (ledgerdom.Entry, error) {
	if err := validate.Struct(args); err != nil {
		return ledgerdom.Entry{}, err
	}

	entry, err := s.ports.Ledger.Get(ctx, args.EntryID)
	if err != nil {
		return ledgerdom.Entry{}, err
	}

	auditReason := composeReason(args.Reason, entry.Reason)
	resolved, err := s.ports.Ledger.Resolve(ctx, ledgerdom.ResolveArgs{
		EntryID:     args.EntryID,
		Status:      ledgerdom.StatusRejected,
		Reason:      auditReason,
		ModeratorID: &args.ModeratorID,
	})
	if err != nil {
		return ledgerdom.Entry{}, err
	}

	log := logger.C(logger.WithEntry(ctx, resolved.ID, resolved.AuthorID))
	userReason := moderate.Redact(auditReason)

	if resolved.ReporterID != nil && resolved.ContentID != nil {
		if err := s.ports.Content.Delete(ctx, deleteKind(resolved.ContentType), *resolved.ContentID); err != nil {
			log.Error().Err(err).Str("content_id", *resolved.ContentID).Msg("reported content delete failed")
		}
		s.notify(ctx, notifydom.NotifyArgs{
			RecipientID:    *resolved.ReporterID,
			Verb:           notifydom.VerbReportUpheld,
			ContentSummary: resolved.Snapshot.Text(),
			Description:    "the content you reported was removed",
		})
	}

	s.notify(ctx, notifydom.NotifyArgs{
		RecipientID:    resolved.AuthorID,
		ActorID:        &args.ModeratorID,
		Verb:           notifydom.VerbRejected,
		ContentSummary: resolved.Snapshot.Text(),
		Description:    userReason,
	})

	log.Info().Msg("entry rejected")
	return resolved, nil
}

// materialize turns the approved snapshot into real content. Edits update in
// place; first-time publishes create and link the new id exactly once
func (s *Svc) materialize(ctx context.Context, e ledgerdom.Entry) (string, error) {
	switch e.Snapshot.Kind {
	case ledgerdom.SnapshotBlog:
		args := contentdom.BlogArgs{
			AuthorID:   e.AuthorID,
			Title:      e.Snapshot.Blog.Title,
			Body:       e.Snapshot.Blog.Body,
			CategoryID: e.Snapshot.Blog.CategoryID,
		}
		if e.ContentID != nil {
			return "", s.ports.Content.UpdateBlog(ctx, *e.ContentID, args)
		}
		id, err := s.ports.Content.CreateBlog(ctx, args)
		if err != nil {
			return "", err
		}
		return id, s.ports.Ledger.AssignContentID(ctx, e.ID, id)

	case ledgerdom.SnapshotComment:
		id, err := s.ports.Content.CreateComment(ctx, contentdom.CommentArgs{
			BlogID:        e.Snapshot.Comment.BlogID,
			AuthorID:      e.AuthorID,
			ParentID:      e.Snapshot.Comment.ParentID,
			ReplyToUserID: e.Snapshot.Comment.ReplyToUserID,
			Body:          e.Snapshot.Comment.Body,
		})
		if err != nil {
			return "", err
		}
		return id, s.ports.Ledger.AssignContentID(ctx, e.ID, id)
	}

	// nothing queued to materialize
	return "", nil
}

func (s *Svc) notify(ctx context.Context, args notifydom.NotifyArgs) {
	if err := s.ports.Notify.Notify(ctx, args); err != nil {
		logger.Named("review").Warn().Err(err).Str("verb", args.Verb).Msg("notification failed")
	}
}

// composeReason prefixes the moderator's reason so the AI/report origin
// stays reconstructable for audit
func composeReason(moderatorReason, original string) string {
	if moderatorReason == "" {
		return original
	}
	if original == "" {
		return moderatorReason
	}
	return fmt.Sprintf("%s (original: %s)", moderatorReason, original)
}

func deleteKind(ct ledgerdom.ContentType) contentdom.Kind {
	if ct == ledgerdom.ContentComment {
		return contentdom.KindComment
	}
	return contentdom.KindBlog
}

func targetURL(e ledgerdom.Entry) string {
	if e.ContentID == nil {
		return ""
	}
	switch e.ContentType {
	case ledgerdom.ContentComment:
		return "/comments/" + *e.ContentID
	default:
		return "/blogs/" + *e.ContentID
	}
}
