package service

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"

	"modgate/internal/core/moderate"
	perr "modgate/internal/platform/errors"
	"modgate/internal/platform/logger"
	contentdom "modgate/internal/services/content/domain"
	ledgerdom "modgate/internal/services/ledger/domain"
	notifydom "modgate/internal/services/notify/domain"
	dom "modgate/internal/services/modworker/domain"
)

// handleJob moderates one entry with bounded in-process retries. A job that
// keeps failing is requeued until MaxAttempts, then marked dead; the entry
// itself stays pending so human review still sees it
func (s *Svc) handleJob(ctx context.Context, j dom.Job) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = s.retryBase()
	bo.MaxElapsedTime = 30 * time.Second

	err := backoff.Retry(
		func() error { return s.moderateEntry(ctx, j.EntryID) },
		backoff.WithContext(backoff.WithMaxRetries(bo, 2), ctx),
	)
	if err == nil {
		return s.repo.Complete(ctx, j.ID)
	}

	if j.Attempts+1 >= max(1, s.cfg.MaxAttempts) {
		logger.Named("modworker").Error().Err(err).
			Str("entry_id", j.EntryID).
			Msg("moderation job exhausted, entry left pending for human review")
		return s.repo.MarkDead(ctx, j.ID, err.Error())
	}
	return s.repo.Requeue(ctx, j.ID, err.Error(), s.nextAfter(j.Attempts))
}

// moderateEntry re-reads the current entry each attempt so stale jobs become
// no-ops: a human resolution always wins over the machine
func (s *Svc) moderateEntry(ctx context.Context, entryID string) error {
	entry, err := s.ports.Ledger.Get(ctx, entryID)
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if entry.Status != ledgerdom.StatusPending {
		return nil
	}

	log := logger.C(logger.WithEntry(ctx, entry.ID, entry.AuthorID))
	v := s.ports.Moderator.Moderate(entry.Snapshot.Text())

	if !v.IsSafe {
		// an unsafe verdict only flags; rejection stays a human decision
		if err := s.ports.Ledger.Flag(ctx, entry.ID, v.Reason); err != nil {
			if perr.IsCode(err, perr.ErrorCodeNotFound) {
				return nil
			}
			return err
		}
		s.notify(ctx, notifydom.NotifyArgs{
			RecipientID:    entry.AuthorID,
			Verb:           notifydom.VerbQueued,
			ContentSummary: entry.Snapshot.Text(),
			Description:    queuedDescription(v.Reason),
		})
		log.Info().Str("reason", v.Reason).Msg("entry flagged for human review")
		return nil
	}

	resolved, err := s.ports.Ledger.Resolve(ctx, ledgerdom.ResolveArgs{
		EntryID: entry.ID,
		Status:  ledgerdom.StatusApproved,
		Reason:  "passed automated moderation",
	})
	if perr.IsCode(err, perr.ErrorCodeNotFound) {
		// a moderator resolved the entry between read and update
		return nil
	}
	if err != nil {
		return err
	}

	if contentID, err := s.materialize(ctx, resolved); err != nil {
		// the approval stands; the gap is operator-visible through this log
		log.Error().Err(err).Msg("auto-approved entry failed to materialize")
	} else if contentID != "" {
		resolved.ContentID = &contentID
	}

	s.notify(ctx, notifydom.NotifyArgs{
		RecipientID:    resolved.AuthorID,
		Verb:           notifydom.VerbApproved,
		ContentSummary: resolved.Snapshot.Text(),
		Description:    "your submission passed moderation and is now published",
		TargetURL:      targetURL(resolved),
	})
	log.Info().Msg("entry auto-approved")
	return nil
}

// materialize publishes the approved snapshot. Edits update in place; first
// publishes create and link the content id exactly once
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

	return "", nil
}

func (s *Svc) notify(ctx context.Context, args notifydom.NotifyArgs) {
	if err := s.ports.Notify.Notify(ctx, args); err != nil {
		logger.Named("modworker").Warn().Err(err).Str("verb", args.Verb).Msg("notification failed")
	}
}

// queuedDescription is the user-facing copy; confidence disclosures never
// leave the audit trail
func queuedDescription(reason string) string {
	if r := moderate.Redact(reason); r != "" {
		return "your submission was queued for review: " + r
	}
	return "your submission was queued for review"
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

// nextAfter is a simple exponential with a ~30s cap
func nextAfter(attempt int, base time.Duration) time.Time {
	d := base << uint(attempt)
	if d > 30*time.Second {
		d = 30 * time.Second
	}
	return time.Now().UTC().Add(d)
}

func (s *Svc) nextAfter(attempt int) time.Time {
	return nextAfter(attempt, s.retryBase())
}
