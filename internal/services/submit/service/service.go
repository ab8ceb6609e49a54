// Package service implements the submission intake. Blogs go through the
// async pipeline; comments are checked synchronously so clean ones publish
// without a queue round trip
package service

import (
	"context"

	"modgate/internal/core/moderate"
	"modgate/internal/modkit"
	perr "modgate/internal/platform/errors"
	"modgate/internal/platform/logger"
	"modgate/internal/platform/validate"
	contentdom "modgate/internal/services/content/domain"
	ledgerdom "modgate/internal/services/ledger/domain"
	notifydom "modgate/internal/services/notify/domain"
	"modgate/internal/services/submit/domain"
)

// Svc implements domain.SubmitPort
type Svc struct {
	ports domain.Ports
	deps  modkit.Deps
}

// New constructs the service
func New(deps modkit.Deps, ports domain.Ports) *Svc {
	return &Svc{ports: ports, deps: deps}
}

var _ domain.SubmitPort = (*Svc)(nil)

// SubmitBlog opens a pending entry with the full snapshot and enqueues it
// for asynchronous moderation. The post is not live until approval
func (s *Svc) SubmitBlog(ctx context.Context, args domain.SubmitBlogArgs) (domain.Receipt, error) {
	if err := validate.Struct(args); err != nil {
		return domain.Receipt{}, err
	}
	return s.queueBlog(ctx, nil, args.AuthorID, args.Title, args.Body, args.CategoryID)
}

// EditBlog queues a revision. The entry carries the existing blog id so an
// approval updates the live post in place
func (s *Svc) EditBlog(ctx context.Context, args domain.EditBlogArgs) (domain.Receipt, error) {
	if err := validate.Struct(args); err != nil {
		return domain.Receipt{}, err
	}
	return s.queueBlog(ctx, &args.BlogID, args.AuthorID, args.Title, args.Body, args.CategoryID)
}

func (s *Svc) queueBlog(
	ctx context.Context,
	blogID *string,
	authorID, title, body string,
	categoryID *string,
) (domain.Receipt, error) {
	entry, err := s.ports.Ledger.Create(ctx, ledgerdom.CreateArgs{
		ContentType: ledgerdom.ContentBlog,
		ContentID:   blogID,
		Snapshot: ledgerdom.Snapshot{
			Kind: ledgerdom.SnapshotBlog,
			Blog: &ledgerdom.BlogSnapshot{Title: title, Body: body, CategoryID: categoryID},
		},
		AuthorID:   authorID,
		CategoryID: categoryID,
		Reason:     "queued for moderation",
	})
	if err != nil {
		return domain.Receipt{}, err
	}

	if err := s.ports.Jobs.Enqueue(ctx, entry.ID); err != nil {
		// the entry is already visible to human review, so intake still
		// succeeded; the queue gap is operator-visible through this log
		logger.C(logger.WithEntry(ctx, entry.ID, authorID)).
			Error().Err(err).Msg("moderation job enqueue failed")
	}
	return domain.Receipt{EntryID: entry.ID, Status: entry.Status}, nil
}

// SubmitComment runs the full pipeline inline. A clean comment publishes
// immediately; a flagged one becomes a pending entry and the author gets a
// redacted verdict
func (s *Svc) SubmitComment(ctx context.Context, args domain.SubmitCommentArgs) (domain.CommentResult, error) {
	if err := validate.Struct(args); err != nil {
		return domain.CommentResult{}, err
	}

	v := s.ports.Moderator.Moderate(args.Body)
	if !v.IsSafe {
		entry, err := s.ports.Ledger.Create(ctx, ledgerdom.CreateArgs{
			ContentType: ledgerdom.ContentComment,
			Snapshot: ledgerdom.Snapshot{
				Kind: ledgerdom.SnapshotComment,
				Comment: &ledgerdom.CommentSnapshot{
					BlogID:        args.BlogID,
					ParentID:      args.ParentID,
					ReplyToUserID: args.ReplyToUserID,
					Body:          args.Body,
				},
			},
			FlaggedByAI: true,
			AuthorID:    args.AuthorID,
			Reason:      v.Reason,
		})
		if err != nil {
			return domain.CommentResult{}, err
		}

		userReason := moderate.Redact(v.Reason)
		desc := "your comment was queued for review"
		if userReason != "" {
			desc += ": " + userReason
		}
		s.notify(ctx, notifydom.NotifyArgs{
			RecipientID:    args.AuthorID,
			Verb:           notifydom.VerbQueued,
			ContentSummary: args.Body,
			Description:    desc,
		})
		logger.C(logger.WithEntry(ctx, entry.ID, args.AuthorID)).
			Info().Str("reason", v.Reason).Msg("comment queued for review")

		return domain.CommentResult{
			EntryID: entry.ID,
			Verdict: moderate.Unsafe(userReason),
		}, nil
	}

	id, err := s.ports.Content.CreateComment(ctx, contentdom.CommentArgs{
		BlogID:        args.BlogID,
		AuthorID:      args.AuthorID,
		ParentID:      args.ParentID,
		ReplyToUserID: args.ReplyToUserID,
		Body:          args.Body,
	})
	if err != nil {
		return domain.CommentResult{}, err
	}

	s.notifyCommented(ctx, args, id)
	return domain.CommentResult{CommentID: id, Verdict: moderate.Safe()}, nil
}

// Report opens a pending entry referencing live content. No snapshot: the
// content already exists and the entry only tracks the complaint
func (s *Svc) Report(ctx context.Context, args domain.ReportArgs) (domain.Receipt, error) {
	if err := validate.Struct(args); err != nil {
		return domain.Receipt{}, err
	}

	entry, err := s.ports.Ledger.Create(ctx, ledgerdom.CreateArgs{
		ContentType: args.ContentType,
		ContentID:   &args.ContentID,
		ReporterID:  &args.ReporterID,
		AuthorID:    args.AuthorID,
		Reason:      "reported: " + args.Reason,
	})
	if err != nil {
		return domain.Receipt{}, err
	}
	logger.C(logger.WithEntry(ctx, entry.ID, args.AuthorID)).
		Info().Str("reporter_id", args.ReporterID).Msg("content reported")
	return domain.Receipt{EntryID: entry.ID, Status: entry.Status}, nil
}

// notifyCommented tells the blog author (or the reply target) about a new
// published comment
func (s *Svc) notifyCommented(ctx context.Context, args domain.SubmitCommentArgs, commentID string) {
	recipient := ""
	if args.ReplyToUserID != nil {
		recipient = *args.ReplyToUserID
	} else if s.ports.Reader != nil {
		owner, err := s.ports.Reader.BlogAuthor(ctx, args.BlogID)
		if err != nil {
			if !perr.IsCode(err, perr.ErrorCodeNotFound) {
				logger.Named("submit").Warn().Err(err).Str("blog_id", args.BlogID).Msg("blog author lookup failed")
			}
			return
		}
		recipient = owner
	}
	if recipient == "" || recipient == args.AuthorID {
		return
	}

	s.notify(ctx, notifydom.NotifyArgs{
		RecipientID:    recipient,
		ActorID:        &args.AuthorID,
		Verb:           notifydom.VerbCommented,
		ContentSummary: args.Body,
		TargetURL:      "/comments/" + commentID,
	})
}

func (s *Svc) notify(ctx context.Context, args notifydom.NotifyArgs) {
	if err := s.ports.Notify.Notify(ctx, args); err != nil {
		logger.Named("submit").Warn().Err(err).Str("verb", args.Verb).Msg("notification failed")
	}
}
