// Package domain defines notification types and ports
package domain

import (
	"context"
	"time"
)

// Verbs emitted by the moderation flows
const (
	VerbApproved        = "moderation.approved"
	VerbRejected        = "moderation.rejected"
	VerbQueued          = "moderation.queued"
	VerbCommented       = "comment.created"
	VerbReportUpheld    = "report.upheld"
	VerbReportDismissed = "report.dismissed"
)

// Notification is the record handed to the collaborating UI
type Notification struct {
	ID             string
	RecipientID    string
	ActorID        *string
	Verb           string
	ContentSummary string
	Description    string
	TargetURL      string
	Read           bool
	CreatedAt      time.Time
}

// NotifyArgs creates one notification
type NotifyArgs struct {
	RecipientID    string `validate:"required"`
	ActorID        *string
	Verb           string `validate:"required"`
	ContentSummary string
	Description    string
	TargetURL      string
}

// NotifierPort is the write side used by moderation flows
type NotifierPort interface {
	Notify(ctx context.Context, args NotifyArgs) error
}

// InboxPort is the read/maintenance side supplementing the UI
type InboxPort interface {
	List(ctx context.Context, recipientID string, unreadOnly bool) ([]Notification, error)
	MarkRead(ctx context.Context, recipientID, id string) error
	MarkAllRead(ctx context.Context, recipientID string) error
	DeleteRead(ctx context.Context, recipientID string) error
}
