// Package domain defines the human review workflow ports
package domain

import (
	"context"

	contentdom "modgate/internal/services/content/domain"
	ledgerdom "modgate/internal/services/ledger/domain"
	notifydom "modgate/internal/services/notify/domain"
)

// ApproveArgs resolves an entry in the author's favor
type ApproveArgs struct {
	EntryID     string `json:"entry_id" validate:"required,uuid"`
	ModeratorID string `json:"moderator_id" validate:"required"`
}

// RejectArgs resolves an entry against the author. Reason is optional; the
// entry's existing AI/report reason is used when empty
type RejectArgs struct {
	EntryID     string `json:"entry_id" validate:"required,uuid"`
	ModeratorID string `json:"moderator_id" validate:"required"`
	Reason      string
}

// ReviewPort is the moderator-facing surface
type ReviewPort interface {
	Approve(ctx context.Context, args ApproveArgs) (ledgerdom.Entry, error)
	Reject(ctx context.Context, args RejectArgs) (ledgerdom.Entry, error)
}

// Ports are the collaborator ports the review service is wired with
type Ports struct {
	Ledger  ledgerdom.LedgerPort
	Content contentdom.WriterPort
	Notify  notifydom.NotifierPort
}
