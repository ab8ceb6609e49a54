package domain

import (
	"context"
	"time"
)

// CreateArgs holds parameters for opening a ledger entry
type CreateArgs struct {
	ContentType ContentType `validate:"required,oneof=blog comment"`
	ContentID   *string
	Snapshot    Snapshot
	FlaggedByAI bool
	ReporterID  *string
	AuthorID    string `json:"author_id" validate:"required"`
	CategoryID  *string
	Reason      string
}

// ResolveArgs holds parameters for a terminal transition
type ResolveArgs struct {
	EntryID     string `json:"entry_id" validate:"required,uuid"`
	Status      Status `validate:"required,oneof=approved rejected"`
	Reason      string
	ModeratorID *string // nil for automatic approval
	ContentID   *string // assigned at approval for first-time publishes
}

// PageArgs is a keyset page over created_at
type PageArgs struct {
	Limit  int
	Before *time.Time
}

// LedgerPort is the ledger surface other modules wire against
type LedgerPort interface {
	Create(ctx context.Context, args CreateArgs) (Entry, error)
	Get(ctx context.Context, id string) (Entry, error)
	ListPending(ctx context.Context, page PageArgs) ([]Entry, error)

	// Resolve performs the single pending-gated transition. A non-pending
	// entry yields a NotFound error and no state change
	Resolve(ctx context.Context, args ResolveArgs) (Entry, error)

	// Flag overwrites the reason of a still-pending entry and marks it as
	// AI-flagged; resolved entries are left untouched (NotFound)
	Flag(ctx context.Context, entryID, reason string) error

	// AssignContentID links materialized content to an approved entry.
	// The id is assigned at most once; a second assignment is a Conflict
	AssignContentID(ctx context.Context, entryID, contentID string) error
}
