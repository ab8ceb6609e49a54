// Package domain defines the moderation ledger types and ports
package domain

import "time"

// ContentType says what kind of content an entry is about
type ContentType string

// Supported content types
const (
	ContentBlog    ContentType = "blog"
	ContentComment ContentType = "comment"
)

// Status is the entry lifecycle state.
// pending is the only non-terminal state; approved and rejected are terminal
// and reachable exactly once, gated by a status = pending precondition
type Status string

// Lifecycle states
const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Entry is the durable unit of review. Content is referenced, never owned:
// deleting content leaves its ledger history intact and vice versa
type Entry struct {
	ID          string
	ContentType ContentType
	ContentID   *string // set at creation for edits/reports, at approval for new publishes
	Snapshot    Snapshot
	FlaggedByAI bool
	ReporterID  *string // only for user-filed reports
	AuthorID    string
	CategoryID  *string // blog content only
	Reason      string
	Status      Status
	ModeratorID *string // set on human resolution
	CreatedAt   time.Time
	ReviewedAt  *time.Time
}
