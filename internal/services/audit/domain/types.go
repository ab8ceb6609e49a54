// Package domain defines the audit event types and ports
package domain

import (
	"context"
	"time"
)

// Event is one per-stage verdict observation, written for offline analysis
type Event struct {
	EntryID    *string // nil for synchronous checks that never opened an entry
	Stage      string  // "primary" | "advanced"
	IsSafe     bool
	Reason     string
	Confidence float64
	CreatedAt  time.Time
}

// RecorderPort is the best-effort verdict sink.
// Implementations must never fail the moderation flow
type RecorderPort interface {
	Record(ctx context.Context, evs ...Event)
}
