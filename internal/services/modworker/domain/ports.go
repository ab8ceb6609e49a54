// Package domain defines the async moderation job types and ports
package domain

import (
	"context"
	"time"
)

// State is the job lifecycle. queued jobs are leased and executed; done and
// dead are terminal. A dead job never resolves its entry: the entry stays
// pending and visible to human review
type State string

// Job states
const (
	StateQueued State = "queued"
	StateDone   State = "done"
	StateDead   State = "dead"
)

// Job is one leased unit of moderation work
type Job struct {
	ID            string
	EntryID       string
	Attempts      int
	State         State
	LastError     *string
	NextAttemptAt time.Time
	LeaseExpires  time.Time
	LeasedBy      string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// EnqueuePort schedules a ledger entry for asynchronous moderation
type EnqueuePort interface {
	Enqueue(ctx context.Context, entryID string) error
}

// WorkerPort runs the lease loop until ctx is canceled
type WorkerPort interface {
	Run(ctx context.Context) error
}
