// Package service implements the ClickHouse verdict-event sink
package service

import (
	"context"
	"time"

	"modgate/internal/modkit"
	"modgate/internal/platform/logger"
	"modgate/internal/platform/store"
	"modgate/internal/services/audit/domain"
)

const table = "moderation_verdicts"

// Svc writes verdict events to ClickHouse. With no backend configured every
// call is a no-op; a write failure is logged and swallowed so auditing can
// never block moderation
type Svc struct {
	ch store.Clickhouse
}

// New constructs the service; deps.CH may be nil
func New(deps modkit.Deps) *Svc {
	return &Svc{ch: deps.CH}
}

var _ domain.RecorderPort = (*Svc)(nil)

// Record batches the events into one insert
func (s *Svc) Record(ctx context.Context, evs ...domain.Event) {
	if s == nil || s.ch == nil || len(evs) == 0 {
		return
	}

	rows := make([][]any, 0, len(evs))
	for _, ev := range evs {
		created := ev.CreatedAt
		if created.IsZero() {
			created = time.Now().UTC()
		}
		entryID := ""
		if ev.EntryID != nil {
			entryID = *ev.EntryID
		}
		rows = append(rows, []any{
			entryID, ev.Stage, ev.IsSafe, ev.Reason, ev.Confidence, created,
		})
	}

	if err := s.ch.Insert(ctx, table, rows); err != nil {
		logger.Named("audit").Warn().Err(err).Int("events", len(rows)).Msg("verdict sink write failed")
	}
}
