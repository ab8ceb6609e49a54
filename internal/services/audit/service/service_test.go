package service

import (
	"context"
	"errors"
	"testing"

	"modgate/internal/platform/store"
	"modgate/internal/services/audit/domain"
)

type fakeCH struct {
	table string
	rows  [][]any
	err   error
	calls int
}

func (f *fakeCH) Insert(_ context.Context, table string, data any) error {
	f.calls++
	f.table = table
	if rows, ok := data.([][]any); ok {
		f.rows = rows
	}
	return f.err
}

func (f *fakeCH) Query(context.Context, string, ...any) (store.Rows, error) { return nil, nil }
func (f *fakeCH) Close() error                                              { return nil }

func strptr(s string) *string { return &s }

func TestRecord_BatchesEvents(t *testing.T) {
	t.Parallel()

	ch := &fakeCH{}
	svc := &Svc{ch: ch}

	svc.Record(context.Background(),
		domain.Event{EntryID: strptr("e1"), Stage: "primary", IsSafe: true},
		domain.Event{Stage: "advanced", IsSafe: false, Reason: "flagged", Confidence: 0.9},
	)

	if ch.calls != 1 {
		t.Fatalf("Insert calls = %d, want 1", ch.calls)
	}
	if ch.table != "moderation_verdicts" {
		t.Fatalf("table = %q", ch.table)
	}
	if len(ch.rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(ch.rows))
	}
	if ch.rows[1][4] != 0.9 {
		t.Fatalf("confidence column = %v, want 0.9", ch.rows[1][4])
	}
}

func TestRecord_NilBackendAndEmptyBatchAreNoOps(t *testing.T) {
	t.Parallel()

	// nil backend must not panic
	(&Svc{}).Record(context.Background(), domain.Event{Stage: "primary"})

	ch := &fakeCH{}
	(&Svc{ch: ch}).Record(context.Background())
	if ch.calls != 0 {
		t.Fatalf("empty batch should not hit the backend")
	}
}

func TestRecord_SwallowsWriteErrors(t *testing.T) {
	t.Parallel()

	ch := &fakeCH{err: errors.New("ch down")}
	// must not panic or propagate
	(&Svc{ch: ch}).Record(context.Background(), domain.Event{Stage: "primary"})
	if ch.calls != 1 {
		t.Fatalf("Insert calls = %d, want 1", ch.calls)
	}
}
