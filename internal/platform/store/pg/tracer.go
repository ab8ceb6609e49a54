package pg

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"modgate/internal/platform/logger"
)

type traceStartKey struct{}

// SQLTracer logs every query with its duration and flags slow ones
type SQLTracer struct {
	Log  logger.Logger
	Slow time.Duration
}

// Tracer builds a SQLTracer. slowMs <= 0 falls back to 250ms
func Tracer(log logger.Logger, slowMs int) *SQLTracer {
	slow := 250 * time.Millisecond
	if slowMs > 0 {
		slow = time.Duration(slowMs) * time.Millisecond
	}
	return &SQLTracer{Log: log, Slow: slow}
}

// TraceQueryStart stamps the start time into ctx
func (t *SQLTracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, _ pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, traceStartKey{}, time.Now())
}

// TraceQueryEnd emits a debug line per query, warn when slow or failed
func (t *SQLTracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	started, _ := ctx.Value(traceStartKey{}).(time.Time)
	dur := time.Duration(0)
	if !started.IsZero() {
		dur = time.Since(started)
	}

	switch {
	case data.Err != nil:
		t.Log.Warn().Err(data.Err).Dur("dur", dur).Msg("query failed")
	case dur >= t.Slow:
		t.Log.Warn().Dur("dur", dur).Str("tag", data.CommandTag.String()).Msg("slow query")
	default:
		t.Log.Debug().Dur("dur", dur).Str("tag", data.CommandTag.String()).Msg("query")
	}
}
