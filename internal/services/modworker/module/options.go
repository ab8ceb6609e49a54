package module

import (
	"time"

	"modgate/internal/platform/config"
)

// Options controls the moderation worker
type Options struct {
	Concurrency    int
	QueueTakeBatch int
	Tick           time.Duration
	LeaseFor       time.Duration
	MaxAttempts    int
	RetryBase      time.Duration
}

// FromConfig reads with MODWORKER_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("MODWORKER_")
	return Options{
		Concurrency:    c.MayInt("CONCURRENCY", 4),
		QueueTakeBatch: c.MayInt("QUEUE_TAKE_BATCH", 32),
		Tick:           c.MayDuration("TICK", 500*time.Millisecond),
		LeaseFor:       c.MayDuration("LEASE", 60*time.Second),
		MaxAttempts:    c.MayInt("MAX_ATTEMPTS", 3),
		RetryBase:      c.MayDuration("RETRY_BASE", 500*time.Millisecond),
	}
}
