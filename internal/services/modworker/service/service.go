// Package service implements the async moderation worker and its enqueue
// surface
package service

import (
	"context"
	"time"

	"modgate/internal/modkit"
	"modgate/internal/modkit/repokit"
	dom "modgate/internal/services/modworker/domain"
	jrepo "modgate/internal/services/modworker/repo"
)

// Service implements both worker and enqueue ports
type Service interface {
	dom.WorkerPort
	dom.EnqueuePort
}

// Config controls the worker loop
type Config struct {
	Concurrency    int
	QueueTakeBatch int
	Tick           time.Duration
	LeaseFor       time.Duration
	MaxAttempts    int
	RetryBase      time.Duration
}

// Svc implements the moderation worker and enqueue service
type Svc struct {
	db     repokit.TxRunner
	binder repokit.Binder[jrepo.Repo]
	repo   jrepo.Repo

	ports dom.Ports
	cfg   Config
	deps  modkit.Deps
}

// New constructs the service
func New(deps modkit.Deps, cfg Config, ports dom.Ports) *Svc {
	b := jrepo.NewPG()
	return &Svc{
		db:     deps.PG,
		binder: b,
		repo:   b.Bind(deps.PG),
		ports:  ports,
		cfg:    cfg,
		deps:   deps,
	}
}

var _ Service = (*Svc)(nil)

// Enqueue schedules an entry for asynchronous moderation
func (s *Svc) Enqueue(ctx context.Context, entryID string) error {
	return s.repo.Enqueue(ctx, entryID)
}

func (s *Svc) retryBase() time.Duration {
	if s.cfg.RetryBase <= 0 {
		return 500 * time.Millisecond
	}
	return s.cfg.RetryBase
}
