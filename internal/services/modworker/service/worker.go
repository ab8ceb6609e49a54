package service

import (
	"context"
	"time"

	"modgate/internal/platform/logger"
)

// Run starts the worker loop to process queued moderation jobs
func (s *Svc) Run(ctx context.Context) error {
	log := logger.Named("modworker")

	tick := s.cfg.Tick
	if tick <= 0 {
		tick = 500 * time.Millisecond
	}
	lease := s.cfg.LeaseFor
	if lease <= 0 {
		lease = 60 * time.Second
	}

	sem := make(chan struct{}, max(1, s.cfg.Concurrency))
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			// lease a small batch; process concurrently with a simple semaphore
			jobs, err := s.repo.LeaseDue(ctx, "modworker", s.cfg.QueueTakeBatch, lease)
			if err != nil {
				log.Error().Err(err).Msg("lease moderation jobs failed")
				continue
			}
			for i := range jobs {
				sem <- struct{}{}
				j := jobs[i]
				go func() {
					defer func() { <-sem }()
					if err := s.handleJob(ctx, j); err != nil {
						log.Warn().Err(err).Str("job_id", j.ID).Str("entry_id", j.EntryID).Msg("job failed")
					}
				}()
			}
		}
	}
}
