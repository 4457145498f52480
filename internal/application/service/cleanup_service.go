package service

import (
	"context"
	"time"

	"github.com/sangkips/tailorshop-api/internal/domain/repository"
	"go.uber.org/zap"
)

// CleanupService purges expired idempotency keys on a fixed interval.
type CleanupService struct {
	idempotencyRepo repository.IdempotencyRepository
	interval        time.Duration
	log             *zap.Logger
	now             func() time.Time
}

// NewCleanupService creates a new cleanup service
func NewCleanupService(repo repository.IdempotencyRepository, interval time.Duration, log *zap.Logger) *CleanupService {
	if interval <= 0 {
		interval = time.Hour
	}
	return &CleanupService{
		idempotencyRepo: repo,
		interval:        interval,
		log:             log,
		now:             time.Now,
	}
}

// PurgeExpired deletes expired keys once and reports how many went.
func (s *CleanupService) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := s.idempotencyRepo.DeleteExpired(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.log.Info("purged expired idempotency keys", zap.Int64("count", n))
	}
	return n, nil
}

// Run purges on every tick until ctx is done. Failures are logged and retried
// on the next tick.
func (s *CleanupService) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info("cleanup worker started", zap.Duration("interval", s.interval))
	for {
		select {
		case <-ctx.Done():
			s.log.Info("cleanup worker stopped")
			return nil
		case <-ticker.C:
			if _, err := s.PurgeExpired(ctx); err != nil && ctx.Err() == nil {
				s.log.Error("idempotency cleanup failed", zap.Error(err))
			}
		}
	}
}
