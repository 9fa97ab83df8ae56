package scheduler

import (
	"context"
	"sync"
	"time"

	"tubefetch/backend/internal/service"
	"tubefetch/backend/pkg/logger"
)

// Scheduler periodically removes expired rate limit windows so the
// ledger table does not grow without bound.
type Scheduler struct {
	limits     service.RateLimitService
	interval   time.Duration
	grace      time.Duration
	stopCh     chan struct{}
	wg         sync.WaitGroup
	cancelFunc context.CancelFunc // cancels the current sweep
	mu         sync.Mutex         // protects cancelFunc
}

func New(limits service.RateLimitService, interval, grace time.Duration) *Scheduler {
	return &Scheduler{
		limits:   limits,
		interval: interval,
		grace:    grace,
		stopCh:   make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	s.wg.Add(1)
	go s.run()
	logger.Info("scheduler started", "interval", s.interval)
}

func (s *Scheduler) Stop() {
	// Cancel any ongoing sweep first
	s.mu.Lock()
	if s.cancelFunc != nil {
		s.cancelFunc()
	}
	s.mu.Unlock()

	close(s.stopCh)
	s.wg.Wait()
	logger.Info("scheduler stopped")
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	// Run immediately on start
	s.sweep()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep()
		case <-s.stopCh:
			return
		}
	}
}

func (s *Scheduler) sweep() {
	// Use the same timeout as the sweep interval
	ctx, cancel := context.WithTimeout(context.Background(), s.interval)

	// Store cancel function so Stop() can cancel an ongoing sweep
	s.mu.Lock()
	s.cancelFunc = cancel
	s.mu.Unlock()

	defer func() {
		cancel()
		s.mu.Lock()
		s.cancelFunc = nil
		s.mu.Unlock()
	}()

	purged, err := s.limits.PurgeExpired(ctx, s.grace)
	if err != nil {
		if ctx.Err() != nil {
			logger.Info("rate limit sweep cancelled")
			return
		}
		logger.Error("rate limit sweep", "error", err)
		return
	}
	if purged > 0 {
		logger.Info("rate limit sweep completed", "purged", purged)
	}
}
