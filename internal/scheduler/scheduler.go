// Package scheduler runs the periodic notification refresh.
package scheduler

import (
	"context"
	"fmt"
	"sync"

	"github.com/justsurfingit/jobmarket/internal/logger"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Refresher reloads derived data, e.g. the cached notifications.
type Refresher interface {
	Refresh(ctx context.Context) error
}

type Scheduler struct {
	cron      *cron.Cron
	refresher Refresher
	spec      string
	log       *zap.Logger

	warmup sync.WaitGroup
}

// New creates a Scheduler that runs refresher on the cron spec, e.g. "@every 5m".
func New(spec string, refresher Refresher, log *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:      cron.New(),
		refresher: refresher,
		spec:      spec,
		log:       logger.OrNop(log),
	}
}

// Start registers the job, starts the cron loop and runs one refresh right
// away so the cache is warm before the first tick.
func (s *Scheduler) Start(ctx context.Context) error {
	if _, err := s.cron.AddFunc(s.spec, func() { s.run(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc: %w", err)
	}

	s.cron.Start()
	s.log.Info("scheduler started", zap.String("spec", s.spec))

	s.warmup.Add(1)
	go func() {
		defer s.warmup.Done()
		s.run(ctx)
	}()
	return nil
}

// Stop halts the loop and waits for any running refresh, including the
// initial one, to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	s.warmup.Wait()
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) run(ctx context.Context) {
	if err := s.refresher.Refresh(ctx); err != nil {
		s.log.Warn("scheduled refresh failed", zap.Error(err))
		return
	}
	s.log.Debug("scheduled refresh done")
}
