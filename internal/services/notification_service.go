package services

import (
	"context"
	"errors"
	"time"

	"github.com/justsurfingit/jobmarket/internal/cache"
	"github.com/justsurfingit/jobmarket/internal/logger"
	"github.com/justsurfingit/jobmarket/internal/models"
	"go.uber.org/zap"
)

const (
	notificationLimit = 3
	notificationKey   = "global"
	notificationTTL   = 30 * time.Minute
)

// NotificationService serves the newest jobs as global notifications. With a
// cache configured reads go to the cache first and fall back to the store.
type NotificationService struct {
	jobs  JobStore
	cache Cache
	log   *zap.Logger
}

func NewNotificationService(jobs JobStore, c Cache, log *zap.Logger) *NotificationService {
	return &NotificationService{jobs: jobs, cache: c, log: logger.OrNop(log)}
}

func (s *NotificationService) Global(ctx context.Context) ([]models.Job, error) {
	if s.cache != nil {
		var cached []models.Job
		err := s.cache.Get(ctx, notificationKey, &cached)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrMiss) {
			s.log.Warn("notification cache read failed", zap.Error(err))
		}
	}

	jobs, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	s.store(ctx, jobs)
	return jobs, nil
}

// Refresh reloads the newest jobs into the cache.
func (s *NotificationService) Refresh(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	jobs, err := s.load(ctx)
	if err != nil {
		return err
	}
	if err := s.cache.Set(ctx, notificationKey, jobs, notificationTTL); err != nil {
		return err
	}
	s.log.Debug("notifications refreshed", zap.Int("count", len(jobs)))
	return nil
}

func (s *NotificationService) load(ctx context.Context) ([]models.Job, error) {
	jobs, err := s.jobs.Recent(ctx, notificationLimit)
	if err != nil {
		return nil, &ServiceError{Op: "load notifications", Err: err}
	}
	return jobs, nil
}

func (s *NotificationService) store(ctx context.Context, jobs []models.Job) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, notificationKey, jobs, notificationTTL); err != nil {
		s.log.Warn("notification cache write failed", zap.Error(err))
	}
}
