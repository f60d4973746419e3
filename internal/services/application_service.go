package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/justsurfingit/jobmarket/internal/dtos"
	"github.com/justsurfingit/jobmarket/internal/events"
	"github.com/justsurfingit/jobmarket/internal/logger"
	"github.com/justsurfingit/jobmarket/internal/models"
	"github.com/justsurfingit/jobmarket/internal/repository"
	"go.uber.org/zap"
)

type ApplicationService struct {
	apps   ApplicationStore
	jobs   JobStore
	events events.Publisher
	log    *zap.Logger
}

func NewApplicationService(apps ApplicationStore, jobs JobStore, pub events.Publisher, log *zap.Logger) *ApplicationService {
	if pub == nil {
		pub = events.Nop{}
	}
	return &ApplicationService{apps: apps, jobs: jobs, events: pub, log: logger.OrNop(log)}
}

// Apply records that userID applied to jobID. A second application for the
// same pair returns ErrConflict; the store's unique index makes that hold
// under concurrent requests too.
func (s *ApplicationService) Apply(ctx context.Context, rawUserID, rawJobID string) (*models.Application, error) {
	rawUserID, rawJobID = strings.TrimSpace(rawUserID), strings.TrimSpace(rawJobID)
	if rawUserID == "" || rawJobID == "" {
		return nil, invalid("userId and jobId are required")
	}
	userID, err := uuid.Parse(rawUserID)
	if err != nil {
		return nil, invalid("invalid userId")
	}
	jobID, err := uuid.Parse(rawJobID)
	if err != nil {
		return nil, invalid("invalid jobId")
	}

	app := &models.Application{UserID: userID, JobID: jobID}
	if err := s.apps.Create(ctx, app); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			s.log.Debug("duplicate application",
				zap.String("user_id", rawUserID),
				zap.String("job_id", rawJobID),
			)
			return nil, ErrConflict
		}
		return nil, &ServiceError{Op: "create application", Err: err}
	}

	s.log.Info("application recorded",
		zap.String("user_id", rawUserID),
		zap.String("job_id", rawJobID),
	)
	if err := s.events.Publish(ctx, events.ApplicationCreated, map[string]string{
		"applicationId": app.ID.String(),
		"userId":        rawUserID,
		"jobId":         rawJobID,
	}); err != nil {
		s.log.Warn("publish application event failed", zap.Error(err))
	}
	return app, nil
}

// ListForUser joins the user's applications with their jobs. Jobs that no
// longer exist are reported with placeholder values and no jobId.
func (s *ApplicationService) ListForUser(ctx context.Context, rawUserID string) ([]dtos.ApplicationSummary, error) {
	userID, err := uuid.Parse(strings.TrimSpace(rawUserID))
	if err != nil {
		return nil, invalid("invalid userId")
	}

	apps, err := s.apps.ListByUser(ctx, userID)
	if err != nil {
		return nil, &ServiceError{Op: "list applications", Err: err}
	}

	ids := make([]uuid.UUID, len(apps))
	for i, a := range apps {
		ids[i] = a.JobID
	}
	jobs, err := s.jobs.FindByIDs(ctx, ids)
	if err != nil {
		return nil, &ServiceError{Op: "load application jobs", Err: err}
	}

	out := make([]dtos.ApplicationSummary, 0, len(apps))
	for _, a := range apps {
		summary := dtos.ApplicationSummary{
			ID:        a.ID,
			Title:     "Deleted Job",
			Location:  "Unknown",
			Tags:      []string{},
			AppliedAt: a.AppliedAt,
		}
		if job, ok := jobs[a.JobID]; ok {
			summary.JobID = &job.ID
			summary.Title = job.Title
			if job.Location != "" {
				summary.Location = job.Location
			}
			summary.Budget = job.Budget
			if job.Tags != nil {
				summary.Tags = job.Tags
			}
		}
		out = append(out, summary)
	}
	return out, nil
}
