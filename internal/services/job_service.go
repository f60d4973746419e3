package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/justsurfingit/jobmarket/internal/dtos"
	"github.com/justsurfingit/jobmarket/internal/events"
	"github.com/justsurfingit/jobmarket/internal/logger"
	"github.com/justsurfingit/jobmarket/internal/models"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// Refresher is told when the set of newest jobs changed.
type Refresher interface {
	Refresh(ctx context.Context) error
}

type JobService struct {
	jobs      JobStore
	events    events.Publisher
	refresher Refresher
	log       *zap.Logger
}

func NewJobService(jobs JobStore, pub events.Publisher, refresher Refresher, log *zap.Logger) *JobService {
	if pub == nil {
		pub = events.Nop{}
	}
	return &JobService{jobs: jobs, events: pub, refresher: refresher, log: logger.OrNop(log)}
}

func (s *JobService) CreateJob(ctx context.Context, postedBy uuid.UUID, req *dtos.JobCreationRequest) (*models.Job, error) {
	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)
	if title == "" || description == "" {
		return nil, invalid("title and description are required")
	}
	if req.Budget <= 0 {
		return nil, invalid("budget must be greater than zero")
	}

	job := &models.Job{
		Title:       title,
		Description: description,
		Skills:      pq.StringArray(req.Skills.OrEmpty()),
		Tags:        pq.StringArray(req.Tags.OrEmpty()),
		Budget:      req.Budget,
		Location:    strings.TrimSpace(req.Location),
		PostedBy:    postedBy,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, &ServiceError{Op: "create job", Err: err}
	}

	s.log.Info("job posted",
		zap.String("job_id", job.ID.String()),
		zap.String("posted_by", postedBy.String()),
	)

	if err := s.events.Publish(ctx, events.JobCreated, map[string]string{
		"jobId":    job.ID.String(),
		"postedBy": postedBy.String(),
		"title":    job.Title,
	}); err != nil {
		s.log.Warn("publish job event failed", zap.Error(err))
	}
	if s.refresher != nil {
		if err := s.refresher.Refresh(ctx); err != nil {
			s.log.Warn("notification refresh failed", zap.Error(err))
		}
	}
	return job, nil
}

// ListJobs returns every job, newest first.
func (s *JobService) ListJobs(ctx context.Context) ([]models.Job, error) {
	jobs, err := s.jobs.Recent(ctx, 0)
	if err != nil {
		return nil, &ServiceError{Op: "list jobs", Err: err}
	}
	return jobs, nil
}

var demoJobs = []models.Job{
	{
		Title:       "Frontend Developer",
		Description: "We need a skilled React developer to join our product team.",
		Skills:      pq.StringArray{"React", "JavaScript", "CSS"},
		Location:    "Bangalore",
		Tags:        pq.StringArray{"Frontend", "Remote"},
		Budget:      60000,
	},
	{
		Title:       "Backend Engineer",
		Description: "Go and PostgreSQL backend developer for scalable systems.",
		Skills:      pq.StringArray{"Go", "PostgreSQL", "Redis"},
		Location:    "Hyderabad",
		Tags:        pq.StringArray{"Backend", "API"},
		Budget:      75000,
	},
	{
		Title:       "Full Stack Developer",
		Description: "We're building a startup MVP end to end.",
		Skills:      pq.StringArray{"PostgreSQL", "Go", "React", "TypeScript"},
		Location:    "Remote",
		Tags:        pq.StringArray{"Full Stack", "Startup"},
		Budget:      85000,
	},
	{
		Title:       "AI/ML Engineer",
		Description: "Looking for an ML engineer familiar with LLM APIs and model deployment.",
		Skills:      pq.StringArray{"Python", "LLM", "ML"},
		Location:    "Delhi",
		Tags:        pq.StringArray{"AI", "Machine Learning"},
		Budget:      100000,
	},
}

// Seed inserts the demo jobs that are not already present, matching on
// title and budget. It returns how many were inserted.
func (s *JobService) Seed(ctx context.Context, postedBy uuid.UUID) (int, error) {
	inserted := 0
	for _, demo := range demoJobs {
		exists, err := s.jobs.ExistsByTitleAndBudget(ctx, demo.Title, demo.Budget)
		if err != nil {
			return inserted, &ServiceError{Op: "seed jobs", Err: err}
		}
		if exists {
			s.log.Info("seed job skipped", zap.String("title", demo.Title))
			continue
		}

		job := demo
		job.PostedBy = postedBy
		if err := s.jobs.Create(ctx, &job); err != nil {
			return inserted, &ServiceError{Op: "seed jobs", Err: err}
		}
		inserted++
		s.log.Info("seed job inserted", zap.String("title", job.Title))
	}
	return inserted, nil
}
