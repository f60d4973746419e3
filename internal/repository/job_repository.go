package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/justsurfingit/jobmarket/internal/models"
	"gorm.io/gorm"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db: db}
}

func (r *JobRepository) Create(ctx context.Context, job *models.Job) error {
	return translate(r.db.WithContext(ctx).Create(job).Error)
}

// Recent returns jobs newest first. A non-positive limit returns every job.
func (r *JobRepository) Recent(ctx context.Context, limit int) ([]models.Job, error) {
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	jobs := make([]models.Job, 0)
	if err := q.Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

// FindByIDs loads the jobs that still exist among ids, keyed by id.
func (r *JobRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Job, error) {
	out := make(map[uuid.UUID]models.Job, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var jobs []models.Job
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&jobs).Error; err != nil {
		return nil, err
	}
	for _, j := range jobs {
		out[j.ID] = j
	}
	return out, nil
}

func (r *JobRepository) ExistsByTitleAndBudget(ctx context.Context, title string, budget float64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Job{}).
		Where("title = ? AND budget = ?", title, budget).
		Count(&count).Error
	return count > 0, err
}
