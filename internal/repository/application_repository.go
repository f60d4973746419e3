package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/justsurfingit/jobmarket/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

// Create inserts the application unless the (user, job) pair already exists,
// in which case ErrDuplicate is returned. The unique index decides, so two
// concurrent requests cannot both succeed.
func (r *ApplicationRepository) Create(ctx context.Context, app *models.Application) error {
	res := insertApplication(r.db.WithContext(ctx), app)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrDuplicate
	}
	return nil
}

func insertApplication(tx *gorm.DB, app *models.Application) *gorm.DB {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "job_id"}},
		DoNothing: true,
	}).Create(app)
}

func (r *ApplicationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Application, error) {
	apps := make([]models.Application, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("applied_at DESC").
		Find(&apps).Error
	return apps, err
}
