package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/justsurfingit/jobmarket/internal/models"
	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(ctx context.Context, p *models.Payment) error {
	return translate(r.db.WithContext(ctx).Create(p).Error)
}

func (r *PaymentRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Payment, error) {
	payments := make([]models.Payment, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}
