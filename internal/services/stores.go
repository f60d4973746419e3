package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/justsurfingit/jobmarket/internal/models"
	"github.com/justsurfingit/jobmarket/internal/oracle"
)

// The interfaces below are satisfied by the repository package and by the
// in-memory fakes used in tests.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]interface{}) (*models.User, error)
}

type JobStore interface {
	Create(ctx context.Context, job *models.Job) error
	Recent(ctx context.Context, limit int) ([]models.Job, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Job, error)
	ExistsByTitleAndBudget(ctx context.Context, title string, budget float64) (bool, error)
}

type ApplicationStore interface {
	Create(ctx context.Context, app *models.Application) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Application, error)
}

type PaymentStore interface {
	Create(ctx context.Context, p *models.Payment) error
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Payment, error)
}

// Scorer is the batched match oracle.
type Scorer interface {
	ScoreBatch(ctx context.Context, inputs []oracle.Input) ([]*float64, error)
}

// Tokens issues bearer tokens for authenticated users.
type Tokens interface {
	Issue(userID uuid.UUID) (string, error)
}

// Cache is the JSON cache used for notifications.
type Cache interface {
	Get(ctx context.Context, key string, dst interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}
