package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Base carries the uuid primary key shared by every table.
type Base struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a fresh id unless the caller already set one.
func (b *Base) BeforeCreate(*gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

type User struct {
	Base

	Name          string         `gorm:"not null" json:"name"`
	Email         string         `gorm:"uniqueIndex;not null" json:"email"`
	Password      string         `gorm:"not null" json:"-"`
	Bio           string         `gorm:"type:text" json:"bio"`
	Skills        pq.StringArray `gorm:"type:text[]" json:"skills"`
	WalletAddress string         `json:"walletAddress"`
	Resume        string         `json:"resume"`
	LinkedIn      string         `json:"linkedin"`
}

// Job is immutable once posted; there is no edit path.
type Job struct {
	Base

	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"type:text;not null" json:"description"`
	Skills      pq.StringArray `gorm:"type:text[]" json:"skills"`
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags"`
	Budget      float64        `gorm:"not null" json:"budget"`
	Location    string         `json:"location"`
	PostedBy    uuid.UUID      `gorm:"type:uuid;index" json:"postedBy"`
}

// Application references a job without a foreign key so that removing
// a job leaves its applications in place.
type Application struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"_id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_applications_user_job" json:"userId"`
	JobID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_applications_user_job" json:"jobId"`
	AppliedAt time.Time `gorm:"not null" json:"appliedAt"`
}

func (a *Application) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	if a.AppliedAt.IsZero() {
		a.AppliedAt = time.Now().UTC()
	}
	return nil
}

type PaymentStatus string

const (
	PaymentSuccess PaymentStatus = "success"
	PaymentFailed  PaymentStatus = "failed"
)

// Payment records the outcome of one platform-fee transfer reported by the client.
type Payment struct {
	Base

	UserID uuid.UUID     `gorm:"type:uuid;not null;index" json:"user"`
	JobID  uuid.UUID     `gorm:"type:uuid;not null" json:"-"`
	TxHash string        `gorm:"not null" json:"txHash"`
	Wallet string        `gorm:"not null" json:"wallet"`
	Amount float64       `gorm:"not null" json:"amount"`
	Status PaymentStatus `gorm:"type:varchar(16);default:'success'" json:"status"`
}
