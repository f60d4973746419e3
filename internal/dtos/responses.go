package dtos

import (
	"time"

	"github.com/google/uuid"
	"github.com/justsurfingit/jobmarket/internal/models"
)

// ScoredJob is one entry of the ranked feed.
type ScoredJob struct {
	Job         models.Job `json:"job"`
	MatchScore  float64    `json:"matchScore"`
	Recommended bool       `json:"recommended,omitempty"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// ApplicationSummary flattens an application and the job it points at.
type ApplicationSummary struct {
	ID        uuid.UUID `json:"_id"`
	JobID     *uuid.UUID `json:"jobId,omitempty"`
	Title     string     `json:"title"`
	Location  string     `json:"location"`
	Budget    float64    `json:"budget"`
	Tags      []string   `json:"tags"`
	AppliedAt time.Time  `json:"appliedAt"`
}

type JobRef struct {
	ID    uuid.UUID `json:"_id"`
	Title string    `json:"title"`
}

type PaymentView struct {
	models.Payment
	Job *JobRef `json:"job"`
}

type FeeResponse struct {
	Amount float64 `json:"amount"`
	Wallet string  `json:"wallet"`
}
