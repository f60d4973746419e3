package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/justsurfingit/jobmarket/internal/dtos"
	"github.com/justsurfingit/jobmarket/internal/events"
	"github.com/justsurfingit/jobmarket/internal/logger"
	"github.com/justsurfingit/jobmarket/internal/models"
	"go.uber.org/zap"
)

type PaymentService struct {
	payments PaymentStore
	jobs     JobStore
	events   events.Publisher
	fee      dtos.FeeResponse
	log      *zap.Logger
}

func NewPaymentService(payments PaymentStore, jobs JobStore, pub events.Publisher, fee dtos.FeeResponse, log *zap.Logger) *PaymentService {
	if pub == nil {
		pub = events.Nop{}
	}
	return &PaymentService{payments: payments, jobs: jobs, events: pub, fee: fee, log: logger.OrNop(log)}
}

// Fee returns the platform fee the client should transfer before posting.
func (s *PaymentService) Fee() dtos.FeeResponse {
	return s.fee
}

// Log stores the transfer outcome reported by the client. The transaction
// itself is not verified.
func (s *PaymentService) Log(ctx context.Context, userID uuid.UUID, req *dtos.PaymentLogRequest) (*models.Payment, error) {
	if strings.TrimSpace(req.JobID) == "" || strings.TrimSpace(req.TxHash) == "" ||
		strings.TrimSpace(req.Wallet) == "" || req.Amount <= 0 {
		return nil, invalid("Missing fields")
	}
	jobID, err := uuid.Parse(strings.TrimSpace(req.JobID))
	if err != nil {
		return nil, invalid("invalid jobId")
	}

	status := models.PaymentSuccess
	switch models.PaymentStatus(req.Status) {
	case "", models.PaymentSuccess:
	case models.PaymentFailed:
		status = models.PaymentFailed
	default:
		return nil, invalid("status must be success or failed")
	}

	payment := &models.Payment{
		UserID: userID,
		JobID:  jobID,
		TxHash: strings.TrimSpace(req.TxHash),
		Wallet: strings.TrimSpace(req.Wallet),
		Amount: req.Amount,
		Status: status,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		return nil, &ServiceError{Op: "log payment", Err: err}
	}

	s.log.Info("payment logged",
		zap.String("user_id", userID.String()),
		zap.String("tx_hash", payment.TxHash),
		zap.String("status", string(status)),
	)
	if err := s.events.Publish(ctx, events.PaymentLogged, map[string]string{
		"paymentId": payment.ID.String(),
		"userId":    userID.String(),
		"jobId":     jobID.String(),
		"status":    string(status),
	}); err != nil {
		s.log.Warn("publish payment event failed", zap.Error(err))
	}
	return payment, nil
}

// ListForUser returns the user's payments newest first, each with the
// title of its job when the job still exists.
func (s *PaymentService) ListForUser(ctx context.Context, userID uuid.UUID) ([]dtos.PaymentView, error) {
	payments, err := s.payments.ListByUser(ctx, userID)
	if err != nil {
		return nil, &ServiceError{Op: "list payments", Err: err}
	}

	ids := make([]uuid.UUID, len(payments))
	for i, p := range payments {
		ids[i] = p.JobID
	}
	jobs, err := s.jobs.FindByIDs(ctx, ids)
	if err != nil {
		return nil, &ServiceError{Op: "load payment jobs", Err: err}
	}

	out := make([]dtos.PaymentView, len(payments))
	for i, p := range payments {
		out[i] = dtos.PaymentView{Payment: p}
		if job, ok := jobs[p.JobID]; ok {
			out[i].Job = &dtos.JobRef{ID: job.ID, Title: job.Title}
		}
	}
	return out, nil
}
