package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/justsurfingit/jobmarket/internal/dtos"
	"github.com/justsurfingit/jobmarket/internal/events"
	"github.com/justsurfingit/jobmarket/internal/models"
)

func TestLogPayment(t *testing.T) {
	jobs := &fakeJobs{jobs: jobsAt("API")}
	store := &fakePayments{}
	pub := &fakePublisher{}
	svc := NewPaymentService(store, jobs, pub, dtos.FeeResponse{Amount: 0.001, Wallet: "0xabc"}, nil)
	user := uuid.New()

	p, err := svc.Log(context.Background(), user, &dtos.PaymentLogRequest{
		JobID:  jobs.jobs[0].ID.String(),
		TxHash: "0xtx",
		Wallet: "0xwallet",
		Amount: 0.001,
	})
	if err != nil {
		t.Fatalf("log: %v", err)
	}
	if p.Status != models.PaymentSuccess || p.UserID != user {
		t.Fatalf("unexpected payment %+v", p)
	}
	if len(pub.events) != 1 || pub.events[0].Type != events.PaymentLogged {
		t.Fatalf("expected PAYMENT_LOGGED event, got %+v", pub.events)
	}

	if got := svc.Fee(); got.Wallet != "0xabc" || got.Amount != 0.001 {
		t.Fatalf("unexpected fee %+v", got)
	}
}

func TestLogPaymentValidation(t *testing.T) {
	svc := NewPaymentService(&fakePayments{}, &fakeJobs{}, nil, dtos.FeeResponse{}, nil)
	jobID := uuid.New().String()

	tests := []struct {
		name string
		req  dtos.PaymentLogRequest
	}{
		{name: "missing tx", req: dtos.PaymentLogRequest{JobID: jobID, Wallet: "w", Amount: 1}},
		{name: "zero amount", req: dtos.PaymentLogRequest{JobID: jobID, TxHash: "t", Wallet: "w"}},
		{name: "bad job id", req: dtos.PaymentLogRequest{JobID: "x", TxHash: "t", Wallet: "w", Amount: 1}},
		{name: "bad status", req: dtos.PaymentLogRequest{JobID: jobID, TxHash: "t", Wallet: "w", Amount: 1, Status: "pending"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Log(context.Background(), uuid.New(), &tt.req)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestListPaymentsWithJobs(t *testing.T) {
	jobs := &fakeJobs{jobs: jobsAt("API")}
	store := &fakePayments{}
	svc := NewPaymentService(store, jobs, nil, dtos.FeeResponse{}, nil)
	ctx := context.Background()
	user := uuid.New()

	for _, jobID := range []string{jobs.jobs[0].ID.String(), uuid.New().String()} {
		if _, err := svc.Log(ctx, user, &dtos.PaymentLogRequest{JobID: jobID, TxHash: "t", Wallet: "w", Amount: 1, Status: "failed"}); err != nil {
			t.Fatal(err)
		}
	}
	// another user's payment must not show up
	if _, err := svc.Log(ctx, uuid.New(), &dtos.PaymentLogRequest{JobID: jobs.jobs[0].ID.String(), TxHash: "t", Wallet: "w", Amount: 1}); err != nil {
		t.Fatal(err)
	}

	list, err := svc.ListForUser(ctx, user)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 payments, got %d", len(list))
	}
	if list[0].Job != nil {
		t.Fatalf("payment for a deleted job must have no job, got %+v", list[0].Job)
	}
	if list[1].Job == nil || list[1].Job.Title != "API" {
		t.Fatalf("expected job title on second payment, got %+v", list[1].Job)
	}
	if list[1].Status != models.PaymentFailed {
		t.Fatalf("expected failed status, got %s", list[1].Status)
	}
}
