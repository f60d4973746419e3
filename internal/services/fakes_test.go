package services

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/justsurfingit/jobmarket/internal/models"
	"github.com/justsurfingit/jobmarket/internal/oracle"
	"github.com/justsurfingit/jobmarket/internal/repository"
	"github.com/lib/pq"
)

var errStoreDown = errors.New("store down")

type fakeUsers struct {
	mu     sync.Mutex
	byID   map[uuid.UUID]*models.User
	err    error
	lookup int
}

func newFakeUsers(users ...*models.User) *fakeUsers {
	f := &fakeUsers{byID: map[uuid.UUID]*models.User{}}
	for _, u := range users {
		if u.ID == uuid.Nil {
			u.ID = uuid.New()
		}
		f.byID[u.ID] = u
	}
	return f
}

func (f *fakeUsers) Create(_ context.Context, user *models.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.byID {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	cp := *user
	f.byID[user.ID] = &cp
	return nil
}

func (f *fakeUsers) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lookup++
	if f.err != nil {
		return nil, f.err
	}
	for _, u := range f.byID {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) Update(_ context.Context, id uuid.UUID, updates map[string]interface{}) (*models.User, error) {
	f.mu.Lock()
	u, ok := f.byID[id]
	if !ok {
		f.mu.Unlock()
		return nil, nil
	}
	for k, v := range updates {
		switch k {
		case "name":
			u.Name = v.(string)
		case "bio":
			u.Bio = v.(string)
		case "skills":
			u.Skills = v.(pq.StringArray)
		case "wallet_address":
			u.WalletAddress = v.(string)
		case "linked_in":
			u.LinkedIn = v.(string)
		case "resume":
			u.Resume = v.(string)
		}
	}
	f.mu.Unlock()
	return f.FindByID(context.Background(), id)
}

type fakeJobs struct {
	mu     sync.Mutex
	jobs   []models.Job
	err    error
	recent int
}

func (f *fakeJobs) Create(_ context.Context, job *models.Job) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now()
	}
	f.jobs = append(f.jobs, *job)
	return nil
}

func (f *fakeJobs) Recent(_ context.Context, limit int) ([]models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.recent++
	if f.err != nil {
		return nil, f.err
	}
	out := append([]models.Job(nil), f.jobs...)
	sort.SliceStable(out, func(a, b int) bool { return out[a].CreatedAt.After(out[b].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	if out == nil {
		out = []models.Job{}
	}
	return out, nil
}

func (f *fakeJobs) FindByIDs(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]models.Job, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[uuid.UUID]models.Job{}
	for _, id := range ids {
		for _, j := range f.jobs {
			if j.ID == id {
				out[id] = j
			}
		}
	}
	return out, nil
}

func (f *fakeJobs) ExistsByTitleAndBudget(_ context.Context, title string, budget float64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, j := range f.jobs {
		if j.Title == title && j.Budget == budget {
			return true, nil
		}
	}
	return false, nil
}

type fakeApplications struct {
	mu   sync.Mutex
	apps []models.Application
}

func (f *fakeApplications) Create(_ context.Context, app *models.Application) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.apps {
		if a.UserID == app.UserID && a.JobID == app.JobID {
			return repository.ErrDuplicate
		}
	}
	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}
	if app.AppliedAt.IsZero() {
		app.AppliedAt = time.Now()
	}
	f.apps = append(f.apps, *app)
	return nil
}

func (f *fakeApplications) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Application, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Application{}
	for i := len(f.apps) - 1; i >= 0; i-- {
		if f.apps[i].UserID == userID {
			out = append(out, f.apps[i])
		}
	}
	return out, nil
}

type fakePayments struct {
	payments []models.Payment
}

func (f *fakePayments) Create(_ context.Context, p *models.Payment) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	f.payments = append(f.payments, *p)
	return nil
}

func (f *fakePayments) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Payment, error) {
	out := []models.Payment{}
	for i := len(f.payments) - 1; i >= 0; i-- {
		if f.payments[i].UserID == userID {
			out = append(out, f.payments[i])
		}
	}
	return out, nil
}

type fakeScorer struct {
	scores []*float64
	err    error
	calls  int
	got    []oracle.Input
}

func (f *fakeScorer) ScoreBatch(_ context.Context, inputs []oracle.Input) ([]*float64, error) {
	f.calls++
	f.got = inputs
	if f.err != nil {
		return nil, f.err
	}
	return f.scores, nil
}

type recordedEvent struct {
	Type    string
	Payload map[string]string
}

type fakePublisher struct {
	mu     sync.Mutex
	events []recordedEvent
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, eventType string, payload map[string]string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, recordedEvent{Type: eventType, Payload: payload})
	return f.err
}

func score(v float64) *float64 { return &v }

// jobsAt returns jobs created one minute apart, the first being the oldest.
func jobsAt(titles ...string) []models.Job {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]models.Job, len(titles))
	for i, title := range titles {
		out[i] = models.Job{Title: title, Description: title + " description"}
		out[i].ID = uuid.New()
		out[i].CreatedAt = base.Add(time.Duration(i) * time.Minute)
	}
	return out
}
