package services

import (
	"context"
	"sort"

	"github.com/justsurfingit/jobmarket/internal/dtos"
	"github.com/justsurfingit/jobmarket/internal/logger"
	"github.com/justsurfingit/jobmarket/internal/models"
	"github.com/justsurfingit/jobmarket/internal/oracle"
	"go.uber.org/zap"
)

const DefaultFeedWindow = 25

// Feed is either the plain recency-ordered window or the ranked list,
// depending on whether scoring was requested.
type Feed struct {
	Scored bool
	Jobs   []models.Job
	Ranked []dtos.ScoredJob
}

type FeedService struct {
	users  UserStore
	jobs   JobStore
	scorer Scorer
	window int
	log    *zap.Logger
}

func NewFeedService(users UserStore, jobs JobStore, scorer Scorer, window int, log *zap.Logger) *FeedService {
	if window <= 0 {
		window = DefaultFeedWindow
	}
	return &FeedService{users: users, jobs: jobs, scorer: scorer, window: window, log: logger.OrNop(log)}
}

// GetFeed assembles the job feed for the user with the given email.
// When withScores is set the whole window is scored in a single oracle
// call; any failure of that call fails the feed.
func (s *FeedService) GetFeed(ctx context.Context, userEmail string, withScores bool) (*Feed, error) {
	userEmail = normalizeEmail(userEmail)
	if userEmail == "" {
		return nil, invalid("Missing userEmail")
	}

	user, err := s.users.FindByEmail(ctx, userEmail)
	if err != nil {
		return nil, &ServiceError{Op: "load user", Err: err}
	}
	if user == nil {
		return nil, ErrNotFound
	}

	jobs, err := s.jobs.Recent(ctx, s.window)
	if err != nil {
		return nil, &ServiceError{Op: "load jobs", Err: err}
	}

	if !withScores {
		return &Feed{Jobs: jobs}, nil
	}
	if len(jobs) == 0 {
		return &Feed{Scored: true, Ranked: []dtos.ScoredJob{}}, nil
	}

	inputs := buildBatch(user, jobs)
	s.log.Debug("scoring feed",
		zap.String("user", user.Email),
		zap.Int("jobs", len(inputs)),
	)

	scores, err := s.scorer.ScoreBatch(ctx, inputs)
	if err != nil {
		return nil, &ServiceError{Op: "score feed", Err: err}
	}

	return &Feed{Scored: true, Ranked: rank(jobs, scores)}, nil
}

func buildBatch(user *models.User, jobs []models.Job) []oracle.Input {
	bio := truncateRunes(user.Bio, maxBioRunes)
	skills := cleanSkills(user.Skills, maxSkills)

	inputs := make([]oracle.Input, len(jobs))
	for i, job := range jobs {
		inputs[i] = oracle.Input{
			JobDescription:  truncateRunes(job.Description, maxDescriptionRunes),
			JobSkills:       cleanSkills(job.Skills, maxSkills),
			CandidateBio:    bio,
			CandidateSkills: skills,
		}
	}
	return inputs
}

// rank pairs jobs[i] with scores[i], sorts by score descending keeping
// recency order for ties, and flags the first entry.
func rank(jobs []models.Job, scores []*float64) []dtos.ScoredJob {
	ranked := make([]dtos.ScoredJob, len(jobs))
	for i, job := range jobs {
		ranked[i] = dtos.ScoredJob{Job: job}
		if i < len(scores) && scores[i] != nil {
			ranked[i].MatchScore = *scores[i]
		}
	}

	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].MatchScore > ranked[b].MatchScore
	})
	if len(ranked) > 0 {
		ranked[0].Recommended = true
	}
	return ranked
}
