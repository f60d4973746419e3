package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/justsurfingit/jobmarket/internal/auth"
	"github.com/justsurfingit/jobmarket/internal/dtos"
	"github.com/justsurfingit/jobmarket/internal/logger"
	"github.com/justsurfingit/jobmarket/internal/models"
	"github.com/justsurfingit/jobmarket/internal/services"
	"go.uber.org/zap"
)

type JobManager interface {
	CreateJob(ctx context.Context, postedBy uuid.UUID, req *dtos.JobCreationRequest) (*models.Job, error)
	ListJobs(ctx context.Context) ([]models.Job, error)
}

type FeedProvider interface {
	GetFeed(ctx context.Context, userEmail string, withScores bool) (*services.Feed, error)
}

type JobHandler struct {
	Jobs JobManager
	Feed FeedProvider
	log  *zap.Logger
}

func NewJobHandler(jobs JobManager, feed FeedProvider, log *zap.Logger) *JobHandler {
	return &JobHandler{Jobs: jobs, Feed: feed, log: logger.OrNop(log)}
}

// CreateJob is POST /jobs/create. The poster is the authenticated user.
func (h *JobHandler) CreateJob(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "No token provided"})
		return
	}

	var req dtos.JobCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request: "+err.Error())
		return
	}

	job, err := h.Jobs.CreateJob(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, h.log, err, "Server error")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"msg": "Job posted", "job": job})
}

// ListJobs is GET /jobs.
func (h *JobHandler) ListJobs(c *gin.Context) {
	jobs, err := h.Jobs.ListJobs(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Error fetching jobs")
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

// GetFeed is GET /jobs/feed?userEmail=&withScores=. Scoring is on unless
// withScores is explicitly false.
func (h *JobHandler) GetFeed(c *gin.Context) {
	email := c.Query("userEmail")
	if email == "" {
		badRequest(c, "Missing userEmail")
		return
	}

	withScores := true
	if raw, ok := c.GetQuery("withScores"); ok && raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			badRequest(c, "withScores must be true or false")
			return
		}
		withScores = v
	}

	feed, err := h.Feed.GetFeed(c.Request.Context(), email, withScores)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "User not found"})
			return
		}
		respondError(c, h.log, err, "Server error generating ML feed")
		return
	}

	if !feed.Scored {
		c.JSON(http.StatusOK, gin.H{"jobs": feed.Jobs})
		return
	}
	c.JSON(http.StatusOK, feed.Ranked)
}
