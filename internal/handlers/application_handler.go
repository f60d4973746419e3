package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobmarket/internal/dtos"
	"github.com/justsurfingit/jobmarket/internal/logger"
	"github.com/justsurfingit/jobmarket/internal/models"
	"github.com/justsurfingit/jobmarket/internal/services"
	"go.uber.org/zap"
)

type Applier interface {
	Apply(ctx context.Context, userID, jobID string) (*models.Application, error)
	ListForUser(ctx context.Context, userID string) ([]dtos.ApplicationSummary, error)
}

type ApplicationHandler struct {
	Applications Applier
	log          *zap.Logger
}

func NewApplicationHandler(apps Applier, log *zap.Logger) *ApplicationHandler {
	return &ApplicationHandler{Applications: apps, log: logger.OrNop(log)}
}

// Apply is POST /applications/apply.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	var req dtos.ApplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "userId and jobId are required")
		return
	}

	if _, err := h.Applications.Apply(c.Request.Context(), req.UserID, req.JobID); err != nil {
		if errors.Is(err, services.ErrConflict) {
			badRequest(c, "Already applied.")
			return
		}
		respondError(c, h.log, err, "Server error")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"msg": "Application recorded."})
}

// List is GET /applications/:userId.
func (h *ApplicationHandler) List(c *gin.Context) {
	apps, err := h.Applications.ListForUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, h.log, err, "Error fetching applications")
		return
	}
	c.JSON(http.StatusOK, apps)
}
