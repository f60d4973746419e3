package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobmarket/internal/logger"
	"github.com/justsurfingit/jobmarket/internal/models"
	"go.uber.org/zap"
)

type Notifier interface {
	Global(ctx context.Context) ([]models.Job, error)
}

type NotificationHandler struct {
	Notifications Notifier
	log           *zap.Logger
}

func NewNotificationHandler(n Notifier, log *zap.Logger) *NotificationHandler {
	return &NotificationHandler{Notifications: n, log: logger.OrNop(log)}
}

// Global is GET /notifications/global.
func (h *NotificationHandler) Global(c *gin.Context) {
	jobs, err := h.Notifications.Global(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err, "Error fetching notifications")
		return
	}
	c.JSON(http.StatusOK, gin.H{"notifications": jobs})
}
