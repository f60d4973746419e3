package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/jobmarket/internal/services"
	"go.uber.org/zap"
)

// respondError maps service errors to a status and a {"msg"} body.
// Anything unexpected is logged and reported with the fallback message.
func respondError(c *gin.Context, log *zap.Logger, err error, fallback string) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"msg": verr.Msg})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"msg": "Not found"})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"msg": "Already exists"})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Invalid credentials"})
	case errors.Is(err, services.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"msg": "AI features are not configured"})
	default:
		log.Error(fallback,
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": fallback})
	}
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"msg": msg})
}
