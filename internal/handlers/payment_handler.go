package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/justsurfingit/jobmarket/internal/auth"
	"github.com/justsurfingit/jobmarket/internal/dtos"
	"github.com/justsurfingit/jobmarket/internal/logger"
	"github.com/justsurfingit/jobmarket/internal/models"
	"go.uber.org/zap"
)

type PaymentLedger interface {
	Log(ctx context.Context, userID uuid.UUID, req *dtos.PaymentLogRequest) (*models.Payment, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]dtos.PaymentView, error)
	Fee() dtos.FeeResponse
}

type PaymentHandler struct {
	Payments PaymentLedger
	log      *zap.Logger
}

func NewPaymentHandler(payments PaymentLedger, log *zap.Logger) *PaymentHandler {
	return &PaymentHandler{Payments: payments, log: logger.OrNop(log)}
}

// Log is POST /payments/log.
func (h *PaymentHandler) Log(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "No token provided"})
		return
	}

	var req dtos.PaymentLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Missing fields")
		return
	}

	payment, err := h.Payments.Log(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, h.log, err, "Server error")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"msg": "Payment logged", "payment": payment})
}

// Mine is GET /payments/my.
func (h *PaymentHandler) Mine(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "No token provided"})
		return
	}

	payments, err := h.Payments.ListForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, h.log, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"payments": payments})
}

// Fee is GET /payments/fee.
func (h *PaymentHandler) Fee(c *gin.Context) {
	c.JSON(http.StatusOK, h.Payments.Fee())
}
