package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/justsurfingit/jobmarket/internal/auth"
	"github.com/justsurfingit/jobmarket/internal/dtos"
	"github.com/justsurfingit/jobmarket/internal/logger"
	"github.com/justsurfingit/jobmarket/internal/models"
	"github.com/justsurfingit/jobmarket/internal/services"
	"go.uber.org/zap"
)

type Accounts interface {
	Register(ctx context.Context, req *dtos.RegisterRequest) (*dtos.AuthResponse, error)
	Authenticate(ctx context.Context, req *dtos.LoginRequest) (*dtos.AuthResponse, error)
	Profile(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, req *dtos.ProfileUpdateRequest) (*models.User, error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
}

type AuthHandler struct {
	Accounts  Accounts
	UploadDir string
	log       *zap.Logger
}

func NewAuthHandler(accounts Accounts, uploadDir string, log *zap.Logger) *AuthHandler {
	return &AuthHandler{Accounts: accounts, UploadDir: uploadDir, log: logger.OrNop(log)}
}

// Register is POST /auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dtos.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request: "+err.Error())
		return
	}

	resp, err := h.Accounts.Register(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, services.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"msg": "User already exists"})
			return
		}
		respondError(c, h.log, err, "Server error")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login is POST /auth and POST /auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dtos.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Email and password are required")
		return
	}

	resp, err := h.Accounts.Authenticate(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.log, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Profile is GET /auth/profile.
func (h *AuthHandler) Profile(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "No token provided"})
		return
	}

	user, err := h.Accounts.Profile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "User not found"})
			return
		}
		respondError(c, h.log, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateProfile is PUT /auth/profile. It accepts JSON, or a multipart form
// with an optional "resume" file.
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	userID, ok := auth.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "No token provided"})
		return
	}

	var req dtos.ProfileUpdateRequest
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := h.bindProfileForm(c, &req); err != nil {
			respondError(c, h.log, err, "Server error")
			return
		}
	} else if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request: "+err.Error())
		return
	}

	user, err := h.Accounts.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "User not found"})
			return
		}
		respondError(c, h.log, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AuthHandler) bindProfileForm(c *gin.Context, req *dtos.ProfileUpdateRequest) error {
	if v, ok := c.GetPostForm("name"); ok {
		req.Name = &v
	}
	if v, ok := c.GetPostForm("bio"); ok {
		req.Bio = &v
	}
	if v, ok := c.GetPostForm("skills"); ok {
		skills := dtos.ParseStringList(v)
		req.Skills = &skills
	}
	if v, ok := c.GetPostForm("walletAddress"); ok {
		req.WalletAddress = &v
	}
	if v, ok := c.GetPostForm("linkedin"); ok {
		req.LinkedIn = &v
	}

	file, err := c.FormFile("resume")
	if errors.Is(err, http.ErrMissingFile) {
		return nil
	}
	if err != nil {
		return &services.ValidationError{Msg: "Invalid resume upload"}
	}

	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}
	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(file.Filename))
	if err := c.SaveUploadedFile(file, filepath.Join(h.UploadDir, name)); err != nil {
		return fmt.Errorf("store resume: %w", err)
	}
	h.log.Info("resume stored", zap.String("file", name))
	req.Resume = &name
	return nil
}

// UserByEmail is GET /users/email/:email.
func (h *AuthHandler) UserByEmail(c *gin.Context) {
	user, err := h.Accounts.ByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "User not found"})
			return
		}
		respondError(c, h.log, err, "Server error")
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
