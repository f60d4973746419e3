package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/justsurfingit/jobmarket/internal/dtos"
	"github.com/justsurfingit/jobmarket/internal/logger"
	"github.com/justsurfingit/jobmarket/internal/models"
	"github.com/justsurfingit/jobmarket/internal/repository"
	"github.com/lib/pq"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserService struct {
	users  UserStore
	tokens Tokens
	log    *zap.Logger
}

func NewUserService(users UserStore, tokens Tokens, log *zap.Logger) *UserService {
	return &UserService{users: users, tokens: tokens, log: logger.OrNop(log)}
}

func (s *UserService) Register(ctx context.Context, req *dtos.RegisterRequest) (*dtos.AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" || strings.TrimSpace(req.Password) == "" || strings.TrimSpace(req.Name) == "" {
		return nil, invalid("name, email and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, &ServiceError{Op: "hash password", Err: err}
	}

	user := &models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: string(hash),
		Skills:   pq.StringArray{},
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrConflict
		}
		return nil, &ServiceError{Op: "create user", Err: err}
	}

	s.log.Info("user registered", zap.String("user_id", user.ID.String()))
	return s.authResponse(user)
}

// Authenticate checks the credentials and returns a fresh token. Unknown
// emails and wrong passwords are indistinguishable to the caller.
func (s *UserService) Authenticate(ctx context.Context, req *dtos.LoginRequest) (*dtos.AuthResponse, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		return nil, &ServiceError{Op: "load user", Err: err}
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.authResponse(user)
}

func (s *UserService) Profile(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, &ServiceError{Op: "load user", Err: err}
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *UserService) ByEmail(ctx context.Context, email string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, &ServiceError{Op: "load user", Err: err}
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

// UpdateProfile writes only the fields present in req.
func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, req *dtos.ProfileUpdateRequest) (*models.User, error) {
	updates := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, invalid("name cannot be empty")
		}
		updates["name"] = name
	}
	if req.Bio != nil {
		updates["bio"] = strings.TrimSpace(*req.Bio)
	}
	if req.Skills != nil {
		updates["skills"] = pq.StringArray(*req.Skills)
	}
	if req.WalletAddress != nil {
		updates["wallet_address"] = strings.TrimSpace(*req.WalletAddress)
	}
	if req.LinkedIn != nil {
		updates["linked_in"] = strings.TrimSpace(*req.LinkedIn)
	}
	if req.Resume != nil {
		updates["resume"] = *req.Resume
	}

	user, err := s.users.Update(ctx, id, updates)
	if err != nil {
		return nil, &ServiceError{Op: "update user", Err: err}
	}
	if user == nil {
		return nil, ErrNotFound
	}
	return user, nil
}

func (s *UserService) authResponse(user *models.User) (*dtos.AuthResponse, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, &ServiceError{Op: "issue token", Err: err}
	}
	return &dtos.AuthResponse{Token: token, User: user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
