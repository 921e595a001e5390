package service

import (
	"context"
	"log/slog"
	"time"

	"CoinVestAPI/internal/config"
	"CoinVestAPI/internal/helper"
	"CoinVestAPI/internal/model"
	"CoinVestAPI/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type AuthService struct {
	users         *repository.UserRepository
	cfg           *config.AppConfig
	validator     *validator.Validate
	adminResolver AdminResolver
}

func NewAuthService(users *repository.UserRepository, cfg *config.AppConfig, validator *validator.Validate, adminResolver AdminResolver) *AuthService {
	return &AuthService{
		users:         users,
		cfg:           cfg,
		validator:     validator,
		adminResolver: adminResolver,
	}
}

func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (*model.AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		slog.Warn("Validation failed", "error", err)
		return nil, helper.NewBadRequestError("")
	}

	hash, err := helper.HashPassword(req.Password)
	if err != nil {
		slog.Error("Failed to hash password", "error", err)
		return nil, helper.NewInternalServerError("")
	}

	user := &model.User{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if repository.IsConstraintViolation(err) {
			return nil, helper.NewConflictError("Email already registered")
		}
		slog.Error("Failed to create user", "error", err)
		return nil, helper.NewInternalServerError("")
	}

	return s.authResponse(ctx, user)
}

func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		slog.Warn("Validation failed", "error", err)
		return nil, helper.NewBadRequestError("")
	}

	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, helper.NewUnauthorizedError("Invalid email or password")
		}
		slog.Error("Failed to look up user", "error", err)
		return nil, helper.NewInternalServerError("")
	}

	if !helper.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, helper.NewUnauthorizedError("Invalid email or password")
	}

	return s.authResponse(ctx, user)
}

func (s *AuthService) VerifyUser(ctx context.Context, tokenString string) (*model.UserDTO, error) {
	claims, err := helper.VerifyJWT(s.cfg.JWTSecret, tokenString)
	if err != nil {
		return nil, helper.NewUnauthorizedError("")
	}

	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, helper.NewUnauthorizedError("")
		}
		slog.Error("Failed to load user for token", "error", err, "userID", claims.UserID)
		return nil, helper.NewInternalServerError("")
	}

	return s.toDTO(ctx, user), nil
}

func (s *AuthService) authResponse(ctx context.Context, user *model.User) (*model.AuthResponse, error) {
	token, err := helper.GenerateJWT(s.cfg.JWTSecret, s.cfg.JWTExp, user.ID)
	if err != nil {
		slog.Error("Failed to generate token", "error", err, "userID", user.ID)
		return nil, helper.NewInternalServerError("")
	}

	return &model.AuthResponse{
		Token: token,
		User:  *s.toDTO(ctx, user),
	}, nil
}

func (s *AuthService) toDTO(ctx context.Context, user *model.User) *model.UserDTO {
	isAdmin := false
	if adminID, err := s.adminResolver.ResolveAdmin(ctx); err == nil {
		isAdmin = adminID == user.ID
	}

	return &model.UserDTO{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		IsAdmin: isAdmin,
	}
}
