package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/models"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/app/models/dto"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/apperrors"
	"github.com/Neha-Elizabeth-Thomas/HackNet/internal/pkg/auth"
)

// AuthService handles authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Profile(ctx context.Context, userID int64) (*dto.UserResponse, error)
}

type authServiceImpl struct {
	users      UserStore
	jwtService *auth.JWTService
	logger     zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(users UserStore, jwtService *auth.JWTService, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		users:      users,
		jwtService: jwtService,
		logger:     logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a faculty account and signs it in.
func (s *authServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("name", "name cannot be empty")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		Name:     name,
		Email:    normalizeEmail(req.Email),
		Password: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrEmailAlreadyExists) {
			s.logger.Info().Str("email", user.Email).Msg("Registration with existing email")
		}
		return nil, err
	}

	s.logger.Info().Int64("userID", user.ID).Msg("Faculty registered")
	return s.authResponse(user)
}

// Login verifies credentials. Unknown email and wrong password are
// indistinguishable to the caller.
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		s.logger.Info().Int64("userID", user.ID).Msg("Login with wrong password")
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.authResponse(user)
}

// Profile returns the public fields of a user.
func (s *authServiceImpl) Profile(ctx context.Context, userID int64) (*dto.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *authServiceImpl) authResponse(user *models.User) (*dto.AuthResponse, error) {
	token, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{
		User: dto.NewUserResponse(user),
		Token: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   expiresIn,
		},
	}, nil
}
