package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Mithilesh71320/nextera-code/internal/models"
	"github.com/Mithilesh71320/nextera-code/internal/repository"
	"github.com/Mithilesh71320/nextera-code/pkg/utils"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidRefresh     = errors.New("invalid or revoked refresh token")
	ErrRefreshExpired     = errors.New("refresh token expired")
	ErrEmailTaken         = errors.New("email already registered")
)

type AuthService struct {
	userRepo  *repository.UserRepository
	auditRepo *repository.AuditRepository
	log       *zap.Logger
	validate  *validator.Validate
}

func NewAuthService(userRepo *repository.UserRepository, auditRepo *repository.AuditRepository, log *zap.Logger) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		auditRepo: auditRepo,
		log:       log,
		validate:  newValidator(),
	}
}

// LoginResponse represents the response structure for login
type LoginResponse struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         UserResponse `json:"user"`
}

type UserResponse struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AdminInput is the payload for creating an admin account
type AdminInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Login authenticates an admin and returns tokens
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !utils.ComparePassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	response, err := s.issueTokens(ctx, user)
	if err != nil {
		return nil, err
	}

	_ = s.auditRepo.CreateAuditLog(ctx, &user.ID, "user_login", fmt.Sprintf("User %s logged in", user.Email))
	s.log.Info("admin signed in", zap.Uint("user_id", user.ID))

	return response, nil
}

// RefreshAccessToken generates a new access token from a refresh token
func (s *AuthService) RefreshAccessToken(ctx context.Context, refreshToken string) (string, error) {
	tokenHash := utils.HashRefreshToken(refreshToken)

	token, err := s.userRepo.FindRefreshTokenByHash(ctx, tokenHash)
	if err != nil {
		return "", ErrInvalidRefresh
	}

	if time.Now().After(token.ExpiresAt) {
		return "", ErrRefreshExpired
	}

	accessToken, err := utils.GenerateAccessToken(token.User.ID, token.User.Email, token.User.Role)
	if err != nil {
		return "", fmt.Errorf("failed to generate access token: %w", err)
	}

	return accessToken, nil
}

// Logout revokes a refresh token
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	tokenHash := utils.HashRefreshToken(refreshToken)

	if err := s.userRepo.RevokeRefreshTokenByHash(ctx, tokenHash); err != nil {
		return fmt.Errorf("failed to revoke refresh token: %w", err)
	}

	return nil
}

// Session returns the admin behind an authenticated request
func (s *AuthService) Session(ctx context.Context, userID uint) (*UserResponse, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if IsNotFound(err) {
			return nil, SessionMissing()
		}
		return nil, StoreFailure(err)
	}
	return &UserResponse{ID: user.ID, Email: user.Email, Role: user.Role}, nil
}

// CreateAdmin creates an admin account
func (s *AuthService) CreateAdmin(ctx context.Context, input AdminInput) (*UserResponse, error) {
	input.Email = strings.TrimSpace(input.Email)
	if err := validateStruct(s.validate, input); err != nil {
		return nil, err
	}

	if existing, err := s.userRepo.FindUserByEmail(ctx, input.Email); err == nil && existing != nil {
		return nil, ErrEmailTaken
	}

	passwordHash, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:        input.Email,
		PasswordHash: passwordHash,
		Role:         "admin",
	}
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	_ = s.auditRepo.CreateAuditLog(ctx, &user.ID, "user_registration", fmt.Sprintf("Admin %s created", user.Email))

	return &UserResponse{ID: user.ID, Email: user.Email, Role: user.Role}, nil
}

func (s *AuthService) issueTokens(ctx context.Context, user *models.User) (*LoginResponse, error) {
	accessToken, err := utils.GenerateAccessToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, err := utils.GenerateRefreshToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	// Hash and store refresh token
	refreshTokenModel := &models.RefreshToken{
		UserID:    user.ID,
		TokenHash: utils.HashRefreshToken(refreshToken),
		ExpiresAt: time.Now().Add(utils.GetRefreshTokenExpiry()),
	}
	if err := s.userRepo.CreateRefreshToken(ctx, refreshTokenModel); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: UserResponse{
			ID:    user.ID,
			Email: user.Email,
			Role:  user.Role,
		},
	}, nil
}
