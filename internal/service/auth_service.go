package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"roomshift/internal/auth"
	apperrors "roomshift/internal/errors"
	"roomshift/internal/model"
	"roomshift/internal/repository"
)

const (
	bcryptCost = 10
	// matches the users.email column
	maxEmailLen = 255
)

func normalizeCredentials(email, password string) (string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return "", apperrors.ErrMissingCredentials
	}
	if len(email) > maxEmailLen {
		return "", fmt.Errorf("%w: email", apperrors.ErrFieldTooLong)
	}
	return email, nil
}

// AuthResult is what a successful register or login hands back to the caller.
type AuthResult struct {
	User        *model.User
	AccessToken string
}

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, email, password, phone string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Register creates a new user with a hashed password.
func (s *authService) Register(ctx context.Context, email, password, phone string) (*AuthResult, error) {
	email, err := normalizeCredentials(email, password)
	if err != nil {
		return nil, err
	}

	// Check if user already exists
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, apperrors.ErrDuplicateUser
	}
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("check user existence: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		Phone:        strings.TrimSpace(phone),
		CreatedAt:    time.Now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, apperrors.ErrDuplicateUser
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return s.issue(user)
}

// Login verifies the password and returns the user with a fresh access token.
func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email, err := normalizeCredentials(email, password)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *authService) issue(user *model.User) (*AuthResult, error) {
	token, err := s.jwtService.GenerateAccessToken(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	return &AuthResult{User: user, AccessToken: token}, nil
}
