package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"taskhub/internal/auth"
	"taskhub/internal/cache"
	apperrors "taskhub/internal/errors"
	"taskhub/internal/model"
	"taskhub/internal/repository"
	"taskhub/internal/validation"
)

const profileCacheTTL = 5 * time.Minute

// AuthService handles registration, login, and profile lookup.
type AuthService interface {
	Register(ctx context.Context, email, password string) (token string, user *model.User, err error)
	Login(ctx context.Context, email, password string) (token string, err error)
	Profile(ctx context.Context, email string) (*model.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	hasher     *auth.Hasher
	jwtService *auth.JWTService
	cache      *cache.Client
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, hasher *auth.Hasher, jwtService *auth.JWTService, cache *cache.Client) AuthService {
	return &authService{
		userRepo:   userRepo,
		hasher:     hasher,
		jwtService: jwtService,
		cache:      cache,
	}
}

// Register validates the credentials, persists the new user, and issues a
// token with the email as subject. Duplicate emails fail with ErrEmailTaken.
func (s *authService) Register(ctx context.Context, email, password string) (string, *model.User, error) {
	if !validation.ValidEmail(email) {
		return "", nil, apperrors.ErrInvalidEmail
	}
	if !validation.ValidPassword(password) {
		return "", nil, apperrors.NewValidationError(validation.PasswordPolicy())
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return "", nil, apperrors.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil, fmt.Errorf("check user existence: %w", err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return "", nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.User{
		Email:        email,
		PasswordHash: hashed,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent registration can slip past the pre-check; the unique
		// index on email reports it here.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return "", nil, apperrors.ErrEmailTaken
		}
		return "", nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.jwtService.GenerateToken(user.Email)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	return token, user, nil
}

// Login authenticates a user and issues a token. Unknown email and wrong
// password both return ErrInvalidCredentials so callers cannot tell which
// field was wrong.
func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return "", apperrors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(user.Email)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}

	return token, nil
}

// Profile returns the user record for the given email, cache-aside with a
// short TTL.
func (s *authService) Profile(ctx context.Context, email string) (*model.User, error) {
	key := "profile:" + email
	if data, _ := s.cache.Get(ctx, key); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if payload, err := json.Marshal(user); err == nil {
		_ = s.cache.Set(ctx, key, payload, profileCacheTTL)
	}
	return user, nil
}
