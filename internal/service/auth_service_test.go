package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"taskhub/internal/auth"
	apperrors "taskhub/internal/errors"
	"taskhub/internal/model"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func newAuthService(repo *MockUserRepository) AuthService {
	return NewAuthService(repo, auth.NewHasher(), auth.NewJWTService("test-secret"), nil)
}

func TestAuthService_Register(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
		expectValErr  bool
	}{
		{
			name:     "successful registration",
			email:    "alice@x.com",
			password: "Str0ng!Pass",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "alice@x.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)
			},
		},
		{
			name:          "invalid email format",
			email:         "not-an-email",
			password:      "Str0ng!Pass",
			setupMock:     func(m *MockUserRepository) {},
			expectedError: apperrors.ErrInvalidEmail,
		},
		{
			name:         "weak password",
			email:        "alice@x.com",
			password:     "weakpass",
			setupMock:    func(m *MockUserRepository) {},
			expectValErr: true,
		},
		{
			name:     "duplicate email caught by unique index",
			email:    "racing@x.com",
			password: "Str0ng!Pass",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "racing@x.com").Return(nil, gorm.ErrRecordNotFound)
				m.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(gorm.ErrDuplicatedKey)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
		{
			name:     "email already registered",
			email:    "existing@x.com",
			password: "Str0ng!Pass",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "existing@x.com").Return(&model.User{Email: "existing@x.com"}, nil)
			},
			expectedError: apperrors.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := newAuthService(mockRepo)
			token, user, err := service.Register(context.Background(), tt.email, tt.password)

			switch {
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
				assert.Nil(t, user)
			case tt.expectValErr:
				var verr *apperrors.ValidationError
				assert.ErrorAs(t, err, &verr)
				assert.Empty(t, token)
				assert.Nil(t, user)
			default:
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
				assert.NotNil(t, user)
				assert.Equal(t, tt.email, user.Email)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, tt.password, user.PasswordHash)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_RegisterTokenSubject(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "alice@x.com").Return(nil, gorm.ErrRecordNotFound)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

	jwtService := auth.NewJWTService("test-secret")
	service := NewAuthService(mockRepo, auth.NewHasher(), jwtService, nil)

	token, _, err := service.Register(context.Background(), "alice@x.com", "Str0ng!Pass")
	assert.NoError(t, err)

	claims, err := jwtService.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "alice@x.com", claims.Subject)
}

func TestAuthService_Login(t *testing.T) {
	hasher := auth.NewHasher()
	digest, err := hasher.Hash("Str0ng!Pass")
	assert.NoError(t, err)

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "alice@x.com",
			password: "Str0ng!Pass",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "alice@x.com").Return(&model.User{
					ID:           uuid.New(),
					Email:        "alice@x.com",
					PasswordHash: digest,
				}, nil)
			},
		},
		{
			name:     "unknown user",
			email:    "bob@x.com",
			password: "Str0ng!Pass",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "bob@x.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			email:    "alice@x.com",
			password: "Wr0ng!Pass",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "alice@x.com").Return(&model.User{
					ID:           uuid.New(),
					Email:        "alice@x.com",
					PasswordHash: digest,
				}, nil)
			},
			expectedError: apperrors.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockUserRepository)
			tt.setupMock(mockRepo)

			service := newAuthService(mockRepo)
			token, err := service.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
			} else {
				assert.NoError(t, err)
				assert.NotEmpty(t, token)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestAuthService_Profile(t *testing.T) {
	t.Run("existing user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, "alice@x.com").Return(&model.User{
			ID:    uuid.New(),
			Email: "alice@x.com",
		}, nil)

		service := newAuthService(mockRepo)
		user, err := service.Profile(context.Background(), "alice@x.com")
		assert.NoError(t, err)
		assert.Equal(t, "alice@x.com", user.Email)
		mockRepo.AssertExpectations(t)
	})

	t.Run("stale subject", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByEmail", mock.Anything, "gone@x.com").Return(nil, gorm.ErrRecordNotFound)

		service := newAuthService(mockRepo)
		user, err := service.Profile(context.Background(), "gone@x.com")
		assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
		assert.Nil(t, user)
		mockRepo.AssertExpectations(t)
	})
}
