package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"eventhub-be/internal/apperrors"
	"eventhub-be/internal/entities"
	"eventhub-be/internal/models"
	"eventhub-be/internal/repository"
	"eventhub-be/internal/security"
)

const defaultProvider = "google"

var (
	registerMessages = validationMessages{
		"required":  "All fields are required",
		"min":       "Password must be at least 6 characters",
		"bcryptlen": "Password must be at most 72 bytes",
	}
	loginMessages = validationMessages{
		"required": "Email and password are required",
	}
	providerMessages = validationMessages{
		"required": "Name and email are required",
	}
)

// AuthService defines the interface for identity business logic. It checks
// credentials only and never issues tokens.
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	ProviderSignIn(ctx context.Context, req *models.ProviderAuthRequest) (*models.AuthResponse, error)
}

type authService struct {
	userRepo repository.UserRepository
	hasher   security.PasswordHasher
	now      func() time.Time
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo repository.UserRepository, hasher security.PasswordHasher) AuthService {
	return &authService{
		userRepo: userRepo,
		hasher:   hasher,
		now:      storeNow,
	}
}

// storeNow is truncated to the millisecond precision of BSON dates
func storeNow() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}

// Register creates a local account with a hashed password
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	if err := check(req, registerMessages); err != nil {
		return nil, err
	}

	_, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err == nil {
		return nil, apperrors.Conflict("User already exists with this email")
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.Internal("find user by email", err)
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperrors.Internal("hash password", err)
	}

	now := s.now()
	user := &entities.User{
		Name:      req.Name,
		Email:     req.Email,
		Password:  hashed,
		Role:      entities.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}

	// The unique email index catches registrations that raced past the lookup
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperrors.Conflict("User already exists with this email")
		}
		return nil, apperrors.Internal("create user", err)
	}

	return &models.AuthResponse{
		Message: "User created successfully",
		User: models.UserResponse{
			ID:    user.ID.Hex(),
			Name:  user.Name,
			Email: user.Email,
		},
	}, nil
}

// Login verifies an email/password pair. Unknown email and wrong password
// produce the same error.
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	if err := check(req, loginMessages); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, apperrors.InvalidCredentials()
	}
	if err != nil {
		return nil, apperrors.Internal("find user by email", err)
	}

	// Provider-only accounts cannot log in with a password
	if !user.HasPassword() || !s.hasher.Verify(req.Password, user.Password) {
		return nil, apperrors.InvalidCredentials()
	}

	return &models.AuthResponse{
		Message: "Login successful",
		User:    userResponse(user),
	}, nil
}

// ProviderSignIn upserts the profile of a user who signed in through a
// third-party provider, keyed by email.
func (s *authService) ProviderSignIn(ctx context.Context, req *models.ProviderAuthRequest) (*models.AuthResponse, error) {
	if err := check(req, providerMessages); err != nil {
		return nil, err
	}

	provider := strings.TrimSpace(req.Provider)
	if provider == "" {
		provider = defaultProvider
	}

	existing, err := s.userRepo.FindByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return s.refreshProvider(ctx, existing, provider)
	case !errors.Is(err, repository.ErrNotFound):
		return nil, apperrors.Internal("find user by email", err)
	}

	now := s.now()
	user := &entities.User{
		Name:      req.Name,
		Email:     req.Email,
		Role:      entities.RoleUser,
		Provider:  provider,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = s.userRepo.Create(ctx, user)
	if errors.Is(err, repository.ErrDuplicateKey) {
		// A concurrent sign-in created the user first
		existing, err = s.userRepo.FindByEmail(ctx, req.Email)
		if err != nil {
			return nil, apperrors.Internal("find user after duplicate insert", err)
		}
		return s.refreshProvider(ctx, existing, provider)
	}
	if err != nil {
		return nil, apperrors.Internal("create provider user", err)
	}

	return &models.AuthResponse{
		Message: "User created with " + providerLabel(provider) + " OAuth",
		User:    userResponse(user),
	}, nil
}

func (s *authService) refreshProvider(ctx context.Context, user *entities.User, provider string) (*models.AuthResponse, error) {
	if err := s.userRepo.UpdateProvider(ctx, user.Email, provider, s.now()); err != nil {
		return nil, apperrors.Internal("update user provider", err)
	}

	return &models.AuthResponse{
		Message: "User updated with " + providerLabel(provider) + " OAuth",
		User:    userResponse(user),
	}, nil
}

func userResponse(user *entities.User) models.UserResponse {
	return models.UserResponse{
		ID:    user.ID.Hex(),
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}
}

// providerLabel turns "google" into "Google" for response messages
func providerLabel(provider string) string {
	if provider == "" {
		return provider
	}
	r, size := utf8.DecodeRuneInString(provider)
	return string(unicode.ToUpper(r)) + provider[size:]
}
