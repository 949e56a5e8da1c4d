package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/keluargaku/keluargaku_app/internal/apperrors"
	"github.com/keluargaku/keluargaku_app/internal/core/domain"
	portsrepo "github.com/keluargaku/keluargaku_app/internal/core/ports/repositories"
	portssvc "github.com/keluargaku/keluargaku_app/internal/core/ports/services"
	"github.com/keluargaku/keluargaku_app/internal/dto"
	"github.com/keluargaku/keluargaku_app/internal/utils"
)

// userService manages user accounts and credentials.
type userService struct {
	BaseService
	userRepo portsrepo.UserRepository
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepository) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

var _ portssvc.UserSvcFacade = (*userService)(nil)

// Register creates a local account with a bcrypt-hashed password.
func (s *userService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	existing, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	if existing != nil {
		return nil, apperrors.NewConflictError("email already registered")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	userID := uuid.NewString()
	user := domain.User{
		UserID:       userID,
		Email:        req.Email,
		Name:         req.Name,
		Role:         req.Role,
		PasswordHash: &hash,
		AuthProvider: domain.ProviderLocal,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Failed to save new user", slog.String("email", req.Email))
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID), slog.String("role", string(user.Role)))
	return &user, nil
}

// Authenticate checks local credentials and returns the user.
func (s *userService) Authenticate(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user.PasswordHash == nil || !utils.CheckPasswordHash(password, *user.PasswordHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

// GetUserByID fetches a user by id.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find user", slog.String("user_id", userID))
		}
		return nil, err
	}
	return user, nil
}

// UpdateUser applies a profile patch. Role changes are rejected while the
// user belongs to a family: the role occupies a slot there.
func (s *userService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, updaterUserID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil && *req.Role != user.Role {
		if user.InFamily() {
			return nil, apperrors.NewValidationFailedError("cannot change role while in a family")
		}
		user.Role = *req.Role
	}
	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = updaterUserID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update user", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// FindOrProvisionByProvider returns the user tied to an external identity,
// creating one from provider metadata on first sign-in.
func (s *userService) FindOrProvisionByProvider(ctx context.Context, provider domain.AuthProvider, providerUserID string, meta domain.IdentityMetadata) (*domain.User, error) {
	user, err := s.userRepo.FindUserByProviderDetails(ctx, string(provider), providerUserID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up provider identity: %w", err)
	}

	// An existing local account with the same email adopts the provider
	// identity instead of creating a duplicate.
	if meta.Email != "" {
		if existing, emailErr := s.userRepo.FindUserByEmail(ctx, meta.Email); emailErr == nil {
			existing.AuthProvider = provider
			existing.ProviderUserID = &providerUserID
			existing.LastUpdatedAt = time.Now()
			existing.LastUpdatedBy = existing.UserID
			if updErr := s.userRepo.UpdateUser(ctx, *existing); updErr != nil {
				return nil, fmt.Errorf("failed to link provider identity: %w", updErr)
			}
			return existing, nil
		}
	}

	role := meta.Role
	if !role.IsValid() {
		role = domain.RoleIbu
	}
	now := time.Now()
	userID := uuid.NewString()
	user = &domain.User{
		UserID:         userID,
		Email:          meta.Email,
		Name:           meta.Name,
		Role:           role,
		AuthProvider:   provider,
		ProviderUserID: &providerUserID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if err := s.userRepo.SaveUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to provision provider user", slog.String("provider", string(provider)))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrProfileProvisioningFailed, err)
	}
	s.LogInfo(ctx, "Provider user provisioned", slog.String("user_id", user.UserID), slog.String("provider", string(provider)))
	return user, nil
}

// StoreRefreshToken hashes and persists a refresh token with its expiry.
func (s *userService) StoreRefreshToken(ctx context.Context, userID, refreshToken string, expiryUnix int64) error {
	return s.userRepo.UpdateRefreshToken(ctx, userID, utils.HashRefreshToken(refreshToken), time.Unix(expiryUnix, 0))
}

// ClearRefreshToken drops the stored refresh token, ending the session.
func (s *userService) ClearRefreshToken(ctx context.Context, userID string) error {
	return s.userRepo.ClearRefreshToken(ctx, userID)
}
