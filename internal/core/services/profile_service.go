package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/keluargaku/keluargaku_app/internal/apperrors"
	"github.com/keluargaku/keluargaku_app/internal/core/domain"
	portsrepo "github.com/keluargaku/keluargaku_app/internal/core/ports/repositories"
	portssvc "github.com/keluargaku/keluargaku_app/internal/core/ports/services"
	"github.com/keluargaku/keluargaku_app/internal/platform/config"
)

// profileService resolves identities into application profiles, provisioning
// a user row on first sign-in and denormalizing family membership (members
// included) into the result.
type profileService struct {
	BaseService
	userRepo       portsrepo.UserRepository
	familyService  portssvc.FamilySvcFacade
	resolveTimeout time.Duration
	maxAttempts    int
	backoffBase    time.Duration
}

// NewProfileService creates a new profile service.
func NewProfileService(ur portsrepo.UserRepository, fs portssvc.FamilySvcFacade, cfg *config.Config) portssvc.ProfileSvcFacade {
	return &profileService{
		userRepo:       ur,
		familyService:  fs,
		resolveTimeout: cfg.ProfileResolveTimeout,
		maxAttempts:    cfg.RefreshMaxAttempts,
		backoffBase:    cfg.RefreshBackoffBase,
	}
}

var _ portssvc.ProfileSvcFacade = (*profileService)(nil)

// ResolveProfile loads the user row for an identity, provisioning one from
// provider metadata when absent. The primary read runs under an explicit
// timeout; a deadline hit surfaces as ErrTimeout, never as NotFound, so
// callers retry instead of provisioning a duplicate.
func (s *profileService) ResolveProfile(ctx context.Context, identityID string, meta domain.IdentityMetadata) (*domain.Profile, error) {
	readCtx, cancel := context.WithTimeout(ctx, s.resolveTimeout)
	defer cancel()

	user, err := s.userRepo.FindUserByID(readCtx, identityID)
	switch {
	case err == nil:
		// fall through to enrichment
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, apperrors.ErrTimeout):
		s.LogError(ctx, err, "Profile read timed out", slog.String("identity_id", identityID))
		return nil, apperrors.ErrTimeout
	case errors.Is(err, apperrors.ErrNotFound):
		user, err = s.provision(ctx, identityID, meta)
		if err != nil {
			return nil, err
		}
	default:
		s.LogError(ctx, err, "Profile read failed", slog.String("identity_id", identityID))
		return nil, fmt.Errorf("failed to resolve profile: %w", err)
	}

	profile := &domain.Profile{User: *user}
	if user.InFamily() {
		// Enrichment failure degrades to a family-less profile; resolution
		// itself never fails because of it. GetFamilyByID already retries
		// the joined read as two separate reads.
		family, famErr := s.familyService.GetFamilyByID(ctx, *user.FamilyID)
		if famErr != nil {
			s.LogError(ctx, famErr, "Family enrichment failed, returning profile without family",
				slog.String("identity_id", identityID), slog.String("family_id", *user.FamilyID))
		} else {
			profile.Family = family
		}
	}
	return profile, nil
}

func (s *profileService) provision(ctx context.Context, identityID string, meta domain.IdentityMetadata) (*domain.User, error) {
	role := meta.Role
	if !role.IsValid() {
		role = domain.RoleIbu
	}

	now := time.Now()
	user := domain.User{
		UserID:       identityID,
		Email:        meta.Email,
		Name:         meta.Name,
		Role:         role,
		AuthProvider: domain.ProviderGoogle,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     identityID,
			LastUpdatedAt: now,
			LastUpdatedBy: identityID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "Profile provisioning insert failed", slog.String("identity_id", identityID))
		return nil, fmt.Errorf("%w: %v", apperrors.ErrProfileProvisioningFailed, err)
	}
	s.LogInfo(ctx, "Profile provisioned on first sign-in", slog.String("identity_id", identityID), slog.String("role", string(role)))
	return &user, nil
}

// Refresh re-runs resolution against current store state with bounded retry:
// maxAttempts tries, exponential backoff from backoffBase, only transient
// and timeout failures retried. Exhaustion surfaces ErrRefreshFailed and the
// caller keeps the previously resolved profile.
func (s *profileService) Refresh(ctx context.Context, identityID string) (*domain.Profile, error) {
	var lastErr error
	backoff := s.backoffBase
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		profile, err := s.ResolveProfile(ctx, identityID, domain.IdentityMetadata{})
		if err == nil {
			return profile, nil
		}
		lastErr = err
		if !errors.Is(err, apperrors.ErrTimeout) && !errors.Is(err, apperrors.ErrTransient) {
			break
		}
		if attempt == s.maxAttempts {
			break
		}
		s.LogDebug(ctx, "Profile refresh retrying",
			slog.String("identity_id", identityID), slog.Int("attempt", attempt), slog.Duration("backoff", backoff))
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", apperrors.ErrRefreshFailed, ctx.Err())
		case <-time.After(backoff):
		}
		backoff *= 2
	}
	s.LogError(ctx, lastErr, "Profile refresh failed", slog.String("identity_id", identityID))
	return nil, fmt.Errorf("%w: %v", apperrors.ErrRefreshFailed, lastErr)
}
