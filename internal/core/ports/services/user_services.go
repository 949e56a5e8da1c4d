package services

import (
	"context"

	"github.com/keluargaku/keluargaku_app/internal/core/domain"
	"github.com/keluargaku/keluargaku_app/internal/dto"
)

// UserSvcFacade manages user accounts and credentials.
type UserSvcFacade interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, updaterUserID string) (*domain.User, error)
	// FindOrProvisionByProvider returns the user matching the external
	// identity, creating one from the provider metadata when absent.
	FindOrProvisionByProvider(ctx context.Context, provider domain.AuthProvider, providerUserID string, meta domain.IdentityMetadata) (*domain.User, error)
	StoreRefreshToken(ctx context.Context, userID, refreshToken string, expiry int64) error
	ClearRefreshToken(ctx context.Context, userID string) error
}

// ProfileSvcFacade resolves identities into application profiles.
type ProfileSvcFacade interface {
	// ResolveProfile loads the user for an identity, provisioning one from
	// provider metadata when absent, and enriches it with the family and its
	// derived member list when the user belongs to one. Family enrichment
	// failure degrades to a profile without family; it never fails resolution.
	ResolveProfile(ctx context.Context, identityID string, meta domain.IdentityMetadata) (*domain.Profile, error)
	// Refresh re-runs resolution against current store state with bounded
	// retry. On exhaustion it returns ErrRefreshFailed; callers keep the
	// previously resolved profile.
	Refresh(ctx context.Context, identityID string) (*domain.Profile, error)
}
