package services

import (
	"context"
	"time"

	"github.com/keluargaku/keluargaku_app/internal/core/domain"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// TokenSvcFacade issues and validates session tokens.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	// ValidateAndParseRefreshToken checks a presented refresh token against
	// the stored hash and expiry, returning the owning user when valid.
	ValidateAndParseRefreshToken(ctx context.Context, userID, refreshToken string) (*domain.User, error)
}

// GoogleAuthSvcFacade is the Google identity-provider integration. The core
// treats it as an opaque credential issuer: it only consumes the verified
// identity and profile metadata.
type GoogleAuthSvcFacade interface {
	GenerateStateString(ctx context.Context) (string, error)
	GetLoginURL(ctx context.Context, state string) string
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	ValidateIDToken(ctx context.Context, idToken string) (*idtoken.Payload, error)
}
