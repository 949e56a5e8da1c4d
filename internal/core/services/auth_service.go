package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/keluargaku/keluargaku_app/internal/apperrors"
	"github.com/keluargaku/keluargaku_app/internal/core/domain"
	portsrepo "github.com/keluargaku/keluargaku_app/internal/core/ports/repositories"
	portssvc "github.com/keluargaku/keluargaku_app/internal/core/ports/services"
	"github.com/keluargaku/keluargaku_app/internal/platform/config"
	"github.com/keluargaku/keluargaku_app/internal/utils"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

// tokenService issues access tokens and manages the refresh token lifecycle.
type tokenService struct {
	BaseService
	userRepo           portsrepo.UserRepository
	jwtSecret          string
	jwtExpiry          time.Duration
	jwtIssuer          string
	refreshTokenExpiry time.Duration
}

// NewTokenService creates a new token service from the app configuration.
func NewTokenService(ur portsrepo.UserRepository, cfg *config.Config) portssvc.TokenSvcFacade {
	return &tokenService{
		userRepo:           ur,
		jwtSecret:          cfg.JWTSecret,
		jwtExpiry:          cfg.JWTExpiryDuration,
		jwtIssuer:          cfg.JWTIssuer,
		refreshTokenExpiry: cfg.RefreshTokenExpiryDuration,
	}
}

var _ portssvc.TokenSvcFacade = (*tokenService)(nil)

// GenerateAccessToken issues a short-lived signed JWT for the user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.jwtExpiry)
	token, err := utils.GenerateJWT(user.UserID, s.jwtSecret, s.jwtExpiry, s.jwtIssuer)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.String("user_id", user.UserID))
		return "", time.Time{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return token, expiresAt, nil
}

// GenerateRefreshToken issues an opaque random refresh token. The raw value
// goes to the client; only its hash is stored.
func (s *tokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	raw, err := utils.GenerateSecureRandomString(32)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate refresh token", slog.String("user_id", user.UserID))
		return "", time.Time{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return raw, time.Now().Add(s.refreshTokenExpiry), nil
}

// ValidateAndParseRefreshToken checks a presented refresh token against the
// stored hash and expiry and returns the owning user.
func (s *tokenService) ValidateAndParseRefreshToken(ctx context.Context, userID, refreshToken string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, apperrors.ErrUnauthorized
	}
	if user.RefreshTokenHash == "" || !utils.CompareRefreshTokenHash(refreshToken, user.RefreshTokenHash) {
		s.LogInfo(ctx, "Refresh token hash mismatch", slog.String("user_id", userID))
		return nil, apperrors.ErrUnauthorized
	}
	if user.RefreshTokenExpiryTime == nil || time.Now().After(*user.RefreshTokenExpiryTime) {
		return nil, apperrors.ErrRefreshTokenExpired
	}
	return user, nil
}

// googleAuthService implements the Google identity-provider integration on
// top of the standard oauth2 flow plus ID-token verification.
type googleAuthService struct {
	BaseService
	oauthConfig *oauth2.Config
	clientID    string
}

// NewGoogleAuthService creates a new Google auth service from the app
// configuration.
func NewGoogleAuthService(cfg *config.Config) portssvc.GoogleAuthSvcFacade {
	return &googleAuthService{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		clientID: cfg.GoogleClientID,
	}
}

var _ portssvc.GoogleAuthSvcFacade = (*googleAuthService)(nil)

// GenerateStateString returns a random state value for CSRF protection of
// the OAuth redirect dance.
func (s *googleAuthService) GenerateStateString(ctx context.Context) (string, error) {
	state, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate OAuth state")
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return state, nil
}

// GetLoginURL returns the Google consent-screen URL for the given state.
func (s *googleAuthService) GetLoginURL(ctx context.Context, state string) string {
	return s.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOffline)
}

// ExchangeCodeForToken swaps an authorization code for tokens.
func (s *googleAuthService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauthConfig.Exchange(ctx, code)
	if err != nil {
		s.LogError(ctx, err, "Failed to exchange authorization code")
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	return token, nil
}

// ValidateIDToken verifies the ID token signature and audience and returns
// its payload.
func (s *googleAuthService) ValidateIDToken(ctx context.Context, idToken string) (*idtoken.Payload, error) {
	payload, err := idtoken.Validate(ctx, idToken, s.clientID)
	if err != nil {
		s.LogError(ctx, err, "Failed to validate Google ID token")
		return nil, fmt.Errorf("%w: invalid google id token", apperrors.ErrUnauthorized)
	}
	return payload, nil
}
