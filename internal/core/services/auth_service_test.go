package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/keluargaku/keluargaku_app/internal/apperrors"
	"github.com/keluargaku/keluargaku_app/internal/core/domain"
	portssvc "github.com/keluargaku/keluargaku_app/internal/core/ports/services"
	"github.com/keluargaku/keluargaku_app/internal/core/services"
	"github.com/keluargaku/keluargaku_app/internal/platform/config"
	"github.com/keluargaku/keluargaku_app/internal/utils"
)

type TokenServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.TokenSvcFacade
	cfg          *config.Config
}

func (suite *TokenServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.cfg = &config.Config{
		JWTSecret:                  "test-secret-key",
		JWTExpiryDuration:          15 * time.Minute,
		JWTIssuer:                  "keluargaku-test",
		RefreshTokenExpiryDuration: 24 * time.Hour,
	}
	suite.service = services.NewTokenService(suite.mockUserRepo, suite.cfg)
}

func (suite *TokenServiceTestSuite) TestGenerateAccessToken_Parseable() {
	ctx := context.Background()
	user := soloUser(domain.RoleAyah)

	token, expiresAt, err := suite.service.GenerateAccessToken(ctx, user)

	suite.Require().NoError(err)
	suite.NotEmpty(token)
	suite.WithinDuration(time.Now().Add(15*time.Minute), expiresAt, time.Minute)

	claims, err := utils.ParseAndValidateJWT(token, suite.cfg.JWTSecret)
	suite.Require().NoError(err)
	suite.Equal(user.UserID, claims.Subject)
	suite.Equal("keluargaku-test", claims.Issuer)
}

func (suite *TokenServiceTestSuite) TestGenerateRefreshToken_OpaqueAndFresh() {
	ctx := context.Background()
	user := soloUser(domain.RoleAyah)

	first, expiry, err := suite.service.GenerateRefreshToken(ctx, user)
	suite.Require().NoError(err)
	second, _, err := suite.service.GenerateRefreshToken(ctx, user)
	suite.Require().NoError(err)

	suite.NotEmpty(first)
	suite.NotEqual(first, second)
	suite.WithinDuration(time.Now().Add(24*time.Hour), expiry, time.Minute)
}

func (suite *TokenServiceTestSuite) TestValidateRefreshToken_Success() {
	ctx := context.Background()
	raw := "raw-refresh-token"
	expiry := time.Now().Add(time.Hour)
	user := soloUser(domain.RoleIbu)
	user.RefreshTokenHash = utils.HashRefreshToken(raw)
	user.RefreshTokenExpiryTime = &expiry

	suite.mockUserRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()

	got, err := suite.service.ValidateAndParseRefreshToken(ctx, user.UserID, raw)

	suite.Require().NoError(err)
	suite.Equal(user.UserID, got.UserID)
}

func (suite *TokenServiceTestSuite) TestValidateRefreshToken_HashMismatch() {
	ctx := context.Background()
	expiry := time.Now().Add(time.Hour)
	user := soloUser(domain.RoleIbu)
	user.RefreshTokenHash = utils.HashRefreshToken("the-real-token")
	user.RefreshTokenExpiryTime = &expiry

	suite.mockUserRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()

	got, err := suite.service.ValidateAndParseRefreshToken(ctx, user.UserID, "a-stolen-guess")

	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Nil(got)
}

func (suite *TokenServiceTestSuite) TestValidateRefreshToken_Expired() {
	ctx := context.Background()
	raw := "raw-refresh-token"
	expiry := time.Now().Add(-time.Minute)
	user := soloUser(domain.RoleIbu)
	user.RefreshTokenHash = utils.HashRefreshToken(raw)
	user.RefreshTokenExpiryTime = &expiry

	suite.mockUserRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()

	got, err := suite.service.ValidateAndParseRefreshToken(ctx, user.UserID, raw)

	suite.Require().ErrorIs(err, apperrors.ErrRefreshTokenExpired)
	suite.Nil(got)
}

func (suite *TokenServiceTestSuite) TestValidateRefreshToken_NoStoredToken() {
	ctx := context.Background()
	user := soloUser(domain.RoleIbu)

	suite.mockUserRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()

	_, err := suite.service.ValidateAndParseRefreshToken(ctx, user.UserID, "anything")

	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestTokenServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TokenServiceTestSuite))
}
