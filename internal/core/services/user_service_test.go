package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/keluargaku/keluargaku_app/internal/apperrors"
	"github.com/keluargaku/keluargaku_app/internal/core/domain"
	portssvc "github.com/keluargaku/keluargaku_app/internal/core/ports/services"
	"github.com/keluargaku/keluargaku_app/internal/core/services"
	"github.com/keluargaku/keluargaku_app/internal/dto"
	"github.com/keluargaku/keluargaku_app/internal/utils"
)

type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo *MockUserRepository
	service      portssvc.UserSvcFacade
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.service = services.NewUserService(suite.mockUserRepo)
}

// --- Register ---

func (suite *UserServiceTestSuite) TestRegister_Success() {
	ctx := context.Background()
	req := dto.RegisterRequest{
		Email:    "budi@example.com",
		Password: "rahasia-sekali",
		Name:     "Budi",
		Role:     domain.RoleAyah,
	}

	suite.mockUserRepo.On("FindUserByEmail", ctx, req.Email).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Email == req.Email &&
			u.Role == domain.RoleAyah &&
			u.AuthProvider == domain.ProviderLocal &&
			u.ProviderUserID == nil &&
			u.PasswordHash != nil && *u.PasswordHash != req.Password
	})).Return(nil).Once()

	user, err := suite.service.Register(ctx, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(user)
	suite.NotEmpty(user.UserID)
	suite.Equal(user.UserID, user.CreatedBy)
	suite.True(utils.CheckPasswordHash(req.Password, *user.PasswordHash))
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestRegister_DuplicateEmail() {
	ctx := context.Background()
	existing := soloUser(domain.RoleIbu)
	req := dto.RegisterRequest{Email: existing.Email, Password: "rahasia-sekali", Name: "Siti", Role: domain.RoleIbu}

	suite.mockUserRepo.On("FindUserByEmail", ctx, req.Email).Return(existing, nil).Once()

	user, err := suite.service.Register(ctx, req)

	suite.Require().Error(err)
	suite.Nil(user)
	var appErr *apperrors.AppError
	suite.Require().True(errors.As(err, &appErr))
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

// --- Authenticate ---

func (suite *UserServiceTestSuite) TestAuthenticate_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("rahasia-sekali")
	suite.Require().NoError(err)
	stored := soloUser(domain.RoleAyah)
	stored.PasswordHash = &hash

	suite.mockUserRepo.On("FindUserByEmail", ctx, stored.Email).Return(stored, nil).Once()

	user, err := suite.service.Authenticate(ctx, stored.Email, "rahasia-sekali")

	suite.Require().NoError(err)
	suite.Equal(stored.UserID, user.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticate_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("rahasia-sekali")
	suite.Require().NoError(err)
	stored := soloUser(domain.RoleAyah)
	stored.PasswordHash = &hash

	suite.mockUserRepo.On("FindUserByEmail", ctx, stored.Email).Return(stored, nil).Once()

	user, err := suite.service.Authenticate(ctx, stored.Email, "salah-total")

	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Nil(user)
}

func (suite *UserServiceTestSuite) TestAuthenticate_UnknownEmail() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "nobody@example.com").Return(nil, apperrors.ErrNotFound).Once()

	user, err := suite.service.Authenticate(ctx, "nobody@example.com", "whatever-pw")

	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
	suite.Nil(user)
}

func (suite *UserServiceTestSuite) TestAuthenticate_ProviderOnlyAccount() {
	ctx := context.Background()
	stored := soloUser(domain.RoleAyah)
	stored.PasswordHash = nil
	stored.AuthProvider = domain.ProviderGoogle

	suite.mockUserRepo.On("FindUserByEmail", ctx, stored.Email).Return(stored, nil).Once()

	_, err := suite.service.Authenticate(ctx, stored.Email, "anything")

	suite.Require().ErrorIs(err, apperrors.ErrUnauthorized)
}

// --- UpdateUser ---

func (suite *UserServiceTestSuite) TestUpdateUser_RoleChangeBlockedInFamily() {
	ctx := context.Background()
	user := ayahInFamily(uuid.NewString())
	newRole := domain.RoleIbu

	suite.mockUserRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()

	updated, err := suite.service.UpdateUser(ctx, user.UserID, dto.UpdateUserRequest{Role: &newRole}, user.UserID)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "UpdateUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestUpdateUser_RoleChangeAllowedSolo() {
	ctx := context.Background()
	user := soloUser(domain.RoleIbu)
	newRole := domain.RoleAyah
	newName := "Siti Rahma"

	suite.mockUserRepo.On("FindUserByID", ctx, user.UserID).Return(user, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Role == domain.RoleAyah && u.Name == "Siti Rahma"
	})).Return(nil).Once()

	updated, err := suite.service.UpdateUser(ctx, user.UserID, dto.UpdateUserRequest{Name: &newName, Role: &newRole}, user.UserID)

	suite.Require().NoError(err)
	suite.Equal(domain.RoleAyah, updated.Role)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

// --- FindOrProvisionByProvider ---

func (suite *UserServiceTestSuite) TestFindOrProvision_ExistingIdentity() {
	ctx := context.Background()
	stored := soloUser(domain.RoleAyah)

	suite.mockUserRepo.On("FindUserByProviderDetails", ctx, "GOOGLE", "goog-123").Return(stored, nil).Once()

	user, err := suite.service.FindOrProvisionByProvider(ctx, domain.ProviderGoogle, "goog-123", domain.IdentityMetadata{})

	suite.Require().NoError(err)
	suite.Equal(stored.UserID, user.UserID)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestFindOrProvision_LinksExistingLocalAccount() {
	ctx := context.Background()
	stored := soloUser(domain.RoleIbu)

	suite.mockUserRepo.On("FindUserByProviderDetails", ctx, "GOOGLE", "goog-456").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, stored.Email).Return(stored, nil).Once()
	suite.mockUserRepo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.UserID == stored.UserID &&
			u.AuthProvider == domain.ProviderGoogle &&
			u.ProviderUserID != nil && *u.ProviderUserID == "goog-456"
	})).Return(nil).Once()

	user, err := suite.service.FindOrProvisionByProvider(ctx, domain.ProviderGoogle, "goog-456", domain.IdentityMetadata{Email: stored.Email, Name: stored.Name})

	suite.Require().NoError(err)
	suite.Equal(stored.UserID, user.UserID)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestFindOrProvision_CreatesWithDefaultRole() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByProviderDetails", ctx, "GOOGLE", "goog-789").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "baru@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.Role == domain.RoleIbu && u.AuthProvider == domain.ProviderGoogle && u.PasswordHash == nil
	})).Return(nil).Once()

	user, err := suite.service.FindOrProvisionByProvider(ctx, domain.ProviderGoogle, "goog-789", domain.IdentityMetadata{Email: "baru@example.com", Name: "Pengguna Baru"})

	suite.Require().NoError(err)
	suite.Equal(domain.RoleIbu, user.Role)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *UserServiceTestSuite) TestFindOrProvision_SaveFailure() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByProviderDetails", ctx, "GOOGLE", "goog-000").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "gagal@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.Anything).Return(errors.New("connection reset")).Once()

	user, err := suite.service.FindOrProvisionByProvider(ctx, domain.ProviderGoogle, "goog-000", domain.IdentityMetadata{Email: "gagal@example.com"})

	suite.Require().ErrorIs(err, apperrors.ErrProfileProvisioningFailed)
	suite.Nil(user)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
