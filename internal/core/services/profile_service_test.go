package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/keluargaku/keluargaku_app/internal/apperrors"
	"github.com/keluargaku/keluargaku_app/internal/core/domain"
	portssvc "github.com/keluargaku/keluargaku_app/internal/core/ports/services"
	"github.com/keluargaku/keluargaku_app/internal/core/services"
	"github.com/keluargaku/keluargaku_app/internal/platform/config"
)

type ProfileServiceTestSuite struct {
	suite.Suite
	mockUserRepo      *MockUserRepository
	mockFamilyService *MockFamilyService
	service           portssvc.ProfileSvcFacade
}

func (suite *ProfileServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockFamilyService = new(MockFamilyService)
	suite.service = services.NewProfileService(suite.mockUserRepo, suite.mockFamilyService, &config.Config{
		ProfileResolveTimeout: time.Second,
		RefreshMaxAttempts:    3,
		RefreshBackoffBase:    time.Millisecond,
	})
}

func (suite *ProfileServiceTestSuite) TestResolveProfile_ExistingSoloUser() {
	identityID := uuid.NewString()
	user := soloUser(domain.RoleIbu)
	user.UserID = identityID

	suite.mockUserRepo.On("FindUserByID", mock.Anything, identityID).Return(user, nil).Once()

	profile, err := suite.service.ResolveProfile(context.Background(), identityID, domain.IdentityMetadata{})

	suite.Require().NoError(err)
	suite.Equal(identityID, profile.User.UserID)
	suite.Nil(profile.Family)
	suite.mockFamilyService.AssertNotCalled(suite.T(), "GetFamilyByID", mock.Anything, mock.Anything)
}

func (suite *ProfileServiceTestSuite) TestResolveProfile_EnrichesWithFamily() {
	familyID := uuid.NewString()
	user := ayahInFamily(familyID)
	withMembers := &domain.FamilyWithMembers{
		Family:  domain.Family{FamilyID: familyID, Name: "Keluarga"},
		Members: []domain.User{*user},
	}

	suite.mockUserRepo.On("FindUserByID", mock.Anything, user.UserID).Return(user, nil).Once()
	suite.mockFamilyService.On("GetFamilyByID", mock.Anything, familyID).Return(withMembers, nil).Once()

	profile, err := suite.service.ResolveProfile(context.Background(), user.UserID, domain.IdentityMetadata{})

	suite.Require().NoError(err)
	suite.Require().NotNil(profile.Family)
	suite.Equal(familyID, profile.Family.Family.FamilyID)
}

func (suite *ProfileServiceTestSuite) TestResolveProfile_FamilyEnrichmentFailureDegrades() {
	familyID := uuid.NewString()
	user := ibuInFamily(familyID)

	suite.mockUserRepo.On("FindUserByID", mock.Anything, user.UserID).Return(user, nil).Once()
	suite.mockFamilyService.On("GetFamilyByID", mock.Anything, familyID).Return(nil, assert.AnError).Once()

	profile, err := suite.service.ResolveProfile(context.Background(), user.UserID, domain.IdentityMetadata{})

	suite.Require().NoError(err)
	suite.Nil(profile.Family)
	suite.Equal(user.UserID, profile.User.UserID)
}

func (suite *ProfileServiceTestSuite) TestResolveProfile_ProvisionsOnNotFound() {
	identityID := uuid.NewString()
	meta := domain.IdentityMetadata{Email: "new@example.com", Name: "New User"}

	suite.mockUserRepo.On("FindUserByID", mock.Anything, identityID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", mock.Anything, mock.MatchedBy(func(u domain.User) bool {
		return u.UserID == identityID && u.Email == meta.Email && u.Role == domain.RoleIbu
	})).Return(nil).Once()

	profile, err := suite.service.ResolveProfile(context.Background(), identityID, meta)

	suite.Require().NoError(err)
	suite.Equal(identityID, profile.User.UserID)
	// Unspecified provider role defaults to IBU.
	suite.Equal(domain.RoleIbu, profile.User.Role)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *ProfileServiceTestSuite) TestResolveProfile_TimeoutIsNotTreatedAsMissing() {
	identityID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", mock.Anything, identityID).Return(nil, context.DeadlineExceeded).Once()

	profile, err := suite.service.ResolveProfile(context.Background(), identityID, domain.IdentityMetadata{})

	suite.Require().ErrorIs(err, apperrors.ErrTimeout)
	suite.Nil(profile)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *ProfileServiceTestSuite) TestResolveProfile_ProvisioningInsertFailure() {
	identityID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", mock.Anything, identityID).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", mock.Anything, mock.AnythingOfType("domain.User")).Return(assert.AnError).Once()

	profile, err := suite.service.ResolveProfile(context.Background(), identityID, domain.IdentityMetadata{})

	suite.Require().ErrorIs(err, apperrors.ErrProfileProvisioningFailed)
	suite.Nil(profile)
}

func (suite *ProfileServiceTestSuite) TestRefresh_RetriesTimeoutThenSucceeds() {
	identityID := uuid.NewString()
	user := soloUser(domain.RoleAyah)
	user.UserID = identityID

	suite.mockUserRepo.On("FindUserByID", mock.Anything, identityID).Return(nil, apperrors.ErrTimeout).Once()
	suite.mockUserRepo.On("FindUserByID", mock.Anything, identityID).Return(user, nil).Once()

	profile, err := suite.service.Refresh(context.Background(), identityID)

	suite.Require().NoError(err)
	suite.Equal(identityID, profile.User.UserID)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *ProfileServiceTestSuite) TestRefresh_ExhaustionReturnsRefreshFailed() {
	identityID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", mock.Anything, identityID).Return(nil, apperrors.ErrTimeout).Times(3)

	profile, err := suite.service.Refresh(context.Background(), identityID)

	suite.Require().ErrorIs(err, apperrors.ErrRefreshFailed)
	suite.Nil(profile)
	suite.mockUserRepo.AssertExpectations(suite.T())
}

func (suite *ProfileServiceTestSuite) TestRefresh_NonRetryableFailsImmediately() {
	identityID := uuid.NewString()

	suite.mockUserRepo.On("FindUserByID", mock.Anything, identityID).Return(nil, assert.AnError).Once()

	profile, err := suite.service.Refresh(context.Background(), identityID)

	suite.Require().ErrorIs(err, apperrors.ErrRefreshFailed)
	suite.Nil(profile)
	suite.mockUserRepo.AssertNumberOfCalls(suite.T(), "FindUserByID", 1)
}

func TestProfileServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProfileServiceTestSuite))
}
