package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/keluargaku/keluargaku_app/internal/apperrors"
	"github.com/keluargaku/keluargaku_app/internal/core/domain"
	portssvc "github.com/keluargaku/keluargaku_app/internal/core/ports/services"
	"github.com/keluargaku/keluargaku_app/internal/core/services"
)

type ReportingServiceTestSuite struct {
	suite.Suite
	mockReportingRepo *MockReportingRepository
	service           portssvc.ReportingSvcFacade
}

func (suite *ReportingServiceTestSuite) SetupTest() {
	suite.mockReportingRepo = new(MockReportingRepository)
	suite.service = services.NewReportingService(suite.mockReportingRepo)
}

func (suite *ReportingServiceTestSuite) TestHouseholdSummary_Success() {
	ctx := context.Background()
	actor := ibuInFamily(uuid.NewString())
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
	rows := []domain.MonthlySummaryRow{{
		Month:   "2025-03",
		Income:  decimal.NewFromInt(5000000),
		Expense: decimal.NewFromInt(3200000),
		Net:     decimal.NewFromInt(1800000),
	}}

	suite.mockReportingRepo.On("HouseholdMonthlySummary", ctx, mock.Anything, from, to).Return(rows, nil).Once()

	got, err := suite.service.HouseholdSummary(ctx, actor, from, to)

	suite.Require().NoError(err)
	suite.Len(got, 1)
	suite.True(got[0].Net.Equal(decimal.NewFromInt(1800000)))
}

func (suite *ReportingServiceTestSuite) TestHouseholdSummary_InvertedWindowRejected() {
	ctx := context.Background()
	actor := soloUser(domain.RoleIbu)
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, -1, 0)

	rows, err := suite.service.HouseholdSummary(ctx, actor, from, to)

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(rows)
	suite.mockReportingRepo.AssertNotCalled(suite.T(), "HouseholdMonthlySummary", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ReportingServiceTestSuite) TestOrderSummary_IbuForbidden() {
	ctx := context.Background()
	actor := ibuInFamily(uuid.NewString())
	now := time.Now()

	rows, err := suite.service.OrderSummary(ctx, actor, now.AddDate(-1, 0, 0), now)

	suite.Require().ErrorIs(err, apperrors.ErrForbidden)
	suite.Nil(rows)
}

func (suite *ReportingServiceTestSuite) TestOrderSummary_EmptyWindowNormalizedToEmptySlice() {
	ctx := context.Background()
	actor := ayahInFamily(uuid.NewString())
	now := time.Now()

	suite.mockReportingRepo.On("OrderMonthlySummary", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil, nil).Once()

	rows, err := suite.service.OrderSummary(ctx, actor, now.AddDate(-1, 0, 0), now)

	suite.Require().NoError(err)
	suite.NotNil(rows)
	suite.Empty(rows)
}

func (suite *ReportingServiceTestSuite) TestDebtSummary_Success() {
	ctx := context.Background()
	actor := soloUser(domain.RoleAyah)
	summary := &domain.DebtSummary{
		TotalHutang:      decimal.NewFromInt(500000),
		TotalPiutang:     decimal.NewFromInt(200000),
		OutstandingCount: 2,
		SettledCount:     1,
	}

	suite.mockReportingRepo.On("DebtSummary", ctx, mock.Anything).Return(summary, nil).Once()

	got, err := suite.service.DebtSummary(ctx, actor)

	suite.Require().NoError(err)
	suite.Equal(2, got.OutstandingCount)
	suite.True(got.TotalHutang.Equal(decimal.NewFromInt(500000)))
}

func TestReportingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ReportingServiceTestSuite))
}
