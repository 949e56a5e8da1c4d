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
	"github.com/keluargaku/keluargaku_app/internal/dto"
)

type DebtServiceTestSuite struct {
	suite.Suite
	mockDebtRepo *MockDebtRepository
	mockHistory  *MockHistoryService
	service      portssvc.DebtSvcFacade
}

func (suite *DebtServiceTestSuite) SetupTest() {
	suite.mockDebtRepo = new(MockDebtRepository)
	suite.mockHistory = new(MockHistoryService)
	suite.service = services.NewDebtService(suite.mockDebtRepo, suite.mockHistory)
}

func (suite *DebtServiceTestSuite) TestListDebts_OpenToIbu() {
	ctx := context.Background()
	actor := ibuInFamily(uuid.NewString())

	suite.mockDebtRepo.On("ListDebts", ctx, mock.Anything).Return([]domain.Debt{}, nil).Once()

	debts, err := suite.service.ListDebts(ctx, actor)

	suite.Require().NoError(err)
	suite.NotNil(debts)
}

func (suite *DebtServiceTestSuite) TestCreateDebt_Success() {
	ctx := context.Background()
	familyID := uuid.NewString()
	actor := ibuInFamily(familyID)
	req := dto.CreateDebtRequest{
		Counterparty: "Warung Pak Budi",
		Direction:    domain.DirectionHutang,
		Amount:       decimal.NewFromInt(150000),
	}

	suite.mockDebtRepo.On("SaveDebt", ctx, mock.MatchedBy(func(d domain.Debt) bool {
		return d.UserID == actor.UserID && d.Direction == domain.DirectionHutang && d.FamilyID == nil
	})).Return(nil).Once()
	suite.mockHistory.On("Record", ctx, actor, "debts", mock.AnythingOfType("string"), domain.HistoryCreate, req.Counterparty).Return(nil).Once()
	suite.mockDebtRepo.On("FindDebtByID", ctx, mock.AnythingOfType("string")).
		Return(&domain.Debt{DebtID: uuid.NewString(), UserID: actor.UserID, FamilyID: &familyID}, nil).Once()

	debt, err := suite.service.CreateDebt(ctx, actor, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(debt.FamilyID)
	suite.Equal(familyID, *debt.FamilyID)
	suite.mockDebtRepo.AssertExpectations(suite.T())
}

func (suite *DebtServiceTestSuite) TestAddDebtPayment_OverpaymentReadsAsSettled() {
	ctx := context.Background()
	familyID := uuid.NewString()
	actor := ayahInFamily(familyID)
	debtID := uuid.NewString()
	base := &domain.Debt{
		DebtID:   debtID,
		UserID:   actor.UserID,
		FamilyID: &familyID,
		Amount:   decimal.NewFromInt(100000),
	}
	overpaid := *base
	overpaid.Payments = []domain.DebtPayment{{
		PaymentID: uuid.NewString(),
		DebtID:    debtID,
		Amount:    decimal.NewFromInt(120000),
	}}

	suite.mockDebtRepo.On("FindDebtByID", ctx, debtID).Return(base, nil).Once()
	suite.mockDebtRepo.On("SaveDebtPayment", ctx, mock.MatchedBy(func(p domain.DebtPayment) bool {
		return p.DebtID == debtID && p.Amount.Equal(decimal.NewFromInt(120000))
	})).Return(nil).Once()
	suite.mockHistory.On("Record", ctx, actor, "debt_payments", mock.AnythingOfType("string"), domain.HistoryCreate, mock.AnythingOfType("string")).Return(nil).Once()
	suite.mockDebtRepo.On("FindDebtByID", ctx, debtID).Return(&overpaid, nil).Once()

	debt, err := suite.service.AddDebtPayment(ctx, actor, debtID, dto.AddDebtPaymentRequest{
		Amount: decimal.NewFromInt(120000),
		PaidAt: time.Now(),
	})

	suite.Require().NoError(err)
	suite.True(debt.IsSettled())
	suite.True(debt.RemainingAmount().Equal(decimal.NewFromInt(-20000)))
}

func (suite *DebtServiceTestSuite) TestDeleteDebtPayment_RemainingReverts() {
	ctx := context.Background()
	familyID := uuid.NewString()
	actor := ibuInFamily(familyID)
	debtID := uuid.NewString()
	paymentID := uuid.NewString()
	withPayment := &domain.Debt{
		DebtID:   debtID,
		UserID:   actor.UserID,
		FamilyID: &familyID,
		Amount:   decimal.NewFromInt(100000),
		Payments: []domain.DebtPayment{{PaymentID: paymentID, DebtID: debtID, Amount: decimal.NewFromInt(40000)}},
	}
	without := *withPayment
	without.Payments = nil

	suite.mockDebtRepo.On("FindDebtByID", ctx, debtID).Return(withPayment, nil).Once()
	suite.mockDebtRepo.On("FindDebtPaymentByID", ctx, paymentID).
		Return(&domain.DebtPayment{PaymentID: paymentID, DebtID: debtID, Amount: decimal.NewFromInt(40000)}, nil).Once()
	suite.mockDebtRepo.On("DeleteDebtPayment", ctx, paymentID).Return(nil).Once()
	suite.mockHistory.On("Record", ctx, actor, "debt_payments", paymentID, domain.HistoryDelete, mock.AnythingOfType("string")).Return(nil).Once()
	suite.mockDebtRepo.On("FindDebtByID", ctx, debtID).Return(&without, nil).Once()

	debt, err := suite.service.DeleteDebtPayment(ctx, actor, debtID, paymentID)

	suite.Require().NoError(err)
	suite.True(debt.RemainingAmount().Equal(decimal.NewFromInt(100000)))
	suite.False(debt.IsSettled())
}

func (suite *DebtServiceTestSuite) TestDeleteDebtPayment_ForeignPaymentRejected() {
	ctx := context.Background()
	actor := soloUser(domain.RoleIbu)
	debtID := uuid.NewString()
	debt := &domain.Debt{DebtID: debtID, UserID: actor.UserID}
	foreign := &domain.DebtPayment{PaymentID: uuid.NewString(), DebtID: uuid.NewString()}

	suite.mockDebtRepo.On("FindDebtByID", ctx, debtID).Return(debt, nil).Once()
	suite.mockDebtRepo.On("FindDebtPaymentByID", ctx, foreign.PaymentID).Return(foreign, nil).Once()

	got, err := suite.service.DeleteDebtPayment(ctx, actor, debtID, foreign.PaymentID)

	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.Nil(got)
	suite.mockDebtRepo.AssertNotCalled(suite.T(), "DeleteDebtPayment", mock.Anything, mock.Anything)
}

func (suite *DebtServiceTestSuite) TestUpdateDebt_NegativeAmountRejected() {
	ctx := context.Background()
	actor := soloUser(domain.RoleAyah)
	debtID := uuid.NewString()
	negative := decimal.NewFromInt(-500)

	suite.mockDebtRepo.On("FindDebtByID", ctx, debtID).
		Return(&domain.Debt{DebtID: debtID, UserID: actor.UserID}, nil).Once()

	debt, err := suite.service.UpdateDebt(ctx, actor, debtID, dto.UpdateDebtRequest{Amount: &negative})

	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.Nil(debt)
	suite.mockDebtRepo.AssertNotCalled(suite.T(), "UpdateDebt", mock.Anything, mock.Anything)
}

func TestDebtServiceTestSuite(t *testing.T) {
	suite.Run(t, new(DebtServiceTestSuite))
}
