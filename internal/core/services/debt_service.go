package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/keluargaku/keluargaku_app/internal/apperrors"
	"github.com/keluargaku/keluargaku_app/internal/core/domain"
	portsrepo "github.com/keluargaku/keluargaku_app/internal/core/ports/repositories"
	portssvc "github.com/keluargaku/keluargaku_app/internal/core/ports/services"
	"github.com/keluargaku/keluargaku_app/internal/dto"
)

// debtService is the debt/receivable ledger.
type debtService struct {
	BaseService
	debtRepo portsrepo.DebtRepository
	history  portssvc.HistorySvcFacade
}

// NewDebtService creates a new debt ledger service.
func NewDebtService(dr portsrepo.DebtRepository, hist portssvc.HistorySvcFacade) portssvc.DebtSvcFacade {
	return &debtService{debtRepo: dr, history: hist}
}

var _ portssvc.DebtSvcFacade = (*debtService)(nil)

// ListDebts returns debts visible to the actor, newest first.
func (s *debtService) ListDebts(ctx context.Context, actor *domain.User) ([]domain.Debt, error) {
	debts, err := s.debtRepo.ListDebts(ctx, scopeFor(actor))
	if err != nil {
		s.LogError(ctx, err, "Failed to list debts", slog.String("user_id", actor.UserID))
		return nil, fmt.Errorf("failed to list debts: %w", err)
	}
	if debts == nil {
		debts = []domain.Debt{}
	}
	return debts, nil
}

// GetDebt fetches one debt, payments attached, within visibility.
func (s *debtService) GetDebt(ctx context.Context, actor *domain.User, debtID string) (*domain.Debt, error) {
	debt, err := s.debtRepo.FindDebtByID(ctx, debtID)
	if err != nil {
		return nil, err
	}
	if err := requireVisible(actor, debt.UserID, debt.FamilyID); err != nil {
		return nil, err
	}
	return debt, nil
}

// CreateDebt inserts a debt owned by the actor. family_id is populated by the
// store's insert trigger.
func (s *debtService) CreateDebt(ctx context.Context, actor *domain.User, req dto.CreateDebtRequest) (*domain.Debt, error) {
	if err := requireNonNegative(req.Amount, "amount"); err != nil {
		return nil, err
	}

	now := time.Now()
	debt := domain.Debt{
		DebtID:       uuid.NewString(),
		UserID:       actor.UserID,
		Counterparty: req.Counterparty,
		Direction:    req.Direction,
		Amount:       req.Amount,
		DueDate:      req.DueDate,
		Description:  req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.debtRepo.SaveDebt(ctx, debt); err != nil {
		s.LogError(ctx, err, "Failed to save debt", slog.String("user_id", actor.UserID))
		return nil, fmt.Errorf("failed to create debt: %w", err)
	}

	_ = s.history.Record(ctx, actor, "debts", debt.DebtID, domain.HistoryCreate, debt.Counterparty)

	saved, err := s.debtRepo.FindDebtByID(ctx, debt.DebtID)
	if err != nil {
		return &debt, nil
	}
	return saved, nil
}

// UpdateDebt patches a debt. The paid amount cannot be written here; it is a
// function of the recorded payments.
func (s *debtService) UpdateDebt(ctx context.Context, actor *domain.User, debtID string, req dto.UpdateDebtRequest) (*domain.Debt, error) {
	debt, err := s.GetDebt(ctx, actor, debtID)
	if err != nil {
		return nil, err
	}

	if req.Counterparty != nil {
		debt.Counterparty = *req.Counterparty
	}
	if req.Amount != nil {
		if err := requireNonNegative(*req.Amount, "amount"); err != nil {
			return nil, err
		}
		debt.Amount = *req.Amount
	}
	if req.DueDate != nil {
		debt.DueDate = req.DueDate
	}
	if req.Description != nil {
		debt.Description = *req.Description
	}
	debt.LastUpdatedAt = time.Now()
	debt.LastUpdatedBy = actor.UserID

	if err := s.debtRepo.UpdateDebt(ctx, *debt); err != nil {
		s.LogError(ctx, err, "Failed to update debt", slog.String("debt_id", debtID))
		return nil, fmt.Errorf("failed to update debt: %w", err)
	}

	_ = s.history.Record(ctx, actor, "debts", debtID, domain.HistoryUpdate, "updated")
	return debt, nil
}

// DeleteDebt removes a debt and, via the store's cascade, its payments.
func (s *debtService) DeleteDebt(ctx context.Context, actor *domain.User, debtID string) error {
	debt, err := s.GetDebt(ctx, actor, debtID)
	if err != nil {
		return err
	}

	if err := s.debtRepo.DeleteDebt(ctx, debt.DebtID); err != nil {
		s.LogError(ctx, err, "Failed to delete debt", slog.String("debt_id", debtID))
		return fmt.Errorf("failed to delete debt: %w", err)
	}

	_ = s.history.Record(ctx, actor, "debts", debtID, domain.HistoryDelete, debt.Counterparty)
	return nil
}

// AddDebtPayment records a repayment and returns the debt with its remaining
// amount recomputed. Overpayment is allowed; the debt just reads as settled.
func (s *debtService) AddDebtPayment(ctx context.Context, actor *domain.User, debtID string, req dto.AddDebtPaymentRequest) (*domain.Debt, error) {
	debt, err := s.GetDebt(ctx, actor, debtID)
	if err != nil {
		return nil, err
	}
	if err := requireNonNegative(req.Amount, "amount"); err != nil {
		return nil, err
	}

	payment := domain.DebtPayment{
		PaymentID: uuid.NewString(),
		DebtID:    debt.DebtID,
		Amount:    req.Amount,
		PaidAt:    req.PaidAt,
		Note:      req.Note,
		CreatedAt: time.Now(),
	}

	if err := s.debtRepo.SaveDebtPayment(ctx, payment); err != nil {
		s.LogError(ctx, err, "Failed to save debt payment", slog.String("debt_id", debtID))
		return nil, fmt.Errorf("failed to add debt payment: %w", err)
	}

	_ = s.history.Record(ctx, actor, "debt_payments", payment.PaymentID, domain.HistoryCreate, debt.Counterparty)

	return s.debtRepo.FindDebtByID(ctx, debt.DebtID)
}

// DeleteDebtPayment removes a repayment; the remaining amount reverts to what
// the remaining payments dictate.
func (s *debtService) DeleteDebtPayment(ctx context.Context, actor *domain.User, debtID, paymentID string) (*domain.Debt, error) {
	debt, err := s.GetDebt(ctx, actor, debtID)
	if err != nil {
		return nil, err
	}

	payment, err := s.debtRepo.FindDebtPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payment.DebtID != debt.DebtID {
		return nil, fmt.Errorf("payment %s does not belong to debt %s: %w", paymentID, debtID, apperrors.ErrNotFound)
	}

	if err := s.debtRepo.DeleteDebtPayment(ctx, paymentID); err != nil {
		s.LogError(ctx, err, "Failed to delete debt payment", slog.String("payment_id", paymentID))
		return nil, fmt.Errorf("failed to delete debt payment: %w", err)
	}

	_ = s.history.Record(ctx, actor, "debt_payments", paymentID, domain.HistoryDelete, debt.Counterparty)

	return s.debtRepo.FindDebtByID(ctx, debt.DebtID)
}
