package services

import (
	"context"
	"errors"
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

// householdService is the household income/expense ledger.
type householdService struct {
	BaseService
	householdRepo portsrepo.HouseholdRepository
	categoryRepo  portsrepo.CategoryRepository
	history       portssvc.HistorySvcFacade
}

// NewHouseholdService creates a new household ledger service.
func NewHouseholdService(hr portsrepo.HouseholdRepository, cr portsrepo.CategoryRepository, hist portssvc.HistorySvcFacade) portssvc.HouseholdSvcFacade {
	return &householdService{householdRepo: hr, categoryRepo: cr, history: hist}
}

var _ portssvc.HouseholdSvcFacade = (*householdService)(nil)

// ListTransactions returns entries visible to the actor, newest first.
func (s *householdService) ListTransactions(ctx context.Context, actor *domain.User) ([]domain.HouseholdTransaction, error) {
	txns, err := s.householdRepo.ListTransactions(ctx, scopeFor(actor))
	if err != nil {
		s.LogError(ctx, err, "Failed to list household transactions", slog.String("user_id", actor.UserID))
		return nil, fmt.Errorf("failed to list household transactions: %w", err)
	}
	if txns == nil {
		txns = []domain.HouseholdTransaction{}
	}
	return txns, nil
}

// GetTransaction fetches one entry within the actor's visibility.
func (s *householdService) GetTransaction(ctx context.Context, actor *domain.User, transactionID string) (*domain.HouseholdTransaction, error) {
	txn, err := s.householdRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if err := requireVisible(actor, txn.UserID, txn.FamilyID); err != nil {
		return nil, err
	}
	return txn, nil
}

// CreateTransaction inserts an entry owned by the actor. family_id is filled
// by the store's insert trigger from the owner's current membership, never by
// application code, so it always reflects server-side truth at write time.
func (s *householdService) CreateTransaction(ctx context.Context, actor *domain.User, req dto.CreateHouseholdTransactionRequest) (*domain.HouseholdTransaction, error) {
	if err := requireNonNegative(req.Amount, "amount"); err != nil {
		return nil, err
	}
	if req.CategoryID != nil {
		if err := s.validateCategory(ctx, actor, *req.CategoryID, req.Type); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	txn := domain.HouseholdTransaction{
		TransactionID: uuid.NewString(),
		UserID:        actor.UserID,
		Type:          req.Type,
		Amount:        req.Amount,
		CategoryID:    req.CategoryID,
		TxnDate:       req.TxnDate,
		Description:   req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.householdRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save household transaction", slog.String("user_id", actor.UserID))
		return nil, fmt.Errorf("failed to create household transaction: %w", err)
	}

	_ = s.history.Record(ctx, actor, "household_transactions", txn.TransactionID, domain.HistoryCreate, string(txn.Type)+" "+txn.Amount.String())

	// Re-read so the trigger-populated family_id is reflected.
	saved, err := s.householdRepo.FindTransactionByID(ctx, txn.TransactionID)
	if err != nil {
		return &txn, nil
	}
	return saved, nil
}

// UpdateTransaction patches an entry. Any family member with visibility may
// edit, owner or not; the history log is the audit trail.
func (s *householdService) UpdateTransaction(ctx context.Context, actor *domain.User, transactionID string, req dto.UpdateHouseholdTransactionRequest) (*domain.HouseholdTransaction, error) {
	txn, err := s.GetTransaction(ctx, actor, transactionID)
	if err != nil {
		return nil, err
	}

	if req.Type != nil {
		txn.Type = *req.Type
	}
	if req.Amount != nil {
		if err := requireNonNegative(*req.Amount, "amount"); err != nil {
			return nil, err
		}
		txn.Amount = *req.Amount
	}
	if req.CategoryID != nil {
		if err := s.validateCategory(ctx, actor, *req.CategoryID, txn.Type); err != nil {
			return nil, err
		}
		txn.CategoryID = req.CategoryID
	}
	if req.TxnDate != nil {
		txn.TxnDate = *req.TxnDate
	}
	if req.Description != nil {
		txn.Description = *req.Description
	}
	txn.LastUpdatedAt = time.Now()
	txn.LastUpdatedBy = actor.UserID

	if err := s.householdRepo.UpdateTransaction(ctx, *txn); err != nil {
		s.LogError(ctx, err, "Failed to update household transaction", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to update household transaction: %w", err)
	}

	_ = s.history.Record(ctx, actor, "household_transactions", transactionID, domain.HistoryUpdate, "updated")
	return txn, nil
}

// DeleteTransaction removes an entry physically; there is no soft delete in
// the ledgers.
func (s *householdService) DeleteTransaction(ctx context.Context, actor *domain.User, transactionID string) error {
	txn, err := s.GetTransaction(ctx, actor, transactionID)
	if err != nil {
		return err
	}

	if err := s.householdRepo.DeleteTransaction(ctx, txn.TransactionID); err != nil {
		s.LogError(ctx, err, "Failed to delete household transaction", slog.String("transaction_id", transactionID))
		return fmt.Errorf("failed to delete household transaction: %w", err)
	}

	_ = s.history.Record(ctx, actor, "household_transactions", transactionID, domain.HistoryDelete, string(txn.Type)+" "+txn.Amount.String())
	return nil
}

func (s *householdService) validateCategory(ctx context.Context, actor *domain.User, categoryID string, txnType domain.TransactionType) error {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NewValidationFailedError("category does not exist")
		}
		return fmt.Errorf("failed to validate category: %w", err)
	}
	if !category.IsDefault && (category.UserID == nil || *category.UserID != actor.UserID) {
		return apperrors.NewValidationFailedError("category does not belong to the user")
	}
	if category.Type != txnType {
		return apperrors.NewValidationFailedError("category type does not match transaction type")
	}
	return nil
}
