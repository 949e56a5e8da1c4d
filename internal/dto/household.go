package dto

import (
	"time"

	"github.com/keluargaku/keluargaku_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateHouseholdTransactionRequest defines data for a new household entry.
type CreateHouseholdTransactionRequest struct {
	Type        domain.TransactionType `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Amount      decimal.Decimal        `json:"amount" binding:"required"`
	CategoryID  *string                `json:"categoryID" binding:"omitempty,uuid"`
	TxnDate     time.Time              `json:"txnDate" binding:"required"`
	Description string                 `json:"description"`
}

// UpdateHouseholdTransactionRequest patches an existing entry. Pointers
// distinguish omitted fields from zero values.
type UpdateHouseholdTransactionRequest struct {
	Type        *domain.TransactionType `json:"type" binding:"omitempty,oneof=INCOME EXPENSE"`
	Amount      *decimal.Decimal        `json:"amount"`
	CategoryID  *string                 `json:"categoryID" binding:"omitempty,uuid"`
	TxnDate     *time.Time              `json:"txnDate"`
	Description *string                 `json:"description"`
}

// HouseholdTransactionResponse defines data returned for a household entry.
type HouseholdTransactionResponse struct {
	TransactionID string                 `json:"transactionID"`
	UserID        string                 `json:"userID"`
	FamilyID      *string                `json:"familyID,omitempty"`
	Type          domain.TransactionType `json:"type"`
	Amount        decimal.Decimal        `json:"amount"`
	CategoryID    *string                `json:"categoryID,omitempty"`
	TxnDate       time.Time              `json:"txnDate"`
	Description   string                 `json:"description"`
	CreatedAt     time.Time              `json:"createdAt"`
	LastUpdatedAt time.Time              `json:"lastUpdatedAt"`
	LastUpdatedBy string                 `json:"lastUpdatedBy"`
}

// ToHouseholdTransactionResponse converts a domain transaction to its DTO.
func ToHouseholdTransactionResponse(t *domain.HouseholdTransaction) HouseholdTransactionResponse {
	return HouseholdTransactionResponse{
		TransactionID: t.TransactionID,
		UserID:        t.UserID,
		FamilyID:      t.FamilyID,
		Type:          t.Type,
		Amount:        t.Amount,
		CategoryID:    t.CategoryID,
		TxnDate:       t.TxnDate,
		Description:   t.Description,
		CreatedAt:     t.CreatedAt,
		LastUpdatedAt: t.LastUpdatedAt,
		LastUpdatedBy: t.LastUpdatedBy,
	}
}

// ToHouseholdTransactionListResponse converts a slice of transactions.
func ToHouseholdTransactionListResponse(ts []domain.HouseholdTransaction) []HouseholdTransactionResponse {
	out := make([]HouseholdTransactionResponse, len(ts))
	for i := range ts {
		out[i] = ToHouseholdTransactionResponse(&ts[i])
	}
	return out
}

// CreateCategoryRequest defines data for a new custom category.
type CreateCategoryRequest struct {
	Name string                 `json:"name" binding:"required,max=50"`
	Type domain.TransactionType `json:"type" binding:"required,oneof=INCOME EXPENSE"`
}
