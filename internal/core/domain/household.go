package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a household transaction.
type TransactionType string

const (
	TransactionIncome  TransactionType = "INCOME"
	TransactionExpense TransactionType = "EXPENSE"
)

// HouseholdTransaction is a single income or expense entry in the household
// ledger. UserID is strong ownership; FamilyID is denormalized from the
// owner's family at write time by the store and used only for family-wide
// queries.
type HouseholdTransaction struct {
	TransactionID string          `json:"transactionID"`
	UserID        string          `json:"userID"`
	FamilyID      *string         `json:"familyID,omitempty"`
	Type          TransactionType `json:"type"`
	Amount        decimal.Decimal `json:"amount"` // non-negative
	CategoryID    *string         `json:"categoryID,omitempty"`
	TxnDate       time.Time       `json:"txnDate"`
	Description   string          `json:"description"`
	AuditFields
}

// HouseholdCategory is either a global default (IsDefault, no owner) or a
// user-scoped custom category.
type HouseholdCategory struct {
	CategoryID string          `json:"categoryID"`
	Name       string          `json:"name"`
	Type       TransactionType `json:"type"`
	IsDefault  bool            `json:"isDefault"`
	UserID     *string         `json:"userID,omitempty"` // set only for custom categories
	CreatedAt  time.Time       `json:"createdAt"`
}
