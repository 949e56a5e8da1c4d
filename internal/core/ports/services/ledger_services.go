package services

import (
	"context"

	"github.com/keluargaku/keluargaku_app/internal/core/domain"
	"github.com/keluargaku/keluargaku_app/internal/dto"
)

// The three ledger facades share one shape: list follows the acting user's
// visibility (family-wide when they belong to a family, otherwise own rows
// only), create assigns ownership to the actor, and update/delete are
// unconditional by id within the actor's visibility. Any family member may
// edit any family record; the edit-history log is the audit trail.

// HouseholdSvcFacade is the household income/expense ledger.
type HouseholdSvcFacade interface {
	ListTransactions(ctx context.Context, actor *domain.User) ([]domain.HouseholdTransaction, error)
	GetTransaction(ctx context.Context, actor *domain.User, transactionID string) (*domain.HouseholdTransaction, error)
	CreateTransaction(ctx context.Context, actor *domain.User, req dto.CreateHouseholdTransactionRequest) (*domain.HouseholdTransaction, error)
	UpdateTransaction(ctx context.Context, actor *domain.User, transactionID string, req dto.UpdateHouseholdTransactionRequest) (*domain.HouseholdTransaction, error)
	DeleteTransaction(ctx context.Context, actor *domain.User, transactionID string) error
}

// CategorySvcFacade manages household categories.
type CategorySvcFacade interface {
	ListCategories(ctx context.Context, actor *domain.User) ([]domain.HouseholdCategory, error)
	CreateCategory(ctx context.Context, actor *domain.User, req dto.CreateCategoryRequest) (*domain.HouseholdCategory, error)
	// DeleteCategory removes a custom category owned by the actor. Default
	// categories cannot be deleted.
	DeleteCategory(ctx context.Context, actor *domain.User, categoryID string) error
}

// OrderSvcFacade is the business order ledger. Access is gated to AYAH.
type OrderSvcFacade interface {
	ListOrders(ctx context.Context, actor *domain.User) ([]domain.Order, error)
	GetOrder(ctx context.Context, actor *domain.User, orderID string) (*domain.Order, error)
	CreateOrder(ctx context.Context, actor *domain.User, req dto.CreateOrderRequest) (*domain.Order, error)
	UpdateOrder(ctx context.Context, actor *domain.User, orderID string, req dto.UpdateOrderRequest) (*domain.Order, error)
	DeleteOrder(ctx context.Context, actor *domain.User, orderID string) error
	AddOrderExpense(ctx context.Context, actor *domain.User, orderID string, req dto.AddOrderExpenseRequest) (*domain.Order, error)
	DeleteOrderExpense(ctx context.Context, actor *domain.User, orderID, expenseID string) (*domain.Order, error)
}

// DebtSvcFacade is the debt/receivable ledger.
type DebtSvcFacade interface {
	ListDebts(ctx context.Context, actor *domain.User) ([]domain.Debt, error)
	GetDebt(ctx context.Context, actor *domain.User, debtID string) (*domain.Debt, error)
	CreateDebt(ctx context.Context, actor *domain.User, req dto.CreateDebtRequest) (*domain.Debt, error)
	UpdateDebt(ctx context.Context, actor *domain.User, debtID string, req dto.UpdateDebtRequest) (*domain.Debt, error)
	DeleteDebt(ctx context.Context, actor *domain.User, debtID string) error
	AddDebtPayment(ctx context.Context, actor *domain.User, debtID string, req dto.AddDebtPaymentRequest) (*domain.Debt, error)
	DeleteDebtPayment(ctx context.Context, actor *domain.User, debtID, paymentID string) (*domain.Debt, error)
}

// HistorySvcFacade exposes the edit-history log.
type HistorySvcFacade interface {
	// Record writes a history entry. Best-effort: callers ignore its error
	// so a logging failure never fails the mutation it describes.
	Record(ctx context.Context, actor *domain.User, collection, recordID string, action domain.HistoryAction, detail string) error
	ListForRecord(ctx context.Context, actor *domain.User, collection, recordID string) ([]domain.EditHistory, error)
	ListRecent(ctx context.Context, actor *domain.User, limit int) ([]domain.EditHistory, error)
}
