package repositories

import (
	"context"

	"github.com/keluargaku/keluargaku_app/internal/core/domain"
)

// HouseholdRepository persists household income/expense transactions.
type HouseholdRepository interface {
	SaveTransaction(ctx context.Context, txn domain.HouseholdTransaction) error
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.HouseholdTransaction, error)
	// ListTransactions returns records visible in the scope, newest first by
	// transaction date.
	ListTransactions(ctx context.Context, scope Scope) ([]domain.HouseholdTransaction, error)
	UpdateTransaction(ctx context.Context, txn domain.HouseholdTransaction) error
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// CategoryRepository persists household categories (global defaults plus
// user-scoped custom ones).
type CategoryRepository interface {
	SaveCategory(ctx context.Context, category domain.HouseholdCategory) error
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.HouseholdCategory, error)
	// ListCategoriesForUser returns all defaults plus the user's custom
	// categories.
	ListCategoriesForUser(ctx context.Context, userID string) ([]domain.HouseholdCategory, error)
	DeleteCategory(ctx context.Context, categoryID string) error
}

// OrderRepository persists business orders and their nested expenses.
type OrderRepository interface {
	SaveOrder(ctx context.Context, order domain.Order) error
	// FindOrderByID returns the order with its expenses attached.
	FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context, scope Scope) ([]domain.Order, error)
	UpdateOrder(ctx context.Context, order domain.Order) error
	DeleteOrder(ctx context.Context, orderID string) error

	SaveOrderExpense(ctx context.Context, expense domain.OrderExpense) error
	FindOrderExpenseByID(ctx context.Context, expenseID string) (*domain.OrderExpense, error)
	DeleteOrderExpense(ctx context.Context, expenseID string) error
}

// DebtRepository persists debts/receivables and their nested payments.
type DebtRepository interface {
	SaveDebt(ctx context.Context, debt domain.Debt) error
	// FindDebtByID returns the debt with its payments attached.
	FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error)
	ListDebts(ctx context.Context, scope Scope) ([]domain.Debt, error)
	UpdateDebt(ctx context.Context, debt domain.Debt) error
	DeleteDebt(ctx context.Context, debtID string) error

	SaveDebtPayment(ctx context.Context, payment domain.DebtPayment) error
	FindDebtPaymentByID(ctx context.Context, paymentID string) (*domain.DebtPayment, error)
	DeleteDebtPayment(ctx context.Context, paymentID string) error
}

// HistoryRepository persists the edit-history log.
type HistoryRepository interface {
	SaveEntry(ctx context.Context, entry domain.EditHistory) error
	ListByRecord(ctx context.Context, collection, recordID string) ([]domain.EditHistory, error)
	ListByScope(ctx context.Context, scope Scope, limit int) ([]domain.EditHistory, error)
}
