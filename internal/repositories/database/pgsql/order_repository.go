package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/keluargaku/keluargaku_app/internal/apperrors"
	"github.com/keluargaku/keluargaku_app/internal/core/domain"
	portsrepo "github.com/keluargaku/keluargaku_app/internal/core/ports/repositories"
)

type PgxOrderRepository struct {
	BaseRepository
}

func newPgxOrderRepository(pool *pgxpool.Pool) portsrepo.OrderRepository {
	return &PgxOrderRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxOrderRepository implements portsrepo.OrderRepository
var _ portsrepo.OrderRepository = (*PgxOrderRepository)(nil)

const orderSelectColumns = `
	order_id, user_id, family_id, customer_name, item, quantity, unit_price,
	status, order_date, description, created_at, created_by, last_updated_at,
	last_updated_by
`

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var o domain.Order
	err := row.Scan(
		&o.OrderID,
		&o.UserID,
		&o.FamilyID,
		&o.CustomerName,
		&o.Item,
		&o.Quantity,
		&o.UnitPrice,
		&o.Status,
		&o.OrderDate,
		&o.Description,
		&o.CreatedAt,
		&o.CreatedBy,
		&o.LastUpdatedAt,
		&o.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// SaveOrder inserts an order. family_id is stamped by the insert trigger.
func (r *PgxOrderRepository) SaveOrder(ctx context.Context, order domain.Order) error {
	query := `
		INSERT INTO orders (
			order_id, user_id, customer_name, item, quantity, unit_price,
			status, order_date, description, created_at, created_by,
			last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		order.OrderID,
		order.UserID,
		order.CustomerName,
		order.Item,
		order.Quantity,
		order.UnitPrice,
		order.Status,
		order.OrderDate,
		order.Description,
		order.CreatedAt,
		order.CreatedBy,
		order.LastUpdatedAt,
		order.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save order %s: %w", order.OrderID, err)
	}
	return nil
}

func (r *PgxOrderRepository) FindOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	query := `SELECT ` + orderSelectColumns + ` FROM orders WHERE order_id = $1;`
	order, err := scanOrder(r.Pool.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order by ID %s: %w", orderID, err)
	}

	expenses, err := r.findExpensesForOrders(ctx, []string{orderID})
	if err != nil {
		return nil, err
	}
	order.Expenses = expenses[orderID]
	if order.Expenses == nil {
		order.Expenses = []domain.OrderExpense{}
	}
	return order, nil
}

func (r *PgxOrderRepository) ListOrders(ctx context.Context, scope portsrepo.Scope) ([]domain.Order, error) {
	query := `SELECT ` + orderSelectColumns + `
		FROM orders
		WHERE (family_id = $1 OR user_id = $2)
		ORDER BY order_date DESC, created_at DESC;
	`
	familyID, userID := scopeArgs(scope.FamilyID, scope.UserID)
	rows, err := r.Pool.Query(ctx, query, familyID, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	orders := []domain.Order{}
	orderIDs := []string{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order row: %w", err)
		}
		o.Expenses = []domain.OrderExpense{}
		orders = append(orders, *o)
		orderIDs = append(orderIDs, o.OrderID)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating order rows: %w", rows.Err())
	}

	if len(orderIDs) == 0 {
		return orders, nil
	}
	expensesByOrder, err := r.findExpensesForOrders(ctx, orderIDs)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if exps, ok := expensesByOrder[orders[i].OrderID]; ok {
			orders[i].Expenses = exps
		}
	}
	return orders, nil
}

func (r *PgxOrderRepository) UpdateOrder(ctx context.Context, order domain.Order) error {
	query := `
		UPDATE orders
		SET customer_name = $1, item = $2, quantity = $3, unit_price = $4,
			status = $5, order_date = $6, description = $7,
			last_updated_at = $8, last_updated_by = $9
		WHERE order_id = $10;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		order.CustomerName,
		order.Item,
		order.Quantity,
		order.UnitPrice,
		order.Status,
		order.OrderDate,
		order.Description,
		order.LastUpdatedAt,
		order.LastUpdatedBy,
		order.OrderID,
	)
	if err != nil {
		return fmt.Errorf("failed to update order %s: %w", order.OrderID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteOrder removes an order; the expense rows go with it via ON DELETE
// CASCADE.
func (r *PgxOrderRepository) DeleteOrder(ctx context.Context, orderID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM orders WHERE order_id = $1;`, orderID)
	if err != nil {
		return fmt.Errorf("failed to delete order %s: %w", orderID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxOrderRepository) SaveOrderExpense(ctx context.Context, expense domain.OrderExpense) error {
	query := `
		INSERT INTO order_expenses (expense_id, order_id, name, amount, expense_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err := r.Pool.Exec(ctx, query,
		expense.ExpenseID,
		expense.OrderID,
		expense.Name,
		expense.Amount,
		expense.ExpenseDate,
		expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save order expense %s: %w", expense.ExpenseID, err)
	}
	return nil
}

func (r *PgxOrderRepository) FindOrderExpenseByID(ctx context.Context, expenseID string) (*domain.OrderExpense, error) {
	query := `
		SELECT expense_id, order_id, name, amount, expense_date, created_at
		FROM order_expenses
		WHERE expense_id = $1;
	`
	var e domain.OrderExpense
	err := r.Pool.QueryRow(ctx, query, expenseID).Scan(
		&e.ExpenseID,
		&e.OrderID,
		&e.Name,
		&e.Amount,
		&e.ExpenseDate,
		&e.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find order expense by ID %s: %w", expenseID, err)
	}
	return &e, nil
}

func (r *PgxOrderRepository) DeleteOrderExpense(ctx context.Context, expenseID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM order_expenses WHERE expense_id = $1;`, expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete order expense %s: %w", expenseID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *PgxOrderRepository) findExpensesForOrders(ctx context.Context, orderIDs []string) (map[string][]domain.OrderExpense, error) {
	query := `
		SELECT expense_id, order_id, name, amount, expense_date, created_at
		FROM order_expenses
		WHERE order_id = ANY($1)
		ORDER BY expense_date, created_at;
	`
	rows, err := r.Pool.Query(ctx, query, orderIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query order expenses: %w", err)
	}
	defer rows.Close()

	byOrder := make(map[string][]domain.OrderExpense)
	for rows.Next() {
		var e domain.OrderExpense
		err := rows.Scan(&e.ExpenseID, &e.OrderID, &e.Name, &e.Amount, &e.ExpenseDate, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order expense row: %w", err)
		}
		byOrder[e.OrderID] = append(byOrder[e.OrderID], e)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating order expense rows: %w", rows.Err())
	}
	return byOrder, nil
}
