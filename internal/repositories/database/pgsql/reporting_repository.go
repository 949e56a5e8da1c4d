package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/keluargaku/keluargaku_app/internal/core/domain"
	portsrepo "github.com/keluargaku/keluargaku_app/internal/core/ports/repositories"
	"github.com/shopspring/decimal"
)

// reportingRepository aggregates ledger data into monthly buckets.
type reportingRepository struct {
	BaseRepository
}

func newReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure reportingRepository implements portsrepo.ReportingRepository
var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// HouseholdMonthlySummary buckets household transactions by calendar month.
func (r *reportingRepository) HouseholdMonthlySummary(ctx context.Context, scope portsrepo.Scope, from, to time.Time) ([]domain.MonthlySummaryRow, error) {
	query := `
		SELECT
			to_char(txn_date, 'YYYY-MM') AS month,
			COALESCE(SUM(amount) FILTER (WHERE type = 'INCOME'), 0) AS income,
			COALESCE(SUM(amount) FILTER (WHERE type = 'EXPENSE'), 0) AS expense
		FROM household_transactions
		WHERE (family_id = $1 OR user_id = $2)
			AND txn_date BETWEEN $3 AND $4
		GROUP BY 1
		ORDER BY 1;
	`
	familyID, userID := scopeArgs(scope.FamilyID, scope.UserID)
	rows, err := r.Pool.Query(ctx, query, familyID, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying household summary data: %w", err)
	}
	defer rows.Close()

	result := []domain.MonthlySummaryRow{}
	for rows.Next() {
		var row domain.MonthlySummaryRow
		if err := rows.Scan(&row.Month, &row.Income, &row.Expense); err != nil {
			return nil, fmt.Errorf("error scanning household summary row: %w", err)
		}
		row.Net = row.Income.Sub(row.Expense)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating household summary rows: %w", err)
	}
	return result, nil
}

// OrderMonthlySummary buckets orders by calendar month. Revenue and profit
// are computed from the stored primitives, never from stored totals.
func (r *reportingRepository) OrderMonthlySummary(ctx context.Context, scope portsrepo.Scope, from, to time.Time) ([]domain.OrderSummaryRow, error) {
	query := `
		SELECT
			to_char(o.order_date, 'YYYY-MM') AS month,
			COALESCE(SUM(o.quantity * o.unit_price), 0) AS revenue,
			COALESCE(SUM(e.total), 0) AS expenses,
			COUNT(*) AS orders
		FROM orders o
		LEFT JOIN (
			SELECT order_id, SUM(amount) AS total
			FROM order_expenses
			GROUP BY order_id
		) e ON e.order_id = o.order_id
		WHERE (o.family_id = $1 OR o.user_id = $2)
			AND o.order_date BETWEEN $3 AND $4
		GROUP BY 1
		ORDER BY 1;
	`
	familyID, userID := scopeArgs(scope.FamilyID, scope.UserID)
	rows, err := r.Pool.Query(ctx, query, familyID, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("error querying order summary data: %w", err)
	}
	defer rows.Close()

	result := []domain.OrderSummaryRow{}
	for rows.Next() {
		var row domain.OrderSummaryRow
		if err := rows.Scan(&row.Month, &row.Revenue, &row.Expenses, &row.Orders); err != nil {
			return nil, fmt.Errorf("error scanning order summary row: %w", err)
		}
		row.Profit = row.Revenue.Sub(row.Expenses)
		result = append(result, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating order summary rows: %w", err)
	}
	return result, nil
}

// DebtSummary totals outstanding amounts by direction. A debt counts as
// settled when its payments cover the principal.
func (r *reportingRepository) DebtSummary(ctx context.Context, scope portsrepo.Scope) (*domain.DebtSummary, error) {
	query := `
		SELECT
			d.direction,
			d.amount - COALESCE(p.paid, 0) AS remaining
		FROM debts d
		LEFT JOIN (
			SELECT debt_id, SUM(amount) AS paid
			FROM debt_payments
			GROUP BY debt_id
		) p ON p.debt_id = d.debt_id
		WHERE (d.family_id = $1 OR d.user_id = $2);
	`
	familyID, userID := scopeArgs(scope.FamilyID, scope.UserID)
	rows, err := r.Pool.Query(ctx, query, familyID, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying debt summary data: %w", err)
	}
	defer rows.Close()

	summary := domain.DebtSummary{
		TotalHutang:  decimal.Zero,
		TotalPiutang: decimal.Zero,
	}
	for rows.Next() {
		var direction domain.DebtDirection
		var remaining decimal.Decimal
		if err := rows.Scan(&direction, &remaining); err != nil {
			return nil, fmt.Errorf("error scanning debt summary row: %w", err)
		}
		if remaining.Sign() <= 0 {
			summary.SettledCount++
			continue
		}
		summary.OutstandingCount++
		switch direction {
		case domain.DirectionHutang:
			summary.TotalHutang = summary.TotalHutang.Add(remaining)
		case domain.DirectionPiutang:
			summary.TotalPiutang = summary.TotalPiutang.Add(remaining)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating debt summary rows: %w", err)
	}
	return &summary, nil
}
