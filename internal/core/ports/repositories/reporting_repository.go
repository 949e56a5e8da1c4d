package repositories

import (
	"context"
	"time"

	"github.com/keluargaku/keluargaku_app/internal/core/domain"
)

// ReportingRepository aggregates ledger data into time-bucketed summaries.
// Read-only; rendering to document formats happens outside the core.
type ReportingRepository interface {
	HouseholdMonthlySummary(ctx context.Context, scope Scope, from, to time.Time) ([]domain.MonthlySummaryRow, error)
	OrderMonthlySummary(ctx context.Context, scope Scope, from, to time.Time) ([]domain.OrderSummaryRow, error)
	DebtSummary(ctx context.Context, scope Scope) (*domain.DebtSummary, error)
}
