package services

import (
	"context"
	"time"

	"github.com/keluargaku/keluargaku_app/internal/core/domain"
)

// ReportingSvcFacade produces read-only time-bucketed summaries over the
// ledgers. Document rendering (PDF/Excel/CSV) lives outside the core and
// consumes these results.
type ReportingSvcFacade interface {
	HouseholdSummary(ctx context.Context, actor *domain.User, from, to time.Time) ([]domain.MonthlySummaryRow, error)
	// OrderSummary is gated to AYAH like the order ledger itself.
	OrderSummary(ctx context.Context, actor *domain.User, from, to time.Time) ([]domain.OrderSummaryRow, error)
	DebtSummary(ctx context.Context, actor *domain.User) (*domain.DebtSummary, error)
}
