package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/keluargaku/keluargaku_app/internal/apperrors"
	"github.com/keluargaku/keluargaku_app/internal/core/domain"
	portsrepo "github.com/keluargaku/keluargaku_app/internal/core/ports/repositories"
	portssvc "github.com/keluargaku/keluargaku_app/internal/core/ports/services"
)

// reportingService produces read-only monthly summaries over the ledgers.
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(rr portsrepo.ReportingRepository) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: rr}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// HouseholdSummary returns per-month income/expense/net rows for the window.
func (s *reportingService) HouseholdSummary(ctx context.Context, actor *domain.User, from, to time.Time) ([]domain.MonthlySummaryRow, error) {
	if err := validateWindow(from, to); err != nil {
		return nil, err
	}
	rows, err := s.reportingRepo.HouseholdMonthlySummary(ctx, scopeFor(actor), from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to build household summary", slog.String("user_id", actor.UserID))
		return nil, fmt.Errorf("failed to build household summary: %w", err)
	}
	if rows == nil {
		rows = []domain.MonthlySummaryRow{}
	}
	return rows, nil
}

// OrderSummary returns per-month revenue/expense/profit rows. Gated to AYAH
// like the order ledger itself.
func (s *reportingService) OrderSummary(ctx context.Context, actor *domain.User, from, to time.Time) ([]domain.OrderSummaryRow, error) {
	if err := requireAyah(actor); err != nil {
		return nil, err
	}
	if err := validateWindow(from, to); err != nil {
		return nil, err
	}
	rows, err := s.reportingRepo.OrderMonthlySummary(ctx, scopeFor(actor), from, to)
	if err != nil {
		s.LogError(ctx, err, "Failed to build order summary", slog.String("user_id", actor.UserID))
		return nil, fmt.Errorf("failed to build order summary: %w", err)
	}
	if rows == nil {
		rows = []domain.OrderSummaryRow{}
	}
	return rows, nil
}

// DebtSummary returns outstanding and settled totals split by direction.
func (s *reportingService) DebtSummary(ctx context.Context, actor *domain.User) (*domain.DebtSummary, error) {
	summary, err := s.reportingRepo.DebtSummary(ctx, scopeFor(actor))
	if err != nil {
		s.LogError(ctx, err, "Failed to build debt summary", slog.String("user_id", actor.UserID))
		return nil, fmt.Errorf("failed to build debt summary: %w", err)
	}
	return summary, nil
}

func validateWindow(from, to time.Time) error {
	if to.Before(from) {
		return apperrors.NewValidationFailedError("'to' must not be before 'from'")
	}
	return nil
}
