package dto

import "github.com/keluargaku/keluargaku_app/internal/core/domain"

// SummaryParams defines the reporting period query parameters.
type SummaryParams struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

// HouseholdSummaryResponse wraps a household summary report.
type HouseholdSummaryResponse struct {
	Rows []domain.MonthlySummaryRow `json:"rows"`
}

// OrderSummaryResponse wraps a business ledger summary report.
type OrderSummaryResponse struct {
	Rows []domain.OrderSummaryRow `json:"rows"`
}

// HistoryListResponse wraps edit-history entries.
type HistoryListResponse struct {
	Entries []domain.EditHistory `json:"entries"`
}
