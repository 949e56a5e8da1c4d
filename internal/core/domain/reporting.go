package domain

import "github.com/shopspring/decimal"

// MonthlySummaryRow is one time bucket of the household summary report.
type MonthlySummaryRow struct {
	Month   string          `json:"month"` // YYYY-MM
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Net     decimal.Decimal `json:"net"`
}

// OrderSummaryRow is one time bucket of the business ledger summary.
type OrderSummaryRow struct {
	Month    string          `json:"month"`
	Revenue  decimal.Decimal `json:"revenue"`
	Expenses decimal.Decimal `json:"expenses"`
	Profit   decimal.Decimal `json:"profit"`
	Orders   int             `json:"orders"`
}

// DebtSummary aggregates current debt standing for a scope.
type DebtSummary struct {
	TotalHutang      decimal.Decimal `json:"totalHutang"`
	TotalPiutang     decimal.Decimal `json:"totalPiutang"`
	OutstandingCount int             `json:"outstandingCount"`
	SettledCount     int             `json:"settledCount"`
}
