package dto

import (
	"time"

	"github.com/keluargaku/keluargaku_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDebtRequest defines data for a new debt or receivable.
type CreateDebtRequest struct {
	Counterparty string               `json:"counterparty" binding:"required,max=100"`
	Direction    domain.DebtDirection `json:"direction" binding:"required,oneof=HUTANG PIUTANG"`
	Amount       decimal.Decimal      `json:"amount" binding:"required"`
	DueDate      *time.Time           `json:"dueDate"`
	Description  string               `json:"description"`
}

// UpdateDebtRequest patches an existing debt. Paid amount is not here: it is
// derived from payments and never directly written.
type UpdateDebtRequest struct {
	Counterparty *string          `json:"counterparty"`
	Amount       *decimal.Decimal `json:"amount"`
	DueDate      *time.Time       `json:"dueDate"`
	Description  *string          `json:"description"`
}

// AddDebtPaymentRequest defines data for recording a repayment.
type AddDebtPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	PaidAt time.Time       `json:"paidAt" binding:"required"`
	Note   string          `json:"note"`
}

// DebtPaymentResponse defines data returned for a payment.
type DebtPaymentResponse struct {
	PaymentID string          `json:"paymentID"`
	Amount    decimal.Decimal `json:"amount"`
	PaidAt    time.Time       `json:"paidAt"`
	Note      string          `json:"note"`
}

// DebtResponse defines data returned for a debt, derived figures included.
type DebtResponse struct {
	DebtID          string                `json:"debtID"`
	UserID          string                `json:"userID"`
	FamilyID        *string               `json:"familyID,omitempty"`
	Counterparty    string                `json:"counterparty"`
	Direction       domain.DebtDirection  `json:"direction"`
	Amount          decimal.Decimal       `json:"amount"`
	PaidAmount      decimal.Decimal       `json:"paidAmount"`
	RemainingAmount decimal.Decimal       `json:"remainingAmount"`
	IsSettled       bool                  `json:"isSettled"`
	DueDate         *time.Time            `json:"dueDate,omitempty"`
	Description     string                `json:"description"`
	Payments        []DebtPaymentResponse `json:"payments"`
	CreatedAt       time.Time             `json:"createdAt"`
}

// ToDebtResponse converts a domain debt to its DTO, computing the derived
// figures from stored primitives at read time.
func ToDebtResponse(d *domain.Debt) DebtResponse {
	payments := make([]DebtPaymentResponse, len(d.Payments))
	for i, p := range d.Payments {
		payments[i] = DebtPaymentResponse{
			PaymentID: p.PaymentID,
			Amount:    p.Amount,
			PaidAt:    p.PaidAt,
			Note:      p.Note,
		}
	}
	return DebtResponse{
		DebtID:          d.DebtID,
		UserID:          d.UserID,
		FamilyID:        d.FamilyID,
		Counterparty:    d.Counterparty,
		Direction:       d.Direction,
		Amount:          d.Amount,
		PaidAmount:      d.PaidAmount(),
		RemainingAmount: d.RemainingAmount(),
		IsSettled:       d.IsSettled(),
		DueDate:         d.DueDate,
		Description:     d.Description,
		Payments:        payments,
		CreatedAt:       d.CreatedAt,
	}
}

// ToDebtListResponse converts a slice of debts.
func ToDebtListResponse(ds []domain.Debt) []DebtResponse {
	out := make([]DebtResponse, len(ds))
	for i := range ds {
		out[i] = ToDebtResponse(&ds[i])
	}
	return out
}
