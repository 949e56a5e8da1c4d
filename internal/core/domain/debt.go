package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtDirection tells whether the household owes (HUTANG) or is owed
// (PIUTANG, a receivable).
type DebtDirection string

const (
	DirectionHutang  DebtDirection = "HUTANG"
	DirectionPiutang DebtDirection = "PIUTANG"
)

// Debt tracks money owed to or by a counterparty. PaidAmount is the sum of
// the attached payments; remaining and settled state are derived, never
// independently mutated.
type Debt struct {
	DebtID       string          `json:"debtID"`
	UserID       string          `json:"userID"`
	FamilyID     *string         `json:"familyID,omitempty"`
	Counterparty string          `json:"counterparty"`
	Direction    DebtDirection   `json:"direction"`
	Amount       decimal.Decimal `json:"amount"` // non-negative
	DueDate      *time.Time      `json:"dueDate,omitempty"`
	Description  string          `json:"description"`
	Payments     []DebtPayment   `json:"payments,omitempty"`
	AuditFields
}

// DebtPayment is a single repayment against a debt.
type DebtPayment struct {
	PaymentID string          `json:"paymentID"`
	DebtID    string          `json:"debtID"`
	Amount    decimal.Decimal `json:"amount"` // non-negative
	PaidAt    time.Time       `json:"paidAt"`
	Note      string          `json:"note"`
	CreatedAt time.Time       `json:"createdAt"`
}

// PaidAmount sums the attached payments.
func (d *Debt) PaidAmount() decimal.Decimal {
	total := decimal.Zero
	for _, p := range d.Payments {
		total = total.Add(p.Amount)
	}
	return total
}

// RemainingAmount computes amount minus paid amount.
func (d *Debt) RemainingAmount() decimal.Decimal {
	return d.Amount.Sub(d.PaidAmount())
}

// IsSettled reports whether the remaining amount is zero or below.
func (d *Debt) IsSettled() bool {
	return d.RemainingAmount().LessThanOrEqual(decimal.Zero)
}
