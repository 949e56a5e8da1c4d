package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the lifecycle state of a business order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderProses     OrderStatus = "PROSES"
	OrderSelesai    OrderStatus = "SELESAI"
	OrderDibatalkan OrderStatus = "DIBATALKAN"
)

// IsValid reports whether the status is one of the known lifecycle states.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderPending, OrderProses, OrderSelesai, OrderDibatalkan:
		return true
	}
	return false
}

// Order is an entry in the small-business order ledger. Access is gated to
// the AYAH role. TotalIncome and Profit are never stored; they are functions
// of quantity, unit price and the attached expenses.
type Order struct {
	OrderID      string          `json:"orderID"`
	UserID       string          `json:"userID"`
	FamilyID     *string         `json:"familyID,omitempty"`
	CustomerName string          `json:"customerName"`
	Item         string          `json:"item"`
	Quantity     int64           `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"`
	Status       OrderStatus     `json:"status"`
	OrderDate    time.Time       `json:"orderDate"`
	Description  string          `json:"description"`
	Expenses     []OrderExpense  `json:"expenses,omitempty"`
	AuditFields
}

// OrderExpense is a cost attached to an order, subtracted from its income
// when computing profit.
type OrderExpense struct {
	ExpenseID   string          `json:"expenseID"`
	OrderID     string          `json:"orderID"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"` // non-negative
	ExpenseDate time.Time       `json:"expenseDate"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// TotalIncome computes quantity × unit price.
func (o *Order) TotalIncome() decimal.Decimal {
	return o.UnitPrice.Mul(decimal.NewFromInt(o.Quantity))
}

// TotalExpenses sums the attached expenses.
func (o *Order) TotalExpenses() decimal.Decimal {
	total := decimal.Zero
	for _, e := range o.Expenses {
		total = total.Add(e.Amount)
	}
	return total
}

// Profit computes total income minus total expenses, purely from stored
// inputs so it can never drift from them.
func (o *Order) Profit() decimal.Decimal {
	return o.TotalIncome().Sub(o.TotalExpenses())
}
