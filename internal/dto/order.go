package dto

import (
	"time"

	"github.com/keluargaku/keluargaku_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateOrderRequest defines data for a new business order.
type CreateOrderRequest struct {
	CustomerName string          `json:"customerName" binding:"required,max=100"`
	Item         string          `json:"item" binding:"required,max=200"`
	Quantity     int64           `json:"quantity" binding:"required,gt=0"`
	UnitPrice    decimal.Decimal `json:"unitPrice" binding:"required"`
	OrderDate    time.Time       `json:"orderDate" binding:"required"`
	Description  string          `json:"description"`
}

// UpdateOrderRequest patches an existing order.
type UpdateOrderRequest struct {
	CustomerName *string             `json:"customerName"`
	Item         *string             `json:"item"`
	Quantity     *int64              `json:"quantity" binding:"omitempty,gt=0"`
	UnitPrice    *decimal.Decimal    `json:"unitPrice"`
	Status       *domain.OrderStatus `json:"status" binding:"omitempty,oneof=PENDING PROSES SELESAI DIBATALKAN"`
	OrderDate    *time.Time          `json:"orderDate"`
	Description  *string             `json:"description"`
}

// AddOrderExpenseRequest defines data for attaching an expense to an order.
type AddOrderExpenseRequest struct {
	Name        string          `json:"name" binding:"required,max=100"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	ExpenseDate time.Time       `json:"expenseDate" binding:"required"`
}

// OrderExpenseResponse defines data returned for an order expense.
type OrderExpenseResponse struct {
	ExpenseID   string          `json:"expenseID"`
	Name        string          `json:"name"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate time.Time       `json:"expenseDate"`
}

// OrderResponse defines data returned for an order, derived figures included.
type OrderResponse struct {
	OrderID      string                 `json:"orderID"`
	UserID       string                 `json:"userID"`
	FamilyID     *string                `json:"familyID,omitempty"`
	CustomerName string                 `json:"customerName"`
	Item         string                 `json:"item"`
	Quantity     int64                  `json:"quantity"`
	UnitPrice    decimal.Decimal        `json:"unitPrice"`
	Status       domain.OrderStatus     `json:"status"`
	OrderDate    time.Time              `json:"orderDate"`
	Description  string                 `json:"description"`
	Expenses     []OrderExpenseResponse `json:"expenses"`
	TotalIncome  decimal.Decimal        `json:"totalIncome"`
	Profit       decimal.Decimal        `json:"profit"`
	CreatedAt    time.Time              `json:"createdAt"`
}

// ToOrderResponse converts a domain order to its DTO, computing the derived
// figures from stored primitives at read time.
func ToOrderResponse(o *domain.Order) OrderResponse {
	expenses := make([]OrderExpenseResponse, len(o.Expenses))
	for i, e := range o.Expenses {
		expenses[i] = OrderExpenseResponse{
			ExpenseID:   e.ExpenseID,
			Name:        e.Name,
			Amount:      e.Amount,
			ExpenseDate: e.ExpenseDate,
		}
	}
	return OrderResponse{
		OrderID:      o.OrderID,
		UserID:       o.UserID,
		FamilyID:     o.FamilyID,
		CustomerName: o.CustomerName,
		Item:         o.Item,
		Quantity:     o.Quantity,
		UnitPrice:    o.UnitPrice,
		Status:       o.Status,
		OrderDate:    o.OrderDate,
		Description:  o.Description,
		Expenses:     expenses,
		TotalIncome:  o.TotalIncome(),
		Profit:       o.Profit(),
		CreatedAt:    o.CreatedAt,
	}
}

// ToOrderListResponse converts a slice of orders.
func ToOrderListResponse(os []domain.Order) []OrderResponse {
	out := make([]OrderResponse, len(os))
	for i := range os {
		out[i] = ToOrderResponse(&os[i])
	}
	return out
}
