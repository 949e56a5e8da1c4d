package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/keluargaku/keluargaku_app/internal/core/domain"
)

func TestOrder_DerivedFigures(t *testing.T) {
	tests := []struct {
		name        string
		order       domain.Order
		wantIncome  int64
		wantProfit  int64
		wantExpense int64
	}{
		{
			name: "no expenses",
			order: domain.Order{
				Quantity:  10,
				UnitPrice: decimal.NewFromInt(25000),
			},
			wantIncome:  250000,
			wantExpense: 0,
			wantProfit:  250000,
		},
		{
			name: "expenses subtracted",
			order: domain.Order{
				Quantity:  4,
				UnitPrice: decimal.NewFromInt(50000),
				Expenses: []domain.OrderExpense{
					{Amount: decimal.NewFromInt(30000)},
					{Amount: decimal.NewFromInt(45000)},
				},
			},
			wantIncome:  200000,
			wantExpense: 75000,
			wantProfit:  125000,
		},
		{
			name: "expenses exceed income",
			order: domain.Order{
				Quantity:  1,
				UnitPrice: decimal.NewFromInt(10000),
				Expenses: []domain.OrderExpense{
					{Amount: decimal.NewFromInt(15000)},
				},
			},
			wantIncome:  10000,
			wantExpense: 15000,
			wantProfit:  -5000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.order.TotalIncome().Equal(decimal.NewFromInt(tt.wantIncome)))
			assert.True(t, tt.order.TotalExpenses().Equal(decimal.NewFromInt(tt.wantExpense)))
			assert.True(t, tt.order.Profit().Equal(decimal.NewFromInt(tt.wantProfit)))
		})
	}
}

func TestOrderStatus_IsValid(t *testing.T) {
	assert.True(t, domain.OrderPending.IsValid())
	assert.True(t, domain.OrderProses.IsValid())
	assert.True(t, domain.OrderSelesai.IsValid())
	assert.True(t, domain.OrderDibatalkan.IsValid())
	assert.False(t, domain.OrderStatus("SHIPPED").IsValid())
}
