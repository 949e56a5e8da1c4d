package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/keluargaku/keluargaku_app/internal/core/domain"
)

func TestDebt_DerivedFigures(t *testing.T) {
	tests := []struct {
		name          string
		debt          domain.Debt
		wantPaid      int64
		wantRemaining int64
		wantSettled   bool
	}{
		{
			name:          "no payments",
			debt:          domain.Debt{Amount: decimal.NewFromInt(100000)},
			wantPaid:      0,
			wantRemaining: 100000,
			wantSettled:   false,
		},
		{
			name: "partial payment",
			debt: domain.Debt{
				Amount: decimal.NewFromInt(100000),
				Payments: []domain.DebtPayment{
					{Amount: decimal.NewFromInt(40000)},
				},
			},
			wantPaid:      40000,
			wantRemaining: 60000,
			wantSettled:   false,
		},
		{
			name: "exactly paid off",
			debt: domain.Debt{
				Amount: decimal.NewFromInt(100000),
				Payments: []domain.DebtPayment{
					{Amount: decimal.NewFromInt(60000)},
					{Amount: decimal.NewFromInt(40000)},
				},
			},
			wantPaid:      100000,
			wantRemaining: 0,
			wantSettled:   true,
		},
		{
			name: "overpaid reads as settled",
			debt: domain.Debt{
				Amount: decimal.NewFromInt(100000),
				Payments: []domain.DebtPayment{
					{Amount: decimal.NewFromInt(120000)},
				},
			},
			wantPaid:      120000,
			wantRemaining: -20000,
			wantSettled:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.debt.PaidAmount().Equal(decimal.NewFromInt(tt.wantPaid)))
			assert.True(t, tt.debt.RemainingAmount().Equal(decimal.NewFromInt(tt.wantRemaining)))
			assert.Equal(t, tt.wantSettled, tt.debt.IsSettled())
		})
	}
}
