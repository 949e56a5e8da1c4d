package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/keluargaku/keluargaku_app/internal/apperrors"
	"github.com/keluargaku/keluargaku_app/internal/core/domain"
	portsrepo "github.com/keluargaku/keluargaku_app/internal/core/ports/repositories"
	portssvc "github.com/keluargaku/keluargaku_app/internal/core/ports/services"
	"github.com/keluargaku/keluargaku_app/internal/dto"
)

// orderService is the business order ledger, gated to the AYAH role.
type orderService struct {
	BaseService
	orderRepo portsrepo.OrderRepository
	history   portssvc.HistorySvcFacade
}

// NewOrderService creates a new order ledger service.
func NewOrderService(or portsrepo.OrderRepository, hist portssvc.HistorySvcFacade) portssvc.OrderSvcFacade {
	return &orderService{orderRepo: or, history: hist}
}

var _ portssvc.OrderSvcFacade = (*orderService)(nil)

// ListOrders returns orders visible to the actor, newest first.
func (s *orderService) ListOrders(ctx context.Context, actor *domain.User) ([]domain.Order, error) {
	if err := requireAyah(actor); err != nil {
		return nil, err
	}
	orders, err := s.orderRepo.ListOrders(ctx, scopeFor(actor))
	if err != nil {
		s.LogError(ctx, err, "Failed to list orders", slog.String("user_id", actor.UserID))
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	return orders, nil
}

// GetOrder fetches one order, expenses attached, within visibility.
func (s *orderService) GetOrder(ctx context.Context, actor *domain.User, orderID string) (*domain.Order, error) {
	if err := requireAyah(actor); err != nil {
		return nil, err
	}
	order, err := s.orderRepo.FindOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if err := requireVisible(actor, order.UserID, order.FamilyID); err != nil {
		return nil, err
	}
	return order, nil
}

// CreateOrder inserts an order owned by the actor. family_id is populated by
// the store's insert trigger.
func (s *orderService) CreateOrder(ctx context.Context, actor *domain.User, req dto.CreateOrderRequest) (*domain.Order, error) {
	if err := requireAyah(actor); err != nil {
		return nil, err
	}
	if err := requireNonNegative(req.UnitPrice, "unitPrice"); err != nil {
		return nil, err
	}

	now := time.Now()
	order := domain.Order{
		OrderID:      uuid.NewString(),
		UserID:       actor.UserID,
		CustomerName: req.CustomerName,
		Item:         req.Item,
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice,
		Status:       domain.OrderPending,
		OrderDate:    req.OrderDate,
		Description:  req.Description,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.orderRepo.SaveOrder(ctx, order); err != nil {
		s.LogError(ctx, err, "Failed to save order", slog.String("user_id", actor.UserID))
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	_ = s.history.Record(ctx, actor, "orders", order.OrderID, domain.HistoryCreate, order.Item)

	saved, err := s.orderRepo.FindOrderByID(ctx, order.OrderID)
	if err != nil {
		return &order, nil
	}
	return saved, nil
}

// UpdateOrder patches an order. Within a family both members would see it;
// in practice only AYAH reaches this ledger.
func (s *orderService) UpdateOrder(ctx context.Context, actor *domain.User, orderID string, req dto.UpdateOrderRequest) (*domain.Order, error) {
	order, err := s.GetOrder(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}

	if req.CustomerName != nil {
		order.CustomerName = *req.CustomerName
	}
	if req.Item != nil {
		order.Item = *req.Item
	}
	if req.Quantity != nil {
		order.Quantity = *req.Quantity
	}
	if req.UnitPrice != nil {
		if err := requireNonNegative(*req.UnitPrice, "unitPrice"); err != nil {
			return nil, err
		}
		order.UnitPrice = *req.UnitPrice
	}
	if req.Status != nil {
		order.Status = *req.Status
	}
	if req.OrderDate != nil {
		order.OrderDate = *req.OrderDate
	}
	if req.Description != nil {
		order.Description = *req.Description
	}
	order.LastUpdatedAt = time.Now()
	order.LastUpdatedBy = actor.UserID

	if err := s.orderRepo.UpdateOrder(ctx, *order); err != nil {
		s.LogError(ctx, err, "Failed to update order", slog.String("order_id", orderID))
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	_ = s.history.Record(ctx, actor, "orders", orderID, domain.HistoryUpdate, "updated")
	return order, nil
}

// DeleteOrder removes an order and, via the store's cascade, its expenses.
func (s *orderService) DeleteOrder(ctx context.Context, actor *domain.User, orderID string) error {
	order, err := s.GetOrder(ctx, actor, orderID)
	if err != nil {
		return err
	}

	if err := s.orderRepo.DeleteOrder(ctx, order.OrderID); err != nil {
		s.LogError(ctx, err, "Failed to delete order", slog.String("order_id", orderID))
		return fmt.Errorf("failed to delete order: %w", err)
	}

	_ = s.history.Record(ctx, actor, "orders", orderID, domain.HistoryDelete, order.Item)
	return nil
}

// AddOrderExpense attaches a cost to an order and returns the order with its
// profit recomputed from stored inputs.
func (s *orderService) AddOrderExpense(ctx context.Context, actor *domain.User, orderID string, req dto.AddOrderExpenseRequest) (*domain.Order, error) {
	order, err := s.GetOrder(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}
	if err := requireNonNegative(req.Amount, "amount"); err != nil {
		return nil, err
	}

	expense := domain.OrderExpense{
		ExpenseID:   uuid.NewString(),
		OrderID:     order.OrderID,
		Name:        req.Name,
		Amount:      req.Amount,
		ExpenseDate: req.ExpenseDate,
		CreatedAt:   time.Now(),
	}

	if err := s.orderRepo.SaveOrderExpense(ctx, expense); err != nil {
		s.LogError(ctx, err, "Failed to save order expense", slog.String("order_id", orderID))
		return nil, fmt.Errorf("failed to add order expense: %w", err)
	}

	_ = s.history.Record(ctx, actor, "order_expenses", expense.ExpenseID, domain.HistoryCreate, expense.Name)

	return s.orderRepo.FindOrderByID(ctx, order.OrderID)
}

// DeleteOrderExpense detaches a cost; the order's profit reverts to what the
// remaining inputs dictate.
func (s *orderService) DeleteOrderExpense(ctx context.Context, actor *domain.User, orderID, expenseID string) (*domain.Order, error) {
	order, err := s.GetOrder(ctx, actor, orderID)
	if err != nil {
		return nil, err
	}

	expense, err := s.orderRepo.FindOrderExpenseByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if expense.OrderID != order.OrderID {
		return nil, fmt.Errorf("expense %s does not belong to order %s: %w", expenseID, orderID, apperrors.ErrNotFound)
	}

	if err := s.orderRepo.DeleteOrderExpense(ctx, expenseID); err != nil {
		s.LogError(ctx, err, "Failed to delete order expense", slog.String("expense_id", expenseID))
		return nil, fmt.Errorf("failed to delete order expense: %w", err)
	}

	_ = s.history.Record(ctx, actor, "order_expenses", expenseID, domain.HistoryDelete, expense.Name)

	return s.orderRepo.FindOrderByID(ctx, order.OrderID)
}
