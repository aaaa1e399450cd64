package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/pkg/events"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type OrderService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

// PlaceOrder creates a pending order and then empties the user's cart.
// The two writes are separate statements: if clearing the cart fails the
// order stays placed and the error is returned as is.
func (s *OrderService) PlaceOrder(ctx context.Context, userID uint, totalAmount decimal.Decimal) (*models.Order, error) {
	l := logging.FromContext(ctx).With("svc", "order.place", "user_id", userID)

	order := models.Order{
		UserID:      userID,
		TotalAmount: totalAmount,
		Status:      models.OrderStatusPending,
	}
	if err := s.Repo.CreateOrder(ctx, &order); err != nil {
		l.Error("place_order_error", "reason", "cannot create order", "error", err)
		return nil, fmt.Errorf("create order: %w: %w", ErrInternal, err)
	}

	cleared, err := s.Repo.ClearCart(ctx, userID)
	if err != nil {
		l.Error("place_order_error", "reason", "order created but cart not cleared", "order_id", order.ID, "error", err)
		return nil, fmt.Errorf("clear cart after order %d: %w: %w", order.ID, ErrInternal, err)
	}

	publish(ctx, s.Events, events.TopicOrder, fmt.Sprint(userID), map[string]any{
		"type":         "order_placed",
		"orderId":      order.ID,
		"userId":       userID,
		"totalAmount":  order.TotalAmount.String(),
		"clearedItems": cleared,
	})

	return &order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID uint) ([]models.Order, error) {
	orders, err := s.Repo.ListOrders(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w: %w", ErrInternal, err)
	}
	return orders, nil
}
