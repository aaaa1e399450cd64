package service

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/pkg/events"
)

type CartService struct {
	Repo   *repo.GormRepo
	Events events.Publisher
}

// AddToCart always inserts a new row; ids are trusted as given.
func (s *CartService) AddToCart(ctx context.Context, userID, productID uint, quantity int) (*models.CartItem, error) {
	item := models.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	if err := s.Repo.AddToCart(ctx, &item); err != nil {
		return nil, fmt.Errorf("add to cart: %w: %w", ErrInternal, err)
	}

	publish(ctx, s.Events, events.TopicCart, fmt.Sprint(userID), map[string]any{
		"type":       "cart_item_added",
		"cartItemId": item.ID,
		"userId":     userID,
		"productId":  productID,
		"quantity":   quantity,
	})

	return &item, nil
}

func (s *CartService) RemoveFromCart(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteCartItem(ctx, id); err != nil {
		if repo.IsNotFound(err) {
			return fmt.Errorf("cart item %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("remove cart item %d: %w: %w", id, ErrInternal, err)
	}

	publish(ctx, s.Events, events.TopicCart, fmt.Sprint(id), map[string]any{
		"type":       "cart_item_removed",
		"cartItemId": id,
	})
	return nil
}

func (s *CartService) ListCart(ctx context.Context, userID uint) ([]models.CartItem, error) {
	items, err := s.Repo.GetCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart: %w: %w", ErrInternal, err)
	}
	return items, nil
}
