package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/cofy_shop/internal/logging"
	"github.com/Skotchmaster/cofy_shop/internal/models"
	"github.com/Skotchmaster/cofy_shop/internal/repo"
)

type CartService struct {
	Repo   *repo.GormRepo
	Events EventPublisher
}

// LocalItem is one entry of a client-side cart handed over at login.
type LocalItem struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  uint      `json:"quantity"`
}

func (s *CartService) GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	return s.Repo.GetOrCreateCart(ctx, userID)
}

func (s *CartService) AddItem(ctx context.Context, userID, productID uuid.UUID, quantity uint) (*models.Cart, error) {
	if productID == uuid.Nil {
		return nil, fmt.Errorf("product_id is required: %w", ErrValidation)
	}
	if quantity == 0 {
		quantity = 1
	}

	if _, err := s.Repo.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	cart, err := s.Repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.AddCartItem(ctx, cart.ID, productID, quantity); err != nil {
		return nil, err
	}

	publish(ctx, s.Events, TopicCartEvents, userID.String(), map[string]any{
		"type":       "cart_item_added",
		"user_id":    userID,
		"product_id": productID,
		"quantity":   quantity,
	})

	return s.Repo.GetOrCreateCart(ctx, userID)
}

// SetItemQuantity overwrites an item's quantity; zero or less removes
// the item.
func (s *CartService) SetItemQuantity(ctx context.Context, userID, itemID uuid.UUID, quantity int) (*models.Cart, error) {
	cart, err := s.Repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, err := s.Repo.GetCartItem(ctx, cart.ID, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}

	if quantity <= 0 {
		if _, err := s.Repo.DeleteCartItem(ctx, cart.ID, itemID); err != nil {
			return nil, err
		}
	} else {
		item.Quantity = uint(quantity)
		if err := s.Repo.SaveCartItem(ctx, item); err != nil {
			return nil, err
		}
	}

	return s.Repo.GetOrCreateCart(ctx, userID)
}

func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uuid.UUID) (*models.Cart, error) {
	cart, err := s.Repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	deleted, err := s.Repo.DeleteCartItem(ctx, cart.ID, itemID)
	if err != nil {
		return nil, err
	}
	if !deleted {
		return nil, ErrItemNotFound
	}

	return s.Repo.GetOrCreateCart(ctx, userID)
}

func (s *CartService) Clear(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	cart, err := s.Repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.ClearCart(ctx, cart.ID); err != nil {
		return nil, err
	}

	publish(ctx, s.Events, TopicCartEvents, userID.String(), map[string]any{
		"type":    "cart_cleared",
		"user_id": userID,
	})

	return s.Repo.GetOrCreateCart(ctx, userID)
}

// Merge reconciles a client-local cart with the server cart when a
// session turns authenticated. A non-empty server cart wins outright and
// the local items are discarded; only into an empty server cart are
// local items materialized, one add per item. Never a quantity-summing
// union. Local entries referencing products that no longer exist are
// skipped so one stale entry cannot sink the rest.
func (s *CartService) Merge(ctx context.Context, userID uuid.UUID, local []LocalItem) (*models.Cart, error) {
	l := logging.FromContext(ctx).With("svc", "cart.merge")

	cart, err := s.Repo.GetOrCreateCart(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) > 0 {
		return cart, nil
	}

	for _, item := range local {
		if item.ProductID == uuid.Nil || item.Quantity == 0 {
			continue
		}
		if _, err := s.AddItem(ctx, userID, item.ProductID, item.Quantity); err != nil {
			if errors.Is(err, ErrProductNotFound) {
				l.Warn("skipping stale local item", "product_id", item.ProductID)
				continue
			}
			return nil, err
		}
	}

	return s.Repo.GetOrCreateCart(ctx, userID)
}
