package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/cofy_shop/internal/models"
)

// GetOrCreateCart returns the user's cart with items and products
// preloaded, creating an empty cart row on first access.
func (r *GormRepo) GetOrCreateCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	var cart models.Cart
	if err := r.DB.WithContext(ctx).
		Where(models.Cart{UserID: userID}).
		FirstOrCreate(&cart).Error; err != nil {
		return nil, err
	}
	if err := r.DB.WithContext(ctx).
		Preload("Items.Product").
		First(&cart, "id = ?", cart.ID).Error; err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddCartItem increments the quantity of an existing (cart, product) row
// atomically, inserting a fresh row only when the update matched nothing.
// The single UPDATE closes the read-modify-write window between
// concurrent adds for the same product.
func (r *GormRepo) AddCartItem(ctx context.Context, cartID, productID uuid.UUID, quantity uint) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.CartItem{}).
			Where("cart_id = ? AND product_id = ?", cartID, productID).
			Update("quantity", gorm.Expr("quantity + ?", quantity))
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			return nil
		}

		item := models.CartItem{
			CartID:    cartID,
			ProductID: productID,
			Quantity:  quantity,
		}
		return tx.Create(&item).Error
	})
}

func (r *GormRepo) GetCartItem(ctx context.Context, cartID, itemID uuid.UUID) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.DB.WithContext(ctx).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *GormRepo) SaveCartItem(ctx context.Context, item *models.CartItem) error {
	return r.DB.WithContext(ctx).Save(item).Error
}

func (r *GormRepo) DeleteCartItem(ctx context.Context, cartID, itemID uuid.UUID) (bool, error) {
	res := r.DB.WithContext(ctx).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Delete(&models.CartItem{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// ClearCart empties the item set but keeps the cart row itself.
func (r *GormRepo) ClearCart(ctx context.Context, cartID uuid.UUID) error {
	return r.DB.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Delete(&models.CartItem{}).Error
}

func (r *GormRepo) CountCarts(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Cart{}).Count(&n).Error
	return n, err
}
