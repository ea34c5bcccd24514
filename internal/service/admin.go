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

type AdminService struct {
	Repo   *repo.GormRepo
	Events EventPublisher
}

type Stats struct {
	TotalUsers      int64 `json:"total_users"`
	TotalProducts   int64 `json:"total_products"`
	TotalCategories int64 `json:"total_categories"`
	TotalCarts      int64 `json:"total_carts"`
	TotalBookings   int64 `json:"total_bookings"`
	PendingBookings int64 `json:"pending_bookings"`
}

func (s *AdminService) GetStats(ctx context.Context) (*Stats, error) {
	var (
		stats Stats
		err   error
	)
	if stats.TotalUsers, err = s.Repo.CountUsers(ctx); err != nil {
		return nil, err
	}
	if stats.TotalProducts, err = s.Repo.CountProducts(ctx); err != nil {
		return nil, err
	}
	if stats.TotalCategories, err = s.Repo.CountCategories(ctx); err != nil {
		return nil, err
	}
	if stats.TotalCarts, err = s.Repo.CountCarts(ctx); err != nil {
		return nil, err
	}
	if stats.TotalBookings, err = s.Repo.CountBookings(ctx); err != nil {
		return nil, err
	}
	if stats.PendingBookings, err = s.Repo.CountBookingsByStatus(ctx, models.BookingPending); err != nil {
		return nil, err
	}
	return &stats, nil
}

// user management

type UserUpdate struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	IsAdmin *bool   `json:"is_admin"`
}

func (s *AdminService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.Repo.ListUsers(ctx)
}

func (s *AdminService) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.Repo.GetUserByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return user, err
}

// UpdateUser applies a partial update. An admin clearing their own
// admin flag is rejected so administrators cannot lock themselves out.
func (s *AdminService) UpdateUser(ctx context.Context, acting *models.User, id uuid.UUID, upd UserUpdate) (*models.User, error) {
	if upd.IsAdmin != nil && !*upd.IsAdmin && acting.ID == id {
		return nil, fmt.Errorf("cannot remove your own admin status: %w", ErrSelfModification)
	}

	user, err := s.GetUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil && *upd.Name != "" {
		user.Name = *upd.Name
	}
	if upd.Email != nil && *upd.Email != "" {
		user.Email = *upd.Email
	}
	if upd.IsAdmin != nil {
		user.IsAdmin = *upd.IsAdmin
	}

	if err := s.Repo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *AdminService) SetUserAdmin(ctx context.Context, acting *models.User, id uuid.UUID, isAdmin bool) (*models.User, error) {
	return s.UpdateUser(ctx, acting, id, UserUpdate{IsAdmin: &isAdmin})
}

// DeleteUser removes a user and cascades to their cart. Admins cannot
// delete their own account.
func (s *AdminService) DeleteUser(ctx context.Context, acting *models.User, id uuid.UUID) error {
	l := logging.FromContext(ctx).With("svc", "admin.delete_user")

	if acting.ID == id {
		return fmt.Errorf("cannot delete your own account: %w", ErrSelfModification)
	}

	if _, err := s.GetUser(ctx, id); err != nil {
		return err
	}
	if err := s.Repo.DeleteUser(ctx, id); err != nil {
		return err
	}

	publish(ctx, s.Events, TopicUserEvents, id.String(), map[string]any{
		"type":    "user_deleted",
		"user_id": id,
	})

	l.Info("user deleted", "user_id", id)
	return nil
}

// product management

type ProductInput struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       uint      `json:"stock"`
	CategoryID  uuid.UUID `json:"category_id"`
}

func (s *AdminService) CreateProduct(ctx context.Context, in ProductInput) (*models.Product, error) {
	if in.Name == "" || in.Price < 0 {
		return nil, fmt.Errorf("name is required and price must not be negative: %w", ErrValidation)
	}

	product := models.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		CategoryID:  in.CategoryID,
	}
	if err := s.Repo.CreateProduct(ctx, &product); err != nil {
		return nil, err
	}

	publish(ctx, s.Events, TopicProductEvents, product.ID.String(), map[string]any{
		"type":       "product_created",
		"product_id": product.ID,
		"name":       product.Name,
	})

	return s.Repo.GetProduct(ctx, product.ID)
}

func (s *AdminService) UpdateProduct(ctx context.Context, id uuid.UUID, in ProductInput) (*models.Product, error) {
	product, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	product.Name = in.Name
	product.Description = in.Description
	product.Price = in.Price
	product.Stock = in.Stock
	product.CategoryID = in.CategoryID
	product.Category = nil

	if err := s.Repo.SaveProduct(ctx, product); err != nil {
		return nil, err
	}

	publish(ctx, s.Events, TopicProductEvents, product.ID.String(), map[string]any{
		"type":       "product_updated",
		"product_id": product.ID,
		"name":       product.Name,
	})

	return s.Repo.GetProduct(ctx, id)
}

func (s *AdminService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.Repo.DeleteProduct(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrProductNotFound
	}

	publish(ctx, s.Events, TopicProductEvents, id.String(), map[string]any{
		"type":       "product_deleted",
		"product_id": id,
	})

	return nil
}

// category management

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *AdminService) CreateCategory(ctx context.Context, in CategoryInput) (*models.Category, error) {
	if in.Name == "" {
		return nil, fmt.Errorf("name is required: %w", ErrValidation)
	}

	category := models.Category{Name: in.Name, Description: in.Description}
	if err := s.Repo.CreateCategory(ctx, &category); err != nil {
		return nil, err
	}
	return &category, nil
}

func (s *AdminService) UpdateCategory(ctx context.Context, id uuid.UUID, in CategoryInput) (*models.Category, error) {
	category, err := s.Repo.GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if in.Name != "" {
		category.Name = in.Name
	}
	category.Description = in.Description

	if err := s.Repo.SaveCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// DeleteCategory refuses to orphan products.
func (s *AdminService) DeleteCategory(ctx context.Context, id uuid.UUID) error {
	count, err := s.Repo.CountProductsInCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("cannot delete category with %d product(s): %w", count, ErrValidation)
	}

	deleted, err := s.Repo.DeleteCategory(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
