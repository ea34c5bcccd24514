package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/Skotchmaster/cofy_shop/internal/models"
)

func (r *GormRepo) GetCategory(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	var category models.Category
	if err := r.DB.WithContext(ctx).Where("id = ?", id).First(&category).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *GormRepo) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := r.DB.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *GormRepo) CreateCategory(ctx context.Context, c *models.Category) error {
	return r.DB.WithContext(ctx).Create(c).Error
}

func (r *GormRepo) SaveCategory(ctx context.Context, c *models.Category) error {
	return r.DB.WithContext(ctx).Save(c).Error
}

func (r *GormRepo) DeleteCategory(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.DB.WithContext(ctx).Delete(&models.Category{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *GormRepo) CountCategories(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Category{}).Count(&n).Error
	return n, err
}
