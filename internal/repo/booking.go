package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/Skotchmaster/cofy_shop/internal/models"
)

func (r *GormRepo) CreateBooking(ctx context.Context, b *models.Booking) error {
	return r.DB.WithContext(ctx).Create(b).Error
}

func (r *GormRepo) GetBooking(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	if err := r.DB.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func (r *GormRepo) ListBookings(ctx context.Context) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.DB.WithContext(ctx).
		Preload("User").
		Order("date ASC, start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *GormRepo) ListBookingsForUser(ctx context.Context, userID uuid.UUID) ([]models.Booking, error) {
	var bookings []models.Booking
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date ASC, start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *GormRepo) SaveBooking(ctx context.Context, b *models.Booking) error {
	return r.DB.WithContext(ctx).Save(b).Error
}

func (r *GormRepo) DeleteBooking(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.DB.WithContext(ctx).Delete(&models.Booking{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *GormRepo) CountBookings(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Booking{}).Count(&n).Error
	return n, err
}

func (r *GormRepo) CountBookingsByStatus(ctx context.Context, status string) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Booking{}).
		Where("status = ?", status).
		Count(&n).Error
	return n, err
}
