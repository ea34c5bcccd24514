package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Skotchmaster/cofy_shop/internal/logging"
	"github.com/Skotchmaster/cofy_shop/internal/models"
	"github.com/Skotchmaster/cofy_shop/internal/repo"
)

// Pricing of the event space: a flat hourly rate plus a per-guest fee.
const (
	hourlyRate   = 50.0
	perGuestRate = 10.0
)

type BookingService struct {
	Repo   *repo.GormRepo
	Events EventPublisher
}

type BookingRequest struct {
	EventType       string `json:"event_type"`
	EventName       string `json:"event_name"`
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	NumberOfGuests  uint   `json:"number_of_guests"`
	ContactPhone    string `json:"contact_phone"`
	SpecialRequests string `json:"special_requests"`
}

var eventTypes = map[string]bool{
	"Birthday":        true,
	"Anniversary":     true,
	"Corporate Event": true,
	"Wedding":         true,
	"Other":           true,
}

var bookingStatuses = map[string]bool{
	models.BookingPending:   true,
	models.BookingConfirmed: true,
	models.BookingCancelled: true,
	models.BookingCompleted: true,
}

// Price computes the booking total from "HH:MM" time-of-day bounds and
// the guest count.
func Price(start, end time.Time, guests uint) float64 {
	hours := end.Sub(start).Hours()
	return hours*hourlyRate + float64(guests)*perGuestRate
}

func (s *BookingService) Create(ctx context.Context, userID uuid.UUID, req BookingRequest) (*models.Booking, error) {
	l := logging.FromContext(ctx).With("svc", "booking.create")

	if req.EventName == "" || req.ContactPhone == "" {
		return nil, fmt.Errorf("event_name and contact_phone are required: %w", ErrValidation)
	}
	if !eventTypes[req.EventType] {
		return nil, fmt.Errorf("unknown event type %q: %w", req.EventType, ErrValidation)
	}
	if req.NumberOfGuests < 1 {
		return nil, fmt.Errorf("number_of_guests must be at least 1: %w", ErrValidation)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", req.Date, ErrValidation)
	}
	start, err := time.Parse("15:04", req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start_time %q: %w", req.StartTime, ErrValidation)
	}
	end, err := time.Parse("15:04", req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("invalid end_time %q: %w", req.EndTime, ErrValidation)
	}
	if !end.After(start) {
		return nil, fmt.Errorf("end_time must be after start_time: %w", ErrValidation)
	}

	booking := models.Booking{
		UserID:          userID,
		EventType:       req.EventType,
		EventName:       req.EventName,
		Date:            date,
		StartTime:       req.StartTime,
		EndTime:         req.EndTime,
		NumberOfGuests:  req.NumberOfGuests,
		ContactPhone:    req.ContactPhone,
		SpecialRequests: req.SpecialRequests,
		Status:          models.BookingPending,
		TotalPrice:      Price(start, end, req.NumberOfGuests),
	}
	if err := s.Repo.CreateBooking(ctx, &booking); err != nil {
		return nil, err
	}

	publish(ctx, s.Events, TopicBookingEvents, booking.ID.String(), map[string]any{
		"type":        "booking_created",
		"booking_id":  booking.ID,
		"user_id":     userID,
		"total_price": booking.TotalPrice,
	})

	l.Info("booking created", "booking_id", booking.ID, "total_price", booking.TotalPrice)
	return &booking, nil
}

func (s *BookingService) ListForUser(ctx context.Context, userID uuid.UUID) ([]models.Booking, error) {
	return s.Repo.ListBookingsForUser(ctx, userID)
}

func (s *BookingService) ListAll(ctx context.Context) ([]models.Booking, error) {
	return s.Repo.ListBookings(ctx)
}

// Get returns a booking to its owner or to an admin.
func (s *BookingService) Get(ctx context.Context, acting *models.User, id uuid.UUID) (*models.Booking, error) {
	booking, err := s.Repo.GetBooking(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if booking.UserID != acting.ID && !acting.IsAdmin {
		return nil, ErrAccessDenied
	}
	return booking, nil
}

func (s *BookingService) Cancel(ctx context.Context, acting *models.User, id uuid.UUID) (*models.Booking, error) {
	booking, err := s.Get(ctx, acting, id)
	if err != nil {
		return nil, err
	}

	booking.Status = models.BookingCancelled
	if err := s.Repo.SaveBooking(ctx, booking); err != nil {
		return nil, err
	}

	publish(ctx, s.Events, TopicBookingEvents, booking.ID.String(), map[string]any{
		"type":       "booking_cancelled",
		"booking_id": booking.ID,
		"user_id":    booking.UserID,
	})

	return booking, nil
}

func (s *BookingService) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Booking, error) {
	if !bookingStatuses[status] {
		return nil, fmt.Errorf("unknown status %q: %w", status, ErrValidation)
	}

	booking, err := s.Repo.GetBooking(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	booking.Status = status
	if err := s.Repo.SaveBooking(ctx, booking); err != nil {
		return nil, err
	}

	publish(ctx, s.Events, TopicBookingEvents, booking.ID.String(), map[string]any{
		"type":       "booking_status_updated",
		"booking_id": booking.ID,
		"status":     status,
	})

	return booking, nil
}

func (s *BookingService) Delete(ctx context.Context, id uuid.UUID) error {
	deleted, err := s.Repo.DeleteBooking(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}
