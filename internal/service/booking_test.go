package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBookingService(t *testing.T) (*BookingService, *stubPublisher) {
	t.Helper()
	events := &stubPublisher{}
	return &BookingService{Repo: newTestRepo(t), Events: events}, events
}

func validBookingRequest() BookingRequest {
	return BookingRequest{
		EventType:      "Birthday",
		EventName:      "Dana turns 30",
		Date:           "2026-09-12",
		StartTime:      "14:00",
		EndTime:        "17:00",
		NumberOfGuests: 20,
		ContactPhone:   "+1-555-0100",
	}
}

func TestPrice(t *testing.T) {
	t.Parallel()

	start, _ := time.Parse("15:04", "14:00")
	end, _ := time.Parse("15:04", "17:00")
	assert.Equal(t, 350.0, Price(start, end, 20))

	end, _ = time.Parse("15:04", "14:30")
	assert.Equal(t, 35.0, Price(start, end, 1))
}

func TestBookingService_Create(t *testing.T) {
	t.Parallel()

	svc, events := newBookingService(t)
	ctx := context.Background()
	user := createTestUser(t, svc.Repo, "alice@example.com", false)

	booking, err := svc.Create(ctx, user.ID, validBookingRequest())
	require.NoError(t, err)

	assert.Equal(t, user.ID, booking.UserID)
	assert.Equal(t, "Pending", booking.Status)
	assert.Equal(t, 350.0, booking.TotalPrice, "3 hours * 50 + 20 guests * 10")
	require.Len(t, events.events, 1)
	assert.Equal(t, TopicBookingEvents, events.events[0].Topic)
}

func TestBookingService_Create_Validation(t *testing.T) {
	t.Parallel()

	svc, _ := newBookingService(t)
	ctx := context.Background()
	user := createTestUser(t, svc.Repo, "alice@example.com", false)

	cases := []struct {
		name   string
		mutate func(*BookingRequest)
	}{
		{"missing name", func(r *BookingRequest) { r.EventName = "" }},
		{"missing phone", func(r *BookingRequest) { r.ContactPhone = "" }},
		{"unknown event type", func(r *BookingRequest) { r.EventType = "Rave" }},
		{"zero guests", func(r *BookingRequest) { r.NumberOfGuests = 0 }},
		{"bad date", func(r *BookingRequest) { r.Date = "12/09/2026" }},
		{"bad start time", func(r *BookingRequest) { r.StartTime = "2pm" }},
		{"bad end time", func(r *BookingRequest) { r.EndTime = "25:00" }},
		{"end equals start", func(r *BookingRequest) { r.EndTime = r.StartTime }},
		{"end before start", func(r *BookingRequest) { r.StartTime = "18:00"; r.EndTime = "17:00" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validBookingRequest()
			tc.mutate(&req)
			_, err := svc.Create(ctx, user.ID, req)
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestBookingService_Get_OwnerAndAdminOnly(t *testing.T) {
	t.Parallel()

	svc, _ := newBookingService(t)
	ctx := context.Background()
	owner := createTestUser(t, svc.Repo, "alice@example.com", false)
	other := createTestUser(t, svc.Repo, "bob@example.com", false)
	admin := createTestUser(t, svc.Repo, "root@example.com", true)

	booking, err := svc.Create(ctx, owner.ID, validBookingRequest())
	require.NoError(t, err)

	got, err := svc.Get(ctx, owner, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, booking.ID, got.ID)

	_, err = svc.Get(ctx, other, booking.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.Get(ctx, admin, booking.ID)
	assert.NoError(t, err)

	_, err = svc.Get(ctx, owner, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookingService_Cancel(t *testing.T) {
	t.Parallel()

	svc, _ := newBookingService(t)
	ctx := context.Background()
	owner := createTestUser(t, svc.Repo, "alice@example.com", false)
	other := createTestUser(t, svc.Repo, "bob@example.com", false)

	booking, err := svc.Create(ctx, owner.ID, validBookingRequest())
	require.NoError(t, err)

	_, err = svc.Cancel(ctx, other, booking.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)

	cancelled, err := svc.Cancel(ctx, owner, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, "Cancelled", cancelled.Status)
	assert.Equal(t, booking.TotalPrice, cancelled.TotalPrice, "price stays fixed at creation time")
}

func TestBookingService_UpdateStatus(t *testing.T) {
	t.Parallel()

	svc, _ := newBookingService(t)
	ctx := context.Background()
	owner := createTestUser(t, svc.Repo, "alice@example.com", false)

	booking, err := svc.Create(ctx, owner.ID, validBookingRequest())
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(ctx, booking.ID, "Confirmed")
	require.NoError(t, err)
	assert.Equal(t, "Confirmed", updated.Status)

	_, err = svc.UpdateStatus(ctx, booking.ID, "Archived")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateStatus(ctx, uuid.New(), "Confirmed")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBookingService_ListForUser(t *testing.T) {
	t.Parallel()

	svc, _ := newBookingService(t)
	ctx := context.Background()
	alice := createTestUser(t, svc.Repo, "alice@example.com", false)
	bob := createTestUser(t, svc.Repo, "bob@example.com", false)

	_, err := svc.Create(ctx, alice.ID, validBookingRequest())
	require.NoError(t, err)
	_, err = svc.Create(ctx, bob.ID, validBookingRequest())
	require.NoError(t, err)

	mine, err := svc.ListForUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, alice.ID, mine[0].UserID)

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestBookingService_Delete(t *testing.T) {
	t.Parallel()

	svc, _ := newBookingService(t)
	ctx := context.Background()
	owner := createTestUser(t, svc.Repo, "alice@example.com", false)

	booking, err := svc.Create(ctx, owner.ID, validBookingRequest())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, booking.ID))
	assert.ErrorIs(t, svc.Delete(ctx, booking.ID), ErrNotFound)
}
