package service

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Skotchmaster/cofy_shop/internal/hash"
	"github.com/Skotchmaster/cofy_shop/internal/models"
	"github.com/Skotchmaster/cofy_shop/internal/repo"
)

func newTestRepo(t *testing.T) *repo.GormRepo {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// One connection keeps every session on the same in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.Cart{},
		&models.CartItem{},
		&models.Booking{},
	))

	t.Cleanup(func() { _ = sqlDB.Close() })

	return &repo.GormRepo{DB: db}
}

type publishedEvent struct {
	Topic string
	Key   string
	Event map[string]any
}

type stubPublisher struct {
	events []publishedEvent
}

func (s *stubPublisher) PublishEvent(_ context.Context, topic, key string, event map[string]any) error {
	s.events = append(s.events, publishedEvent{Topic: topic, Key: key, Event: event})
	return nil
}

func createTestUser(t *testing.T, r *repo.GormRepo, email string, admin bool) *models.User {
	t.Helper()

	pwHash, err := hash.HashPassword("password")
	require.NoError(t, err)

	user := models.User{
		Name:         "test user",
		Email:        email,
		PasswordHash: pwHash,
		IsAdmin:      admin,
	}
	require.NoError(t, r.DB.Create(&user).Error)
	return &user
}

func createTestProduct(t *testing.T, r *repo.GormRepo, name string, price float64) *models.Product {
	t.Helper()

	product := models.Product{
		Name:        name,
		Description: "test product",
		Price:       price,
		Stock:       10,
	}
	require.NoError(t, r.DB.Create(&product).Error)
	return &product
}
