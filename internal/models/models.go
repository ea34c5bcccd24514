package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"   json:"id"`
	Name         string    `gorm:"not null"               json:"name"`
	Email        string    `gorm:"uniqueIndex;not null"   json:"email"`
	PasswordHash string    `gorm:"not null"               json:"-"`
	IsAdmin      bool      `gorm:"default:false"          json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type Category struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description string    `json:"description"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type Product struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"not null"             json:"name"`
	Description string    `json:"description"`
	Price       float64   `gorm:"not null"             json:"price"`
	Stock       uint      `json:"stock"`
	CategoryID  uuid.UUID `gorm:"type:uuid;index"      json:"category_id"`
	Category    *Category `json:"category,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Cart is created lazily on first access and survives clearing; it is
// removed only when its owning user is deleted.
type Cart struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey"           json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Items     []CartItem `gorm:"foreignKey:CartID"              json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// CartItem ids are the opaque handles clients address items by; at most
// one row per (cart, product).
type CartItem struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"                            json:"id"`
	CartID    uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_product;not null" json:"cart_id"`
	ProductID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_cart_product;not null" json:"product_id"`
	Quantity  uint      `gorm:"default:1;check:quantity>0"                      json:"quantity"`
	Product   *Product  `json:"product,omitempty"`
}

func (i *CartItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

const (
	BookingPending   = "Pending"
	BookingConfirmed = "Confirmed"
	BookingCancelled = "Cancelled"
	BookingCompleted = "Completed"
)

type Booking struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"     json:"id"`
	UserID          uuid.UUID `gorm:"type:uuid;index;not null" json:"user_id"`
	User            *User     `json:"user,omitempty"`
	EventType       string    `gorm:"not null"                 json:"event_type"`
	EventName       string    `gorm:"not null"                 json:"event_name"`
	Date            time.Time `gorm:"not null"                 json:"date"`
	StartTime       string    `gorm:"not null"                 json:"start_time"`
	EndTime         string    `gorm:"not null"                 json:"end_time"`
	NumberOfGuests  uint      `gorm:"not null"                 json:"number_of_guests"`
	ContactPhone    string    `gorm:"not null"                 json:"contact_phone"`
	SpecialRequests string    `json:"special_requests"`
	Status          string    `gorm:"not null;default:Pending" json:"status"`
	// TotalPrice is fixed at creation time and never recomputed.
	TotalPrice float64   `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
