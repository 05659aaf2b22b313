package model

import "time"

const (
	OrderStatusPending = "PENDING"
	OrderStatusPaid    = "PAID"
)

type CatalogItem struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"size:255;not null"`
	ImageURL    string `gorm:"size:512"`
	Description string
	DriveLink   string `gorm:"size:512;not null"` // where the buyer downloads the package
	PriceVND    int64  `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Activation is owned by its Order and only mutated through the activation
// service; it is never addressed on its own.
type Activation struct {
	IsActivated bool `gorm:"not null;default:false"`
	ActivatedAt *time.Time
	DeviceID    *string `gorm:"size:128"` // nil until a device is bound
	IP          string  `gorm:"size:64"`  // observational only
}

type Order struct {
	ID            uint   `gorm:"primaryKey"`
	BuyerName     string `gorm:"size:255"`
	BuyerEmail    string `gorm:"size:255;index"`
	CatalogItemID uint   `gorm:"index;not null"`
	ItemTitle     string `gorm:"size:255"`               // snapshot at order time
	Amount        int64  `gorm:"not null"`               // snapshot price, never re-derived from the item
	OrderCode     int64  `gorm:"uniqueIndex;not null"`   // public lookup key for the licensing client
	Status        string `gorm:"size:16;index;not null"` // PENDING, PAID
	PaymentLinkID string `gorm:"size:64"`
	CheckoutURL   string `gorm:"size:512"`
	PaidAt        *time.Time

	Activation Activation `gorm:"embedded;embeddedPrefix:activation_"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
