package model

import "time"

type Product struct {
	ID                     string `gorm:"primaryKey;size:36;not null"`
	Name                   string `gorm:"size:255;index;not null"`
	Description            string `gorm:"type:text;not null"`
	PriceInCents           int64  `gorm:"not null"`
	FilePath               string `gorm:"size:512;not null"` // storage key of the purchasable file
	ImagePath              string `gorm:"size:512;not null"` // public URL path of the image
	IsAvailableForPurchase bool   `gorm:"index;not null;default:false"`
	CreatedAt              time.Time
	UpdatedAt              time.Time

	Orders []Order `gorm:"foreignKey:ProductID"`
}

type User struct {
	ID        string `gorm:"primaryKey;size:36;not null"`
	Email     string `gorm:"size:255;uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Orders []Order `gorm:"foreignKey:UserID"`
}

type Order struct {
	ID               string `gorm:"primaryKey;size:36;not null"`
	ProductID        string `gorm:"size:36;index;not null"`
	UserID           string `gorm:"size:36;index;not null"`
	PricePaidInCents int64  `gorm:"not null"`
	CreatedAt        time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
	User    *User    `gorm:"foreignKey:UserID"`
}

// DownloadVerification grants a download of ProductID until ExpiresAt.
// It is scoped to the product, not to the order that issued it.
type DownloadVerification struct {
	ID        string    `gorm:"primaryKey;size:36;not null"`
	ProductID string    `gorm:"size:36;index;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

// WebhookEvent records how far a delivered payment event got through
// fulfillment. NotifiedAt is nil until the receipt email went out.
type WebhookEvent struct {
	EventID        string `gorm:"primaryKey;size:128;not null"` // stripe event id
	EventType      string `gorm:"size:64;index"`
	OrderID        string `gorm:"size:36"`
	VerificationID string `gorm:"size:36"`
	NotifiedAt     *time.Time
	ProcessedAt    time.Time
	CreatedAt      time.Time
}
