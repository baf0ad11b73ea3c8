package models

import "time"

// Cart is the single cart of a client, created on first access.
type Cart struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	ClientID  uint       `gorm:"uniqueIndex;not null" json:"client_id"`
	Items     []CartItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// CartItem points at one concrete listing.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CartID    uint      `gorm:"index;not null" json:"cart_id"`
	CarID     uint      `gorm:"index;not null" json:"car_id"`
	Car       *Car      `gorm:"constraint:OnDelete:CASCADE" json:"car,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Favorite is the single favorites list of a client.
type Favorite struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ClientID  uint           `gorm:"uniqueIndex;not null" json:"client_id"`
	Items     []FavoriteItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// FavoriteItem points at a model line, not a listing.
type FavoriteItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FavoriteID uint      `gorm:"index;not null" json:"favorite_id"`
	CarModelID uint      `gorm:"index;not null" json:"car_model_id"`
	CarModel   *CarModel `gorm:"constraint:OnDelete:CASCADE" json:"car_model,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// History is an append-only view/purchase event.
type History struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ClientID  uint      `gorm:"index;not null" json:"client_id"`
	CarID     uint      `gorm:"index;not null" json:"car_id"`
	Car       *Car      `gorm:"constraint:OnDelete:CASCADE" json:"car,omitempty"`
	CreatedAt time.Time `gorm:"<-:create;index" json:"created_at"`
}
