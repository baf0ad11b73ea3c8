package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:32;not null" json:"name"`

	Makes  []CarMake  `gorm:"constraint:OnDelete:CASCADE" json:"makes,omitempty"`
	Models []CarModel `gorm:"constraint:OnDelete:CASCADE" json:"models,omitempty"`
}

type CarMake struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:32;uniqueIndex;not null" json:"name"`
	Image      string    `gorm:"size:255" json:"image"` // storage path
	CategoryID *uint     `gorm:"index" json:"category_id"`
	Category   *Category `json:"category,omitempty"`

	Models []CarModel `gorm:"foreignKey:MakeID;constraint:OnDelete:CASCADE" json:"models,omitempty"`
	Cars   []Car      `gorm:"foreignKey:MakeID;constraint:OnDelete:CASCADE" json:"cars,omitempty"`
}

type CarModel struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:32;uniqueIndex;not null" json:"name"`
	MakeID     uint      `gorm:"index;not null" json:"make_id"`
	Make       *CarMake  `gorm:"foreignKey:MakeID" json:"make,omitempty"`
	CategoryID *uint     `gorm:"index" json:"category_id"`
	Category   *Category `json:"category,omitempty"`

	Cars []Car `gorm:"foreignKey:ModelID;constraint:OnDelete:CASCADE" json:"cars,omitempty"`
}

// Car is a listing.
type Car struct {
	ID          uint                          `gorm:"primaryKey" json:"id"`
	MakeID      uint                          `gorm:"index;not null" json:"make_id"`
	Make        *CarMake                      `gorm:"foreignKey:MakeID" json:"make,omitempty"`
	ModelID     uint                          `gorm:"index;not null" json:"model_id"`
	Model       *CarModel                     `gorm:"foreignKey:ModelID" json:"model,omitempty"`
	Description string                        `gorm:"type:text" json:"description"`
	Price       decimal.Decimal               `gorm:"type:decimal(10,2);not null;index" json:"price"`
	Year        uint16                        `gorm:"not null;index" json:"year"`
	Body        BodyType                      `gorm:"size:16;not null;default:any" json:"body"`
	Fuel        datatypes.JSONSlice[FuelType] `gorm:"not null" json:"fuel"`
	Steering    Steering                      `gorm:"size:8;not null;default:left" json:"steering"`
	Gearbox     Gearbox                       `gorm:"size:16;not null;default:any" json:"gearbox"`
	Color       Color                         `gorm:"size:16;not null;default:any" json:"color"`
	CreatedAt   time.Time                     `gorm:"<-:create" json:"created_at"`

	Images  []CarImage  `gorm:"constraint:OnDelete:CASCADE" json:"images,omitempty"`
	Reviews []CarReview `gorm:"constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
}

type CarImage struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CarID     uint      `gorm:"index;not null" json:"car_id"`
	Image     string    `gorm:"size:255;not null" json:"image"` // storage path
	CreatedAt time.Time `json:"created_at"`
}

// Stars outside this range are rejected on write and by the table check.
const (
	MinStars = 1
	MaxStars = 5
)

type CarReview struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CarID     uint      `gorm:"index;not null" json:"car_id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Text      string    `gorm:"type:text;not null" json:"text"`
	Stars     uint8     `gorm:"not null;check:stars >= 1 AND stars <= 5" json:"stars"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
