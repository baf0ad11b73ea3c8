package models

import "time"

const (
	RoleClient = "client"
	RoleOwner  = "owner"
)

// Client ages outside this range are rejected on write.
const (
	MinClientAge = 15
	MaxClientAge = 80
)

// User is the shared identity. Role selects which profile row exists.
type User struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	Username       string    `gorm:"size:150;uniqueIndex;not null" json:"username"`
	Email          string    `gorm:"size:254" json:"email"`
	Password       string    `gorm:"size:255;not null" json:"-"` // bcrypt hash
	FirstName      string    `gorm:"size:150" json:"first_name"`
	LastName       string    `gorm:"size:150" json:"last_name"`
	PhoneNumber    string    `gorm:"size:32" json:"phone_number"`
	ProfilePicture string    `gorm:"size:255" json:"profile_picture"`
	Role           string    `gorm:"size:16;not null;index" json:"role"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Client *ClientProfile `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"client,omitempty"`
	Owner  *OwnerProfile  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"owner,omitempty"`
}

func (u User) IsClient() bool { return u.Role == RoleClient }
func (u User) IsOwner() bool  { return u.Role == RoleOwner }

type ClientProfile struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	UserID uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	Age    *uint8 `json:"age"`
}

type OwnerProfile struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	UserID    uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	OwnerName string `gorm:"size:32;not null" json:"owner_name"`
	Location  string `gorm:"size:64" json:"location"`
}

// RevokedToken is one entry of the refresh-token revocation ledger. Rows are
// purged once ExpiresAt has passed.
type RevokedToken struct {
	ID        uint      `gorm:"primaryKey"`
	JTI       string    `gorm:"column:jti;size:64;uniqueIndex;not null"`
	UserID    uint      `gorm:"index;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time
}
