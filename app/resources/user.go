package resources

import (
	"github.com/shashiranjanraj/automart/app/models"
	"github.com/shashiranjanraj/automart/pkg/auth"
)

// User is the account as its owner sees it. Profile fields appear only for
// the matching role.
type User struct {
	ID             uint   `json:"id"`
	Username       string `json:"username"`
	Email          string `json:"email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	PhoneNumber    string `json:"phone_number"`
	ProfilePicture string `json:"profile_picture"`
	Role           string `json:"role"`
	Age            *uint8 `json:"age,omitempty"`
	OwnerName      string `json:"owner_name,omitempty"`
	Location       string `json:"location,omitempty"`
}

type AuthUser struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Auth answers register and login.
type Auth struct {
	User    AuthUser `json:"user"`
	Access  string   `json:"access"`
	Refresh string   `json:"refresh"`
}

func NewUser(u models.User) User {
	out := User{
		ID:             u.ID,
		Username:       u.Username,
		Email:          u.Email,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		PhoneNumber:    u.PhoneNumber,
		ProfilePicture: url(u.ProfilePicture),
		Role:           u.Role,
	}
	if u.IsClient() && u.Client != nil {
		out.Age = u.Client.Age
	}
	if u.IsOwner() && u.Owner != nil {
		out.OwnerName = u.Owner.OwnerName
		out.Location = u.Owner.Location
	}
	return out
}

func Users(us []models.User) []User { return each(us, NewUser) }

func NewAuth(u models.User, pair auth.TokenPair) Auth {
	return Auth{
		User:    AuthUser{Username: u.Username, Email: u.Email},
		Access:  pair.Access,
		Refresh: pair.Refresh,
	}
}
