// Package services holds the automart business rules. Every operation that
// depends on who is asking takes an explicit Caller built from the verified
// access token.
package services

import (
	"context"

	"github.com/shashiranjanraj/automart/app/models"
	"github.com/shashiranjanraj/automart/app/repositories"
	"github.com/shashiranjanraj/automart/pkg/apperr"
)

// ErrAccountGone is returned for a still-valid token whose user was deleted.
var ErrAccountGone = apperr.Unauthenticated("User not found.")

// Caller is the identity a request acts as. The zero value is anonymous.
type Caller struct {
	UserID uint
	Role   string
}

func (c Caller) Authenticated() bool { return c.UserID != 0 }
func (c Caller) IsClient() bool      { return c.Authenticated() && c.Role == models.RoleClient }

func (c Caller) requireAuth() error {
	if !c.Authenticated() {
		return apperr.Unauthenticated("Authentication credentials were not provided.")
	}
	return nil
}

func (c Caller) requireClient() error {
	if err := c.requireAuth(); err != nil {
		return err
	}
	if c.Role != models.RoleClient {
		return apperr.Forbidden("This action is only available to clients.")
	}
	return nil
}

// accounts resolves a caller against the users table. Operations that
// create rows keyed by the caller go through it, so a token outliving its
// account cannot bring back what the account deletion removed.
type accounts struct {
	users *repositories.UserRepository
}

func newAccounts() accounts {
	return accounts{users: repositories.NewUserRepository()}
}

// client checks the role like Caller.requireClient, then that the account
// still exists.
func (a accounts) client(ctx context.Context, c Caller) error {
	if err := c.requireClient(); err != nil {
		return err
	}
	ok, err := a.users.Exists(ctx, c.UserID, c.Role)
	if err != nil {
		return err
	}
	if !ok {
		return ErrAccountGone
	}
	return nil
}

// invalidRef is the field error for an id that names no row.
func invalidRef(field string) error {
	return apperr.Field(field, "The selected "+field+" is invalid.")
}
