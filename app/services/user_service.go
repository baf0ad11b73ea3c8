package services

import (
	"context"

	"github.com/shashiranjanraj/automart/app/models"
	"github.com/shashiranjanraj/automart/app/repositories"
	"github.com/shashiranjanraj/automart/pkg/apperr"
	"github.com/shashiranjanraj/automart/pkg/auth"
	"github.com/shashiranjanraj/automart/pkg/logger"
)

// UserChanges carries a profile update; nil leaves a field as is. Age is
// accepted for clients only, OwnerName and Location for owners only.
type UserChanges struct {
	Username       *string `json:"username"        validate:"nullable,min=1,max=150"`
	Email          *string `json:"email"           validate:"nullable,email,max=254"`
	Password       *string `json:"password"        validate:"nullable,min=8,max=128"`
	FirstName      *string `json:"first_name"      validate:"nullable,max=150"`
	LastName       *string `json:"last_name"       validate:"nullable,max=150"`
	PhoneNumber    *string `json:"phone_number"    validate:"nullable,max=32"`
	ProfilePicture *string `json:"profile_picture" validate:"nullable,max=255"`
	Age            *int    `json:"age"             validate:"nullable,between=15,80"`
	OwnerName      *string `json:"owner_name"      validate:"nullable,min=1,max=32"`
	Location       *string `json:"location"        validate:"nullable,max=64"`
}

// UserService serves /users/, /clients/ and /owners/. A caller only ever
// sees and changes their own account; any other id is not found.
type UserService struct {
	users *repositories.UserRepository
}

func NewUserService() *UserService {
	return &UserService{users: repositories.NewUserRepository()}
}

// List returns the collection as the caller sees it: themselves.
func (s *UserService) List(ctx context.Context, caller Caller) ([]models.User, error) {
	u, err := s.Get(ctx, caller, caller.UserID)
	if err != nil {
		return nil, err
	}
	return []models.User{u}, nil
}

func (s *UserService) Get(ctx context.Context, caller Caller, id uint) (models.User, error) {
	if err := caller.requireAuth(); err != nil {
		return models.User{}, err
	}
	if id != caller.UserID {
		return models.User{}, apperr.NotFound("User")
	}
	return s.users.FindByID(ctx, id)
}

func (s *UserService) Update(ctx context.Context, caller Caller, id uint, ch UserChanges) (models.User, error) {
	u, err := s.Get(ctx, caller, id)
	if err != nil {
		return u, err
	}
	if err := applyChanges(&u, ch); err != nil {
		return u, err
	}
	if ch.Password != nil {
		hash, err := auth.HashPassword(*ch.Password)
		if err != nil {
			return u, apperr.Internal(err)
		}
		u.Password = hash
	}

	if err := s.users.Update(ctx, &u); err != nil {
		return u, err
	}
	return s.users.FindByID(ctx, id)
}

// Delete removes the caller's account and everything it owns.
func (s *UserService) Delete(ctx context.Context, caller Caller, id uint) error {
	if _, err := s.Get(ctx, caller, id); err != nil {
		return err
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	logger.WithCtx(ctx).Info("user deleted", "user_id", id)
	return nil
}

func applyChanges(u *models.User, ch UserChanges) error {
	errs := map[string]string{}
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}

	set(&u.Username, ch.Username)
	set(&u.Email, ch.Email)
	set(&u.FirstName, ch.FirstName)
	set(&u.LastName, ch.LastName)
	set(&u.PhoneNumber, ch.PhoneNumber)
	set(&u.ProfilePicture, ch.ProfilePicture)

	if ch.Age != nil {
		if u.IsClient() {
			if u.Client == nil {
				u.Client = &models.ClientProfile{}
			}
			u.Client.Age = age(ch.Age)
		} else {
			errs["age"] = "The age field is only available to clients."
		}
	}
	if ch.OwnerName != nil || ch.Location != nil {
		if u.IsOwner() {
			if u.Owner == nil {
				u.Owner = &models.OwnerProfile{}
			}
			set(&u.Owner.OwnerName, ch.OwnerName)
			set(&u.Owner.Location, ch.Location)
		} else {
			if ch.OwnerName != nil {
				errs["owner_name"] = "The owner_name field is only available to owners."
			}
			if ch.Location != nil {
				errs["location"] = "The location field is only available to owners."
			}
		}
	}

	if len(errs) > 0 {
		return apperr.Validation(errs)
	}
	return nil
}
