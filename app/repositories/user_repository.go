package repositories

import (
	"context"

	"github.com/shashiranjanraj/automart/app/models"
	"github.com/shashiranjanraj/automart/pkg/apperr"
	"github.com/shashiranjanraj/automart/pkg/orm"
	"gorm.io/gorm/clause"
)

// ErrUsernameTaken is returned when a username is already registered.
var ErrUsernameTaken = apperr.Conflict("A user with that username already exists.")

// UserRepository handles database operations for User and its profiles.
type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) withProfiles(ctx context.Context) *orm.Query {
	return orm.Ctx(ctx).Model(&models.User{}).Preload("Client").Preload("Owner")
}

// FindByUsername looks up a user by username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := r.withProfiles(ctx).Where("username = ?", username).First(&user)
	return user, dbErr(err, "User")
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	err := r.withProfiles(ctx).Where("id = ?", id).First(&user)
	return user, dbErr(err, "User")
}

// Exists reports whether a user with id and role is still stored.
func (r *UserRepository) Exists(ctx context.Context, id uint, role string) (bool, error) {
	n, err := orm.Ctx(ctx).Model(&models.User{}).Where("id = ? AND role = ?", id, role).Count()
	if err != nil {
		return false, dbErr(err, "User")
	}
	return n > 0, nil
}

// Create persists a new user together with its profile.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	err := orm.Ctx(ctx).Create(user)
	if orm.IsUniqueViolation(err) {
		return ErrUsernameTaken
	}
	return dbErr(err, "User")
}

// Update saves the user row and whichever profile is loaded.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	err := orm.Ctx(ctx).Transaction(func(tx *orm.Query) error {
		if err := tx.Raw().Omit(clause.Associations).Save(user).Error; err != nil {
			return err
		}
		if user.Client != nil {
			user.Client.UserID = user.ID
			if err := tx.Save(user.Client); err != nil {
				return err
			}
		}
		if user.Owner != nil {
			user.Owner.UserID = user.ID
			if err := tx.Save(user.Owner); err != nil {
				return err
			}
		}
		return nil
	})
	if orm.IsUniqueViolation(err) {
		return ErrUsernameTaken
	}
	return dbErr(err, "User")
}

// Delete removes the user with everything it owns: profile, cart and
// favorites with their items, reviews and history.
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	return orm.Ctx(ctx).Transaction(func(tx *orm.Query) error {
		if err := deleteBaskets(tx, id); err != nil {
			return err
		}

		owned := []struct {
			model  interface{}
			column string
		}{
			{&models.CarReview{}, "user_id"},
			{&models.History{}, "client_id"},
			{&models.ClientProfile{}, "user_id"},
			{&models.OwnerProfile{}, "user_id"},
		}
		for _, o := range owned {
			if err := tx.Where(o.column+" = ?", id).Delete(o.model); err != nil {
				return err
			}
		}

		return affected(tx.Raw().Delete(&models.User{}, id), "User")
	})
}
