package services

import (
	"context"

	"github.com/shashiranjanraj/automart/app/models"
	"github.com/shashiranjanraj/automart/app/repositories"
	"github.com/shashiranjanraj/automart/pkg/apperr"
	"github.com/shashiranjanraj/automart/pkg/metrics"
)

type ReviewInput struct {
	CarID uint   `json:"car_id" validate:"required"`
	Text  string `json:"text"   validate:"required,max=2000"`
	Stars int    `json:"stars"  validate:"required,between=1,5"`
}

// ReviewChanges carries the fields of an update; nil leaves a field as is.
type ReviewChanges struct {
	Text  *string `json:"text"  validate:"nullable,min=1,max=2000"`
	Stars *int    `json:"stars" validate:"nullable,between=1,5"`
}

var errNotAuthor = apperr.Forbidden("You can only change your own reviews.")

type ReviewService struct {
	reviews  *repositories.ReviewRepository
	catalog  *repositories.CatalogRepository
	accounts accounts
}

func NewReviewService() *ReviewService {
	return &ReviewService{
		reviews:  repositories.NewReviewRepository(),
		catalog:  repositories.NewCatalogRepository(),
		accounts: newAccounts(),
	}
}

// List returns all reviews, or only those of carID when given.
func (s *ReviewService) List(ctx context.Context, carID *uint) ([]models.CarReview, error) {
	return s.reviews.List(ctx, carID)
}

func (s *ReviewService) Find(ctx context.Context, id uint) (models.CarReview, error) {
	return s.reviews.Find(ctx, id)
}

// Create posts a review. Only clients may review; owners get 403.
func (s *ReviewService) Create(ctx context.Context, caller Caller, in ReviewInput) (models.CarReview, error) {
	if err := s.accounts.client(ctx, caller); err != nil {
		return models.CarReview{}, err
	}
	if err := checkStars(in.Stars); err != nil {
		return models.CarReview{}, err
	}
	if _, err := s.catalog.FindCar(ctx, in.CarID); err != nil {
		return models.CarReview{}, refErr(err, "car_id")
	}

	rv := models.CarReview{CarID: in.CarID, UserID: caller.UserID, Text: in.Text, Stars: uint8(in.Stars)}
	if err := s.reviews.Create(ctx, &rv); err != nil {
		return models.CarReview{}, err
	}
	metrics.ReviewsCreated.Inc()
	return s.reviews.Find(ctx, rv.ID)
}

// Update applies changes to a review the caller wrote.
func (s *ReviewService) Update(ctx context.Context, caller Caller, id uint, ch ReviewChanges) (models.CarReview, error) {
	rv, err := s.authored(ctx, caller, id)
	if err != nil {
		return rv, err
	}

	if ch.Text != nil {
		rv.Text = *ch.Text
	}
	if ch.Stars != nil {
		if err := checkStars(*ch.Stars); err != nil {
			return rv, err
		}
		rv.Stars = uint8(*ch.Stars)
	}
	if err := s.reviews.Update(ctx, &rv); err != nil {
		return rv, err
	}
	return s.reviews.Find(ctx, id)
}

// Delete removes a review the caller wrote.
func (s *ReviewService) Delete(ctx context.Context, caller Caller, id uint) error {
	if _, err := s.authored(ctx, caller, id); err != nil {
		return err
	}
	return s.reviews.Delete(ctx, id)
}

func (s *ReviewService) authored(ctx context.Context, caller Caller, id uint) (models.CarReview, error) {
	if err := caller.requireAuth(); err != nil {
		return models.CarReview{}, err
	}
	rv, err := s.reviews.Find(ctx, id)
	if err != nil {
		return rv, err
	}
	if rv.UserID != caller.UserID {
		return rv, errNotAuthor
	}
	return rv, nil
}

func checkStars(n int) error {
	if n < models.MinStars || n > models.MaxStars {
		return apperr.Field("stars", "The stars must be between 1 and 5.")
	}
	return nil
}
