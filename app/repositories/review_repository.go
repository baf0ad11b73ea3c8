package repositories

import (
	"context"

	"github.com/shashiranjanraj/automart/app/models"
	"github.com/shashiranjanraj/automart/pkg/orm"
)

type ReviewRepository struct{}

func NewReviewRepository() *ReviewRepository {
	return &ReviewRepository{}
}

// List returns reviews oldest first, optionally for one car only.
func (r *ReviewRepository) List(ctx context.Context, carID *uint) ([]models.CarReview, error) {
	var out []models.CarReview
	q := orm.Ctx(ctx).Model(&models.CarReview{}).Preload("User")
	if carID != nil {
		q = q.Where("car_id = ?", *carID)
	}
	err := q.Order("id").Get(&out)
	return out, dbErr(err, "Review")
}

func (r *ReviewRepository) Find(ctx context.Context, id uint) (models.CarReview, error) {
	var rv models.CarReview
	err := orm.Ctx(ctx).Model(&models.CarReview{}).Preload("User").Where("id = ?", id).First(&rv)
	return rv, dbErr(err, "Review")
}

func (r *ReviewRepository) Create(ctx context.Context, rv *models.CarReview) error {
	return dbErr(orm.Ctx(ctx).Create(rv), "Review")
}

func (r *ReviewRepository) Update(ctx context.Context, rv *models.CarReview) error {
	res := orm.Ctx(ctx).Raw().Model(&models.CarReview{}).
		Where("id = ?", rv.ID).
		Updates(map[string]interface{}{"text": rv.Text, "stars": rv.Stars})
	return affected(res, "Review")
}

func (r *ReviewRepository) Delete(ctx context.Context, id uint) error {
	return affected(orm.Ctx(ctx).Raw().Delete(&models.CarReview{}, id), "Review")
}
