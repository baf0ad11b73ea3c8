package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/automart/app/models"
	"github.com/shashiranjanraj/automart/pkg/apperr"
)

func TestCreateReview(t *testing.T) {
	f := newFixture(t)
	c := f.car(t, "100", 2000)

	_, err := f.reviews.Create(f.ctx, f.owner, ReviewInput{CarID: c.ID, Text: "Mine is best", Stars: 5})
	requireKind(t, err, apperr.KindForbidden)
	_, err = f.reviews.Create(f.ctx, Caller{}, ReviewInput{CarID: c.ID, Text: "x", Stars: 5})
	requireKind(t, err, apperr.KindUnauthenticated)

	rv, err := f.reviews.Create(f.ctx, f.client, ReviewInput{CarID: c.ID, Text: "Solid", Stars: 4})
	require.NoError(t, err)
	assert.Equal(t, f.client.UserID, rv.UserID)
	require.NotNil(t, rv.User)
	assert.Equal(t, "ann", rv.User.Username)

	for _, stars := range []int{0, 6} {
		_, err = f.reviews.Create(f.ctx, f.client, ReviewInput{CarID: c.ID, Text: "x", Stars: stars})
		e := requireKind(t, err, apperr.KindValidation)
		assert.Contains(t, e.Fields, "stars")
	}

	_, err = f.reviews.Create(f.ctx, f.client, ReviewInput{CarID: 999, Text: "x", Stars: 3})
	e := requireKind(t, err, apperr.KindValidation)
	assert.Contains(t, e.Fields, "car_id")
}

func TestReviews_AggregateOnCar(t *testing.T) {
	f := newFixture(t)
	c := f.car(t, "100", 2000)
	other := f.registerClient(t, "cleo")

	_, err := f.reviews.Create(f.ctx, f.client, ReviewInput{CarID: c.ID, Text: "Great", Stars: 5})
	require.NoError(t, err)
	_, err = f.reviews.Create(f.ctx, other, ReviewInput{CarID: c.ID, Text: "Good", Stars: 4})
	require.NoError(t, err)

	car, err := f.catalog.Car(f.ctx, Caller{}, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, models.ReviewCount(car.Reviews))
	require.NotNil(t, models.AverageRating(car.Reviews))
	assert.Equal(t, 4.5, *models.AverageRating(car.Reviews))
	require.NotNil(t, car.Reviews[0].User)

	list, err := f.reviews.List(f.ctx, &c.ID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
	none := uint(999)
	list, err = f.reviews.List(f.ctx, &none)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestUpdateReview_AuthorOnly(t *testing.T) {
	f := newFixture(t)
	c := f.car(t, "100", 2000)
	rv, err := f.reviews.Create(f.ctx, f.client, ReviewInput{CarID: c.ID, Text: "Okay", Stars: 3})
	require.NoError(t, err)

	other := f.registerClient(t, "cleo")
	stars := 1
	_, err = f.reviews.Update(f.ctx, other, rv.ID, ReviewChanges{Stars: &stars})
	requireKind(t, err, apperr.KindForbidden)
	requireKind(t, f.reviews.Delete(f.ctx, other, rv.ID), apperr.KindForbidden)

	stars = 5
	updated, err := f.reviews.Update(f.ctx, f.client, rv.ID, ReviewChanges{Stars: &stars})
	require.NoError(t, err)
	assert.Equal(t, uint8(5), updated.Stars)
	assert.Equal(t, "Okay", updated.Text)

	bad := 9
	_, err = f.reviews.Update(f.ctx, f.client, rv.ID, ReviewChanges{Stars: &bad})
	requireKind(t, err, apperr.KindValidation)

	require.NoError(t, f.reviews.Delete(f.ctx, f.client, rv.ID))
	_, err = f.reviews.Find(f.ctx, rv.ID)
	requireKind(t, err, apperr.KindNotFound)
}
