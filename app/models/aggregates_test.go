package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reviews(stars ...uint8) []CarReview {
	out := make([]CarReview, len(stars))
	for i, s := range stars {
		out[i] = CarReview{Stars: s}
	}
	return out
}

func TestAverageRating_NoReviews(t *testing.T) {
	assert.Nil(t, AverageRating(nil))
	assert.Nil(t, AverageRating([]CarReview{}))
	assert.Equal(t, 0, ReviewCount(nil))
}

func TestAverageRating(t *testing.T) {
	cases := []struct {
		stars []uint8
		want  float64
	}{
		{[]uint8{5}, 5},
		{[]uint8{4, 5}, 4.5},
		{[]uint8{1, 2, 2}, 1.7},    // 1.666…
		{[]uint8{4, 4, 5, 4}, 4.2}, // 4.25 ties to even
		{[]uint8{1, 1, 1, 2}, 1.2}, // 1.25 ties to even
		{[]uint8{2, 2, 2, 3}, 2.2}, // 2.25
		{[]uint8{3, 4}, 3.5},
		{[]uint8{3, 3, 4}, 3.3},    // 3.333…
	}
	for _, tc := range cases {
		got := AverageRating(reviews(tc.stars...))
		require.NotNil(t, got)
		assert.Equal(t, tc.want, *got, "stars %v", tc.stars)
		assert.Equal(t, len(tc.stars), ReviewCount(reviews(tc.stars...)))
	}
}

func TestAverageRating_BinaryTies(t *testing.T) {
	// 87/20 = 4.35 and 71/20 = 3.55 are both held just below the tie
	stars := make([]uint8, 0, 20)
	for i := 0; i < 20; i++ {
		if i < 7 {
			stars = append(stars, 5)
		} else {
			stars = append(stars, 4)
		}
	}
	got := AverageRating(reviews(stars...))
	require.NotNil(t, got)
	assert.Equal(t, 4.3, *got)

	stars = stars[:0]
	for i := 0; i < 20; i++ {
		if i < 17 {
			stars = append(stars, 4)
		} else {
			stars = append(stars, 1)
		}
	}
	got = AverageRating(reviews(stars...))
	require.NotNil(t, got)
	assert.Equal(t, 3.5, *got)
}

func TestCartTotal(t *testing.T) {
	a := &Car{Price: decimal.RequireFromString("10000.10")}
	b := &Car{Price: decimal.RequireFromString("2500.25")}
	items := []CartItem{{Car: a}, {Car: b}, {Car: a}, {}}

	assert.Equal(t, "22500.45", CartTotal(items).StringFixed(2))
	assert.True(t, CartTotal(nil).IsZero())

	a.Price = decimal.RequireFromString("1.00")
	assert.Equal(t, "2502.25", CartTotal(items).StringFixed(2))
}

func TestEnums(t *testing.T) {
	assert.True(t, BodySUV.Valid())
	assert.False(t, BodyType("truck").Valid())
	assert.True(t, FuelElectric.Valid())
	assert.False(t, FuelType("coal").Valid())
	assert.True(t, SteeringRight.Valid())
	assert.False(t, Steering("center").Valid())
	assert.True(t, GearboxManual.Valid())
	assert.False(t, Color("green").Valid())
}
