package models

import (
	"strconv"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// Aggregates are computed from loaded rows on every read. Each is O(n) in
// the collection it walks.

func ReviewCount(reviews []CarReview) int { return len(reviews) }

// AverageRating is the mean of stars rounded to one decimal place, or nil
// when there are no reviews. The mean is rounded as a float64, so exact
// ties go to the even digit (4.25 → 4.2) and 4.35, stored just below
// itself, gives 4.3.
func AverageRating(reviews []CarReview) *float64 {
	if len(reviews) == 0 {
		return nil
	}
	sum := lo.SumBy(reviews, func(r CarReview) int64 { return int64(r.Stars) })
	mean := float64(sum) / float64(len(reviews))
	avg, _ := strconv.ParseFloat(strconv.FormatFloat(mean, 'f', 1, 64), 64)
	return &avg
}

// CartTotal sums the current price of every listing in items. Items whose
// car is not loaded contribute nothing.
func CartTotal(items []CartItem) decimal.Decimal {
	return lo.Reduce(items, func(acc decimal.Decimal, it CartItem, _ int) decimal.Decimal {
		if it.Car == nil {
			return acc
		}
		return acc.Add(it.Car.Price)
	}, decimal.Zero)
}
