package resources

import (
	"time"

	"github.com/shashiranjanraj/automart/app/models"
)

type ReviewAuthor struct {
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type Review struct {
	ID        uint          `json:"id"`
	User      *ReviewAuthor `json:"user"`
	CarID     uint          `json:"car_id"`
	Text      string        `json:"text"`
	Stars     uint8         `json:"stars"`
	CreatedAt time.Time     `json:"created_at"`
}

func NewReview(r models.CarReview) Review {
	out := Review{ID: r.ID, CarID: r.CarID, Text: r.Text, Stars: r.Stars, CreatedAt: r.CreatedAt}
	if r.User != nil {
		out.User = &ReviewAuthor{Username: r.User.Username, FirstName: r.User.FirstName, LastName: r.User.LastName}
	}
	return out
}

func Reviews(rs []models.CarReview) []Review { return each(rs, NewReview) }
