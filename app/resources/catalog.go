package resources

import (
	"time"

	"github.com/shashiranjanraj/automart/app/models"
)

type CategorySummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type CategoryDetail struct {
	ID     uint           `json:"id"`
	Name   string         `json:"name"`
	Makes  []MakeSummary  `json:"makes"`
	Models []ModelSummary `json:"models"`
}

type MakeSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type MakeDetail struct {
	ID     uint           `json:"id"`
	Name   string         `json:"name"`
	Image  string         `json:"image"`
	Models []ModelSummary `json:"models"`
	Cars   []CarListItem  `json:"cars"`
}

type ModelSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type ModelDetail struct {
	ID   uint          `json:"id"`
	Name string        `json:"name"`
	Make *MakeSummary  `json:"make"`
	Cars []CarListItem `json:"cars"`
}

type CarImage struct {
	ID    uint   `json:"id"`
	Image string `json:"image"`
}

// CarListItem is the compact listing shown in lists, baskets and history.
type CarListItem struct {
	ID     uint          `json:"id"`
	Make   *MakeSummary  `json:"make"`
	Model  *ModelSummary `json:"model"`
	Images []CarImage    `json:"images"`
	Year   uint16        `json:"year"`
	Price  string        `json:"price"`
}

// CarDetail adds the descriptive fields and the review aggregates.
type CarDetail struct {
	CarListItem
	Description   string            `json:"description"`
	Body          models.BodyType   `json:"body"`
	Fuel          []models.FuelType `json:"fuel"`
	Steering      models.Steering   `json:"steering"`
	Gearbox       models.Gearbox    `json:"gearbox"`
	Color         models.Color      `json:"color"`
	Reviews       []Review          `json:"reviews"`
	AverageRating *float64          `json:"average_rating"`
	ReviewCount   int               `json:"review_count"`
	CreatedAt     time.Time         `json:"created_at"`
}

func NewCategory(c models.Category) CategorySummary {
	return CategorySummary{ID: c.ID, Name: c.Name}
}

func Categories(cs []models.Category) []CategorySummary { return each(cs, NewCategory) }

func NewCategoryDetail(c models.Category) CategoryDetail {
	return CategoryDetail{
		ID:     c.ID,
		Name:   c.Name,
		Makes:  Makes(c.Makes),
		Models: Models(c.Models),
	}
}

func NewMake(m models.CarMake) MakeSummary {
	return MakeSummary{ID: m.ID, Name: m.Name}
}

func Makes(ms []models.CarMake) []MakeSummary { return each(ms, NewMake) }

func NewMakeDetail(m models.CarMake) MakeDetail {
	return MakeDetail{
		ID:     m.ID,
		Name:   m.Name,
		Image:  url(m.Image),
		Models: Models(m.Models),
		Cars:   Cars(m.Cars),
	}
}

func NewModel(m models.CarModel) ModelSummary {
	return ModelSummary{ID: m.ID, Name: m.Name}
}

func Models(ms []models.CarModel) []ModelSummary { return each(ms, NewModel) }

func NewModelDetail(m models.CarModel) ModelDetail {
	d := ModelDetail{ID: m.ID, Name: m.Name, Cars: Cars(m.Cars)}
	if m.Make != nil {
		mk := NewMake(*m.Make)
		d.Make = &mk
	}
	return d
}

func NewCarImage(img models.CarImage) CarImage {
	return CarImage{ID: img.ID, Image: url(img.Image)}
}

func NewCar(c models.Car) CarListItem {
	item := CarListItem{
		ID:     c.ID,
		Images: each(c.Images, NewCarImage),
		Year:   c.Year,
		Price:  money(c.Price),
	}
	if c.Make != nil {
		mk := NewMake(*c.Make)
		item.Make = &mk
	}
	if c.Model != nil {
		md := NewModel(*c.Model)
		item.Model = &md
	}
	return item
}

func Cars(cs []models.Car) []CarListItem { return each(cs, NewCar) }

func NewCarDetail(c models.Car) CarDetail {
	fuel := []models.FuelType(c.Fuel)
	if fuel == nil {
		fuel = []models.FuelType{}
	}
	return CarDetail{
		CarListItem:   NewCar(c),
		Description:   c.Description,
		Body:          c.Body,
		Fuel:          fuel,
		Steering:      c.Steering,
		Gearbox:       c.Gearbox,
		Color:         c.Color,
		Reviews:       Reviews(c.Reviews),
		AverageRating: models.AverageRating(c.Reviews),
		ReviewCount:   models.ReviewCount(c.Reviews),
		CreatedAt:     c.CreatedAt,
	}
}
