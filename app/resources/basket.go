package resources

import (
	"time"

	"github.com/shashiranjanraj/automart/app/models"
)

type CartItem struct {
	ID  uint         `json:"id"`
	Car *CarListItem `json:"car"`
}

// Cart carries the total of the current listing prices.
type Cart struct {
	ID         uint       `json:"id"`
	ClientID   uint       `json:"client_id"`
	Items      []CartItem `json:"items"`
	TotalPrice string     `json:"total_price"`
}

type FavoriteItem struct {
	ID       uint          `json:"id"`
	CarModel *ModelSummary `json:"car_model"`
}

type Favorite struct {
	ID       uint           `json:"id"`
	ClientID uint           `json:"client_id"`
	Items    []FavoriteItem `json:"items"`
}

type History struct {
	ID        uint         `json:"id"`
	Car       *CarListItem `json:"car"`
	CreatedAt time.Time    `json:"created_at"`
}

func NewCartItem(it models.CartItem) CartItem {
	out := CartItem{ID: it.ID}
	if it.Car != nil {
		c := NewCar(*it.Car)
		out.Car = &c
	}
	return out
}

func CartItems(items []models.CartItem) []CartItem { return each(items, NewCartItem) }

func NewCart(c models.Cart) Cart {
	return Cart{
		ID:         c.ID,
		ClientID:   c.ClientID,
		Items:      CartItems(c.Items),
		TotalPrice: money(models.CartTotal(c.Items)),
	}
}

func NewFavoriteItem(it models.FavoriteItem) FavoriteItem {
	out := FavoriteItem{ID: it.ID}
	if it.CarModel != nil {
		m := NewModel(*it.CarModel)
		out.CarModel = &m
	}
	return out
}

func FavoriteItems(items []models.FavoriteItem) []FavoriteItem { return each(items, NewFavoriteItem) }

func NewFavorite(f models.Favorite) Favorite {
	return Favorite{ID: f.ID, ClientID: f.ClientID, Items: FavoriteItems(f.Items)}
}

func NewHistory(h models.History) History {
	out := History{ID: h.ID, CreatedAt: h.CreatedAt}
	if h.Car != nil {
		c := NewCar(*h.Car)
		out.Car = &c
	}
	return out
}

func Histories(hs []models.History) []History { return each(hs, NewHistory) }
