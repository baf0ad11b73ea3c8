package services

import (
	"context"

	"github.com/shashiranjanraj/automart/app/models"
	"github.com/shashiranjanraj/automart/app/repositories"
	"github.com/shashiranjanraj/automart/pkg/apperr"
	"github.com/shashiranjanraj/automart/pkg/metrics"
)

type CartItemInput struct {
	CarID uint `json:"car_id" validate:"required"`
}

type FavoriteItemInput struct {
	CarModelID uint `json:"car_model_id" validate:"required"`
}

// BasketService manages the caller's cart and favorites. Every operation
// requires the client role and only ever sees the caller's own basket.
type BasketService struct {
	baskets  *repositories.BasketRepository
	catalog  *repositories.CatalogRepository
	accounts accounts
}

func NewBasketService() *BasketService {
	return &BasketService{
		baskets:  repositories.NewBasketRepository(),
		catalog:  repositories.NewCatalogRepository(),
		accounts: newAccounts(),
	}
}

// Cart returns the caller's cart, creating it on first access.
func (s *BasketService) Cart(ctx context.Context, caller Caller) (models.Cart, error) {
	if err := s.accounts.client(ctx, caller); err != nil {
		return models.Cart{}, err
	}
	return s.baskets.Cart(ctx, caller.UserID)
}

func (s *BasketService) CartItems(ctx context.Context, caller Caller) ([]models.CartItem, error) {
	if err := s.accounts.client(ctx, caller); err != nil {
		return nil, err
	}
	return s.baskets.CartItems(ctx, caller.UserID)
}

func (s *BasketService) CartItem(ctx context.Context, caller Caller, id uint) (models.CartItem, error) {
	if err := s.accounts.client(ctx, caller); err != nil {
		return models.CartItem{}, err
	}
	return s.baskets.CartItem(ctx, caller.UserID, id)
}

func (s *BasketService) AddCartItem(ctx context.Context, caller Caller, in CartItemInput) (models.CartItem, error) {
	if err := s.accounts.client(ctx, caller); err != nil {
		return models.CartItem{}, err
	}
	if _, err := s.catalog.FindCar(ctx, in.CarID); err != nil {
		return models.CartItem{}, refErr(err, "car_id")
	}
	it, err := s.baskets.AddCartItem(ctx, caller.UserID, in.CarID)
	if err == nil {
		metrics.BasketChanges.WithLabelValues("cart", "add").Inc()
	}
	return it, err
}

// RemoveCartItem deletes the item; the cart and the listing stay.
func (s *BasketService) RemoveCartItem(ctx context.Context, caller Caller, id uint) error {
	if err := s.accounts.client(ctx, caller); err != nil {
		return err
	}
	err := s.baskets.RemoveCartItem(ctx, caller.UserID, id)
	if err == nil {
		metrics.BasketChanges.WithLabelValues("cart", "remove").Inc()
	}
	return err
}

// Favorite returns the caller's favorites list, creating it on first access.
func (s *BasketService) Favorite(ctx context.Context, caller Caller) (models.Favorite, error) {
	if err := s.accounts.client(ctx, caller); err != nil {
		return models.Favorite{}, err
	}
	return s.baskets.Favorite(ctx, caller.UserID)
}

func (s *BasketService) FavoriteItems(ctx context.Context, caller Caller) ([]models.FavoriteItem, error) {
	if err := s.accounts.client(ctx, caller); err != nil {
		return nil, err
	}
	return s.baskets.FavoriteItems(ctx, caller.UserID)
}

func (s *BasketService) FavoriteItem(ctx context.Context, caller Caller, id uint) (models.FavoriteItem, error) {
	if err := s.accounts.client(ctx, caller); err != nil {
		return models.FavoriteItem{}, err
	}
	return s.baskets.FavoriteItem(ctx, caller.UserID, id)
}

func (s *BasketService) AddFavoriteItem(ctx context.Context, caller Caller, in FavoriteItemInput) (models.FavoriteItem, error) {
	if err := s.accounts.client(ctx, caller); err != nil {
		return models.FavoriteItem{}, err
	}
	if _, err := s.catalog.FindModel(ctx, in.CarModelID); err != nil {
		return models.FavoriteItem{}, refErr(err, "car_model_id")
	}
	it, err := s.baskets.AddFavoriteItem(ctx, caller.UserID, in.CarModelID)
	if err == nil {
		metrics.BasketChanges.WithLabelValues("favorite", "add").Inc()
	}
	return it, err
}

func (s *BasketService) RemoveFavoriteItem(ctx context.Context, caller Caller, id uint) error {
	if err := s.accounts.client(ctx, caller); err != nil {
		return err
	}
	err := s.baskets.RemoveFavoriteItem(ctx, caller.UserID, id)
	if err == nil {
		metrics.BasketChanges.WithLabelValues("favorite", "remove").Inc()
	}
	return err
}

// refErr turns a missing referenced row into a field error.
func refErr(err error, field string) error {
	if apperr.Is(err, apperr.KindNotFound) {
		return invalidRef(field)
	}
	return err
}
