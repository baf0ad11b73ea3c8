package repositories

import (
	"context"

	"github.com/shashiranjanraj/automart/app/models"
	"github.com/shashiranjanraj/automart/pkg/orm"
)

// BasketRepository persists carts and favorites. Each client has at most
// one of each; the unique index on client_id makes get-or-create safe under
// concurrent first access.
type BasketRepository struct{}

func NewBasketRepository() *BasketRepository {
	return &BasketRepository{}
}

// ─── Cart ─────────────────────────────────────────────────────────────────────

func (r *BasketRepository) cartID(ctx context.Context, clientID uint) (uint, error) {
	cart := models.Cart{ClientID: clientID}
	if err := orm.Ctx(ctx).FirstOrCreate(&cart, "client_id", clientID); err != nil {
		return 0, dbErr(err, "Cart")
	}
	return cart.ID, nil
}

// Cart returns the client's cart, creating it on first access, with every
// item's listing loaded.
func (r *BasketRepository) Cart(ctx context.Context, clientID uint) (models.Cart, error) {
	id, err := r.cartID(ctx, clientID)
	if err != nil {
		return models.Cart{}, err
	}

	var cart models.Cart
	q := orm.Ctx(ctx).Model(&models.Cart{}).Preload("Items", ordered("cart_items.id"))
	err = listings(q, "Items.Car.").Where("id = ?", id).First(&cart)
	return cart, dbErr(err, "Cart")
}

func (r *BasketRepository) cartItems(ctx context.Context, clientID uint) *orm.Query {
	q := orm.Ctx(ctx).Model(&models.CartItem{}).
		Where("cart_id IN (SELECT id FROM carts WHERE client_id = ?)", clientID)
	return listings(q, "Car.")
}

func (r *BasketRepository) CartItems(ctx context.Context, clientID uint) ([]models.CartItem, error) {
	var out []models.CartItem
	err := r.cartItems(ctx, clientID).Order("id").Get(&out)
	return out, dbErr(err, "Cart item")
}

// CartItem finds one of the client's items; other clients' items are not
// found.
func (r *BasketRepository) CartItem(ctx context.Context, clientID, id uint) (models.CartItem, error) {
	var it models.CartItem
	err := r.cartItems(ctx, clientID).Where("id = ?", id).First(&it)
	return it, dbErr(err, "Cart item")
}

// AddCartItem appends carID to the client's cart.
func (r *BasketRepository) AddCartItem(ctx context.Context, clientID, carID uint) (models.CartItem, error) {
	cartID, err := r.cartID(ctx, clientID)
	if err != nil {
		return models.CartItem{}, err
	}
	it := models.CartItem{CartID: cartID, CarID: carID}
	if err := orm.Ctx(ctx).Create(&it); err != nil {
		return it, dbErr(err, "Cart item")
	}
	return r.CartItem(ctx, clientID, it.ID)
}

// RemoveCartItem deletes only the item row.
func (r *BasketRepository) RemoveCartItem(ctx context.Context, clientID, id uint) error {
	res := orm.Ctx(ctx).Raw().
		Where("id = ? AND cart_id IN (SELECT id FROM carts WHERE client_id = ?)", id, clientID).
		Delete(&models.CartItem{})
	return affected(res, "Cart item")
}

// ─── Favorite ─────────────────────────────────────────────────────────────────

func (r *BasketRepository) favoriteID(ctx context.Context, clientID uint) (uint, error) {
	fav := models.Favorite{ClientID: clientID}
	if err := orm.Ctx(ctx).FirstOrCreate(&fav, "client_id", clientID); err != nil {
		return 0, dbErr(err, "Favorite")
	}
	return fav.ID, nil
}

// Favorite returns the client's favorites list, creating it on first access.
func (r *BasketRepository) Favorite(ctx context.Context, clientID uint) (models.Favorite, error) {
	id, err := r.favoriteID(ctx, clientID)
	if err != nil {
		return models.Favorite{}, err
	}

	var fav models.Favorite
	err = orm.Ctx(ctx).Model(&models.Favorite{}).
		Preload("Items", ordered("favorite_items.id")).
		Preload("Items.CarModel.Make").
		Where("id = ?", id).
		First(&fav)
	return fav, dbErr(err, "Favorite")
}

func (r *BasketRepository) favoriteItems(ctx context.Context, clientID uint) *orm.Query {
	return orm.Ctx(ctx).Model(&models.FavoriteItem{}).
		Preload("CarModel.Make").
		Where("favorite_id IN (SELECT id FROM favorites WHERE client_id = ?)", clientID)
}

func (r *BasketRepository) FavoriteItems(ctx context.Context, clientID uint) ([]models.FavoriteItem, error) {
	var out []models.FavoriteItem
	err := r.favoriteItems(ctx, clientID).Order("id").Get(&out)
	return out, dbErr(err, "Favorite item")
}

func (r *BasketRepository) FavoriteItem(ctx context.Context, clientID, id uint) (models.FavoriteItem, error) {
	var it models.FavoriteItem
	err := r.favoriteItems(ctx, clientID).Where("id = ?", id).First(&it)
	return it, dbErr(err, "Favorite item")
}

// AddFavoriteItem appends a model line to the client's favorites.
func (r *BasketRepository) AddFavoriteItem(ctx context.Context, clientID, modelID uint) (models.FavoriteItem, error) {
	favID, err := r.favoriteID(ctx, clientID)
	if err != nil {
		return models.FavoriteItem{}, err
	}
	it := models.FavoriteItem{FavoriteID: favID, CarModelID: modelID}
	if err := orm.Ctx(ctx).Create(&it); err != nil {
		return it, dbErr(err, "Favorite item")
	}
	return r.FavoriteItem(ctx, clientID, it.ID)
}

func (r *BasketRepository) RemoveFavoriteItem(ctx context.Context, clientID, id uint) error {
	res := orm.Ctx(ctx).Raw().
		Where("id = ? AND favorite_id IN (SELECT id FROM favorites WHERE client_id = ?)", id, clientID).
		Delete(&models.FavoriteItem{})
	return affected(res, "Favorite item")
}
