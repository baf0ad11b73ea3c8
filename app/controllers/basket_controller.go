package controllers

import (
	"github.com/shashiranjanraj/automart/app/resources"
	"github.com/shashiranjanraj/automart/app/services"
	"github.com/shashiranjanraj/automart/pkg/ctx"
)

// BasketController serves the caller's cart and favorites. Every route is
// client-only; the basket is created on first access.
type BasketController struct {
	service *services.BasketService
}

func NewBasketController() *BasketController {
	return &BasketController{service: services.NewBasketService()}
}

func (h *BasketController) Cart(c *ctx.Context) {
	cart, err := h.service.Cart(c.Context(), caller(c))
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(resources.NewCart(cart))
}

func (h *BasketController) CartItems(c *ctx.Context) {
	items, err := h.service.CartItems(c.Context(), caller(c))
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(resources.CartItems(items))
}

func (h *BasketController) CartItem(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	it, err := h.service.CartItem(c.Context(), caller(c), id)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(resources.NewCartItem(it))
}

func (h *BasketController) AddCartItem(c *ctx.Context) {
	var in services.CartItemInput
	if !c.BindJSON(&in) {
		return
	}
	it, err := h.service.AddCartItem(c.Context(), caller(c), in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created(resources.NewCartItem(it))
}

func (h *BasketController) RemoveCartItem(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	if err := h.service.RemoveCartItem(c.Context(), caller(c), id); err != nil {
		c.Fail(err)
		return
	}
	c.NoContent()
}

func (h *BasketController) Favorite(c *ctx.Context) {
	fav, err := h.service.Favorite(c.Context(), caller(c))
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(resources.NewFavorite(fav))
}

func (h *BasketController) FavoriteItems(c *ctx.Context) {
	items, err := h.service.FavoriteItems(c.Context(), caller(c))
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(resources.FavoriteItems(items))
}

func (h *BasketController) FavoriteItem(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	it, err := h.service.FavoriteItem(c.Context(), caller(c), id)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(resources.NewFavoriteItem(it))
}

func (h *BasketController) AddFavoriteItem(c *ctx.Context) {
	var in services.FavoriteItemInput
	if !c.BindJSON(&in) {
		return
	}
	it, err := h.service.AddFavoriteItem(c.Context(), caller(c), in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created(resources.NewFavoriteItem(it))
}

func (h *BasketController) RemoveFavoriteItem(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	if err := h.service.RemoveFavoriteItem(c.Context(), caller(c), id); err != nil {
		c.Fail(err)
		return
	}
	c.NoContent()
}
