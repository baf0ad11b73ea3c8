// Package routes registers the automart HTTP API. Every path ends in a
// slash; "/car" and "/car/" are different routes.
package routes

import (
	"github.com/shashiranjanraj/automart/app/controllers"
	"github.com/shashiranjanraj/automart/pkg/ctx"
	"github.com/shashiranjanraj/automart/pkg/middleware"
	"github.com/shashiranjanraj/automart/pkg/rbac"
	"github.com/shashiranjanraj/automart/pkg/router"
)

func RegisterAPI(r *router.Router) {
	authController := controllers.NewAuthController()
	catalogController := controllers.NewCatalogController()
	reviewController := controllers.NewReviewController()
	basketController := controllers.NewBasketController()
	historyController := controllers.NewHistoryController()
	userController := controllers.NewUserController()

	public := r.Group("/")
	public.Post("/client_register/", "auth.register.client", ctx.Wrap(authController.RegisterClient))
	public.Post("/owner_register/", "auth.register.owner", ctx.Wrap(authController.RegisterOwner))
	public.Post("/login/", "auth.login", ctx.Wrap(authController.Login))
	public.Post("/logout/", "auth.logout", ctx.Wrap(authController.Logout))
	public.Post("/token/refresh/", "auth.refresh", ctx.Wrap(authController.Refresh))

	public.Get("/category/", "category.index", ctx.Wrap(catalogController.Categories))
	public.Get("/category/{id}/", "category.show", ctx.Wrap(catalogController.Category))
	public.Get("/car_make/", "car_make.index", ctx.Wrap(catalogController.Makes))
	public.Get("/car_make/{id}/", "car_make.show", ctx.Wrap(catalogController.Make))
	public.Get("/car_model/", "car_model.index", ctx.Wrap(catalogController.Models))
	public.Get("/car_model/{id}/", "car_model.show", ctx.Wrap(catalogController.Model))
	public.Get("/car/", "car.index", ctx.Wrap(catalogController.Cars))
	public.Get("/review/", "review.index", ctx.Wrap(reviewController.Index))

	// Anonymous callers may read a listing; clients get a history entry.
	r.Get("/car/{id}/", "car.show", ctx.Wrap(catalogController.Car), middleware.OptionalAuth)

	authed := r.Group("/", middleware.Authenticate)
	authed.Post("/car_create/", "car.store", ctx.Wrap(catalogController.CreateCar))
	authed.Post("/car/{id}/images/", "car.images.store", ctx.Wrap(catalogController.UploadImage))
	authed.Get("/review/{id}/", "review.show", ctx.Wrap(reviewController.Show))
	authed.Put("/review/{id}/", "review.update", ctx.Wrap(reviewController.Update))
	authed.Patch("/review/{id}/", "review.patch", ctx.Wrap(reviewController.Update))
	authed.Delete("/review/{id}/", "review.destroy", ctx.Wrap(reviewController.Destroy))

	clients := authed.Group("/", rbac.HasRole(rbac.RoleClient))
	clients.Post("/review/", "review.store", ctx.Wrap(reviewController.Store))

	clients.Get("/cart/", "cart.show", ctx.Wrap(basketController.Cart))
	clients.Get("/cart_item/", "cart_item.index", ctx.Wrap(basketController.CartItems))
	clients.Post("/cart_item/", "cart_item.store", ctx.Wrap(basketController.AddCartItem))
	clients.Get("/cart_item/{id}/", "cart_item.show", ctx.Wrap(basketController.CartItem))
	clients.Delete("/cart_item/{id}/", "cart_item.destroy", ctx.Wrap(basketController.RemoveCartItem))

	clients.Get("/favorite/", "favorite.show", ctx.Wrap(basketController.Favorite))
	clients.Get("/favorite_item/", "favorite_item.index", ctx.Wrap(basketController.FavoriteItems))
	clients.Post("/favorite_item/", "favorite_item.store", ctx.Wrap(basketController.AddFavoriteItem))
	clients.Get("/favorite_item/{id}/", "favorite_item.show", ctx.Wrap(basketController.FavoriteItem))
	clients.Delete("/favorite_item/{id}/", "favorite_item.destroy", ctx.Wrap(basketController.RemoveFavoriteItem))

	clients.Get("/history/", "history.index", ctx.Wrap(historyController.Index))
	clients.Post("/history/", "history.store", ctx.Wrap(historyController.Store))
	clients.Get("/history/{id}/", "history.show", ctx.Wrap(historyController.Show))

	profiles(authed.Group("/users/"), "users", userController)
	profiles(clients.Group("/clients/"), "clients", userController)
	profiles(authed.Group("/owners/", rbac.HasRole(rbac.RoleOwner)), "owners", userController)
}

// profiles mounts the self-service account routes under g.
func profiles(g *router.Group, name string, h *controllers.UserController) {
	g.Get("/", name+".index", ctx.Wrap(h.Index))
	g.Get("/{id}/", name+".show", ctx.Wrap(h.Show))
	g.Put("/{id}/", name+".update", ctx.Wrap(h.Update))
	g.Patch("/{id}/", name+".patch", ctx.Wrap(h.Update))
	g.Delete("/{id}/", name+".destroy", ctx.Wrap(h.Destroy))
}
