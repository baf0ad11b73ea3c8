package controllers

import (
	"github.com/shashiranjanraj/automart/app/resources"
	"github.com/shashiranjanraj/automart/app/services"
	"github.com/shashiranjanraj/automart/pkg/ctx"
)

// UserController backs /users/, /clients/ and /owners/. The role gate is
// applied by the route group; every action is limited to the caller's own
// row and other ids answer 404.
type UserController struct {
	service *services.UserService
}

func NewUserController() *UserController {
	return &UserController{service: services.NewUserService()}
}

func (h *UserController) Index(c *ctx.Context) {
	us, err := h.service.List(c.Context(), caller(c))
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(resources.Users(us))
}

func (h *UserController) Show(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	u, err := h.service.Get(c.Context(), caller(c), id)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(resources.NewUser(u))
}

// Update serves both PUT and PATCH.
func (h *UserController) Update(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	var ch services.UserChanges
	if !c.BindJSON(&ch) {
		return
	}
	u, err := h.service.Update(c.Context(), caller(c), id, ch)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(resources.NewUser(u))
}

func (h *UserController) Destroy(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	if err := h.service.Delete(c.Context(), caller(c), id); err != nil {
		c.Fail(err)
		return
	}
	c.NoContent()
}
