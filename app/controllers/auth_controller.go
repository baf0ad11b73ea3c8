package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/automart/app/resources"
	"github.com/shashiranjanraj/automart/app/services"
	"github.com/shashiranjanraj/automart/pkg/bind"
	"github.com/shashiranjanraj/automart/pkg/ctx"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController() *AuthController {
	return &AuthController{service: services.NewAuthService()}
}

type loginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// tokenInput carries a refresh token. It is not validated here so that a
// missing token gets the same answer as a bad one.
type tokenInput struct {
	Refresh string `json:"refresh"`
}

// RegisterClient handles POST /client_register/.
func (h *AuthController) RegisterClient(c *ctx.Context) {
	var in services.RegisterClientInput
	if !c.BindJSON(&in) {
		return
	}
	res, err := h.service.RegisterClient(c.Context(), in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created(resources.NewAuth(res.User, res.Tokens))
}

// RegisterOwner handles POST /owner_register/.
func (h *AuthController) RegisterOwner(c *ctx.Context) {
	var in services.RegisterOwnerInput
	if !c.BindJSON(&in) {
		return
	}
	res, err := h.service.RegisterOwner(c.Context(), in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created(resources.NewAuth(res.User, res.Tokens))
}

func (h *AuthController) Login(c *ctx.Context) {
	var in loginInput
	if !c.BindJSON(&in) {
		return
	}
	res, err := h.service.Login(c.Context(), in.Username, in.Password)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(resources.NewAuth(res.User, res.Tokens))
}

// Refresh handles POST /token/refresh/.
func (h *AuthController) Refresh(c *ctx.Context) {
	var in tokenInput
	if !c.BindJSON(&in) {
		return
	}
	access, err := h.service.Refresh(c.Context(), in.Refresh)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(map[string]string{"access": access})
}

// Logout revokes the refresh token and answers 205 Reset Content. An
// unreadable body is treated as a missing token.
func (h *AuthController) Logout(c *ctx.Context) {
	var in tokenInput
	if _, err := bind.JSON(c.R, &in); err != nil {
		in.Refresh = ""
	}
	if err := h.service.Logout(c.Context(), in.Refresh); err != nil {
		c.Fail(err)
		return
	}
	c.Status(http.StatusResetContent)
}
