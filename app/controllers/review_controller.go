package controllers

import (
	"strconv"

	"github.com/shashiranjanraj/automart/app/resources"
	"github.com/shashiranjanraj/automart/app/services"
	"github.com/shashiranjanraj/automart/pkg/ctx"
)

type ReviewController struct {
	service *services.ReviewService
}

func NewReviewController() *ReviewController {
	return &ReviewController{service: services.NewReviewService()}
}

// Index lists reviews, optionally only those of ?car=<id>.
func (h *ReviewController) Index(c *ctx.Context) {
	var carID *uint
	if raw := c.Query("car"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || n == 0 {
			c.ValidationError(map[string]string{"car": "The car must be a valid id."})
			return
		}
		id := uint(n)
		carID = &id
	}
	rs, err := h.service.List(c.Context(), carID)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(resources.Reviews(rs))
}

func (h *ReviewController) Show(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	r, err := h.service.Find(c.Context(), id)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(resources.NewReview(r))
}

func (h *ReviewController) Store(c *ctx.Context) {
	var in services.ReviewInput
	if !c.BindJSON(&in) {
		return
	}
	r, err := h.service.Create(c.Context(), caller(c), in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created(resources.NewReview(r))
}

// Update serves both PUT and PATCH; absent fields are left unchanged.
func (h *ReviewController) Update(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	var ch services.ReviewChanges
	if !c.BindJSON(&ch) {
		return
	}
	r, err := h.service.Update(c.Context(), caller(c), id, ch)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(resources.NewReview(r))
}

func (h *ReviewController) Destroy(c *ctx.Context) {
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
