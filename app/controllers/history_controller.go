package controllers

import (
	"github.com/shashiranjanraj/automart/app/filters"
	"github.com/shashiranjanraj/automart/app/resources"
	"github.com/shashiranjanraj/automart/app/services"
	"github.com/shashiranjanraj/automart/pkg/ctx"
)

// HistoryController exposes the caller's view/purchase log. Entries are
// append-only.
type HistoryController struct {
	service *services.HistoryService
}

func NewHistoryController() *HistoryController {
	return &HistoryController{service: services.NewHistoryService()}
}

func (h *HistoryController) Index(c *ctx.Context) {
	errs := filters.Errors{}
	page := filters.ParsePage(c.R.URL.Query(), errs)
	if len(errs) > 0 {
		c.ValidationError(errs)
		return
	}
	hs, p, err := h.service.List(c.Context(), caller(c), page.Number, page.Size)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Paginated(resources.Histories(hs), p)
}

func (h *HistoryController) Show(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	e, err := h.service.Find(c.Context(), caller(c), id)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(resources.NewHistory(e))
}

func (h *HistoryController) Store(c *ctx.Context) {
	var in services.HistoryInput
	if !c.BindJSON(&in) {
		return
	}
	e, err := h.service.Append(c.Context(), caller(c), in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created(resources.NewHistory(e))
}
