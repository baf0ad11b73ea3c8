package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/automart/app/filters"
	"github.com/shashiranjanraj/automart/app/resources"
	"github.com/shashiranjanraj/automart/app/services"
	"github.com/shashiranjanraj/automart/pkg/bind"
	"github.com/shashiranjanraj/automart/pkg/ctx"
)

// CatalogController serves the category → make → model → car tree.
type CatalogController struct {
	service *services.CatalogService
}

func NewCatalogController() *CatalogController {
	return &CatalogController{service: services.NewCatalogService()}
}

func (h *CatalogController) Categories(c *ctx.Context) {
	cs, err := h.service.Categories(c.Context(), filters.Terms(c.R.URL.Query()))
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(resources.Categories(cs))
}

func (h *CatalogController) Category(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	cat, err := h.service.Category(c.Context(), id)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(resources.NewCategoryDetail(cat))
}

func (h *CatalogController) Makes(c *ctx.Context) {
	ms, err := h.service.Makes(c.Context(), filters.Terms(c.R.URL.Query()))
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(resources.Makes(ms))
}

func (h *CatalogController) Make(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	m, err := h.service.Make(c.Context(), id)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(resources.NewMakeDetail(m))
}

func (h *CatalogController) Models(c *ctx.Context) {
	ms, err := h.service.Models(c.Context(), filters.Terms(c.R.URL.Query()))
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(resources.Models(ms))
}

func (h *CatalogController) Model(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	m, err := h.service.Model(c.Context(), id)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(resources.NewModelDetail(m))
}

// Cars lists listings. See filters.ParseCar for the query parameters.
func (h *CatalogController) Cars(c *ctx.Context) {
	f, errs := filters.ParseCar(c.R.URL.Query())
	if len(errs) > 0 {
		c.ValidationError(errs)
		return
	}
	cars, page, err := h.service.Cars(c.Context(), f)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Paginated(resources.Cars(cars), page)
}

// Car shows one listing. A client viewing it gets a history entry.
func (h *CatalogController) Car(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}
	car, err := h.service.Car(c.Context(), caller(c), id)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Success(resources.NewCarDetail(car))
}

// CreateCar handles POST /car_create/.
func (h *CatalogController) CreateCar(c *ctx.Context) {
	var in services.CarInput
	if !c.BindJSON(&in) {
		return
	}
	car, err := h.service.CreateCar(c.Context(), caller(c), in)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created(resources.NewCarDetail(car))
}

// UploadImage handles POST /car/{id}/images/ with a multipart "image" part.
func (h *CatalogController) UploadImage(c *ctx.Context) {
	id, ok := c.ParamUint("id")
	if !ok {
		return
	}

	c.R.Body = http.MaxBytesReader(c.W, c.R.Body, bind.MaxBodyBytes())
	file, header, err := c.R.FormFile("image")
	if err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.As(err, &maxErr):
			c.Error(http.StatusRequestEntityTooLarge, "Uploaded file is too large")
		case errors.Is(err, http.ErrMissingFile):
			c.ValidationError(map[string]string{"image": "The image field is required."})
		default:
			c.Error(http.StatusBadRequest, "Expected a multipart/form-data body")
		}
		return
	}
	defer file.Close()

	img, err := h.service.AddImage(c.Context(), caller(c), id, header.Header.Get("Content-Type"), file)
	if err != nil {
		c.Fail(err)
		return
	}
	c.Created(resources.NewCarImage(img))
}
