package services

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/automart/app/filters"
	"github.com/shashiranjanraj/automart/app/models"
	"github.com/shashiranjanraj/automart/pkg/apperr"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCreateCar_AppliesDefaults(t *testing.T) {
	f := newFixture(t)

	c := f.car(t, "25000.50", 2020)
	assert.Equal(t, models.BodyAny, c.Body)
	assert.Equal(t, models.SteeringLeft, c.Steering)
	assert.Equal(t, models.GearboxAny, c.Gearbox)
	assert.Equal(t, models.ColorAny, c.Color)
	assert.Equal(t, []models.FuelType{models.FuelAny}, []models.FuelType(c.Fuel))
	assert.Equal(t, "25000.50", c.Price.StringFixed(2))
	require.NotNil(t, c.Make)
	require.NotNil(t, c.Model)
	assert.Equal(t, "Toyota", c.Make.Name)
	assert.Equal(t, "Corolla", c.Model.Name)
	assert.False(t, c.CreatedAt.IsZero())
}

func TestCreateCar_KeepsGivenEnums(t *testing.T) {
	f := newFixture(t)

	c, err := f.catalog.CreateCar(f.ctx, f.owner, CarInput{
		MakeID:   f.make.ID,
		ModelID:  f.model.ID,
		Price:    dec("0"),
		Year:     1886,
		Body:     models.BodySedan,
		Fuel:     []models.FuelType{models.FuelPetrol, models.FuelElectric},
		Steering: models.SteeringRight,
		Gearbox:  models.GearboxManual,
		Color:    models.ColorBlack,
	})
	require.NoError(t, err)
	assert.Equal(t, models.BodySedan, c.Body)
	assert.Equal(t, []models.FuelType{models.FuelPetrol, models.FuelElectric}, []models.FuelType(c.Fuel))
	assert.Equal(t, models.SteeringRight, c.Steering)
	assert.True(t, c.Price.IsZero())
}

func TestCreateCar_Validation(t *testing.T) {
	f := newFixture(t)
	other, err := f.catalog.CreateMake(f.ctx, "Honda", nil)
	require.NoError(t, err)

	valid := func() CarInput {
		return CarInput{MakeID: f.make.ID, ModelID: f.model.ID, Price: dec("100"), Year: 2000}
	}

	cases := []struct {
		name  string
		edit  func(*CarInput)
		field string
	}{
		{"missing price", func(in *CarInput) { in.Price = nil }, "price"},
		{"negative price", func(in *CarInput) { in.Price = dec("-1") }, "price"},
		{"three decimals", func(in *CarInput) { in.Price = dec("10.005") }, "price"},
		{"price too large", func(in *CarInput) { in.Price = dec("100000000") }, "price"},
		{"unknown body", func(in *CarInput) { in.Body = "tank" }, "body"},
		{"unknown fuel", func(in *CarInput) { in.Fuel = []models.FuelType{"coal"} }, "fuel"},
		{"unknown steering", func(in *CarInput) { in.Steering = "middle" }, "steering"},
		{"unknown model", func(in *CarInput) { in.ModelID = 999 }, "model_id"},
		{"model of another make", func(in *CarInput) { in.MakeID = other.ID }, "model_id"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid()
			tc.edit(&in)
			_, err := f.catalog.CreateCar(f.ctx, f.owner, in)
			e := requireKind(t, err, apperr.KindValidation)
			assert.Contains(t, e.Fields, tc.field)
		})
	}

	_, err = f.catalog.CreateCar(f.ctx, Caller{}, valid())
	requireKind(t, err, apperr.KindUnauthenticated)
}

func TestCars_FiltersAndOrdering(t *testing.T) {
	f := newFixture(t)
	cheap := f.car(t, "10000", 2010)
	mid := f.car(t, "20000", 2015)
	dear := f.car(t, "30000", 2020)

	list := func(q url.Values) []uint {
		t.Helper()
		flt, errs := filters.ParseCar(q)
		require.Empty(t, errs)
		cars, _, err := f.catalog.Cars(f.ctx, flt)
		require.NoError(t, err)
		ids := make([]uint, len(cars))
		for i, c := range cars {
			ids[i] = c.ID
		}
		return ids
	}

	assert.Equal(t, []uint{cheap.ID, mid.ID, dear.ID}, list(url.Values{}))
	// bounds are strict
	assert.Equal(t, []uint{mid.ID}, list(url.Values{"price__gt": {"10000"}, "price__lt": {"30000"}}))
	assert.Equal(t, []uint{dear.ID}, list(url.Values{"year__gt": {"2015"}}))
	assert.Equal(t, []uint{dear.ID, mid.ID, cheap.ID}, list(url.Values{"ordering": {"-price"}}))
	assert.Equal(t, []uint{cheap.ID, mid.ID, dear.ID}, list(url.Values{"search": {"toy cor"}}))
	assert.Empty(t, list(url.Values{"search": {"honda"}}))
	assert.Empty(t, list(url.Values{"make": {"999"}}))
	// wildcards in search terms are literal characters
	assert.Empty(t, list(url.Values{"search": {"%"}}))
	assert.Empty(t, list(url.Values{"search": {"t_y"}}))
}

func TestCategories_SearchIsLiteral(t *testing.T) {
	f := newFixture(t)
	offroad, err := f.catalog.CreateCategory(f.ctx, "4_x_4")
	require.NoError(t, err)

	names := func(terms ...string) []uint {
		t.Helper()
		cats, err := f.catalog.Categories(f.ctx, terms)
		require.NoError(t, err)
		ids := make([]uint, len(cats))
		for i, c := range cats {
			ids[i] = c.ID
		}
		return ids
	}

	assert.Len(t, names(), 2)
	assert.Equal(t, []uint{offroad.ID}, names("_"))
	assert.Equal(t, []uint{offroad.ID}, names("4_x"))
	assert.Empty(t, names("%"))
	assert.Empty(t, names("s_dan"))
	assert.Equal(t, []uint{f.category.ID}, names("sedan"))
}

func TestCars_Pagination(t *testing.T) {
	f := newFixture(t)
	for i := 0; i < 5; i++ {
		f.car(t, "1000", 2000+i)
	}

	flt, errs := filters.ParseCar(url.Values{"page": {"2"}, "page_size": {"2"}})
	require.Empty(t, errs)
	cars, page, err := f.catalog.Cars(f.ctx, flt)
	require.NoError(t, err)
	assert.Len(t, cars, 2)
	assert.Equal(t, int64(5), page.Total)
	assert.Equal(t, 3, page.TotalPages)
	require.NotNil(t, cars[0].Make)
}

func TestCar_RecordsClientViews(t *testing.T) {
	f := newFixture(t)
	c := f.car(t, "5000", 2001)

	_, err := f.catalog.Car(f.ctx, f.client, c.ID)
	require.NoError(t, err)
	_, err = f.catalog.Car(f.ctx, f.owner, c.ID)
	require.NoError(t, err)
	_, err = f.catalog.Car(f.ctx, Caller{}, c.ID)
	require.NoError(t, err)

	events, page, err := f.history.List(f.ctx, f.client, 1, 20)
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, c.ID, events[0].CarID)
	assert.Equal(t, int64(1), page.Total)

	_, err = f.catalog.Car(f.ctx, f.client, 999)
	requireKind(t, err, apperr.KindNotFound)
}

func TestCategories_SearchAndDetail(t *testing.T) {
	f := newFixture(t)
	_, err := f.catalog.CreateCategory(f.ctx, "Truck")
	require.NoError(t, err)

	all, err := f.catalog.Categories(f.ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	found, err := f.catalog.Categories(f.ctx, []string{"sed"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Sedan", found[0].Name)

	c, err := f.catalog.Category(f.ctx, f.category.ID)
	require.NoError(t, err)
	require.Len(t, c.Makes, 1)
	require.Len(t, c.Models, 1)
	assert.Equal(t, "Toyota", c.Makes[0].Name)
}

func TestCreateMake_DuplicateName(t *testing.T) {
	f := newFixture(t)
	_, err := f.catalog.CreateMake(f.ctx, "Toyota", nil)
	requireKind(t, err, apperr.KindConflict)
}

func TestAddImage(t *testing.T) {
	f := newFixture(t)
	c := f.car(t, "5000", 2001)

	img, err := f.catalog.AddImage(f.ctx, f.owner, c.ID, "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(img.Image, "cars/"))
	assert.True(t, strings.HasSuffix(img.Image, ".png"))
	data, err := os.ReadFile(filepath.Join(f.blobs, filepath.FromSlash(img.Image)))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	_, err = f.catalog.AddImage(f.ctx, f.owner, c.ID, "text/plain", strings.NewReader("x"))
	e := requireKind(t, err, apperr.KindValidation)
	assert.Contains(t, e.Fields, "image")

	_, err = f.catalog.AddImage(f.ctx, f.owner, 999, "image/png", strings.NewReader("x"))
	requireKind(t, err, apperr.KindNotFound)
}

func TestDeleteMake_Cascades(t *testing.T) {
	f := newFixture(t)
	c := f.car(t, "5000", 2001)

	img, err := f.catalog.AddImage(f.ctx, f.owner, c.ID, "image/jpeg", strings.NewReader("jpg"))
	require.NoError(t, err)
	_, err = f.reviews.Create(f.ctx, f.client, ReviewInput{CarID: c.ID, Text: "Nice", Stars: 5})
	require.NoError(t, err)
	_, err = f.baskets.AddCartItem(f.ctx, f.client, CartItemInput{CarID: c.ID})
	require.NoError(t, err)
	_, err = f.baskets.AddFavoriteItem(f.ctx, f.client, FavoriteItemInput{CarModelID: f.model.ID})
	require.NoError(t, err)
	_, err = f.history.Append(f.ctx, f.client, HistoryInput{CarID: c.ID})
	require.NoError(t, err)

	require.NoError(t, f.catalog.DeleteMake(f.ctx, f.make.ID))

	_, err = f.catalog.Make(f.ctx, f.make.ID)
	requireKind(t, err, apperr.KindNotFound)
	_, err = f.catalog.Model(f.ctx, f.model.ID)
	requireKind(t, err, apperr.KindNotFound)
	_, err = f.catalog.Car(f.ctx, Caller{}, c.ID)
	requireKind(t, err, apperr.KindNotFound)

	reviews, err := f.reviews.List(f.ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, reviews)
	items, err := f.baskets.CartItems(f.ctx, f.client)
	require.NoError(t, err)
	assert.Empty(t, items)
	favs, err := f.baskets.FavoriteItems(f.ctx, f.client)
	require.NoError(t, err)
	assert.Empty(t, favs)
	events, _, err := f.history.List(f.ctx, f.client, 1, 20)
	require.NoError(t, err)
	assert.Empty(t, events)

	_, err = os.Stat(filepath.Join(f.blobs, filepath.FromSlash(img.Image)))
	assert.True(t, os.IsNotExist(err))

	// the carts themselves survive
	cart, err := f.baskets.Cart(f.ctx, f.client)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	requireKind(t, f.catalog.DeleteMake(f.ctx, f.make.ID), apperr.KindNotFound)
}

func TestDeleteCategory_Cascades(t *testing.T) {
	f := newFixture(t)
	c := f.car(t, "5000", 2001)

	require.NoError(t, f.catalog.DeleteCategory(f.ctx, f.category.ID))

	_, err := f.catalog.Category(f.ctx, f.category.ID)
	requireKind(t, err, apperr.KindNotFound)
	_, err = f.catalog.Make(f.ctx, f.make.ID)
	requireKind(t, err, apperr.KindNotFound)
	_, err = f.catalog.Car(f.ctx, Caller{}, c.ID)
	requireKind(t, err, apperr.KindNotFound)
}

func TestDeleteCar_KeepsModel(t *testing.T) {
	f := newFixture(t)
	c := f.car(t, "5000", 2001)

	require.NoError(t, f.catalog.DeleteCar(f.ctx, c.ID))
	m, err := f.catalog.Model(f.ctx, f.model.ID)
	require.NoError(t, err)
	assert.Empty(t, m.Cars)

	requireKind(t, f.catalog.DeleteCar(f.ctx, c.ID), apperr.KindNotFound)
}
