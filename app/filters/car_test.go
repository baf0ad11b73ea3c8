package filters

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCar_Empty(t *testing.T) {
	f, errs := ParseCar(url.Values{})
	assert.Empty(t, errs)
	assert.Nil(t, f.MakeID)
	assert.Nil(t, f.PriceGT)
	assert.Empty(t, f.Terms)
	assert.Equal(t, Page{Number: 1, Size: DefaultPageSize}, f.Page)
}

func TestParseCar_AllFilters(t *testing.T) {
	q, _ := url.ParseQuery("make=3&model=7&year__gt=2010&year__lt=2020&price__gt=10000&price__lt=20000.50&search=Toyota%20Cam&ordering=-price&page=2&page_size=500")
	f, errs := ParseCar(q)
	require.Empty(t, errs)

	assert.Equal(t, uint(3), *f.MakeID)
	assert.Equal(t, uint(7), *f.ModelID)
	assert.Equal(t, 2010, *f.YearGT)
	assert.Equal(t, 2020, *f.YearLT)
	assert.Equal(t, "10000", f.PriceGT.String())
	assert.Equal(t, "20000.5", f.PriceLT.String())
	assert.Equal(t, []string{"toyota", "cam"}, f.Terms)
	assert.Equal(t, "-price", f.Ordering)
	assert.Equal(t, Page{Number: 2, Size: MaxPageSize}, f.Page)
}

func TestParseCar_Malformed(t *testing.T) {
	q, _ := url.ParseQuery("make=abc&year__gt=new&price__lt=cheap&ordering=year&page=0")
	_, errs := ParseCar(q)

	assert.Contains(t, errs, "make")
	assert.Contains(t, errs, "year__gt")
	assert.Contains(t, errs, "price__lt")
	assert.Contains(t, errs, "ordering")
	assert.Contains(t, errs, "page")
	assert.NotContains(t, errs, "model")
}

func TestContainsPattern(t *testing.T) {
	cases := map[string]string{
		"toyota": "%toyota%",
		"100%":   "%100!%%",
		"f_150":  "%f!_150%",
		"a!b":    "%a!!b%",
		"[x]":    "%![x]%",
	}
	for term, want := range cases {
		assert.Equal(t, want, containsPattern(term), term)
	}
	assert.Equal(t, "LOWER(car_makes.name) LIKE ? ESCAPE '!'", likeClause("car_makes.name"))
}
