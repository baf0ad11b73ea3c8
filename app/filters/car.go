package filters

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/shashiranjanraj/automart/pkg/orm"
	"github.com/shopspring/decimal"
)

// Car is the listing filter. Nil bounds impose no constraint; range bounds
// are strict.
type Car struct {
	MakeID   *uint
	ModelID  *uint
	YearGT   *int
	YearLT   *int
	PriceGT  *decimal.Decimal
	PriceLT  *decimal.Decimal
	Terms    []string
	Ordering string // "", "price" or "-price"
	Page     Page
}

var carOrderings = []string{"price", "-price"}

// ParseCar reads the listing query string. The returned Errors is empty
// when every present parameter was well formed.
func ParseCar(q url.Values) (Car, Errors) {
	errs := Errors{}
	f := Car{
		MakeID:  parseID(q, "make", errs),
		ModelID: parseID(q, "model", errs),
		YearGT:  parseInt(q, "year__gt", errs),
		YearLT:  parseInt(q, "year__lt", errs),
		PriceGT: parseDecimal(q, "price__gt", errs),
		PriceLT: parseDecimal(q, "price__lt", errs),
		Terms:   Terms(q),
		Page:    ParsePage(q, errs),
	}

	if o := strings.TrimSpace(q.Get("ordering")); o != "" {
		if o != carOrderings[0] && o != carOrderings[1] {
			errs.add("ordering", fmt.Sprintf("The ordering must be one of: %s.", strings.Join(carOrderings, ", ")))
		} else {
			f.Ordering = o
		}
	}
	return f, errs
}

// Apply narrows a query over cars. Search joins makes and models; every
// term must match either name.
func (f Car) Apply(q *orm.Query) *orm.Query {
	if f.MakeID != nil {
		q = q.Where("cars.make_id = ?", *f.MakeID)
	}
	if f.ModelID != nil {
		q = q.Where("cars.model_id = ?", *f.ModelID)
	}
	if f.YearGT != nil {
		q = q.Where("cars.year > ?", *f.YearGT)
	}
	if f.YearLT != nil {
		q = q.Where("cars.year < ?", *f.YearLT)
	}
	if f.PriceGT != nil {
		q = q.Where("cars.price > ?", *f.PriceGT)
	}
	if f.PriceLT != nil {
		q = q.Where("cars.price < ?", *f.PriceLT)
	}

	if len(f.Terms) > 0 {
		q = q.Joins("JOIN car_makes ON car_makes.id = cars.make_id").
			Joins("JOIN car_models ON car_models.id = cars.model_id")
		for _, t := range f.Terms {
			like := containsPattern(t)
			q = q.Where("("+likeClause("car_makes.name")+" OR "+likeClause("car_models.name")+")", like, like)
		}
	}

	switch f.Ordering {
	case "price":
		q = q.Order("cars.price ASC").Order("cars.id ASC")
	case "-price":
		q = q.Order("cars.price DESC").Order("cars.id ASC")
	default:
		q = q.Order("cars.id ASC")
	}
	return q
}
