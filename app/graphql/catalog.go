// Package graphql exposes a read-only view of the catalog at /graphql.
// Resolvers go through the same CatalogService as the REST handlers and
// return the REST resource shapes, so field names match the JSON API.
package graphql

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/graphql-go/graphql"
	"github.com/shashiranjanraj/automart/app/filters"
	"github.com/shashiranjanraj/automart/app/resources"
	"github.com/shashiranjanraj/automart/app/services"
	gql "github.com/shashiranjanraj/automart/pkg/graphql"
)

var (
	refType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Ref",
		Fields: graphql.Fields{
			"id":   &graphql.Field{Type: graphql.Int},
			"name": &graphql.Field{Type: graphql.String},
		},
	})

	imageType = graphql.NewObject(graphql.ObjectConfig{
		Name: "CarImage",
		Fields: graphql.Fields{
			"id":    &graphql.Field{Type: graphql.Int},
			"image": &graphql.Field{Type: graphql.String},
		},
	})

	reviewType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Review",
		Fields: graphql.Fields{
			"id": &graphql.Field{Type: graphql.Int},
			"user": &graphql.Field{Type: graphql.NewObject(graphql.ObjectConfig{
				Name: "ReviewAuthor",
				Fields: graphql.Fields{
					"username":   &graphql.Field{Type: graphql.String},
					"first_name": &graphql.Field{Type: graphql.String},
					"last_name":  &graphql.Field{Type: graphql.String},
				},
			})},
			"car_id":     &graphql.Field{Type: graphql.Int},
			"text":       &graphql.Field{Type: graphql.String},
			"stars":      &graphql.Field{Type: graphql.Int},
			"created_at": &graphql.Field{Type: graphql.String},
		},
	})

	// carType covers both the list and the detail shape; detail-only
	// fields are null on list items.
	carType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Car",
		Fields: graphql.Fields{
			"id":             &graphql.Field{Type: graphql.Int},
			"make":           &graphql.Field{Type: refType},
			"model":          &graphql.Field{Type: refType},
			"images":         &graphql.Field{Type: graphql.NewList(imageType)},
			"year":           &graphql.Field{Type: graphql.Int},
			"price":          &graphql.Field{Type: graphql.String},
			"description":    &graphql.Field{Type: graphql.String},
			"body":           &graphql.Field{Type: graphql.String},
			"fuel":           &graphql.Field{Type: graphql.NewList(graphql.String)},
			"steering":       &graphql.Field{Type: graphql.String},
			"gearbox":        &graphql.Field{Type: graphql.String},
			"color":          &graphql.Field{Type: graphql.String},
			"reviews":        &graphql.Field{Type: graphql.NewList(reviewType)},
			"average_rating": &graphql.Field{Type: graphql.Float},
			"review_count":   &graphql.Field{Type: graphql.Int},
			"created_at":     &graphql.Field{Type: graphql.String},
		},
	})

	categoryType = graphql.NewObject(graphql.ObjectConfig{
		Name: "Category",
		Fields: graphql.Fields{
			"id":     &graphql.Field{Type: graphql.Int},
			"name":   &graphql.Field{Type: graphql.String},
			"makes":  &graphql.Field{Type: graphql.NewList(refType)},
			"models": &graphql.Field{Type: graphql.NewList(refType)},
		},
	})

	makeType = graphql.NewObject(graphql.ObjectConfig{
		Name: "CarMake",
		Fields: graphql.Fields{
			"id":     &graphql.Field{Type: graphql.Int},
			"name":   &graphql.Field{Type: graphql.String},
			"image":  &graphql.Field{Type: graphql.String},
			"models": &graphql.Field{Type: graphql.NewList(refType)},
			"cars":   &graphql.Field{Type: graphql.NewList(carType)},
		},
	})

	modelType = graphql.NewObject(graphql.ObjectConfig{
		Name: "CarModel",
		Fields: graphql.Fields{
			"id":   &graphql.Field{Type: graphql.Int},
			"name": &graphql.Field{Type: graphql.String},
			"make": &graphql.Field{Type: refType},
			"cars": &graphql.Field{Type: graphql.NewList(carType)},
		},
	})

	carPageType = graphql.NewObject(graphql.ObjectConfig{
		Name: "CarPage",
		Fields: graphql.Fields{
			"items": &graphql.Field{Type: graphql.NewList(carType)},
			"pagination": &graphql.Field{Type: graphql.NewObject(graphql.ObjectConfig{
				Name: "Pagination",
				Fields: graphql.Fields{
					"page":        &graphql.Field{Type: graphql.Int},
					"page_size":   &graphql.Field{Type: graphql.Int},
					"total":       &graphql.Field{Type: graphql.Int},
					"total_pages": &graphql.Field{Type: graphql.Int},
				},
			})},
		},
	})
)

var (
	idArgs     = graphql.FieldConfigArgument{"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)}}
	searchArgs = graphql.FieldConfigArgument{"search": &graphql.ArgumentConfig{Type: graphql.String}}
	carArgs    = graphql.FieldConfigArgument{
		"make":      &graphql.ArgumentConfig{Type: graphql.Int},
		"model":     &graphql.ArgumentConfig{Type: graphql.Int},
		"year__gt":  &graphql.ArgumentConfig{Type: graphql.Int},
		"year__lt":  &graphql.ArgumentConfig{Type: graphql.Int},
		"price__gt": &graphql.ArgumentConfig{Type: graphql.String},
		"price__lt": &graphql.ArgumentConfig{Type: graphql.String},
		"search":    &graphql.ArgumentConfig{Type: graphql.String},
		"ordering":  &graphql.ArgumentConfig{Type: graphql.String},
		"page":      &graphql.ArgumentConfig{Type: graphql.Int},
		"page_size": &graphql.ArgumentConfig{Type: graphql.Int},
	}
)

// NewSchema builds the catalog schema on top of svc.
func NewSchema(svc *services.CatalogService) (graphql.Schema, error) {
	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"categories": &graphql.Field{
				Type: graphql.NewList(categoryType),
				Args: searchArgs,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					cs, err := svc.Categories(p.Context, terms(p))
					return plain(resources.Categories(cs), err)
				},
			},
			"category": &graphql.Field{
				Type: categoryType,
				Args: idArgs,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					c, err := svc.Category(p.Context, id(p))
					return plain(resources.NewCategoryDetail(c), err)
				},
			},
			"makes": &graphql.Field{
				Type: graphql.NewList(makeType),
				Args: searchArgs,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					ms, err := svc.Makes(p.Context, terms(p))
					return plain(resources.Makes(ms), err)
				},
			},
			"make": &graphql.Field{
				Type: makeType,
				Args: idArgs,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					m, err := svc.Make(p.Context, id(p))
					return plain(resources.NewMakeDetail(m), err)
				},
			},
			"models": &graphql.Field{
				Type: graphql.NewList(modelType),
				Args: searchArgs,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					ms, err := svc.Models(p.Context, terms(p))
					return plain(resources.Models(ms), err)
				},
			},
			"model": &graphql.Field{
				Type: modelType,
				Args: idArgs,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					m, err := svc.Model(p.Context, id(p))
					return plain(resources.NewModelDetail(m), err)
				},
			},
			"cars": &graphql.Field{
				Type: carPageType,
				Args: carArgs,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					f, errs := filters.ParseCar(values(p.Args))
					if len(errs) > 0 {
						return nil, fieldErrors(errs)
					}
					cars, page, err := svc.Cars(p.Context, f)
					return plain(map[string]any{"items": resources.Cars(cars), "pagination": page}, err)
				},
			},
			"car": &graphql.Field{
				Type: carType,
				Args: idArgs,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					// Anonymous: a GraphQL read never records a view.
					c, err := svc.Car(p.Context, services.Caller{}, id(p))
					return plain(resources.NewCarDetail(c), err)
				},
			},
		},
	})
	return gql.NewSchema(query)
}

func id(p graphql.ResolveParams) uint {
	n, _ := p.Args["id"].(int)
	if n < 0 {
		return 0
	}
	return uint(n)
}

func terms(p graphql.ResolveParams) []string {
	s, _ := p.Args["search"].(string)
	return strings.Fields(strings.ToLower(s))
}

// values renders resolver arguments as the REST query string so the
// listing filters are parsed in one place.
func values(args map[string]any) url.Values {
	q := url.Values{}
	for k, v := range args {
		if v != nil {
			q.Set(k, fmt.Sprint(v))
		}
	}
	return q
}

func fieldErrors(errs filters.Errors) error {
	msgs := make([]string, 0, len(errs))
	for _, m := range errs {
		msgs = append(msgs, m)
	}
	sort.Strings(msgs)
	return fmt.Errorf("%s", strings.Join(msgs, " "))
}

// plain turns a resource into maps and slices for the default resolver.
func plain(v any, err error) (any, error) {
	if err != nil {
		return nil, err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
