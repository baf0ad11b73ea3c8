// Package resources shapes models into API responses. Each transformer is
// a plain function from a model to a JSON-tagged struct; collections go
// through lo.Map so empty lists render as [] rather than null.
package resources

import (
	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/shashiranjanraj/automart/pkg/storage"
)

// each maps fn over xs.
func each[T, R any](xs []T, fn func(T) R) []R {
	return lo.Map(xs, func(x T, _ int) R { return fn(x) })
}

// money renders a price with exactly two decimals.
func money(d decimal.Decimal) string { return d.StringFixed(2) }

// url resolves a stored path to its public URL.
func url(path string) string { return storage.URL(path) }
