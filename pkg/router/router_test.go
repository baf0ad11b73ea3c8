package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "/", joinPath())
	assert.Equal(t, "/car/", joinPath("/", "car/"))
	assert.Equal(t, "/car/{id}/", joinPath("/car", "/{id}/"))
	assert.Equal(t, "/api/car", joinPath("/api/", "car"))
}

func TestGroup_TrailingSlashRoutes(t *testing.T) {
	r := New()
	g := r.Group("/")
	g.Get("/car/{id}/", "car.show", func(w http.ResponseWriter, req *http.Request) {
		w.Write([]byte(chi.URLParam(req, "id"))) //nolint:errcheck
	})

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/car/42/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "42", rec.Body.String())

	url, err := r.URL("car.show", map[string]string{"id": "7"})
	require.NoError(t, err)
	assert.Equal(t, "/car/7/", url)

	_, err = r.URL("car.show", nil)
	assert.Error(t, err)
}

func TestGroup_MiddlewareOrder(t *testing.T) {
	var order []string
	mw := func(tag string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, tag)
				next.ServeHTTP(w, r)
			})
		}
	}

	r := New()
	g := r.Group("/", mw("outer")).Group("/", mw("inner"))
	g.Delete("/review/{id}/", "review.destroy", func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	}, mw("route"))

	r.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/review/1/", nil))
	assert.Equal(t, []string{"outer", "inner", "route", "handler"}, order)
}

func TestRoutes_Sorted(t *testing.T) {
	r := New()
	g := r.Group("/")
	noop := func(w http.ResponseWriter, r *http.Request) {}
	g.Post("/login/", "auth.login", noop)
	g.Put("/users/{id}/", "users.update", noop)
	g.Get("/users/{id}/", "users.show", noop)

	routes := r.Routes()
	require.Len(t, routes, 3)
	assert.Equal(t, Route{Method: http.MethodPost, Path: "/login/", Name: "auth.login"}, routes[0])
	assert.Equal(t, http.MethodGet, routes[1].Method)
	assert.Equal(t, http.MethodPut, routes[2].Method)
}
