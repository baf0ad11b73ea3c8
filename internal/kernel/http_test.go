package kernel

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/automart/app/services"
	"github.com/shashiranjanraj/automart/pkg/cache"
	"github.com/shashiranjanraj/automart/pkg/storage"
	"github.com/shashiranjanraj/automart/pkg/testkit"

	_ "github.com/shashiranjanraj/automart/database/migrations"
)

func newKernel(t *testing.T) (*HTTPKernel, string) {
	t.Helper()
	testkit.DB(t)
	cache.Use(nil)
	root := t.TempDir()
	storage.RegisterDisk("local", storage.NewLocalDisk(root, "/storage"), true)
	return NewHTTPKernel(), root
}

func TestKernel_JSONFallbacks(t *testing.T) {
	k, _ := newKernel(t)

	rec := testkit.Do(t, k.Handler(), http.MethodGet, "/nowhere/", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"status":404,"message":"Not found"}`, rec.Body.String())

	rec = testkit.Do(t, k.Handler(), http.MethodDelete, "/car/", nil, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":405`)
}

func TestKernel_RequestID(t *testing.T) {
	k, _ := newKernel(t)
	rec := testkit.Do(t, k.Handler(), http.MethodGet, "/category/", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestKernel_Metrics(t *testing.T) {
	k, _ := newKernel(t)
	testkit.Do(t, k.Handler(), http.MethodGet, "/car/", nil, nil)

	rec := testkit.Do(t, k.Handler(), http.MethodGet, "/metrics", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "automart_http_requests_total")
}

func TestKernel_ServesStoredFiles(t *testing.T) {
	k, root := newKernel(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "cars", "1"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "cars", "1", "a.png"), []byte("png"), 0o644))

	rec := testkit.Do(t, k.Handler(), http.MethodGet, "/storage/cars/1/a.png", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png", rec.Body.String())

	rec = testkit.Do(t, k.Handler(), http.MethodGet, "/storage/cars/1/", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestKernel_GraphQL(t *testing.T) {
	k, _ := newKernel(t)
	ctx := context.Background()
	catalog := services.NewCatalogService()
	cat, err := catalog.CreateCategory(ctx, "Sedan")
	require.NoError(t, err)
	mk, err := catalog.CreateMake(ctx, "Toyota", &cat.ID)
	require.NoError(t, err)
	_, err = catalog.CreateModel(ctx, "Corolla", mk.ID, &cat.ID)
	require.NoError(t, err)

	query := func(q string) string {
		rec := testkit.Do(t, k.Handler(), http.MethodPost, "/graphql", map[string]string{"query": q}, nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		return rec.Body.String()
	}

	assert.JSONEq(t,
		`{"data":{"categories":[{"id":1,"name":"Sedan"}],"make":{"name":"Toyota","models":[{"name":"Corolla"}]}}}`,
		query(`{ categories { id name } make(id: 1) { name models { name } } }`))

	assert.JSONEq(t,
		`{"data":{"cars":{"items":[],"pagination":{"total":0}}}}`,
		query(`{ cars(search: "corolla") { items { id } pagination { total } } }`))

	body := query(`{ cars(ordering: "year") { items { id } } }`)
	assert.True(t, strings.Contains(body, "The ordering must be one of"), body)

	body = query(`{ car(id: 99) { id } }`)
	assert.Contains(t, body, `"errors"`)

	rec := testkit.Do(t, k.Handler(), http.MethodPost, "/graphql", []byte(`not json`), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestKernel_Routes(t *testing.T) {
	k, _ := newKernel(t)
	names := map[string]bool{}
	for _, r := range k.Routes() {
		names[r.Name] = true
	}
	for _, n := range []string{"car.index", "car.show", "cart.show", "auth.logout", "graphql", "metrics", "storage", "owners.destroy"} {
		assert.True(t, names[n], n)
	}
}
