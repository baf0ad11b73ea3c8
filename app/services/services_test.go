package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/automart/app/models"
	"github.com/shashiranjanraj/automart/pkg/apperr"
	"github.com/shashiranjanraj/automart/pkg/cache"
	"github.com/shashiranjanraj/automart/pkg/storage"
	"github.com/shashiranjanraj/automart/pkg/testkit"

	_ "github.com/shashiranjanraj/automart/database/migrations"
)

// fixture is a migrated database holding one category, one make with one
// model, a client and an owner.
type fixture struct {
	ctx     context.Context
	auth    *AuthService
	catalog *CatalogService
	baskets *BasketService
	reviews *ReviewService
	history *HistoryService
	users   *UserService

	category models.Category
	make     models.CarMake
	model    models.CarModel
	client   Caller
	owner    Caller
	blobs    string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	testkit.DB(t)
	cache.Use(nil)

	f := &fixture{
		ctx:     context.Background(),
		auth:    NewAuthService(),
		catalog: NewCatalogService(),
		baskets: NewBasketService(),
		reviews: NewReviewService(),
		history: NewHistoryService(),
		users:   NewUserService(),
		blobs:   t.TempDir(),
	}
	storage.RegisterDisk("local", storage.NewLocalDisk(f.blobs, "/storage"), true)

	var err error
	f.category, err = f.catalog.CreateCategory(f.ctx, "Sedan")
	require.NoError(t, err)
	f.make, err = f.catalog.CreateMake(f.ctx, "Toyota", &f.category.ID)
	require.NoError(t, err)
	f.model, err = f.catalog.CreateModel(f.ctx, "Corolla", f.make.ID, &f.category.ID)
	require.NoError(t, err)

	f.client = f.registerClient(t, "ann")
	f.owner = f.registerOwner(t, "bob")
	return f
}

func (f *fixture) registerClient(t *testing.T, username string) Caller {
	t.Helper()
	age := 30
	res, err := f.auth.RegisterClient(f.ctx, RegisterClientInput{Username: username, Password: "password123", Age: &age})
	require.NoError(t, err)
	return Caller{UserID: res.User.ID, Role: res.User.Role}
}

func (f *fixture) registerOwner(t *testing.T, username string) Caller {
	t.Helper()
	res, err := f.auth.RegisterOwner(f.ctx, RegisterOwnerInput{Username: username, Password: "password123", OwnerName: "Bob Motors"})
	require.NoError(t, err)
	return Caller{UserID: res.User.ID, Role: res.User.Role}
}

// car lists a Corolla at price.
func (f *fixture) car(t *testing.T, price string, year int) models.Car {
	t.Helper()
	p := decimal.RequireFromString(price)
	c, err := f.catalog.CreateCar(f.ctx, f.owner, CarInput{
		MakeID:  f.make.ID,
		ModelID: f.model.ID,
		Price:   &p,
		Year:    year,
	})
	require.NoError(t, err)
	return c
}

// requireKind asserts err is an *apperr.Error of kind and returns it.
func requireKind(t *testing.T, err error, kind apperr.Kind) *apperr.Error {
	t.Helper()
	require.Error(t, err)
	e := apperr.From(err)
	require.Equal(t, kind, e.Kind, "error: %v", err)
	return e
}
