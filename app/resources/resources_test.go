package resources

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/shashiranjanraj/automart/app/models"
	"github.com/shashiranjanraj/automart/pkg/storage"
)

func init() {
	storage.RegisterDisk("local", storage.NewLocalDisk("storage", "http://localhost:8080/storage"), true)
}

func sampleCar() models.Car {
	return models.Car{
		ID:      3,
		Make:    &models.CarMake{ID: 1, Name: "Toyota"},
		Model:   &models.CarModel{ID: 2, Name: "Corolla"},
		Price:   decimal.RequireFromString("12500.5"),
		Year:    2019,
		Body:    models.BodySedan,
		Fuel:    datatypes.JSONSlice[models.FuelType]{models.FuelPetrol},
		Images:  []models.CarImage{{ID: 9, Image: "cars/3/a.jpg"}, {ID: 10, Image: "https://cdn.example.com/b.jpg"}},
		Gearbox: models.GearboxAny,
	}
}

func TestNewCarDetail(t *testing.T) {
	c := sampleCar()
	d := NewCarDetail(c)

	assert.Equal(t, "12500.50", d.Price)
	assert.Equal(t, "Toyota", d.Make.Name)
	assert.Equal(t, "http://localhost:8080/storage/cars/3/a.jpg", d.Images[0].Image)
	assert.Equal(t, "https://cdn.example.com/b.jpg", d.Images[1].Image)
	assert.Nil(t, d.AverageRating)
	assert.Zero(t, d.ReviewCount)

	c.Reviews = []models.CarReview{
		{ID: 1, Stars: 5, User: &models.User{Username: "ann"}},
		{ID: 2, Stars: 4},
	}
	d = NewCarDetail(c)
	require.NotNil(t, d.AverageRating)
	assert.Equal(t, 4.5, *d.AverageRating)
	assert.Equal(t, 2, d.ReviewCount)
	assert.Equal(t, "ann", d.Reviews[0].User.Username)
	assert.Nil(t, d.Reviews[1].User)
}

func TestCarDetail_JSONShape(t *testing.T) {
	c := sampleCar()
	c.Images = nil
	raw, err := json.Marshal(NewCarDetail(c))
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(raw, &m))
	assert.Equal(t, []any{}, m["images"])
	assert.Equal(t, []any{}, m["reviews"])
	assert.Nil(t, m["average_rating"])
	assert.Equal(t, "12500.50", m["price"])
	assert.Equal(t, "sedan", m["body"])
	assert.Equal(t, []any{"petrol"}, m["fuel"])
	assert.Contains(t, m, "make")
}

func TestNewCart(t *testing.T) {
	a, b := sampleCar(), sampleCar()
	b.Price = decimal.RequireFromString("99.99")

	cart := NewCart(models.Cart{ID: 1, ClientID: 7, Items: []models.CartItem{
		{ID: 1, Car: &a},
		{ID: 2, Car: &b},
	}})
	assert.Equal(t, "12600.49", cart.TotalPrice)
	assert.Len(t, cart.Items, 2)

	empty := NewCart(models.Cart{ID: 2, ClientID: 8})
	assert.Equal(t, "0.00", empty.TotalPrice)
	assert.NotNil(t, empty.Items)
}

func TestNewUser_RoleFields(t *testing.T) {
	age := uint8(33)
	client := NewUser(models.User{ID: 1, Username: "ann", Role: models.RoleClient, Client: &models.ClientProfile{Age: &age}})
	require.NotNil(t, client.Age)
	assert.Equal(t, uint8(33), *client.Age)
	assert.Empty(t, client.OwnerName)

	owner := NewUser(models.User{ID: 2, Username: "bob", Role: models.RoleOwner, Owner: &models.OwnerProfile{OwnerName: "Bob Motors", Location: "Oslo"}})
	assert.Nil(t, owner.Age)
	assert.Equal(t, "Bob Motors", owner.OwnerName)

	raw, err := json.Marshal(owner)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), `"age"`)
}

func TestNewModelDetail(t *testing.T) {
	d := NewModelDetail(models.CarModel{ID: 2, Name: "Corolla", Make: &models.CarMake{ID: 1, Name: "Toyota"}})
	require.NotNil(t, d.Make)
	assert.Equal(t, "Toyota", d.Make.Name)
	assert.NotNil(t, d.Cars)
}
