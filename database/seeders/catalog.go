package seeders

import (
	"github.com/shashiranjanraj/automart/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func init() {
	Register("catalog", seedCatalog)
}

type demoListing struct {
	year     uint16
	price    string
	body     models.BodyType
	fuel     []models.FuelType
	gearbox  models.Gearbox
	color    models.Color
	steering models.Steering
}

type demoModel struct {
	name     string
	listings []demoListing
}

type demoMake struct {
	category string
	name     string
	image    string
	models   []demoModel
}

var demoCatalog = []demoMake{
	{"Sedan", "Toyota", "https://images.automart.dev/makes/toyota.png", []demoModel{
		{"Corolla", []demoListing{
			{2019, "14500.00", models.BodySedan, []models.FuelType{models.FuelPetrol}, models.GearboxAutomatic, models.ColorWhite, models.SteeringLeft},
			{2021, "18990.50", models.BodySedan, []models.FuelType{models.FuelPetrol, models.FuelHybrid}, models.GearboxAutomatic, models.ColorBlack, models.SteeringLeft},
		}},
		{"Camry", []demoListing{
			{2020, "23400.00", models.BodySedan, []models.FuelType{models.FuelHybrid}, models.GearboxAutomatic, models.ColorBlue, models.SteeringLeft},
		}},
	}},
	{"SUV", "Jeep", "https://images.automart.dev/makes/jeep.png", []demoModel{
		{"Wrangler", []demoListing{
			{2018, "27800.00", models.BodySUV, []models.FuelType{models.FuelPetrol}, models.GearboxManual, models.ColorRed, models.SteeringLeft},
		}},
		{"Cherokee", []demoListing{
			{2016, "15250.75", models.BodySUV, []models.FuelType{models.FuelDiesel}, models.GearboxAutomatic, models.ColorBlack, models.SteeringLeft},
		}},
	}},
	{"Pickup", "Ford", "https://images.automart.dev/makes/ford.png", []demoModel{
		{"F-150", []demoListing{
			{2022, "41900.00", models.BodyPickup, []models.FuelType{models.FuelPetrol, models.FuelElectric}, models.GearboxAutomatic, models.ColorWhite, models.SteeringLeft},
		}},
		{"Transit", []demoListing{
			{2017, "19999.99", models.BodyVan, []models.FuelType{models.FuelDiesel}, models.GearboxManual, models.ColorWhite, models.SteeringRight},
		}},
	}},
}

// seedCatalog creates the demo categories, makes, models and listings.
// Listings are only added to models that have none.
func seedCatalog(db *gorm.DB) error {
	for _, dm := range demoCatalog {
		var cat models.Category
		if err := db.Where(models.Category{Name: dm.category}).FirstOrCreate(&cat).Error; err != nil {
			return err
		}

		mk := models.CarMake{Name: dm.name}
		if err := db.Where(models.CarMake{Name: dm.name}).
			Attrs(models.CarMake{Image: dm.image, CategoryID: &cat.ID}).
			FirstOrCreate(&mk).Error; err != nil {
			return err
		}

		for _, mm := range dm.models {
			md := models.CarModel{Name: mm.name}
			if err := db.Where(models.CarModel{Name: mm.name}).
				Attrs(models.CarModel{MakeID: mk.ID, CategoryID: &cat.ID}).
				FirstOrCreate(&md).Error; err != nil {
				return err
			}

			var n int64
			if err := db.Model(&models.Car{}).Where("model_id = ?", md.ID).Count(&n).Error; err != nil {
				return err
			}
			if n > 0 {
				continue
			}

			for _, l := range mm.listings {
				car := models.Car{
					MakeID:   md.MakeID,
					ModelID:  md.ID,
					Price:    decimal.RequireFromString(l.price),
					Year:     l.year,
					Body:     l.body,
					Fuel:     datatypes.JSONSlice[models.FuelType](l.fuel),
					Steering: l.steering,
					Gearbox:  l.gearbox,
					Color:    l.color,
				}
				if err := db.Create(&car).Error; err != nil {
					return err
				}
			}
		}
	}
	return nil
}
