package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/automart/app/models"
	"github.com/shashiranjanraj/automart/pkg/migration"
)

func init() {
	migration.Register("20260102000000_create_catalog_tables", &CreateCatalogTables{})
	migration.Register("20260102000001_create_listings_tables", &CreateListingsTables{})
}

// CreateCatalogTables creates categories, makes and models. Parents are
// listed first so the foreign keys declared on the parents' side are
// attached when the child tables are created.
type CreateCatalogTables struct{}

func (m *CreateCatalogTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Category{}, &models.CarMake{}, &models.CarModel{})
}

func (m *CreateCatalogTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.CarModel{}, &models.CarMake{}, &models.Category{})
}

// CreateListingsTables creates cars with their images and reviews.
type CreateListingsTables struct{}

func (m *CreateListingsTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.CarMake{},
		&models.CarModel{},
		&models.Car{},
		&models.CarImage{},
		&models.CarReview{},
	)
}

func (m *CreateListingsTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.CarReview{}, &models.CarImage{}, &models.Car{})
}
