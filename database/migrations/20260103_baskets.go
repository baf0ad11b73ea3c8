package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/automart/app/models"
	"github.com/shashiranjanraj/automart/pkg/migration"
)

func init() {
	migration.Register("20260103000000_create_basket_tables", &CreateBasketTables{})
	migration.Register("20260103000001_create_histories_table", &CreateHistoriesTable{})
}

// CreateBasketTables creates carts and favorites with their items.
type CreateBasketTables struct{}

func (m *CreateBasketTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.Cart{},
		&models.CartItem{},
		&models.Favorite{},
		&models.FavoriteItem{},
	)
}

func (m *CreateBasketTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(
		&models.FavoriteItem{},
		&models.Favorite{},
		&models.CartItem{},
		&models.Cart{},
	)
}

type CreateHistoriesTable struct{}

func (m *CreateHistoriesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.History{})
}

func (m *CreateHistoriesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.History{})
}
