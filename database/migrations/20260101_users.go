package migrations

import (
	"gorm.io/gorm"

	"github.com/shashiranjanraj/automart/app/models"
	"github.com/shashiranjanraj/automart/pkg/migration"
)

func init() {
	migration.Register("20260101000000_create_users_tables", &CreateUsersTables{})
	migration.Register("20260101000001_create_revoked_tokens_table", &CreateRevokedTokensTable{})
}

// CreateUsersTables creates users and the two role profiles.
type CreateUsersTables struct{}

func (m *CreateUsersTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.ClientProfile{}, &models.OwnerProfile{})
}

func (m *CreateUsersTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.OwnerProfile{}, &models.ClientProfile{}, &models.User{})
}

type CreateRevokedTokensTable struct{}

func (m *CreateRevokedTokensTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.RevokedToken{})
}

func (m *CreateRevokedTokensTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(&models.RevokedToken{})
}
