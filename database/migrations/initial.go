package migrations

import (
	"github.com/treasuryofflair/flairmarket/app/models"
	"github.com/treasuryofflair/flairmarket/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260301000000_create_sellers_table", &CreateSellersTable{})
	migration.Register("20260301000001_create_products_table", &CreateProductsTable{})
	migration.Register("20260301000002_create_artworks_table", &CreateArtworksTable{})
	migration.Register("20260301000003_create_accounts_table", &CreateAccountsTable{})
}

// -------- 0001: sellers --------

type CreateSellersTable struct{}

func (m *CreateSellersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Seller{})
}

func (m *CreateSellersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("sellers")
}

// -------- 0002: products --------

type CreateProductsTable struct{}

func (m *CreateProductsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

func (m *CreateProductsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("products")
}

// -------- 0003: artworks --------

type CreateArtworksTable struct{}

func (m *CreateArtworksTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Artwork{})
}

func (m *CreateArtworksTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("artworks")
}

// -------- 0004: accounts --------

type CreateAccountsTable struct{}

func (m *CreateAccountsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Account{})
}

func (m *CreateAccountsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("accounts")
}
