package repositories

import (
	"gorm.io/gorm"

	"github.com/treasuryofflair/flairmarket/app/models"
)

// SellerRepository handles database operations for Seller.
type SellerRepository struct {
	db *gorm.DB
}

func NewSellerRepository(db *gorm.DB) *SellerRepository {
	return &SellerRepository{db: db}
}

// FindByEmail looks up a seller by their email address (exact match).
func (r *SellerRepository) FindByEmail(email string) (models.Seller, error) {
	var seller models.Seller
	err := r.db.Where("email = ?", email).First(&seller).Error
	return seller, err
}

// FindByID looks up a seller by primary key.
func (r *SellerRepository) FindByID(id uint) (models.Seller, error) {
	var seller models.Seller
	err := r.db.Where("id = ?", id).First(&seller).Error
	return seller, err
}

// Create persists a new seller record.
func (r *SellerRepository) Create(seller *models.Seller) error {
	return r.db.Create(seller).Error
}
