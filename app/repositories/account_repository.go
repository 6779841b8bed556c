package repositories

import (
	"gorm.io/gorm"

	"github.com/treasuryofflair/flairmarket/app/models"
)

// AccountRepository handles database operations for the session-variant
// Account.
type AccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// FindByUsername looks up an account by username.
func (r *AccountRepository) FindByUsername(username string) (models.Account, error) {
	var account models.Account
	err := r.db.Where("username = ?", username).First(&account).Error
	return account, err
}

// FindByID looks up an account by primary key.
func (r *AccountRepository) FindByID(id uint) (models.Account, error) {
	var account models.Account
	err := r.db.Where("id = ?", id).First(&account).Error
	return account, err
}

// Create persists a new account record.
func (r *AccountRepository) Create(account *models.Account) error {
	return r.db.Create(account).Error
}

// Delete removes an account row.
func (r *AccountRepository) Delete(account *models.Account) error {
	return r.db.Delete(account).Error
}
