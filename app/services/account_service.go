package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/treasuryofflair/flairmarket/app/models"
	"github.com/treasuryofflair/flairmarket/app/repositories"
	"github.com/treasuryofflair/flairmarket/pkg/apperr"
	"github.com/treasuryofflair/flairmarket/pkg/auth"
)

// SignupInput is the account signup payload.
type SignupInput struct {
	Name     string `json:"name" validate:"required,alpha_dash,min=2,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// AccountService implements the cookie-session account surface.
type AccountService struct {
	accounts *repositories.AccountRepository
}

func NewAccountService(accounts *repositories.AccountRepository) *AccountService {
	return &AccountService{accounts: accounts}
}

// Signup creates an account. The name doubles as the unique username.
func (s *AccountService) Signup(input SignupInput) (models.Account, error) {
	username := strings.TrimSpace(input.Name)

	if _, err := s.accounts.FindByUsername(username); err == nil {
		return models.Account{}, apperr.Validation("Username is already taken")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Account{}, err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return models.Account{}, err
	}

	account := models.Account{
		Username:     username,
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hash,
	}
	if err := s.accounts.Create(&account); err != nil {
		return models.Account{}, err
	}

	return account, nil
}

// Login resolves a username to its account. The legacy surface trusts the
// username alone; the session cookie is the credential afterwards.
func (s *AccountService) Login(username string) (models.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return models.Account{}, apperr.Validation("Username is required")
	}

	account, err := s.accounts.FindByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Account{}, apperr.NotFound("Account not found")
		}
		return models.Account{}, err
	}
	return account, nil
}

// Current loads the account behind a session id.
func (s *AccountService) Current(id uint) (models.Account, error) {
	account, err := s.accounts.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Account{}, apperr.NotFound("Account not found")
		}
		return models.Account{}, err
	}
	return account, nil
}

// Delete removes the account row. Deleting an already-removed account
// returns NotFound.
func (s *AccountService) Delete(id uint) error {
	account, err := s.accounts.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("Account not found")
		}
		return err
	}
	return s.accounts.Delete(&account)
}
