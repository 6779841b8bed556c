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

// RegisterInput is the seller signup payload.
type RegisterInput struct {
	Name     string `json:"name" validate:"required,min=2,max=150"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginInput is the seller login payload.
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthService implements seller registration and login.
type AuthService struct {
	sellers *repositories.SellerRepository
}

func NewAuthService(sellers *repositories.SellerRepository) *AuthService {
	return &AuthService{sellers: sellers}
}

// Register creates a seller and returns it with a signed token.
func (s *AuthService) Register(input RegisterInput) (models.Seller, string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	if _, err := s.sellers.FindByEmail(email); err == nil {
		return models.Seller{}, "", apperr.Validation("Email is already registered")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Seller{}, "", err
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return models.Seller{}, "", err
	}

	seller := models.Seller{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.sellers.Create(&seller); err != nil {
		return models.Seller{}, "", err
	}

	token, err := auth.GenerateToken(seller.ID, seller.Name, seller.Email)
	if err != nil {
		return models.Seller{}, "", err
	}

	return seller, token, nil
}

// Login verifies credentials and returns the seller with a fresh token.
// The same message covers unknown email and wrong password.
func (s *AuthService) Login(input LoginInput) (models.Seller, string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	seller, err := s.sellers.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Seller{}, "", apperr.Validation("Invalid email or password")
		}
		return models.Seller{}, "", err
	}

	if !auth.CheckPassword(seller.PasswordHash, input.Password) {
		return models.Seller{}, "", apperr.Validation("Invalid email or password")
	}

	token, err := auth.GenerateToken(seller.ID, seller.Name, seller.Email)
	if err != nil {
		return models.Seller{}, "", err
	}

	return seller, token, nil
}

// Identity reloads a seller by id; used by the auth middleware so tokens
// for deleted accounts stop working immediately.
func (s *AuthService) Identity(id uint) (models.Seller, bool) {
	seller, err := s.sellers.FindByID(id)
	if err != nil {
		return models.Seller{}, false
	}
	return seller, true
}
