package controllers

import (
	"net/http"

	"github.com/treasuryofflair/flairmarket/app/services"
	"github.com/treasuryofflair/flairmarket/pkg/apperr"
	"github.com/treasuryofflair/flairmarket/pkg/bind"
	"github.com/treasuryofflair/flairmarket/pkg/response"
)

// AuthController serves seller registration and login.
type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

// Register handles POST /auth/register.
func (c *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Error(w, r, apperr.Validation(err.Error()))
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	seller, token, err := c.service.Register(input)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.Created(w, map[string]interface{}{
		"seller": seller,
		"token":  token,
	})
}

// Login handles POST /auth/login.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var input services.LoginInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Error(w, r, apperr.Validation(err.Error()))
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	seller, token, err := c.service.Login(input)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, map[string]interface{}{
		"seller": seller,
		"token":  token,
	})
}
