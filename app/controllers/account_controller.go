package controllers

import (
	"net/http"

	"github.com/treasuryofflair/flairmarket/app/services"
	"github.com/treasuryofflair/flairmarket/pkg/apperr"
	"github.com/treasuryofflair/flairmarket/pkg/bind"
	"github.com/treasuryofflair/flairmarket/pkg/response"
	"github.com/treasuryofflair/flairmarket/pkg/session"
)

// accountIDKey is the session key the account surface keys on.
const accountIDKey = "account_id"

// AccountController serves the cookie-session account surface.
type AccountController struct {
	service *services.AccountService
}

func NewAccountController(service *services.AccountService) *AccountController {
	return &AccountController{service: service}
}

// Signup handles POST /account/signup.
func (c *AccountController) Signup(w http.ResponseWriter, r *http.Request) {
	var input services.SignupInput
	if errs, err := bind.JSON(r, &input); err != nil {
		response.Error(w, r, apperr.Validation(err.Error()))
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	account, err := c.service.Signup(input)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.Created(w, account)
}

// Login handles POST /account/login and establishes the session cookie.
func (c *AccountController) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username" validate:"required"`
	}
	if errs, err := bind.JSON(r, &body); err != nil {
		response.Error(w, r, apperr.Validation(err.Error()))
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	account, err := c.service.Login(body.Username)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	sess := session.FromCtx(r)
	sess.Set(accountIDKey, account.ID)
	if err := sess.Save(w); err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, map[string]string{"message": "Logged in as " + account.Username})
}

// Home handles GET /account/home for the logged-in account.
func (c *AccountController) Home(w http.ResponseWriter, r *http.Request) {
	sess := session.FromCtx(r)
	id, ok := sess.GetUint(accountIDKey)
	if !ok {
		response.Unauthorized(w)
		return
	}

	account, err := c.service.Current(id)
	if err != nil {
		response.Error(w, r, err)
		return
	}

	response.JSON(w, map[string]string{"username": account.Username})
}

// Destroy handles DELETE /account: removes the row, then the session.
func (c *AccountController) Destroy(w http.ResponseWriter, r *http.Request) {
	sess := session.FromCtx(r)
	id, ok := sess.GetUint(accountIDKey)
	if !ok {
		response.Unauthorized(w)
		return
	}

	if err := c.service.Delete(id); err != nil {
		response.Error(w, r, err)
		return
	}

	sess.Invalidate()
	if err := sess.Save(w); err != nil {
		response.Error(w, r, err)
		return
	}

	response.Message(w, http.StatusOK, "Account deleted")
}
