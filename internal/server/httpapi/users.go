package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/solidarias/internal/common"
	"github.com/dmitrijs2005/solidarias/internal/services"
)

const (
	msgPasswordMismatch   = "Passwords do not match."
	msgUserNameTaken      = "Username already exists."
	msgEmailTaken         = "Email is already in use."
	msgFieldsRequired     = "All fields are required."
	msgUserCreated        = "User created successfully"
	msgLoggedIn           = "Logged in successfully"
	msgLoggedOut          = "You have been logged out"
	msgInvalidCredentials = "Invalid username or password"
)

func (h *Handlers) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "register", page{Title: "Register"})
}

func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	_, err := h.users.Register(r.Context(), services.Registration{
		UserName:        r.PostFormValue("username"),
		Email:           r.PostFormValue("email"),
		Password:        r.PostFormValue("password"),
		ConfirmPassword: r.PostFormValue("confirm_password"),
	})

	switch {
	case err == nil:
		h.redirectWithFlash(w, r, "/login", flashSuccess, msgUserCreated)
	case errors.Is(err, common.ErrorPasswordMismatch):
		h.redirectWithFlash(w, r, "/register", flashDanger, msgPasswordMismatch)
	case errors.Is(err, common.ErrorUserNameTaken):
		h.redirectWithFlash(w, r, "/register", flashDanger, msgUserNameTaken)
	case errors.Is(err, common.ErrorEmailTaken):
		h.redirectWithFlash(w, r, "/register", flashDanger, msgEmailTaken)
	case errors.Is(err, common.ErrorValidation):
		h.redirectWithFlash(w, r, "/register", flashDanger, msgFieldsRequired)
	default:
		h.serverError(w, r, err)
	}
}

func (h *Handlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "login", page{Title: "Log in"})
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	token, _, err := h.users.Login(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		if errors.Is(err, common.ErrorInvalidCredentials) {
			h.render(w, r, http.StatusUnauthorized, "login", page{
				Title: "Log in",
				Flash: &flash{Kind: flashDanger, Message: msgInvalidCredentials},
			})
			return
		}
		h.serverError(w, r, err)
		return
	}

	h.setSessionCookie(w, token, h.users.SessionValidity())
	h.redirectWithFlash(w, r, "/", flashSuccess, msgLoggedIn)
}

// Logout drops the session cookie. The token itself is not revoked.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	h.clearSessionCookie(w)
	h.redirectWithFlash(w, r, "/login", flashSuccess, msgLoggedOut)
}
