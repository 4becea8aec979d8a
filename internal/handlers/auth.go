package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"myblog/internal/forms"
	"myblog/internal/models"
)

const (
	msgRegistered         = "You are now registered and can log in."
	msgUsernameTaken      = "This username is already taken."
	msgLoggedIn           = "You are now logged in."
	msgInvalidCredentials = "Invalid username or password."
	msgLoggedOut          = "You are now logged out."
	msgBadForm            = "Could not read the submitted form."
)

// bindForm binds the urlencoded body into dst. On failure the returned Errors
// carry a form-level message.
func bindForm(c *gin.Context, dst any) forms.Errors {
	if err := c.ShouldBind(dst); err != nil {
		errs := forms.Errors{}
		errs.Add("_form", msgBadForm)
		return errs
	}
	return nil
}

func (h *Handler) renderRegister(c *gin.Context, code int, f forms.Register, errs forms.Errors) {
	// passwords are never echoed back
	f.Password, f.Confirm = "", ""
	h.render(c, code, "register.html", gin.H{"Form": f, "Errors": errs})
}

func (h *Handler) register(c *gin.Context) {
	if !isPost(c) {
		h.renderRegister(c, http.StatusOK, forms.Register{}, nil)
		return
	}

	var f forms.Register
	if errs := bindForm(c, &f); errs.Any() {
		h.renderRegister(c, http.StatusBadRequest, f, errs)
		return
	}
	reg, errs := f.Validate()
	if errs.Any() {
		h.renderRegister(c, http.StatusBadRequest, f, errs)
		return
	}

	id, err := h.services.SignUp(c.Request.Context(), reg)
	if err != nil {
		if errors.Is(err, models.ErrUserExists) {
			if h.log != nil {
				h.log.Infow("auth_sign_up_rejected", "username", reg.Username, "err", err)
			}
			errs = forms.Errors{}
			errs.Add("username", msgUsernameTaken)
			h.renderRegister(c, http.StatusBadRequest, f, errs)
			return
		}
		h.fail(c, "auth_sign_up_failed", err, "username", reg.Username)
		return
	}

	if h.log != nil {
		h.log.Infow("auth_signed_up", "username", reg.Username, "id", id)
	}
	h.redirectWithFlash(c, "/login", flashSuccess, msgRegistered)
}

func (h *Handler) login(c *gin.Context) {
	if !isPost(c) {
		h.render(c, http.StatusOK, "login.html", gin.H{"Form": forms.Login{}})
		return
	}

	var raw forms.Login
	if errs := bindForm(c, &raw); errs.Any() {
		h.redirectWithFlash(c, "/login", flashDanger, msgInvalidCredentials)
		return
	}
	f, _ := raw.Validate()

	u, err := h.services.SignIn(c.Request.Context(), f.Username, f.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			if h.log != nil {
				h.log.Infow("auth_sign_in_failed", "username", f.Username, "err", err)
			}
			h.redirectWithFlash(c, "/login", flashDanger, msgInvalidCredentials)
			return
		}
		h.fail(c, "auth_sign_in_error", err, "username", f.Username)
		return
	}

	s := sessions.Default(c)
	startSession(s, u.Username)
	h.redirectWithFlash(c, "/", flashSuccess, msgLoggedIn)
}

// logout always succeeds, whatever the current session holds.
func (h *Handler) logout(c *gin.Context) {
	s := sessions.Default(c)
	s.Clear()
	h.redirectWithFlash(c, "/", flashSuccess, msgLoggedOut)
}
