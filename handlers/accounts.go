// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/danielhkuo/pollconnect/middleware"
	"github.com/danielhkuo/pollconnect/models"
	"github.com/danielhkuo/pollconnect/service"
	"github.com/danielhkuo/pollconnect/store"
	"github.com/danielhkuo/pollconnect/views"
)

type AuthHandler struct {
	accounts *service.Accounts
	sessions *scs.SessionManager
	views    *views.Renderer
}

func NewAuthHandler(s store.Store, sessions *scs.SessionManager, v *views.Renderer) *AuthHandler {
	return &AuthHandler{
		accounts: service.NewAccounts(s),
		sessions: sessions,
		views:    v,
	}
}

// LoginPage handles GET /login
func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if middleware.CurrentUser(h.sessions, r) != "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	h.views.Render(w, http.StatusOK, views.PageLogin, newPage(h.sessions, r, "Login", nil))
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	ok, err := h.accounts.Login(r.Context(), username, password)
	if err != nil {
		slog.Error("failed to log in", "username", username, "error", err)
		redirectWithFlash(w, r, h.sessions, "/login", models.FlashError, "Something went wrong, please try again.")
		return
	}
	if !ok {
		redirectWithFlash(w, r, h.sessions, "/login", models.FlashError, "Invalid credentials!")
		return
	}

	// New token on privilege change
	if err := h.sessions.RenewToken(r.Context()); err != nil {
		slog.Error("failed to renew session token", "error", err)
		h.views.Error(w, http.StatusInternalServerError, "", "Could not start a session.")
		return
	}
	h.sessions.Put(r.Context(), middleware.SessionUserKey, username)

	redirectWithFlash(w, r, h.sessions, "/", models.FlashSuccess, "Logged in successfully!")
}

// RegisterPage handles GET /register
func (h *AuthHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, http.StatusOK, views.PageRegister, newPage(h.sessions, r, "Register", nil))
}

// Register handles POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	username := r.FormValue("username")
	password := r.FormValue("password")

	err := h.accounts.Register(r.Context(), username, password)
	if errors.Is(err, service.ErrUsernameTaken) {
		redirectWithFlash(w, r, h.sessions, "/register", models.FlashError, "Username already exists!")
		return
	}
	if err != nil {
		slog.Error("failed to register", "username", username, "error", err)
		redirectWithFlash(w, r, h.sessions, "/register", models.FlashError, "Something went wrong, please try again.")
		return
	}

	redirectWithFlash(w, r, h.sessions, "/login", models.FlashSuccess, "Registration successful!")
}

// Logout handles POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context()); err != nil {
		slog.Error("failed to destroy session", "error", err)
	}
	redirectWithFlash(w, r, h.sessions, "/login", models.FlashSuccess, "Logged out successfully!")
}
