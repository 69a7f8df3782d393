// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/danielhkuo/pollconnect/models"
)

// Session keys
const (
	SessionUserKey  = "username"
	flashKindKey    = "flash_kind"
	flashMessageKey = "flash_message"
)

// NewSessionManager builds the in-memory session manager used by the UI
func NewSessionManager(lifetime time.Duration) *scs.SessionManager {
	sessions := scs.New()
	sessions.Lifetime = lifetime
	sessions.Cookie.Name = "pollconnect_session"
	sessions.Cookie.HttpOnly = true
	sessions.Cookie.SameSite = http.SameSiteLaxMode
	return sessions
}

// CurrentUser returns the logged-in username, or "" for anonymous requests
func CurrentUser(sessions *scs.SessionManager, r *http.Request) string {
	return sessions.GetString(r.Context(), SessionUserKey)
}

// RequireLogin redirects anonymous requests to the login page
func RequireLogin(sessions *scs.SessionManager, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if CurrentUser(sessions, r) == "" {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}

// SetFlash stores a one-shot message shown on the next rendered page
func SetFlash(sessions *scs.SessionManager, r *http.Request, kind, message string) {
	sessions.Put(r.Context(), flashKindKey, kind)
	sessions.Put(r.Context(), flashMessageKey, message)
}

// PopFlash removes and returns the pending message, if any
func PopFlash(sessions *scs.SessionManager, r *http.Request) *models.Flash {
	message := sessions.PopString(r.Context(), flashMessageKey)
	kind := sessions.PopString(r.Context(), flashKindKey)
	if message == "" {
		return nil
	}
	if kind == "" {
		kind = models.FlashSuccess
	}
	return &models.Flash{Kind: kind, Message: message}
}
