// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/url"

	"github.com/alexedwards/scs/v2"

	"github.com/danielhkuo/pollconnect/middleware"
	"github.com/danielhkuo/pollconnect/views"
)

// newPage fills in the session-derived fields every template shows
func newPage(sessions *scs.SessionManager, r *http.Request, title string, data any) views.Page {
	return views.Page{
		Title:    title,
		Username: middleware.CurrentUser(sessions, r),
		Flash:    middleware.PopFlash(sessions, r),
		Data:     data,
	}
}

// redirectWithFlash stores a message for the next page and redirects to it
func redirectWithFlash(w http.ResponseWriter, r *http.Request, sessions *scs.SessionManager, location, kind, message string) {
	middleware.SetFlash(sessions, r, kind, message)
	http.Redirect(w, r, location, http.StatusSeeOther)
}

// listURL returns to the poll list, keeping the active search
func listURL(r *http.Request) string {
	q := r.FormValue("q")
	if q == "" {
		return "/polls"
	}
	return "/polls?q=" + url.QueryEscape(q)
}
