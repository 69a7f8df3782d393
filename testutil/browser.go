// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
)

// Browser drives a handler like a user agent: cookies set by one response
// are sent with the next request. Redirects are not followed.
type Browser struct {
	t       *testing.T
	handler http.Handler
	cookies map[string]*http.Cookie
}

func NewBrowser(t *testing.T, handler http.Handler) *Browser {
	return &Browser{t: t, handler: handler, cookies: map[string]*http.Cookie{}}
}

// Do sends req with the stored cookies and records new ones
func (b *Browser) Do(req *http.Request) *httptest.ResponseRecorder {
	for _, c := range b.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	b.handler.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 || c.Value == "" {
			delete(b.cookies, c.Name)
			continue
		}
		b.cookies[c.Name] = c
	}
	return w
}

func (b *Browser) Get(path string) *httptest.ResponseRecorder {
	return b.Do(MakeFormRequest("GET", path, nil))
}

func (b *Browser) Post(path string, form url.Values) *httptest.ResponseRecorder {
	if form == nil {
		form = url.Values{}
	}
	return b.Do(MakeFormRequest("POST", path, form))
}

// Login posts credentials and fails the test unless the session starts
func (b *Browser) Login(username, password string) {
	b.t.Helper()

	w := b.Post("/login", url.Values{"username": {username}, "password": {password}})
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/" {
		b.t.Fatalf("Login as %s failed: status %d, location %q", username, w.Code, w.Header().Get("Location"))
	}
}

// Follow performs the GET a redirect response points at
func (b *Browser) Follow(w *httptest.ResponseRecorder) *httptest.ResponseRecorder {
	b.t.Helper()

	location := w.Header().Get("Location")
	if location == "" {
		b.t.Fatalf("Expected a redirect, got status %d", w.Code)
	}
	return b.Get(location)
}
