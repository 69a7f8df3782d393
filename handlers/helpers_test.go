// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"testing"

	"github.com/danielhkuo/pollconnect/middleware"
	"github.com/danielhkuo/pollconnect/store"
	"github.com/danielhkuo/pollconnect/testutil"
	"github.com/danielhkuo/pollconnect/views"
)

// newTestApp wires the page handlers over an in-memory store
func newTestApp(t *testing.T) (*testutil.Browser, *store.SQLStore) {
	t.Helper()

	s := testutil.SetupTestStore(t)
	return newTestAppWith(t, s), s
}

// newTestAppWith wires the page handlers over s
func newTestAppWith(t *testing.T, s store.Store) *testutil.Browser {
	t.Helper()

	cfg := testutil.GetTestConfig()

	renderer, err := views.New()
	if err != nil {
		t.Fatalf("Failed to load templates: %v", err)
	}
	sessions := middleware.NewSessionManager(cfg.SessionLifetime)

	authHandler := NewAuthHandler(s, sessions, renderer)
	pollHandler := NewPollHandler(s, sessions, renderer, cfg)
	private := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.RequireLogin(sessions, h)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /login", authHandler.LoginPage)
	mux.HandleFunc("POST /login", authHandler.Login)
	mux.HandleFunc("GET /register", authHandler.RegisterPage)
	mux.HandleFunc("POST /register", authHandler.Register)
	mux.HandleFunc("POST /logout", authHandler.Logout)
	mux.HandleFunc("GET /{$}", private(pollHandler.Home))
	mux.HandleFunc("GET /polls", private(pollHandler.ListPolls))
	mux.HandleFunc("GET /polls/new", private(pollHandler.NewPollPage))
	mux.HandleFunc("POST /polls/new", private(pollHandler.CreatePoll))
	mux.HandleFunc("POST /polls/{id}/vote", private(pollHandler.Vote))
	mux.HandleFunc("POST /polls/{id}/comments", private(pollHandler.Comment))
	mux.HandleFunc("POST /polls/{id}/like", private(pollHandler.Like))
	mux.HandleFunc("POST /polls/{id}/dislike", private(pollHandler.Dislike))
	mux.HandleFunc("GET /polls/{id}/share", private(pollHandler.Share))
	mux.HandleFunc("GET /poll/{id}", private(pollHandler.Permalink))
	mux.HandleFunc("POST /polls/{id}/delete", private(pollHandler.DeletePoll))
	mux.HandleFunc("GET /polls/{id}/edit", private(pollHandler.EditPage))
	mux.HandleFunc("POST /polls/{id}/update", private(pollHandler.UpdatePoll))

	return testutil.NewBrowser(t, sessions.LoadAndSave(mux))
}

// loggedInApp returns a browser already logged in as username
func loggedInApp(t *testing.T, username string) (*testutil.Browser, *store.SQLStore) {
	t.Helper()

	b, s := newTestApp(t)
	testutil.CreateTestUser(t, s, username, "secret")
	b.Login(username, "secret")
	return b, s
}
