// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"fmt"
	"net/http"

	"github.com/danielhkuo/pollconnect/cliparse"
	"github.com/danielhkuo/pollconnect/handlers"
	"github.com/danielhkuo/pollconnect/metrics"
	"github.com/danielhkuo/pollconnect/middleware"
	"github.com/danielhkuo/pollconnect/store"
	"github.com/danielhkuo/pollconnect/views"
)

func NewRouter(s store.Store, cfg cliparse.Config) (http.Handler, error) {
	renderer, err := views.New()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}
	sessions := middleware.NewSessionManager(cfg.SessionLifetime)

	mux := http.NewServeMux()

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(s, sessions, renderer)
	pollHandler := handlers.NewPollHandler(s, sessions, renderer, cfg)
	healthHandler := handlers.NewHealthHandler(s)

	page := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(h)
	}
	private := func(h http.HandlerFunc) http.HandlerFunc {
		return middleware.WithLogging(middleware.RequireLogin(sessions, h))
	}

	// Operations
	mux.HandleFunc("GET /health", middleware.WithLogging(healthHandler.Health))
	mux.Handle("GET /metrics", metrics.Handler())

	// Accounts
	mux.HandleFunc("GET /login", page(authHandler.LoginPage))
	mux.HandleFunc("POST /login", page(authHandler.Login))
	mux.HandleFunc("GET /register", page(authHandler.RegisterPage))
	mux.HandleFunc("POST /register", page(authHandler.Register))
	mux.HandleFunc("POST /logout", page(authHandler.Logout))

	// Polls (logged in)
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

	return sessions.LoadAndSave(mux), nil
}
