// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains the HTTP page handlers for PollConnect.

# Handler Types

Each handler is a struct built from the store and its collaborators:

  - AuthHandler: Login, registration and logout
  - PollHandler: Poll pages, voting, likes, comments and sharing
  - HealthHandler: Store ping for /health

	authHandler := handlers.NewAuthHandler(s, sessions, renderer)
	pollHandler := handlers.NewPollHandler(s, sessions, renderer, cfg)

# Request Flow

GET handlers render a page from freshly loaded state. POST handlers call
the service layer, store a flash message in the session and answer with
303 See Other:

	POST /polls/{id}/vote → Vote → redirect /polls?q=... → "Vote updated successfully!"

A hidden "q" field carries the active search through the redirect.

# Errors

Service errors map to user-facing messages:

	service.ErrUsernameTaken → "Username already exists!"
	service.ErrNotPollOwner  → "You are not authorized to delete this poll."
	service.ErrPollNotFound  → "Poll not found." (404 on GET pages)

Vote failures of any kind show "Error updating vote."; the cause is logged.

# Poll Views

BuildPollView turns a poll into display data: per-option percentages
(only once a vote exists), the owner's avatar initial and whether the
viewer owns the poll or has voted for an option.
*/
package handlers
