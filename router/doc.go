// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for PollConnect.

# Route Registration

NewRouter parses the page templates, creates the session manager and
returns the mux wrapped in session loading:

	handler, err := router.NewRouter(s, cfg)

# Endpoints

Operations:

	GET /health  - Store ping (JSON)
	GET /metrics - Prometheus exposition

Accounts:

	GET  /login    - Login form
	POST /login    - Log in
	GET  /register - Registration form
	POST /register - Register
	POST /logout   - Destroy session

Polls (redirect to /login without a session):

	GET  /                    - Home
	GET  /polls               - View polls, ?q= filters by question
	GET  /polls/new           - Create form
	POST /polls/new           - Create poll
	POST /polls/{id}/vote     - Vote (form field "option")
	POST /polls/{id}/comments - Add comment
	POST /polls/{id}/like     - Like
	POST /polls/{id}/dislike  - Dislike
	GET  /polls/{id}/share    - Share links
	GET  /poll/{id}           - Share link target, redirects to the poll's card
	POST /polls/{id}/delete   - Delete (owner only)
	GET  /polls/{id}/edit     - Update form
	POST /polls/{id}/update   - Update poll, resets votes

Every POST answers with a 303 redirect; the next page shows the outcome as
a flash message.
*/
package router
