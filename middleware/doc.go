// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware provides HTTP middleware, session helpers and response
helpers.

# Request Logging

Wrap handlers with request logging:

	mux.HandleFunc("GET /polls", middleware.WithLogging(handler))

Logs request start (request_id, method, path, remote) and completion
(duration_ms), and observes the duration in the request histogram under the
matched route pattern. Each request gets an X-Request-Id response header;
an incoming one is reused.

# Sessions

Sessions are server-side (in memory) and keyed by a cookie token:

	sessions := middleware.NewSessionManager(cfg.SessionLifetime)
	handler := sessions.LoadAndSave(mux)

Pages that need a user are guarded with RequireLogin, which redirects to
/login:

	mux.HandleFunc("GET /polls", middleware.WithLogging(
		middleware.RequireLogin(sessions, pollHandler.ListPolls)))

Flash messages survive exactly one redirect:

	middleware.SetFlash(sessions, r, models.FlashSuccess, "Poll liked!")
	flash := middleware.PopFlash(sessions, r) // nil when none is pending

# JSON Helpers

	middleware.JSONResponse(w, http.StatusOK, models.HealthResponse{Status: "ok"})

# Client IP Extraction

Get the original client IP (handles X-Forwarded-For, X-Real-IP):

	ip := middleware.GetClientIP(r)
*/
package middleware
