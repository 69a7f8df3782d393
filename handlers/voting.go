// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/pollconnect/middleware"
	"github.com/danielhkuo/pollconnect/models"
)

// Vote handles POST /polls/{id}/vote
// Moves the user's vote to the chosen option. The cause of a failure is
// logged; the user only sees a generic message.
func (h *PollHandler) Vote(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	option := r.FormValue("option")
	username := middleware.CurrentUser(h.sessions, r)

	if err := h.polls.Vote(r.Context(), pollID, username, option); err != nil {
		slog.Error("failed to vote",
			"poll_id", pollID,
			"username", username,
			"option", option,
			"error", err,
		)
		redirectWithFlash(w, r, h.sessions, listURL(r), models.FlashError, "Error updating vote.")
		return
	}

	redirectWithFlash(w, r, h.sessions, listURL(r), models.FlashSuccess, "Vote updated successfully!")
}
