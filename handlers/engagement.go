// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/pollconnect/models"
	"github.com/danielhkuo/pollconnect/service"
	"github.com/danielhkuo/pollconnect/share"
	"github.com/danielhkuo/pollconnect/views"
)

type sharePage struct {
	Question string
	Links    []share.Link
}

// Like handles POST /polls/{id}/like
func (h *PollHandler) Like(w http.ResponseWriter, r *http.Request) {
	h.engage(w, r, "like", h.polls.Like, "Poll liked!")
}

// Dislike handles POST /polls/{id}/dislike
func (h *PollHandler) Dislike(w http.ResponseWriter, r *http.Request) {
	h.engage(w, r, "dislike", h.polls.Dislike, "Poll disliked!")
}

// Comment handles POST /polls/{id}/comments
// Empty comments are ignored.
func (h *PollHandler) Comment(w http.ResponseWriter, r *http.Request) {
	text := r.FormValue("comment")
	if text == "" {
		http.Redirect(w, r, listURL(r), http.StatusSeeOther)
		return
	}

	h.engage(w, r, "comment", func(ctx context.Context, pollID string) error {
		return h.polls.Comment(ctx, pollID, text)
	}, "Comment added!")
}

func (h *PollHandler) engage(w http.ResponseWriter, r *http.Request, action string, fn func(context.Context, string) error, success string) {
	pollID := r.PathValue("id")

	err := fn(r.Context(), pollID)
	if errors.Is(err, service.ErrPollNotFound) {
		redirectWithFlash(w, r, h.sessions, listURL(r), models.FlashError, "Poll not found.")
		return
	}
	if err != nil {
		slog.Error("failed to update poll", "action", action, "poll_id", pollID, "error", err)
		redirectWithFlash(w, r, h.sessions, listURL(r), models.FlashError, "Could not update poll.")
		return
	}

	redirectWithFlash(w, r, h.sessions, listURL(r), models.FlashSuccess, success)
}

// Share handles GET /polls/{id}/share
func (h *PollHandler) Share(w http.ResponseWriter, r *http.Request) {
	poll, ok := h.loadPoll(w, r)
	if !ok {
		return
	}

	h.views.Render(w, http.StatusOK, views.PageShare, newPage(h.sessions, r, "Share Poll", sharePage{
		Question: poll.Question,
		Links:    share.Links(h.cfg.ShareBaseURL, poll.ID),
	}))
}

// Permalink handles GET /poll/{id}, the address share links point at. It
// lands on the poll's card in the list.
func (h *PollHandler) Permalink(w http.ResponseWriter, r *http.Request) {
	poll, ok := h.loadPoll(w, r)
	if !ok {
		return
	}
	http.Redirect(w, r, "/polls#poll-"+poll.ID, http.StatusSeeOther)
}
