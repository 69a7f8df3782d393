// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/alexedwards/scs/v2"

	"github.com/danielhkuo/pollconnect/cliparse"
	"github.com/danielhkuo/pollconnect/middleware"
	"github.com/danielhkuo/pollconnect/models"
	"github.com/danielhkuo/pollconnect/service"
	"github.com/danielhkuo/pollconnect/store"
	"github.com/danielhkuo/pollconnect/views"
)

type PollHandler struct {
	polls    *service.Polls
	sessions *scs.SessionManager
	views    *views.Renderer
	cfg      cliparse.Config
}

func NewPollHandler(s store.Store, sessions *scs.SessionManager, v *views.Renderer, cfg cliparse.Config) *PollHandler {
	return &PollHandler{
		polls:    service.NewPolls(s),
		sessions: sessions,
		views:    v,
		cfg:      cfg,
	}
}

type pollsPage struct {
	Query  string
	Notice string
	Polls  []models.PollView
}

// ParseOptions splits the options textarea into labels, one per line.
// Blank lines are dropped, everything else is kept verbatim.
func ParseOptions(text string) []string {
	var options []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		options = append(options, line)
	}
	return options
}

// Home handles GET /
func (h *PollHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, http.StatusOK, views.PageHome, newPage(h.sessions, r, "Home", nil))
}

// NewPollPage handles GET /polls/new
func (h *PollHandler) NewPollPage(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, http.StatusOK, views.PageCreate, newPage(h.sessions, r, "Create Poll", nil))
}

// CreatePoll handles POST /polls/new
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	question := r.FormValue("question")
	options := ParseOptions(r.FormValue("options"))

	if question == "" || len(options) == 0 {
		redirectWithFlash(w, r, h.sessions, "/polls/new", models.FlashError, "Please provide a question and options.")
		return
	}

	owner := middleware.CurrentUser(h.sessions, r)
	if _, err := h.polls.Create(r.Context(), owner, question, options); err != nil {
		slog.Error("failed to create poll", "owner", owner, "error", err)
		redirectWithFlash(w, r, h.sessions, "/polls/new", models.FlashError, "Could not create poll.")
		return
	}

	redirectWithFlash(w, r, h.sessions, "/polls", models.FlashSuccess, "Poll created successfully!")
}

// ListPolls handles GET /polls
func (h *PollHandler) ListPolls(w http.ResponseWriter, r *http.Request) {
	username := middleware.CurrentUser(h.sessions, r)
	query := r.URL.Query().Get("q")

	polls, err := h.polls.List(r.Context(), query)
	if err != nil {
		slog.Error("failed to list polls", "error", err)
		h.views.Error(w, http.StatusInternalServerError, username, "Could not load polls.")
		return
	}

	page := pollsPage{Query: query, Polls: make([]models.PollView, 0, len(polls))}
	switch {
	case query == "":
		page.Notice = "Please enter a search term."
	case len(polls) == 0:
		page.Notice = "No such polls found."
	}
	for _, poll := range polls {
		page.Polls = append(page.Polls, BuildPollView(poll, username))
	}

	h.views.Render(w, http.StatusOK, views.PagePolls, newPage(h.sessions, r, "Available Polls", page))
}

// EditPage handles GET /polls/{id}/edit
func (h *PollHandler) EditPage(w http.ResponseWriter, r *http.Request) {
	poll, ok := h.loadPoll(w, r)
	if !ok {
		return
	}
	h.views.Render(w, http.StatusOK, views.PageEdit, newPage(h.sessions, r, "Update Poll", poll))
}

// UpdatePoll handles POST /polls/{id}/update
// Any logged-in user may update a poll; every vote is reset.
func (h *PollHandler) UpdatePoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	question := r.FormValue("question")
	options := ParseOptions(r.FormValue("options"))

	if question == "" || len(options) == 0 {
		redirectWithFlash(w, r, h.sessions, "/polls/"+pollID+"/edit", models.FlashError, "Please provide a question and options.")
		return
	}

	err := h.polls.Update(r.Context(), pollID, question, options)
	if errors.Is(err, service.ErrPollNotFound) {
		redirectWithFlash(w, r, h.sessions, "/polls", models.FlashError, "Poll not found.")
		return
	}
	if err != nil {
		slog.Error("failed to update poll", "poll_id", pollID, "error", err)
		redirectWithFlash(w, r, h.sessions, "/polls", models.FlashError, "Could not update poll.")
		return
	}

	redirectWithFlash(w, r, h.sessions, "/polls", models.FlashSuccess, "Poll updated successfully!")
}

// DeletePoll handles POST /polls/{id}/delete
func (h *PollHandler) DeletePoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	username := middleware.CurrentUser(h.sessions, r)

	err := h.polls.Delete(r.Context(), pollID, username)
	switch {
	case errors.Is(err, service.ErrNotPollOwner):
		redirectWithFlash(w, r, h.sessions, listURL(r), models.FlashError, "You are not authorized to delete this poll.")
	case errors.Is(err, service.ErrPollNotFound):
		redirectWithFlash(w, r, h.sessions, listURL(r), models.FlashError, "Poll not found.")
	case err != nil:
		slog.Error("failed to delete poll", "poll_id", pollID, "error", err)
		redirectWithFlash(w, r, h.sessions, listURL(r), models.FlashError, "Could not delete poll.")
	default:
		redirectWithFlash(w, r, h.sessions, listURL(r), models.FlashSuccess, "Poll deleted successfully!")
	}
}

// loadPoll fetches the poll named in the path, rendering 404/500 itself
func (h *PollHandler) loadPoll(w http.ResponseWriter, r *http.Request) (models.Poll, bool) {
	pollID := r.PathValue("id")
	username := middleware.CurrentUser(h.sessions, r)

	poll, err := h.polls.Get(r.Context(), pollID)
	if errors.Is(err, service.ErrPollNotFound) {
		h.views.Error(w, http.StatusNotFound, username, "Poll not found.")
		return models.Poll{}, false
	}
	if err != nil {
		slog.Error("failed to load poll", "poll_id", pollID, "error", err)
		h.views.Error(w, http.StatusInternalServerError, username, "Could not load poll.")
		return models.Poll{}, false
	}
	return poll, true
}
