// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/danielhkuo/pollconnect/metrics"
	"github.com/danielhkuo/pollconnect/models"
	"github.com/danielhkuo/pollconnect/store"
)

type Polls struct {
	store store.Store
	now   func() time.Time
}

func NewPolls(s store.Store) *Polls {
	return &Polls{store: s, now: time.Now}
}

// Create stores a new poll with every counter at zero.
// The question and labels are stored as given: no validation, no dedupe.
func (p *Polls) Create(ctx context.Context, owner, question string, options []string) (models.Poll, error) {
	poll := models.Poll{
		Username:  owner,
		Question:  question,
		Options:   models.NewOptions(options),
		Comments:  []string{},
		Likes:     0,
		Dislikes:  0,
		CreatedAt: p.now(),
	}

	id, err := p.store.InsertPoll(ctx, poll)
	if err != nil {
		return models.Poll{}, pollError("create", err)
	}
	poll.ID = id

	metrics.PollOperations.WithLabelValues(metrics.OpCreate).Inc()
	slog.Info("poll created", "poll_id", id, "owner", owner, "options", len(options))
	return poll, nil
}

// Get loads a single poll
func (p *Polls) Get(ctx context.Context, pollID string) (models.Poll, error) {
	poll, err := p.store.GetPoll(ctx, pollID)
	if err != nil {
		return models.Poll{}, pollError("load", err)
	}
	return poll, nil
}

// Update replaces the question and resets every option to zero votes.
// Comments and likes/dislikes are kept. Any caller may update any poll.
func (p *Polls) Update(ctx context.Context, pollID, question string, options []string) error {
	_, err := p.store.UpdatePoll(ctx, pollID, func(poll *models.Poll) error {
		poll.Question = question
		poll.Options = models.NewOptions(options)
		return nil
	})
	if err != nil {
		return pollError("update", err)
	}

	metrics.PollOperations.WithLabelValues(metrics.OpUpdate).Inc()
	slog.Info("poll updated", "poll_id", pollID, "options", len(options))
	return nil
}

// Delete removes the poll if requester is its owner.
// Anyone else gets ErrNotPollOwner and the poll is left as is.
func (p *Polls) Delete(ctx context.Context, pollID, requester string) error {
	poll, err := p.store.GetPoll(ctx, pollID)
	if err != nil {
		return pollError("load", err)
	}

	if poll.Username != requester {
		slog.Warn("poll delete refused", "poll_id", pollID, "requester", requester)
		return ErrNotPollOwner
	}

	if err := p.store.DeletePoll(ctx, pollID); err != nil {
		return pollError("delete", err)
	}

	metrics.PollOperations.WithLabelValues(metrics.OpDelete).Inc()
	slog.Info("poll deleted", "poll_id", pollID, "owner", requester)
	return nil
}

// Vote credits username to option, moving any earlier vote off the option
// it was on. The whole move is one atomic poll update.
func (p *Polls) Vote(ctx context.Context, pollID, username, option string) error {
	_, err := p.store.UpdatePoll(ctx, pollID, func(poll *models.Poll) error {
		return ApplyVote(poll, username, option)
	})
	if err != nil {
		return pollError("vote on", err)
	}

	metrics.PollOperations.WithLabelValues(metrics.OpVote).Inc()
	slog.Info("vote recorded", "poll_id", pollID, "username", username, "option", option)
	return nil
}

// Like increments the like counter. No identity tracking.
func (p *Polls) Like(ctx context.Context, pollID string) error {
	_, err := p.store.UpdatePoll(ctx, pollID, func(poll *models.Poll) error {
		poll.Likes++
		return nil
	})
	if err != nil {
		return pollError("like", err)
	}

	metrics.PollOperations.WithLabelValues(metrics.OpLike).Inc()
	return nil
}

// Dislike increments the dislike counter. No identity tracking.
func (p *Polls) Dislike(ctx context.Context, pollID string) error {
	_, err := p.store.UpdatePoll(ctx, pollID, func(poll *models.Poll) error {
		poll.Dislikes++
		return nil
	})
	if err != nil {
		return pollError("dislike", err)
	}

	metrics.PollOperations.WithLabelValues(metrics.OpDislike).Inc()
	return nil
}

// Comment appends text to the poll's comments
func (p *Polls) Comment(ctx context.Context, pollID, text string) error {
	_, err := p.store.UpdatePoll(ctx, pollID, func(poll *models.Poll) error {
		poll.Comments = append(poll.Comments, text)
		return nil
	})
	if err != nil {
		return pollError("comment on", err)
	}

	metrics.PollOperations.WithLabelValues(metrics.OpComment).Inc()
	return nil
}

// List loads every poll and keeps those whose question contains filter,
// ignoring case. An empty filter keeps everything.
func (p *Polls) List(ctx context.Context, filter string) ([]models.Poll, error) {
	polls, err := p.store.ListPolls(ctx)
	if err != nil {
		return nil, pollError("list", err)
	}
	return FilterPolls(polls, filter), nil
}

// FilterPolls applies the case-insensitive question filter in memory
func FilterPolls(polls []models.Poll, filter string) []models.Poll {
	if filter == "" {
		return polls
	}

	needle := strings.ToLower(filter)
	matched := []models.Poll{}
	for _, poll := range polls {
		if strings.Contains(strings.ToLower(poll.Question), needle) {
			matched = append(matched, poll)
		}
	}
	return matched
}
