// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/danielhkuo/pollconnect/models"
)

// BuildPollView computes display data for one poll as seen by viewer.
// Percentages are only meaningful once at least one vote exists.
func BuildPollView(poll models.Poll, viewer string) models.PollView {
	total := poll.TotalVotes()

	options := make([]models.OptionView, len(poll.Options))
	for i, opt := range poll.Options {
		view := models.OptionView{
			Label: opt.Label,
			Votes: opt.Votes,
			Mine:  viewer != "" && slices.Contains(opt.Voters, viewer),
		}
		if total > 0 {
			view.HasVote = true
			view.Percent = float64(opt.Votes) / float64(total) * 100
		}
		options[i] = view
	}

	return models.PollView{
		Poll:       poll,
		Initial:    initial(poll.Username),
		Options:    options,
		TotalVotes: total,
		IsOwner:    viewer != "" && viewer == poll.Username,
	}
}

// initial is the avatar letter for a username
func initial(username string) string {
	r, size := utf8.DecodeRuneInString(username)
	if size == 0 || r == utf8.RuneError {
		return "?"
	}
	return strings.ToUpper(string(r))
}
