// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"slices"

	"github.com/danielhkuo/pollconnect/models"
)

// ApplyVote moves username's vote to option.
//
// username is removed from every option it appears in (normally at most
// one) and that option's counter drops by the number of entries removed.
// It is then appended to option's voters and the counter goes up by one,
// so voting for the same option twice leaves the poll unchanged.
func ApplyVote(poll *models.Poll, username, option string) error {
	target := slices.IndexFunc(poll.Options, func(o models.Option) bool {
		return o.Label == option
	})
	if target < 0 {
		return ErrNoSuchOption
	}

	for i := range poll.Options {
		opt := &poll.Options[i]
		before := len(opt.Voters)
		opt.Voters = slices.DeleteFunc(opt.Voters, func(v string) bool {
			return v == username
		})
		if removed := before - len(opt.Voters); removed > 0 {
			opt.Votes = max(opt.Votes-removed, 0)
		}
	}

	opt := &poll.Options[target]
	opt.Voters = append(opt.Voters, username)
	opt.Votes++
	return nil
}
