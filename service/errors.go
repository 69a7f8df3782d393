// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"errors"
	"fmt"

	"github.com/danielhkuo/pollconnect/store"
)

var (
	ErrUsernameTaken = errors.New("username already exists")
	ErrPollNotFound  = errors.New("poll not found")
	ErrNotPollOwner  = errors.New("user is not poll owner")
	ErrNoSuchOption  = errors.New("there is no such option in poll")
)

// pollError maps store lookups onto service errors
func pollError(op string, err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return ErrPollNotFound
	}
	if errors.Is(err, ErrNoSuchOption) {
		return err
	}
	return fmt.Errorf("could not %s poll: %w", op, err)
}
