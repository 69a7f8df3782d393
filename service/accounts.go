// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/pollconnect/auth"
	"github.com/danielhkuo/pollconnect/metrics"
	"github.com/danielhkuo/pollconnect/models"
	"github.com/danielhkuo/pollconnect/store"
)

type Accounts struct {
	store store.Store
	now   func() time.Time
}

func NewAccounts(s store.Store) *Accounts {
	return &Accounts{store: s, now: time.Now}
}

// Register creates a user with a bcrypt-hashed password.
// Returns ErrUsernameTaken without touching the user collection if the
// username is already registered.
func (a *Accounts) Register(ctx context.Context, username, password string) error {
	_, err := a.store.GetUser(ctx, username)
	if err == nil {
		metrics.Registrations.WithLabelValues("taken").Inc()
		return ErrUsernameTaken
	}
	if !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("could not look up user: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	err = a.store.CreateUser(ctx, models.User{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    a.now(),
	})
	if errors.Is(err, store.ErrDuplicate) {
		metrics.Registrations.WithLabelValues("taken").Inc()
		return ErrUsernameTaken
	}
	if err != nil {
		return fmt.Errorf("could not create user: %w", err)
	}

	metrics.Registrations.WithLabelValues("success").Inc()
	slog.Info("user registered", "username", username)
	return nil
}

// Login reports whether the user exists and the password matches.
// An unknown user or wrong password is (false, nil); err is reserved for
// store failures.
func (a *Accounts) Login(ctx context.Context, username, password string) (bool, error) {
	user, err := a.store.GetUser(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		metrics.Logins.WithLabelValues("failure").Inc()
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("could not load user: %w", err)
	}

	err = auth.CheckPassword(user.PasswordHash, password)
	if errors.Is(err, auth.ErrPasswordMismatch) {
		metrics.Logins.WithLabelValues("failure").Inc()
		return false, nil
	}
	if err != nil {
		return false, err
	}

	metrics.Logins.WithLabelValues("success").Inc()
	return true, nil
}
