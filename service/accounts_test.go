// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/danielhkuo/pollconnect/testutil"
)

func TestRegister(t *testing.T) {
	s := testutil.SetupTestStore(t)
	accounts := NewAccounts(s)
	ctx := context.Background()

	if err := accounts.Register(ctx, "alice", "secret"); err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	user, err := s.GetUser(ctx, "alice")
	if err != nil {
		t.Fatalf("user not stored: %v", err)
	}
	if user.PasswordHash == "secret" || user.PasswordHash == "" {
		t.Errorf("password not hashed: %q", user.PasswordHash)
	}
	if user.CreatedAt.IsZero() {
		t.Error("created_at not set")
	}
}

func TestRegister_DuplicateLeavesUserUnchanged(t *testing.T) {
	s := testutil.SetupTestStore(t)
	accounts := NewAccounts(s)
	ctx := context.Background()

	if err := accounts.Register(ctx, "alice", "first"); err != nil {
		t.Fatal(err)
	}
	before, _ := s.GetUser(ctx, "alice")

	err := accounts.Register(ctx, "alice", "second")
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("Register() error = %v, want ErrUsernameTaken", err)
	}

	after, _ := s.GetUser(ctx, "alice")
	if before.PasswordHash != after.PasswordHash {
		t.Error("duplicate registration changed the stored hash")
	}

	ok, _ := accounts.Login(ctx, "alice", "first")
	if !ok {
		t.Error("original password should still work")
	}
}

func TestLogin(t *testing.T) {
	s := testutil.SetupTestStore(t)
	accounts := NewAccounts(s)
	ctx := context.Background()

	testutil.CreateTestUser(t, s, "alice", "secret")

	tests := []struct {
		name     string
		username string
		password string
		want     bool
	}{
		{"correct credentials", "alice", "secret", true},
		{"wrong password", "alice", "guess", false},
		{"unknown user", "mallory", "secret", false},
		{"empty password", "alice", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := accounts.Login(ctx, tt.username, tt.password)
			if err != nil {
				t.Fatalf("Login() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Login() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLogin_UnlimitedAttempts(t *testing.T) {
	s := testutil.SetupTestStore(t)
	accounts := NewAccounts(s)
	ctx := context.Background()

	testutil.CreateTestUser(t, s, "alice", "secret")

	for i := 0; i < 10; i++ {
		accounts.Login(ctx, "alice", "wrong")
	}

	ok, err := accounts.Login(ctx, "alice", "secret")
	if err != nil || !ok {
		t.Errorf("login after failed attempts = %v, %v; want true (no lockout)", ok, err)
	}
}
