// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/pollconnect/auth"
	"github.com/danielhkuo/pollconnect/cliparse"
	"github.com/danielhkuo/pollconnect/models"
	"github.com/danielhkuo/pollconnect/store"
	_ "modernc.org/sqlite"
)

// TestDBURL is the sqlite connection string for the test database
const TestDBURL = ":memory:"

// SetupTestStore creates a fresh in-memory store with the full schema
func SetupTestStore(t *testing.T) *store.SQLStore {
	t.Helper()

	db, err := sql.Open("sqlite", TestDBURL)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// Each connection to :memory: is its own database
	db.SetMaxOpenConns(1)

	s, err := store.NewSQL(db, cliparse.DatabaseSQLite)
	if err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return s
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:            3318,
		DatabaseURL:     TestDBURL,
		DatabaseType:    cliparse.DatabaseSQLite,
		DatabaseName:    "pollconnect_test",
		ShareBaseURL:    "https://polls.test",
		SessionLifetime: time.Hour,
	}
}

// CreateTestUser stores a user with a real bcrypt hash of password
func CreateTestUser(t *testing.T, s store.Store, username, password string) {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("Failed to hash password: %v", err)
	}
	err = s.CreateUser(context.Background(), models.User{
		Username:     username,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	})
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
}

// CreateTestPoll creates a poll owned by owner and returns its ID
func CreateTestPoll(t *testing.T, s store.Store, owner, question string, labels ...string) string {
	t.Helper()

	id, err := s.InsertPoll(context.Background(), models.Poll{
		Username:  owner,
		Question:  question,
		Options:   models.NewOptions(labels),
		Comments:  []string{},
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return id
}

// GetTestPoll loads a poll or fails the test
func GetTestPoll(t *testing.T, s store.Store, id string) models.Poll {
	t.Helper()

	poll, err := s.GetPoll(context.Background(), id)
	if err != nil {
		t.Fatalf("Failed to load test poll: %v", err)
	}
	return poll
}

// MakeFormRequest creates an HTTP test request with a url-encoded body
func MakeFormRequest(method, path string, form url.Values) *http.Request {
	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertRedirect checks for a 303 to the expected location
func AssertRedirect(t *testing.T, w *httptest.ResponseRecorder, location string) {
	t.Helper()
	if w.Code != http.StatusSeeOther {
		t.Errorf("Expected status %d, got %d. Body: %s", http.StatusSeeOther, w.Code, w.Body.String())
		return
	}
	if got := w.Header().Get("Location"); got != location {
		t.Errorf("Expected redirect to %q, got %q", location, got)
	}
}

// AssertBodyContains checks that the response body contains substr
func AssertBodyContains(t *testing.T, w *httptest.ResponseRecorder, substr string) {
	t.Helper()
	if !strings.Contains(w.Body.String(), substr) {
		t.Errorf("Expected body to contain %q. Body: %s", substr, w.Body.String())
	}
}
