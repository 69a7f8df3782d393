// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/url"
	"reflect"
	"testing"

	"github.com/danielhkuo/pollconnect/models"
	"github.com/danielhkuo/pollconnect/store"
	"github.com/danielhkuo/pollconnect/testutil"
)

func optionByLabel(t *testing.T, poll models.Poll, label string) models.Option {
	t.Helper()
	for _, opt := range poll.Options {
		if opt.Label == label {
			return opt
		}
	}
	t.Fatalf("Option %q not found in %v", label, poll.Labels())
	return models.Option{}
}

func TestVote(t *testing.T) {
	b, s := loggedInApp(t, "alice")
	pollID := testutil.CreateTestPoll(t, s, "bob", "Best letter?", "A", "B")

	w := b.Post("/polls/"+pollID+"/vote", url.Values{"option": {"A"}})
	testutil.AssertRedirect(t, w, "/polls")
	page := b.Follow(w)
	testutil.AssertBodyContains(t, page, "Vote updated successfully!")
	testutil.AssertBodyContains(t, page, "A (1 votes) - 100.0%")
	testutil.AssertBodyContains(t, page, "B (0 votes) - 0.0%")

	poll := testutil.GetTestPoll(t, s, pollID)
	if a := optionByLabel(t, poll, "A"); a.Votes != 1 || !reflect.DeepEqual(a.Voters, []string{"alice"}) {
		t.Errorf("Unexpected option A after first vote: %+v", a)
	}

	t.Run("changing vote moves it", func(t *testing.T) {
		w := b.Post("/polls/"+pollID+"/vote", url.Values{"option": {"B"}})
		testutil.AssertRedirect(t, w, "/polls")

		poll := testutil.GetTestPoll(t, s, pollID)
		a := optionByLabel(t, poll, "A")
		bOpt := optionByLabel(t, poll, "B")
		if a.Votes != 0 || len(a.Voters) != 0 {
			t.Errorf("Expected A to be empty, got %+v", a)
		}
		if bOpt.Votes != 1 || !reflect.DeepEqual(bOpt.Voters, []string{"alice"}) {
			t.Errorf("Expected alice in B, got %+v", bOpt)
		}
	})

	t.Run("same option twice is idempotent", func(t *testing.T) {
		b.Post("/polls/"+pollID+"/vote", url.Values{"option": {"B"}})

		poll := testutil.GetTestPoll(t, s, pollID)
		if bOpt := optionByLabel(t, poll, "B"); bOpt.Votes != 1 || len(bOpt.Voters) != 1 {
			t.Errorf("Expected a single vote in B, got %+v", bOpt)
		}
	})
}

func TestVote_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		pollID func(id string) string
		option string
	}{
		{"unknown option", func(id string) string { return id }, "Z"},
		{"unknown poll", func(string) string { return "nope" }, "A"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b, s := loggedInApp(t, "alice")
			pollID := testutil.CreateTestPoll(t, s, "bob", "Q?", "A", "B")

			w := b.Post("/polls/"+tc.pollID(pollID)+"/vote", url.Values{"option": {tc.option}})
			testutil.AssertRedirect(t, w, "/polls")
			testutil.AssertBodyContains(t, b.Follow(w), "Error updating vote.")

			if poll := testutil.GetTestPoll(t, s, pollID); poll.TotalVotes() != 0 {
				t.Errorf("Expected no votes, got %d", poll.TotalVotes())
			}
		})
	}
}

func TestVote_KeepsSearch(t *testing.T) {
	b, s := loggedInApp(t, "alice")
	pollID := testutil.CreateTestPoll(t, s, "bob", "Best letter?", "A", "B")

	w := b.Post("/polls/"+pollID+"/vote", url.Values{"option": {"A"}, "q": {"best letter"}})
	testutil.AssertRedirect(t, w, "/polls?q=best+letter")
}

// conflictingStore loses every compare-and-swap round
type conflictingStore struct {
	*store.SQLStore
}

func (conflictingStore) UpdatePoll(context.Context, string, func(*models.Poll) error) (models.Poll, error) {
	return models.Poll{}, store.ErrConflict
}

func TestVote_Conflict(t *testing.T) {
	s := testutil.SetupTestStore(t)
	testutil.CreateTestUser(t, s, "alice", "secret")
	pollID := testutil.CreateTestPoll(t, s, "bob", "Q?", "A", "B")

	b := newTestAppWith(t, conflictingStore{s})
	b.Login("alice", "secret")

	w := b.Post("/polls/"+pollID+"/vote", url.Values{"option": {"A"}})
	testutil.AssertRedirect(t, w, "/polls")
	testutil.AssertBodyContains(t, b.Follow(w), "Error updating vote.")

	if poll := testutil.GetTestPoll(t, s, pollID); poll.TotalVotes() != 0 {
		t.Errorf("Expected no votes, got %d", poll.TotalVotes())
	}
}
