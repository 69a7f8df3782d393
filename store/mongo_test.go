// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/danielhkuo/pollconnect/models"
)

// setupMongoStore connects to POLLCONNECT_TEST_MONGO_URL, skipping the test
// when no server is configured
func setupMongoStore(t *testing.T) *MongoStore {
	t.Helper()

	uri := os.Getenv("POLLCONNECT_TEST_MONGO_URL")
	if uri == "" {
		t.Skip("POLLCONNECT_TEST_MONGO_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	dbName := "pollconnect_test_" + primitive.NewObjectID().Hex()
	s, err := NewMongo(ctx, uri, dbName)
	if err != nil {
		t.Fatalf("Failed to connect to mongo: %v", err)
	}
	t.Cleanup(func() {
		ctx := context.Background()
		s.client.Database(dbName).Drop(ctx)
		s.Close(ctx)
	})
	return s
}

func TestMongoStore_Users(t *testing.T) {
	s := setupMongoStore(t)
	ctx := context.Background()

	if err := s.CreateUser(ctx, models.User{Username: "alice", PasswordHash: "hash", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if err := s.CreateUser(ctx, models.User{Username: "alice", PasswordHash: "x", CreatedAt: time.Now()}); !errors.Is(err, ErrDuplicate) {
		t.Errorf("duplicate CreateUser() error = %v, want ErrDuplicate", err)
	}
	if _, err := s.GetUser(ctx, "nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetUser(unknown) error = %v, want ErrNotFound", err)
	}
}

func TestMongoStore_PollLifecycle(t *testing.T) {
	s := setupMongoStore(t)
	ctx := context.Background()

	id, err := s.InsertPoll(ctx, models.Poll{
		Username: "alice",
		Question: "Lunch?",
		Options:  models.NewOptions([]string{"Pizza", "Sushi"}),
		Comments: []string{},
	})
	if err != nil {
		t.Fatalf("InsertPoll() error = %v", err)
	}

	updated, err := s.UpdatePoll(ctx, id, func(p *models.Poll) error {
		p.Options[1].Votes++
		p.Options[1].Voters = append(p.Options[1].Voters, "bob")
		return nil
	})
	if err != nil {
		t.Fatalf("UpdatePoll() error = %v", err)
	}
	if updated.Rev != 1 {
		t.Errorf("rev = %d, want 1", updated.Rev)
	}

	poll, err := s.GetPoll(ctx, id)
	if err != nil {
		t.Fatalf("GetPoll() error = %v", err)
	}
	if poll.Options[1].Votes != 1 || poll.Options[1].Voters[0] != "bob" {
		t.Errorf("vote not persisted: %+v", poll.Options)
	}

	if _, err := s.GetPoll(ctx, "not-an-object-id"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetPoll(bad id) error = %v, want ErrNotFound", err)
	}

	if err := s.DeletePoll(ctx, id); err != nil {
		t.Fatalf("DeletePoll() error = %v", err)
	}
	if err := s.DeletePoll(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeletePoll() error = %v, want ErrNotFound", err)
	}
}

func TestMongoStore_LegacyDocument(t *testing.T) {
	s := setupMongoStore(t)
	ctx := context.Background()

	res, err := s.polls.InsertOne(ctx, bson.D{
		{Key: "username", Value: "alice"},
		{Key: "question", Value: "Old poll"},
		{Key: "options", Value: bson.D{
			{Key: "Yes", Value: bson.D{{Key: "votes", Value: 1}, {Key: "voters", Value: bson.A{"bob"}}}},
			{Key: "No", Value: bson.D{}},
		}},
		{Key: "comments", Value: bson.A{}},
	})
	if err != nil {
		t.Fatalf("Failed to seed legacy poll: %v", err)
	}
	id := res.InsertedID.(primitive.ObjectID).Hex()

	// Legacy documents have no rev; the first update must still match
	poll, err := s.UpdatePoll(ctx, id, func(p *models.Poll) error {
		p.Likes++
		return nil
	})
	if err != nil {
		t.Fatalf("UpdatePoll() error = %v", err)
	}
	if len(poll.Options) != 2 || poll.Options[0].Label != "Yes" || poll.Options[1].Label != "No" {
		t.Errorf("legacy options not converted in order: %+v", poll.Options)
	}
	if poll.Likes != 1 {
		t.Errorf("likes = %d, want 1", poll.Likes)
	}
}

func TestMongoStore_UpdatePollConflict(t *testing.T) {
	s := setupMongoStore(t)
	ctx := context.Background()

	id, err := s.InsertPoll(ctx, models.Poll{Username: "alice", Question: "Q", Comments: []string{}})
	if err != nil {
		t.Fatalf("InsertPoll() error = %v", err)
	}
	oid, _ := primitive.ObjectIDFromHex(id)

	bump := func() {
		if _, err := s.polls.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"rev": 1}}); err != nil {
			t.Fatalf("Failed to bump rev: %v", err)
		}
	}

	t.Run("retries once", func(t *testing.T) {
		calls := 0
		updated, err := s.UpdatePoll(ctx, id, func(p *models.Poll) error {
			calls++
			if calls == 1 {
				bump()
			}
			p.Likes++
			return nil
		})
		if err != nil {
			t.Fatalf("UpdatePoll() error = %v", err)
		}
		if calls != 2 || updated.Likes != 1 || updated.Rev != 2 {
			t.Errorf("calls %d likes %d rev %d, want 2, 1 and 2", calls, updated.Likes, updated.Rev)
		}
	})

	t.Run("gives up", func(t *testing.T) {
		calls := 0
		_, err := s.UpdatePoll(ctx, id, func(p *models.Poll) error {
			calls++
			bump()
			return nil
		})
		if !errors.Is(err, ErrConflict) {
			t.Fatalf("UpdatePoll() error = %v, want ErrConflict", err)
		}
		if calls != maxUpdateAttempts {
			t.Errorf("fn ran %d times, want %d", calls, maxUpdateAttempts)
		}
	})
}
