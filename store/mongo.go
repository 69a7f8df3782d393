// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/danielhkuo/pollconnect/cliparse"
	"github.com/danielhkuo/pollconnect/db"
	"github.com/danielhkuo/pollconnect/models"
)

type MongoStore struct {
	client *mongo.Client
	users  *mongo.Collection
	polls  *mongo.Collection
}

// NewMongo connects to uri and prepares the users and polls collections
func NewMongo(ctx context.Context, uri, dbName string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo connection failed: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping failed: %w", err)
	}

	database := client.Database(dbName)
	if err := db.EnsureIndexes(ctx, database); err != nil {
		client.Disconnect(ctx)
		return nil, err
	}

	return &MongoStore{
		client: client,
		users:  database.Collection(db.UsersCollection),
		polls:  database.Collection(db.PollsCollection),
	}, nil
}

func (s *MongoStore) CreateUser(ctx context.Context, user models.User) error {
	err := s.users.FindOne(ctx, bson.M{"username": user.Username}).Err()
	if err == nil {
		return ErrDuplicate
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return fmt.Errorf("could not look up user: %w", err)
	}

	// The unique index still catches a registration racing this one
	if _, err := s.users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("could not insert user: %w", err)
	}
	return nil
}

func (s *MongoStore) GetUser(ctx context.Context, username string) (models.User, error) {
	var user models.User
	err := s.users.FindOne(ctx, bson.M{"username": username}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("could not load user: %w", err)
	}
	return user, nil
}

func (s *MongoStore) InsertPoll(ctx context.Context, poll models.Poll) (string, error) {
	poll.Rev = 0
	res, err := s.polls.InsertOne(ctx, poll)
	if err != nil {
		return "", fmt.Errorf("could not insert poll: %w", err)
	}
	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return "", fmt.Errorf("unexpected inserted id type %T", res.InsertedID)
	}
	return oid.Hex(), nil
}

func (s *MongoStore) GetPoll(ctx context.Context, id string) (models.Poll, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Poll{}, ErrNotFound
	}

	var raw bson.D
	err = s.polls.FindOne(ctx, bson.M{"_id": oid}).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Poll{}, ErrNotFound
	}
	if err != nil {
		return models.Poll{}, fmt.Errorf("could not load poll: %w", err)
	}
	return decodeMongoPoll(raw)
}

func (s *MongoStore) ListPolls(ctx context.Context) ([]models.Poll, error) {
	cursor, err := s.polls.Find(ctx, bson.D{})
	if err != nil {
		return nil, fmt.Errorf("could not list polls: %w", err)
	}
	defer cursor.Close(ctx)

	polls := []models.Poll{}
	for cursor.Next(ctx) {
		var raw bson.D
		if err := cursor.Decode(&raw); err != nil {
			return nil, fmt.Errorf("could not decode poll: %w", err)
		}
		poll, err := decodeMongoPoll(raw)
		if err != nil {
			return nil, err
		}
		polls = append(polls, poll)
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("could not list polls: %w", err)
	}
	return polls, nil
}

func (s *MongoStore) UpdatePoll(ctx context.Context, id string, fn func(poll *models.Poll) error) (models.Poll, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Poll{}, ErrNotFound
	}

	for attempt := 0; attempt < maxUpdateAttempts; attempt++ {
		poll, err := s.GetPoll(ctx, id)
		if err != nil {
			return models.Poll{}, err
		}

		rev := poll.Rev
		if err := fn(&poll); err != nil {
			return models.Poll{}, err
		}
		poll.ID = id
		poll.Rev = rev + 1

		res, err := s.polls.ReplaceOne(ctx, revFilter(oid, rev), poll)
		if err != nil {
			return models.Poll{}, fmt.Errorf("could not replace poll: %w", err)
		}
		if res.MatchedCount == 1 {
			return poll, nil
		}
	}

	return models.Poll{}, ErrConflict
}

func (s *MongoStore) DeletePoll(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := s.polls.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("could not delete poll: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *MongoStore) Backend() string {
	return cliparse.DatabaseMongo
}

// revFilter matches the poll only while it is still at rev. Legacy
// documents have no rev field and count as rev 0.
func revFilter(oid primitive.ObjectID, rev int64) bson.M {
	if rev == 0 {
		return bson.M{
			"_id": oid,
			"$or": bson.A{
				bson.M{"rev": int64(0)},
				bson.M{"rev": bson.M{"$exists": false}},
			},
		}
	}
	return bson.M{"_id": oid, "rev": rev}
}

func decodeMongoPoll(raw bson.D) (models.Poll, error) {
	doc := make(map[string]any, len(raw))
	for _, e := range raw {
		doc[e.Key] = e.Value
	}

	data, err := bson.Marshal(NormalizeLegacyPoll(doc))
	if err != nil {
		return models.Poll{}, fmt.Errorf("could not encode poll: %w", err)
	}

	var poll models.Poll
	if err := bson.Unmarshal(data, &poll); err != nil {
		return models.Poll{}, fmt.Errorf("could not decode poll: %w", err)
	}
	if oid, ok := doc["_id"].(primitive.ObjectID); ok {
		poll.ID = oid.Hex()
	}
	return poll, nil
}
